package meter

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

const defaultUpdateInterval = 5 * time.Second

func sampleHost() (float64, float64, error) {
	cpuPercentages, err := cpu.Percent(0, false)
	if err != nil {
		return 0, 0, err
	}
	memStats, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, err
	}
	var cpuPercent float64
	if len(cpuPercentages) > 0 {
		cpuPercent = cpuPercentages[0]
	}
	return cpuPercent, memStats.UsedPercent, nil
}

// Monitor logs a report every interval until ctx or the meter's context ends.
func (m *Meter) Monitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := m.Snapshot()
	lastAt := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			last = m.report(last, now.Sub(lastAt))
			lastAt = now
		}
	}
}

// report samples the host, logs counters and rates, and returns the new snapshot.
func (m *Meter) report(previous map[string]uint64, elapsed time.Duration) map[string]uint64 {
	if cpuPercent, ramPercent, err := m.hostStats(); err == nil {
		m.setGauge(types.MetricCurrentCpuPercent, uint64(math.Round(cpuPercent)))
		m.setGauge(types.MetricCurrentRamPercent, uint64(math.Round(ramPercent)))
	} else {
		m.NotifyLoggers(types.DebugLevel, "host stats unavailable", "error", err)
	}

	current := m.Snapshot()
	names := make([]string, 0, len(current))
	for name := range current {
		names = append(names, name)
	}
	sort.Strings(names)

	kv := []interface{}{"component", m.GetComponentMetadata(), "event", "Report"}
	for _, name := range names {
		kv = append(kv, name, current[name])
	}
	if seconds := elapsed.Seconds(); seconds > 0 {
		rate := float64(current[types.MetricRecordsDecoded]-previous[types.MetricRecordsDecoded]) / seconds
		kv = append(kv, "records_per_second", rate)
	}
	m.NotifyLoggers(types.InfoLevel, "meter report", kv...)
	return current
}

// Stop ends any running Monitor loop.
func (m *Meter) Stop() {
	m.cancel()
}
