package meter_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/internallogger"
	"github.com/joeydtaylor/pulsescope/pkg/internal/meter"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMeterCounters(t *testing.T) {
	m := meter.NewMeter(context.Background())

	if got := m.GetMetricCount(types.MetricRecordsDecoded); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if _, ok := m.Snapshot()[types.MetricDecodeErrors]; !ok {
		t.Fatalf("default metrics should be present in snapshot")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.IncrementCount(types.MetricRecordsDecoded)
				m.IncrementChannel(7)
			}
		}()
	}
	wg.Wait()

	if got := m.GetMetricCount(types.MetricRecordsDecoded); got != 800 {
		t.Fatalf("expected 800, got %d", got)
	}
	if got := m.GetMetricCount(meter.ChannelMetric(7)); got != 800 {
		t.Fatalf("expected 800 for channel 7, got %d", got)
	}
	if got := m.GetMetricCount("never_seen"); got != 0 {
		t.Fatalf("unknown metric should read 0, got %d", got)
	}
}

func TestChannelMetricName(t *testing.T) {
	if got := meter.ChannelMetric(12); got != "channel_records_12" {
		t.Fatalf("unexpected metric name %q", got)
	}
}

func TestMonitorReportsHostStatsAndCounters(t *testing.T) {
	core, obs := observer.New(zapcore.DebugLevel)
	logger := internallogger.NewLogger(internallogger.LoggerWithCore(core), internallogger.LoggerWithLevel("debug"))

	m := meter.NewMeter(context.Background(),
		meter.WithLogger(logger),
		meter.WithComponentMetadata("bench", "meter-1"),
		meter.WithHostSampler(func() (float64, float64, error) { return 12.4, 56.6, nil }),
	)
	m.IncrementCount(types.MetricRecordsDecoded)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Monitor(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for obs.FilterMessage("meter report").Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("no meter report logged")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Monitor did not return after cancel")
	}

	if got := m.GetMetricCount(types.MetricCurrentCpuPercent); got != 12 {
		t.Fatalf("expected cpu gauge 12, got %d", got)
	}
	if got := m.GetMetricCount(types.MetricCurrentRamPercent); got != 57 {
		t.Fatalf("expected ram gauge 57, got %d", got)
	}
	fields := obs.FilterMessage("meter report").All()[0].ContextMap()
	if fields[types.MetricRecordsDecoded] != uint64(1) {
		t.Fatalf("expected records_decoded=1 in report, got %v", fields[types.MetricRecordsDecoded])
	}
	if _, ok := fields["records_per_second"]; !ok {
		t.Fatalf("expected records_per_second in report")
	}
}

func TestMonitorLogsHostSamplerFailure(t *testing.T) {
	core, obs := observer.New(zapcore.DebugLevel)
	logger := internallogger.NewLogger(internallogger.LoggerWithCore(core), internallogger.LoggerWithLevel("debug"))

	m := meter.NewMeter(context.Background(),
		meter.WithLogger(logger),
		meter.WithHostSampler(func() (float64, float64, error) { return 0, 0, errors.New("no procfs") }),
	)

	done := make(chan struct{})
	go func() {
		m.Monitor(context.Background(), 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for obs.FilterMessage("host stats unavailable").Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sampler failure not logged")
		}
		time.Sleep(5 * time.Millisecond)
	}
	m.(*meter.Meter).Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Monitor did not return after Stop")
	}
}
