package meter

import (
	"strconv"
	"sync/atomic"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// GetComponentMetadata returns the meter metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.componentMetadata
}

func (m *Meter) SetComponentMetadata(name string, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.componentMetadata.Name = name
	m.componentMetadata.ID = id
}

func (m *Meter) counter(name string) *uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counts[name]
	if !ok {
		c = new(uint64)
		m.counts[name] = c
	}
	return c
}

// IncrementCount adds one to a metric, creating it on first use.
func (m *Meter) IncrementCount(name string) {
	atomic.AddUint64(m.counter(name), 1)
}

// IncrementChannel counts one record for channel.
func (m *Meter) IncrementChannel(channel uint16) {
	m.IncrementCount(ChannelMetric(channel))
}

// ChannelMetric names the per-channel record counter.
func ChannelMetric(channel uint16) string {
	return types.MetricChannelRecordPrefix + strconv.Itoa(int(channel))
}

func (m *Meter) setGauge(name string, v uint64) {
	atomic.StoreUint64(m.counter(name), v)
}

// GetMetricCount returns the current value of a metric, zero if unknown.
func (m *Meter) GetMetricCount(name string) uint64 {
	m.mu.Lock()
	c, ok := m.counts[name]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return atomic.LoadUint64(c)
}

// Snapshot copies every metric.
func (m *Meter) Snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]uint64, len(m.counts))
	for name, c := range m.counts {
		out[name] = atomic.LoadUint64(c)
	}
	return out
}
