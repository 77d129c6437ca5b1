package monitor

import (
	"fmt"

	"github.com/joeydtaylor/pulsescope/pkg/internal/trace"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// AddTrace creates an unbound trace. Unbound traces receive no records.
func (m *Monitor) AddTrace(id string, options ...types.Option[*trace.Trace]) (*trace.Trace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.traces[id]; exists {
		return nil, fmt.Errorf("monitor: trace %q already exists", id)
	}
	opts := append([]types.Option[*trace.Trace]{
		trace.WithLength(m.historyLength),
		trace.WithEstimator(m.estimator),
	}, options...)
	tr := trace.New(id, 0, opts...)
	m.traces[id] = tr
	m.order = append(m.order, id)
	return tr, nil
}

// BindTrace points a trace at channel and subscribes the channel if no other trace
// already needs it. Rebinding to a different channel clears the trace's history.
func (m *Monitor) BindTrace(id string, channel uint16) error {
	m.bindMu.Lock()
	defer m.bindMu.Unlock()

	m.mu.Lock()
	tr, ok := m.traces[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("monitor: unknown trace %q", id)
	}
	tr.SetChannel(channel)
	if !m.bound[id] {
		tr.Clear()
	}
	m.bound[id] = true
	m.mu.Unlock()

	if err := m.registry.Set(id, channel); err != nil {
		m.notifyError("BindTrace", err, "trace", id, "channel", channel)
		return err
	}
	return nil
}

// UnbindTrace stops routing records to a trace and drops its subscription need.
func (m *Monitor) UnbindTrace(id string) error {
	m.bindMu.Lock()
	defer m.bindMu.Unlock()

	m.mu.Lock()
	if _, ok := m.traces[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("monitor: unknown trace %q", id)
	}
	delete(m.bound, id)
	m.mu.Unlock()

	if err := m.registry.Unset(id); err != nil {
		m.notifyError("UnbindTrace", err, "trace", id)
		return err
	}
	return nil
}

// RemoveTrace unbinds and forgets a trace.
func (m *Monitor) RemoveTrace(id string) error {
	m.bindMu.Lock()
	defer m.bindMu.Unlock()

	m.mu.Lock()
	if _, ok := m.traces[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("monitor: unknown trace %q", id)
	}
	delete(m.traces, id)
	delete(m.bound, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	return m.registry.Remove(id)
}

func (m *Monitor) Trace(id string) (*trace.Trace, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tr, ok := m.traces[id]
	return tr, ok
}

// Traces returns the traces in the order they were added.
func (m *Monitor) Traces() []*trace.Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*trace.Trace, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.traces[id])
	}
	return out
}

// SetHistoryLength resizes every trace and applies to traces added later.
func (m *Monitor) SetHistoryLength(n int) {
	if n < 1 {
		n = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyLength = n
	for _, tr := range m.traces {
		tr.Resize(n)
	}
}

func (m *Monitor) HistoryLength() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.historyLength
}

// SetSpectraEnabled toggles PSD accumulation on one trace.
func (m *Monitor) SetSpectraEnabled(id string, enabled bool) error {
	tr, ok := m.Trace(id)
	if !ok {
		return fmt.Errorf("monitor: unknown trace %q", id)
	}
	tr.SetSpectraEnabled(enabled)
	return nil
}

// targets returns the bound traces for channel in insertion order.
func (m *Monitor) targets(channel uint16) []*trace.Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*trace.Trace
	for _, id := range m.order {
		if !m.bound[id] {
			continue
		}
		if tr := m.traces[id]; tr.Channel() == channel {
			out = append(out, tr)
		}
	}
	return out
}
