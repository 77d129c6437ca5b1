package monitor

import (
	"github.com/joeydtaylor/pulsescope/pkg/internal/spectral"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// WithBufferSize sets the capacity of the record queue.
func WithBufferSize(n int) types.Option[*Monitor] {
	return func(m *Monitor) {
		if n > 0 {
			m.DataCh = make(chan types.PulseRecord, n)
		}
	}
}

// WithHistoryLength sets the history length of traces added later.
func WithHistoryLength(n int) types.Option[*Monitor] {
	return func(m *Monitor) {
		if n > 0 {
			m.historyLength = n
		}
	}
}

// WithEstimator shares an estimator between all traces.
func WithEstimator(e *spectral.Estimator) types.Option[*Monitor] {
	return func(m *Monitor) {
		if e != nil {
			m.estimator = e
		}
	}
}

func WithLogger(loggers ...types.Logger) types.Option[*Monitor] {
	return func(m *Monitor) { m.ConnectLogger(loggers...) }
}

func WithComponentMetadata(name string, id string) types.Option[*Monitor] {
	return func(m *Monitor) { m.SetComponentMetadata(name, id) }
}
