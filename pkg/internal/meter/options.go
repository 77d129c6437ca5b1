package meter

import "github.com/joeydtaylor/pulsescope/pkg/internal/types"

// WithLogger attaches loggers that receive periodic reports.
func WithLogger(loggers ...types.Logger) types.Option[types.Meter] {
	return func(m types.Meter) {
		m.ConnectLogger(loggers...)
	}
}

// WithHostSampler replaces the gopsutil host sampler, mainly for tests.
func WithHostSampler(fn func() (cpuPercent, ramPercent float64, err error)) types.Option[types.Meter] {
	return func(m types.Meter) {
		if mm, ok := m.(*Meter); ok && fn != nil {
			mm.hostStats = fn
		}
	}
}

func WithComponentMetadata(name string, id string) types.Option[types.Meter] {
	return func(m types.Meter) {
		if mm, ok := m.(*Meter); ok {
			mm.SetComponentMetadata(name, id)
		}
	}
}
