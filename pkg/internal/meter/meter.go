// Package meter accumulates named counters fed by sensors and periodically reports
// them, together with host CPU and memory usage, through the attached loggers.
package meter

import (
	"context"
	"sync"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

var defaultMetricNames = []string{
	types.MetricRecordsDecoded,
	types.MetricDecodeErrors,
	types.MetricSubscriptions,
	types.MetricUnsubscriptions,
	types.MetricReceiverStarts,
	types.MetricReceiverStops,
}

// Meter is a set of atomic counters.
type Meter struct {
	ctx               context.Context
	cancel            context.CancelFunc
	componentMetadata types.ComponentMetadata

	mu     sync.Mutex
	counts map[string]*uint64

	loggers     []types.Logger
	loggersLock sync.Mutex

	hostStats func() (cpuPercent, ramPercent float64, err error)
}

func NewMeter(ctx context.Context, options ...types.Option[types.Meter]) types.Meter {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	m := &Meter{
		ctx:    ctx,
		cancel: cancel,
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:    make(map[string]*uint64),
		hostStats: sampleHost,
	}
	for _, name := range defaultMetricNames {
		m.counts[name] = new(uint64)
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

var _ types.Meter = (*Meter)(nil)
