// Package monitor is the consumer side of the pipeline. It accepts decoded records
// from the receiver, routes them to the traces bound to their channel on its own
// goroutine, and keeps the transport's subscriptions in step with those bindings.
package monitor

import (
	"context"
	"sync"

	"github.com/joeydtaylor/pulsescope/pkg/internal/spectral"
	"github.com/joeydtaylor/pulsescope/pkg/internal/subscription"
	"github.com/joeydtaylor/pulsescope/pkg/internal/trace"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

// DefaultBufferSize is the capacity of the queue between receiver and monitor.
const DefaultBufferSize = 256

// Monitor owns a set of traces.
type Monitor struct {
	componentMetadata types.ComponentMetadata
	ctx               context.Context
	cancel            context.CancelFunc

	DataCh chan types.PulseRecord

	mu            sync.RWMutex
	traces        map[string]*trace.Trace
	bound         map[string]bool
	order         []string
	historyLength int
	estimator     *spectral.Estimator

	// bindMu orders binding changes with their registry updates.
	bindMu   sync.Mutex
	registry *subscription.Registry

	loggers     []types.Logger
	loggersLock sync.Mutex

	started  int32
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a monitor whose channel bindings are applied to subscriber.
func New(ctx context.Context, subscriber types.ChannelSubscriber, options ...types.Option[*Monitor]) *Monitor {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	m := &Monitor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "MONITOR",
		},
		ctx:           ctx,
		cancel:        cancel,
		DataCh:        make(chan types.PulseRecord, DefaultBufferSize),
		traces:        make(map[string]*trace.Trace),
		bound:         make(map[string]bool),
		historyLength: trace.DefaultLength,
		estimator:     spectral.Default,
		registry:      subscription.New(subscriber),
	}
	m.registry.OnChange(m.notifySubscription)
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Monitor) GetComponentMetadata() types.ComponentMetadata {
	return m.componentMetadata
}

// Subscribed returns the channels the monitor currently needs, ascending.
func (m *Monitor) Subscribed() []uint16 {
	return m.registry.Active()
}

func (m *Monitor) SetComponentMetadata(name string, id string) {
	m.componentMetadata.Name = name
	m.componentMetadata.ID = id
}

// Registry exposes the subscription registry, for resyncing after a reconnect.
func (m *Monitor) Registry() *subscription.Registry {
	return m.registry
}

var _ types.Consumer = (*Monitor)(nil)
