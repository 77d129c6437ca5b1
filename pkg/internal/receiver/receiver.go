// Package receiver implements the streaming receiver: a single worker that polls a
// publish/subscribe transport, decodes each two-part frame into a pulse record and
// hands it to its outputs.
//
// Bad records are reported and skipped. A transport failure ends the loop with
// types.ErrTransportClosed. A receiver runs at most once; any later Start returns
// types.ErrAlreadyTerminated.
package receiver

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

// DefaultPollTimeout bounds each transport poll, and with it the latency of Stop.
const DefaultPollTimeout = 100 * time.Millisecond

const (
	StateStopped  = types.ReceiverStopped
	StateRunning  = types.ReceiverRunning
	StateStopping = types.ReceiverStopping
)

// Receiver is the streaming receiver.
type Receiver struct {
	componentMetadata types.ComponentMetadata
	ctx               context.Context
	cancel            context.CancelFunc

	transport   types.Transport
	pollTimeout time.Duration

	outputs    []types.Consumer
	errorSinks []types.ErrorSink

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32
	sensors     []types.Sensor
	sensorLock  sync.Mutex
	sensorCount int32

	state         int32
	used          int32
	done          chan struct{}
	terminateOnce sync.Once

	errLock sync.Mutex
	err     error
}

// NewReceiver creates a receiver bound to ctx and applies options.
func NewReceiver(ctx context.Context, options ...types.Option[types.Receiver]) types.Receiver {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	r := &Receiver{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "RECEIVER",
		},
		ctx:         ctx,
		cancel:      cancel,
		pollTimeout: DefaultPollTimeout,
		done:        make(chan struct{}),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

var _ types.Receiver = (*Receiver)(nil)
