package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/receiver"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

type Receiver = types.Receiver

type ReceiverState = types.ReceiverState

const (
	ReceiverStopped  = types.ReceiverStopped
	ReceiverRunning  = types.ReceiverRunning
	ReceiverStopping = types.ReceiverStopping
)

// DefaultPollTimeout bounds how long Stop waits for the receive loop.
const DefaultPollTimeout = receiver.DefaultPollTimeout

// NewReceiver creates a streaming receiver. It decodes every frame its transport
// delivers and hands the record to each connected output.
func NewReceiver(ctx context.Context, options ...types.Option[types.Receiver]) types.Receiver {
	return receiver.NewReceiver(ctx, options...)
}

func ReceiverWithTransport(t types.Transport) types.Option[types.Receiver] {
	return receiver.WithTransport(t)
}

func ReceiverWithPollTimeout(d time.Duration) types.Option[types.Receiver] {
	return receiver.WithPollTimeout(d)
}

func ReceiverWithLogger(loggers ...types.Logger) types.Option[types.Receiver] {
	return receiver.WithLogger(loggers...)
}

func ReceiverWithSensor(sensors ...types.Sensor) types.Option[types.Receiver] {
	return receiver.WithSensor(sensors...)
}

// ReceiverWithOutput connects consumers. Outputs run in connection order on the receive goroutine.
func ReceiverWithOutput(outputs ...types.Consumer) types.Option[types.Receiver] {
	return receiver.WithOutput(outputs...)
}

// ReceiverWithErrorSink connects sinks for skipped frames and transport failures.
func ReceiverWithErrorSink(sinks ...types.ErrorSink) types.Option[types.Receiver] {
	return receiver.WithErrorSink(sinks...)
}

func ReceiverWithComponentMetadata(name string, id string) types.Option[types.Receiver] {
	return receiver.WithComponentMetadata(name, id)
}
