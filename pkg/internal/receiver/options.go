package receiver

import (
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// WithTransport sets the transport the receiver polls and owns.
func WithTransport(t types.Transport) types.Option[types.Receiver] {
	return func(r types.Receiver) {
		r.SetTransport(t)
	}
}

// WithPollTimeout bounds each transport poll.
func WithPollTimeout(d time.Duration) types.Option[types.Receiver] {
	return func(r types.Receiver) {
		r.SetPollTimeout(d)
	}
}

func WithLogger(loggers ...types.Logger) types.Option[types.Receiver] {
	return func(r types.Receiver) {
		r.ConnectLogger(loggers...)
	}
}

func WithSensor(sensors ...types.Sensor) types.Option[types.Receiver] {
	return func(r types.Receiver) {
		r.ConnectSensor(sensors...)
	}
}

// WithOutput registers consumers for decoded records.
func WithOutput(outputs ...types.Consumer) types.Option[types.Receiver] {
	return func(r types.Receiver) {
		r.ConnectOutput(outputs...)
	}
}

// WithErrorSink registers callbacks for non-fatal errors.
func WithErrorSink(sinks ...types.ErrorSink) types.Option[types.Receiver] {
	return func(r types.Receiver) {
		r.ConnectErrorSink(sinks...)
	}
}

func WithComponentMetadata(name string, id string) types.Option[types.Receiver] {
	return func(r types.Receiver) {
		r.SetComponentMetadata(name, id)
	}
}
