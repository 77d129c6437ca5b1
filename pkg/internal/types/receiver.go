package types

import (
	"context"
	"time"
)

// ReceiverState is the lifecycle state of a streaming receiver.
type ReceiverState int32

const (
	ReceiverStopped ReceiverState = iota
	ReceiverRunning
	ReceiverStopping
)

func (s ReceiverState) String() string {
	switch s {
	case ReceiverStopped:
		return "stopped"
	case ReceiverRunning:
		return "running"
	case ReceiverStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Receiver pulls frames from a transport, decodes them and hands records to its
// outputs. A receiver is single-use: once stopped it cannot be started again.
type Receiver interface {
	ChannelSubscriber

	// ConnectLogger attaches loggers for lifecycle and decode events.
	ConnectLogger(...Logger)

	// ConnectSensor attaches sensors that observe records and errors.
	ConnectSensor(...Sensor)

	// ConnectOutput registers consumers. Records are delivered to outputs in
	// registration order.
	ConnectOutput(...Consumer)

	// ConnectErrorSink registers callbacks for non-fatal errors.
	ConnectErrorSink(...ErrorSink)

	SetTransport(Transport)
	SetPollTimeout(time.Duration)

	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	// Start launches the receive loop. It fails with ErrAlreadyTerminated on any
	// call after the first.
	Start(context.Context) error

	// Stop ends the loop within one poll timeout, releases the transport and
	// returns the terminal error, if any.
	Stop() error

	// Wait blocks until the loop has exited and returns the terminal error.
	Wait() error

	Err() error
	State() ReceiverState
}
