package types

import "context"

// Generator produces synthetic pulse records onto a publisher.
type Generator interface {
	Start(context.Context) error
	Stop() error
	IsStarted() bool
	ConnectPublisher(Publisher)
	ConnectCircuitBreaker(CircuitBreaker)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
}
