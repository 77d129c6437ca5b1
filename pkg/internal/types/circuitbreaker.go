package types

// CircuitBreaker stops an operation after repeated failures and lets it resume
// once the reset window has passed.
type CircuitBreaker interface {
	Allow() bool
	RecordError()
	Reset()
	Trip()
	ConnectLogger(...Logger)
	NotifyOnReset() <-chan struct{}
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
}
