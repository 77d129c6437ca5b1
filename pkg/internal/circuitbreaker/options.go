package circuitbreaker

import (
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

func WithLogger(loggers ...types.Logger) types.Option[types.CircuitBreaker] {
	return func(cb types.CircuitBreaker) {
		cb.ConnectLogger(loggers...)
	}
}

func WithComponentMetadata(name string, id string) types.Option[types.CircuitBreaker] {
	return func(cb types.CircuitBreaker) {
		cb.SetComponentMetadata(name, id)
	}
}

// WithDebouncePeriod makes errors within d of the previous one count once.
func WithDebouncePeriod(d time.Duration) types.Option[types.CircuitBreaker] {
	return func(cb types.CircuitBreaker) {
		if c, ok := cb.(*CircuitBreaker); ok {
			c.setDebounce(d)
		}
	}
}
