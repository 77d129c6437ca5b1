package builder

import (
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/circuitbreaker"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

type CircuitBreaker = types.CircuitBreaker

// NewCircuitBreaker opens after errorThreshold errors and closes again timeWindow later.
func NewCircuitBreaker(errorThreshold int, timeWindow time.Duration, options ...types.Option[types.CircuitBreaker]) types.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker(errorThreshold, timeWindow, options...)
}

func CircuitBreakerWithLogger(loggers ...types.Logger) types.Option[types.CircuitBreaker] {
	return circuitbreaker.WithLogger(loggers...)
}

func CircuitBreakerWithComponentMetadata(name string, id string) types.Option[types.CircuitBreaker] {
	return circuitbreaker.WithComponentMetadata(name, id)
}

func CircuitBreakerWithDebouncePeriod(d time.Duration) types.Option[types.CircuitBreaker] {
	return circuitbreaker.WithDebouncePeriod(d)
}
