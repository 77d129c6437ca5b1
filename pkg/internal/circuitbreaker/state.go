package circuitbreaker

import (
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// Allow returns true if the circuit breaker allows work to proceed.
func (cb *CircuitBreaker) Allow() bool {
	now := time.Now()

	cb.stateLock.Lock()
	allowed := cb.allowed
	shouldReset := false
	if !allowed && (cb.timeWindow <= 0 || now.Sub(cb.lastTripped) >= cb.timeWindow) {
		cb.allowed = true
		cb.errorCount = 0
		allowed = true
		shouldReset = true
	}
	cb.stateLock.Unlock()

	if shouldReset {
		cb.signalReset()
		cb.NotifyLoggers(types.InfoLevel, "Circuit breaker reset", "component", cb.GetComponentMetadata(), "auto", true)
	}
	return allowed
}

// RecordError records a failure and trips the breaker when the threshold is reached.
// Errors closer together than the debounce period count once.
func (cb *CircuitBreaker) RecordError() {
	now := time.Now()

	cb.stateLock.Lock()
	if cb.debounce > 0 && !cb.lastErrorTime.IsZero() && now.Sub(cb.lastErrorTime) < cb.debounce {
		cb.stateLock.Unlock()
		return
	}
	cb.lastErrorTime = now
	cb.errorCount++
	errorCount := cb.errorCount
	shouldTrip := cb.allowed && errorCount >= cb.errorThreshold
	var nextReset time.Time
	if shouldTrip {
		cb.allowed = false
		cb.lastTripped = now
		nextReset = now.Add(cb.timeWindow)
	}
	cb.stateLock.Unlock()

	metadata := cb.GetComponentMetadata()
	cb.NotifyLoggers(types.DebugLevel, "Circuit breaker recorded error", "component", metadata, "errorCount", errorCount, "errorThreshold", cb.errorThreshold)
	if shouldTrip {
		cb.NotifyLoggers(types.WarnLevel, "Circuit breaker tripped", "component", metadata, "errorThreshold", cb.errorThreshold, "nextReset", nextReset)
	}
}

// Reset moves the breaker back to the closed state.
func (cb *CircuitBreaker) Reset() {
	cb.stateLock.Lock()
	if cb.allowed {
		cb.stateLock.Unlock()
		return
	}
	cb.allowed = true
	cb.errorCount = 0
	cb.stateLock.Unlock()

	cb.signalReset()
	cb.NotifyLoggers(types.InfoLevel, "Circuit breaker reset", "component", cb.GetComponentMetadata(), "auto", false)
}

// Trip forces the breaker into the open state.
func (cb *CircuitBreaker) Trip() {
	now := time.Now()

	cb.stateLock.Lock()
	if !cb.allowed {
		cb.stateLock.Unlock()
		return
	}
	cb.allowed = false
	cb.lastTripped = now
	nextReset := now.Add(cb.timeWindow)
	cb.stateLock.Unlock()

	cb.NotifyLoggers(types.WarnLevel, "Circuit breaker tripped", "component", cb.GetComponentMetadata(), "errorThreshold", cb.errorThreshold, "nextReset", nextReset)
}
