// Package circuitbreaker halts a failing operation once errorThreshold errors
// have been recorded and allows it again after the reset window.
package circuitbreaker

import (
	"sync"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

type CircuitBreaker struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	stateLock      sync.Mutex
	errorThreshold int
	timeWindow     time.Duration
	debounce       time.Duration
	errorCount     int
	allowed        bool
	lastTripped    time.Time
	lastErrorTime  time.Time

	resetLock       sync.Mutex
	resetNotifyChan chan struct{}

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewCircuitBreaker trips after errorThreshold errors and closes again timeWindow
// after tripping. A non-positive timeWindow closes on the next Allow.
func NewCircuitBreaker(errorThreshold int, timeWindow time.Duration, options ...types.Option[types.CircuitBreaker]) types.CircuitBreaker {
	if errorThreshold < 1 {
		errorThreshold = 1
	}
	cb := &CircuitBreaker{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "CIRCUIT_BREAKER",
		},
		errorThreshold:  errorThreshold,
		timeWindow:      timeWindow,
		allowed:         true,
		resetNotifyChan: make(chan struct{}),
	}
	for _, option := range options {
		if option != nil {
			option(cb)
		}
	}
	return cb
}

func (cb *CircuitBreaker) GetComponentMetadata() types.ComponentMetadata {
	cb.metadataLock.Lock()
	defer cb.metadataLock.Unlock()
	return cb.componentMetadata
}

func (cb *CircuitBreaker) SetComponentMetadata(name string, id string) {
	cb.metadataLock.Lock()
	defer cb.metadataLock.Unlock()
	cb.componentMetadata.Name = name
	cb.componentMetadata.ID = id
}

// NotifyOnReset returns a channel that is closed at the next reset.
func (cb *CircuitBreaker) NotifyOnReset() <-chan struct{} {
	cb.resetLock.Lock()
	defer cb.resetLock.Unlock()
	return cb.resetNotifyChan
}

func (cb *CircuitBreaker) signalReset() {
	cb.resetLock.Lock()
	close(cb.resetNotifyChan)
	cb.resetNotifyChan = make(chan struct{})
	cb.resetLock.Unlock()
}

func (cb *CircuitBreaker) setDebounce(d time.Duration) {
	cb.stateLock.Lock()
	cb.debounce = d
	cb.stateLock.Unlock()
}

var _ types.CircuitBreaker = (*CircuitBreaker)(nil)
