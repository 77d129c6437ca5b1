package generator

import (
	"sync/atomic"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// requireNotStarted panics if the generator has already been started.
func (g *Generator) requireNotStarted(action string) {
	if atomic.LoadInt32(&g.started) == 1 {
		panic("generator: " + action + " called after Start")
	}
}

// ConnectPublisher sets the destination for generated records.
// Panics if called after Start.
func (g *Generator) ConnectPublisher(p types.Publisher) {
	g.requireNotStarted("ConnectPublisher")
	g.configLock.Lock()
	g.publisher = p
	g.configLock.Unlock()
}

// ConnectCircuitBreaker guards the publisher: while the breaker is open, ticks
// are skipped, and every publish error is recorded on it.
// Panics if called after Start.
func (g *Generator) ConnectCircuitBreaker(cb types.CircuitBreaker) {
	g.requireNotStarted("ConnectCircuitBreaker")
	g.configLock.Lock()
	g.breaker = cb
	g.configLock.Unlock()
}

// ConnectLogger registers loggers for the generator.
// Panics if called after Start.
func (g *Generator) ConnectLogger(loggers ...types.Logger) {
	g.requireNotStarted("ConnectLogger")
	g.loggersLock.Lock()
	defer g.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			g.loggers = append(g.loggers, l)
		}
	}
}

// ConnectSensor registers sensors for the generator.
// Panics if called after Start.
func (g *Generator) ConnectSensor(sensors ...types.Sensor) {
	g.requireNotStarted("ConnectSensor")
	g.sensorsLock.Lock()
	defer g.sensorsLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			g.sensors = append(g.sensors, s)
		}
	}
}

func (g *Generator) GetComponentMetadata() types.ComponentMetadata {
	g.metadataLock.Lock()
	defer g.metadataLock.Unlock()
	return g.componentMetadata
}

func (g *Generator) SetComponentMetadata(name string, id string) {
	g.metadataLock.Lock()
	defer g.metadataLock.Unlock()
	g.componentMetadata.Name = name
	g.componentMetadata.ID = id
}

func (g *Generator) setChannels(first, last uint16) {
	g.requireNotStarted("SetChannels")
	if last < first {
		first, last = last, first
	}
	g.configLock.Lock()
	g.firstChannel, g.lastChannel = first, last
	g.configLock.Unlock()
}

func (g *Generator) setShape(samples, presamples uint32) {
	g.requireNotStarted("SetSamples")
	if presamples > samples {
		presamples = samples
	}
	g.configLock.Lock()
	g.samples, g.presamples = samples, presamples
	g.configLock.Unlock()
}
