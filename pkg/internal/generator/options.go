package generator

import (
	"math/rand"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

func WithPublisher(p types.Publisher) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.ConnectPublisher(p)
	}
}

func WithCircuitBreaker(cb types.CircuitBreaker) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.ConnectCircuitBreaker(cb)
	}
}

func WithLogger(logger ...types.Logger) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.ConnectLogger(logger...)
	}
}

func WithSensor(sensor ...types.Sensor) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.ConnectSensor(sensor...)
	}
}

func WithComponentMetadata(name string, id string) types.Option[types.Generator] {
	return func(g types.Generator) {
		g.SetComponentMetadata(name, id)
	}
}

// WithChannels limits generated records to channels first..last inclusive.
func WithChannels(first, last uint16) types.Option[types.Generator] {
	return func(g types.Generator) {
		if gg, ok := g.(*Generator); ok {
			gg.setChannels(first, last)
		}
	}
}

// WithSamples sets the record length and trigger position.
func WithSamples(samples, presamples uint32) types.Option[types.Generator] {
	return func(g types.Generator) {
		if gg, ok := g.(*Generator); ok {
			gg.setShape(samples, presamples)
		}
	}
}

// WithTimebase sets the seconds-per-sample written into each record.
func WithTimebase(timebase float32) types.Option[types.Generator] {
	return func(g types.Generator) {
		if gg, ok := g.(*Generator); ok && timebase > 0 {
			gg.requireNotStarted("WithTimebase")
			gg.timebase = timebase
		}
	}
}

func WithInterval(interval time.Duration) types.Option[types.Generator] {
	return func(g types.Generator) {
		if gg, ok := g.(*Generator); ok && interval > 0 {
			gg.requireNotStarted("WithInterval")
			gg.interval = interval
		}
	}
}

// WithNoise adds Gaussian noise with standard deviation sigma, in arbs.
func WithNoise(sigma float64) types.Option[types.Generator] {
	return func(g types.Generator) {
		if gg, ok := g.(*Generator); ok && sigma >= 0 {
			gg.requireNotStarted("WithNoise")
			gg.noise = sigma
		}
	}
}

// WithSeed makes channel choice and noise reproducible.
func WithSeed(seed int64) types.Option[types.Generator] {
	return func(g types.Generator) {
		if gg, ok := g.(*Generator); ok {
			gg.rng = rand.New(rand.NewSource(seed))
		}
	}
}
