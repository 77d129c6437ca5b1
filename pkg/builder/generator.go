package builder

import (
	"context"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/generator"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

type Generator = types.Generator

// NewGenerator creates a synthetic pulse source. Connect a publisher before Start.
func NewGenerator(ctx context.Context, options ...types.Option[types.Generator]) types.Generator {
	return generator.NewGenerator(ctx, options...)
}

func GeneratorWithPublisher(p types.Publisher) types.Option[types.Generator] {
	return generator.WithPublisher(p)
}

// GeneratorWithCircuitBreaker pauses publishing while cb is open.
func GeneratorWithCircuitBreaker(cb types.CircuitBreaker) types.Option[types.Generator] {
	return generator.WithCircuitBreaker(cb)
}

func GeneratorWithLogger(l ...types.Logger) types.Option[types.Generator] {
	return generator.WithLogger(l...)
}

func GeneratorWithSensor(s ...types.Sensor) types.Option[types.Generator] {
	return generator.WithSensor(s...)
}

func GeneratorWithComponentMetadata(name string, id string) types.Option[types.Generator] {
	return generator.WithComponentMetadata(name, id)
}

// GeneratorWithChannels limits output to channels first..last inclusive.
func GeneratorWithChannels(first, last uint16) types.Option[types.Generator] {
	return generator.WithChannels(first, last)
}

func GeneratorWithSamples(samples, presamples uint32) types.Option[types.Generator] {
	return generator.WithSamples(samples, presamples)
}

func GeneratorWithTimebase(timebase float32) types.Option[types.Generator] {
	return generator.WithTimebase(timebase)
}

func GeneratorWithInterval(interval time.Duration) types.Option[types.Generator] {
	return generator.WithInterval(interval)
}

// GeneratorWithNoise adds Gaussian noise with standard deviation sigma.
func GeneratorWithNoise(sigma float64) types.Option[types.Generator] {
	return generator.WithNoise(sigma)
}

func GeneratorWithSeed(seed int64) types.Option[types.Generator] {
	return generator.WithSeed(seed)
}
