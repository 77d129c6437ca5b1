package builder

import (
	"context"

	"github.com/joeydtaylor/pulsescope/pkg/internal/monitor"
	"github.com/joeydtaylor/pulsescope/pkg/internal/spectral"
	"github.com/joeydtaylor/pulsescope/pkg/internal/trace"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

type Monitor = monitor.Monitor

type Trace = trace.Trace

type Estimator = spectral.Estimator

// DefaultHistoryLength is the number of records a trace keeps by default.
const DefaultHistoryLength = trace.DefaultLength

// NewMonitor creates a monitor whose trace bindings drive subscriptions on subscriber.
// Connect it to a receiver with ReceiverWithOutput or Receiver.ConnectOutput.
func NewMonitor(ctx context.Context, subscriber types.ChannelSubscriber, options ...types.Option[*monitor.Monitor]) *monitor.Monitor {
	return monitor.New(ctx, subscriber, options...)
}

func MonitorWithBufferSize(n int) types.Option[*monitor.Monitor] {
	return monitor.WithBufferSize(n)
}

func MonitorWithHistoryLength(n int) types.Option[*monitor.Monitor] {
	return monitor.WithHistoryLength(n)
}

func MonitorWithEstimator(e *spectral.Estimator) types.Option[*monitor.Monitor] {
	return monitor.WithEstimator(e)
}

func MonitorWithLogger(loggers ...types.Logger) types.Option[*monitor.Monitor] {
	return monitor.WithLogger(loggers...)
}

func MonitorWithComponentMetadata(name string, id string) types.Option[*monitor.Monitor] {
	return monitor.WithComponentMetadata(name, id)
}

func TraceWithLength(n int) types.Option[*trace.Trace] {
	return trace.WithLength(n)
}

// TraceWithSpectra computes a PSD for every record the trace accepts.
func TraceWithSpectra(enabled bool) types.Option[*trace.Trace] {
	return trace.WithSpectra(enabled)
}

// TraceWithRelTol sets the relative tolerance used to detect incompatible records.
func TraceWithRelTol(rtol float64) types.Option[*trace.Trace] {
	return trace.WithRelTol(rtol)
}

// NewEstimator returns a spectral estimator caching up to size windows and axes.
func NewEstimator(size int) *spectral.Estimator {
	return spectral.New(size)
}

// RootPSD converts a power spectral density to its square root.
func RootPSD(psd []float64) []float64 {
	return spectral.RootPSD(psd)
}

// BaselineSubtracted returns the record's samples minus its pretrigger mean.
func BaselineSubtracted(rec PulseRecord) []float64 {
	return spectral.BaselineSubtracted(rec)
}
