package builder

import (
	"context"

	"github.com/joeydtaylor/pulsescope/pkg/internal/meter"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

type Meter = types.Meter

// MetricName is a type alias for metric names used in the Meter.
type MetricName string

const (
	MetricRecordsDecoded    MetricName = MetricName(types.MetricRecordsDecoded)
	MetricDecodeErrors      MetricName = MetricName(types.MetricDecodeErrors)
	MetricSubscriptions     MetricName = MetricName(types.MetricSubscriptions)
	MetricUnsubscriptions   MetricName = MetricName(types.MetricUnsubscriptions)
	MetricReceiverStarts    MetricName = MetricName(types.MetricReceiverStarts)
	MetricReceiverStops     MetricName = MetricName(types.MetricReceiverStops)
	MetricCurrentCpuPercent MetricName = MetricName(types.MetricCurrentCpuPercent)
	MetricCurrentRamPercent MetricName = MetricName(types.MetricCurrentRamPercent)
)

// ChannelMetric names the per-channel record counter.
func ChannelMetric(channel uint16) MetricName {
	return MetricName(meter.ChannelMetric(channel))
}

func NewMeter(ctx context.Context, options ...types.Option[types.Meter]) types.Meter {
	return meter.NewMeter(ctx, options...)
}

func MeterWithLogger(loggers ...types.Logger) types.Option[types.Meter] {
	return meter.WithLogger(loggers...)
}

func MeterWithComponentMetadata(name string, id string) types.Option[types.Meter] {
	return meter.WithComponentMetadata(name, id)
}
