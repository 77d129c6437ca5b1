package types

import (
	"context"
	"time"
)

const (
	MetricRecordsDecoded      = "records_decoded"
	MetricDecodeErrors        = "decode_errors"
	MetricSubscriptions       = "subscriptions"
	MetricUnsubscriptions     = "unsubscriptions"
	MetricReceiverStarts      = "receiver_starts"
	MetricReceiverStops       = "receiver_stops"
	MetricCurrentCpuPercent   = "current_cpu_percentage"
	MetricCurrentRamPercent   = "current_ram_percentage"
	MetricChannelRecordPrefix = "channel_records_"
)

// Meter accumulates named counters.
type Meter interface {
	GetComponentMetadata() ComponentMetadata
	ConnectLogger(...Logger)
	IncrementCount(name string)
	IncrementChannel(channel uint16)
	GetMetricCount(name string) uint64
	Snapshot() map[string]uint64
	Monitor(ctx context.Context, interval time.Duration)
}
