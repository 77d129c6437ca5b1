package sensor

import "github.com/joeydtaylor/pulsescope/pkg/internal/types"

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.IncrementCount(metric)
	}
}

func (s *Sensor) incrementChannelCounters(channel uint16) {
	for _, m := range s.snapshotMeters() {
		m.IncrementChannel(channel)
	}
}

// decorateCallbacks appends the meter-feeding callbacks after the caller's options.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	return append(
		options,
		WithOnStartFunc(func(c types.ComponentMetadata) {
			s.incrementMeterCounters(types.MetricReceiverStarts)
		}),
		WithOnStopFunc(func(c types.ComponentMetadata) {
			s.incrementMeterCounters(types.MetricReceiverStops)
		}),
		WithOnRecordFunc(func(c types.ComponentMetadata, rec types.PulseRecord) {
			s.incrementMeterCounters(types.MetricRecordsDecoded)
			s.incrementChannelCounters(rec.ChannelIndex)
		}),
		WithOnErrorFunc(func(c types.ComponentMetadata, err error) {
			if types.IsProtocolError(err) {
				s.incrementMeterCounters(types.MetricDecodeErrors)
			}
		}),
		WithOnSubscribeFunc(func(c types.ComponentMetadata, channel uint16) {
			s.incrementMeterCounters(types.MetricSubscriptions)
		}),
		WithOnUnsubscribeFunc(func(c types.ComponentMetadata, channel uint16) {
			s.incrementMeterCounters(types.MetricUnsubscriptions)
		}),
	)
}
