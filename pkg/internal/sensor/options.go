// Package sensor provides options for configuring Sensor components.
//
// Options attach loggers and meters and register callbacks for the events a
// receiver fires.
package sensor

import "github.com/joeydtaylor/pulsescope/pkg/internal/types"

// WithLogger adds loggers to a Sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectLogger(logger...)
	}
}

// WithMeter connects meters that count sensor events.
func WithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectMeter(meter...)
	}
}

func WithOnStartFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStart(callback...)
	}
}

func WithOnStopFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStop(callback...)
	}
}

// WithOnRecordFunc registers callbacks fired for every decoded record.
func WithOnRecordFunc(callback ...func(c types.ComponentMetadata, rec types.PulseRecord)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnRecord(callback...)
	}
}

// WithOnErrorFunc registers callbacks for skipped records and transport failures.
func WithOnErrorFunc(callback ...func(c types.ComponentMetadata, err error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnError(callback...)
	}
}

func WithOnSubscribeFunc(callback ...func(c types.ComponentMetadata, channel uint16)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnSubscribe(callback...)
	}
}

func WithOnUnsubscribeFunc(callback ...func(c types.ComponentMetadata, channel uint16)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnUnsubscribe(callback...)
	}
}
