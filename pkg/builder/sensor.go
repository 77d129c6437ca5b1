package builder

import (
	"github.com/joeydtaylor/pulsescope/pkg/internal/sensor"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

type Sensor = types.Sensor

func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithLogger adds a logger to the Sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithMeter connects meters that count the sensor's events.
func SensorWithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(meter...)
}

func SensorWithOnStartFunc(callback ...func(c ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStartFunc(callback...)
}

func SensorWithOnStopFunc(callback ...func(c ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStopFunc(callback...)
}

// SensorWithOnRecordFunc registers a callback for every decoded or published record.
func SensorWithOnRecordFunc(callback ...func(c ComponentMetadata, rec PulseRecord)) types.Option[types.Sensor] {
	return sensor.WithOnRecordFunc(callback...)
}

func SensorWithOnErrorFunc(callback ...func(c ComponentMetadata, err error)) types.Option[types.Sensor] {
	return sensor.WithOnErrorFunc(callback...)
}

func SensorWithOnSubscribeFunc(callback ...func(c ComponentMetadata, channel uint16)) types.Option[types.Sensor] {
	return sensor.WithOnSubscribeFunc(callback...)
}

func SensorWithOnUnsubscribeFunc(callback ...func(c ComponentMetadata, channel uint16)) types.Option[types.Sensor] {
	return sensor.WithOnUnsubscribeFunc(callback...)
}
