package types

// Sensor receives lifecycle and data events from pipeline components.
type Sensor interface {
	GetComponentMetadata() ComponentMetadata
	ConnectLogger(...Logger)
	ConnectMeter(...Meter)
	GetMeters() []Meter

	RegisterOnStart(...func(c ComponentMetadata))
	RegisterOnStop(...func(c ComponentMetadata))
	RegisterOnRecord(...func(c ComponentMetadata, rec PulseRecord))
	RegisterOnError(...func(c ComponentMetadata, err error))
	RegisterOnSubscribe(...func(c ComponentMetadata, channel uint16))
	RegisterOnUnsubscribe(...func(c ComponentMetadata, channel uint16))

	InvokeOnStart(c ComponentMetadata)
	InvokeOnStop(c ComponentMetadata)
	InvokeOnRecord(c ComponentMetadata, rec PulseRecord)
	InvokeOnError(c ComponentMetadata, err error)
	InvokeOnSubscribe(c ComponentMetadata, channel uint16)
	InvokeOnUnsubscribe(c ComponentMetadata, channel uint16)
}
