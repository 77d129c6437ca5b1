package sensor

import "github.com/joeydtaylor/pulsescope/pkg/internal/types"

func register[T any](s *Sensor, list *[]T, callbacks []T) {
	s.callbackLock.Lock()
	*list = append(*list, callbacks...)
	s.callbackLock.Unlock()
}

// fire runs the callbacks registered when it was called, outside the lock, so a
// callback may register more callbacks.
func fire[T any](s *Sensor, list *[]T, call func(T)) {
	s.callbackLock.Lock()
	pending := append([]T(nil), (*list)...)
	s.callbackLock.Unlock()
	for _, cb := range pending {
		call(cb)
	}
}

// RegisterOnStart registers callbacks for start events.
func (s *Sensor) RegisterOnStart(callback ...func(types.ComponentMetadata)) {
	register(s, &s.OnStart, callback)
}

// InvokeOnStart invokes registered start callbacks.
func (s *Sensor) InvokeOnStart(c types.ComponentMetadata) {
	fire(s, &s.OnStart, func(cb func(types.ComponentMetadata)) {
		if cb != nil {
			cb(c)
		}
	})
}

func (s *Sensor) RegisterOnStop(callback ...func(types.ComponentMetadata)) {
	register(s, &s.OnStop, callback)
}

func (s *Sensor) InvokeOnStop(c types.ComponentMetadata) {
	fire(s, &s.OnStop, func(cb func(types.ComponentMetadata)) {
		if cb != nil {
			cb(c)
		}
	})
}

// RegisterOnRecord registers callbacks fired for every decoded record.
func (s *Sensor) RegisterOnRecord(callback ...func(types.ComponentMetadata, types.PulseRecord)) {
	register(s, &s.OnRecord, callback)
}

func (s *Sensor) InvokeOnRecord(c types.ComponentMetadata, rec types.PulseRecord) {
	fire(s, &s.OnRecord, func(cb func(types.ComponentMetadata, types.PulseRecord)) {
		if cb != nil {
			cb(c, rec)
		}
	})
}

func (s *Sensor) RegisterOnError(callback ...func(types.ComponentMetadata, error)) {
	register(s, &s.OnError, callback)
}

func (s *Sensor) InvokeOnError(c types.ComponentMetadata, err error) {
	fire(s, &s.OnError, func(cb func(types.ComponentMetadata, error)) {
		if cb != nil {
			cb(c, err)
		}
	})
}

func (s *Sensor) RegisterOnSubscribe(callback ...func(types.ComponentMetadata, uint16)) {
	register(s, &s.OnSubscribe, callback)
}

func (s *Sensor) InvokeOnSubscribe(c types.ComponentMetadata, channel uint16) {
	fire(s, &s.OnSubscribe, func(cb func(types.ComponentMetadata, uint16)) {
		if cb != nil {
			cb(c, channel)
		}
	})
}

func (s *Sensor) RegisterOnUnsubscribe(callback ...func(types.ComponentMetadata, uint16)) {
	register(s, &s.OnUnsubscribe, callback)
}

func (s *Sensor) InvokeOnUnsubscribe(c types.ComponentMetadata, channel uint16) {
	fire(s, &s.OnUnsubscribe, func(cb func(types.ComponentMetadata, uint16)) {
		if cb != nil {
			cb(c, channel)
		}
	})
}
