package sensor

import "github.com/joeydtaylor/pulsescope/pkg/internal/types"

// ConnectLogger registers loggers for sensor output.
func (s *Sensor) ConnectLogger(loggers ...types.Logger) {
	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			s.loggers = append(s.loggers, l)
		}
	}
}

// ConnectMeter registers meters that the built-in callbacks feed.
func (s *Sensor) ConnectMeter(meters ...types.Meter) {
	s.metersLock.Lock()
	defer s.metersLock.Unlock()
	for _, m := range meters {
		if m != nil {
			s.meters = append(s.meters, m)
		}
	}
}

// GetComponentMetadata returns the sensor metadata.
func (s *Sensor) GetComponentMetadata() types.ComponentMetadata {
	s.metadataLock.Lock()
	defer s.metadataLock.Unlock()
	return s.componentMetadata
}

func (s *Sensor) SetComponentMetadata(name string, id string) {
	s.metadataLock.Lock()
	defer s.metadataLock.Unlock()
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
}

// GetMeters returns a copy of configured meters.
func (s *Sensor) GetMeters() []types.Meter {
	return s.snapshotMeters()
}

func (s *Sensor) snapshotMeters() []types.Meter {
	s.metersLock.Lock()
	defer s.metersLock.Unlock()
	return append([]types.Meter(nil), s.meters...)
}

// NotifyLoggers sends a message to all attached loggers.
func (s *Sensor) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	s.loggersLock.Lock()
	loggers := append([]types.Logger(nil), s.loggers...)
	s.loggersLock.Unlock()
	for _, logger := range loggers {
		if level < logger.GetLevel() {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
