package monitor

import (
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

func (m *Monitor) ConnectLogger(loggers ...types.Logger) {
	m.loggersLock.Lock()
	defer m.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
}

func (m *Monitor) snapshotLoggers() []types.Logger {
	m.loggersLock.Lock()
	defer m.loggersLock.Unlock()
	if len(m.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(m.loggers))
	copy(out, m.loggers)
	return out
}

func (m *Monitor) notify(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := m.snapshotLoggers()
	if len(loggers) == 0 {
		return
	}
	kv := append([]interface{}{"component", m.componentMetadata}, keysAndValues...)
	for _, l := range loggers {
		if level < l.GetLevel() {
			continue
		}
		switch level {
		case types.DebugLevel:
			l.Debug(msg, kv...)
		case types.InfoLevel:
			l.Info(msg, kv...)
		case types.WarnLevel:
			l.Warn(msg, kv...)
		default:
			l.Error(msg, kv...)
		}
	}
}

func (m *Monitor) notifyError(event string, err error, keysAndValues ...interface{}) {
	m.notify(types.WarnLevel, event+" failed", append([]interface{}{"event", event, "error", err}, keysAndValues...)...)
}

func (m *Monitor) notifySubscription(channel uint16, subscribed bool) {
	event := "Unsubscribe"
	if subscribed {
		event = "Subscribe"
	}
	m.notify(types.DebugLevel, "subscription changed", "event", event, "channel", channel)
}
