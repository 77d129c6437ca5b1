package circuitbreaker

import "github.com/joeydtaylor/pulsescope/pkg/internal/types"

func (cb *CircuitBreaker) ConnectLogger(loggers ...types.Logger) {
	cb.loggersLock.Lock()
	defer cb.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			cb.loggers = append(cb.loggers, l)
		}
	}
}

// NotifyLoggers emits a log event to all configured loggers.
func (cb *CircuitBreaker) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	cb.loggersLock.Lock()
	loggers := append([]types.Logger(nil), cb.loggers...)
	cb.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
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
