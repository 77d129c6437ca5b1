package receiver

import (
	"sync/atomic"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

func (r *Receiver) hasLoggers() bool {
	return atomic.LoadInt32(&r.loggerCount) != 0
}

func (r *Receiver) hasSensors() bool {
	return atomic.LoadInt32(&r.sensorCount) != 0
}

// snapshotLoggers returns a stable copy; never hold loggersLock while logging.
func (r *Receiver) snapshotLoggers() []types.Logger {
	if !r.hasLoggers() {
		return nil
	}
	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()
	out := make([]types.Logger, len(r.loggers))
	copy(out, r.loggers)
	return out
}

func (r *Receiver) snapshotSensors() []types.Sensor {
	if !r.hasSensors() {
		return nil
	}
	r.sensorLock.Lock()
	defer r.sensorLock.Unlock()
	out := make([]types.Sensor, len(r.sensors))
	copy(out, r.sensors)
	return out
}

// NotifyLoggers sends a message to every attached logger at level.
func (r *Receiver) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range r.snapshotLoggers() {
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
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

func (r *Receiver) notifyStart() {
	if r.hasLoggers() {
		r.NotifyLoggers(types.InfoLevel, "receiver started",
			"component", r.componentMetadata,
			"event", "Start",
			"poll_timeout_ms", r.pollTimeout.Milliseconds(),
		)
	}
	for _, s := range r.snapshotSensors() {
		s.InvokeOnStart(r.componentMetadata)
	}
}

func (r *Receiver) notifyStop() {
	if r.hasLoggers() {
		r.NotifyLoggers(types.InfoLevel, "receiver stopped",
			"component", r.componentMetadata,
			"event", "Stop",
			"error", r.Err(),
		)
	}
	for _, s := range r.snapshotSensors() {
		s.InvokeOnStop(r.componentMetadata)
	}
}

func (r *Receiver) notifyRecord(rec types.PulseRecord) {
	if r.hasLoggers() {
		r.NotifyLoggers(types.DebugLevel, "record decoded",
			"component", r.componentMetadata,
			"event", "Decode",
			"record", codec.Describe(rec),
		)
	}
	for _, s := range r.snapshotSensors() {
		s.InvokeOnRecord(r.componentMetadata, rec)
	}
}

// reportError handles a non-fatal error: loggers, sensors, then error sinks.
func (r *Receiver) reportError(err error) {
	if r.hasLoggers() {
		r.NotifyLoggers(types.WarnLevel, "record skipped",
			"component", r.componentMetadata,
			"event", "Decode",
			"error", err,
		)
	}
	for _, s := range r.snapshotSensors() {
		s.InvokeOnError(r.componentMetadata, err)
	}
	for _, sink := range r.errorSinks {
		sink(err)
	}
}

func (r *Receiver) notifyTransportFailure(err error) {
	if r.hasLoggers() {
		r.NotifyLoggers(types.ErrorLevel, "transport failed",
			"component", r.componentMetadata,
			"event", "Poll",
			"error", err,
		)
	}
	for _, s := range r.snapshotSensors() {
		s.InvokeOnError(r.componentMetadata, err)
	}
}

func (r *Receiver) notifySubscribe(channel uint16) {
	if r.hasLoggers() {
		r.NotifyLoggers(types.DebugLevel, "channel subscribed",
			"component", r.componentMetadata,
			"event", "Subscribe",
			"channel", channel,
		)
	}
	for _, s := range r.snapshotSensors() {
		s.InvokeOnSubscribe(r.componentMetadata, channel)
	}
}

func (r *Receiver) notifyUnsubscribe(channel uint16) {
	if r.hasLoggers() {
		r.NotifyLoggers(types.DebugLevel, "channel unsubscribed",
			"component", r.componentMetadata,
			"event", "Unsubscribe",
			"channel", channel,
		)
	}
	for _, s := range r.snapshotSensors() {
		s.InvokeOnUnsubscribe(r.componentMetadata, channel)
	}
}

func (r *Receiver) notifySubscriptionError(op string, channel uint16, err error) {
	if r.hasLoggers() {
		r.NotifyLoggers(types.WarnLevel, op+" failed",
			"component", r.componentMetadata,
			"event", op,
			"channel", channel,
			"error", err,
		)
	}
}
