package generator

import "github.com/joeydtaylor/pulsescope/pkg/internal/types"

// NotifyLoggers emits a log event to all configured loggers.
func (g *Generator) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range g.snapshotLoggers() {
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

func (g *Generator) notifyStart() {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnStart(meta)
	}
}

func (g *Generator) notifyStop() {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnStop(meta)
	}
}

func (g *Generator) notifyRecord(rec types.PulseRecord) {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnRecord(meta, rec)
	}
	g.NotifyLoggers(types.DebugLevel, "pulse published",
		"component", meta, "event", "Publish", "channel", rec.ChannelIndex, "frame", rec.FrameIndex)
}

func (g *Generator) notifyError(err error) {
	meta := g.GetComponentMetadata()
	for _, sensor := range g.snapshotSensors() {
		sensor.InvokeOnError(meta, err)
	}
	g.NotifyLoggers(types.WarnLevel, "publish failed", "component", meta, "event", "Publish", "error", err)
}

func (g *Generator) snapshotLoggers() []types.Logger {
	g.loggersLock.Lock()
	defer g.loggersLock.Unlock()
	return append([]types.Logger(nil), g.loggers...)
}

func (g *Generator) snapshotSensors() []types.Sensor {
	g.sensorsLock.Lock()
	defer g.sensorsLock.Unlock()
	return append([]types.Sensor(nil), g.sensors...)
}
