package internallogger

import (
	"errors"
	"syscall"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"go.uber.org/zap"
)

func (z *ZapLoggerAdapter) current() *zap.Logger {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.logger
}

// Log writes msg at level. keysAndValues alternate string keys and values;
// component metadata is logged as an id/type/name object.
func (z *ZapLoggerAdapter) Log(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	zl := ConvertLevel(level)
	if !z.atomicLevel.Enabled(zl) {
		return
	}
	logger := z.current()
	if logger == nil {
		return
	}
	if ce := logger.Check(zl, msg); ce != nil {
		ce.Write(kvFields(keysAndValues)...)
	}
}

func (z *ZapLoggerAdapter) Debug(msg string, keysAndValues ...interface{}) {
	z.Log(types.DebugLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.Log(types.InfoLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	z.Log(types.WarnLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	z.Log(types.ErrorLevel, msg, keysAndValues...)
}

// DPanic panics after writing when the logger is in development mode.
func (z *ZapLoggerAdapter) DPanic(msg string, keysAndValues ...interface{}) {
	z.Log(types.DPanicLevel, msg, keysAndValues...)
}

// Panic writes the entry and panics.
func (z *ZapLoggerAdapter) Panic(msg string, keysAndValues ...interface{}) {
	z.Log(types.PanicLevel, msg, keysAndValues...)
}

// Fatal writes the entry and exits the process.
func (z *ZapLoggerAdapter) Fatal(msg string, keysAndValues ...interface{}) {
	z.Log(types.FatalLevel, msg, keysAndValues...)
}

// IsLevelEnabled reports whether entries at level pass the logger's level.
func (z *ZapLoggerAdapter) IsLevelEnabled(level types.LogLevel) bool {
	return z.atomicLevel.Enabled(ConvertLevel(level))
}

func (z *ZapLoggerAdapter) GetLevel() types.LogLevel {
	return convertZapLevel(z.atomicLevel.Level())
}

// SetLevel changes the level of the base core and of every sink without its own level.
func (z *ZapLoggerAdapter) SetLevel(level types.LogLevel) {
	z.atomicLevel.SetLevel(ConvertLevel(level))
}

// Flush syncs every output. Terminals and pipes cannot be synced; those errors are ignored.
func (z *ZapLoggerAdapter) Flush() error {
	logger := z.current()
	if logger == nil {
		return nil
	}
	if err := logger.Sync(); err != nil && !unsyncable(err) {
		return err
	}
	return nil
}

func unsyncable(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF)
}
