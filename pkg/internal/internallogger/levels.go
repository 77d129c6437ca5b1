package internallogger

import (
	"strings"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

var levelNames = map[string]types.LogLevel{
	"debug":   types.DebugLevel,
	"info":    types.InfoLevel,
	"warn":    types.WarnLevel,
	"warning": types.WarnLevel,
	"error":   types.ErrorLevel,
	"dpanic":  types.DPanicLevel,
	"panic":   types.PanicLevel,
	"fatal":   types.FatalLevel,
}

var zapLevels = map[types.LogLevel]zapcore.Level{
	types.DebugLevel:  zapcore.DebugLevel,
	types.InfoLevel:   zapcore.InfoLevel,
	types.WarnLevel:   zapcore.WarnLevel,
	types.ErrorLevel:  zapcore.ErrorLevel,
	types.DPanicLevel: zapcore.DPanicLevel,
	types.PanicLevel:  zapcore.PanicLevel,
	types.FatalLevel:  zapcore.FatalLevel,
}

// ParseLevel maps a level name, in any case, to a LogLevel. Unknown names map to info.
func ParseLevel(name string) types.LogLevel {
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}
	return types.InfoLevel
}

// ConvertLevel converts a types.LogLevel to a zap level.
func ConvertLevel(level types.LogLevel) zapcore.Level {
	if zl, ok := zapLevels[level]; ok {
		return zl
	}
	return zapcore.InfoLevel
}

func convertZapLevel(zl zapcore.Level) types.LogLevel {
	for level, candidate := range zapLevels {
		if candidate == zl {
			return level
		}
	}
	return types.InfoLevel
}
