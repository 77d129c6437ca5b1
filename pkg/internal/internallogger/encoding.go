package internallogger

import (
	"sort"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// encoderConfig lays out entries with the logschema keys and UTC timestamps.
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       logschema.FieldTimestamp,
		LevelKey:      logschema.FieldLevel,
		NameKey:       logschema.FieldLogger,
		CallerKey:     logschema.FieldCaller,
		MessageKey:    logschema.FieldMessage,
		StacktraceKey: logschema.FieldStack,
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.UTC().Format(time.RFC3339Nano))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// baseFieldsOf orders the constant fields by key so every line lays them out alike.
func baseFieldsOf(fields map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		out = append(out, zap.Any(key, fields[key]))
	}
	return out
}

// kvFields converts alternating keys and values. A pair with a non-string key and
// a trailing key without a value are dropped.
func kvFields(keysAndValues []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, fieldOf(key, keysAndValues[i+1]))
	}
	return fields
}

func fieldOf(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case types.ComponentMetadata:
		return zap.Any(key, componentMap(v))
	case *types.ComponentMetadata:
		if v == nil {
			return zap.Skip()
		}
		return zap.Any(key, componentMap(*v))
	case error:
		return zap.NamedError(key, v)
	case time.Duration:
		return zap.Duration(key, v)
	default:
		return zap.Any(key, v)
	}
}

// componentMap keeps only the identity fields that are set.
func componentMap(meta types.ComponentMetadata) map[string]string {
	out := make(map[string]string, 3)
	if meta.ID != "" {
		out["id"] = meta.ID
	}
	if meta.Type != "" {
		out["type"] = meta.Type
	}
	if meta.Name != "" {
		out["name"] = meta.Name
	}
	return out
}
