package internallogger

import (
	"github.com/joeydtaylor/pulsescope/pkg/logschema"
	"go.uber.org/zap/zapcore"
)

// LoggerWithLevel sets the minimum level from its name ("debug", "info", ...).
// Unknown names fall back to info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.level = ConvertLevel(ParseLevel(levelStr))
	}
}

// LoggerWithDevelopment enables zap development mode.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.development = dev
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(cfg *loggerConfig) {
		for key, value := range fields {
			if key == "" {
				continue
			}
			cfg.fields[key] = value
		}
	}
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.fields[logschema.FieldSchema] = schema
	}
}

// ZapAdapterWithCallerSkip sets the number of caller frames to skip.
func ZapAdapterWithCallerSkip(skip int) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.callerDepth += skip
	}
}

// LoggerWithCore replaces the stdout core, for example with a zaptest observer.
func LoggerWithCore(core zapcore.Core) LoggerOption {
	return func(cfg *loggerConfig) {
		cfg.core = core
	}
}
