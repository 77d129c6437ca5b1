package builder

import (
	internalLogger "github.com/joeydtaylor/pulsescope/pkg/internal/internallogger"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/logschema"
	"go.uber.org/zap/zapcore"
)

type Logger = types.Logger

type LoggerOption = internalLogger.LoggerOption

type SinkConfig = types.SinkConfig

type SinkType = types.SinkType

const (
	FileSink   SinkType = types.FileSink
	StdoutSink SinkType = types.StdoutSink
)

func NewLogger(options ...LoggerOption) types.Logger {
	return internalLogger.NewLogger(options...)
}

// LoggerWithLevel configures the logger to use the specified log level
func LoggerWithLevel(levelStr string) LoggerOption {
	return internalLogger.LoggerWithLevel(levelStr)
}

// LoggerWithDevelopment enables or disables development mode
func LoggerWithDevelopment(dev bool) LoggerOption {
	return internalLogger.LoggerWithDevelopment(dev)
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internalLogger.LoggerWithFields(fields)
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return internalLogger.LoggerWithSchema(schema)
}

// LoggerWithCore sends log entries to core instead of stdout.
func LoggerWithCore(core zapcore.Core) LoggerOption {
	return internalLogger.LoggerWithCore(core)
}

// ParseLogLevel maps "debug", "info", ... to a LogLevel, defaulting to info.
func ParseLogLevel(level string) LogLevel {
	return internalLogger.ParseLevel(level)
}

// Log schema constants for the standard pulsescope log format.
const (
	LogSchemaID    = logschema.SchemaID
	LogSchemaField = logschema.FieldSchema
)

type LogLevel = types.LogLevel

const (
	DebugLevel  = types.DebugLevel
	InfoLevel   = types.InfoLevel
	WarnLevel   = types.WarnLevel
	ErrorLevel  = types.ErrorLevel
	DPanicLevel = types.DPanicLevel
	PanicLevel  = types.PanicLevel
	FatalLevel  = types.FatalLevel
)
