package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/pulsescope/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption configures a logger before it is built.
type LoggerOption func(*loggerConfig)

type loggerConfig struct {
	level       zapcore.Level
	development bool
	callerDepth int
	fields      map[string]interface{}
	core        zapcore.Core
}

// ZapLoggerAdapter implements types.Logger on top of zap. Every line carries the
// log schema field; sinks can be added and removed at runtime.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	baseCore    zapcore.Core
	baseFields  []zap.Field
	callerDepth int
	callerOn    bool
	development bool
	sinks       map[string]sink
}

// NewLogger builds a JSON logger writing to stdout unless LoggerWithCore replaces the base core.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	cfg := &loggerConfig{
		level:       zapcore.InfoLevel,
		callerDepth: 2,
		fields:      map[string]interface{}{logschema.FieldSchema: logschema.SchemaID},
	}
	for _, option := range options {
		option(cfg)
	}

	z := &ZapLoggerAdapter{
		atomicLevel: zap.NewAtomicLevelAt(cfg.level),
		encConfig:   encoderConfig(),
		callerDepth: cfg.callerDepth,
		callerOn:    true,
		development: cfg.development,
		baseFields:  baseFieldsOf(cfg.fields),
		sinks:       make(map[string]sink),
	}
	z.baseCore = cfg.core
	if z.baseCore == nil {
		z.baseCore = zapcore.NewCore(zapcore.NewJSONEncoder(z.encConfig), zapcore.Lock(os.Stdout), z.atomicLevel)
	}

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()
	return z
}
