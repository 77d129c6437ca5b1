package internallogger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/logschema"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestKVFieldsDropsBadPairs(t *testing.T) {
	fields := kvFields([]interface{}{"a", 1, 7, "lost", "b", time.Second, "orphan"})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != "a" || fields[1].Key != "b" {
		t.Fatalf("unexpected keys %q, %q", fields[0].Key, fields[1].Key)
	}
	if fields[1].Type != zapcore.DurationType {
		t.Fatalf("duration logged as %v", fields[1].Type)
	}
}

func TestFieldOfComponentMetadata(t *testing.T) {
	f := fieldOf("component", types.ComponentMetadata{ID: "r1", Type: "RECEIVER"})
	m, ok := f.Interface.(map[string]string)
	if !ok {
		t.Fatalf("component field holds %T", f.Interface)
	}
	if _, named := m["name"]; named || m["id"] != "r1" || m["type"] != "RECEIVER" {
		t.Fatalf("unexpected component map %v", m)
	}
	if f := fieldOf("component", (*types.ComponentMetadata)(nil)); f.Type != zapcore.SkipType {
		t.Fatalf("nil metadata should be skipped, got %v", f.Type)
	}
	if f := fieldOf("error", errors.New("boom")); f.Type != zapcore.ErrorType {
		t.Fatalf("error logged as %v", f.Type)
	}
}

func TestBaseFieldsAreSorted(t *testing.T) {
	fields := baseFieldsOf(map[string]interface{}{"zeta": 1, "": 2, logschema.FieldSchema: logschema.SchemaID, "alpha": 3})
	var keys []string
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	if strings.Join(keys, ",") != "alpha,log_schema,zeta" {
		t.Fatalf("base field order = %v", keys)
	}
}

func TestLevelTablesAgree(t *testing.T) {
	for name, level := range levelNames {
		if got := convertZapLevel(ConvertLevel(level)); got != level {
			t.Fatalf("%s: %v did not survive the zap round trip (%v)", name, level, got)
		}
	}
	if got := ConvertLevel(types.LogLevel(99)); got != zapcore.InfoLevel {
		t.Fatalf("unknown level converted to %v", got)
	}
	if got := convertZapLevel(zapcore.Level(99)); got != types.InfoLevel {
		t.Fatalf("unknown zap level converted to %v", got)
	}
	if ParseLevel("Warning") != types.WarnLevel || ParseLevel(" WARN ") != types.WarnLevel || ParseLevel("bogus") != types.InfoLevel {
		t.Fatalf("ParseLevel aliases broken")
	}
}

func TestUnsyncable(t *testing.T) {
	if !unsyncable(&os.PathError{Op: "sync", Path: "/dev/stdout", Err: syscall.EINVAL}) {
		t.Fatalf("EINVAL from a terminal sync should be ignored")
	}
	if unsyncable(errors.New("disk full")) {
		t.Fatalf("ordinary errors must be reported")
	}
}

func TestLogWithoutLoggerDoesNotPanic(t *testing.T) {
	logger := NewLogger()
	logger.mu.Lock()
	logger.logger = nil
	logger.mu.Unlock()

	logger.Info("dropped")
	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush = %v", err)
	}
}

func TestSinkLevelFiltersFurther(t *testing.T) {
	core, obs := observer.New(zapcore.DebugLevel)
	logger := NewLogger(LoggerWithCore(core), LoggerWithLevel("debug"))
	path := filepath.Join(t.TempDir(), "warn.log")

	err := logger.AddSink("warnings", types.SinkConfig{
		Type:   string(types.FileSink),
		Config: map[string]interface{}{SinkPathKey: path, SinkLevelKey: "warn"},
	})
	if err != nil {
		t.Fatalf("AddSink: %v", err)
	}
	logger.Debug("debug line")
	logger.Warn("warn line")
	if err := logger.RemoveSink("warnings"); err != nil {
		t.Fatalf("RemoveSink: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sink file: %v", err)
	}
	if strings.Contains(string(data), "debug line") || !strings.Contains(string(data), "warn line") {
		t.Fatalf("sink file content:\n%s", data)
	}
	if obs.Len() != 2 {
		t.Fatalf("base core saw %d entries, want 2", obs.Len())
	}
}

func TestAddSinkReplacesIdentifier(t *testing.T) {
	logger := NewLogger(LoggerWithCore(zapcore.NewNopCore()))
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "nested", "second.log")

	for _, p := range []string{first, second} {
		if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{SinkPathKey: p}}); err != nil {
			t.Fatalf("AddSink(%s): %v", p, err)
		}
	}
	logger.Info("after replace")
	_ = logger.Flush()

	ids, _ := logger.ListSinks()
	if len(ids) != 1 || ids[0] != "file" {
		t.Fatalf("sinks = %v", ids)
	}
	if data, _ := os.ReadFile(first); strings.Contains(string(data), "after replace") {
		t.Fatalf("replaced sink still receives entries")
	}
	if data, _ := os.ReadFile(second); !strings.Contains(string(data), `"log_schema":"pulsescope.log.v1"`) {
		t.Fatalf("second sink content:\n%s", data)
	}
}
