package logschema

// Log schema constants for pulsescope structured logs.
const (
	SchemaID    = "pulsescope.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"
	FieldChannel   = "channel"
	FieldTrace     = "trace"
	FieldRecord    = "record"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
