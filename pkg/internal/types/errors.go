package types

import (
	"errors"
	"fmt"
)

// Protocol errors.
var (
	ErrBadHeaderLength         = errors.New("bad header length")
	ErrUnsupportedVersion      = errors.New("unsupported header version")
	ErrUnknownTypeCode         = errors.New("unknown sample type code")
	ErrPresamplesExceedSamples = errors.New("presamples exceed samples")
	ErrPayloadLengthMismatch   = errors.New("payload length mismatch")
	ErrMalformedFrame          = errors.New("malformed frame")
	ErrCorruptPayload          = errors.New("payload could not be decompressed")
)

// Buffer errors.
var ErrEmptyBuffer = errors.New("empty buffer")

// Receiver errors.
var (
	ErrAlreadyTerminated = errors.New("receiver already terminated")
	ErrTransportClosed   = errors.New("transport closed")
)

// ErrUnencodableKind is returned when encoding a derived record with no wire type code.
var ErrUnencodableKind = errors.New("sample kind has no wire type code")

// ProtocolError describes a record that could not be decoded. Err is one of the
// protocol sentinels above.
type ProtocolError struct {
	Op     string
	Err    error
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// NewProtocolError builds a ProtocolError with a formatted detail.
func NewProtocolError(op string, sentinel error, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Op: op, Err: sentinel, Detail: fmt.Sprintf(format, args...)}
}

// IsProtocolError reports whether err was caused by a malformed or undecodable record.
func IsProtocolError(err error) bool {
	var perr *ProtocolError
	return errors.As(err, &perr)
}
