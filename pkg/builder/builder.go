// Package builder is the public entry point to pulsescope. It re-exports the
// record types and wraps the internal constructors and options so callers
// never import pkg/internal directly.
package builder

import (
	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

type ComponentMetadata = types.ComponentMetadata

type PulseRecord = types.PulseRecord

type SampleKind = types.SampleKind

type Samples = types.Samples

type (
	Int8Samples    = types.Int8Samples
	Uint8Samples   = types.Uint8Samples
	Int16Samples   = types.Int16Samples
	Uint16Samples  = types.Uint16Samples
	Int32Samples   = types.Int32Samples
	Uint32Samples  = types.Uint32Samples
	Int64Samples   = types.Int64Samples
	Uint64Samples  = types.Uint64Samples
	Float64Samples = types.Float64Samples
)

const (
	SampleInt8    = types.SampleInt8
	SampleUint8   = types.SampleUint8
	SampleInt16   = types.SampleInt16
	SampleUint16  = types.SampleUint16
	SampleInt32   = types.SampleInt32
	SampleUint32  = types.SampleUint32
	SampleInt64   = types.SampleInt64
	SampleUint64  = types.SampleUint64
	SampleFloat64 = types.SampleFloat64
)

type Frame = types.Frame

type Transport = types.Transport

type Publisher = types.Publisher

type Consumer = types.Consumer

type ConsumerFunc = types.ConsumerFunc

type ErrorSink = types.ErrorSink

type ChannelSubscriber = types.ChannelSubscriber

var (
	ErrBadHeaderLength       = types.ErrBadHeaderLength
	ErrUnsupportedVersion    = types.ErrUnsupportedVersion
	ErrUnknownTypeCode       = types.ErrUnknownTypeCode
	ErrPayloadLengthMismatch = types.ErrPayloadLengthMismatch
	ErrMalformedFrame        = types.ErrMalformedFrame
	ErrEmptyBuffer           = types.ErrEmptyBuffer
	ErrAlreadyTerminated     = types.ErrAlreadyTerminated
	ErrTransportClosed       = types.ErrTransportClosed
	ErrUnencodableKind       = types.ErrUnencodableKind
)

// IsProtocolError reports whether err came from decoding a malformed record.
func IsProtocolError(err error) bool {
	return types.IsProtocolError(err)
}

// HeaderSize is the length of an encoded pulse header.
const HeaderSize = codec.HeaderSize

// EncodePulse returns the header and payload frames for rec.
func EncodePulse(rec PulseRecord) (header, payload []byte, err error) {
	return codec.Encode(rec)
}

// DecodePulse parses a header and payload pair.
func DecodePulse(header, payload []byte) (PulseRecord, error) {
	return codec.Decode(header, payload)
}

// DecodeFrame parses a two-part transport frame.
func DecodeFrame(frame Frame) (PulseRecord, error) {
	return codec.DecodeFrame(frame)
}

// DescribePulse renders a one-line summary of rec.
func DescribePulse(rec PulseRecord) string {
	return codec.Describe(rec)
}
