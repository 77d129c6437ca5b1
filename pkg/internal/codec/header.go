package codec

import (
	"bytes"
	"encoding/binary"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

const (
	// HeaderSize is the encoded size of a pulse record header in bytes.
	HeaderSize = 36

	// Version is the only header version this codec understands.
	Version uint8 = 0
)

// wireHeader mirrors the little-endian header layout field for field.
type wireHeader struct {
	Channel     uint16
	Version     uint8
	TypeCode    uint8
	NPresamples uint32
	NSamples    uint32
	Timebase    float32
	VoltsPerArb float32
	TriggerTime uint64
	FrameIndex  uint64
}

// typeCodes is the fixed code-to-kind table shared with the producer.
var typeCodes = [...]types.SampleKind{
	0: types.SampleInt8,
	1: types.SampleUint8,
	2: types.SampleInt16,
	3: types.SampleUint16,
	4: types.SampleInt32,
	5: types.SampleUint32,
	6: types.SampleInt64,
	7: types.SampleUint64,
}

// KindForTypeCode maps a wire type code to its sample kind.
func KindForTypeCode(code uint8) (types.SampleKind, bool) {
	if int(code) >= len(typeCodes) {
		return 0, false
	}
	return typeCodes[code], true
}

// TypeCodeForKind is the inverse of KindForTypeCode.
func TypeCodeForKind(kind types.SampleKind) (uint8, bool) {
	for code, k := range typeCodes {
		if k == kind {
			return uint8(code), true
		}
	}
	return 0, false
}

func parseHeader(b []byte) (wireHeader, error) {
	var h wireHeader
	if len(b) != HeaderSize {
		return h, types.NewProtocolError("decode", types.ErrBadHeaderLength, "got %d bytes, want %d", len(b), HeaderSize)
	}
	// Reading a fixed-size struct from a buffer of exactly the right length cannot fail.
	_ = binary.Read(bytes.NewReader(b), binary.LittleEndian, &h)
	if h.Version != Version {
		return h, types.NewProtocolError("decode", types.ErrUnsupportedVersion, "version %d", h.Version)
	}
	if _, ok := KindForTypeCode(h.TypeCode); !ok {
		return h, types.NewProtocolError("decode", types.ErrUnknownTypeCode, "type code %d", h.TypeCode)
	}
	if h.NPresamples > h.NSamples {
		return h, types.NewProtocolError("decode", types.ErrPresamplesExceedSamples, "%d presamples, %d samples", h.NPresamples, h.NSamples)
	}
	return h, nil
}

func (h wireHeader) payloadSize() uint64 {
	kind, _ := KindForTypeCode(h.TypeCode)
	return uint64(h.NSamples) * uint64(kind.Width())
}

// ChannelFilter returns the topic prefix that selects records from channel on a
// prefix-matching transport: the channel as u16 little-endian followed by the header
// version byte. It is always equal to the first three bytes of a matching header.
func ChannelFilter(channel uint16) []byte {
	b := make([]byte, 3)
	binary.LittleEndian.PutUint16(b, channel)
	b[2] = Version
	return b
}

// ChannelOf reads the channel index from the start of an encoded header.
func ChannelOf(header []byte) (uint16, bool) {
	if len(header) < 2 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(header), true
}
