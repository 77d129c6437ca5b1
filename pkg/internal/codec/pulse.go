package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// Decode builds a PulseRecord from a header and its payload. Checks run in order:
// header length, version, type code, presample count, payload length.
func Decode(header, payload []byte) (types.PulseRecord, error) {
	h, err := parseHeader(header)
	if err != nil {
		return types.PulseRecord{}, err
	}
	if want := h.payloadSize(); uint64(len(payload)) != want {
		return types.PulseRecord{}, types.NewProtocolError("decode", types.ErrPayloadLengthMismatch,
			"got %d bytes, want %d (%d samples)", len(payload), want, h.NSamples)
	}

	kind, _ := KindForTypeCode(h.TypeCode)
	samples, err := decodeSamples(kind, payload, int(h.NSamples))
	if err != nil {
		return types.PulseRecord{}, types.NewProtocolError("decode", types.ErrPayloadLengthMismatch, "%v", err)
	}

	return types.PulseRecord{
		ChannelIndex: h.Channel,
		NPresamples:  h.NPresamples,
		NSamples:     h.NSamples,
		Timebase:     h.Timebase,
		VoltsPerArb:  h.VoltsPerArb,
		TriggerTime:  h.TriggerTime,
		FrameIndex:   h.FrameIndex,
		Samples:      samples,
	}, nil
}

// DecodeFrame decodes a two-part transport frame.
func DecodeFrame(frame types.Frame) (types.PulseRecord, error) {
	if len(frame) != 2 {
		return types.PulseRecord{}, types.NewProtocolError("decode frame", types.ErrMalformedFrame, "got %d parts, want 2", len(frame))
	}
	return Decode(frame[0], frame[1])
}

// SplitContiguous turns a single header||payload blob into a two-part frame.
// Blobs shorter than a header come back as a single part so that DecodeFrame
// reports them as malformed.
func SplitContiguous(data []byte) types.Frame {
	if len(data) < HeaderSize {
		return types.Frame{data}
	}
	return types.Frame{data[:HeaderSize], data[HeaderSize:]}
}

// Encode is the inverse of Decode.
func Encode(rec types.PulseRecord) (header, payload []byte, err error) {
	if err := rec.Validate(); err != nil {
		return nil, nil, fmt.Errorf("encode: %w", err)
	}
	code, ok := TypeCodeForKind(rec.Kind())
	if !ok {
		return nil, nil, fmt.Errorf("encode: %w: %s", types.ErrUnencodableKind, rec.Kind())
	}

	h := wireHeader{
		Channel:     rec.ChannelIndex,
		Version:     Version,
		TypeCode:    code,
		NPresamples: rec.NPresamples,
		NSamples:    rec.NSamples,
		Timebase:    rec.Timebase,
		VoltsPerArb: rec.VoltsPerArb,
		TriggerTime: rec.TriggerTime,
		FrameIndex:  rec.FrameIndex,
	}
	var hb bytes.Buffer
	hb.Grow(HeaderSize)
	if err := binary.Write(&hb, binary.LittleEndian, h); err != nil {
		return nil, nil, err
	}

	payload, err = encodeSamples(rec.Samples)
	if err != nil {
		return nil, nil, err
	}
	return hb.Bytes(), payload, nil
}

func decodeSamples(kind types.SampleKind, payload []byte, n int) (types.Samples, error) {
	switch kind {
	case types.SampleInt8:
		s, err := readSlice[int8](payload, n)
		return types.Int8Samples(s), err
	case types.SampleUint8:
		s, err := readSlice[uint8](payload, n)
		return types.Uint8Samples(s), err
	case types.SampleInt16:
		s, err := readSlice[int16](payload, n)
		return types.Int16Samples(s), err
	case types.SampleUint16:
		s, err := readSlice[uint16](payload, n)
		return types.Uint16Samples(s), err
	case types.SampleInt32:
		s, err := readSlice[int32](payload, n)
		return types.Int32Samples(s), err
	case types.SampleUint32:
		s, err := readSlice[uint32](payload, n)
		return types.Uint32Samples(s), err
	case types.SampleInt64:
		s, err := readSlice[int64](payload, n)
		return types.Int64Samples(s), err
	case types.SampleUint64:
		s, err := readSlice[uint64](payload, n)
		return types.Uint64Samples(s), err
	default:
		return nil, fmt.Errorf("no decoder for %s", kind)
	}
}

func readSlice[E int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64](payload []byte, n int) ([]E, error) {
	out := make([]E, n)
	if n == 0 {
		return out, nil
	}
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeSamples(s types.Samples) ([]byte, error) {
	var data interface{}
	switch v := s.(type) {
	case types.Int8Samples:
		data = []int8(v)
	case types.Uint8Samples:
		data = []uint8(v)
	case types.Int16Samples:
		data = []int16(v)
	case types.Uint16Samples:
		data = []uint16(v)
	case types.Int32Samples:
		data = []int32(v)
	case types.Uint32Samples:
		data = []uint32(v)
	case types.Int64Samples:
		data = []int64(v)
	case types.Uint64Samples:
		data = []uint64(v)
	case nil:
		return []byte{}, nil
	default:
		return nil, fmt.Errorf("encode: %w: %s", types.ErrUnencodableKind, s.Kind())
	}
	var buf bytes.Buffer
	buf.Grow(s.Len() * s.Kind().Width())
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Describe summarizes a record for log lines.
func Describe(rec types.PulseRecord) string {
	return fmt.Sprintf("chan=%d kind=%s n=%d pre=%d frame=%d", rec.ChannelIndex, rec.Kind(), rec.NSamples, rec.NPresamples, rec.FrameIndex)
}
