package codec_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

func samplesFor(kind types.SampleKind) types.Samples {
	switch kind {
	case types.SampleInt8:
		return types.Int8Samples{-128, -1, 0, 127}
	case types.SampleUint8:
		return types.Uint8Samples{0, 1, 128, 255}
	case types.SampleInt16:
		return types.Int16Samples{-32768, -2, 3, 32767}
	case types.SampleUint16:
		return types.Uint16Samples{0, 0x0102, 40000, 65535}
	case types.SampleInt32:
		return types.Int32Samples{-2147483648, -5, 6, 2147483647}
	case types.SampleUint32:
		return types.Uint32Samples{0, 7, 3000000000, 4294967295}
	case types.SampleInt64:
		return types.Int64Samples{-9223372036854775808, -9, 10, 9223372036854775807}
	case types.SampleUint64:
		return types.Uint64Samples{0, 11, 1 << 60, 18446744073709551615}
	}
	return nil
}

func recordFor(kind types.SampleKind) types.PulseRecord {
	return types.PulseRecord{
		ChannelIndex: 3,
		NPresamples:  1,
		NSamples:     4,
		Timebase:     2.56e-6,
		VoltsPerArb:  1.0 / 65535,
		TriggerTime:  1700000000123456789,
		FrameIndex:   987654321,
		Samples:      samplesFor(kind),
	}
}

var allKinds = []types.SampleKind{
	types.SampleInt8, types.SampleUint8, types.SampleInt16, types.SampleUint16,
	types.SampleInt32, types.SampleUint32, types.SampleInt64, types.SampleUint64,
}

// TestRoundTrip checks decode(encode(r)) == r for every sample kind.
func TestRoundTrip(t *testing.T) {
	for _, kind := range allKinds {
		rec := recordFor(kind)
		header, payload, err := codec.Encode(rec)
		if err != nil {
			t.Fatalf("%s: Encode error: %v", kind, err)
		}
		if len(header) != codec.HeaderSize {
			t.Fatalf("%s: header is %d bytes, want %d", kind, len(header), codec.HeaderSize)
		}
		if len(payload) != 4*kind.Width() {
			t.Fatalf("%s: payload is %d bytes, want %d", kind, len(payload), 4*kind.Width())
		}
		got, err := codec.Decode(header, payload)
		if err != nil {
			t.Fatalf("%s: Decode error: %v", kind, err)
		}
		if !reflect.DeepEqual(got, rec) {
			t.Errorf("%s: round trip mismatch:\n got %+v\nwant %+v", kind, got, rec)
		}
	}
}

func TestRoundTripEmptyRecord(t *testing.T) {
	rec := types.PulseRecord{ChannelIndex: 9, Timebase: 1e-6, Samples: types.Int32Samples{}}
	header, payload, err := codec.Encode(rec)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	got, err := codec.Decode(header, payload)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, rec)
	}
}

// TestHeaderLayout pins the byte positions of every header field.
func TestHeaderLayout(t *testing.T) {
	rec := types.PulseRecord{
		ChannelIndex: 0x0201,
		NPresamples:  3,
		NSamples:     4,
		Timebase:     1,
		VoltsPerArb:  2,
		TriggerTime:  0x1817161514131211,
		FrameIndex:   0x2827262524232221,
		Samples:      types.Uint16Samples{0x0102, 0x0304, 0, 0xffff},
	}
	header, payload, err := codec.Encode(rec)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := []byte{
		0x01, 0x02, // channel
		0x00,                   // version
		0x03,                   // type code (uint16)
		0x03, 0x00, 0x00, 0x00, // presamples
		0x04, 0x00, 0x00, 0x00, // samples
		0x00, 0x00, 0x80, 0x3f, // timebase 1.0
		0x00, 0x00, 0x00, 0x40, // volts/arb 2.0
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
		0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28,
	}
	if !bytes.Equal(header, want) {
		t.Fatalf("header bytes:\n got % x\nwant % x", header, want)
	}
	if !bytes.Equal(payload, []byte{0x02, 0x01, 0x04, 0x03, 0x00, 0x00, 0xff, 0xff}) {
		t.Fatalf("payload not little-endian: % x", payload)
	}
	if !bytes.Equal(codec.ChannelFilter(0x0201), header[:3]) {
		t.Fatalf("channel filter % x is not a header prefix", codec.ChannelFilter(0x0201))
	}
}

func TestDecodeBadHeaderLength(t *testing.T) {
	header, payload, _ := codec.Encode(recordFor(types.SampleUint16))
	for _, h := range [][]byte{nil, header[:26], append(append([]byte{}, header...), 0)} {
		_, err := codec.Decode(h, payload)
		if !errors.Is(err, types.ErrBadHeaderLength) {
			t.Errorf("header of %d bytes: expected ErrBadHeaderLength, got %v", len(h), err)
		}
		if !types.IsProtocolError(err) {
			t.Errorf("expected a ProtocolError, got %T", err)
		}
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	header, payload, _ := codec.Encode(recordFor(types.SampleUint16))
	for _, v := range []byte{1, 2, 255} {
		h := append([]byte{}, header...)
		h[2] = v
		if _, err := codec.Decode(h, payload); !errors.Is(err, types.ErrUnsupportedVersion) {
			t.Errorf("version %d: expected ErrUnsupportedVersion, got %v", v, err)
		}
	}
}

func TestDecodeUnknownTypeCode(t *testing.T) {
	header, payload, _ := codec.Encode(recordFor(types.SampleUint16))
	for _, code := range []byte{8, 9, 100, 255} {
		h := append([]byte{}, header...)
		h[3] = code
		if _, err := codec.Decode(h, payload); !errors.Is(err, types.ErrUnknownTypeCode) {
			t.Errorf("type code %d: expected ErrUnknownTypeCode, got %v", code, err)
		}
	}
}

// TestDecodePresamplesExceedSamples rewrites the presample field of a valid header.
func TestDecodePresamplesExceedSamples(t *testing.T) {
	header, payload, err := codec.Encode(recordFor(types.SampleUint16))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	for _, pre := range []byte{5, 10, 255} {
		h := append([]byte{}, header...)
		h[4] = pre
		rec, err := codec.Decode(h, payload)
		if !errors.Is(err, types.ErrPresamplesExceedSamples) {
			t.Fatalf("presamples %d: expected ErrPresamplesExceedSamples, got %v (record %+v)", pre, err, rec)
		}
		if !types.IsProtocolError(err) {
			t.Fatalf("expected a ProtocolError, got %T", err)
		}
	}

	h := append([]byte{}, header...)
	h[4] = 4
	rec, err := codec.Decode(h, payload)
	if err != nil {
		t.Fatalf("presamples equal to samples should decode, got %v", err)
	}
	if rec.NPresamples != 4 || rec.Validate() != nil {
		t.Fatalf("unexpected record %+v", rec)
	}
}

// TestDecodePayloadLengthMismatch covers every type code with short and long payloads.
func TestDecodePayloadLengthMismatch(t *testing.T) {
	for code := uint8(0); code < 8; code++ {
		kind, ok := codec.KindForTypeCode(code)
		if !ok {
			t.Fatalf("type code %d has no kind", code)
		}
		header, payload, err := codec.Encode(recordFor(kind))
		if err != nil {
			t.Fatalf("Encode error: %v", err)
		}
		bad := [][]byte{
			payload[:len(payload)-1],
			append(append([]byte{}, payload...), 0),
			{},
		}
		for _, p := range bad {
			if _, err := codec.Decode(header, p); !errors.Is(err, types.ErrPayloadLengthMismatch) {
				t.Errorf("code %d payload %d bytes: expected ErrPayloadLengthMismatch, got %v", code, len(p), err)
			}
		}
	}
}

func TestTypeCodeTable(t *testing.T) {
	want := []types.SampleKind{
		types.SampleInt8, types.SampleUint8, types.SampleInt16, types.SampleUint16,
		types.SampleInt32, types.SampleUint32, types.SampleInt64, types.SampleUint64,
	}
	for code, kind := range want {
		got, ok := codec.KindForTypeCode(uint8(code))
		if !ok || got != kind {
			t.Errorf("code %d: got %s, want %s", code, got, kind)
		}
	}
	if _, ok := codec.TypeCodeForKind(types.SampleFloat64); ok {
		t.Errorf("float64 must not have a type code")
	}
}

func TestDecodeFrame(t *testing.T) {
	header, payload, _ := codec.Encode(recordFor(types.SampleInt16))
	if _, err := codec.DecodeFrame(types.Frame{header, payload}); err != nil {
		t.Fatalf("DecodeFrame error: %v", err)
	}
	for _, f := range []types.Frame{{header}, {header, payload, payload}, {}} {
		if _, err := codec.DecodeFrame(f); !errors.Is(err, types.ErrMalformedFrame) {
			t.Errorf("%d parts: expected ErrMalformedFrame, got %v", len(f), err)
		}
	}
}

func TestSplitContiguous(t *testing.T) {
	header, payload, _ := codec.Encode(recordFor(types.SampleUint8))
	frame := codec.SplitContiguous(append(append([]byte{}, header...), payload...))
	if len(frame) != 2 || !bytes.Equal(frame[0], header) || !bytes.Equal(frame[1], payload) {
		t.Fatalf("unexpected split: %v", frame)
	}
	if got := codec.SplitContiguous(header[:10]); len(got) != 1 {
		t.Fatalf("short blob should stay a single part, got %d parts", len(got))
	}
}

func TestEncodeRejectsDerivedAndInvalidRecords(t *testing.T) {
	rec := recordFor(types.SampleUint16).WithSamples(types.Float64Samples{1, 2, 3, 4})
	if _, _, err := codec.Encode(rec); !errors.Is(err, types.ErrUnencodableKind) {
		t.Fatalf("expected ErrUnencodableKind, got %v", err)
	}
	bad := recordFor(types.SampleUint16)
	bad.NSamples = 5
	if _, _, err := codec.Encode(bad); err == nil {
		t.Fatalf("expected error for sample count mismatch")
	}
}

func TestDescribe(t *testing.T) {
	got := codec.Describe(recordFor(types.SampleInt16))
	want := "chan=3 kind=int16 n=4 pre=1 frame=987654321"
	if got != want {
		t.Fatalf("Describe = %q, want %q", got, want)
	}
}
