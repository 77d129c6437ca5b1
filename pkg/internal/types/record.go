package types

import "fmt"

// SampleKind identifies the element type of a pulse record payload.
type SampleKind uint8

const (
	SampleInt8 SampleKind = iota
	SampleUint8
	SampleInt16
	SampleUint16
	SampleInt32
	SampleUint32
	SampleInt64
	SampleUint64

	// SampleFloat64 only appears on derived records (averages). It has no wire type code.
	SampleFloat64
)

var sampleKindNames = [...]string{"int8", "uint8", "int16", "uint16", "int32", "uint32", "int64", "uint64", "float64"}

func (k SampleKind) String() string {
	if int(k) < len(sampleKindNames) {
		return sampleKindNames[k]
	}
	return fmt.Sprintf("SampleKind(%d)", uint8(k))
}

// Width returns the element size in bytes.
func (k SampleKind) Width() int {
	switch k {
	case SampleInt8, SampleUint8:
		return 1
	case SampleInt16, SampleUint16:
		return 2
	case SampleInt32, SampleUint32:
		return 4
	case SampleInt64, SampleUint64, SampleFloat64:
		return 8
	default:
		return 0
	}
}

// Encodable reports whether the kind has a wire type code.
func (k SampleKind) Encodable() bool {
	return k <= SampleUint64
}

// PulseRecord is one channel-tagged waveform snapshot. Records are treated as
// immutable values: derive new ones with WithSamples instead of editing fields.
type PulseRecord struct {
	ChannelIndex uint16
	NPresamples  uint32
	NSamples     uint32
	Timebase     float32 // seconds per sample
	VoltsPerArb  float32
	TriggerTime  uint64 // ns
	FrameIndex   uint64
	Samples      Samples
}

// Kind returns the sample kind of the payload.
func (r PulseRecord) Kind() SampleKind {
	if r.Samples == nil {
		return SampleUint16
	}
	return r.Samples.Kind()
}

// Float64s returns the payload converted to float64.
func (r PulseRecord) Float64s() []float64 {
	if r.Samples == nil {
		return []float64{}
	}
	return r.Samples.Float64s()
}

// WithSamples returns a copy of r carrying a new payload. NSamples follows the payload length.
func (r PulseRecord) WithSamples(s Samples) PulseRecord {
	out := r
	out.Samples = s
	if s != nil {
		out.NSamples = uint32(s.Len())
	}
	return out
}

// Validate checks the record invariants.
func (r PulseRecord) Validate() error {
	if r.NPresamples > r.NSamples {
		return fmt.Errorf("presamples %d exceed samples %d", r.NPresamples, r.NSamples)
	}
	n := 0
	if r.Samples != nil {
		n = r.Samples.Len()
	}
	if uint32(n) != r.NSamples {
		return fmt.Errorf("payload holds %d samples, header says %d", n, r.NSamples)
	}
	return nil
}
