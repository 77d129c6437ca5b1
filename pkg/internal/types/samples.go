package types

// Samples is the typed payload of a pulse record.
type Samples interface {
	Len() int
	At(i int) float64
	Kind() SampleKind
	Float64s() []float64
}

type (
	Int8Samples    []int8
	Uint8Samples   []uint8
	Int16Samples   []int16
	Uint16Samples  []uint16
	Int32Samples   []int32
	Uint32Samples  []uint32
	Int64Samples   []int64
	Uint64Samples  []uint64
	Float64Samples []float64
)

func (s Int8Samples) Len() int { return len(s) }
func (s Int8Samples) At(i int) float64 { return float64(s[i]) }
func (s Int8Samples) Kind() SampleKind { return SampleInt8 }
func (s Int8Samples) Float64s() []float64 { return toFloat64s(s) }

func (s Uint8Samples) Len() int { return len(s) }
func (s Uint8Samples) At(i int) float64 { return float64(s[i]) }
func (s Uint8Samples) Kind() SampleKind { return SampleUint8 }
func (s Uint8Samples) Float64s() []float64 { return toFloat64s(s) }

func (s Int16Samples) Len() int { return len(s) }
func (s Int16Samples) At(i int) float64 { return float64(s[i]) }
func (s Int16Samples) Kind() SampleKind { return SampleInt16 }
func (s Int16Samples) Float64s() []float64 { return toFloat64s(s) }

func (s Uint16Samples) Len() int { return len(s) }
func (s Uint16Samples) At(i int) float64 { return float64(s[i]) }
func (s Uint16Samples) Kind() SampleKind { return SampleUint16 }
func (s Uint16Samples) Float64s() []float64 { return toFloat64s(s) }

func (s Int32Samples) Len() int { return len(s) }
func (s Int32Samples) At(i int) float64 { return float64(s[i]) }
func (s Int32Samples) Kind() SampleKind { return SampleInt32 }
func (s Int32Samples) Float64s() []float64 { return toFloat64s(s) }

func (s Uint32Samples) Len() int { return len(s) }
func (s Uint32Samples) At(i int) float64 { return float64(s[i]) }
func (s Uint32Samples) Kind() SampleKind { return SampleUint32 }
func (s Uint32Samples) Float64s() []float64 { return toFloat64s(s) }

func (s Int64Samples) Len() int { return len(s) }
func (s Int64Samples) At(i int) float64 { return float64(s[i]) }
func (s Int64Samples) Kind() SampleKind { return SampleInt64 }
func (s Int64Samples) Float64s() []float64 { return toFloat64s(s) }

func (s Uint64Samples) Len() int { return len(s) }
func (s Uint64Samples) At(i int) float64 { return float64(s[i]) }
func (s Uint64Samples) Kind() SampleKind { return SampleUint64 }
func (s Uint64Samples) Float64s() []float64 { return toFloat64s(s) }

func (s Float64Samples) Len() int { return len(s) }
func (s Float64Samples) At(i int) float64 { return s[i] }
func (s Float64Samples) Kind() SampleKind { return SampleFloat64 }
func (s Float64Samples) Float64s() []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

type number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

func toFloat64s[S ~[]E, E number](s S) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}
