package history

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
)

// DefaultRelTol is the relative timebase tolerance used by the trace when deciding
// whether a new record can join the existing history.
const DefaultRelTol = 0.01

// MeanRecords returns the elementwise mean of the buffered records. A single record
// comes back unchanged. Otherwise the result copies the metadata of the oldest record
// and carries float64 samples.
func MeanRecords(buf *Buffer[types.PulseRecord]) (types.PulseRecord, error) {
	switch buf.Len() {
	case 0:
		return types.PulseRecord{}, types.ErrEmptyBuffer
	case 1:
		return buf.At(0), nil
	}

	first := buf.At(0)
	sum := first.Float64s()
	for i := 1; i < buf.Len(); i++ {
		next := buf.At(i).Float64s()
		if len(next) != len(sum) {
			return types.PulseRecord{}, fmt.Errorf("mean: record %d has %d samples, want %d", i, len(next), len(sum))
		}
		floats.Add(sum, next)
	}
	floats.Scale(1/float64(buf.Len()), sum)
	return first.WithSamples(types.Float64Samples(sum)), nil
}

// MeanVectors returns the elementwise mean of equal-length vectors.
func MeanVectors(buf *Buffer[[]float64]) ([]float64, error) {
	if buf.Len() == 0 {
		return nil, types.ErrEmptyBuffer
	}
	sum := make([]float64, len(buf.At(0)))
	for i := 0; i < buf.Len(); i++ {
		v := buf.At(i)
		if len(v) != len(sum) {
			return nil, fmt.Errorf("mean: vector %d has length %d, want %d", i, len(v), len(sum))
		}
		floats.Add(sum, v)
	}
	floats.Scale(1/float64(buf.Len()), sum)
	return sum, nil
}

// Incompatible reports whether b cannot be averaged together with a: the presample or
// sample counts differ, or the timebases differ by more than rtol relative to a.
func Incompatible(a, b types.PulseRecord, rtol float64) bool {
	if a.NPresamples != b.NPresamples || a.NSamples != b.NSamples {
		return true
	}
	if a.Timebase == b.Timebase {
		return false
	}
	if a.Timebase == 0 {
		return true
	}
	return math.Abs(float64(b.Timebase)/float64(a.Timebase)-1) > rtol
}
