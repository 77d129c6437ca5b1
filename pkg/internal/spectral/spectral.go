// Package spectral computes windowed power spectral densities of pulse records.
package spectral

import (
	"math"
	"math/cmplx"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/joeydtaylor/pulsescope/pkg/internal/history"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// DefaultCacheSize bounds each of the estimator's caches.
const DefaultCacheSize = 16

type axisKey struct {
	n        int
	timebase float32
}

// Estimator memoizes windows and frequency axes. It is safe for concurrent use.
type Estimator struct {
	windows *lru.Cache[int, []float64]
	axes    *lru.Cache[axisKey, []float64]
}

// Default is shared by callers that do not need their own caches.
var Default = New(DefaultCacheSize)

// New returns an estimator whose caches each hold up to size entries.
func New(size int) *Estimator {
	if size < 1 {
		size = DefaultCacheSize
	}
	windows, _ := lru.New[int, []float64](size)
	axes, _ := lru.New[axisKey, []float64](size)
	return &Estimator{windows: windows, axes: axes}
}

// Window returns a Hann window of length n scaled so that mean(w²) == 1.
// The returned slice is shared; callers must not modify it.
func (e *Estimator) Window(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if w, ok := e.windows.Get(n); ok {
		return w
	}
	w := window.Hann(n)
	power := floats.Dot(w, w) / float64(n)
	if power == 0 {
		// Hann(2) is all zeros; a flat window keeps the power normalization.
		for i := range w {
			w[i] = 1
		}
	} else {
		floats.Scale(1/math.Sqrt(power), w)
	}
	e.windows.Add(n, w)
	return w
}

// FrequencyAxis returns the non-negative real-FFT bin frequencies k/(n*timebase), k = 0..n/2.
// The returned slice is shared; callers must not modify it.
func (e *Estimator) FrequencyAxis(n int, timebase float32) []float64 {
	if n <= 0 {
		return []float64{}
	}
	key := axisKey{n: n, timebase: timebase}
	if f, ok := e.axes.Get(key); ok {
		return f
	}
	f := make([]float64, n/2+1)
	span := float64(n) * float64(timebase)
	for k := range f {
		f[k] = float64(k) / span
	}
	e.axes.Add(key, f)
	return f
}

// PSD returns |X_k|² for k = 0..n/2 where X is the FFT of the mean-removed,
// windowed samples of rec.
func (e *Estimator) PSD(rec types.PulseRecord) []float64 {
	x := rec.Float64s()
	n := len(x)
	if n == 0 {
		return []float64{}
	}
	floats.AddConst(-floats.Sum(x)/float64(n), x)
	floats.Mul(x, e.Window(n))

	spectrum := fft.FFTReal(x)
	psd := make([]float64, n/2+1)
	for k := range psd {
		a := cmplx.Abs(spectrum[k])
		psd[k] = a * a
	}
	return psd
}

// MeanPSD averages buffered power spectra.
func (e *Estimator) MeanPSD(buf *history.Buffer[[]float64]) ([]float64, error) {
	return history.MeanVectors(buf)
}

// RootPSD returns the elementwise square root of an averaged power spectrum.
func RootPSD(psd []float64) []float64 {
	out := make([]float64, len(psd))
	for i, p := range psd {
		out[i] = math.Sqrt(p)
	}
	return out
}

// BaselineSubtracted returns the samples of rec minus the mean of the pre-trigger
// region, which covers the first NPresamples-1 samples. When that region is empty
// the first sample is the baseline.
func BaselineSubtracted(rec types.PulseRecord) []float64 {
	x := rec.Float64s()
	if len(x) == 0 {
		return x
	}
	region := 0
	if rec.NPresamples > 1 {
		region = int(rec.NPresamples) - 1
	}
	if region > len(x) {
		region = len(x)
	}
	baseline := x[0]
	if region > 0 {
		baseline = floats.Sum(x[:region]) / float64(region)
	}
	floats.AddConst(-baseline, x)
	return x
}
