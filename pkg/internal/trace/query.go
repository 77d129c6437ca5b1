package trace

import (
	"github.com/joeydtaylor/pulsescope/pkg/internal/history"
	"github.com/joeydtaylor/pulsescope/pkg/internal/spectral"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// Newest returns the most recent record.
func (t *Trace) Newest() (types.PulseRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.Last()
}

// MeanRecord averages the stored records.
func (t *Trace) MeanRecord() (types.PulseRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return history.MeanRecords(t.records)
}

// Record returns the running average or the newest record.
func (t *Trace) Record(average bool) (types.PulseRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recordLocked(average)
}

func (t *Trace) recordLocked(average bool) (types.PulseRecord, error) {
	if average {
		return history.MeanRecords(t.records)
	}
	rec, ok := t.records.Last()
	if !ok {
		return types.PulseRecord{}, types.ErrEmptyBuffer
	}
	return rec, nil
}

// BaselineSubtracted returns Record(average) with the pre-trigger baseline removed.
func (t *Trace) BaselineSubtracted(average bool) ([]float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, err := t.recordLocked(average)
	if err != nil {
		return nil, err
	}
	return spectral.BaselineSubtracted(rec), nil
}

// LatestPSD returns the spectrum of the newest record.
func (t *Trace) LatestPSD() ([]float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	psd, ok := t.spectra.Last()
	if !ok {
		return nil, types.ErrEmptyBuffer
	}
	return append([]float64(nil), psd...), nil
}

// MeanPSD averages the stored spectra.
func (t *Trace) MeanPSD() ([]float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.estimator.MeanPSD(t.spectra)
}

// Spectrum returns the latest or averaged PSD. With root set, the square root is
// taken after averaging, giving an amplitude spectral density.
func (t *Trace) Spectrum(average, root bool) ([]float64, error) {
	var (
		psd []float64
		err error
	)
	if average {
		psd, err = t.MeanPSD()
	} else {
		psd, err = t.LatestPSD()
	}
	if err != nil {
		return nil, err
	}
	if root {
		return spectral.RootPSD(psd), nil
	}
	return psd, nil
}

// FrequencyAxis returns the bin frequencies for the newest record's shape.
func (t *Trace) FrequencyAxis() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records.Last()
	if !ok {
		return []float64{}
	}
	axis := t.estimator.FrequencyAxis(int(rec.NSamples), rec.Timebase)
	return append([]float64(nil), axis...)
}

// TimeAxis returns sample offsets from the trigger for the newest record's shape.
func (t *Trace) TimeAxis() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records.Last()
	if !ok {
		return []float64{}
	}
	axis := make([]float64, rec.NSamples)
	for i := range axis {
		axis[i] = float64(i) - float64(rec.NPresamples)
	}
	return axis
}
