package trace_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/joeydtaylor/pulsescope/pkg/internal/trace"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

func pulse(ch uint16, samples ...uint16) types.PulseRecord {
	return types.PulseRecord{ChannelIndex: ch, NPresamples: 1, Timebase: 1e-6}.WithSamples(types.Uint16Samples(samples))
}

func TestSubmitIgnoresOtherChannels(t *testing.T) {
	tr := trace.New("a", 3)
	_ = tr.Submit(context.Background(), pulse(4, 1, 2, 3, 4))
	if tr.Len() != 0 {
		t.Fatalf("record from another channel was stored")
	}
	_ = tr.Submit(context.Background(), pulse(3, 1, 2, 3, 4))
	if tr.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tr.Len())
	}
}

func TestIncompatibleRecordClearsHistory(t *testing.T) {
	tr := trace.New("a", 3, trace.WithLength(5), trace.WithSpectra(true))
	ctx := context.Background()
	_ = tr.Submit(ctx, pulse(3, 1, 2, 3, 4))
	_ = tr.Submit(ctx, pulse(3, 5, 6, 7, 8))
	_ = tr.Submit(ctx, pulse(3, 9, 9, 9, 9, 9))

	recs := tr.Records()
	if len(recs) != 1 || recs[0].NSamples != 5 {
		t.Fatalf("expected only the 5-sample record, got %+v", recs)
	}
	if tr.Resets() != 1 {
		t.Fatalf("Resets = %d, want 1", tr.Resets())
	}
	mean, err := tr.MeanPSD()
	if err != nil {
		t.Fatalf("MeanPSD: %v", err)
	}
	if len(mean) != 3 {
		t.Fatalf("spectra not cleared with records: psd length %d", len(mean))
	}
}

func TestRecordAndMean(t *testing.T) {
	tr := trace.New("a", 1)
	if _, err := tr.Record(false); !errors.Is(err, types.ErrEmptyBuffer) {
		t.Fatalf("expected ErrEmptyBuffer, got %v", err)
	}
	if _, err := tr.Record(true); !errors.Is(err, types.ErrEmptyBuffer) {
		t.Fatalf("expected ErrEmptyBuffer, got %v", err)
	}
	ctx := context.Background()
	_ = tr.Submit(ctx, pulse(1, 10, 10, 20, 30))
	_ = tr.Submit(ctx, pulse(1, 20, 20, 40, 50))

	newest, err := tr.Record(false)
	if err != nil || newest.Samples.At(3) != 50 {
		t.Fatalf("Record(false) = %+v, %v", newest, err)
	}
	mean, err := tr.Record(true)
	if err != nil {
		t.Fatalf("Record(true): %v", err)
	}
	if !reflect.DeepEqual(mean.Samples, types.Float64Samples{15, 15, 30, 40}) {
		t.Fatalf("mean samples = %v", mean.Samples)
	}

	// NPresamples is 1, so the pre-trigger region is empty and the first sample is the baseline.
	base, err := tr.BaselineSubtracted(true)
	if err != nil {
		t.Fatalf("BaselineSubtracted: %v", err)
	}
	if !reflect.DeepEqual(base, []float64{0, 0, 15, 25}) {
		t.Fatalf("baseline subtracted = %v", base)
	}
}

func TestEnablingSpectraBackfills(t *testing.T) {
	tr := trace.New("a", 2, trace.WithLength(3))
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		_ = tr.Submit(ctx, pulse(2, 0, uint16(i), 0, uint16(2*i)))
	}
	if _, err := tr.LatestPSD(); !errors.Is(err, types.ErrEmptyBuffer) {
		t.Fatalf("expected no spectra while disabled, got %v", err)
	}
	tr.SetSpectraEnabled(true)
	latest, err := tr.LatestPSD()
	if err != nil {
		t.Fatalf("LatestPSD: %v", err)
	}
	if len(latest) != 3 {
		t.Fatalf("psd length %d, want 3", len(latest))
	}
	avg, err := tr.Spectrum(true, false)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	root, err := tr.Spectrum(true, true)
	if err != nil {
		t.Fatalf("Spectrum root: %v", err)
	}
	for k := range avg {
		if math.Abs(root[k]*root[k]-avg[k]) > 1e-6*math.Max(1, avg[k]) {
			t.Fatalf("bin %d: root %v is not sqrt of %v", k, root[k], avg[k])
		}
	}
	tr.SetSpectraEnabled(false)
	if _, err := tr.MeanPSD(); !errors.Is(err, types.ErrEmptyBuffer) {
		t.Fatalf("expected spectra dropped after disabling, got %v", err)
	}
}

func TestAxesAndRebinding(t *testing.T) {
	tr := trace.New("a", 7)
	if len(tr.FrequencyAxis()) != 0 || len(tr.TimeAxis()) != 0 {
		t.Fatalf("axes of an empty trace should be empty")
	}
	rec := types.PulseRecord{ChannelIndex: 7, NPresamples: 2, Timebase: 0.25}.WithSamples(types.Int8Samples{0, 0, 1, 1})
	_ = tr.Submit(context.Background(), rec)
	if got := tr.TimeAxis(); !reflect.DeepEqual(got, []float64{-2, -1, 0, 1}) {
		t.Fatalf("time axis = %v", got)
	}
	if got := tr.FrequencyAxis(); !reflect.DeepEqual(got, []float64{0, 1, 2}) {
		t.Fatalf("frequency axis = %v", got)
	}

	tr.SetChannel(7)
	if tr.Len() != 1 {
		t.Fatalf("rebinding to the same channel must keep history")
	}
	tr.SetChannel(8)
	if tr.Len() != 0 || tr.Channel() != 8 {
		t.Fatalf("rebinding must clear history")
	}
}

func TestResize(t *testing.T) {
	tr := trace.New("a", 1, trace.WithLength(4))
	for i := 0; i < 4; i++ {
		_ = tr.Submit(context.Background(), pulse(1, uint16(i)))
	}
	tr.Resize(2)
	if tr.Len() != 2 || tr.HistoryLength() != 2 {
		t.Fatalf("len/cap = %d/%d", tr.Len(), tr.HistoryLength())
	}
	if newest, _ := tr.Newest(); newest.Samples.At(0) != 3 {
		t.Fatalf("resize dropped the newest record")
	}
}
