// Package trace holds the per-trace history a display reads from: the recent
// records of one channel and, when enabled, their power spectra.
package trace

import (
	"context"
	"sync"

	"github.com/joeydtaylor/pulsescope/pkg/internal/history"
	"github.com/joeydtaylor/pulsescope/pkg/internal/spectral"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// DefaultLength is the history length of a new trace.
const DefaultLength = 10

// Trace accumulates records for one channel. The history is discarded whenever a
// record arrives that is incompatible with the newest stored one.
type Trace struct {
	mu        sync.Mutex
	id        string
	channel   uint16
	records   *history.Buffer[types.PulseRecord]
	spectra   *history.Buffer[[]float64]
	spectraOn bool
	estimator *spectral.Estimator
	rtol      float64
	resets    int
}

// New returns a trace for channel with the default history length.
func New(id string, channel uint16, options ...types.Option[*Trace]) *Trace {
	t := &Trace{
		id:        id,
		channel:   channel,
		records:   history.New[types.PulseRecord](DefaultLength),
		spectra:   history.New[[]float64](DefaultLength),
		estimator: spectral.Default,
		rtol:      history.DefaultRelTol,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// WithLength sets the history length.
func WithLength(n int) types.Option[*Trace] {
	return func(t *Trace) { t.Resize(n) }
}

// WithSpectra enables PSD accumulation from the first record.
func WithSpectra(enabled bool) types.Option[*Trace] {
	return func(t *Trace) { t.SetSpectraEnabled(enabled) }
}

func WithEstimator(e *spectral.Estimator) types.Option[*Trace] {
	return func(t *Trace) {
		if e != nil {
			t.estimator = e
		}
	}
}

// WithRelTol sets the timebase tolerance of the compatibility check.
func WithRelTol(rtol float64) types.Option[*Trace] {
	return func(t *Trace) { t.rtol = rtol }
}

func (t *Trace) ID() string { return t.id }

func (t *Trace) Channel() uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.channel
}

// SetChannel rebinds the trace. Changing the channel discards the history.
func (t *Trace) SetChannel(ch uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ch == t.channel {
		return
	}
	t.channel = ch
	t.clearLocked()
}

// Submit adds rec to the history. Records of other channels are ignored.
func (t *Trace) Submit(_ context.Context, rec types.PulseRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rec.ChannelIndex != t.channel {
		return nil
	}
	if last, ok := t.records.Last(); ok && history.Incompatible(last, rec, t.rtol) {
		t.clearLocked()
		t.resets++
	}
	t.records.Push(rec)
	if t.spectraOn {
		t.spectra.Push(t.estimator.PSD(rec))
	}
	return nil
}

// SetSpectraEnabled turns PSD accumulation on or off. Enabling computes spectra for
// the records already stored; disabling drops them.
func (t *Trace) SetSpectraEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if enabled == t.spectraOn {
		return
	}
	t.spectraOn = enabled
	t.spectra.Clear()
	if !enabled {
		return
	}
	for _, rec := range t.records.Items() {
		t.spectra.Push(t.estimator.PSD(rec))
	}
}

func (t *Trace) SpectraEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spectraOn
}

// Resize changes the history length of both buffers, keeping the newest entries.
func (t *Trace) Resize(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records.Resize(n)
	t.spectra.Resize(n)
}

func (t *Trace) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearLocked()
}

func (t *Trace) clearLocked() {
	t.records.Clear()
	t.spectra.Clear()
}

// Len returns the number of stored records.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.Len()
}

// HistoryLength returns the capacity of the record history.
func (t *Trace) HistoryLength() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.Cap()
}

// Resets counts how many times an incompatible record discarded the history.
func (t *Trace) Resets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resets
}

// Records returns the stored records, oldest first.
func (t *Trace) Records() []types.PulseRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.Items()
}
