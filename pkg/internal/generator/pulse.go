package generator

import (
	"math"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// pulseShape returns exp(-t/200) - exp(-t/40) with t = i + 1 - presamples, zero for t < 0.
func pulseShape(samples, presamples uint32) []float64 {
	shape := make([]float64, samples)
	for i := range shape {
		t := float64(i) + 1 - float64(presamples)
		if t < 0 {
			continue
		}
		shape[i] = math.Exp(-t/fallTime) - math.Exp(-t/riseTime)
	}
	return shape
}

func (g *Generator) pulseShapeLocked() []float64 {
	key := [2]uint32{g.samples, g.presamples}
	if g.shape == nil || g.shapeKey != key {
		g.shape = pulseShape(g.samples, g.presamples)
		g.shapeKey = key
	}
	return g.shape
}

// Pulse builds the record for channel ch with frame index frame. The amplitude is
// (ch+20)*1000 on a baseline of 1000*ch; noise, when enabled, is Gaussian with the
// configured standard deviation. Values are clamped to the uint16 range.
func (g *Generator) Pulse(ch uint16, frame uint64) types.PulseRecord {
	g.configLock.Lock()
	shape := g.pulseShapeLocked()
	rec := types.PulseRecord{
		ChannelIndex: ch,
		NPresamples:  g.presamples,
		Timebase:     g.timebase,
		VoltsPerArb:  g.voltsPerArb,
		FrameIndex:   frame,
		TriggerTime:  uint64(time.Now().UnixNano()),
	}
	noise := g.noise
	g.configLock.Unlock()

	scale := float64(int(ch)+20) * 1000
	offset := 1000 * float64(ch)
	data := make(types.Uint16Samples, len(shape))
	for i, v := range shape {
		x := v*scale + offset
		if noise > 0 {
			x += g.normal() * noise
		}
		data[i] = clampUint16(x)
	}
	return rec.WithSamples(data)
}

func clampUint16(x float64) uint16 {
	switch {
	case math.IsNaN(x) || x <= 0:
		return 0
	case x >= math.MaxUint16:
		return math.MaxUint16
	default:
		return uint16(x)
	}
}

func (g *Generator) normal() float64 {
	g.rngLock.Lock()
	defer g.rngLock.Unlock()
	return g.rng.NormFloat64()
}

func (g *Generator) randomChannel() uint16 {
	g.configLock.Lock()
	first, last := g.firstChannel, g.lastChannel
	g.configLock.Unlock()

	g.rngLock.Lock()
	defer g.rngLock.Unlock()
	return first + uint16(g.rng.Intn(int(last-first)+1))
}
