package generator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/circuitbreaker"
	"github.com/joeydtaylor/pulsescope/pkg/internal/generator"
	"github.com/joeydtaylor/pulsescope/pkg/internal/sensor"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

type recordingPublisher struct {
	mu      sync.Mutex
	records []types.PulseRecord
	err     error
}

func (p *recordingPublisher) Publish(ctx context.Context, rec types.PulseRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.records = append(p.records, rec)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) snapshot() []types.PulseRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.PulseRecord(nil), p.records...)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestPulseShape(t *testing.T) {
	g := generator.NewGenerator(context.Background()).(*generator.Generator)
	rec := g.Pulse(5, 7)

	if rec.ChannelIndex != 5 || rec.FrameIndex != 7 {
		t.Fatalf("unexpected identity: channel %d frame %d", rec.ChannelIndex, rec.FrameIndex)
	}
	if rec.NSamples != generator.DefaultSamples || rec.NPresamples != generator.DefaultPresamples {
		t.Fatalf("unexpected sizes: %d/%d", rec.NSamples, rec.NPresamples)
	}
	if rec.Kind() != types.SampleUint16 {
		t.Fatalf("expected uint16 samples, got %v", rec.Kind())
	}
	if rec.Timebase != generator.DefaultTimebase {
		t.Fatalf("unexpected timebase %v", rec.Timebase)
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("generated record invalid: %v", err)
	}

	data := rec.Samples.(types.Uint16Samples)
	for i := 0; i < int(generator.DefaultPresamples); i++ {
		if data[i] != 5000 {
			t.Fatalf("sample %d before trigger: expected baseline 5000, got %d", i, data[i])
		}
	}
	peak := uint16(0)
	for _, v := range data {
		if v > peak {
			peak = v
		}
	}
	// (5+20)*1000 * max(exp(-t/200)-exp(-t/40)) is about 13370 above baseline.
	if peak < 18000 || peak > 18800 {
		t.Fatalf("unexpected peak %d", peak)
	}
	if data[len(data)-1] >= peak {
		t.Fatalf("pulse should decay by the end of the record")
	}
}

func TestPulseWithSamplesOption(t *testing.T) {
	g := generator.NewGenerator(context.Background(), generator.WithSamples(16, 4)).(*generator.Generator)
	rec := g.Pulse(1, 0)
	if rec.NSamples != 16 || rec.NPresamples != 4 || rec.Samples.Len() != 16 {
		t.Fatalf("unexpected record sizes: %d/%d/%d", rec.NSamples, rec.NPresamples, rec.Samples.Len())
	}
}

func TestPulseNoiseIsSeeded(t *testing.T) {
	a := generator.NewGenerator(context.Background(), generator.WithNoise(50), generator.WithSeed(3)).(*generator.Generator)
	b := generator.NewGenerator(context.Background(), generator.WithNoise(50), generator.WithSeed(3)).(*generator.Generator)

	ra := a.Pulse(2, 0).Samples.(types.Uint16Samples)
	rb := b.Pulse(2, 0).Samples.(types.Uint16Samples)
	differsFromBaseline := false
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("sample %d differs between identically seeded generators", i)
		}
		if i < 100 && ra[i] != 2000 {
			differsFromBaseline = true
		}
	}
	if !differsFromBaseline {
		t.Fatalf("expected noise on the baseline")
	}
}

func TestGeneratorPublishesWithinChannelRange(t *testing.T) {
	pub := &recordingPublisher{}
	var starts, stops int
	var mu sync.Mutex
	s := sensor.NewSensor(
		sensor.WithOnStartFunc(func(types.ComponentMetadata) { mu.Lock(); starts++; mu.Unlock() }),
		sensor.WithOnStopFunc(func(types.ComponentMetadata) { mu.Lock(); stops++; mu.Unlock() }),
	)
	g := generator.NewGenerator(context.Background(),
		generator.WithPublisher(pub),
		generator.WithSensor(s),
		generator.WithChannels(3, 4),
		generator.WithSamples(32, 8),
		generator.WithInterval(time.Millisecond),
		generator.WithSeed(1),
	)

	if err := g.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if !g.IsStarted() {
		t.Fatalf("expected generator to be started")
	}
	if err := g.Start(context.Background()); err == nil {
		t.Fatalf("expected error on second Start")
	}

	waitFor(t, "5 records", func() bool { return len(pub.snapshot()) >= 5 })
	if err := g.Stop(); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if g.IsStarted() {
		t.Fatalf("expected generator to be stopped")
	}

	records := pub.snapshot()
	for i, rec := range records {
		if rec.ChannelIndex < 3 || rec.ChannelIndex > 4 {
			t.Fatalf("record %d on channel %d outside 3..4", i, rec.ChannelIndex)
		}
		if rec.FrameIndex != uint64(i) {
			t.Fatalf("record %d has frame index %d", i, rec.FrameIndex)
		}
	}
	if got := g.(*generator.Generator).Published(); got != uint64(len(records)) {
		t.Fatalf("Published() = %d, recorded %d", got, len(records))
	}

	mu.Lock()
	defer mu.Unlock()
	if starts != 1 || stops != 1 {
		t.Fatalf("expected one start and one stop, got %d/%d", starts, stops)
	}

	if err := g.Start(context.Background()); err == nil {
		t.Fatalf("expected error restarting a stopped generator")
	}
}

func TestGeneratorReportsPublishErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	errs := make(chan error, 16)
	s := sensor.NewSensor(sensor.WithOnErrorFunc(func(_ types.ComponentMetadata, err error) {
		select {
		case errs <- err:
		default:
		}
	}))
	g := generator.NewGenerator(context.Background(),
		generator.WithPublisher(pub),
		generator.WithSensor(s),
		generator.WithInterval(time.Millisecond),
	)
	if err := g.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer g.Stop()

	select {
	case err := <-errs:
		if err.Error() != "broker down" {
			t.Fatalf("unexpected error %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("publish error not reported")
	}
}

func TestGeneratorRequiresPublisher(t *testing.T) {
	g := generator.NewGenerator(context.Background())
	if err := g.Start(context.Background()); err == nil {
		t.Fatalf("expected error without publisher")
	}
}

func TestGeneratorStopsWithContext(t *testing.T) {
	pub := &recordingPublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	g := generator.NewGenerator(context.Background(), generator.WithPublisher(pub), generator.WithInterval(time.Millisecond))
	if err := g.Start(ctx); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		_ = g.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Stop did not return after context cancellation")
	}
}

func TestGeneratorConfigPanicsAfterStart(t *testing.T) {
	g := generator.NewGenerator(context.Background(), generator.WithPublisher(&recordingPublisher{}))
	if err := g.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer g.Stop()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for ConnectLogger after Start")
		}
	}()
	g.ConnectLogger(nil)
}

func TestGeneratorCircuitBreakerStopsPublishing(t *testing.T) {
	pub := &countingPublisher{err: errors.New("broker down")}
	cb := circuitbreaker.NewCircuitBreaker(3, time.Hour)
	g := generator.NewGenerator(context.Background(),
		generator.WithPublisher(pub),
		generator.WithCircuitBreaker(cb),
		generator.WithInterval(time.Millisecond),
	)
	if err := g.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	waitFor(t, "breaker to open", func() bool { return !cb.Allow() })
	time.Sleep(20 * time.Millisecond)
	_ = g.Stop()

	if got := pub.attempts(); got != 3 {
		t.Fatalf("expected publishing to halt after 3 failures, got %d attempts", got)
	}
}

type countingPublisher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *countingPublisher) Publish(ctx context.Context, rec types.PulseRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err
}

func (p *countingPublisher) Close() error { return nil }

func (p *countingPublisher) attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
