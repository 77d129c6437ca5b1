package generator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

var (
	errNoPublisher = errors.New("generator has no publisher")
	errStopped     = errors.New("generator stopped")
)

// Start launches the publish loop. A generator runs once.
func (g *Generator) Start(ctx context.Context) error {
	g.configLock.Lock()
	publisher, breaker := g.publisher, g.breaker
	g.configLock.Unlock()
	if publisher == nil {
		return errNoPublisher
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.ctx.Err() != nil {
		return errStopped
	}
	if !atomic.CompareAndSwapInt32(&g.started, 0, 1) {
		return fmt.Errorf("generator already started")
	}

	stop := context.AfterFunc(ctx, g.cancel)
	g.notifyStart()
	g.NotifyLoggers(types.InfoLevel, "generator started",
		"component", g.GetComponentMetadata(), "event", "Start",
		"first_channel", g.firstChannel, "last_channel", g.lastChannel, "interval", g.interval)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer stop()
		g.run(publisher, breaker)
	}()
	return nil
}

func (g *Generator) run(publisher types.Publisher, breaker types.CircuitBreaker) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.ctx.Done():
			return
		case <-ticker.C:
			if breaker != nil && !breaker.Allow() {
				continue
			}
			if err := g.publishOne(publisher); err != nil && breaker != nil {
				breaker.RecordError()
			}
		}
	}
}

func (g *Generator) publishOne(publisher types.Publisher) error {
	ch := g.randomChannel()
	frame := atomic.AddUint64(&g.frames, 1) - 1
	rec := g.Pulse(ch, frame)

	if err := publisher.Publish(g.ctx, rec); err != nil {
		if g.ctx.Err() != nil {
			return nil
		}
		g.notifyError(err)
		return err
	}
	atomic.AddUint64(&g.published, 1)
	g.notifyRecord(rec)
	return nil
}

// Stop cancels the publish loop and waits for it to exit. The publisher stays open.
func (g *Generator) Stop() error {
	g.stopOnce.Do(func() {
		g.cancel()
		g.wg.Wait()
		if atomic.CompareAndSwapInt32(&g.started, 1, 0) {
			g.notifyStop()
			g.NotifyLoggers(types.InfoLevel, "generator stopped",
				"component", g.GetComponentMetadata(), "event", "Stop", "published", g.Published())
		}
	})
	return nil
}

func (g *Generator) IsStarted() bool {
	return atomic.LoadInt32(&g.started) == 1
}

// Published returns the number of records handed to the publisher without error.
func (g *Generator) Published() uint64 {
	return atomic.LoadUint64(&g.published)
}
