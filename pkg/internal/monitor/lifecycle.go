package monitor

import (
	"context"
	"sync/atomic"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// Submit queues rec for dispatch, blocking while the queue is full.
func (m *Monitor) Submit(ctx context.Context, rec types.PulseRecord) error {
	if err := m.ctx.Err(); err != nil {
		return err
	}
	select {
	case m.DataCh <- rec:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-m.ctx.Done():
		return m.ctx.Err()
	}
}

// Start launches the dispatch goroutine. Starting twice is a no-op.
func (m *Monitor) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&m.started, 0, 1) {
		return nil
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			atomic.StoreInt32(&m.started, 0)
			return err
		}
		context.AfterFunc(ctx, m.cancel)
	}
	m.wg.Add(1)
	go m.dispatch()
	m.notify(types.InfoLevel, "monitor started", "event", "Start")
	return nil
}

// Stop ends dispatch after the record in progress. Queued records are dropped.
func (m *Monitor) Stop() error {
	m.stopOnce.Do(func() {
		m.cancel()
		m.wg.Wait()
		atomic.StoreInt32(&m.started, 0)
		m.notify(types.InfoLevel, "monitor stopped", "event", "Stop")
	})
	return nil
}

func (m *Monitor) IsStarted() bool {
	return atomic.LoadInt32(&m.started) == 1
}

func (m *Monitor) dispatch() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case rec := <-m.DataCh:
			m.route(rec)
		}
	}
}

func (m *Monitor) route(rec types.PulseRecord) {
	for _, tr := range m.targets(rec.ChannelIndex) {
		if err := tr.Submit(m.ctx, rec); err != nil {
			m.notifyError("Submit", err, "trace", tr.ID(), "channel", rec.ChannelIndex)
		}
	}
}

// Drain routes every queued record synchronously. It is meant for callers that
// run without the dispatch goroutine.
func (m *Monitor) Drain() int {
	n := 0
	for {
		select {
		case rec := <-m.DataCh:
			m.route(rec)
			n++
		default:
			return n
		}
	}
}
