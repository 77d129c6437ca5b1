package receiver

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// Start launches the receive loop. Cancelling ctx stops the loop like Stop does.
func (r *Receiver) Start(ctx context.Context) error {
	if r.transport == nil {
		return errNoTransport
	}
	if !atomic.CompareAndSwapInt32(&r.used, 0, 1) {
		return types.ErrAlreadyTerminated
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			r.terminate()
			close(r.done)
			return err
		}
		context.AfterFunc(ctx, r.cancel)
	}

	atomic.StoreInt32(&r.state, int32(StateRunning))
	r.notifyStart()

	go r.run()
	return nil
}

// Stop asks the loop to exit, waits for it, and returns the terminal error.
// Stopping a receiver that never started releases its transport and makes any
// later Start fail.
func (r *Receiver) Stop() error {
	if atomic.CompareAndSwapInt32(&r.used, 0, 1) {
		r.cancel()
		r.terminate()
		close(r.done)
		return nil
	}
	atomic.CompareAndSwapInt32(&r.state, int32(StateRunning), int32(StateStopping))
	r.cancel()
	<-r.done
	return r.Err()
}

// Wait blocks until the loop exits. It returns immediately for a receiver that never started.
func (r *Receiver) Wait() error {
	if atomic.LoadInt32(&r.used) == 0 {
		return nil
	}
	<-r.done
	return r.Err()
}

func (r *Receiver) run() {
	defer func() {
		r.terminate()
		close(r.done)
	}()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		frame, ok, err := r.transport.Poll(r.pollTimeout)
		if err != nil && types.IsProtocolError(err) {
			r.reportError(err)
			continue
		}
		if err != nil {
			if r.ctx.Err() != nil {
				return
			}
			terminal := fmt.Errorf("%w: %v", types.ErrTransportClosed, err)
			r.setErr(terminal)
			r.notifyTransportFailure(terminal)
			return
		}
		if !ok {
			continue
		}

		rec, err := codec.DecodeFrame(frame)
		if err != nil {
			r.reportError(err)
			continue
		}
		r.notifyRecord(rec)

		for _, out := range r.outputs {
			if err := out.Submit(r.ctx, rec); err != nil {
				if r.ctx.Err() != nil {
					return
				}
				r.reportError(fmt.Errorf("deliver %s: %w", codec.Describe(rec), err))
			}
		}
	}
}

// terminate releases the transport and marks the receiver stopped, once.
func (r *Receiver) terminate() {
	r.terminateOnce.Do(func() {
		r.cancel()
		if r.transport != nil {
			if err := r.transport.Close(); err != nil && r.hasLoggers() {
				r.NotifyLoggers(types.WarnLevel, "transport close failed",
					"component", r.componentMetadata,
					"event", "Close",
					"error", err,
				)
			}
		}
		atomic.StoreInt32(&r.state, int32(StateStopped))
		r.notifyStop()
	})
}
