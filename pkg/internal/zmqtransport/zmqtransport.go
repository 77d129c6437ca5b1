// Package zmqtransport carries pulse records over ZeroMQ PUB/SUB. Each record is a
// two-frame message, header then payload, and channel selection uses the header's
// leading bytes as the topic prefix.
package zmqtransport

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// DefaultBufferSize is the number of received frames queued ahead of Poll.
const DefaultBufferSize = 1024

// Endpoint turns an opaque host:port into a ZeroMQ tcp endpoint. Strings that
// already carry a scheme are returned unchanged.
func Endpoint(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	return "tcp://" + addr
}

// Transport is a SUB socket plus a goroutine that pumps received messages into a
// bounded queue, so Poll can honour a timeout.
type Transport struct {
	sock   zmq4.Socket
	ctx    context.Context
	cancel context.CancelFunc

	frames chan types.Frame
	failed chan error
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// Dial connects a SUB socket to addr. No channel is subscribed yet.
func Dial(ctx context.Context, addr string) (*Transport, error) {
	ctx, cancel := context.WithCancel(ctx)
	sock := zmq4.NewSub(ctx)
	if err := sock.Dial(Endpoint(addr)); err != nil {
		cancel()
		_ = sock.Close()
		return nil, fmt.Errorf("zmq dial %s: %w", addr, err)
	}
	t := &Transport{
		sock:   sock,
		ctx:    ctx,
		cancel: cancel,
		frames: make(chan types.Frame, DefaultBufferSize),
		failed: make(chan error, 1),
		done:   make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

func (t *Transport) pump() {
	defer close(t.done)
	for {
		msg, err := t.sock.Recv()
		if err != nil {
			if t.ctx.Err() == nil {
				t.failed <- err
			}
			return
		}
		select {
		case t.frames <- types.Frame(msg.Frames):
		case <-t.ctx.Done():
			return
		}
	}
}

// SubscribeChannel attaches the channel's topic filter.
func (t *Transport) SubscribeChannel(channel uint16) error {
	return t.sock.SetOption(zmq4.OptionSubscribe, string(codec.ChannelFilter(channel)))
}

// UnsubscribeChannel removes the channel's topic filter.
func (t *Transport) UnsubscribeChannel(channel uint16) error {
	return t.sock.SetOption(zmq4.OptionUnsubscribe, string(codec.ChannelFilter(channel)))
}

// SubscribeAll attaches the empty filter, which matches every channel.
func (t *Transport) SubscribeAll() error {
	return t.sock.SetOption(zmq4.OptionSubscribe, "")
}

// Poll waits up to timeout for one frame.
func (t *Transport) Poll(timeout time.Duration) (types.Frame, bool, error) {
	select {
	case f := <-t.frames:
		return f, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case f := <-t.frames:
		return f, true, nil
	case err := <-t.failed:
		return nil, false, fmt.Errorf("%w: %v", types.ErrTransportClosed, err)
	case <-t.ctx.Done():
		return nil, false, types.ErrTransportClosed
	case <-timer.C:
		return nil, false, nil
	}
}

// Close shuts the socket and waits for the pump to exit.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.cancel()
		t.closeErr = t.sock.Close()
		<-t.done
	})
	return t.closeErr
}

var _ types.Transport = (*Transport)(nil)
