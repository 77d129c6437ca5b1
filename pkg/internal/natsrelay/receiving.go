package natsrelay

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

// Transport receives pulse records from per-channel NATS subjects. Each message body
// is a contiguous header||payload blob.
type Transport struct {
	URL    string
	Prefix string
	Conn   *nats.Conn

	// MaxMessageSize bounds a decompressed message body.
	MaxMessageSize int64

	componentMetadata types.ComponentMetadata

	Loggers []types.Logger

	msgs      chan *nats.Msg
	subsLock  sync.Mutex
	subs      map[uint16]*nats.Subscription
	ownsConn  bool
	closed    chan struct{}
	closeOnce sync.Once

	configFrozen int32
}

func NewTransport(options ...types.Option[*Transport]) *Transport {
	t := &Transport{
		URL:            nats.DefaultURL,
		Prefix:         DefaultPrefix,
		MaxMessageSize: compression.DefaultMaxSize,
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "NATS_TRANSPORT",
		},
		msgs:   make(chan *nats.Msg, 1024),
		subs:   make(map[uint16]*nats.Subscription),
		closed: make(chan struct{}),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Dial creates a transport and connects it.
func Dial(url string, options ...types.Option[*Transport]) (*Transport, error) {
	t := NewTransport(append([]types.Option[*Transport]{WithTransportURL(url)}, options...)...)
	if err := t.Connect(); err != nil {
		return nil, err
	}
	return t, nil
}

// Connect opens the NATS connection unless one was supplied.
func (t *Transport) Connect() error {
	atomic.StoreInt32(&t.configFrozen, 1)
	if t.Conn != nil {
		return nil
	}
	conn, err := nats.Connect(t.URL,
		nats.Name("pulsescope-"+t.componentMetadata.ID),
		nats.ClosedHandler(func(*nats.Conn) { t.markClosed() }),
	)
	if err != nil {
		return err
	}
	t.Conn = conn
	t.ownsConn = true
	t.logInfo("connected", "url", t.URL)
	return nil
}

func (t *Transport) GetComponentMetadata() types.ComponentMetadata {
	return t.componentMetadata
}

// SubscribeChannel subscribes the channel's subject. Subscribing twice is a no-op.
func (t *Transport) SubscribeChannel(channel uint16) error {
	if t.Conn == nil {
		if err := t.Connect(); err != nil {
			return err
		}
	}
	t.subsLock.Lock()
	defer t.subsLock.Unlock()
	if _, ok := t.subs[channel]; ok {
		return nil
	}
	sub, err := t.Conn.ChanSubscribe(Subject(t.Prefix, channel), t.msgs)
	if err != nil {
		return err
	}
	t.subs[channel] = sub
	return nil
}

func (t *Transport) UnsubscribeChannel(channel uint16) error {
	t.subsLock.Lock()
	defer t.subsLock.Unlock()
	sub, ok := t.subs[channel]
	if !ok {
		return nil
	}
	delete(t.subs, channel)
	return sub.Unsubscribe()
}

// Poll waits up to timeout for one message. A message that cannot be unpacked is
// returned as a protocol error and the transport stays usable.
func (t *Transport) Poll(timeout time.Duration) (types.Frame, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case msg := <-t.msgs:
		frame, err := DecodeMsg(msg, t.MaxMessageSize)
		if err != nil {
			return nil, false, err
		}
		return frame, true, nil
	case <-t.closed:
		return nil, false, types.ErrTransportClosed
	case <-timer.C:
		return nil, false, nil
	}
}

// Close drops every subscription and closes the connection if the transport opened it.
func (t *Transport) Close() error {
	t.subsLock.Lock()
	for ch, sub := range t.subs {
		_ = sub.Unsubscribe()
		delete(t.subs, ch)
	}
	t.subsLock.Unlock()
	if t.ownsConn && t.Conn != nil {
		t.Conn.Close()
	}
	t.markClosed()
	return nil
}

func (t *Transport) markClosed() {
	t.closeOnce.Do(func() { close(t.closed) })
}

func (t *Transport) logInfo(msg string, keysAndValues ...interface{}) {
	kv := append([]interface{}{"component", t.componentMetadata}, keysAndValues...)
	for _, l := range t.Loggers {
		if l != nil {
			l.Info(msg, kv...)
		}
	}
}

var _ types.Transport = (*Transport)(nil)
