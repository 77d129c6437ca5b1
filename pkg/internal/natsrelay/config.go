package natsrelay

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/nats-io/nats.go"

	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// DefaultPrefix is the subject prefix; records of channel N travel on "<prefix>.N".
const DefaultPrefix = "pulses"

// Subject returns the subject carrying records of channel.
func Subject(prefix string, channel uint16) string {
	return fmt.Sprintf("%s.%d", normalizePrefix(prefix), channel)
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		return DefaultPrefix
	}
	return prefix
}

// Transport config helpers

func (t *Transport) ConnectLogger(loggers ...types.Logger) {
	t.requireNotFrozen("ConnectLogger")
	t.Loggers = append(t.Loggers, loggers...)
}

func (t *Transport) SetURL(url string) {
	t.requireNotFrozen("SetURL")
	t.URL = url
}

func (t *Transport) SetPrefix(prefix string) {
	t.requireNotFrozen("SetPrefix")
	t.Prefix = normalizePrefix(prefix)
}

// SetConn supplies an existing connection. The transport does not close it.
func (t *Transport) SetConn(conn *nats.Conn) {
	t.requireNotFrozen("SetConn")
	t.Conn = conn
}

func (t *Transport) SetBufferSize(n uint32) {
	t.requireNotFrozen("SetBufferSize")
	if n == 0 {
		return
	}
	t.msgs = make(chan *nats.Msg, n)
}

func (t *Transport) requireNotFrozen(action string) {
	if atomic.LoadInt32(&t.configFrozen) == 1 {
		panic("natsrelay: " + action + " called after Connect")
	}
}

func WithTransportURL(url string) types.Option[*Transport] {
	return func(t *Transport) { t.SetURL(url) }
}

func WithTransportPrefix(prefix string) types.Option[*Transport] {
	return func(t *Transport) { t.SetPrefix(prefix) }
}

func WithTransportConn(conn *nats.Conn) types.Option[*Transport] {
	return func(t *Transport) { t.SetConn(conn) }
}

func WithTransportBufferSize(n uint32) types.Option[*Transport] {
	return func(t *Transport) { t.SetBufferSize(n) }
}

// WithTransportMaxMessageSize bounds decompressed message bodies.
func WithTransportMaxMessageSize(n int64) types.Option[*Transport] {
	return func(t *Transport) {
		t.requireNotFrozen("WithTransportMaxMessageSize")
		if n > 0 {
			t.MaxMessageSize = n
		}
	}
}

func WithTransportLogger(loggers ...types.Logger) types.Option[*Transport] {
	return func(t *Transport) { t.ConnectLogger(loggers...) }
}

// Publisher config helpers

func WithPublisherURL(url string) types.Option[*Publisher] {
	return func(p *Publisher) { p.URL = url }
}

func WithPublisherPrefix(prefix string) types.Option[*Publisher] {
	return func(p *Publisher) { p.Prefix = normalizePrefix(prefix) }
}

// WithPublisherConn supplies an existing connection. The publisher does not close it.
func WithPublisherConn(conn *nats.Conn) types.Option[*Publisher] {
	return func(p *Publisher) { p.Conn = conn }
}

// WithPublisherCompression compresses every message body with alg.
func WithPublisherCompression(alg compression.Algorithm) types.Option[*Publisher] {
	return func(p *Publisher) { p.Compression = alg }
}
