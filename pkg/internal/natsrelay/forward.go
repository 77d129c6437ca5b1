package natsrelay

import (
	"context"
	"sync/atomic"

	"github.com/nats-io/nats.go"

	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

// Publisher sends pulse records to per-channel NATS subjects.
type Publisher struct {
	URL         string
	Prefix      string
	Conn        *nats.Conn
	Compression compression.Algorithm

	componentMetadata types.ComponentMetadata

	ownsConn bool
	seq      uint64
}

// NewPublisher connects unless a connection was supplied through WithPublisherConn.
func NewPublisher(options ...types.Option[*Publisher]) (*Publisher, error) {
	p := &Publisher{
		URL:    nats.DefaultURL,
		Prefix: DefaultPrefix,
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "NATS_PUBLISHER",
		},
	}
	for _, option := range options {
		option(p)
	}
	if p.Conn == nil {
		conn, err := nats.Connect(p.URL, nats.Name("pulsescope-"+p.componentMetadata.ID))
		if err != nil {
			return nil, err
		}
		p.Conn = conn
		p.ownsConn = true
	}
	return p, nil
}

// Publish encodes rec and publishes it on its channel's subject.
func (p *Publisher) Publish(ctx context.Context, rec types.PulseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := EncodeMsg(p.Prefix, p.Compression, rec)
	if err != nil {
		return err
	}
	if err := p.Conn.PublishMsg(msg); err != nil {
		return err
	}
	atomic.AddUint64(&p.seq, 1)
	return nil
}

// Published returns the number of records sent.
func (p *Publisher) Published() uint64 {
	return atomic.LoadUint64(&p.seq)
}

// Close flushes pending messages and closes the connection if the publisher opened it.
func (p *Publisher) Close() error {
	if p.Conn == nil {
		return nil
	}
	err := p.Conn.Flush()
	if p.ownsConn {
		p.Conn.Close()
	}
	if err == nats.ErrConnectionClosed {
		return nil
	}
	return err
}

var _ types.Publisher = (*Publisher)(nil)
