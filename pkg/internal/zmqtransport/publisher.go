package zmqtransport

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// Publisher binds a PUB socket and sends each record as a header/payload message.
type Publisher struct {
	sock zmq4.Socket
}

// NewPublisher listens on addr, for example "*:5502".
func NewPublisher(ctx context.Context, addr string) (*Publisher, error) {
	sock := zmq4.NewPub(ctx)
	if err := sock.Listen(Endpoint(addr)); err != nil {
		_ = sock.Close()
		return nil, fmt.Errorf("zmq listen %s: %w", addr, err)
	}
	return &Publisher{sock: sock}, nil
}

func (p *Publisher) Publish(ctx context.Context, rec types.PulseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	header, payload, err := codec.Encode(rec)
	if err != nil {
		return err
	}
	return p.sock.SendMulti(zmq4.NewMsgFrom(header, payload))
}

func (p *Publisher) Close() error {
	return p.sock.Close()
}

var _ types.Publisher = (*Publisher)(nil)
