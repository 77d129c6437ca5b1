package types

import (
	"context"
	"time"
)

// Frame is one logical transport message. A well-formed pulse frame has exactly
// two parts: the header followed by the payload.
type Frame [][]byte

// ChannelSubscriber attaches or removes the topic filter for a channel.
type ChannelSubscriber interface {
	SubscribeChannel(channel uint16) error
	UnsubscribeChannel(channel uint16) error
}

// Transport is the subscribing side of a publish/subscribe connection.
//
// Poll waits at most timeout for one frame. It returns ok=false on timeout. A
// *ProtocolError reports one unusable message; any other error means the transport
// can no longer deliver frames.
type Transport interface {
	ChannelSubscriber
	Poll(timeout time.Duration) (frame Frame, ok bool, err error)
	Close() error
}

// Publisher is the producing side, used by synthetic data sources.
type Publisher interface {
	Publish(ctx context.Context, rec PulseRecord) error
	Close() error
}
