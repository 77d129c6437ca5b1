// Package kafkarelay carries pulse records through a Kafka topic. The message key
// holds the header and the value holds the payload, so each message is already a
// two-part frame. Channel selection happens on the consumer side.
package kafkarelay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// MessageReader is the subset of *kafka.Reader the transport uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Transport polls a Kafka reader and yields frames for subscribed channels.
type Transport struct {
	reader  MessageReader
	commit  bool
	maxSize int64

	mu       sync.Mutex
	channels map[uint16]struct{}
	all      bool
}

// Dial creates a consumer-group reader on topic. Offsets are committed after each
// delivered message when groupID is set.
func Dial(brokers []string, topic, groupID string) *Transport {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		MaxWait: 50 * time.Millisecond,
	})
	return NewTransport(r, groupID != "")
}

// NewTransport wraps an existing reader.
func NewTransport(reader MessageReader, commit bool) *Transport {
	return &Transport{
		reader:   reader,
		commit:   commit,
		maxSize:  compression.DefaultMaxSize,
		channels: make(map[uint16]struct{}),
	}
}

func (t *Transport) SubscribeChannel(channel uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.channels[channel] = struct{}{}
	return nil
}

func (t *Transport) UnsubscribeChannel(channel uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.channels, channel)
	return nil
}

// SubscribeAll passes every channel.
func (t *Transport) SubscribeAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.all = true
	return nil
}

func (t *Transport) wants(key []byte) bool {
	ch, ok := codec.ChannelOf(key)
	if !ok {
		// Let the decoder report the short header.
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.all {
		return true
	}
	_, want := t.channels[ch]
	return want
}

// Poll fetches messages until one matches the subscribed channels or timeout elapses.
// A value that cannot be unpacked is returned as a protocol error.
func (t *Transport) Poll(timeout time.Duration) (types.Frame, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for {
		msg, err := t.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("%w: %v", types.ErrTransportClosed, err)
		}
		if t.commit {
			if err := t.reader.CommitMessages(context.Background(), msg); err != nil {
				return nil, false, fmt.Errorf("%w: commit: %v", types.ErrTransportClosed, err)
			}
		}
		if t.wants(msg.Key) {
			value, err := t.unpack(msg)
			if err != nil {
				return nil, false, err
			}
			return types.Frame{msg.Key, value}, true, nil
		}
	}
}

// SetMaxMessageSize bounds decompressed message values.
func (t *Transport) SetMaxMessageSize(n int64) {
	if n > 0 {
		t.maxSize = n
	}
}

func (t *Transport) unpack(msg kafka.Message) ([]byte, error) {
	for _, h := range msg.Headers {
		if h.Key != compression.HeaderKey {
			continue
		}
		alg, err := compression.ParseAlgorithm(string(h.Value))
		if err != nil {
			return nil, types.NewProtocolError("decode kafka message", types.ErrCorruptPayload, "%v", err)
		}
		value, err := compression.Decompress(msg.Value, alg, t.maxSize)
		if err != nil {
			return nil, types.NewProtocolError("decode kafka message", types.ErrCorruptPayload, "%s: %v", alg, err)
		}
		return value, nil
	}
	return msg.Value, nil
}

func (t *Transport) Close() error {
	return t.reader.Close()
}

var _ types.Transport = (*Transport)(nil)
