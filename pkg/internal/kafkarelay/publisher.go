package kafkarelay

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// MessageWriter is the subset of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ChannelBalancer keeps every record of a channel on one partition, which keeps
// per-channel order.
func ChannelBalancer() kafka.Balancer {
	return kafka.BalancerFunc(func(msg kafka.Message, partitions ...int) int {
		if len(partitions) == 0 {
			return 0
		}
		ch, _ := codec.ChannelOf(msg.Key)
		return partitions[int(ch)%len(partitions)]
	})
}

// Publisher writes records to a Kafka topic.
type Publisher struct {
	writer      MessageWriter
	compression compression.Algorithm
}

// NewPublisher creates a writer for topic on brokers.
func NewPublisher(brokers []string, topic string, options ...types.Option[*Publisher]) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     ChannelBalancer(),
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}, options...)
}

func NewPublisherWithWriter(w MessageWriter, options ...types.Option[*Publisher]) *Publisher {
	p := &Publisher{writer: w}
	for _, option := range options {
		option(p)
	}
	return p
}

// WithCompression compresses each message value with alg. The header key stays
// uncompressed so the channel balancer can read it.
func WithCompression(alg compression.Algorithm) types.Option[*Publisher] {
	return func(p *Publisher) { p.compression = alg }
}

func (p *Publisher) Publish(ctx context.Context, rec types.PulseRecord) error {
	header, payload, err := codec.Encode(rec)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: header, Value: payload}
	if p.compression.Enabled() {
		if msg.Value, err = compression.Compress(payload, p.compression); err != nil {
			return err
		}
		msg.Headers = []kafka.Header{{Key: compression.HeaderKey, Value: []byte(p.compression)}}
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ types.Publisher = (*Publisher)(nil)
