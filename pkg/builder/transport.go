package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
	"github.com/joeydtaylor/pulsescope/pkg/internal/kafkarelay"
	"github.com/joeydtaylor/pulsescope/pkg/internal/natsrelay"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/zmqtransport"
)

// Transport kinds accepted by DialTransport and NewPublisher.
const (
	TransportZMQ   = "zmq"
	TransportNATS  = "nats"
	TransportKafka = "kafka"
)

// Compression names a message body compression for the NATS and Kafka transports.
type Compression = compression.Algorithm

const (
	CompressionNone    = compression.None
	CompressionDeflate = compression.Deflate
	CompressionSnappy  = compression.Snappy
	CompressionZstd    = compression.Zstd
	CompressionBrotli  = compression.Brotli
	CompressionLZ4     = compression.LZ4
)

// ParseCompression accepts a compression name such as "zstd". "" means none.
func ParseCompression(s string) (Compression, error) {
	return compression.ParseAlgorithm(s)
}

// DefaultKafkaTopic is used when no topic is configured.
const DefaultKafkaTopic = "pulses"

// NewZMQTransport connects a SUB socket to addr ("host:port" or a full endpoint).
func NewZMQTransport(ctx context.Context, addr string) (*zmqtransport.Transport, error) {
	return zmqtransport.Dial(ctx, addr)
}

// NewZMQPublisher binds a PUB socket on addr.
func NewZMQPublisher(ctx context.Context, addr string) (*zmqtransport.Publisher, error) {
	return zmqtransport.NewPublisher(ctx, addr)
}

// NewNATSTransport connects to a NATS server and subscribes per channel under prefix.
func NewNATSTransport(url string, options ...types.Option[*natsrelay.Transport]) (*natsrelay.Transport, error) {
	return natsrelay.Dial(url, options...)
}

func NATSTransportWithPrefix(prefix string) types.Option[*natsrelay.Transport] {
	return natsrelay.WithTransportPrefix(prefix)
}

func NATSTransportWithBufferSize(n uint32) types.Option[*natsrelay.Transport] {
	return natsrelay.WithTransportBufferSize(n)
}

func NATSTransportWithLogger(loggers ...types.Logger) types.Option[*natsrelay.Transport] {
	return natsrelay.WithTransportLogger(loggers...)
}

// NewNATSPublisher connects a publisher that writes each record to its channel subject.
func NewNATSPublisher(options ...types.Option[*natsrelay.Publisher]) (*natsrelay.Publisher, error) {
	return natsrelay.NewPublisher(options...)
}

func NATSPublisherWithURL(url string) types.Option[*natsrelay.Publisher] {
	return natsrelay.WithPublisherURL(url)
}

func NATSPublisherWithPrefix(prefix string) types.Option[*natsrelay.Publisher] {
	return natsrelay.WithPublisherPrefix(prefix)
}

// NATSPublisherWithCompression compresses message bodies. Transports unpack them
// from the message header without configuration.
func NATSPublisherWithCompression(alg Compression) types.Option[*natsrelay.Publisher] {
	return natsrelay.WithPublisherCompression(alg)
}

// NewKafkaTransport reads pulse records from topic as part of consumer group groupID.
func NewKafkaTransport(brokers []string, topic, groupID string) *kafkarelay.Transport {
	return kafkarelay.Dial(brokers, topic, groupID)
}

// NewKafkaPublisher writes records to topic, partitioned by channel.
func NewKafkaPublisher(brokers []string, topic string, options ...types.Option[*kafkarelay.Publisher]) *kafkarelay.Publisher {
	return kafkarelay.NewPublisher(brokers, topic, options...)
}

func KafkaPublisherWithCompression(alg Compression) types.Option[*kafkarelay.Publisher] {
	return kafkarelay.WithCompression(alg)
}

// DialTransport opens the subscribing side named by kind. For nats, topic is the
// subject prefix. For kafka, addr is a comma separated broker list and groupID
// enables committed offsets.
func DialTransport(ctx context.Context, kind, addr, topic, groupID string, logger types.Logger) (types.Transport, error) {
	switch strings.ToLower(kind) {
	case "", TransportZMQ:
		return NewZMQTransport(ctx, addr)
	case TransportNATS:
		var opts []types.Option[*natsrelay.Transport]
		if topic != "" {
			opts = append(opts, NATSTransportWithPrefix(topic))
		}
		if logger != nil {
			opts = append(opts, NATSTransportWithLogger(logger))
		}
		return NewNATSTransport(addr, opts...)
	case TransportKafka:
		if topic == "" {
			topic = DefaultKafkaTopic
		}
		return NewKafkaTransport(splitList(addr), topic, groupID), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}

// NewPublisher opens the producing side named by kind.
func NewPublisher(ctx context.Context, kind, addr, topic string) (types.Publisher, error) {
	return NewCompressedPublisher(ctx, kind, addr, topic, CompressionNone)
}

// NewCompressedPublisher is NewPublisher with message body compression. ZeroMQ
// frames keep the producer wire format, so zmq accepts only CompressionNone.
func NewCompressedPublisher(ctx context.Context, kind, addr, topic string, alg Compression) (types.Publisher, error) {
	switch strings.ToLower(kind) {
	case "", TransportZMQ:
		if alg.Enabled() {
			return nil, fmt.Errorf("zmq transport does not support %s compression", alg)
		}
		return NewZMQPublisher(ctx, addr)
	case TransportNATS:
		opts := []types.Option[*natsrelay.Publisher]{NATSPublisherWithURL(addr), NATSPublisherWithCompression(alg)}
		if topic != "" {
			opts = append(opts, NATSPublisherWithPrefix(topic))
		}
		return NewNATSPublisher(opts...)
	case TransportKafka:
		if topic == "" {
			topic = DefaultKafkaTopic
		}
		return NewKafkaPublisher(splitList(addr), topic, KafkaPublisherWithCompression(alg)), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
