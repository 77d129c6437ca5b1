package kafkarelay_test

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
	"github.com/joeydtaylor/pulsescope/pkg/internal/kafkarelay"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// memBroker is an in-memory writer and reader pair.
type memBroker struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed int
	closed    bool
}

func (b *memBroker) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msgs...)
	return nil
}

func (b *memBroker) FetchMessage(ctx context.Context) (kafka.Message, error) {
	for {
		b.mu.Lock()
		if b.closed {
			b.mu.Unlock()
			return kafka.Message{}, io.EOF
		}
		if len(b.msgs) > 0 {
			m := b.msgs[0]
			b.msgs = b.msgs[1:]
			b.mu.Unlock()
			return m, nil
		}
		b.mu.Unlock()
		select {
		case <-ctx.Done():
			return kafka.Message{}, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (b *memBroker) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.committed += len(msgs)
	return nil
}

func (b *memBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func rec(ch uint16) types.PulseRecord {
	return types.PulseRecord{ChannelIndex: ch, Timebase: 1e-6}.WithSamples(types.Int16Samples{-1, 0, 1})
}

func TestPublishAndPollFiltersChannels(t *testing.T) {
	b := &memBroker{}
	pub := kafkarelay.NewPublisherWithWriter(b)
	ctx := context.Background()
	for _, ch := range []uint16{1, 2, 1} {
		if err := pub.Publish(ctx, rec(ch)); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	tr := kafkarelay.NewTransport(b, true)
	_ = tr.SubscribeChannel(2)
	frame, ok, err := tr.Poll(time.Second)
	if err != nil || !ok {
		t.Fatalf("Poll = ok:%v err:%v", ok, err)
	}
	got, err := codec.DecodeFrame(frame)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if got.ChannelIndex != 2 {
		t.Fatalf("channel = %d, want 2", got.ChannelIndex)
	}
	if _, ok, err := tr.Poll(20 * time.Millisecond); ok || err != nil {
		t.Fatalf("expected timeout, got ok:%v err:%v", ok, err)
	}
	if b.committed != 3 {
		t.Fatalf("committed %d messages, want 3", b.committed)
	}
}

func TestSubscribeAll(t *testing.T) {
	b := &memBroker{}
	pub := kafkarelay.NewPublisherWithWriter(b)
	_ = pub.Publish(context.Background(), rec(9))
	tr := kafkarelay.NewTransport(b, false)
	_ = tr.SubscribeAll()
	if _, ok, err := tr.Poll(time.Second); !ok || err != nil {
		t.Fatalf("Poll = ok:%v err:%v", ok, err)
	}
	if b.committed != 0 {
		t.Fatalf("committed without a consumer group")
	}
}

func TestPollAfterCloseFails(t *testing.T) {
	b := &memBroker{}
	tr := kafkarelay.NewTransport(b, false)
	_ = tr.Close()
	if _, _, err := tr.Poll(10 * time.Millisecond); !errors.Is(err, types.ErrTransportClosed) {
		t.Fatalf("expected ErrTransportClosed, got %v", err)
	}
}

func TestChannelBalancer(t *testing.T) {
	bal := kafkarelay.ChannelBalancer()
	h, _, _ := codec.Encode(rec(7))
	a := bal.Balance(kafka.Message{Key: h}, 0, 1, 2)
	h2, _, _ := codec.Encode(rec(7))
	if b := bal.Balance(kafka.Message{Key: h2}, 0, 1, 2); a != b || a != 1 {
		t.Fatalf("channel 7 over 3 partitions went to %d and %d, want 1", a, b)
	}
}

func TestCompressedValues(t *testing.T) {
	b := &memBroker{}
	pub := kafkarelay.NewPublisherWithWriter(b, kafkarelay.WithCompression(compression.Brotli))
	want := rec(4)
	if err := pub.Publish(context.Background(), want); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	b.mu.Lock()
	sent := b.msgs[0]
	b.mu.Unlock()
	if len(sent.Headers) != 1 || string(sent.Headers[0].Value) != "brotli" {
		t.Fatalf("headers = %v", sent.Headers)
	}

	tr := kafkarelay.NewTransport(b, false)
	_ = tr.SubscribeChannel(4)
	frame, ok, err := tr.Poll(time.Second)
	if err != nil || !ok {
		t.Fatalf("Poll = ok:%v err:%v", ok, err)
	}
	got, err := codec.DecodeFrame(frame)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestCorruptValueIsAProtocolError(t *testing.T) {
	h, _, _ := codec.Encode(rec(4))
	b := &memBroker{msgs: []kafka.Message{{
		Key:     h,
		Value:   []byte("garbage"),
		Headers: []kafka.Header{{Key: compression.HeaderKey, Value: []byte("zstd")}},
	}}}
	tr := kafkarelay.NewTransport(b, false)
	_ = tr.SubscribeAll()
	_, ok, err := tr.Poll(time.Second)
	if ok || !errors.Is(err, types.ErrCorruptPayload) || !types.IsProtocolError(err) {
		t.Fatalf("Poll = ok:%v err:%v, want a ErrCorruptPayload protocol error", ok, err)
	}
	if errors.Is(err, types.ErrTransportClosed) {
		t.Fatalf("a bad value must not close the transport")
	}
}
