package natsrelay

import (
	"github.com/nats-io/nats.go"

	"github.com/joeydtaylor/pulsescope/pkg/internal/codec"
	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// EncodeMsg builds the message for rec: the contiguous header||payload blob on the
// channel's subject, compressed with alg when it is enabled.
func EncodeMsg(prefix string, alg compression.Algorithm, rec types.PulseRecord) (*nats.Msg, error) {
	header, payload, err := codec.Encode(rec)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, len(header)+len(payload))
	data = append(data, header...)
	data = append(data, payload...)

	msg := nats.NewMsg(Subject(prefix, rec.ChannelIndex))
	if alg.Enabled() {
		if data, err = compression.Compress(data, alg); err != nil {
			return nil, err
		}
		msg.Header.Set(compression.HeaderKey, string(alg))
	}
	msg.Data = data
	return msg, nil
}

// DecodeMsg turns a received message into a two-part frame. A body that cannot be
// decompressed is reported as a protocol error for that message alone.
func DecodeMsg(msg *nats.Msg, maxSize int64) (types.Frame, error) {
	data := msg.Data
	if enc := msg.Header.Get(compression.HeaderKey); enc != "" {
		alg, err := compression.ParseAlgorithm(enc)
		if err != nil {
			return nil, types.NewProtocolError("decode nats message", types.ErrCorruptPayload, "%v", err)
		}
		if data, err = compression.Decompress(data, alg, maxSize); err != nil {
			return nil, types.NewProtocolError("decode nats message", types.ErrCorruptPayload, "%s: %v", alg, err)
		}
	}
	return codec.SplitContiguous(data), nil
}
