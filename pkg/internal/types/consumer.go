package types

import "context"

// Consumer receives decoded pulse records. Implementations must not retain the
// record's sample slice for mutation; records are shared by value.
type Consumer interface {
	Submit(ctx context.Context, rec PulseRecord) error
}

// ConsumerFunc adapts a plain function to Consumer.
type ConsumerFunc func(ctx context.Context, rec PulseRecord) error

// Submit calls f(ctx, rec).
func (f ConsumerFunc) Submit(ctx context.Context, rec PulseRecord) error {
	return f(ctx, rec)
}

// ErrorSink receives non-fatal errors, such as records that failed to decode.
type ErrorSink func(err error)
