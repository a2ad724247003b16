package domain

import "context"

// Sink delivers one submission to one external destination in that destination's wire format
type Sink interface {
	Deliver(ctx context.Context, text string) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ctx context.Context, text string) error

// Deliver calls f
func (f SinkFunc) Deliver(ctx context.Context, text string) error { return f(ctx, text) }

// DispatcherPort routes one submission to the configured destination
type DispatcherPort interface {
	Dispatch(ctx context.Context, text string) error
	Destination() Destination
}
