package mailer

import "context"

// Transport defines the minimal interface that email providers must implement.
// It accepts a fully-assembled Message and handles the actual delivery.
type Transport interface {
	Send(ctx context.Context, msg *Message) (*SendResult, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, msg *Message) (*SendResult, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	return f(ctx, msg)
}
