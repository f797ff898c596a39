package contact

import (
	"context"
	"errors"
)

// Transport delivers a validated submission to its destination. The two
// production implementations are DirectTransport (templated provider email)
// and RelayTransport (POST to the mail relay endpoint); tests supply fakes.
type Transport interface {
	// Available reports whether the transport has the configuration it
	// needs to attempt a delivery. An unavailable transport must not be
	// asked to Deliver.
	Available() bool

	// Deliver sends the submission, honoring ctx cancellation and
	// deadlines. A nil return means the destination acknowledged the
	// message at the application level, not just at the HTTP level.
	Deliver(ctx context.Context, sub Submission) error
}

var (
	// ErrTransportUnavailable signals that the transport is missing
	// required configuration and cannot attempt delivery.
	ErrTransportUnavailable = errors.New("transport unavailable")

	// ErrDeliverFailed wraps any downstream failure during delivery.
	ErrDeliverFailed = errors.New("failed to deliver submission")
)

// TransportFunc adapts a function to the Transport interface, always
// reporting itself available. Handy in tests.
type TransportFunc func(ctx context.Context, sub Submission) error

func (f TransportFunc) Available() bool { return true }

func (f TransportFunc) Deliver(ctx context.Context, sub Submission) error {
	return f(ctx, sub)
}
