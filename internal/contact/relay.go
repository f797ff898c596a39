package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRelayTimeout bounds one relay round trip when no custom client is
// provided.
const DefaultRelayTimeout = 30 * time.Second

// relayResponse is the wire shape the mail relay answers with. A non-empty
// Error marks an application-level failure regardless of the HTTP status.
type relayResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// RelayTransport delivers submissions by posting them as JSON to the mail
// relay endpoint, which owns the SMTP credentials.
type RelayTransport struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// RelayOption configures a RelayTransport during construction.
type RelayOption func(*RelayTransport)

// WithHTTPClient replaces the default HTTP client, e.g. to share transports
// between callers. The supplied client is never mutated.
func WithHTTPClient(client *http.Client) RelayOption {
	return func(t *RelayTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithRelayTimeout bounds each relay round trip. Non-positive values are
// ignored. The timeout applies regardless of option order.
func WithRelayTimeout(d time.Duration) RelayOption {
	return func(t *RelayTransport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// NewRelayTransport creates a transport posting to the given endpoint,
// typically "https://<site>/api/contact". An empty endpoint yields an
// unavailable transport.
func NewRelayTransport(endpoint string, opts ...RelayOption) *RelayTransport {
	t := &RelayTransport{endpoint: endpoint}
	for _, opt := range opts {
		opt(t)
	}

	// The timeout is resolved after all options so WithRelayTimeout and
	// WithHTTPClient compose in either order. A caller-supplied client is
	// copied before its timeout is overridden.
	switch {
	case t.client == nil:
		if t.timeout <= 0 {
			t.timeout = DefaultRelayTimeout
		}
		t.client = &http.Client{Timeout: t.timeout}
	case t.timeout > 0:
		client := *t.client
		client.Timeout = t.timeout
		t.client = &client
	}
	return t
}

func (t *RelayTransport) Available() bool {
	return t.endpoint != ""
}

// Deliver posts the submission and interprets the relay's answer. Delivery
// succeeds only when the HTTP status is in the 2xx range and the body does
// not carry an application-level error; otherwise the relay's message is
// surfaced in the returned error.
func (t *RelayTransport) Deliver(ctx context.Context, sub Submission) error {
	if !t.Available() {
		return ErrTransportUnavailable
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return errors.Join(ErrDeliverFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Join(ErrDeliverFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return errors.Join(ErrDeliverFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	// The body is small and its shape is ours; decode errors are folded
	// into the outcome rather than reported separately.
	var body relayResponse
	if data, rerr := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); rerr == nil {
		_ = json.Unmarshal(data, &body)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := body.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return errors.Join(ErrDeliverFailed, fmt.Errorf("relay responded %d: %s", resp.StatusCode, msg))
	}
	if body.Error != "" {
		return errors.Join(ErrDeliverFailed, fmt.Errorf("relay reported failure: %s", body.Error))
	}
	return nil
}
