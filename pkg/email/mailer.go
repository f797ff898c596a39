package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender delivers one composed contact message to the operator mailbox and
// reports the provider-assigned message identifier.
type Sender interface {
	// Send delivers the message. It returns the provider message id on
	// success. Implementations must settle to success or failure within
	// the lifetime of ctx.
	Send(ctx context.Context, msg Message) (string, error)

	// Verify checks credentials and connectivity without sending anything.
	// Used by the relay to fail fast before composing mail, and by the
	// readiness probe.
	Verify(ctx context.Context) error
}

// Message is one outbound contact-form email. The destination mailbox is
// fixed by the sender's configuration; the message only carries what varies
// per submission.
type Message struct {
	FromName string `json:"from_name"` // display name embedded in the From header
	ReplyTo  string `json:"reply_to"`  // submitter address, so operator replies reach the customer
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
}

// emailRegex matches the minimal local@domain.tld shape. Kept deliberately
// loose; strict RFC parsing rejects addresses real users type.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks that the message is deliverable.
func (m Message) Validate() error {
	if strings.TrimSpace(m.FromName) == "" {
		return fmt.Errorf("%w: FromName is required", ErrInvalidParams)
	}
	if strings.TrimSpace(m.ReplyTo) == "" {
		return fmt.Errorf("%w: ReplyTo is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(m.ReplyTo) {
		return fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(m.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}
