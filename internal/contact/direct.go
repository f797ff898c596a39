package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// DirectConfig holds the provider credentials for the direct transport.
// All three provider values must be present for the transport to be
// available; the addresses route the templated email.
type DirectConfig struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	TemplateID   int64  `env:"POSTMARK_TEMPLATE_ID"`
	FromEmail    string `env:"POSTMARK_FROM_EMAIL"`
	ToEmail      string `env:"CONTACT_EMAIL_RECIPIENT"`
}

// Configured reports whether every value the transport needs is present.
func (c DirectConfig) Configured() bool {
	return c.ServerToken != "" && c.AccountToken != "" && c.TemplateID != 0 &&
		c.FromEmail != "" && c.ToEmail != ""
}

// DirectTransport delivers submissions as templated transactional email
// through the provider's API, without touching the mail relay. Missing
// configuration makes the transport report unavailable instead of failing
// at construction, so the form can fall back to a different transport.
type DirectTransport struct {
	client *postmark.Client
	config DirectConfig
}

// NewDirectTransport creates the provider-backed transport. Construction
// never fails; use Available to check whether the transport can deliver.
func NewDirectTransport(cfg DirectConfig) *DirectTransport {
	return &DirectTransport{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}
}

func (t *DirectTransport) Available() bool {
	return t.config.Configured()
}

// Deliver sends the submission through the provider's templated-email API.
// The template model carries the raw field values; rendering is the
// template's job. Reply-To points at the submitter so a reply from the
// recipient's inbox reaches them directly.
func (t *DirectTransport) Deliver(ctx context.Context, sub Submission) error {
	if !t.Available() {
		return ErrTransportUnavailable
	}

	resp, err := t.client.SendTemplatedEmail(ctx, postmark.TemplatedEmail{
		TemplateID: t.config.TemplateID,
		TemplateModel: map[string]any{
			"from_name":  sub.Name,
			"from_email": sub.Email,
			"phone":      sub.Phone,
			"subject":    sub.Subject,
			"message":    sub.Message,
		},
		From:       t.config.FromEmail,
		To:         t.config.ToEmail,
		ReplyTo:    sub.Email,
		Tag:        "contact-form",
		TrackOpens: true,
	})
	if err != nil {
		return errors.Join(ErrDeliverFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrDeliverFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
