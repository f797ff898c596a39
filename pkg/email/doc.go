// Package email dispatches composed contact-form messages to the operator
// mailbox through a provider-agnostic Sender interface.
//
// Two implementations are provided:
//
//   - The SMTP sender (NewSMTPSender) submits over authenticated SMTP with
//     implicit TLS on port 465, STARTTLS on 587, or plaintext otherwise. It
//     verifies the session with a NOOP before sending, generates a
//     Message-ID which it returns as the provider message identifier, and
//     maps SMTP status failures to ProviderError for diagnostics. Defaults
//     target Gmail submission with an app-specific password.
//
//   - DevSender saves messages to disk as HTML plus JSON metadata for local
//     development without credentials.
//
// The authenticated mailbox is always the header and envelope sender; the
// submitter's name appears only in the From display name and their address
// only in Reply-To, so operator replies reach the customer directly.
//
// # Usage
//
//	cfg := email.Config{}
//	config.MustLoad(&cfg)
//
//	var sender email.Sender
//	if cfg.Configured() {
//		sender = email.MustNewSMTPSender(cfg)
//	} else {
//		sender = email.NewDevSender("./mail-out")
//	}
//
//	id, err := sender.Send(ctx, email.Message{
//		FromName: "Jane Doe via Excel Glass Contact Form",
//		ReplyTo:  "jane@example.com",
//		Subject:  "New Contact Form Message: Quote",
//		BodyHTML: html,
//	})
//
// # Error Handling
//
// Sentinel errors cover the failure classes: ErrInvalidConfig,
// ErrInvalidParams, ErrConnectionFailed (dial/auth/verify) and
// ErrFailedToSendEmail. Provider status detail rides along as a joined
// ProviderError; use ProviderDetail to extract it for structured error
// responses without leaking it into user-facing copy.
package email
