package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
)

// dialTimeout bounds the TCP connect so an unreachable host fails the
// readiness probe quickly instead of waiting out the kernel timeout.
const dialTimeout = 10 * time.Second

type smtpSender struct {
	cfg Config
}

// NewSMTPSender creates an SMTP-backed sender. All configuration values are
// required for runtime operation; this enforces explicit configuration
// rather than silent failures in production.
func NewSMTPSender(cfg Config) (Sender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be a valid TCP port", ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.Username) {
		return nil, fmt.Errorf("%w: Username must be a valid email address", ErrInvalidConfig)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", ErrInvalidConfig)
	}
	if cfg.Recipient == "" {
		return nil, fmt.Errorf("%w: Recipient is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.Recipient) {
		return nil, fmt.Errorf("%w: Recipient must be a valid email address", ErrInvalidConfig)
	}

	return &smtpSender{cfg: cfg}, nil
}

// MustNewSMTPSender creates an SMTP sender that panics on invalid config,
// failing fast during initialization rather than allowing a broken relay to
// start.
func MustNewSMTPSender(cfg Config) Sender {
	sender, err := NewSMTPSender(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

// Send authenticates, verifies the connection with a NOOP, and submits the
// message. It returns the generated Message-ID as the provider identifier.
func (s *smtpSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	type result struct {
		id  string
		err error
	}
	ch := make(chan result, 1)

	// The go-smtp client has no context support; the blocking session runs
	// in its own goroutine so the caller's deadline is still honored.
	go func() {
		id, err := s.send(msg)
		ch <- result{id: id, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", errors.Join(ErrFailedToSendEmail, ctx.Err())
	case r := <-ch:
		return r.id, r.err
	}
}

// Verify dials and authenticates without sending anything.
func (s *smtpSender) Verify(ctx context.Context) error {
	ch := make(chan error, 1)
	go func() {
		client, err := s.connect()
		if err != nil {
			ch <- err
			return
		}
		defer client.Close()
		if err := client.Noop(); err != nil {
			ch <- errors.Join(ErrConnectionFailed, asProviderError(err))
			return
		}
		ch <- client.Quit()
	}()

	select {
	case <-ctx.Done():
		return errors.Join(ErrConnectionFailed, ctx.Err())
	case err := <-ch:
		return err
	}
}

func (s *smtpSender) send(msg Message) (string, error) {
	client, err := s.connect()
	if err != nil {
		return "", err
	}
	defer client.Close()

	// Same verification step the relay promises: fail fast on a dead
	// session before composing the wire message.
	if err := client.Noop(); err != nil {
		return "", errors.Join(ErrConnectionFailed, asProviderError(err))
	}

	id := fmt.Sprintf("%s@%s", uuid.NewString(), domainOf(s.cfg.Username))
	wire := buildWireMessage(s.cfg, msg, id)

	if err := client.SendMail(s.cfg.Username, []string{s.cfg.Recipient}, strings.NewReader(wire)); err != nil {
		return "", errors.Join(ErrFailedToSendEmail, asProviderError(err))
	}

	// The message is already accepted upstream; a QUIT failure is not fatal.
	_ = client.Quit()

	return id, nil
}

func (s *smtpSender) connect() (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsConfig := &tls.Config{ServerName: s.cfg.Host}
	dialer := &net.Dialer{Timeout: dialTimeout}

	var client *smtp.Client
	switch s.cfg.Port {
	case 465:
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
		if err != nil {
			return nil, errors.Join(ErrConnectionFailed, fmt.Errorf("dial %s: %w", addr, err))
		}
		client = smtp.NewClient(conn)
	case 587:
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return nil, errors.Join(ErrConnectionFailed, fmt.Errorf("dial %s: %w", addr, err))
		}
		client, err = smtp.NewClientStartTLS(conn, tlsConfig)
		if err != nil {
			conn.Close()
			return nil, errors.Join(ErrConnectionFailed, asProviderError(err))
		}
	default:
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return nil, errors.Join(ErrConnectionFailed, fmt.Errorf("dial %s: %w", addr, err))
		}
		client = smtp.NewClient(conn)
	}

	auth := sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)
	if err := client.Auth(auth); err != nil {
		client.Close()
		return nil, errors.Join(ErrConnectionFailed, asProviderError(err))
	}

	return client, nil
}

// buildWireMessage renders the RFC 5322 message. The authenticated mailbox is
// always the envelope and header sender; the submitter only appears in the
// display name and Reply-To.
func buildWireMessage(cfg Config, msg Message, id string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", msg.FromName), cfg.Username)
	fmt.Fprintf(&b, "To: %s\r\n", cfg.Recipient)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Message-ID: <%s>\r\n", id)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.BodyHTML)
	b.WriteString("\r\n")
	return b.String()
}

// asProviderError converts SMTP status failures into a ProviderError so the
// relay can surface diagnostic detail. Non-SMTP errors pass through.
func asProviderError(err error) error {
	var smtpErr *smtp.SMTPError
	if errors.As(err, &smtpErr) {
		enhanced := ""
		if smtpErr.EnhancedCode[0] != 0 {
			enhanced = fmt.Sprintf("%d.%d.%d",
				smtpErr.EnhancedCode[0], smtpErr.EnhancedCode[1], smtpErr.EnhancedCode[2])
		}
		return &ProviderError{
			Code:         smtpErr.Code,
			EnhancedCode: enhanced,
			Detail:       smtpErr.Message,
		}
	}
	return err
}

func domainOf(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 {
		return address[i+1:]
	}
	return address
}
