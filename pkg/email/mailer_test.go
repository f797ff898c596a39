package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/excelglass/contactrelay/pkg/email"
)

func validMessage() email.Message {
	return email.Message{
		FromName: "Jane Doe via Excel Glass Contact Form",
		ReplyTo:  "jane@example.com",
		Subject:  "New Contact Form Message: Quote",
		BodyHTML: "<p>Need a mirror</p>",
	}
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*email.Message)
		wantErr bool
	}{
		{"valid message", func(m *email.Message) {}, false},
		{"empty FromName", func(m *email.Message) { m.FromName = "" }, true},
		{"whitespace FromName", func(m *email.Message) { m.FromName = "   " }, true},
		{"empty ReplyTo", func(m *email.Message) { m.ReplyTo = "" }, true},
		{"invalid ReplyTo", func(m *email.Message) { m.ReplyTo = "not-an-email" }, true},
		{"ReplyTo without tld", func(m *email.Message) { m.ReplyTo = "jane@example" }, true},
		{"empty Subject", func(m *email.Message) { m.Subject = "" }, true},
		{"empty BodyHTML", func(m *email.Message) { m.BodyHTML = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := validMessage()
			tt.mutate(&msg)

			err := msg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Configured(t *testing.T) {
	t.Parallel()

	full := email.Config{
		Host:      "smtp.gmail.com",
		Port:      465,
		Username:  "operator@excelglass.ph",
		Password:  "app-password",
		Recipient: "sales@excelglass.ph",
	}
	assert.True(t, full.Configured())

	tests := []struct {
		name   string
		mutate func(*email.Config)
	}{
		{"missing host", func(c *email.Config) { c.Host = "" }},
		{"missing port", func(c *email.Config) { c.Port = 0 }},
		{"missing username", func(c *email.Config) { c.Username = "" }},
		{"missing password", func(c *email.Config) { c.Password = "" }},
		{"missing recipient", func(c *email.Config) { c.Recipient = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := full
			tt.mutate(&cfg)
			assert.False(t, cfg.Configured())
		})
	}
}
