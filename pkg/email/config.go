package email

// Config holds SMTP dispatch configuration.
// Username, Password and Recipient are optional at load time to support
// development environments where real sending is disabled; callers should
// check Configured before constructing the SMTP sender and fall back to the
// DevSender otherwise. The defaults target Gmail submission over implicit
// TLS with an app-specific password.
type Config struct {
	Host      string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port      int    `env:"SMTP_PORT" envDefault:"465"`
	Username  string `env:"GMAIL_USER"`
	Password  string `env:"GMAIL_APP_PASSWORD"`
	Recipient string `env:"CONTACT_EMAIL_RECIPIENT"`
}

// Configured reports whether every value needed for real SMTP dispatch is present.
func (c Config) Configured() bool {
	return c.Host != "" && c.Port > 0 && c.Username != "" && c.Password != "" && c.Recipient != ""
}
