package email

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig     = errors.New("mailer.errors.invalid_config")
	ErrInvalidParams     = errors.New("mailer.errors.invalid_params")
	ErrConnectionFailed  = errors.New("mailer.errors.connection_failed")
	ErrFailedToSendEmail = errors.New("mailer.errors.failed_to_send_email")
)

// ProviderError carries SMTP status detail for diagnostics. It is attached
// to the sentinel errors above via errors.Join so callers can surface the
// provider-specific detail without string matching.
type ProviderError struct {
	Code         int    // SMTP status code, e.g. 535
	EnhancedCode string // enhanced status code, e.g. "5.7.8", empty if absent
	Detail       string // provider message line
}

func (e *ProviderError) Error() string {
	if e.EnhancedCode != "" {
		return fmt.Sprintf("smtp %d %s: %s", e.Code, e.EnhancedCode, e.Detail)
	}
	return fmt.Sprintf("smtp %d: %s", e.Code, e.Detail)
}

// ProviderDetail extracts the provider-specific detail from an error chain,
// if any.
func ProviderDetail(err error) (string, bool) {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Error(), true
	}
	return "", false
}
