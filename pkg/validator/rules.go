package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// emailRegex matches the minimal local@domain.tld shape used by web forms.
// Intentionally looser than RFC 5322: the goal is catching typos, not
// enforcing the full grammar.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

// RequiredStringMsg is RequiredString with a caller-supplied user-facing message.
func RequiredStringMsg(field, value, message string) Rule {
	r := RequiredString(field, value)
	r.Error.Message = message
	return r
}

// ValidEmail validates that a string has a local@domain.tld shape.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// ValidEmailMsg is ValidEmail with a caller-supplied user-facing message.
func ValidEmailMsg(field, value, message string) Rule {
	r := ValidEmail(field, value)
	r.Error.Message = message
	return r
}

// MaxLenString validates that a string is at most max bytes long.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
		},
	}
}

// MinLenString validates that a string is at least min bytes long.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}
