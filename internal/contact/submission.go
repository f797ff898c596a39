package contact

import (
	"github.com/excelglass/contactrelay/pkg/validator"
)

// Field identifies one contact-form field.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Submission is one contact-form entry. It exists only for the duration of a
// single user interaction and is never persisted; the JSON tags define the
// relay wire format.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"` // optional
	Message string `json:"message"`
}

// User-facing copy for validation and submission outcomes. One toast per
// submit attempt carries exactly one of these.
const (
	msgNameRequired    = "Please enter your name"
	msgEmailInvalid    = "Please enter a valid email address"
	msgPhoneRequired   = "Please enter your phone number"
	msgMessageRequired = "Please enter your message"

	msgUnavailable = "The contact form is temporarily unavailable. Please try again later."
	msgSendFailed  = "Failed to send your message. Please try again."
	msgSendSuccess = "Message sent successfully! We'll get back to you soon."
)

// Set assigns one field of the submission. Unknown fields are ignored.
func (s *Submission) Set(field Field, value string) {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldPhone:
		s.Phone = value
	case FieldSubject:
		s.Subject = value
	case FieldMessage:
		s.Message = value
	}
}

// Validate checks the submission field by field and reports only the first
// failure, in the order name, email, phone, message. Subject is optional.
// The email rule covers both absence and shape: an empty address cannot
// match the pattern.
func (s Submission) Validate() error {
	return validator.First(
		validator.RequiredStringMsg(string(FieldName), s.Name, msgNameRequired),
		validator.ValidEmailMsg(string(FieldEmail), s.Email, msgEmailInvalid),
		validator.RequiredStringMsg(string(FieldPhone), s.Phone, msgPhoneRequired),
		validator.RequiredStringMsg(string(FieldMessage), s.Message, msgMessageRequired),
	)
}

// firstValidationMessage returns the user-facing message of the first
// validation failure, falling back to the raw error text.
func firstValidationMessage(err error) string {
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		return verrs[0].Message
	}
	return err.Error()
}
