package contact

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/excelglass/contactrelay/pkg/email"
)

const (
	fromNameSuffix = " via Excel Glass Contact Form"
	subjectPrefix  = "New Contact Form Message: "
)

// bodyTemplate renders the operator-facing email body. Submission fields
// are user input, so they go through html/template escaping.
var bodyTemplate = template.Must(template.New("contact_email").Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
<hr>
<p><em>This message was sent via the Excel Glass website contact form.</em></p>
`))

// ComposeMail turns a validated submission into the outbound email. The
// From display name carries the submitter's name so the operator sees who
// wrote without opening the body, and Reply-To carries their address so a
// plain reply reaches them.
func ComposeMail(sub Submission) (email.Message, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, sub); err != nil {
		return email.Message{}, fmt.Errorf("failed to render mail body: %w", err)
	}

	return email.Message{
		FromName: sub.Name + fromNameSuffix,
		ReplyTo:  sub.Email,
		Subject:  subjectPrefix + sub.Subject,
		BodyHTML: buf.String(),
	}, nil
}
