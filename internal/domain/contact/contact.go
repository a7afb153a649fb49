// Package contact defines the contact form submission and its validation.
package contact

import (
	"regexp"
	"strings"
)

// emailShape is the minimal local@domain.tld check the form has always used.
// Deliverability is the provider's problem; this only rejects obvious typos.
var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// Submission is one contact form payload. It has no identity and lives only
// for the duration of a request.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks the submission, failing fast on the first violation.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.Email) == "" ||
		strings.TrimSpace(s.Message) == "" {
		return ErrMissingFields
	}
	if !emailShape.MatchString(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}
