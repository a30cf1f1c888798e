package content

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxNameLength    = 200
	maxEmailLength   = 320
	maxMessageLength = 5000
)

// Deliberately loose: anything shaped like local@domain.tld passes. Real
// validation happens when the notification mail bounces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactSubmission carries the raw contact-form fields before validation.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

// ValidationError aggregates every failed check into one human-readable
// message string.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validate checks every field and returns a *ValidationError combining all
// failures, or nil when the submission is acceptable.
func (s ContactSubmission) Validate() error {
	var problems []string

	name := strings.TrimSpace(s.Name)
	if name == "" {
		problems = append(problems, "Name can't be blank")
	} else if len(name) > maxNameLength {
		problems = append(problems, fmt.Sprintf("Name is too long (maximum is %d characters)", maxNameLength))
	}

	email := strings.TrimSpace(s.Email)
	switch {
	case email == "":
		problems = append(problems, "Email can't be blank")
	case len(email) > maxEmailLength:
		problems = append(problems, fmt.Sprintf("Email is too long (maximum is %d characters)", maxEmailLength))
	case !emailPattern.MatchString(email):
		problems = append(problems, "Email is invalid")
	}

	message := strings.TrimSpace(s.Message)
	if message == "" {
		problems = append(problems, "Message can't be blank")
	} else if len(message) > maxMessageLength {
		problems = append(problems, fmt.Sprintf("Message is too long (maximum is %d characters)", maxMessageLength))
	}

	if len(problems) > 0 {
		return &ValidationError{msg: strings.Join(problems, ", ")}
	}

	return nil
}

// Normalize returns a Contact with whitespace-trimmed fields.
func (s ContactSubmission) Normalize() Contact {
	return Contact{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}
