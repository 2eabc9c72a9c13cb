package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SubmitInput is a candidate contact form payload.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateSubmission checks a contact form payload and returns the list of
// violations in a fixed order: name, email, subject, message. An empty result
// means the payload is valid. Pure function, no side effects.
func ValidateSubmission(in SubmitInput) []string {
	var violations []string

	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < 2 {
		violations = append(violations, "Name must be at least 2 characters")
	}

	if in.Email == "" {
		violations = append(violations, "Valid email is required")
	} else if !emailPattern.MatchString(in.Email) {
		violations = append(violations, "Invalid email format")
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Subject)) < 2 {
		violations = append(violations, "Subject must be at least 2 characters")
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Message)) < 10 {
		violations = append(violations, "Message must be at least 10 characters")
	}

	return violations
}

// ValidationError reports the first violation of a rejected submission.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
