package models

import "strings"

// ContactSubmission is a visitor's message from the contact form.
// It lives for a single request and is never stored.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// MissingFields returns the JSON names of blank fields, in form order
func (s ContactSubmission) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(s.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(s.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(s.Message) == "" {
		missing = append(missing, "message")
	}
	return missing
}

// IsComplete reports whether every field has a value
func (s ContactSubmission) IsComplete() bool {
	return len(s.MissingFields()) == 0
}
