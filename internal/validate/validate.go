// Package validate applies field-level rules to incoming contact and program
// data before anything is constructed or persisted. All functions are pure:
// they trim whitespace, check lengths and email syntax, and return either the
// trimmed values or a FieldError naming the offending field. Case is never
// changed here; normalization is a cleaning-pipeline concern.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
)

// Failure reasons carried on FieldError.
const (
	ReasonTooShort  = "too_short"
	ReasonMalformed = "malformed"
)

// Minimum lengths after trimming. Descriptions only need 10 characters at
// creation time; the cleaning pipeline applies its own stricter threshold.
const (
	MinContactNameLen = 2
	MinMessageLen     = 10
	MinProgramNameLen = 3
	MinDescriptionLen = 10
)

// FieldError reports which field failed validation and why.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed: field %q %s", e.Field, e.Reason)
}

// ContactInput holds trimmed, validated contact fields.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// ProgramInput holds trimmed, validated program fields.
type ProgramInput struct {
	Name        string
	Description string
}

// Contact validates a contact submission and returns the trimmed values.
func Contact(name, email, message string) (ContactInput, *FieldError) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < MinContactNameLen {
		return ContactInput{}, &FieldError{Field: "name", Reason: ReasonTooShort}
	}

	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return ContactInput{}, &FieldError{Field: "email", Reason: ReasonMalformed}
	}

	message = strings.TrimSpace(message)
	if len([]rune(message)) < MinMessageLen {
		return ContactInput{}, &FieldError{Field: "message", Reason: ReasonTooShort}
	}

	return ContactInput{Name: name, Email: email, Message: message}, nil
}

// Program validates a program submission and returns the trimmed values.
func Program(name, description string) (ProgramInput, *FieldError) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < MinProgramNameLen {
		return ProgramInput{}, &FieldError{Field: "name", Reason: ReasonTooShort}
	}

	description = strings.TrimSpace(description)
	if len([]rune(description)) < MinDescriptionLen {
		return ProgramInput{}, &FieldError{Field: "description", Reason: ReasonTooShort}
	}

	return ProgramInput{Name: name, Description: description}, nil
}

// ValidEmail reports whether addr is a syntactically plausible address:
// it must parse as a bare RFC 5322 address and its domain must contain a dot.
func ValidEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return false
	}
	at := strings.LastIndex(addr, "@")
	if at < 1 {
		return false
	}
	return strings.Contains(addr[at+1:], ".")
}
