package user

import (
	"fmt"
	"net/mail"
	"strings"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateUsername enforces the registration rules: at least five characters,
// alphanumeric only.
func ValidateUsername(username string) *FieldError {
	if len(username) < 5 {
		return &FieldError{Field: "username", Message: "must be at least 5 characters"}
	}
	for _, r := range username {
		if !isAlphanumeric(r) {
			return &FieldError{Field: "username", Message: "must contain only letters and digits"}
		}
	}
	return nil
}

// ValidatePassword rejects empty and short passwords.
func ValidatePassword(password string) *FieldError {
	if len(password) < 8 {
		return &FieldError{Field: "password", Message: "must be at least 8 characters"}
	}
	return nil
}

// ValidateEmail checks that the value parses as a mail address.
func ValidateEmail(email string) *FieldError {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &FieldError{Field: "email", Message: "does not appear to be valid"}
	}
	return nil
}

// ValidateRegistration checks the full registration payload and returns a
// ValidationError listing every failing field, or nil.
func ValidateRegistration(username, password, email string) error {
	var ve ValidationError
	if fe := ValidateUsername(username); fe != nil {
		ve.Fields = append(ve.Fields, *fe)
	}
	if fe := ValidatePassword(password); fe != nil {
		ve.Fields = append(ve.Fields, *fe)
	}
	if fe := ValidateEmail(email); fe != nil {
		ve.Fields = append(ve.Fields, *fe)
	}
	return ve.orNil()
}

func isAlphanumeric(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return false
}
