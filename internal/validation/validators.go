// Package validation provides small composable payload validators.
// They catch obviously malformed requests before a network round trip;
// the backend remains the authority on business rules.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator checks a string value and returns an error message, or ""
// when the value is valid.
type Validator func(v string) string

// reEmail is a pragmatic shape check, not an RFC parser.
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Required validates that a field is not empty and does not exceed
// maxLen characters. Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// RequiredRange validates that a field is not empty and is between
// minLen and maxLen characters.
func RequiredRange(fieldName string, minLen, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		n := utf8.RuneCountInString(v)
		if n < minLen || n > maxLen {
			return fmt.Sprintf("%s must be between %d and %d characters.", fieldName, minLen, maxLen)
		}
		return ""
	}
}

// Email validates a required email-shaped field.
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if !reEmail.MatchString(v) {
			return fieldName + " must be a valid email address."
		}
		return ""
	}
}

// Optional wraps a validator so that an empty value passes.
func Optional(inner Validator) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		return inner(v)
	}
}

// First runs validators in order and returns the first failure.
func First(v string, validators ...Validator) string {
	for _, validate := range validators {
		if msg := validate(v); msg != "" {
			return msg
		}
	}
	return ""
}
