// Package validate provides input validation and sanitization for the
// OlyBars API: member handles, contact details, and avatar URLs.
package validate

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String validation errors
var (
	ErrStringTooShort    = errors.New("string is too short")
	ErrStringTooLong     = errors.New("string is too long")
	ErrInvalidCharacters = errors.New("string contains invalid characters")
	ErrEmpty             = errors.New("string is empty")
)

// StringConstraints defines validation constraints for a string.
type StringConstraints struct {
	MinLength      int            // Minimum length (0 = no minimum)
	MaxLength      int            // Maximum length (0 = no maximum)
	AllowedPattern *regexp.Regexp // Optional regex pattern for allowed characters
	AllowEmpty     bool           // Whether empty strings are allowed
	TrimSpace      bool           // Whether to trim whitespace before validation
}

// String validates a string against the given constraints.
// Returns the validated (and optionally trimmed) string and an error if
// validation fails. Lengths are counted in runes, not bytes.
func (c StringConstraints) apply(s string) (string, error) {
	if c.TrimSpace {
		s = strings.TrimSpace(s)
	}

	if s == "" {
		if !c.AllowEmpty {
			return "", ErrEmpty
		}
		return s, nil
	}

	length := utf8.RuneCountInString(s)
	if c.MinLength > 0 && length < c.MinLength {
		return "", fmt.Errorf("%w: got %d chars, need at least %d", ErrStringTooShort, length, c.MinLength)
	}
	if c.MaxLength > 0 && length > c.MaxLength {
		return "", fmt.Errorf("%w: got %d chars, maximum is %d", ErrStringTooLong, length, c.MaxLength)
	}

	if c.AllowedPattern != nil && !c.AllowedPattern.MatchString(s) {
		return "", fmt.Errorf("%w: does not match required pattern", ErrInvalidCharacters)
	}

	return s, nil
}

// String validates a string against the given constraints.
func String(s string, constraints StringConstraints) (string, error) {
	return constraints.apply(s)
}

// SanitizeHTML escapes HTML special characters. Called on all user-supplied
// text that clients may render.
func SanitizeHTML(s string) string {
	return html.EscapeString(s)
}

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9 _\-\.]+$`)

// Handle validates a member handle: 1-30 characters, letters, numbers,
// spaces, dash, underscore, period. The result is HTML-escaped.
func Handle(handle string) (string, error) {
	validated, err := String(handle, StringConstraints{
		MinLength:      1,
		MaxLength:      30,
		AllowedPattern: handlePattern,
		TrimSpace:      true,
	})
	if err != nil {
		return "", err
	}
	return SanitizeHTML(validated), nil
}

// Status validates a free-form status line: up to 140 characters, any
// printable text. The result is HTML-escaped.
func Status(status string) (string, error) {
	validated, err := String(status, StringConstraints{
		MaxLength:  140,
		AllowEmpty: true,
		TrimSpace:  true,
	})
	if err != nil {
		return "", err
	}
	return SanitizeHTML(validated), nil
}
