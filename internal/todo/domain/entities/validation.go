package entities

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Field limits, counted in user-perceived characters (grapheme clusters).
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxNameLength        = 50
)

// ValidateTaskFields trims the title and checks both fields against their limits.
func ValidateTaskFields(title, description string) (string, string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", "", ErrTitleRequired
	}
	if n := uniseg.GraphemeClusterCount(trimmed); n > MaxTitleLength {
		return "", "", &LengthError{Err: ErrTitleTooLong, Count: n, Max: MaxTitleLength}
	}
	if n := uniseg.GraphemeClusterCount(description); n > MaxDescriptionLength {
		return "", "", &LengthError{Err: ErrDescriptionTooLong, Count: n, Max: MaxDescriptionLength}
	}

	return trimmed, description, nil
}

// ValidateUserFields trims the name and checks it and the email.
// An email must contain both "@" and ".".
func ValidateUserFields(name, email string) (string, string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", "", ErrNameRequired
	}
	if n := uniseg.GraphemeClusterCount(trimmed); n > MaxNameLength {
		return "", "", &LengthError{Err: ErrNameTooLong, Count: n, Max: MaxNameLength}
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "", "", ErrInvalidEmailFormat
	}

	return trimmed, email, nil
}
