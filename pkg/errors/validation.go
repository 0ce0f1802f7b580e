package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// maxIDLength bounds entity identifiers so labels and table cells stay readable.
const maxIDLength = 128

// ValidateEntityID validates an entity identifier read from a data source.
//
// The rules are conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 128 characters
func ValidateEntityID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidEntity, "entity id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidEntity, "entity id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEntity, "entity id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateKey validates the designated rotate key.
// It must be a single letter; matching is case-insensitive so the case
// used here does not matter.
func ValidateKey(key string) error {
	if utf8.RuneCountInString(key) != 1 {
		return New(ErrCodeInvalidKey, "rotate key must be a single letter, got %q", key)
	}
	r, _ := utf8.DecodeRuneInString(key)
	if !unicode.IsLetter(r) {
		return New(ErrCodeInvalidKey, "rotate key must be a letter, got %q", key)
	}
	return nil
}

// ValidateColor validates a palette entry and returns it in canonical
// lowercase "#rrggbb" form.
func ValidateColor(s string) (string, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", Wrap(ErrCodeInvalidColor, err, "invalid palette color %q", s)
	}
	return c.Hex(), nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
