// Package sanitize prepares caller-supplied text for analysis: HTML tags
// are stripped, surrounding whitespace trimmed, and the length cap
// enforced before any detector runs.
package sanitize

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxTextLength is the default character cap applied after stripping.
const MaxTextLength = 5000

var (
	// ErrEmptyText rejects input that is missing or empty after sanitization.
	ErrEmptyText = errors.New("text must be a non-empty string")
	// ErrTextTooLong rejects input over the configured length cap.
	ErrTextTooLong = errors.New("text exceeds the maximum length")
)

// Text strips markup, trims whitespace, and validates the result against
// maxLen characters. A maxLen of zero or less falls back to MaxTextLength.
func Text(raw string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = MaxTextLength
	}

	cleaned := strings.TrimSpace(StripHTML(raw))
	if cleaned == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(cleaned) > maxLen {
		return "", ErrTextTooLong
	}
	return cleaned, nil
}

// StripHTML returns the text content of raw with any markup removed.
// Plain text passes through unchanged.
func StripHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return doc.Text()
}
