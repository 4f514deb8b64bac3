// Package sanitize turns free-text organization labels into valid
// Beancount account-name segments.
package sanitize

import (
	"strings"
	"unicode"
)

// maxSegmentRunes caps segment length for readability. Truncation happens
// on rune boundaries, never mid-character.
const maxSegmentRunes = 50

// fallbackSegment is used when nothing survives sanitization.
const fallbackSegment = "Unknown"

// Segment converts raw into an account-name segment: alphanumerics of any
// script plus hyphens, starting alphanumeric, at most 50 characters.
// The function is idempotent: Segment(Segment(x)) == Segment(x).
func Segment(raw string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			// Whitespace, punctuation and symbols all collapse into a
			// single hyphen, matching what the downstream ledger accepts.
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		return fallbackSegment
	}

	// Beancount requires segments to start with a letter or digit.
	if r := firstRune(s); !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		s = "C" + s
	}

	if runes := []rune(s); len(runes) > maxSegmentRunes {
		s = strings.TrimRight(string(runes[:maxSegmentRunes]), "-")
	}
	return s
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
