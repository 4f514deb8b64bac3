package sanitize

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Acme Corp", "Acme-Corp"},
		{"tax prefix", "(412764389-TAX) Acme Corp", "412764389-TAX-Acme-Corp"},
		{"georgian", "შპს ალფა და ომეგა", "შპს-ალფა-და-ომეგა"},
		{"punctuation stripped", `"Acme", Ltd.`, "Acme-Ltd"},
		{"whitespace runs", "Acme \t  Corp", "Acme-Corp"},
		{"underscores", "acme_corp_llc", "acme-corp-llc"},
		{"trailing separators", "Acme Corp!!! ", "Acme-Corp"},
		{"empty", "", "Unknown"},
		{"only symbols", "***", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.raw))
		})
	}
}

func TestSegmentIdempotent(t *testing.T) {
	inputs := []string{
		"Acme Corp",
		"(412764389) შპს თბილისი",
		"  weird -- name __ here (2021) ",
		strings.Repeat("ორგანიზაცია ", 20),
		"",
	}
	for _, in := range inputs {
		once := Segment(in)
		assert.Equal(t, once, Segment(once), "input %q", in)
	}
}

func TestSegmentProperties(t *testing.T) {
	inputs := []string{
		"Acme Corp",
		strings.Repeat("x", 200),
		strings.Repeat("ჰ", 200),
		"---leading hyphens",
		"(99) short prefix",
	}
	for _, in := range inputs {
		got := Segment(in)
		runes := []rune(got)
		assert.LessOrEqual(t, len(runes), 50, "input %q", in)
		assert.True(t, unicode.IsLetter(runes[0]) || unicode.IsDigit(runes[0]), "input %q -> %q", in, got)
		for _, r := range got {
			ok := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
			assert.True(t, ok, "disallowed rune %q in %q", r, got)
		}
		assert.NotContains(t, got, "--")
	}
}

// Truncation of multi-byte text must cut whole runes, not bytes.
func TestSegmentTruncatesOnRuneBoundary(t *testing.T) {
	got := Segment(strings.Repeat("ჰ", 60))
	assert.Equal(t, strings.Repeat("ჰ", 50), got)
}
