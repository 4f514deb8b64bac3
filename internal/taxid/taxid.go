// Package taxid extracts the tax-identifier fragment that sales exports
// embed in the organization column, e.g. "(412764389-TAX) Acme Corp".
package taxid

import "strings"

// minDigits guards against treating short parenthesized numbers
// (branch codes, years) as tax identifiers.
const minDigits = 6

// Extract splits a raw organization label into its tax-ID fragment and the
// display name. The ID is the leading digit run of a parenthesized prefix;
// when no such prefix exists the ID is empty and the display name is the
// trimmed input.
func Extract(raw string) (id, display string) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "(") {
		return "", s
	}

	end := strings.IndexByte(s, ')')
	if end < 0 {
		return "", s
	}

	inner := s[1:end]
	digits := leadingDigits(inner)
	if len(digits) < minDigits {
		return "", s
	}

	display = strings.TrimSpace(s[end+1:])
	if display == "" {
		display = digits
	}
	return digits, display
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
