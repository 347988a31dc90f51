package domain

import (
	"strings"
	"unicode"
)

// Normalize maps raw chat text to its canonical comparison key: runes in
// the Unicode C categories (control, format, surrogate, private use) are
// stripped, the rest is lower-cased and trimmed. Canonical equality is
// the only equality the board knows about.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		if unicode.In(r, unicode.C) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(strings.ToLower(b.String()))
}
