package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Slugify derives the record identifier from a candidate name: lowercase,
// drop whitespace, keep only [a-z0-9]. Returns "" when nothing survives,
// in which case the caller substitutes a random identifier.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// sanitizeUTF8 removes invalid UTF-8 sequences so recognized text can be
// stored without Postgres encoding errors.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
