// Package inputval validates and normalizes values typed into public forms.
package inputval

import (
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/waffle/pantry/validate"
)

// Field length limits for the contact form, in characters.
const (
	MaxNameLen    = 120
	MaxEmailLen   = 254
	MaxMessageLen = 4000
)

// IsValidEmail reports whether s is a bare address such as
// "user@example.com". It builds on validate.SimpleEmailValid, so the domain
// needs a dot, and also rejects surrounding or embedded whitespace,
// display-name forms, a second '@' and misplaced dots.
func IsValidEmail(s string) bool {
	if len(s) > MaxEmailLen || strings.ContainsAny(s, " \t\r\n<>") || strings.Count(s, "@") != 1 {
		return false
	}
	if !validate.SimpleEmailValid(s) {
		return false
	}
	at := strings.IndexByte(s, '@')
	return validDotted(s[:at]) && validDotted(s[at+1:])
}

func validDotted(part string) bool {
	return part != "" &&
		!strings.HasPrefix(part, ".") &&
		!strings.HasSuffix(part, ".") &&
		!strings.Contains(part, "..")
}

// Clean trims s and collapses internal runs of whitespace to one space.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanMultiline trims s and normalizes line endings, keeping line breaks.
func CleanMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

// LenBetween reports whether s has between min and max characters.
func LenBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
