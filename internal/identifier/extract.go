package identifier

import (
	"regexp"
	"strings"
	"unicode"
)

// Extraction patterns, tried strictly in order. The contiguous form is
// preferred over the spaced forms so repeated extraction stays deterministic.
var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{12}\b`),
	regexp.MustCompile(`\b\d{4}\s+\d{4}\s+\d{4}\b`),
	regexp.MustCompile(`\b(?:\d{4}\s*){3}\b`),
}

// Extract scans raw OCR text for a valid identifier. It returns the first
// candidate with exactly 12 digits, or ok=false when none is present.
// Absence of an identifier is an expected outcome, not an error.
func Extract(raw string) (Identifier, bool) {
	cleaned := cleanText(raw)
	for _, pattern := range extractPatterns {
		for _, match := range pattern.FindAllString(cleaned, -1) {
			digits := Digits(match)
			if len(digits) == DigitCount {
				return Identifier{digits: digits}, true
			}
		}
	}
	return Identifier{}, false
}

// cleanText replaces every character that is neither a digit nor whitespace
// with a space, so stray OCR punctuation cannot break up matching digit runs.
func cleanText(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
