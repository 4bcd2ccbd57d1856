// Package identifier extracts, validates and masks the 12-digit national
// identifier handled by the redaction pipeline.
package identifier

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// DigitCount is the exact number of digits a valid identifier carries.
const DigitCount = 12

// GroupSize is the width of the identifier's display groups ("dddd dddd dddd").
const GroupSize = 4

// ErrInvalidFormat indicates that a caller passed a string whose digit count
// is not exactly DigitCount.
var ErrInvalidFormat = errors.New("invalid identifier format")

// Identifier is a validated 12-digit national identifier. The zero value is
// not valid; construct one via New or Extract.
type Identifier struct {
	digits string
}

// New validates the given string and returns an Identifier. Spaces are
// ignored; any other non-digit character makes the input invalid.
func New(s string) (Identifier, error) {
	digits := Digits(s)
	if len(digits) != DigitCount || len(strings.ReplaceAll(s, " ", "")) != DigitCount {
		return Identifier{}, fmt.Errorf("%w: want %d digits", ErrInvalidFormat, DigitCount)
	}
	return Identifier{digits: digits}, nil
}

// Digits strips all non-digit characters from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsZero reports whether id is the zero (unset) Identifier.
func (id Identifier) IsZero() bool { return id.digits == "" }

// Digits returns the raw 12-digit string.
func (id Identifier) Digits() string { return id.digits }

// String renders the canonical spaced form "dddd dddd dddd".
func (id Identifier) String() string {
	if id.IsZero() {
		return ""
	}
	return id.digits[:4] + " " + id.digits[4:8] + " " + id.digits[8:12]
}

// Groups returns the three 4-digit display groups in order.
func (id Identifier) Groups() [3]string {
	return [3]string{id.digits[:4], id.digits[4:8], id.digits[8:12]}
}
