package identifier

import (
	"fmt"
	"strings"
)

// DefaultMaskedDigits is the deployment-wide count of leading digits replaced
// by the mask character.
const DefaultMaskedDigits = 4

// MaskChar is the character substituted for masked digits.
const MaskChar = 'X'

// Mask returns the display form of id with the first k digits replaced by
// MaskChar and the canonical group spacing re-inserted.
func Mask(id Identifier, k int) string {
	if id.IsZero() {
		return ""
	}
	return maskDigits(id.digits, k)
}

// MaskString masks the first k digits of an identifier given in either its
// contiguous or spaced form. It returns ErrInvalidFormat when the input does
// not carry exactly 12 digits.
func MaskString(s string, k int) (string, error) {
	digits := strings.ReplaceAll(s, " ", "")
	if len(digits) != DigitCount || Digits(digits) != digits {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return maskDigits(digits, k), nil
}

func maskDigits(digits string, k int) string {
	if k < 0 {
		k = 0
	}
	if k > DigitCount {
		k = DigitCount
	}
	masked := strings.Repeat(string(MaskChar), k) + digits[k:]
	return masked[:4] + " " + masked[4:8] + " " + masked[8:12]
}
