package token

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ErrNotNumber is returned when a literal value is requested from a non-number lexeme.
var ErrNotNumber = errors.New("not a numeric literal")

// StripDigitSeparators drops '_' group separators: "1_000" -> "1000".
func StripDigitSeparators(text string) string {
	if !strings.Contains(text, "_") {
		return text
	}
	return strings.ReplaceAll(text, "_", "")
}

// IntValue extracts the value of an integer literal lexeme (any base).
// Literals wider than 64 bits are supported since i128/u128 exist.
func IntValue(text string) (*big.Int, error) {
	clean := StripDigitSeparators(text)
	base := 10
	if len(clean) > 2 && clean[0] == '0' {
		switch clean[1] {
		case 'x', 'X':
			base, clean = 16, clean[2:]
		case 'o', 'O':
			base, clean = 8, clean[2:]
		case 'b', 'B':
			base, clean = 2, clean[2:]
		}
	}
	v, ok := new(big.Int).SetString(clean, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotNumber, text)
	}
	return v, nil
}

// FloatValue extracts the value of a float literal lexeme.
func FloatValue(text string) (float64, error) {
	v, err := strconv.ParseFloat(StripDigitSeparators(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, text)
	}
	return v, nil
}
