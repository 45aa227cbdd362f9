// Package money provides parsing and formatting of monetary amounts.
//
// Amounts are handled as int64 cents everywhere in the application; decimal
// strings only appear at the API boundary.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAmount is returned for amounts that cannot be parsed.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// ParseDecimal converts a non-negative decimal string to cents with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted.
//
// Examples:
//
//	ParseDecimal("12.34")  -> 1234
//	ParseDecimal("12,345") -> 1235 (rounds up)
func ParseDecimal(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	return iv*100 + fracCents, nil
}

// ParseSignedDecimal parses a decimal string with an optional leading sign.
// Ledger amounts are signed: positive income, negative expense.
func ParseSignedDecimal(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	cents, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	if neg {
		return -cents, nil
	}
	return cents, nil
}

// Format renders cents as a plain decimal string, e.g. -1234 -> "-12.34".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
