// Package core holds the transaction domain model and the pure functions
// over it: amount parsing, input validation and aggregate statistics.
//
// This file contains functions for parsing monetary amounts from strings
// and formatting cents for display and export.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseSignedDecimalToCents converts a signed decimal string to cents with
// proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. A leading '-' marks
// an expense; a leading '+' is tolerated for income. Zero is rejected, since
// a transaction amount must encode a direction.
//
// Examples:
//
//	ParseSignedDecimalToCents("12.34")  -> 1234, nil
//	ParseSignedDecimalToCents("-12,34") -> -1234, nil
//	ParseSignedDecimalToCents("0")      -> 0, ErrZeroAmount
func ParseSignedDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	// Split into integer and fractional part
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
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if cents == 0 {
		return 0, ErrZeroAmount
	}
	if negative {
		cents = -cents
	}
	return cents, nil
}

// FormatDecimal renders cents as a plain decimal string, e.g. -1234 -> "-12.34".
func FormatDecimal(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + padCents(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func padCents(rem int64) string {
	if rem < 10 {
		return "0" + strconv.FormatInt(rem, 10)
	}
	return strconv.FormatInt(rem, 10)
}
