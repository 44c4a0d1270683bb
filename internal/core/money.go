// Package core holds the shop's domain types and money handling.
//
// This file contains functions for parsing monetary amounts from strings
// and rendering cents as fixed two-decimal currency.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmountToCents converts a decimal string to cents with half-up
// rounding on the third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Zero is a valid amount; negative values and malformed input return
// ErrInvalidAmount. Classification carries the sign in this system, so
// a sign character is never part of a well-formed amount.
//
// Examples:
//
//	ParseAmountToCents("12.34")  -> 1234, nil
//	ParseAmountToCents("12,34")  -> 1234, nil
//	ParseAmountToCents("12.345") -> 1234, nil (rounds down)
//	ParseAmountToCents("12.346") -> 1235, nil (rounds up)
func ParseAmountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
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
	// A separator alone carries no digits
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
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
	// Rounding can contribute up to 100 cents on top of iv*100, so
	// leave headroom for both before multiplying
	const maxWholeUnits = (math.MaxInt64 - 100) / 100
	if iv > maxWholeUnits {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64 = 0
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracCents++
				}
			}
		}
	}
	return iv*100 + fracCents, nil
}

// FormatCents renders cents as a plain decimal string with exactly two
// fractional digits, e.g. 15000 -> "150.00".
func FormatCents(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// FormatBRL renders cents in the shop's currency, e.g. "R$ 150.00".
func FormatBRL(cents int64) string {
	return "R$ " + FormatCents(cents)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
