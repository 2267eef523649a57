// Package core holds the sales domain: record types, date parsing, name
// normalization, classification, filtering and aggregation.
//
// This file contains functions for parsing monetary amounts from strings
// and formatting cents as Brazilian reais.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a positive decimal amount to cents.
// The separator may be a comma (12,34) or a dot (12.34); a third
// fractional digit rounds the cents half-up. Signed, zero and
// malformed inputs are rejected.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, ErrInvalidAmount
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, ErrInvalidAmount
	}
	reais, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || reais > (1<<63-1)/100 {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	switch {
	case len(frac) >= 2:
		fracCents = int64(frac[0]-'0')*10 + int64(frac[1]-'0')
		if len(frac) > 2 && frac[2] >= '5' {
			fracCents++
		}
	case len(frac) == 1:
		fracCents = int64(frac[0]-'0') * 10
	}

	cents := reais*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// FormatBRL renders integer cents as a Brazilian currency string,
// with a dot as thousands separator and a comma before the cents:
// 123456789 -> "R$ 1.234.567,89".
func FormatBRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), frac)
}
