// Package core provides the domain model of the tracker: transactions,
// recurring transactions, balances, category vocabularies, and the decimal
// parsing/rounding helpers shared by the store and the engine.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimal converts a non-negative decimal string to a float64 amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs are
// rejected: amounts are magnitudes and balances are stored unsigned, with
// direction carried elsewhere. Returns ErrInvalidAmount for anything else.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return 0, ErrInvalidAmount
			}
		}
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// Round2 rounds to two decimal places using half-up rounding. Aggregates
// accumulate at full float64 precision and round once at output time, so
// rounding error does not compound across a multi-month fold.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// FormatAmount renders an amount as a plain decimal string with two digits,
// the representation used for balance values at the persistence boundary.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}
