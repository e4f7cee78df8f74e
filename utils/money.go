package utils

import (
	"fmt"
	"strings"
)

// Amounts are decimal strings with two fractional digits at rest ("980.00").
// They are converted to integer minor units only at the payment-provider
// boundary and back when the provider reports totals. String math keeps the
// conversion exact; floats never touch money.

// AmountToMinorUnits converts a decimal amount string to minor units (fen).
// "980.00" -> 98000. Up to two fractional digits are accepted.
func AmountToMinorUnits(amount string) (int64, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount must not be negative: %s", amount)
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
		// A point needs digits on both sides: "980." and ".50" are rejected.
		if intPart == "" || fracPart == "" {
			return 0, fmt.Errorf("invalid amount format: %s", amount)
		}
	}
	if intPart == "" || len(fracPart) > 2 {
		return 0, fmt.Errorf("invalid amount format: %s", amount)
	}
	// Pad fraction to exactly two digits
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	var total int64
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid amount format: %s", amount)
		}
		if total > (1<<62)/10 {
			return 0, fmt.Errorf("amount out of range: %s", amount)
		}
		total = total*10 + int64(r-'0')
	}
	return total, nil
}

// MinorUnitsToAmount converts minor units back to a decimal amount string.
// 98000 -> "980.00".
func MinorUnitsToAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// NormalizeAmount validates an amount string and returns it with exactly two
// fractional digits.
func NormalizeAmount(amount string) (string, error) {
	minor, err := AmountToMinorUnits(amount)
	if err != nil {
		return "", err
	}
	return MinorUnitsToAmount(minor), nil
}
