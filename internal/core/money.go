// Package core holds the domain types and the two algorithms the rest of
// the system is built around: the month-range resolver and the day grouper.
package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in a single implicit currency, stored as cents to keep
// arithmetic exact. On the wire it is a plain decimal number (12.5 == 1250
// cents), because that is what the JSON clients send and expect back.
type Money struct {
	Cents int64
}

// Value returns the decimal amount for display purposes. Use cents for
// calculations.
func (m Money) Value() float64 {
	return float64(m.Cents) / 100.0
}

// MarshalJSON emits the amount as a decimal number with cent precision.
func (m Money) MarshalJSON() ([]byte, error) {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	if frac == 0 {
		return []byte(sign + strconv.FormatInt(whole, 10)), nil
	}
	s := fmt.Sprintf("%s%d.%02d", sign, whole, frac)
	s = strings.TrimRight(s, "0")
	return []byte(s), nil
}

// UnmarshalJSON accepts a JSON number and rounds half-up below cent
// precision.
func (m *Money) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	m.Cents = int64(math.Round(f * 100))
	return nil
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted. Negative values are rejected; zero is fine.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidArgument
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrNegativeAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidArgument
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
			return 0, ErrInvalidArgument
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidArgument
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidArgument
	}
	// First two fractional digits, half-up rounding on the third.
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
