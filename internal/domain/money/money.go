package money

// Package money provides fixed-point currency amounts. Prices arrive from the
// API as decimal strings; holding them as integer cents avoids floating-point
// accumulation error across repeated cart additions.

import (
	"errors"
	"fmt"
	"strings"
)

// Cents is a currency amount in hundredths of the major unit.
type Cents int64

// ErrInvalidAmount is returned when a decimal string cannot be parsed as a price.
var ErrInvalidAmount = errors.New("invalid decimal amount")

// ParseDecimal converts a decimal string such as "12.34" into Cents.
// At most two fraction digits are accepted; negative amounts are rejected.
func ParseDecimal(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, s)
	}

	whole, frac := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: more than two fraction digits in %q", ErrInvalidAmount, s)
	}

	var total Cents
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		total = total*10 + Cents(r-'0')
	}
	total *= 100

	scale := Cents(10)
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		total += Cents(r-'0') * scale
		scale /= 10
	}

	return total, nil
}

// MustParseDecimal is ParseDecimal that panics on error. Intended for tests and constants.
func MustParseDecimal(s string) Cents {
	c, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Mul returns the amount multiplied by a quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// String renders the amount as a decimal string with two fraction digits.
func (c Cents) String() string {
	sign := ""
	v := c
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
