package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount stored as cents (scale 2).
// Arithmetic on Money is exact integer arithmetic; decimal conversion and
// rounding happen only at the boundary, in ParseMoney.
type Money int64

var centsFactor = decimal.New(100, 0)

// ParseMoney converts a decimal string into Money. Values with more than
// two fractional digits are rounded half away from zero, so "0.015"
// becomes 0.02. This is the single place where rounding occurs.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	return MoneyFromDecimal(d), nil
}

// MoneyFromDecimal rounds d to scale 2 (half away from zero) and returns
// the equivalent amount in cents.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(2).Mul(centsFactor).IntPart())
}

// Decimal returns the amount as a scale-2 decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders the amount with exactly two fractional digits, e.g. "40.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON serializes Money as a JSON number with two fractional digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
