// Package money provides an exact, fixed-point monetary amount.
//
// Invariants:
//   - Amount is always exact to the smallest currency unit (Scale decimal places).
//   - No floating-point representation is used for stored values.
//   - Amounts are signed; direction is left to the caller.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places kept for every stored amount.
const Scale int32 = 2

// Money represents a signed monetary amount with Scale decimal places.
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{}
}

// New creates Money from a decimal value.
// Invariants enforced:
//   - The value must not have more than Scale decimal places.
//
// Returns Money or ErrInvalidAmount if the value is not exact in the smallest unit.
func New(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Truncate(Scale)) {
		return Money{}, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, d.String(), Scale)
	}
	return Money{amount: d.Truncate(Scale)}, nil
}

// NewFromString parses a decimal string such as "10.50" or "-3".
func NewFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	return New(d)
}

// NewFromInt creates Money from a whole number of currency units.
func NewFromInt(units int64) Money {
	return Money{amount: decimal.NewFromInt(units)}
}

// NewFromMinor creates Money from the smallest currency unit (e.g. cents).
func NewFromMinor(minor int64) Money {
	return Money{amount: decimal.New(minor, -Scale)}
}

// Must is like NewFromString but panics on error. Intended for tests and constants.
func Must(s string) Money {
	m, err := NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%q): %v", s, err))
	}
	return m
}

// Round converts a derived decimal (for example an interest figure) into Money,
// rounding half away from zero to Scale decimal places.
func Round(d decimal.Decimal) Money {
	return Money{amount: d.Round(Scale)}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Minor returns the amount in the smallest currency unit.
func (m Money) Minor() int64 {
	return m.amount.Shift(Scale).IntPart()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other. The result can be negative.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// Div divides m by a decimal divisor and rounds the result to Scale places.
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Round(m.amount.Div(divisor)), nil
}

// Cmp compares m and other: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports whether m and other represent the same amount.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero returns true if the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String renders the amount with exactly Scale decimal places, e.g. "-500.00".
func (m Money) String() string {
	return m.amount.StringFixed(Scale)
}

// MarshalJSON implements json.Marshaler. Amounts are encoded as strings to keep them exact.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	parsed, err := NewFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Sum adds all amounts together.
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
