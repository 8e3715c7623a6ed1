// Package money provides the monetary value type used across the sales system.
package money

import (
	"github.com/shopspring/decimal"
)

// Amount is an immutable monetary value. Every arithmetic operation returns
// a new Amount and never mutates its operands.
type Amount struct {
	value decimal.Decimal
}

// Zero returns an Amount of zero.
func Zero() Amount {
	return Amount{value: decimal.Zero}
}

// New creates an Amount from a decimal value.
func New(value decimal.Decimal) Amount {
	return Amount{value: value}
}

// FromFloat creates an Amount from a float64.
func FromFloat(value float64) Amount {
	return Amount{value: decimal.NewFromFloat(value)}
}

// FromInt creates an Amount from an integer number of currency units.
func FromInt(value int64) Amount {
	return Amount{value: decimal.NewFromInt(value)}
}

// RequireFromString creates an Amount from a decimal string and panics on
// malformed input. Intended for constants and tests.
func RequireFromString(value string) Amount {
	return Amount{value: decimal.RequireFromString(value)}
}

// Add returns the sum of a and other.
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Sub returns the difference of a and other.
func (a Amount) Sub(other Amount) Amount {
	return Amount{value: a.value.Sub(other.value)}
}

// Mul returns a multiplied by the given factor.
func (a Amount) Mul(factor decimal.Decimal) Amount {
	return Amount{value: a.value.Mul(factor)}
}

// MulInt returns a multiplied by an integer quantity.
func (a Amount) MulInt(quantity int) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Equal reports whether a and other represent the same value.
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

// GreaterThan reports whether a is strictly greater than other.
func (a Amount) GreaterThan(other Amount) bool {
	return a.value.GreaterThan(other.value)
}

// LessThan reports whether a is strictly less than other.
func (a Amount) LessThan(other Amount) bool {
	return a.value.LessThan(other.value)
}

// IsNegative reports whether a is below zero.
func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

// IsZero reports whether a equals zero.
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// InexactFloat64 returns the nearest float64 representation, for display only.
func (a Amount) InexactFloat64() float64 {
	return a.value.InexactFloat64()
}

// StringFixed renders the amount with exactly two decimal places.
func (a Amount) StringFixed() string {
	return a.value.StringFixed(2)
}

// String renders the amount without trailing zeros.
func (a Amount) String() string {
	return a.value.String()
}
