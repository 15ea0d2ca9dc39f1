package domain

import "fmt"

// Bounds keep every cart sum far below the int64 range: a line is at most
// MaxAmount × MaxQuantity and a cart total at most MaxCartTotal.
const (
	MaxAmount    Money = 100_000_000_000    // one price or payment
	MaxQuantity        = 1000               // units on one cart line
	MaxCartTotal Money = 10_000_000_000_000 // cart total and payments total
)

// Money is an amount in minor currency units (cents). All arithmetic is
// exact integer arithmetic, so equality is strict equality.
type Money int64

// String formats the amount as "major.minor", e.g. 5000 -> "50.00"
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Mul returns m multiplied by a quantity
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// CheckAmount returns ValidationError unless 0 <= m <= MaxAmount
func CheckAmount(field string, m Money) error {
	if m < 0 {
		return NewValidationError(field, "must not be negative")
	}
	if m > MaxAmount {
		return NewValidationError(field, fmt.Sprintf("must not exceed %s", MaxAmount))
	}
	return nil
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m > 0
}
