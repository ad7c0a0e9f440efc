package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Money is an immutable monetary amount stored as an integer number of cents.
// Unit prices and order totals use Money so that totals derived from line
// items never suffer floating point drift.
//
// The zero value represents zero cents and is valid: an empty order total is
// a legitimate amount. Negative amounts are not.
//
// Example:
//
//	price, err := kernel.NewMoney(450) // 4.50
//	total := price.MultiplyBy(3)       // 13.50
type Money struct {
	cents int64
}

// NewMoney creates a Money amount from a number of cents.
// Returns an error for negative amounts.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%d cents is negative", cents),
		)
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// MultiplyBy returns the amount multiplied by a non-negative quantity.
func (m Money) MultiplyBy(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

// IsEqual reports whether two amounts are the same number of cents.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount as a decimal with two fraction digits, e.g. "4.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
