package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// MinorUnitScale is the number of minor currency units per major unit.
const MinorUnitScale = 100

// Amount is a monetary value held as an integer count of minor currency
// units. Balances never touch binary floating point.
type Amount int64

var minorFactor = decimal.NewFromInt(MinorUnitScale)

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// ParseAmount parses a major-unit decimal string (e.g. "50.00") into an
// Amount. Negative values and values with more fractional digits than the
// minor unit scale supports are rejected.
func ParseAmount(major string) (Amount, error) {
	d, err := decimal.NewFromString(major)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return AmountFromDecimal(d)
}

// AmountFromDecimal converts a major-unit decimal into an Amount.
func AmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}

	minor := d.Mul(minorFactor)
	if !minor.IsInteger() {
		return 0, ErrInvalidAmount
	}

	if minor.Cmp(maxMinor) > 0 {
		return 0, ErrInvalidAmount
	}

	return Amount(minor.IntPart()), nil
}

// AmountFromMinor builds an Amount directly from a minor-unit count.
func AmountFromMinor(minor int64) Amount {
	return Amount(minor)
}

// Minor returns the amount as a minor-unit count.
func (a Amount) Minor() int64 {
	return int64(a)
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return a + b
}

// Sub returns a - b. The result may be negative; callers enforce balance
// policy.
func (a Amount) Sub(b Amount) Amount {
	return a - b
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return -a
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a < 0
}

// IsPositive reports whether the amount is above zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool {
	return a < b
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), 0).Div(minorFactor)
}

// MajorString formats the amount in major units with full minor precision,
// e.g. 5000 minor units -> "50.00".
func (a Amount) MajorString() string {
	return a.Decimal().StringFixed(2)
}

func (a Amount) String() string {
	return a.MajorString()
}
