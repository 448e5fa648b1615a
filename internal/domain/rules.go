package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentChange returns (current-previous)/previous*100, or absent when
// previous is absent or zero.
func PercentChange(current decimal.Decimal, previous decimal.NullDecimal) decimal.NullDecimal {
	if !previous.Valid || previous.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	chg := current.Sub(previous.Decimal).Div(previous.Decimal).Mul(hundred)
	return decimal.NewNullDecimal(chg)
}

func ShouldNotifyAlways() bool { return true }

// ShouldNotifyThreshold reports whether current is outside the optional band.
func ShouldNotifyThreshold(current decimal.Decimal, below, above decimal.NullDecimal) bool {
	if below.Valid && current.LessThan(below.Decimal) {
		return true
	}
	if above.Valid && current.GreaterThan(above.Decimal) {
		return true
	}
	return false
}
