// Package money converts between integer minor-currency units (cents) and
// decimal display amounts. Every monetary value in the system is stored and
// transmitted as int64 cents; decimals exist only at the input/display edge.
//
// All rounding is half-away-from-zero. The same codec is used at every call
// site so client display and recorded totals never drift by a cent.
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToCents converts a user-entered decimal amount to integer cents,
// rounding half-away-from-zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// ToCurrency converts integer cents back to a decimal amount.
func ToCurrency(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// Format renders cents as a prefixed, thousands-grouped amount with exactly
// two decimal digits, e.g. Format("C$", 123450) == "C$1,234.50".
func Format(prefix string, cents int64) string {
	f, _ := ToCurrency(cents).Float64()
	return prefix + humanize.FormatFloat("#,###.##", f)
}

// FormatOptional behaves like Format but tolerates a missing value,
// rendering the zero amount instead of failing.
func FormatOptional(prefix string, cents *int64) string {
	if cents == nil {
		return Format(prefix, 0)
	}
	return Format(prefix, *cents)
}
