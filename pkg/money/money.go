// Package money converts between API decimals and stored minor units and
// renders amounts in the dashboard display format.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinorDigits is the number of fractional digits kept in storage.
const MinorDigits = 2

var (
	ErrTooPrecise = errors.New("amount_too_precise")
	ErrOutOfRange = errors.New("amount_out_of_range")
)

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

var printer = message.NewPrinter(language.English)

// ToMinor converts an amount into integer minor units. Amounts with more
// fractional digits than MinorDigits are rejected rather than rounded, and so
// are amounts whose minor units do not fit in an int64.
func ToMinor(amount decimal.Decimal) (int64, error) {
	if !amount.Equal(amount.Round(MinorDigits)) {
		return 0, ErrTooPrecise
	}
	shifted := amount.Shift(MinorDigits)
	if shifted.GreaterThan(maxMinor) || shifted.LessThan(minMinor) {
		return 0, ErrOutOfRange
	}
	return shifted.IntPart(), nil
}

// FromMinor converts stored minor units back into a decimal amount.
func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -MinorDigits)
}

// Format renders amount as "1,234.56" followed by the optional suffix.
func Format(amount decimal.Decimal, suffix string) string {
	rounded := amount.Round(MinorDigits)
	sign := ""
	if rounded.Sign() < 0 {
		sign = "-"
		rounded = rounded.Neg()
	}

	whole := rounded.Truncate(0)
	frac := rounded.Sub(whole).Shift(MinorDigits).IntPart()

	out := fmt.Sprintf("%s%s.%0*d", sign, groupWhole(whole), MinorDigits, frac)
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		out += " " + suffix
	}
	return out
}

// groupWhole renders a non-negative integral decimal with thousands
// separators. Values past int64 are grouped from their digit string.
func groupWhole(whole decimal.Decimal) string {
	if whole.LessThanOrEqual(maxMinor) {
		return printer.Sprintf("%d", whole.IntPart())
	}
	digits := whole.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
