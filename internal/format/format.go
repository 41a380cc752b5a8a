// Package format renders money, amounts and percentages for display.
package format

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter renders decimals with a fixed grapheme and separators.
type Formatter struct {
	Grapheme string
	Decimal  string
	Thousand string
}

// Default returns the pt-BR style dollar formatter: $1.234,56.
func Default() Formatter {
	return Formatter{Grapheme: "$", Decimal: ",", Thousand: "."}
}

// Money formats d with two fraction digits and the currency grapheme.
func (f Formatter) Money(d decimal.Decimal) string {
	return f.number(d, 2, "$1")
}

// MoneyAbs formats the absolute value of d as money.
func (f Formatter) MoneyAbs(d decimal.Decimal) string {
	return f.Money(d.Abs())
}

// Amount formats a held quantity. Cheap assets (price below 1) show at
// least four fraction digits, others at least two; at most max(min, 3)
// digits are kept and trailing zeros beyond the minimum are dropped.
func (f Formatter) Amount(amount, price decimal.Decimal) string {
	minDigits := 2
	if price.LessThan(decimal.NewFromInt(1)) {
		minDigits = 4
	}
	maxDigits := max(minDigits, 3)

	s := f.number(amount, maxDigits, "1")
	for i := maxDigits; i > minDigits && strings.HasSuffix(s, "0"); i-- {
		s = s[:len(s)-1]
	}
	return s
}

// Percent formats the absolute value of d with two fraction digits.
func Percent(d decimal.Decimal) string {
	return d.Abs().StringFixed(2)
}

// SignedPercent formats d with two fraction digits and a leading plus for
// positive values.
func SignedPercent(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// number renders d through the go-money formatter, where "1" in template
// stands for the number and "$" for the grapheme.
func (f Formatter) number(d decimal.Decimal, fraction int, template string) string {
	minor := d.Shift(int32(fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return f.wide(minor, fraction, template)
	}
	return money.NewFormatter(fraction, f.Decimal, f.Thousand, f.Grapheme, template).Format(minor.IntPart())
}

// wide renders minor units that do not fit in an int64, with the same
// layout go-money produces.
func (f Formatter) wide(minor decimal.Decimal, fraction int, template string) string {
	digits := minor.Abs().String()
	if len(digits) <= fraction {
		digits = strings.Repeat("0", fraction-len(digits)+1) + digits
	}
	whole, frac := digits[:len(digits)-fraction], digits[len(digits)-fraction:]

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.Thousand)
		}
		b.WriteRune(c)
	}
	if fraction > 0 {
		b.WriteString(f.Decimal)
		b.WriteString(frac)
	}

	s := strings.Replace(template, "1", b.String(), 1)
	s = strings.Replace(s, "$", f.Grapheme, 1)
	if minor.IsNegative() {
		s = "-" + s
	}
	return s
}
