package render

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats d as dollars with thousands separators, e.g. "$10,245.30"
// or "-$12.50".
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + printer.Sprintf("%.2f", d.Abs().InexactFloat64())
	}
	return "$" + printer.Sprintf("%.2f", d.InexactFloat64())
}

// SignedMoney is Money with an explicit "+" on non-negative values.
func SignedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return Money(d)
	}
	return "+" + Money(d)
}

// SignedPct renders a percentage with two decimals and a sign.
func SignedPct(f float64) string {
	if f >= 0 {
		return fmt.Sprintf("+%.2f%%", f)
	}
	return fmt.Sprintf("%.2f%%", f)
}

// Price renders a quote price without trailing zeros beyond what the
// market quotes, with thousands separators.
func Price(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	return "$" + printer.Sprintf(fmt.Sprintf("%%.%df", places), d.InexactFloat64())
}

// Change renders a market move as "▲ 2.45%" or "▼ 1.23%".
func Change(d decimal.Decimal) string {
	if d.IsNegative() {
		return "▼ " + d.Abs().String() + "%"
	}
	return "▲ " + d.String() + "%"
}
