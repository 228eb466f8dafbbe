package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySymbol prefixes formatted amounts.
const DefaultCurrencySymbol = "₦"

var printer = message.NewPrinter(language.English)

// FormatAmount renders d with two decimals and thousands separators, for
// example "₦1,234.50" or "-₦20.00".
func FormatAmount(d decimal.Decimal, symbol string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + symbol + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// FormatPercent renders p with one decimal, for example "42.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
