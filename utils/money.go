package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders amount as "<ISO code> <grouped amount>" rounded to the
// currency's standard number of decimals. An unknown or empty code formats
// the bare number with two decimals.
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return formatNumber(amount, 2)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return unit.String() + " " + formatNumber(amount, scale)
}

func formatNumber(amount decimal.Decimal, scale int) string {
	f := amount.Round(int32(scale)).InexactFloat64()
	return moneyPrinter.Sprint(number.Decimal(f, number.Scale(scale)))
}
