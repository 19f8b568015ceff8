package service

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// formatCurrency renders a dollar amount rounded to cents with thousands
// separators, e.g. -$1,234.56.
func formatCurrency(value float64) string {
	cents := decimal.NewFromFloat(value).Round(2)
	sign := ""
	if cents.IsNegative() {
		sign = "-"
		cents = cents.Abs()
	}
	return sign + "$" + usPrinter.Sprintf("%.2f", cents.InexactFloat64())
}

func formatPercentage(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

func formatYears(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func passFail(ok bool) string {
	if ok {
		return "Passes"
	}
	return "Fails"
}
