package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount as Brazilian reais for ledger descriptions,
// e.g. 1234.5 -> "R$ 1.234,50".
func FormatBRL(amount float64) string {
	return brlPrinter.Sprintf("R$ %.2f", amount)
}
