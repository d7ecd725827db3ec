// Package currency formats ledger amounts for display using ISO 4217
// currency metadata. It performs no conversion; a group's amounts are always
// denominated in the group's single currency.
package currency

import (
	"math"

	"github.com/Rhymond/go-money"
)

// Format renders amount using the currency's symbol, separators, and minor
// unit count. Unknown codes fall back to USD.
func Format(code string, amount float64) string {
	c := lookup(code)
	scale := math.Pow10(c.Fraction)
	return money.New(int64(math.Round(amount*scale)), c.Code).Display()
}

// Symbol returns the display symbol for a currency code (e.g. "$", "€").
// Unknown codes fall back to USD.
func Symbol(code string) string {
	return lookup(code).Grapheme
}

// Valid reports whether code is a known ISO 4217 currency code.
func Valid(code string) bool {
	return money.GetCurrency(code) != nil
}

func lookup(code string) *money.Currency {
	if c := money.GetCurrency(code); c != nil {
		return c
	}
	return money.GetCurrency(money.USD)
}
