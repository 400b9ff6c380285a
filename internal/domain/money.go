package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MoneyFromCents converts an amount in minor units into Money.
func MoneyFromCents(cents int64, unit currency.Unit) Money {
	return Money{
		Amount:   decimal.New(cents, -2),
		Currency: unit,
	}
}
