package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Cart maps an item id to its entry.
type Cart map[string]CartEntry

type CartEntry struct {
	Item     InventoryItem `json:"item"`
	Quantity int           `json:"quantity"`
}

func (e CartEntry) Subtotal(unit currency.Unit) Money {
	price := e.Item.Price(unit)
	price.Amount = price.Amount.Mul(decimal.NewFromInt(int64(e.Quantity)))
	return price
}

// Total sums the subtotals of all entries.
func (c Cart) Total(unit currency.Unit) Money {
	total := Money{Amount: decimal.Zero, Currency: unit}
	for _, entry := range c {
		total.Amount = total.Amount.Add(entry.Subtotal(unit).Amount)
	}
	return total
}

// Count returns the total quantity across entries.
func (c Cart) Count() int {
	var n int
	for _, entry := range c {
		n += entry.Quantity
	}
	return n
}
