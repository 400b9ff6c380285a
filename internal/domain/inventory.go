package domain

import "golang.org/x/text/currency"

// InventoryItem is a sellable record. Legacy records carry Type instead of Category;
// both are kept as stored.
type InventoryItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PriceInCents int64  `json:"priceInCents"`
	Category     string `json:"category,omitempty"`
	Type         string `json:"type,omitempty"`
	InStock      *int   `json:"inStock,omitempty"`
}

func (i InventoryItem) Price(unit currency.Unit) Money {
	return MoneyFromCents(i.PriceInCents, unit)
}

// Clone returns a copy that shares no memory with i.
func (i InventoryItem) Clone() InventoryItem {
	if i.InStock != nil {
		stock := *i.InStock
		i.InStock = &stock
	}
	return i
}
