package port

import (
	"context"

	"github.com/nikolayk812/inventory-cart/internal/domain"
)

type CartRepository interface {
	View(ctx context.Context) (domain.Cart, error)
	Add(ctx context.Context, itemID string, quantity int) (domain.CartEntry, error)
	Clear(ctx context.Context) error
}

// ItemLookup resolves inventory items for the cart.
type ItemLookup interface {
	Get(ctx context.Context, id string) (domain.InventoryItem, error)
}
