package port

import (
	"context"

	"github.com/nikolayk812/inventory-cart/internal/domain"
)

type InventoryRepository interface {
	List(ctx context.Context) ([]domain.InventoryItem, error)
	Get(ctx context.Context, id string) (domain.InventoryItem, error)
	Create(ctx context.Context, draft domain.InventoryItem) (domain.InventoryItem, error)
	UpdateStock(ctx context.Context, id string, inStock int) (domain.InventoryItem, error)
	Delete(ctx context.Context, id string) (domain.InventoryItem, error)
}
