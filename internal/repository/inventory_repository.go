package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/inventory-cart/internal/domain"
	"github.com/nikolayk812/inventory-cart/internal/port"
	"github.com/sirupsen/logrus"
)

type inventoryRepository struct {
	mu    sync.RWMutex
	doc   document[[]domain.InventoryItem]
	newID func() string
	log   logrus.FieldLogger
}

func NewInventory(storage port.DocumentStorage, name string, opts ...Option) (port.InventoryRepository, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	o := newOptions(opts)

	return &inventoryRepository{
		doc: document[[]domain.InventoryItem]{
			storage: storage,
			name:    name,
			empty:   func() []domain.InventoryItem { return []domain.InventoryItem{} },
			log:     o.log,
		},
		newID: o.newID,
		log:   o.log,
	}, nil
}

// List returns all items in insertion order.
func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return read(ctx, &r.mu, r.doc)
}

func (r *inventoryRepository) Get(ctx context.Context, id string) (domain.InventoryItem, error) {
	if id == "" {
		return domain.InventoryItem{}, fmt.Errorf("id is empty")
	}

	items, err := r.List(ctx)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	i := indexOf(items, id)
	if i < 0 {
		return domain.InventoryItem{}, notFound(id)
	}

	return items[i], nil
}

// Create stores draft under a newly generated id; any id on draft is ignored.
func (r *inventoryRepository) Create(ctx context.Context, draft domain.InventoryItem) (domain.InventoryItem, error) {
	if draft.PriceInCents < 0 {
		return domain.InventoryItem{}, fmt.Errorf("priceInCents[%d]: %w", draft.PriceInCents, domain.ErrInvalidPrice)
	}
	if draft.InStock != nil && *draft.InStock < 0 {
		return domain.InventoryItem{}, fmt.Errorf("inStock[%d]: %w", *draft.InStock, domain.ErrInvalidQuantity)
	}

	item := draft.Clone()
	item.ID = r.newID()
	if item.ID == "" {
		return domain.InventoryItem{}, fmt.Errorf("generated id is empty")
	}

	created, err := mutate(ctx, &r.mu, r.doc, func(items []domain.InventoryItem) ([]domain.InventoryItem, domain.InventoryItem, error) {
		if indexOf(items, item.ID) >= 0 {
			return nil, domain.InventoryItem{}, fmt.Errorf("id[%s] already exists", item.ID)
		}

		return append(items, item), item.Clone(), nil
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}

	r.log.WithFields(logrus.Fields{
		"item_id": created.ID,
		"name":    created.Name,
	}).Info("inventory item created")

	return created, nil
}

// UpdateStock sets the quantity in stock of an existing item.
func (r *inventoryRepository) UpdateStock(ctx context.Context, id string, inStock int) (domain.InventoryItem, error) {
	if id == "" {
		return domain.InventoryItem{}, fmt.Errorf("id is empty")
	}
	if inStock < 0 {
		return domain.InventoryItem{}, fmt.Errorf("inStock[%d]: %w", inStock, domain.ErrInvalidQuantity)
	}

	updated, err := mutate(ctx, &r.mu, r.doc, func(items []domain.InventoryItem) ([]domain.InventoryItem, domain.InventoryItem, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, domain.InventoryItem{}, notFound(id)
		}

		stock := inStock
		items[i].InStock = &stock

		return items, items[i].Clone(), nil
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}

	r.log.WithFields(logrus.Fields{
		"item_id":  id,
		"in_stock": inStock,
	}).Info("inventory stock updated")

	return updated, nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) (domain.InventoryItem, error) {
	if id == "" {
		return domain.InventoryItem{}, fmt.Errorf("id is empty")
	}

	deleted, err := mutate(ctx, &r.mu, r.doc, func(items []domain.InventoryItem) ([]domain.InventoryItem, domain.InventoryItem, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, domain.InventoryItem{}, notFound(id)
		}

		item := items[i]
		return slices.Delete(items, i, i+1), item, nil
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}

	r.log.WithField("item_id", id).Info("inventory item deleted")

	return deleted, nil
}

func indexOf(items []domain.InventoryItem, id string) int {
	return slices.IndexFunc(items, func(item domain.InventoryItem) bool {
		return item.ID == id
	})
}

func notFound(id string) error {
	return fmt.Errorf("item[%s]: %w", id, domain.ErrItemNotFound)
}
