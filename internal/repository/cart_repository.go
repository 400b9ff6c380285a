package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/inventory-cart/internal/domain"
	"github.com/nikolayk812/inventory-cart/internal/port"
	"github.com/sirupsen/logrus"
)

type cartRepository struct {
	mu           sync.RWMutex
	doc          document[domain.Cart]
	items        port.ItemLookup
	requireStock bool
	log          logrus.FieldLogger
}

func NewCart(storage port.DocumentStorage, name string, items port.ItemLookup, opts ...Option) (port.CartRepository, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}
	if items == nil {
		return nil, fmt.Errorf("items is nil")
	}

	o := newOptions(opts)

	return &cartRepository{
		doc: document[domain.Cart]{
			storage: storage,
			name:    name,
			empty:   func() domain.Cart { return domain.Cart{} },
			log:     o.log,
		},
		items:        items,
		requireStock: o.requireStock,
		log:          o.log,
	}, nil
}

func (r *cartRepository) View(ctx context.Context) (domain.Cart, error) {
	return read(ctx, &r.mu, r.doc)
}

// Add puts quantity of the item into the cart. The first add stores a snapshot of the item,
// later adds only accumulate the quantity.
func (r *cartRepository) Add(ctx context.Context, itemID string, quantity int) (domain.CartEntry, error) {
	if itemID == "" {
		return domain.CartEntry{}, fmt.Errorf("itemID is empty")
	}
	if quantity <= 0 {
		return domain.CartEntry{}, fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}

	log := r.log.WithFields(logrus.Fields{
		"item_id":  itemID,
		"quantity": quantity,
	})

	item, err := r.items.Get(ctx, itemID)
	if err != nil {
		log.WithError(err).Warn("cart add rejected")
		return domain.CartEntry{}, fmt.Errorf("items.Get: %w", err)
	}

	if r.requireStock && (item.InStock == nil || *item.InStock < quantity) {
		log.Warn("cart add rejected: insufficient stock")
		return domain.CartEntry{}, fmt.Errorf("item[%s]: %w", itemID, domain.ErrInsufficientStock)
	}

	entry, err := mutate(ctx, &r.mu, r.doc, func(cart domain.Cart) (domain.Cart, domain.CartEntry, error) {
		entry, ok := cart[itemID]
		if !ok {
			entry = domain.CartEntry{Item: item.Clone()}
		}
		entry.Quantity += quantity
		cart[itemID] = entry

		return cart, domain.CartEntry{Item: entry.Item.Clone(), Quantity: entry.Quantity}, nil
	})
	if err != nil {
		return domain.CartEntry{}, err
	}

	log.WithField("cart_quantity", entry.Quantity).Info("item added to cart")

	return entry, nil
}

func (r *cartRepository) Clear(ctx context.Context) error {
	_, err := mutate(ctx, &r.mu, r.doc, func(domain.Cart) (domain.Cart, struct{}, error) {
		return domain.Cart{}, struct{}{}, nil
	})
	if err != nil {
		return err
	}

	r.log.Info("cart cleared")

	return nil
}
