package storage_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/inventory-cart/internal/domain"
	"github.com/nikolayk812/inventory-cart/internal/port"
	"github.com/nikolayk812/inventory-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_documents.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func startRedis(ctx context.Context) (*tcredis.RedisContainer, string, error) {
	redisContainer, err := tcredis.Run(ctx, "redis:7.4-alpine")
	if err != nil {
		return nil, "", fmt.Errorf("tcredis.Run: %w", err)
	}

	connStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("rc.ConnectionString: %w", err)
	}

	return redisContainer, connStr, nil
}

// assertDocumentStorage exercises the behaviour every backend shares.
func assertDocumentStorage(t *testing.T, s port.DocumentStorage) {
	t.Helper()
	ctx := t.Context()

	name := gofakeit.UUID() + ".json"

	_, err := s.Read(ctx, name)
	require.ErrorIs(t, err, port.ErrDocumentNotFound)

	first := []byte(`[{"id": "a"}]`)
	require.NoError(t, s.Write(ctx, name, first))

	got, err := s.Read(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := []byte("[]\n")
	require.NoError(t, s.Write(ctx, name, second))

	got, err = s.Read(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = s.Read(ctx, "")
	require.EqualError(t, err, "name is empty")

	err = s.Write(ctx, "", first)
	require.EqualError(t, err, "name is empty")
}

// assertStoresRoundTrip runs both stores end to end over s.
func assertStoresRoundTrip(t *testing.T, s port.DocumentStorage) {
	t.Helper()
	ctx := t.Context()

	prefix := gofakeit.UUID()

	inventory, err := repository.NewInventory(s, prefix+"/inventoryItems.json")
	require.NoError(t, err)

	cart, err := repository.NewCart(s, prefix+"/shoppingCart.json", inventory)
	require.NoError(t, err)

	items, err := inventory.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	created, err := inventory.Create(ctx, domain.InventoryItem{
		Name:         "Gratitude Journal",
		PriceInCents: 999,
		Category:     "Journal Book",
	})
	require.NoError(t, err)

	updated, err := inventory.UpdateStock(ctx, created.ID, 5)
	require.NoError(t, err)

	got, err := inventory.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(updated, got))

	_, err = cart.Add(ctx, created.ID, 3)
	require.NoError(t, err)
	entry, err := cart.Add(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)

	view, err := cart.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(domain.Cart{created.ID: entry}, view))

	require.NoError(t, cart.Clear(ctx))
	view, err = cart.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view)

	deleted, err := inventory.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(updated, deleted))

	items, err = inventory.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
