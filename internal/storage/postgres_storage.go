package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/inventory-cart/internal/migrations"
	"github.com/nikolayk812/inventory-cart/internal/port"
)

const (
	selectDocument = `SELECT body FROM documents WHERE name = $1`

	// writers of the same document are serialized across processes
	lockDocument = `SELECT pg_advisory_xact_lock(hashtext($1))`

	upsertDocument = `
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
)

type postgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) (port.DocumentStorage, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &postgresStorage{pool: pool}, nil
}

func (s *postgresStorage) Read(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	var body string
	err := s.pool.QueryRow(ctx, selectDocument, name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pool.QueryRow: %w", err)
	}

	return []byte(body), nil
}

func (s *postgresStorage) Write(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}

	_, err := withTx(ctx, s.pool, func(tx pgx.Tx) (struct{}, error) {
		if _, err := tx.Exec(ctx, lockDocument, name); err != nil {
			return struct{}{}, fmt.Errorf("tx.Exec lock: %w", err)
		}

		if _, err := tx.Exec(ctx, upsertDocument, name, string(data)); err != nil {
			return struct{}{}, fmt.Errorf("tx.Exec upsert: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}

// EnsurePostgresSchema creates the documents table when it does not exist yet.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("pool is nil")
	}

	if _, err := pool.Exec(ctx, migrations.DocumentsUp); err != nil {
		return fmt.Errorf("pool.Exec migration: %w", err)
	}

	return nil
}
