package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/inventory-cart/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis stores each document as a string value under prefix+name.
func NewRedis(client redis.UniversalClient, prefix string) (port.DocumentStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}

	return &redisStorage{
		client: client,
		prefix: prefix,
	}, nil
}

func (s *redisStorage) Read(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	data, err := s.client.Get(ctx, s.prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("client.Get: %w", err)
	}

	return data, nil
}

func (s *redisStorage) Write(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}

	if err := s.client.Set(ctx, s.prefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}
