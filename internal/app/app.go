package app

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/inventory-cart/internal/config"
	"github.com/nikolayk812/inventory-cart/internal/port"
	"github.com/nikolayk812/inventory-cart/internal/repository"
	"github.com/nikolayk812/inventory-cart/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

// App holds the stores built from a Config.
type App struct {
	Inventory port.InventoryRepository
	Cart      port.CartRepository
	Currency  currency.Unit
	Logger    *logrus.Logger

	closers []func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg is nil")
	}

	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("NewLogger: %w", err)
	}

	unit, err := cfg.Cart.CurrencyUnit()
	if err != nil {
		return nil, err
	}

	a := &App{
		Currency: unit,
		Logger:   logger,
	}

	docs, err := a.openStorage(ctx, cfg.Storage)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Inventory, err = repository.NewInventory(docs, cfg.Storage.InventoryDocument,
		repository.WithLogger(logger.WithField("store", "inventory")))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("repository.NewInventory: %w", err)
	}

	a.Cart, err = repository.NewCart(docs, cfg.Storage.CartDocument, a.Inventory,
		repository.WithLogger(logger.WithField("store", "cart")),
		repository.WithRequireStock(cfg.Cart.RequireStock))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("repository.NewCart: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"backend":       cfg.Storage.Backend,
		"require_stock": cfg.Cart.RequireStock,
	}).Info("stores ready")

	return a, nil
}

// Close releases connections held by the storage backend.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStorage(ctx context.Context, cfg config.StorageConfig) (port.DocumentStorage, error) {
	switch cfg.Backend {
	case config.BackendFile:
		s, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("storage.NewFile: %w", err)
		}
		return s, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("pool.Ping: %w", err)
		}

		if err := storage.EnsurePostgresSchema(ctx, pool); err != nil {
			return nil, fmt.Errorf("storage.EnsurePostgresSchema: %w", err)
		}

		s, err := storage.NewPostgres(pool)
		if err != nil {
			return nil, fmt.Errorf("storage.NewPostgres: %w", err)
		}
		return s, nil

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis.ParseURL: %w", err)
		}

		client := redis.NewClient(opts)
		a.closers = append(a.closers, func() {
			if err := client.Close(); err != nil {
				a.Logger.WithError(err).Warn("redis client close failed")
			}
		})

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("client.Ping: %w", err)
		}

		s, err := storage.NewRedis(client, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("storage.NewRedis: %w", err)
		}
		return s, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// NewLogger builds a logger writing to stderr.
func NewLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logrus.ParseLevel: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return logger, nil
}
