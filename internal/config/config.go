package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all settings, read from the environment.
type Config struct {
	Storage StorageConfig
	Cart    CartConfig
	Log     LogConfig
}

// StorageConfig selects the document backend and names the two documents.
type StorageConfig struct {
	Backend           string `envconfig:"STORAGE_BACKEND" default:"file"`
	DataDir           string `envconfig:"DATA_DIR" default:"data"`
	InventoryDocument string `envconfig:"INVENTORY_DOCUMENT" default:"inventoryItems.json"`
	CartDocument      string `envconfig:"CART_DOCUMENT" default:"shoppingCart.json"`

	DatabaseURL    string `envconfig:"DATABASE_URL"`
	RedisURL       string `envconfig:"REDIS_URL"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"inventory-cart:"`
}

type CartConfig struct {
	RequireStock bool   `envconfig:"CART_REQUIRE_STOCK" default:"true"`
	Currency     string `envconfig:"CURRENCY" default:"USD"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("envconfig.Process: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("DATA_DIR is empty")
		}
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for backend %s", c.Storage.Backend)
		}
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for backend %s", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Storage.InventoryDocument == "" || c.Storage.CartDocument == "" {
		return fmt.Errorf("document names must not be empty")
	}
	if c.Storage.InventoryDocument == c.Storage.CartDocument {
		return fmt.Errorf("inventory and cart documents must differ")
	}

	if _, err := c.Cart.CurrencyUnit(); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}

func (c CartConfig) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}

	return unit, nil
}
