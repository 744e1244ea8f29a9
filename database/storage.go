package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"furuth/config"
)

// Keys of the shared storage namespace. Values are JSON documents except
// for the preference and flag keys, which hold raw strings.
const (
	ProductsKey       = "furuth_products"
	ProductsBackupKey = "furuth_products_backup"
	CartKey           = "furuth_cart"
	OrdersKey         = "furuth_orders"
	OrdersQuarantine  = "furuth_orders_corrupt"
	CurrencyKey       = "furuth_currency"
	ThemeKey          = "theme"
	AdminSessionKey   = "furuth_admin_logged_in"
	InitializedKey    = "furuth_initialized"
)

var (
	ErrQuotaExceeded   = errors.New("storage quota exceeded")
	ErrUnknownDriver   = errors.New("unknown storage driver")
	ErrMissingSettings = errors.New("missing storage settings")
)

// Storage is an opaque key-value store. It offers no transactions: every
// Set replaces the whole value stored under key.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Connect opens the storage backend selected by cfg.StorageDriver.
func Connect(ctx context.Context, cfg config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		log.Println("✅ Using in-memory storage (data is lost on exit)")
		return NewMemoryStorage(cfg.StorageQuota), nil
	case "sqlite":
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Connected to SQLite at %s", cfg.SQLitePath)
		return s, nil
	case "mongo":
		if cfg.MongoURI == "" || cfg.DBName == "" {
			return nil, fmt.Errorf("%w: MONGO_URI and DB_NAME are required", ErrMissingSettings)
		}
		s, err := ConnectMongo(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Connected to MongoDB")
		return s, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL is required", ErrMissingSettings)
		}
		s, err := OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Connected to PostgreSQL")
		return s, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.StorageDriver)
	}
}
