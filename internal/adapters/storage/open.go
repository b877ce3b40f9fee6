package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-gridlayout/internal/runtimeconfig"
)

const (
	ProviderMemory   = "memory"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
)

// ErrProviderNotSQL is returned by Open for providers that do not need a
// database handle.
var ErrProviderNotSQL = errors.New("storage: provider is not backed by sql")

// Provider normalises the configured provider name. Empty means memory.
func Provider(cfg runtimeconfig.StorageConfig) string {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		return ProviderMemory
	}
	return provider
}

// Open returns a bun handle for the sqlite and postgres providers.
func Open(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch provider := Provider(cfg); provider {
	case ProviderSQLite:
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		// sqlite serialises writers; a single connection also keeps shared
		// in-memory databases alive for the lifetime of the handle.
		db.SetMaxOpenConns(1)
		return db, nil
	case ProviderPostgres:
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case ProviderMemory:
		return nil, ErrProviderNotSQL
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, provider)
	}
}
