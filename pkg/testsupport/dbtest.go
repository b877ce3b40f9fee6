package testsupport

import (
	"context"
	"database/sql"
	"io/fs"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-gridlayout/internal/adapters/storage"
)

// NewSQLiteMemoryDB opens a shared in-memory sqlite database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// ApplyMigrations runs the *.up.sql files in fsys against db.
func ApplyMigrations(ctx context.Context, db *bun.DB, fsys fs.FS) error {
	return storage.Migrate(ctx, db, fsys)
}
