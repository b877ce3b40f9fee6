package storage

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

const (
	migrationSuffix   = ".up.sql"
	statementSplitter = "---bun:split"
	migrationsTable   = "grid_schema_migrations"
)

// Migrate applies every *.up.sql file found in fsys in lexical order. Each
// file runs in its own transaction and is recorded so later calls skip it.
func Migrate(ctx context.Context, db *bun.DB, fsys fs.FS) error {
	if db == nil {
		return fmt.Errorf("storage: migrate requires a database handle")
	}
	files, err := migrationFiles(fsys)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS "+migrationsTable+
		" (name TEXT PRIMARY KEY, applied_at TIMESTAMP NOT NULL)"); err != nil {
		return fmt.Errorf("storage: create migrations table: %w", err)
	}

	var applied []string
	if err := db.NewSelect().
		Table(migrationsTable).
		Column("name").
		Scan(ctx, &applied); err != nil {
		return fmt.Errorf("storage: list applied migrations: %w", err)
	}

	sqlite := db.Dialect().Name() == dialect.SQLite
	for _, file := range files {
		name := path.Base(file)
		if slices.Contains(applied, name) {
			continue
		}
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("storage: read migration %s: %w", name, err)
		}
		statements := splitStatements(string(raw), sqlite)
		err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, statement := range statements {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO "+migrationsTable+" (name, applied_at) VALUES (?, ?)", name, time.Now().UTC())
			return err
		})
		if err != nil {
			return fmt.Errorf("storage: apply migration %s: %w", name, err)
		}
	}
	return nil
}

func migrationFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, migrationSuffix) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: walk migrations: %w", err)
	}
	slices.SortFunc(files, func(a, b string) int {
		return strings.Compare(path.Base(a), path.Base(b))
	})
	return files, nil
}

func splitStatements(content string, sqlite bool) []string {
	if sqlite {
		// SQLite doesn't understand Postgres JSONB casts in defaults.
		content = strings.ReplaceAll(content, "::jsonb", "")
		content = strings.ReplaceAll(content, "::JSONB", "")
	}
	var statements []string
	for _, chunk := range strings.Split(content, statementSplitter) {
		if statement := strings.TrimSpace(chunk); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
