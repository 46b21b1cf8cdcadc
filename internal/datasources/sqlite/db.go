// Package sqlite opens record stores backed by a local SQLite file using the
// pure-Go modernc driver, so no CGO toolchain is needed.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jbeshir/xlike-feed/internal/datasources/sqlstore"

	_ "modernc.org/sqlite"
)

const MemoryPath = ":memory:"

// Open opens the database at path, creating it if needed. The pool is
// limited to one connection: SQLite serialises writers anyway, and an
// in-memory database exists only on the connection that created it.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if path != MemoryPath {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("checking SQLite connection: %w", err)
	}

	return db, nil
}

func New(db *sql.DB) *sqlstore.Repository {
	return sqlstore.New(db, sqlbuilder.SQLite)
}
