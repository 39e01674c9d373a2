// Package store is the arena's persistence layer (§4.4): a single embedded
// SQLite database accessed through database/sql, with every multi-row
// write going through WithTx so logically related rows commit atomically.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

// DB wraps the arena's single-writer, many-reader SQLite connection.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if absent) the database at path in WAL mode with
// foreign keys enforced, and applies the embedded schema idempotently.
func Open(ctx context.Context, path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, clawerr.Unavailable(fmt.Sprintf("open store: %v", err))
	}
	sqlDB.SetMaxOpenConns(1) // single-writer policy (§4.4); SQLite only truly serializes with one connection

	db := &DB{sql: sqlDB}
	if err := db.applySchema(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ApplySchema runs the embedded DDL standalone, for the migrate CLI
// subcommand.
func ApplySchema(ctx context.Context, path string) error {
	db, err := Open(ctx, path)
	if err != nil {
		return err
	}
	return db.Close()
}

func (db *DB) applySchema(ctx context.Context) error {
	if _, err := db.sql.ExecContext(ctx, schemaSQL); err != nil {
		return clawerr.Internal(fmt.Sprintf("apply schema: %v", err))
	}
	return nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.sql.Close()
}

// Ping reports whether the store is reachable, for the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.sql.PingContext(ctx); err != nil {
		return clawerr.Unavailable("store unreachable")
	}
	return nil
}

// WithTx runs fn inside one write transaction, committing on success and
// rolling back on any error or panic. Every multi-row write named by §4.4
// (agent create+moves, accept-challenge+state-blob, queue-join+match-pair+
// queue-delete, turn-resolution+battle-update+turn-log) goes through this.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return clawerr.Unavailable(fmt.Sprintf("begin tx: %v", err))
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return clawerr.Internal(fmt.Sprintf("commit tx: %v", err))
	}
	return nil
}
