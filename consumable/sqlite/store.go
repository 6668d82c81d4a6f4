// Package sqlite provides a SQLite-backed consumable ledger, so counts
// survive process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/quartzlabs/storehelper/consumable"
	"github.com/quartzlabs/storehelper/product"
)

// compile-time interface check
var _ consumable.Store = (*Store)(nil)

// Store implements consumable.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a store on an existing database handle. Call Migrate before
// first use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("consumable/sqlite: open %s: %w", path, err)
	}
	// SQLite allows a single writer; serializing through one connection
	// avoids SQLITE_BUSY under concurrent access.
	db.SetMaxOpenConns(1)

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// DB returns the underlying database handle for direct access.
func (s *Store) DB() *sql.DB { return s.db }

// Migrate creates the required tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("consumable/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS consumable_counts (
    product_id TEXT PRIMARY KEY,
    count      TEXT NOT NULL DEFAULT '0',
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

func (s *Store) Purchase(ctx context.Context, productID product.ID) error {
	return s.adjust(ctx, productID, +1)
}

func (s *Store) Expire(ctx context.Context, productID product.ID) error {
	return s.adjust(ctx, productID, -1)
}

// adjust moves the stored count by delta inside a transaction, creating
// the entry on first purchase and flooring at zero on expiry.
func (s *Store) adjust(ctx context.Context, productID product.ID, delta int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx,
		`SELECT count FROM consumable_counts WHERE product_id = ?`,
		string(productID)).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if delta < 0 {
			// Expiring an id that was never purchased is a no-op.
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO consumable_counts (product_id, count) VALUES (?, ?)`,
			string(productID), strconv.Itoa(delta)); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		count := parseCount(raw) + delta
		if count < 0 {
			count = 0
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE consumable_counts SET count = ?, updated_at = datetime('now') WHERE product_id = ?`,
			strconv.Itoa(count), string(productID)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) Count(ctx context.Context, productID product.ID) (int, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM consumable_counts WHERE product_id = ?`,
		string(productID)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return parseCount(raw), nil
}

func (s *Store) All(ctx context.Context, productIDs []product.ID) ([]consumable.Entry, error) {
	var entries []consumable.Entry
	for _, pid := range productIDs {
		var raw string
		err := s.db.QueryRowContext(ctx,
			`SELECT count FROM consumable_counts WHERE product_id = ?`,
			string(pid)).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, consumable.Entry{ProductID: pid, Count: parseCount(raw)})
	}
	return entries, nil
}

func (s *Store) Delete(ctx context.Context, entry consumable.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM consumable_counts WHERE product_id = ?`,
		string(entry.ProductID))
	return err
}

func (s *Store) Reset(ctx context.Context, productIDs []product.ID) ([]product.ID, error) {
	var removed []product.ID
	for _, pid := range productIDs {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM consumable_counts WHERE product_id = ?`,
			string(pid))
		if err != nil {
			return removed, err
		}
		if rows, err := res.RowsAffected(); err == nil && rows > 0 {
			removed = append(removed, pid)
		}
	}
	return removed, nil
}

// parseCount decodes a stored decimal string, treating missing or corrupt
// values as zero.
func parseCount(raw string) int {
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0
	}
	return count
}
