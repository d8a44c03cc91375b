// Package sampledata seeds the shop database with a small demo catalog.
package sampledata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the shop database.
type Store struct {
	db *sql.DB
}

// Open creates the database file's directory, applies the schema, and
// connects.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	mig, err := NewMigrator(path)
	if err != nil {
		return nil, err
	}
	if err := mig.Up(); err != nil && err != ErrNoChange {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Populate inserts the sample catalog in one transaction and returns how
// many products were newly added. Rows that already exist by name are left
// alone, so repeated runs do not duplicate data.
func (s *Store) Populate(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range SampleCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO categories(name, emoji) VALUES (?, ?)`,
			c.Name, c.Emoji,
		); err != nil {
			return 0, fmt.Errorf("failed to insert category %q: %w", c.Name, err)
		}
	}

	inserted := 0
	for _, p := range SampleProducts {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO products(category_id, name, description, price_cents, stock)
			 SELECT id, ?, ?, ?, ? FROM categories WHERE name = ?`,
			p.Name, p.Description, p.PriceCents, p.Stock, p.Category,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert product %q: %w", p.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sample data: %w", err)
	}
	return inserted, nil
}

// CountProducts returns the number of rows in the products table.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
