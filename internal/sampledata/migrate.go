package sampledata

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrNoChange = errors.New("no change")

// Migrator applies the catalog schema using golang-migrate.
type Migrator struct {
	path string
}

func NewMigrator(path string) (*Migrator, error) {
	if path == "" {
		return nil, fmt.Errorf("missing database path")
	}
	return &Migrator{path: path}, nil
}

func (m *Migrator) Up() error {
	mig, closer, err := m.migrateInstance()
	if err != nil {
		return err
	}
	defer closer()
	if err := mig.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return err
	}
	return nil
}

func (m *Migrator) Down() error {
	mig, closer, err := m.migrateInstance()
	if err != nil {
		return err
	}
	defer closer()
	if err := mig.Steps(-1); err != nil {
		// A database with no applied version has nothing to roll back.
		if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, os.ErrNotExist) {
			return ErrNoChange
		}
		return err
	}
	return nil
}

// migrateInstance owns its own connection; closing the migrate instance
// closes it.
func (m *Migrator) migrateInstance() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to load migrations: %w", err)
	}
	db, err := sql.Open("sqlite3", m.path)
	if err != nil {
		return nil, func() {}, err
	}
	driver, err := msqlite.WithInstance(db, &msqlite.Config{})
	if err != nil {
		db.Close()
		return nil, func() {}, fmt.Errorf("failed to init migration driver: %w", err)
	}
	mig, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		db.Close()
		return nil, func() {}, err
	}
	return mig, func() { mig.Close() }, nil
}
