package sampledata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/steipete/shopsetup/internal/envfile"
)

// EnvSeeder populates the database named by DATABASE_PATH in the env file.
// The file is read when Populate runs, so it may be created after the
// seeder is constructed.
type EnvSeeder struct {
	EnvFile string
	BaseDir string
	Logger  *slog.Logger
}

// DatabasePath resolves DATABASE_PATH against BaseDir, falling back to the
// default location when the key is absent or empty.
func (s *EnvSeeder) DatabasePath() (string, error) {
	values, err := envfile.Read(s.EnvFile)
	if err != nil {
		return "", err
	}
	p := values[envfile.KeyDatabase]
	if p == "" {
		p = envfile.DefaultDatabasePath
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.BaseDir, p)
	}
	return p, nil
}

func (s *EnvSeeder) Populate(ctx context.Context) error {
	path, err := s.DatabasePath()
	if err != nil {
		return err
	}
	store, err := Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Populate(ctx)
	if err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Debug("sample data populated", "path", path, "products_added", n)
	}
	return nil
}

// Reset rolls the catalog schema back, dropping all catalog rows. A missing
// database file is left alone. The next Populate recreates the schema.
func (s *EnvSeeder) Reset() error {
	path, err := s.DatabasePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	mig, err := NewMigrator(path)
	if err != nil {
		return err
	}
	if err := mig.Down(); err != nil && err != ErrNoChange {
		return fmt.Errorf("failed to reset catalog: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Debug("catalog reset", "path", path)
	}
	return nil
}

// Summary reports how many products the database holds.
func (s *EnvSeeder) Summary(ctx context.Context) (string, error) {
	path, err := s.DatabasePath()
	if err != nil {
		return "", err
	}
	store, err := Open(path)
	if err != nil {
		return "", err
	}
	defer store.Close()

	n, err := store.CountProducts(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d products in %s", n, path), nil
}
