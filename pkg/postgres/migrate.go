package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// DefaultMigrationsSource is where the service binaries look for migration
// files, relative to their working directory.
const DefaultMigrationsSource = "file://migrations"

// RunMigrations applies all pending migrations from DefaultMigrationsSource.
// If there are no new migrations to apply the function returns nil.
func RunMigrations(dsn string) error {
	return RunMigrationsFrom(dsn, DefaultMigrationsSource)
}

// RunMigrationsFrom applies all pending migrations from the given source URL
// (e.g. "file://./migrations").
func RunMigrationsFrom(dsn string, sourceURL string) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	return nil
}

// RunMigrationsDown rolls back all migrations from the given source URL.
// If there are no migrations to roll back the function returns nil.
func RunMigrationsDown(dsn string, sourceURL string) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}

	return nil
}
