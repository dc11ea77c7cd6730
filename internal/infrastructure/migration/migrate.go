package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql
var migrationsFS embed.FS

// Migrator handles database migrations using golang-migrate.
// Migrations are embedded in the binary, one directory per driver.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

func sourceFor(driver string) (source.Driver, error) {
	dir, err := sourceDir(driver)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return src, nil
}

func sourceDir(driver string) (string, error) {
	switch driver {
	case "sqlite", "postgres":
		return "sql/" + driver, nil
	}
	return "", fmt.Errorf("unsupported migration driver %q", driver)
}

// New creates a Migrator on an open connection
func New(db *sql.DB, driver string, logger *zap.Logger) (*Migrator, error) {
	src, err := sourceFor(driver)
	if err != nil {
		return nil, err
	}

	var dbDriver database.Driver
	switch driver {
	case "sqlite":
		dbDriver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case "postgres":
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s driver: %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// NewFromURL creates a Migrator from a golang-migrate database URL
// (sqlite3://path or postgres://...)
func NewFromURL(databaseURL, driver string, logger *zap.Logger) (*Migrator, error) {
	src, err := sourceFor(driver)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up")

	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Debug("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migrations completed",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	m.logger.Info("Running migrations down")

	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}

	m.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations (positive = up, negative = down)
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Running migration steps", zap.Int("steps", n))

	err := m.migrate.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration steps failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migration steps completed",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// GoTo migrates up or down to a specific version
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))

	err := m.migrate.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Already at target version")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}

	m.logger.Info("Migration to version completed", zap.Uint("version", version))
	return nil
}

// Version returns the current migration version; 0 when nothing is applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the migration version without running migrations.
// It is meant for clearing a dirty state after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))

	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}

	m.logger.Info("Migration version forced", zap.Int("version", version))
	return nil
}

// Drop drops every table in the database, including all sales data
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping database - all data will be lost")

	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	m.logger.Info("Database dropped")
	return nil
}

// Close closes the migrator and releases resources
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}

// Embedded lists the migrations compiled into the binary for driver, in order
func Embedded(driver string) ([]string, error) {
	dir, err := sourceDir(driver)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if base, ok := strings.CutSuffix(e.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}
