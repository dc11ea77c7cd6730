package persistence

import (
	"fmt"
	"time"

	"github.com/salesdash/backend/internal/infrastructure/config"
	applog "github.com/salesdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB     *gorm.DB
	Driver string
}

// Dialector returns the GORM dialector for the configured driver
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return sqlite.Open(cfg.Path), nil
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// NewDatabase opens the configured database, applies pool settings and pings it.
// Query logs go through zapLogger at database.log_level.
func NewDatabase(cfg *config.DatabaseConfig, zapLogger *zap.Logger) (*Database, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := applog.NewGormLogger(zapLogger, applog.MapGormLogLevel(cfg.LogLevel),
		applog.WithSlowThreshold(cfg.SlowThreshold),
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if cfg.Driver != "postgres" && cfg.Path == ":memory:" {
		// every sqlite :memory: connection is a separate database
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(min(cfg.MaxIdleConns, maxOpen))
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db, Driver: cfg.Driver}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}
