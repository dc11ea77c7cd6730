// Package integration runs the repositories and services against a real
// PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/salesdash/backend/internal/infrastructure/config"
	"github.com/salesdash/backend/internal/infrastructure/migration"
	"github.com/salesdash/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	testDBName   = "salesdash_test"
	testUser     = "postgres"
	testPassword = "postgres"
)

// TestDB is a migrated PostgreSQL database in a throwaway container
type TestDB struct {
	*persistence.Database
	Config    config.DatabaseConfig
	Container testcontainers.Container
	t         *testing.T
}

// NewTestDB starts a container, applies the embedded migrations and
// registers cleanup. It skips under -short.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test needs Docker; skipped with -short")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testDBName),
		tcpostgres.WithUsername(testUser),
		tcpostgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Driver:       "postgres",
		Host:         host,
		Port:         port.Int(),
		User:         testUser,
		Password:     testPassword,
		DBName:       testDBName,
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		LogLevel:     "silent",
	}

	m, err := migration.NewFromURL(cfg.MigrateURL(), cfg.Driver, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
	require.NoError(t, m.Close())

	db, err := persistence.NewDatabase(&cfg, zap.NewNop())
	require.NoError(t, err, "Failed to connect to database")
	t.Cleanup(func() { _ = db.Close() })

	return &TestDB{Database: db, Config: cfg, Container: container, t: t}
}

// CleanTables empties every sales table
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	require.NoError(tdb.t, tdb.DB.Exec("TRUNCATE TABLE sales_records, staff_members").Error)
}
