package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/salesdash/backend/internal/infrastructure/config"
	"github.com/salesdash/backend/internal/infrastructure/logger"
	"github.com/salesdash/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "internal/infrastructure/migration/sql"

func main() {
	var (
		migrationsPath string
		logLevel       string
		envFile        string
	)

	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Migration source tree used by create")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&envFile, "env", ".env", "Env file loaded before configuration, if present")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("Failed to load env file", zap.String("file", envFile), zap.Error(err))
	}

	// create writes source files and needs no configuration
	if command == "create" {
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}

		files, err := migration.CreateMigration(migrationsPath, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		for _, mf := range files {
			log.Info("Migration created",
				zap.String("driver", mf.Driver),
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("driver", cfg.Database.Driver),
	)

	// list reads the migrations compiled into the binary
	if command == "list" {
		names, err := migration.Embedded(cfg.Database.Driver)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(names) == 0 {
			log.Info("No migrations found")
			return
		}
		log.Info("Available migrations", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return
	}

	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == ":memory:" {
		log.Fatal("An in-memory sqlite database cannot be migrated from a separate process")
	}

	db, err := openDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// The migrator owns db from here and closes it
	m, err := migration.New(db, cfg.Database.Driver, log)
	if err != nil {
		_ = db.Close()
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "steps":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate steps <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration steps failed", zap.Error(err))
		}

	case "goto":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("Migration goto failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	case "drop":
		confirm := false
		for _, arg := range args[1:] {
			if arg == "-confirm" || arg == "--confirm" {
				confirm = true
				break
			}
		}
		if !confirm {
			log.Fatal("Drop deletes every staff member and sales record. Use 'migrate drop -confirm' to confirm.")
		}
		if err := m.Drop(); err != nil {
			log.Fatal("Drop failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// openDatabase opens a plain connection for the configured driver
func openDatabase(cfg *config.DatabaseConfig) (*sql.DB, error) {
	driverName, dsn := "postgres", cfg.DSN()
	if cfg.Driver == "sqlite" {
		driverName, dsn = "sqlite3", cfg.Path
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func printUsage() {
	fmt.Println(`salesdash database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  steps <n>             Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  drop -confirm         Drop all database objects (DANGEROUS)
  create <name> [desc]  Create a new migration pair for every driver
  list                  List the migrations embedded for the configured driver

Flags:
  -path string          Migration source tree (default: internal/infrastructure/migration/sql)
  -log-level string     Log level: debug, info, warn, error (default: info)
  -env string           Env file loaded before configuration (default: .env)

Environment Variables:
  SALESDASH_DATABASE_DRIVER (sqlite, postgres), SALESDASH_DATABASE_PATH,
  SALESDASH_DATABASE_HOST, SALESDASH_DATABASE_PORT, SALESDASH_DATABASE_USER,
  SALESDASH_DATABASE_PASSWORD, SALESDASH_DATABASE_DBNAME, SALESDASH_DATABASE_SSLMODE

Examples:
  # Apply all pending migrations
  migrate up

  # Roll back the last migration
  migrate steps -1

  # Create a new migration
  migrate create add_region_column "Track the sales region of each record"`)
}
