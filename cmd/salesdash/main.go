package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/salesdash/backend/internal/infrastructure/config"
	"github.com/salesdash/backend/internal/infrastructure/logger"
	"github.com/salesdash/backend/internal/infrastructure/migration"
	"github.com/salesdash/backend/internal/infrastructure/persistence"
	"github.com/salesdash/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "Env file loaded before configuration, if present")
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", envFile, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, log = logger.WithCommand(ctx, log, strings.Join(args[:min(2, len(args))], " "))

	code := run(ctx, cfg, log, args)
	_ = logger.Sync(log)
	stop()
	os.Exit(code)
}

// run opens the database and executes one command. It returns the exit code.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) int {
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		return 1
	}
	defer db.Close()

	if err := migrateDatabase(db, &cfg.Database, log); err != nil {
		log.Error("Failed to migrate database", zap.Error(err))
		return 1
	}

	formatter, err := printing.NewFormatter(cfg.Report.Locale, cfg.Report.Currency)
	if err != nil {
		log.Error("Invalid report formatting settings", zap.Error(err))
		return 1
	}

	renderers, closeRenderers, err := buildRenderers(cfg, formatter, log)
	if err != nil {
		log.Error("Failed to set up exporters", zap.Error(err))
		return 1
	}
	defer closeRenderers()

	a, err := newApp(appDeps{
		staffRepo:  persistence.NewGormStaffRepository(db.DB),
		recordRepo: persistence.NewGormRecordRepository(db.DB),
		report:     cfg.Report,
		formatter:  formatter,
		renderers:  renderers,
		logger:     log,
		stdout:     os.Stdout,
	})
	if err != nil {
		log.Error("Invalid report settings", zap.Error(err))
		return 1
	}

	if err := a.dispatch(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			return 2
		}
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		return 1
	}
	return 0
}

// migrateDatabase applies pending migrations before any command runs
func migrateDatabase(db *persistence.Database, cfg *config.DatabaseConfig, log *zap.Logger) error {
	quiet := log.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))

	if cfg.Driver == "sqlite" && cfg.Path == ":memory:" {
		// The in-memory database lives on the single open connection, which
		// the migrator would close.
		sqlDB, err := db.DB.DB()
		if err != nil {
			return err
		}
		m, err := migration.New(sqlDB, cfg.Driver, quiet)
		if err != nil {
			return err
		}
		return m.Up()
	}

	m, err := migration.NewFromURL(cfg.MigrateURL(), cfg.Driver, quiet)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

func printUsage(w *os.File) {
	fmt.Fprint(w, `salesdash - sales staff performance reports

Usage:
  salesdash [-env file] <command> <subcommand> [flags]

Staff:
  staff add -name NAME [-phone PHONE] [-hired YYYY-MM-DD]
  staff list
  staff update -id ID -name NAME [-phone PHONE] [-hired YYYY-MM-DD]
  staff delete -id ID

Sales records:
  record add -staff ID -month MM [-year YYYY] -sales N [-commission N] [-bonus N] [-expenses N]
  record list [-year YYYY] [-staff ID]
  record delete -id ID

Import:
  import csv FILE         Header row: staff, month, year, sales, commission, bonus, expenses
  import legacy FILE      JSON dump of the browser dashboard storage

Reports:
  report summary [-year YYYY]
  report highlights [-year YYYY]
  report ranking [-year YYYY] [-by total_profit|profit_percent|expense_percent|total_sales|average_sales|average_profit|growth]
  report performance -staff ID
  report analysis [-year YYYY] [-name STAFF]
  report years

Export:
  export staff [-year YYYY] -out FILE [-format html|xlsx|pdf]
  export performance [-staff ID] -out FILE [-format html|xlsx|pdf]

Configuration is read from config.toml and SALESDASH_* environment variables,
e.g. SALESDASH_DATABASE_DRIVER=postgres.
`)
}
