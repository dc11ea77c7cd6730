package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	Report   ReportConfig
	Printing PrintingConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // sqlite, postgres
	Path            string // sqlite file, or ":memory:"
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int           // in minutes
	ConnMaxIdleTime int           // in minutes
	LogLevel        string        // silent, error, warn, info
	SlowThreshold   time.Duration // queries slower than this are logged at warn
}

// ReportConfig holds reporting rules
type ReportConfig struct {
	GroupBy              string // staff_id, name
	ExportPeriods        int    // periods kept by the performance export
	Currency             string // ISO 4217 code
	Locale               string // BCP 47 tag used for number formatting
	IdealProfitPercent   float64
	AverageProfitPercent float64
}

// PrintingConfig holds PDF rendering settings
type PrintingConfig struct {
	ChromeRemoteURL string // empty launches a local Chrome
	Timeout         time.Duration
	NoSandbox       bool
}

// Load reads configuration from config file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with SALESDASH_ prefix (e.g., SALESDASH_DATABASE_DRIVER)
// 2. config.toml in the working directory or $HOME/.salesdash
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.salesdash")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SALESDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			Path:            v.GetString("database.path"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			LogLevel:        v.GetString("database.log_level"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Report: ReportConfig{
			GroupBy:              v.GetString("report.group_by"),
			ExportPeriods:        v.GetInt("report.export_periods"),
			Currency:             v.GetString("report.currency"),
			Locale:               v.GetString("report.locale"),
			IdealProfitPercent:   v.GetFloat64("report.ideal_profit_percent"),
			AverageProfitPercent: v.GetFloat64("report.average_profit_percent"),
		},
		Printing: PrintingConfig{
			ChromeRemoteURL: v.GetString("printing.chrome_remote_url"),
			Timeout:         v.GetDuration("printing.timeout"),
			NoSandbox:       v.GetBool("printing.no_sandbox"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "salesdash"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "salesdash.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "salesdash"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 10
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}
	if cfg.Database.SlowThreshold == 0 {
		cfg.Database.SlowThreshold = 200 * time.Millisecond
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}

	if cfg.Report.GroupBy == "" {
		cfg.Report.GroupBy = "staff_id"
	}
	if cfg.Report.ExportPeriods == 0 {
		cfg.Report.ExportPeriods = 6
	}
	if cfg.Report.Currency == "" {
		cfg.Report.Currency = "BRL"
	}
	if cfg.Report.Locale == "" {
		cfg.Report.Locale = "pt-BR"
	}
	if cfg.Report.IdealProfitPercent == 0 {
		cfg.Report.IdealProfitPercent = 15
	}
	if cfg.Report.AverageProfitPercent == 0 {
		cfg.Report.AverageProfitPercent = 10
	}

	if cfg.Printing.Timeout == 0 {
		cfg.Printing.Timeout = 30 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	switch c.Report.GroupBy {
	case "staff_id", "name":
	default:
		return fmt.Errorf("report.group_by must be staff_id or name, got %q", c.Report.GroupBy)
	}
	if c.Report.ExportPeriods <= 0 {
		return fmt.Errorf("report.export_periods must be positive")
	}
	if c.Report.AverageProfitPercent > c.Report.IdealProfitPercent {
		return fmt.Errorf("report.average_profit_percent (%g) cannot exceed report.ideal_profit_percent (%g)",
			c.Report.AverageProfitPercent, c.Report.IdealProfitPercent)
	}

	if c.App.Env == "production" && c.Database.Driver == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("database.password is required in production")
	}

	return nil
}

// DSN returns the postgres connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// MigrateURL returns the golang-migrate database URL for the configured driver
func (d *DatabaseConfig) MigrateURL() string {
	if d.Driver == "sqlite" {
		return "sqlite3://" + d.Path
	}
	return d.DSN()
}
