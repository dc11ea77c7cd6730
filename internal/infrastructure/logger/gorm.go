package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowQuery = 200 * time.Millisecond
	// Batched inserts from an import can run to kilobytes of SQL.
	defaultMaxSQLLength = 2000
)

// GormLogger writes the statements issued by the repositories to zap under
// the "db" name. Each entry carries the statement kind, the row count and
// the CLI command that triggered it.
type GormLogger struct {
	zl           *zap.Logger
	level        gormlogger.LogLevel
	slowQuery    time.Duration
	maxSQLLength int
	showNotFound bool
}

// GormLoggerOption tunes a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold flags statements slower than d at Warn. Zero disables it.
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowQuery = d }
}

// WithIgnoreRecordNotFoundError hides lookups that matched nothing. It is on
// by default since a missing staff member is reported by the caller.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) { l.showNotFound = !ignore }
}

// WithMaxSQLLength truncates logged statements to n bytes. Zero keeps them whole.
func WithMaxSQLLength(n int) GormLoggerOption {
	return func(l *GormLogger) { l.maxSQLLength = n }
}

// NewGormLogger returns a gorm logger at the given level
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{
		zl:           zapLogger.Named("db"),
		level:        level,
		slowQuery:    defaultSlowQuery,
		maxSQLLength: defaultMaxSQLLength,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.level < min {
		return
	}
	if ce := l.zl.Check(lvl, fmt.Sprintf(msg, data...)); ce != nil {
		ce.Write(l.commandField(ctx)...)
	}
}

// Trace logs one finished statement. Failures go to Error, statements over
// the slow threshold to Warn and everything else to Debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	if err != nil && !l.showNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slowQuery > 0 && elapsed > l.slowQuery

	var lvl zapcore.Level
	var msg string
	switch {
	case err != nil && l.level >= gormlogger.Error:
		lvl, msg = zapcore.ErrorLevel, "query failed"
	case slow && l.level >= gormlogger.Warn:
		lvl, msg = zapcore.WarnLevel, fmt.Sprintf("slow query over %v", l.slowQuery)
	case l.level >= gormlogger.Info:
		lvl, msg = zapcore.DebugLevel, "query"
	default:
		return
	}

	ce := l.zl.Check(lvl, msg)
	if ce == nil {
		return
	}
	sql, rows := fc()
	fields := append(l.commandField(ctx),
		zap.String("op", statementKind(sql)),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
		zap.String("sql", l.truncate(sql)),
	)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}

func (l *GormLogger) commandField(ctx context.Context) []zap.Field {
	if cmd := GetCommand(ctx); cmd != "" {
		return []zap.Field{zap.String("command", cmd)}
	}
	return nil
}

func (l *GormLogger) truncate(sql string) string {
	if l.maxSQLLength <= 0 || len(sql) <= l.maxSQLLength {
		return sql
	}
	return sql[:l.maxSQLLength] + "..."
}

// statementKind returns the leading SQL keyword in lower case, e.g. "select"
func statementKind(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \t\n("); i > 0 {
		sql = sql[:i]
	}
	return strings.ToLower(sql)
}

// MapGormLogLevel turns database.log_level into a gorm level. Unknown values
// fall back to Warn so slow queries and failures stay visible.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent", "off":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	}
	return gormlogger.Warn
}
