// Package repo implements the relational question/answer store, backed by
// GORM. This file contains connection bootstrapping for SQLite (pure Go
// driver) and PostgreSQL, pool sizing, and schema migration.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and tunes the database connection.
type Options struct {
	Driver       string // sqlite|postgres
	DSN          string // file path for sqlite, URL/keyword DSN for postgres
	MaxOpenConns int    // pool bound; <= 0 keeps the driver default
	Tracing      bool   // install the OpenTelemetry GORM plugin
}

// newTracingPlugin is replaceable in tests.
var newTracingPlugin = func() gorm.Plugin { return tracing.NewPlugin(tracing.WithoutMetrics()) }

// Open connects with the configured driver and applies pool settings.
// Failure here is fatal for the process; callers should not retry.
func Open(opts Options) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(opts.Driver) {
	case DriverSQLite, "":
		db, err = OpenSQLite(opts.DSN)
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(opts.DSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns > 0 {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
			sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
		}
	}
	if opts.Tracing {
		if err := db.Use(newTracingPlugin()); err != nil {
			closeDB(db)
			return nil, fmt.Errorf("install tracing plugin: %w", err)
		}
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if the parent directory is missing instead of surfacing a
	// driver-specific "unable to open database file".
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// AutoMigrate creates or updates the questions and answers tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Question{}, &domain.Answer{})
}
