// Package database owns the SQLite connection and first-run provisioning.
//
// On first run, if the configured database file does not exist, a seed file
// is copied into place when one is configured; otherwise the schema is
// created via migration. Either way the same file is usable afterwards.
package database

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/readinglog/internal/entities"
)

// ErrStorageUnavailable is returned when the database stays locked past the
// bounded retry budget or cannot be reached at all.
var ErrStorageUnavailable = errors.New("storage unavailable")

const (
	busyRetries    = 3
	busyRetryDelay = 100 * time.Millisecond
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase provisions the database file if needed and opens it.
func NewDatabase(dbPath, seedPath string) (*Database, error) {
	if err := provision(dbPath, seedPath); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.ShareLink{},
		&entities.ShareItem{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// provision copies the seed database into place when the working file does
// not exist yet. Schema creation for the fresh-file case is handled by
// AutoMigrate after open.
func provision(dbPath, seedPath string) error {
	if _, err := os.Stat(dbPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat database file: %w", err)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); err != nil {
		if os.IsNotExist(err) {
			log.Printf("Seed database %s not found, starting with empty schema", seedPath)
			return nil
		}
		return fmt.Errorf("failed to stat seed database: %w", err)
	}

	if err := copyFile(seedPath, dbPath); err != nil {
		return fmt.Errorf("failed to copy seed database: %w", err)
	}
	log.Printf("Copied seed database %s to %s", seedPath, dbPath)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// WithRetry runs fn, retrying a bounded number of times when it fails with
// a lock-contention error. Once the budget is spent the failure surfaces as
// ErrStorageUnavailable rather than crashing the interaction.
func WithRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt <= busyRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(busyRetryDelay)
		}
		err = fn()
		if err == nil || !isBusy(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
