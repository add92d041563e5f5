package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const DefaultBusyTimeout = 5 * time.Second

var ErrNoPath = errors.New("database path is required")

// Config locates the sqlite file. The path itself comes from
// utils.Config.DBPath; this package has no default of its own.
type Config struct {
	Path        string
	BusyTimeout time.Duration // 0 means DefaultBusyTimeout
}

func (c Config) dsn() string {
	busy := c.BusyTimeout
	if busy <= 0 {
		busy = DefaultBusyTimeout
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d", c.Path, busy.Milliseconds())
}

// Open creates the data directory if needed and opens the sqlite database.
// Pragmas go in the DSN so that every pooled connection gets them, not just
// the first one.
func Open(cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, ErrNoPath
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
