package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite stores entries in the response_cache table so warm-up runs survive
// restarts.
type SQLite struct {
	DB *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{DB: db}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	var (
		data     []byte
		storedAt time.Time
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT data, stored_at FROM response_cache WHERE key = ?
	`, key).Scan(&data, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	return data, storedAt, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, data []byte) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO response_cache (key, data, stored_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			stored_at = excluded.stored_at
	`, key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set cache entry: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM response_cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// Prune removes entries stored before cutoff and reports how many went.
func (s *SQLite) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM response_cache WHERE stored_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
