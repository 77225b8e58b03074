package querycache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roomadmin/internal/dbx"
)

type SQLiteRepository struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteRepository returns a cache whose entries expire after ttl. A
// non-positive ttl keeps entries until they are invalidated.
func NewSQLiteRepository(db *sql.DB, ttl time.Duration) *SQLiteRepository {
	return &SQLiteRepository{db: db, ttl: ttl, now: time.Now}
}

const prefixClause = `(key = ? OR substr(key, 1, ?) = ?)`

func prefixArgs(prefix string) []any {
	p := prefix + "/"
	return []any{prefix, len(p), p}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string, dst any) (bool, error) {
	var (
		value    []byte
		storedAt int64
		stale    bool
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, stored_at, stale FROM query_cache WHERE key = ?`, key,
	).Scan(&value, &storedAt, &stale)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache[%s]: %w", key, err)
	}

	if stale || r.expired(storedAt) {
		return false, nil
	}
	if err := json.Unmarshal(value, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache[%s]: %w", key, err)
	}
	return true, nil
}

func (r *SQLiteRepository) expired(storedAt int64) bool {
	if r.ttl <= 0 {
		return false
	}
	return r.now().Sub(time.UnixMilli(storedAt)) > r.ttl
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache[%s]: %w", key, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO query_cache (key, value, stored_at, stale) VALUES (?, ?, ?, 0)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at, stale = 0
	`, key, b, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set cache[%s]: %w", key, err)
	}
	return nil
}

// Invalidate marks entries under prefix stale and drops stale entries that
// have outlived the ttl anyway.
func (r *SQLiteRepository) Invalidate(ctx context.Context, prefix string) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE query_cache SET stale = 1 WHERE `+prefixClause, prefixArgs(prefix)...,
		); err != nil {
			return err
		}
		if r.ttl <= 0 {
			return nil
		}
		cutoff := r.now().Add(-r.ttl).UnixMilli()
		_, err := tx.ExecContext(ctx, `DELETE FROM query_cache WHERE stale = 1 AND stored_at < ?`, cutoff)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate cache[%s]: %w", prefix, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, prefix string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM query_cache WHERE `+prefixClause, prefixArgs(prefix)...,
	); err != nil {
		return fmt.Errorf("failed to remove cache[%s]: %w", prefix, err)
	}
	return nil
}
