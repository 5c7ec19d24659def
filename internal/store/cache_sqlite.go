package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-blog-sync/internal/logger"
)

const cacheTable = "cache_entries"

type sqliteCache struct {
	*DB
	now func() time.Time
}

// NewSQLiteCache returns a [LocalCache] persisted in the cache_entries table.
func NewSQLiteCache(db *DB) LocalCache {
	return &sqliteCache{DB: db, now: time.Now}
}

func (c *sqliteCache) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("value").
		From(cacheTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = c.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		log.Err(err).
			Str("func", "sqliteCache.Get").
			Str("key", key).
			Msg("failed to read cache entry")
		return "", false, fmt.Errorf("%w (key=%s): %w", ErrScanningRow, key, err)
	}

	return value, true, nil
}

func (c *sqliteCache) Set(ctx context.Context, key string, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert(cacheTable).
		Columns("key", "value", "updated_at").
		Values(key, value, c.now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteCache.Set").
			Str("key", key).
			Msg("failed to upsert cache entry")
		return fmt.Errorf("%w (key=%s): %w", ErrExecutingStatement, key, err)
	}

	return nil
}
