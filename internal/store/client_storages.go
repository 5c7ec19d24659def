package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
)

// ClientStorages groups the client-side storage the sync core depends on.
type ClientStorages struct {
	// Cache is the process-wide Local Cache shared by every sync engine.
	Cache LocalCache

	db *DB
}

// MemoryDSN selects the non-durable in-process cache instead of SQLite.
const MemoryDSN = ":memory:"

// NewClientStorages opens the SQLite cache at cfg.Cache.DSN, applies the
// schema and returns the wired storages. [MemoryDSN] skips SQLite entirely.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	if cfg.Cache.DSN == MemoryDSN {
		logger.Warn().Msg("using the in-memory cache; cached views are lost on exit")
		return &ClientStorages{Cache: NewMemoryCache()}, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{Cache: NewSQLiteCache(db), db: db}, nil
}

// Close releases the cache database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
