package store

import (
	"database/sql"

	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/migrations"
)

// DB wraps the cache database connection.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded cache schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
