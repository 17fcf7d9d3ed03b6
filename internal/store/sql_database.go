package store

import (
	"database/sql"

	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/migrations"
)

// DB wraps the standard sql.DB handle together with the driver name (needed
// for migrations) and an error classifier used to decide whether a failed
// operation is worth retrying.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation should be
// retried or abandoned.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies all pending schema migrations to the underlying database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// IsRetryable reports whether err describes a transient condition that may
// succeed on another attempt, according to the driver's classifier.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}

	return db.errorClassificator.Classify(err) == Retryable
}
