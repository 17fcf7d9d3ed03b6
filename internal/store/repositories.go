package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
)

// Repositories bundles every data-access contract the gateway uses.
type Repositories struct {
	AccountRepository AccountRepository
}

// NewRepositories connects to the configured database backend, applies
// pending migrations, and wires up the repositories.
func NewRepositories(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Repositories, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Repositories{
		AccountRepository: NewAccountRepository(db, log),
	}, nil
}
