package store

//go:generate mockgen -source=interfaces.go -destination=../mock/account_repository_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/auth-gateway/models"
)

// AccountRepository is the persistence collaborator of the authentication
// pipeline. The gateway core treats it as black-box I/O: schema and SQL
// dialect live entirely behind this contract.
type AccountRepository interface {
	// FindAccountByIdentifier resolves the account record for the given
	// identifier. Returns [ErrAccountNotFound] when no such account exists.
	FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error)

	// CreateAccount persists a new account record and returns it with
	// server-assigned fields populated. Returns [ErrAccountAlreadyExists]
	// on an identifier collision.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// IsRetryable reports whether err from a previous call describes a
	// transient condition that may succeed on another attempt.
	IsRetryable(err error) bool
}
