package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/models"
	"github.com/jackc/pgerrcode"
)

// accountRepository is the SQL-backed implementation of [AccountRepository].
// It handles account creation and lookup against the "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// FindAccountByIdentifier retrieves the account record whose identifier
// matches the one provided.
//
// Error handling:
//   - No matching row ([sql.ErrNoRows]) → [ErrAccountNotFound].
//   - Query-builder failure → wrapped [ErrBuildingSQLQuery].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *accountRepository) FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindAccountByIdentifier(identifier)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.FindAccountByIdentifier").Msg("error: building query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.Account
	row := r.db.QueryRowContext(ctx, query, args...)

	// scan found account from db
	if err := row.Scan(&found.AccountID, &found.Account, &found.Name, &found.Password, &found.Status, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}

		log.Err(err).Str("func", "*accountRepository.FindAccountByIdentifier").Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// CreateAccount persists a new account record and returns the fully
// populated [models.Account] with server-assigned fields (AccountID,
// CreatedAt).
//
// The INSERT returns all columns via a RETURNING clause, so the caller
// receives the canonical database representation of the new account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAccountAlreadyExists].
//   - Query-builder failure → wrapped [ErrBuildingSQLQuery].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateAccount(account.Account, account.Name, account.Password, account.Status)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: building query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	// scan saved account from db
	if err := row.Scan(&account.AccountID, &account.Account, &account.Name, &account.Password, &account.Status, &account.CreatedAt); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, ErrAccountAlreadyExists
		}

		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// IsRetryable delegates to the connection's error classifier.
func (r *accountRepository) IsRetryable(err error) bool {
	return r.db.IsRetryable(err)
}
