package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the statement builder configured for PostgreSQL-style $N
// placeholders, which the pgx stdlib driver expects. The sqlite3 driver
// accepts them as well.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildFindAccountByIdentifier builds the lookup query used by
// [accountRepository.FindAccountByIdentifier].
func buildFindAccountByIdentifier(identifier string) (string, []any, error) {
	return psql.
		Select("account_id", "account", "name", "password", "status", "created_at").
		From("accounts").
		Where(sq.Eq{"account": identifier}).
		ToSql()
}

// buildCreateAccount builds the insert statement used by
// [accountRepository.CreateAccount]. All columns are returned so the caller
// receives the canonical database representation of the new account.
func buildCreateAccount(account, name, passwordDigest string, status int) (string, []any, error) {
	return psql.
		Insert("accounts").
		Columns("account", "name", "password", "status").
		Values(account, name, passwordDigest, status).
		Suffix("RETURNING account_id, account, name, password, status, created_at").
		ToSql()
}
