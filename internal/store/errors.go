package store

import "errors"

// Sentinel errors returned by the account repository. Callers match them
// with [errors.Is]; everything else coming out of the store is a wrapped
// driver error.
var (
	// ErrAccountNotFound is returned when no account matches the requested
	// identifier.
	ErrAccountNotFound = errors.New("no account was found")

	// ErrAccountAlreadyExists is returned when an insert collides with an
	// existing account identifier.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrBuildingSQLQuery is returned when the query builder fails to
	// produce SQL, which indicates a programming error rather than a
	// runtime condition.
	ErrBuildingSQLQuery = errors.New("error building SQL query")
)
