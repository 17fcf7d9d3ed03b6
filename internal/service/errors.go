package service

import (
	"errors"
	"fmt"
)

// AuthError is a typed login failure carrying the numeric error code and
// message that end up in the structured rejection body. The codes are part
// of the wire contract with existing clients.
type AuthError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error %d: %s", e.Code, e.Message)
}

// Typed login failures produced by the login check chain. Callers match
// them with [errors.Is] or unwrap to *AuthError with [errors.As].
var (
	// ErrAccountNotFound is returned by the account check when no account
	// matches the presented identifier (or the account is disabled).
	ErrAccountNotFound = &AuthError{Code: 10001, Message: "account not found"}

	// ErrPasswordMismatch is returned by the password check when the digest
	// of the presented secret does not match the stored digest.
	ErrPasswordMismatch = &AuthError{Code: 10002, Message: "wrong password"}

	// ErrPasswordUnparseable is returned before the chain runs when the
	// obfuscated presented secret cannot be decoded.
	ErrPasswordUnparseable = &AuthError{Code: 100098, Message: "unable to parse password"}
)

var (
	// ErrInvalidDataProvided is returned when a login request is missing
	// the account identifier or the secret.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenVerificationFailed is the single opaque error every token
	// verification failure collapses to. The specific cause (malformed,
	// expired, bad signature) is logged server-side and never reaches the
	// wire.
	ErrTokenVerificationFailed = errors.New("token verification failed")

	// ErrTokenCreationFailed wraps failures of the signing step.
	ErrTokenCreationFailed = errors.New("token creation failed")
)

// Registry wiring errors. Both are startup bugs, never runtime conditions:
// process start must abort on either.
var (
	// ErrUnknownStrategy is returned when resolving a verification strategy
	// name no handler was registered under.
	ErrUnknownStrategy = errors.New("unknown verification strategy")

	// ErrDuplicateStrategy is returned when two handlers are registered
	// under the same strategy name.
	ErrDuplicateStrategy = errors.New("verification strategy registered twice")
)
