// Package utils provides general-purpose helper utilities
// used across different parts of the gateway.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, password de-obfuscation, and session token
// issuance and verification.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AccountCtxKey is the key used to store the authenticated account
// identifier in the context. Used together with GetAccountFromContext for
// type-safe retrieval of the account from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AccountCtxKey, "alice")
var AccountCtxKey = contextKey("account")

// GetAccountFromContext retrieves the authenticated account identifier
// from the context.
//
// Returns the account identifier and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	account, ok := utils.GetAccountFromContext(ctx)
//	if !ok {
//	    // handle missing account in context
//	}
func GetAccountFromContext(ctx context.Context) (string, bool) {
	account, ok := ctx.Value(AccountCtxKey).(string)
	return account, ok
}
