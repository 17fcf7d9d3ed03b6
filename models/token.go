package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names embedded into every issued session token.
const (
	// ClaimAccount carries the account identifier of the logged-in subject.
	ClaimAccount = "account"

	// ClaimPassword carries the SHA-256 hex digest derived from the
	// presented secret. The plaintext secret is never placed in a token.
	ClaimPassword = "pwd"
)

// Token wraps a signed session token with convenience accessors for
// authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and keeps the flat claim set as [jwt.MapClaims], matching the wire format
// of the token: a fixed textual prefix followed by a compact JWS.
//
// SignedString holds the full wire form of the token (prefix + compact JWS)
// ready to be transmitted in the "token" header or stored in a cookie.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the wire string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// Claims is the flat key/value claim set carried by the token.
	Claims jwt.MapClaims `json:"-"`

	// SignedString is the wire representation of the token:
	// the fixed prefix concatenated with the compact JWS.
	// Use [Token.String] to retrieve it.
	SignedString string `json:"-"`
}

// GetAccount extracts the account identifier from the token's claim set.
//
// Returns an error if the claim is missing, empty, or not a string.
func (t *Token) GetAccount() (string, error) {
	account, ok := t.Claims[ClaimAccount].(string)
	if !ok || account == "" {
		return "", errors.New("token has no account claim")
	}

	return account, nil
}

// String returns the wire serialization of the token (the fixed prefix
// followed by the signed, base64url-encoded header.payload.signature).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
