package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/auth-gateway/models"
	"github.com/golang-jwt/jwt/v5"
)

// Typed verification failures returned by VerifyPrefixedToken. They are for
// internal consumption (logs, tests); the service layer collapses all of
// them into a single opaque error before anything reaches the wire.
var (
	// ErrTokenMalformed is returned when the token string is missing the
	// fixed prefix or the remainder is not a parseable compact JWS.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenExpired is returned when the token carries an "exp" claim
	// that has passed.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenSignatureInvalid is returned when the HMAC signature does not
	// verify against the process-wide sign key.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// IssuePrefixedToken creates a signed session token in the gateway's wire
// format: a fixed textual prefix concatenated with a compact HMAC-SHA256 JWS
// over the given flat claim set.
//
// Numeric/time semantics:
//   - "iat" (issued-at) is always stamped with the current time;
//   - "exp" (expiry) is set only when ttl > 0. A zero or negative ttl means
//     the token never expires.
//
// The claims map is copied before the time claims are added, so the caller's
// map is never mutated.
//
// Parameters:
//
//	claims  - flat key/value identity claim set (must not be empty)
//	ttl     - token lifetime; <= 0 means no expiry
//	signKey - secret key used to sign the token with HMAC-SHA256
//	prefix  - fixed textual prefix prepended to the compact JWS
//
// Returns the token model (wire string plus parsed form) or an error if the
// parameters are invalid or signing fails.
func IssuePrefixedToken(claims map[string]any, ttl time.Duration, signKey, prefix string) (models.Token, error) {
	if len(claims) == 0 || signKey == "" || prefix == "" {
		return models.Token{}, errors.New("invalid params for issuing token")
	}

	now := time.Now()
	mapClaims := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["iat"] = jwt.NewNumericDate(now)
	if ttl > 0 {
		mapClaims["exp"] = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing token: %w", err)
	}

	return models.Token{
		Token:        token,
		Claims:       mapClaims,
		SignedString: prefix + signed,
	}, nil
}

// VerifyPrefixedToken validates a wire token string and extracts its claims.
//
// Verification strips the fixed prefix before delegating to the compact JWS
// parser; a token missing or mismatching the prefix is malformed. The parser
// then checks the HMAC-SHA256 signature against signKey and the "exp" claim
// when present.
//
// Returns the decoded token model, or one of the typed failures:
// [ErrTokenMalformed], [ErrTokenExpired], [ErrTokenSignatureInvalid].
func VerifyPrefixedToken(tokenString, signKey, prefix string) (models.Token, error) {
	if !strings.HasPrefix(tokenString, prefix) {
		return models.Token{}, ErrTokenMalformed
	}
	compact := strings.TrimPrefix(tokenString, prefix)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(compact, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Token{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return models.Token{}, ErrTokenSignatureInvalid
		default:
			return models.Token{}, ErrTokenMalformed
		}
	}

	return models.Token{
		Token:        token,
		Claims:       claims,
		SignedString: tokenString,
	}, nil
}
