package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/auth-gateway/models"
)

// TokenService signs and verifies the gateway's session tokens.
type TokenService interface {
	// CreateToken mints a signed token over the given flat claim set, using
	// the configured lifetime. Issued-at is always stamped; expiry only when
	// a positive lifetime is configured.
	CreateToken(ctx context.Context, claims map[string]any) (models.Token, error)

	// ParseToken validates a wire token string and returns its decoded
	// form. Every validation failure is collapsed to
	// [ErrTokenVerificationFailed]; the underlying cause is logged, never
	// returned.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AuthService runs the ordered login check chain for the login endpoint.
type AuthService interface {
	// Login de-obfuscates the presented secret, evaluates every login check
	// in order, and on full success mints a session token. The first
	// failing check aborts the chain; its *AuthError propagates unchanged.
	Login(ctx context.Context, request models.LoginRequest) (models.Token, error)
}

// VerificationHandler validates an extracted bearer credential for a
// protected request. Implementations are registered in a [Registry] under a
// symbolic strategy name and resolved once at startup.
type VerificationHandler interface {
	// Verify checks the credential and returns its decoded token on
	// success.
	Verify(ctx context.Context, credential string) (models.Token, error)
}
