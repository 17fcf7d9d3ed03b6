package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/auth-gateway/models"
)

// StrategyNormal is the name of the built-in verification strategy: parse
// and verify the prefixed signed token carried by the request.
const StrategyNormal = "normal"

// Registry maps strategy names to their VerificationHandler. The set of
// strategies is fixed at startup; Resolve is the only operation used on the
// hot path and performs a plain map read, so the Registry is safe for
// concurrent use once construction is done.
type Registry struct {
	handlers map[string]VerificationHandler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]VerificationHandler)}
}

// Register binds a strategy name to its handler. Registering the same name
// twice is a configuration defect and returns ErrDuplicateStrategy; the
// caller is expected to treat it as fatal at startup.
func (r *Registry) Register(name string, handler VerificationHandler) error {
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStrategy, name)
	}

	r.handlers[name] = handler
	return nil
}

// Resolve returns the handler registered under name, or ErrUnknownStrategy
// if no such strategy exists.
func (r *Registry) Resolve(name string) (VerificationHandler, error) {
	handler, exists := r.handlers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	return handler, nil
}

// normalVerification is the built-in "normal" strategy: the credential is a
// prefixed signed token and verification is delegated to the TokenService.
type normalVerification struct {
	tokenService TokenService
}

// NewNormalVerification returns the VerificationHandler for the "normal"
// strategy.
func NewNormalVerification(tokenService TokenService) VerificationHandler {
	return &normalVerification{tokenService: tokenService}
}

func (v *normalVerification) Verify(ctx context.Context, credential string) (models.Token, error) {
	return v.tokenService.ParseToken(ctx, credential)
}
