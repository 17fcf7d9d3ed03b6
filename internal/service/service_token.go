package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/utils"
	"github.com/MKhiriev/auth-gateway/models"
)

// tokenService is the concrete implementation of TokenService. It wraps the
// prefixed-token codec with the process-wide signing parameters.
type tokenService struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey string

	// prefix is the fixed textual marker every wire token starts with.
	prefix string

	// duration controls how long a newly issued token remains valid.
	// Zero means issued tokens never expire.
	duration time.Duration

	// logger is the structured logger used for diagnostic output.
	logger *logger.Logger
}

// NewTokenService constructs a TokenService populated with the signing
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		signKey:  cfg.TokenSignKey,
		prefix:   cfg.TokenPrefix,
		duration: cfg.TokenDuration,
		logger:   logger,
	}
}

// CreateToken issues a signed session token over the given claim set.
//
// Returns the token model on success or a wrapped error if signing fails.
func (t *tokenService) CreateToken(ctx context.Context, claims map[string]any) (models.Token, error) {
	token, err := utils.IssuePrefixedToken(claims, t.duration, t.signKey, t.prefix)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw wire token string.
//
// It delegates to utils.VerifyPrefixedToken, which checks the prefix, the
// HMAC signature, and the expiry claim. The specific failure kind is logged
// at debug level and then discarded: callers always receive the single
// opaque [ErrTokenVerificationFailed], so the wire response cannot be used
// to probe which check rejected the token.
func (t *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.VerifyPrefixedToken(tokenString, t.signKey, t.prefix)
	if err != nil {
		log.Debug().Err(err).Msg("token verification failed")
		return models.Token{}, ErrTokenVerificationFailed
	}

	return token, nil
}
