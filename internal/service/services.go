package service

import (
	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/store"
)

// Services bundles the business-logic layer handed to the HTTP handlers.
type Services struct {
	AuthService
	TokenService

	// Registry resolves the configured verification strategy for the
	// authentication gate.
	Registry *Registry

	// AppInfoService reports build and version metadata for the health
	// endpoint.
	AppInfoService
}

// NewServices wires the full service layer: token codec, login chain,
// verification strategy registry. Registry wiring errors (duplicate or
// unknown strategy names) are startup defects and are returned to the
// caller to abort boot.
func NewServices(repos *store.Repositories, cfg *config.StructuredConfig, log *logger.Logger) (*Services, error) {
	tokenService := NewTokenService(cfg.App, log)
	authService := NewAuthService(repos.AccountRepository, tokenService, cfg.Gateway, log)

	registry := NewRegistry()
	if err := registry.Register(StrategyNormal, NewNormalVerification(tokenService)); err != nil {
		return nil, err
	}

	// fail at boot, not on the first request, when the configured strategy
	// has no handler
	if _, err := registry.Resolve(cfg.Gateway.Strategy); err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    authService,
		TokenService:   tokenService,
		Registry:       registry,
		AppInfoService: NewAppInfoService(cfg.App),
	}, nil
}
