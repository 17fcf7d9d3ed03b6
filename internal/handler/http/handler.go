package http

import (
	"fmt"

	"github.com/MKhiriev/auth-gateway/internal/acl"
	"github.com/MKhiriev/auth-gateway/internal/adapter"
	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Gateway

	// rules decides per path whether the authentication gate applies.
	rules *acl.RuleSet

	// verifier is the verification strategy resolved once at startup from
	// the registry; the gate never consults the registry per request.
	verifier service.VerificationHandler

	// upstream forwards authenticated requests to the owning service.
	upstream adapter.Upstream

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Gateway, rules *acl.RuleSet, upstream adapter.Upstream, logger *logger.Logger) (*Handler, error) {
	verifier, err := services.Registry.Resolve(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	// the login endpoint must stay open, or no credential can ever be minted
	if rules.ShouldAuthenticate(cfg.LoginPath) {
		return nil, fmt.Errorf("%w: %s", ErrGuardedLoginPath, cfg.LoginPath)
	}

	logger.Info().Str("strategy", cfg.Strategy).Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		rules:    rules,
		verifier: verifier,
		upstream: upstream,
		logger:   logger,
	}, nil
}
