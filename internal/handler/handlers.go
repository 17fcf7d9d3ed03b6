package handler

import (
	"github.com/MKhiriev/auth-gateway/internal/acl"
	"github.com/MKhiriev/auth-gateway/internal/adapter"
	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/handler/http"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	rules := acl.NewRuleSet(acl.StaticProvider{
		Block: cfg.Gateway.Blacklist,
		Allow: cfg.Gateway.Whitelist,
	})

	upstream, err := adapter.NewHTTPUpstream(cfg.Gateway, cfg.Server.RequestTimeout, logger)
	if err != nil {
		return nil, err
	}

	httpHandler, err := http.NewHandler(services, cfg.Gateway, rules, upstream, logger)
	if err != nil {
		return nil, err
	}

	return &Handlers{HTTP: httpHandler}, nil
}
