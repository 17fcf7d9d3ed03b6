package service

import (
	"github.com/MKhiriev/auth-gateway/internal/config"
)

// AppInfoService reports application metadata for the health endpoint.
type AppInfoService interface {
	// Version returns the configured application version string.
	Version() string
}

type appInfoService struct {
	version string
}

// NewAppInfoService returns an AppInfoService backed by the application
// configuration.
func NewAppInfoService(cfg config.App) AppInfoService {
	return &appInfoService{version: cfg.Version}
}

func (s *appInfoService) Version() string {
	return s.version
}
