package service

import (
	"testing"

	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestAppInfoService_Version(t *testing.T) {
	svc := NewAppInfoService(config.App{Version: "1.2.3"})
	assert.Equal(t, "1.2.3", svc.Version())
}
