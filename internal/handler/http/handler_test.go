package http

import (
	"testing"
	"time"

	"github.com/MKhiriev/auth-gateway/internal/acl"
	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/mock"
	"github.com/MKhiriev/auth-gateway/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// handlerMocks объединяет моки всех коллабораторов Handler
type handlerMocks struct {
	auth     *mock.MockAuthService
	tokens   *mock.MockTokenService
	verifier *mock.MockVerificationHandler
	upstream *mock.MockUpstream
}

func defaultGatewayConfig() config.Gateway {
	return config.Gateway{
		Blacklist:     nil,
		Whitelist:     []string{"/login/user-login", "/health"},
		TokenHeader:   "token",
		DebugHeader:   "print",
		DebugBypass:   false,
		Strategy:      "normal",
		LoginPath:     "/api/v1/login/user-login",
		LookupTimeout: time.Second,
		LookupRetries: 3,
	}
}

// newTestHandler — хелпер для создания Handler с моками вместо сервисов,
// стратегии и апстрима
func newTestHandler(t *testing.T, ctrl *gomock.Controller, cfg config.Gateway) (*Handler, *handlerMocks) {
	t.Helper()

	mocks := &handlerMocks{
		auth:     mock.NewMockAuthService(ctrl),
		tokens:   mock.NewMockTokenService(ctrl),
		verifier: mock.NewMockVerificationHandler(ctrl),
		upstream: mock.NewMockUpstream(ctrl),
	}

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(cfg.Strategy, mocks.verifier))

	services := &service.Services{
		AuthService:    mocks.auth,
		TokenService:   mocks.tokens,
		Registry:       registry,
		AppInfoService: service.NewAppInfoService(config.App{Version: "test"}),
	}

	rules := acl.NewRuleSet(acl.StaticProvider{
		Block: cfg.Blacklist,
		Allow: cfg.Whitelist,
	})

	handler, err := NewHandler(services, cfg, rules, mocks.upstream, logger.Nop())
	require.NoError(t, err)

	return handler, mocks
}

func TestNewHandler_UnknownStrategy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := service.NewRegistry()
	services := &service.Services{Registry: registry}

	cfg := defaultGatewayConfig()
	cfg.Strategy = "unregistered"

	_, err := NewHandler(services, cfg, acl.NewRuleSet(), mock.NewMockUpstream(ctrl), logger.Nop())
	require.ErrorIs(t, err, service.ErrUnknownStrategy)
}

func TestNewHandler_GuardedLoginPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// белый список не покрывает путь логина: никто не смог бы войти
	cfg := defaultGatewayConfig()
	cfg.LoginPath = "/api/v2/session"
	cfg.Whitelist = []string{"/health"}

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(cfg.Strategy, mock.NewMockVerificationHandler(ctrl)))
	services := &service.Services{Registry: registry}

	rules := acl.NewRuleSet(acl.StaticProvider{Allow: cfg.Whitelist})

	_, err := NewHandler(services, cfg, rules, mock.NewMockUpstream(ctrl), logger.Nop())
	require.ErrorIs(t, err, ErrGuardedLoginPath)
}
