package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/auth-gateway/internal/acl"
	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/mock"
	"github.com/MKhiriev/auth-gateway/internal/service"
	"github.com/MKhiriev/auth-gateway/internal/store"
	"github.com/MKhiriev/auth-gateway/internal/utils"
	"github.com/MKhiriev/auth-gateway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newPipeline собирает полный конвейер с настоящими сервисами: только
// хранилище и апстрим заменены моками
func newPipeline(t *testing.T, ctrl *gomock.Controller, tokenDuration time.Duration) (*Handler, *mock.MockAccountRepository, *mock.MockUpstream) {
	t.Helper()

	mockRepo := mock.NewMockAccountRepository(ctrl)
	mockUpstream := mock.NewMockUpstream(ctrl)

	cfg := &config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "BABY_SSO_JWT_PWD",
			TokenPrefix:   "BABY_SSO_JWT",
			TokenDuration: tokenDuration,
			Version:       "test",
		},
		Gateway: defaultGatewayConfig(),
	}

	services, err := service.NewServices(&store.Repositories{AccountRepository: mockRepo}, cfg, logger.Nop())
	require.NoError(t, err)

	rules := acl.NewRuleSet(acl.StaticProvider{
		Block: cfg.Gateway.Blacklist,
		Allow: cfg.Gateway.Whitelist,
	})

	handler, err := NewHandler(services, cfg.Gateway, rules, mockUpstream, logger.Nop())
	require.NoError(t, err)

	return handler, mockRepo, mockUpstream
}

func loginBody(account, plaintext string) string {
	return fmt.Sprintf(`{"account":%q,"password":%q}`, account, utils.ObfuscatePassword(plaintext))
}

func TestPipeline_LoginThenProtectedRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, mockRepo, mockUpstream := newPipeline(t, ctrl, time.Hour)
	router := handler.Init()

	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "alice").
		Return(models.Account{
			AccountID: 1,
			Account:   "alice",
			Password:  utils.SHA256Hex("secret"),
			Status:    models.AccountStatusActive,
		}, nil)

	// вход через белый список, без токена
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/login/user-login", strings.NewReader(loginBody("alice", "secret")))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.True(t, strings.HasPrefix(response.Token, "BABY_SSO_JWT"))

	// защищённый путь с полученным токеном уходит в апстрим, аккаунт
	// доступен из контекста запроса
	mockUpstream.EXPECT().
		Forward(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, w http.ResponseWriter, _ *http.Request, _ []byte) error {
			account, ok := utils.GetAccountFromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, "alice", account)
			w.WriteHeader(http.StatusOK)
			return nil
		})

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	request.Header.Set("token", response.Token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestPipeline_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, mockRepo, _ := newPipeline(t, ctrl, time.Hour)
	router := handler.Init()

	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "ghost").
		Return(models.Account{}, store.ErrAccountNotFound)
	mockRepo.EXPECT().IsRetryable(gomock.Any()).Return(false).AnyTimes()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/login/user-login", strings.NewReader(loginBody("ghost", "whatever")))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var loginErr models.LoginError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &loginErr))
	assert.Equal(t, 10001, loginErr.ErrorCode)
}

func TestPipeline_TamperedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _, _ := newPipeline(t, ctrl, time.Hour)
	router := handler.Init()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	request.Header.Set("token", "BABY_SSO_JWTtampered.token.signature")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestPipeline_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, mockRepo, _ := newPipeline(t, ctrl, time.Millisecond)
	router := handler.Init()

	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "alice").
		Return(models.Account{
			Account:  "alice",
			Password: utils.SHA256Hex("secret"),
			Status:   models.AccountStatusActive,
		}, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/login/user-login", strings.NewReader(loginBody("alice", "secret")))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	time.Sleep(20 * time.Millisecond)

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	request.Header.Set("token", response.Token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestPipeline_ReplayedBodyReachesUpstreamIntact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _, mockUpstream := newPipeline(t, ctrl, time.Hour)
	router := handler.Init()

	payload := `{"item":42}`

	// тело, буферизованное конвейером, доезжает до апстрима без изменений
	// при каждом повторе; путь покрыт белым списком
	mockUpstream.EXPECT().
		Forward(gomock.Any(), gomock.Any(), gomock.Any(), []byte(payload)).
		DoAndReturn(func(_ context.Context, w http.ResponseWriter, _ *http.Request, _ []byte) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}).
		Times(3)

	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/svc/login/user-login/echo", strings.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

func TestPipeline_HealthIsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _, _ := newPipeline(t, ctrl, time.Hour)
	router := handler.Init()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

func TestCheckHTTPMethod_WrongMethodHidesRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _, _ := newPipeline(t, ctrl, time.Hour)
	router := handler.Init()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodDelete, "/api/v1/login/user-login", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
