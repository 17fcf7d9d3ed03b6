package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/mock"
	"github.com/MKhiriev/auth-gateway/internal/store"
	"github.com/MKhiriev/auth-gateway/internal/utils"
	"github.com/MKhiriev/auth-gateway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAuthSvc — хелпер для создания authService с моками
func newTestAuthSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*authService,
	*mock.MockAccountRepository,
	*mock.MockTokenService,
) {
	t.Helper()
	mockRepo := mock.NewMockAccountRepository(ctrl)
	mockTokens := mock.NewMockTokenService(ctrl)

	cfg := config.Gateway{
		LookupTimeout: 2 * time.Second,
		LookupRetries: 3,
	}

	svc := NewAuthService(mockRepo, mockTokens, cfg, logger.Nop()).(*authService)

	return svc, mockRepo, mockTokens
}

func activeAccount(identifier, plaintext string) models.Account {
	return models.Account{
		AccountID: 1,
		Account:   identifier,
		Name:      identifier,
		Password:  utils.SHA256Hex(plaintext),
		Status:    models.AccountStatusActive,
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockTokens := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "alice").
		Return(activeAccount("alice", "secret"), nil)

	// токен должен нести идентификатор и дайджест предъявленного секрета,
	// никогда сам секрет
	mockTokens.EXPECT().
		CreateToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, claims map[string]any) (models.Token, error) {
			assert.Equal(t, "alice", claims[models.ClaimAccount])
			assert.Equal(t, utils.SHA256Hex("secret"), claims[models.ClaimPassword])
			assert.NotContains(t, claims[models.ClaimPassword], "secret")
			return models.Token{SignedString: "signed"}, nil
		})

	token, err := svc.Login(ctx, models.LoginRequest{
		Account:  "alice",
		Password: utils.ObfuscatePassword("secret"),
	})

	require.NoError(t, err)
	assert.Equal(t, "signed", token.SignedString)
}

func TestAuthService_Login_UnknownAccount_ShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// ровно одно обращение к репозиторию: проверка пароля не должна
	// выполняться и не должна повторять поиск
	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "ghost").
		Return(models.Account{}, store.ErrAccountNotFound).
		Times(1)
	mockRepo.EXPECT().IsRetryable(gomock.Any()).Return(false).AnyTimes()

	_, err := svc.Login(ctx, models.LoginRequest{
		Account:  "ghost",
		Password: utils.ObfuscatePassword("whatever"),
	})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 10001, authErr.Code)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// поиск мемоизируется: оба звена цепочки используют один результат
	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "alice").
		Return(activeAccount("alice", "secret"), nil).
		Times(1)

	_, err := svc.Login(ctx, models.LoginRequest{
		Account:  "alice",
		Password: utils.ObfuscatePassword("not-the-secret"),
	})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 10002, authErr.Code)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	disabled := activeAccount("bob", "secret")
	disabled.Status = models.AccountStatusDisabled

	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "bob").
		Return(disabled, nil)

	_, err := svc.Login(ctx, models.LoginRequest{
		Account:  "bob",
		Password: utils.ObfuscatePassword("secret"),
	})

	// отключённый аккаунт неотличим от отсутствующего
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 10001, authErr.Code)
}

func TestAuthService_Login_UnparseablePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{
		Account:  "alice",
		Password: "not-base64-at-all!!!",
	})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 100098, authErr.Code)
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name    string
		request models.LoginRequest
	}{
		{name: "empty account", request: models.LoginRequest{Password: utils.ObfuscatePassword("x")}},
		{name: "empty password", request: models.LoginRequest{Account: "alice"}},
		{name: "both empty", request: models.LoginRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.request)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

// ── Lookup retries ───────────────────────────────────────────────────────────

func TestAuthService_Login_RetryableLookupFailure_Recovers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockTokens := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	transient := errors.New("connection reset")

	gomock.InOrder(
		mockRepo.EXPECT().
			FindAccountByIdentifier(gomock.Any(), "alice").
			Return(models.Account{}, transient),
		mockRepo.EXPECT().
			FindAccountByIdentifier(gomock.Any(), "alice").
			Return(activeAccount("alice", "secret"), nil),
	)
	mockRepo.EXPECT().IsRetryable(transient).Return(true)

	mockTokens.EXPECT().
		CreateToken(gomock.Any(), gomock.Any()).
		Return(models.Token{SignedString: "signed"}, nil)

	token, err := svc.Login(ctx, models.LoginRequest{
		Account:  "alice",
		Password: utils.ObfuscatePassword("secret"),
	})

	require.NoError(t, err)
	assert.Equal(t, "signed", token.SignedString)
}

func TestAuthService_Login_NonRetryableLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	fatal := errors.New("syntax error in query")

	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "alice").
		Return(models.Account{}, fatal).
		Times(1)
	mockRepo.EXPECT().IsRetryable(fatal).Return(false)

	_, err := svc.Login(ctx, models.LoginRequest{
		Account:  "alice",
		Password: utils.ObfuscatePassword("secret"),
	})

	// причина сбоя хранилища не должна просачиваться наружу
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 10001, authErr.Code)
	assert.NotContains(t, authErr.Message, "syntax")
}

func TestAuthService_Login_RetriesExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	transient := errors.New("connection reset")

	mockRepo.EXPECT().
		FindAccountByIdentifier(gomock.Any(), "alice").
		Return(models.Account{}, transient).
		Times(3)
	mockRepo.EXPECT().IsRetryable(transient).Return(true).Times(3)

	_, err := svc.Login(ctx, models.LoginRequest{
		Account:  "alice",
		Password: utils.ObfuscatePassword("secret"),
	})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 10001, authErr.Code)
}
