package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/store"
	"github.com/MKhiriev/auth-gateway/internal/utils"
	"github.com/MKhiriev/auth-gateway/models"
	"github.com/sethvargo/go-retry"
)

// LoginAttempt carries the state of a single login request through the
// check chain. Every request gets its own attempt; nothing here is shared
// across requests.
//
// Chain nodes never rewrite the identifier or the secret; the only mutation
// they perform is attaching the memoized subject lookup result.
type LoginAttempt struct {
	// Account is the presented account identifier.
	Account string

	// password is the de-obfuscated presented secret. It stays unexported
	// so it cannot leak through reflection-based logging or serialization,
	// and it is never written to logs or storage.
	password string

	// subject memoizes the account lookup result for the remainder of this
	// attempt's chain traversal. nil after a memoized miss.
	subject *models.Account

	// subjectKnown reports whether the lookup already ran, so a miss is
	// memoized too and later nodes do not retry it.
	subjectKnown bool
}

// loginCheck is one node of the login check chain: a symbolic name used in
// logs plus a pure check function. A nil return means pass; a non-nil
// *AuthError aborts the chain.
type loginCheck struct {
	name  string
	check func(ctx context.Context, attempt *LoginAttempt) *AuthError
}

// authService is the concrete implementation of AuthService. It evaluates
// the ordered login check chain (account lookup, password comparison) and
// mints a session token via the TokenService when every check passes.
type authService struct {
	// accountRepository is the data-access layer used to look up accounts.
	accountRepository store.AccountRepository

	// tokenService mints the session token on chain success.
	tokenService TokenService

	// lookupTimeout bounds a single account lookup; lookupRetries bounds
	// how many times a transient lookup failure is retried.
	lookupTimeout time.Duration
	lookupRetries int

	// chain is the ordered list of login checks, fixed at construction.
	chain []loginCheck

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given
// AccountRepository and TokenService, with lookup bounds from cfg.
//
// The canonical chain has two nodes, evaluated in order:
//  1. "account"  — resolves the subject; missing or disabled accounts fail
//     with [ErrAccountNotFound];
//  2. "password" — compares the SHA-256 digest of the presented secret
//     byte-for-byte against the stored digest; mismatch fails with
//     [ErrPasswordMismatch].
//
// The returned service is safe for concurrent use; all state is read-only
// after construction and per-request state lives on the [LoginAttempt].
func NewAuthService(accountRepository store.AccountRepository, tokenService TokenService, cfg config.Gateway, logger *logger.Logger) AuthService {
	a := &authService{
		accountRepository: accountRepository,
		tokenService:      tokenService,
		lookupTimeout:     cfg.LookupTimeout,
		lookupRetries:     cfg.LookupRetries,
		logger:            logger,
	}

	a.chain = []loginCheck{
		{name: "account", check: a.accountCheck},
		{name: "password", check: a.passwordCheck},
	}

	return a
}

// Login authenticates a login request.
//
// It validates the request, de-obfuscates the presented secret, and drives
// the check chain: each node either passes (nil) or aborts the whole chain
// with its typed failure, and later nodes never run. Only when every node has
// passed is a token minted, carrying the account identifier and the digest
// derived from the presented secret.
//
// Returns the minted token or:
//   - ErrInvalidDataProvided if the account or password field is empty.
//   - ErrPasswordUnparseable if the obfuscated secret cannot be decoded.
//   - The *AuthError of the first failing chain node.
//   - A wrapped ErrTokenCreationFailed if signing fails.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if request.Account == "" || request.Password == "" {
		log.Error().Str("account", request.Account).Msg("invalid login data provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	plaintext, err := utils.DeobfuscatePassword(request.Password)
	if err != nil {
		log.Err(err).Str("account", request.Account).Msg("presented password could not be parsed")
		return models.Token{}, ErrPasswordUnparseable
	}

	attempt := &LoginAttempt{
		Account:  request.Account,
		password: plaintext,
	}

	for _, node := range a.chain {
		if failure := node.check(ctx, attempt); failure != nil {
			log.Info().
				Str("account", attempt.Account).
				Str("check", node.name).
				Int("code", failure.Code).
				Msg("login chain aborted")
			return models.Token{}, failure
		}
	}

	token, err := a.tokenService.CreateToken(ctx, map[string]any{
		models.ClaimAccount:  attempt.Account,
		models.ClaimPassword: utils.SHA256Hex(attempt.password),
	})
	if err != nil {
		log.Err(err).Str("account", attempt.Account).Msg("creation of token failed")
		return models.Token{}, err
	}

	return token, nil
}

// accountCheck resolves the subject for the attempt, memoizing the result.
//
// A lookup miss, a disabled account, and exhausted retries of a transient
// failure all fail the chain with [ErrAccountNotFound]; the underlying
// cause of an I/O failure is logged separately and never surfaces in the
// user-visible message.
func (a *authService) accountCheck(ctx context.Context, attempt *LoginAttempt) *AuthError {
	subject, err := a.subject(ctx, attempt)
	if err != nil {
		if !errors.Is(err, store.ErrAccountNotFound) {
			logger.FromContext(ctx).Err(err).Str("account", attempt.Account).Msg("account lookup failed")
		}
		return ErrAccountNotFound
	}

	if subject == nil || !subject.Active() {
		return ErrAccountNotFound
	}

	return nil
}

// passwordCheck recomputes the digest of the presented secret and compares
// it byte-for-byte against the subject's stored digest.
func (a *authService) passwordCheck(ctx context.Context, attempt *LoginAttempt) *AuthError {
	subject, err := a.subject(ctx, attempt)
	if err != nil || subject == nil {
		return ErrAccountNotFound
	}

	digest := utils.SHA256Hex(attempt.password)
	if !utils.DigestsEqual(digest, subject.Password) {
		return ErrPasswordMismatch
	}

	return nil
}

// subject returns the attempt's memoized subject, running the repository
// lookup at most once per attempt. The lookup is bounded by lookupTimeout
// and retried up to lookupRetries times for transient failures.
func (a *authService) subject(ctx context.Context, attempt *LoginAttempt) (*models.Account, error) {
	if attempt.subjectKnown {
		if attempt.subject == nil {
			return nil, store.ErrAccountNotFound
		}
		return attempt.subject, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()

	var found models.Account
	backoff := retry.WithMaxRetries(uint64(a.lookupRetries-1), retry.NewExponential(100*time.Millisecond))
	err := retry.Do(lookupCtx, backoff, func(ctx context.Context) error {
		account, lookupErr := a.accountRepository.FindAccountByIdentifier(ctx, attempt.Account)
		if lookupErr != nil {
			if a.accountRepository.IsRetryable(lookupErr) {
				return retry.RetryableError(lookupErr)
			}
			return lookupErr
		}

		found = account
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			// memoize the miss so later nodes do not repeat the lookup
			attempt.subjectKnown = true
			attempt.subject = nil
		}
		return nil, err
	}

	attempt.subjectKnown = true
	attempt.subject = &found

	return attempt.subject, nil
}
