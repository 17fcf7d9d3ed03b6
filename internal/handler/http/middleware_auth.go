package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/utils"
)

// authGate is the authentication gate of the pipeline.
//
// It runs on every request, in order:
//  1. Debug bypass: when enabled in configuration and the debug header is
//     present, the request passes through unauthenticated.
//  2. Access rules: paths the rule set marks as open pass through.
//  3. Credential extraction: the token header is consulted first; if it is
//     empty, cookies are scanned case-insensitively for the same name and
//     the first match is copied into the header for upstream consumers.
//  4. Verification: the resolved strategy validates the credential; on
//     success the authenticated account is stored in the request context
//     under [utils.AccountCtxKey].
//
// Every rejection is HTTP 401 with an opaque body; the concrete reason is
// logged, never revealed to the caller.
func (h *Handler) authGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if h.cfg.DebugBypass && r.Header.Get(h.cfg.DebugHeader) != "" {
			log.Warn().Str("path", r.URL.Path).Msg("debug bypass engaged")
			next.ServeHTTP(w, r)
			return
		}

		if !h.rules.ShouldAuthenticate(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		credential := h.extractCredential(r)
		if credential == "" {
			log.Err(ErrNoCredential).Str("path", r.URL.Path).Send()
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		token, err := h.verifier.Verify(r.Context(), credential)
		if err != nil {
			log.Err(err).Str("path", r.URL.Path).Msg("credential verification failed")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		account, err := token.GetAccount()
		if err != nil {
			log.Err(err).Str("path", r.URL.Path).Msg("verified token carries no account")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// downstream handlers and upstream services get the account without
		// re-parsing the token
		ctx := context.WithValue(r.Context(), utils.AccountCtxKey, account)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractCredential returns the bearer credential for r.
//
// The configured token header wins; cookies are a fallback, matched by name
// case-insensitively. Exactly one cookie may match: two or more same-named
// cookies are ambiguous and count as no credential. A cookie hit is mirrored
// into the header so that one place carries the credential from here on.
func (h *Handler) extractCredential(r *http.Request) string {
	if credential := r.Header.Get(h.cfg.TokenHeader); credential != "" {
		return credential
	}

	var match *http.Cookie
	for _, cookie := range r.Cookies() {
		if strings.EqualFold(cookie.Name, h.cfg.TokenHeader) && cookie.Value != "" {
			if match != nil {
				return ""
			}
			match = cookie
		}
	}
	if match == nil {
		return ""
	}

	r.Header.Set(h.cfg.TokenHeader, match.Value)
	return match.Value
}
