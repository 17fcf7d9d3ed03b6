// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// StructuredConfig is the top-level configuration container for the gateway.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, an optional JSON file,
// and built-in defaults (in that order of precedence).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the token signing key,
	// the wire token prefix, token lifetime, and the application version.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the account persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Gateway holds the authentication pipeline settings: access rules,
	// credential names, the verification strategy, upstream routes, and
	// persistence lookup bounds.
	Gateway Gateway `envPrefix:"GATEWAY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// lifecycle and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify session tokens
	// with HMAC-SHA256. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenPrefix is the fixed textual marker prepended to every issued
	// token. It namespaces gateway tokens on the wire; a token without it
	// is rejected as malformed. Part of the wire contract with existing
	// clients.
	// Env: APP_TOKEN_PREFIX
	TokenPrefix string `env:"TOKEN_PREFIX"`

	// TokenDuration specifies how long a session token remains valid after
	// issuance (e.g. "1h", "30m"). Zero means tokens never expire.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /health endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the total processing time of a single request,
	// including the upstream round trip.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the account persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the relational database connection settings.
type DB struct {
	// Driver selects the database/sql driver: "pgx" (PostgreSQL) or
	// "sqlite3" (local/dev runs).
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name passed to sql.Open.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Gateway holds the settings of the authentication pipeline.
type Gateway struct {
	// Blacklist is the ordered list of block-rule path fragments. A request
	// whose path contains any of them is always subject to authentication,
	// even if an allow rule also matches.
	// Env: GATEWAY_BLACKLIST (comma-separated)
	Blacklist []string `env:"BLACKLIST" envSeparator:","`

	// Whitelist is the ordered list of allow-rule path fragments. A request
	// whose path contains one of them (and no block rule) skips
	// authentication.
	// Env: GATEWAY_WHITELIST (comma-separated)
	Whitelist []string `env:"WHITELIST" envSeparator:","`

	// TokenHeader is the designated bearer-credential name, used identically
	// for the header and the cookie lookup.
	// Env: GATEWAY_TOKEN_HEADER
	TokenHeader string `env:"TOKEN_HEADER"`

	// DebugHeader names the header whose mere presence skips authentication
	// when DebugBypass is enabled. A testing aid, not a security boundary.
	// Env: GATEWAY_DEBUG_HEADER
	DebugHeader string `env:"DEBUG_HEADER"`

	// DebugBypass enables the debug header escape hatch. Must stay off in
	// production deployments.
	// Env: GATEWAY_DEBUG_BYPASS
	DebugBypass bool `env:"DEBUG_BYPASS"`

	// Strategy is the symbolic name of the token verification strategy the
	// pipeline resolves at startup. An unknown name aborts process start.
	// Env: GATEWAY_STRATEGY
	Strategy string `env:"STRATEGY"`

	// LoginPath is the path of the login endpoint served by the gateway
	// itself; every other authenticated path is proxied upstream.
	// Env: GATEWAY_LOGIN_PATH
	LoginPath string `env:"LOGIN_PATH"`

	// LookupTimeout bounds a single account lookup against the persistence
	// collaborator.
	// Env: GATEWAY_LOOKUP_TIMEOUT
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT"`

	// LookupRetries is the maximum number of attempts for a transient
	// persistence failure before the lookup is treated as a miss.
	// Env: GATEWAY_LOOKUP_RETRIES
	LookupRetries int `env:"LOOKUP_RETRIES"`

	// Routes is the upstream route table: the longest matching prefix wins.
	// Env: GATEWAY_ROUTES (comma-separated "prefix=target" pairs)
	Routes []Route `env:"ROUTES" envSeparator:","`
}

// Route maps a request path prefix to an upstream base URL.
type Route struct {
	// Prefix is the request path prefix this route matches.
	Prefix string `json:"prefix"`

	// Target is the upstream base URL requests are forwarded to.
	Target string `json:"target"`
}

// UnmarshalText parses a route from its compact "prefix=target" form, which
// is the representation used in the GATEWAY_ROUTES environment variable and
// the -route flag.
func (r *Route) UnmarshalText(text []byte) error {
	prefix, target, found := strings.Cut(string(text), "=")
	if !found || prefix == "" || target == "" {
		return fmt.Errorf("route %q: want `prefix=target`", string(text))
	}

	r.Prefix = prefix
	r.Target = target
	return nil
}

// GetStructuredConfig loads and merges the gateway configuration from all
// sources. Precedence, highest first: environment variables, command-line
// flags, the optional JSON file, built-in defaults.
//
// Returns an error if any source fails to parse or the merged configuration
// fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaultConfig returns the built-in defaults merged in last, so they only
// fill fields no other source set. The token prefix, sign key, credential
// names, and the login whitelist entry are wire-contract values inherited
// from the existing deployment.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey: "BABY_SSO_JWT_PWD",
			TokenPrefix:  "BABY_SSO_JWT",
		},
		Server: Server{
			HTTPAddress:    ":8080",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			DB: DB{
				Driver: "pgx",
			},
		},
		Gateway: Gateway{
			Whitelist:     []string{"/login/user-login", "/health"},
			TokenHeader:   "token",
			DebugHeader:   "print",
			Strategy:      "normal",
			LoginPath:     "/api/v1/login/user-login",
			LookupTimeout: 3 * time.Second,
			LookupRetries: 3,
		},
	}
}

// validate checks the merged configuration for values the gateway cannot
// start without.
func (c *StructuredConfig) validate() error {
	var errs []error

	if c.App.TokenSignKey == "" {
		errs = append(errs, errNoTokenSignKey)
	}
	if c.App.TokenPrefix == "" {
		errs = append(errs, errNoTokenPrefix)
	}
	if c.Server.HTTPAddress == "" {
		errs = append(errs, errNoHTTPAddress)
	}
	if c.Storage.DB.DSN == "" {
		errs = append(errs, errNoDatabaseDSN)
	}
	switch c.Storage.DB.Driver {
	case "pgx", "sqlite3":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", errUnknownDBDriver, c.Storage.DB.Driver))
	}
	if c.Gateway.LookupRetries < 1 {
		errs = append(errs, errBadLookupRetries)
	}

	return errors.Join(errs...)
}
