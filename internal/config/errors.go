package config

import "errors"

// Validation errors reported by [StructuredConfig.validate]. Each one is a
// fatal configuration problem: the gateway refuses to start rather than run
// with a partial setup.
var (
	errNoTokenSignKey   = errors.New("token sign key is not set")
	errNoTokenPrefix    = errors.New("token prefix is not set")
	errNoHTTPAddress    = errors.New("HTTP server address is not set")
	errNoDatabaseDSN    = errors.New("database DSN is not set")
	errUnknownDBDriver  = errors.New("unknown database driver")
	errBadLookupRetries = errors.New("lookup retries must be at least 1")
)
