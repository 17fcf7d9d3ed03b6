// Package config loads, merges, and validates the gateway configuration.
//
// Values come from four sources, merged in priority order: environment
// variables, command-line flags, an optional JSON configuration file, and
// built-in defaults. A later source only fills fields earlier sources left
// empty. Validation rejects configurations the gateway cannot start with.
package config
