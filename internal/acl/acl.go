// Package acl implements the gateway's ordered black/white-list access
// rules. A rule set is built once at startup from one or more providers and
// is immutable afterwards, so it is safe for concurrent use without
// synchronization.
package acl

import "strings"

// Provider supplies block-list and allow-list path fragments to a rule set.
// Multiple providers may contribute rules; block rules from any provider take
// precedence over allow rules from every provider.
type Provider interface {
	// BlackList returns path fragments whose presence in a request path
	// forces authentication.
	BlackList() []string

	// WhiteList returns path fragments whose presence in a request path
	// skips authentication, unless a black-list fragment also matches.
	WhiteList() []string
}

// RuleSet is the compiled form of all providers' rules. It answers the
// single question of the access-control stage: does this path require
// authentication?
type RuleSet struct {
	block []string
	allow []string
}

// NewRuleSet compiles the rules of all given providers into an immutable
// RuleSet. Provider order is preserved within each polarity, though it does
// not affect the verdict: block rules win over allow rules regardless of
// declaration order.
func NewRuleSet(providers ...Provider) *RuleSet {
	rs := &RuleSet{}
	for _, p := range providers {
		rs.block = append(rs.block, p.BlackList()...)
		rs.allow = append(rs.allow, p.WhiteList()...)
	}

	return rs
}

// ShouldAuthenticate reports whether a request to path is subject to
// authentication.
//
// Evaluation order:
//  1. any block rule whose fragment is a substring of path → true;
//  2. otherwise any allow rule whose fragment is a substring of path → false;
//  3. otherwise → true.
func (rs *RuleSet) ShouldAuthenticate(path string) bool {
	for _, fragment := range rs.block {
		if strings.Contains(path, fragment) {
			return true
		}
	}

	for _, fragment := range rs.allow {
		if strings.Contains(path, fragment) {
			return false
		}
	}

	return true
}

// StaticProvider is a Provider over fixed rule lists, typically populated
// from configuration at startup.
type StaticProvider struct {
	Block []string
	Allow []string
}

// BlackList implements [Provider].
func (p StaticProvider) BlackList() []string { return p.Block }

// WhiteList implements [Provider].
func (p StaticProvider) WhiteList() []string { return p.Allow }
