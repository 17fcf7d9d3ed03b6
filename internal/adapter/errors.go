package adapter

import "errors"

var (
	// ErrNoRouteMatched reports that no route-table prefix covers the
	// requested path.
	ErrNoRouteMatched = errors.New("no upstream route matched")

	// ErrUpstreamUnreachable reports that the resolved upstream did not
	// produce a response.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
)
