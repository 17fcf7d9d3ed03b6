// Package adapter provides the transport layer for forwarding authenticated
// requests to upstream services.
//
// The primary abstraction is [Upstream], which decouples the HTTP handlers
// from the proxying mechanics. The package ships an HTTP/REST implementation
// ([NewHTTPUpstream]) that resolves targets through a longest-prefix route
// table and replays the buffered request body downstream.
package adapter

import (
	"context"
	"net/http"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/upstream_mock.go -package=mock

// Upstream forwards a request that passed the authentication gate to the
// service that owns its path.
type Upstream interface {
	// Forward resolves the upstream target for r's path, replays the
	// buffered body downstream with r's method, headers and query intact,
	// and copies the upstream response (status, headers, body) onto w.
	//
	// Returns [ErrNoRouteMatched] if the route table has no prefix for the
	// path, or a wrapped [ErrUpstreamUnreachable] if the upstream cannot be
	// reached; nothing is written to w in either case.
	Forward(ctx context.Context, w http.ResponseWriter, r *http.Request, body []byte) error
}
