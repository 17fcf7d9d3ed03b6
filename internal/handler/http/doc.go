// Package http implements the HTTP transport layer of the gateway.
//
// It exposes route wiring, request handlers, and middleware for the edge
// pipeline. Cross-cutting concerns such as request tracing, access logging,
// body buffering, and the authentication gate are handled in this package
// before requests are delegated to the service layer or forwarded upstream.
package http
