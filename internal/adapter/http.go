package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/auth-gateway/internal/config"
	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/utils"
	"github.com/go-resty/resty/v2"
)

// hop-by-hop headers are meaningful only for a single transport link and
// must not be copied in either direction.
var hopByHopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

type httpUpstream struct {
	client *utils.HTTPClient

	// routes is sorted by prefix length, longest first, so the first
	// matching entry wins.
	routes []config.Route

	logger *logger.Logger
}

// NewHTTPUpstream constructs an HTTP implementation of [Upstream] from the
// gateway route table. Route targets are normalised and validated; requests
// are bounded by timeout.
//
// Returns an error if any route target is empty or cannot be parsed as a
// valid URL.
func NewHTTPUpstream(cfg config.Gateway, timeout time.Duration, logger *logger.Logger) (Upstream, error) {
	routes := make([]config.Route, 0, len(cfg.Routes))
	for _, route := range cfg.Routes {
		target, err := normalizeBaseURL(route.Target)
		if err != nil {
			return nil, fmt.Errorf("invalid target for route %q: %w", route.Prefix, err)
		}
		routes = append(routes, config.Route{Prefix: route.Prefix, Target: target})
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return len(routes[i].Prefix) > len(routes[j].Prefix)
	})

	client := utils.NewHTTPClient()
	client.SetTimeout(timeout)

	return &httpUpstream{client: client, routes: routes, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// resolve returns the target for the longest route prefix covering path.
func (u *httpUpstream) resolve(path string) (config.Route, bool) {
	for _, route := range u.routes {
		if strings.HasPrefix(path, route.Prefix) {
			return route, true
		}
	}
	return config.Route{}, false
}

// Forward implements [Upstream].
func (u *httpUpstream) Forward(ctx context.Context, w http.ResponseWriter, r *http.Request, body []byte) error {
	log := logger.FromContext(ctx)

	route, ok := u.resolve(r.URL.Path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoRouteMatched, r.URL.Path)
	}

	target := route.Target + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	request := u.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)
	if len(body) > 0 {
		request.SetBody(bytes.NewReader(body))
	}
	for name, values := range r.Header {
		if _, skip := hopByHopHeaders[http.CanonicalHeaderKey(name)]; skip {
			continue
		}
		request.Header[name] = append([]string(nil), values...)
	}

	response, err := request.Execute(r.Method, target)
	if err != nil {
		log.Err(err).Str("target", target).Msg("forwarding to upstream failed")
		return fmt.Errorf("%w: %s", ErrUpstreamUnreachable, route.Target)
	}

	return copyResponse(w, response)
}

// copyResponse writes the upstream status, headers and body onto w.
func copyResponse(w http.ResponseWriter, response *resty.Response) error {
	defer func() { _ = response.RawBody().Close() }()

	for name, values := range response.RawResponse.Header {
		if _, skip := hopByHopHeaders[http.CanonicalHeaderKey(name)]; skip {
			continue
		}
		w.Header()[name] = append([]string(nil), values...)
	}
	w.WriteHeader(response.StatusCode())

	if _, err := io.Copy(w, response.RawBody()); err != nil {
		return fmt.Errorf("copy upstream response: %w", err)
	}

	return nil
}
