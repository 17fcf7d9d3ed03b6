package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/auth-gateway/internal/adapter"
	"github.com/MKhiriev/auth-gateway/internal/logger"
)

// proxy forwards a request that cleared the gate to its upstream service,
// replaying the buffered body if one was captured.
func (h *Handler) proxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, _ := bodyFromContext(ctx)

	err := h.upstream.Forward(ctx, w, r, body.Bytes())
	if err != nil {
		switch {
		case errors.Is(err, adapter.ErrNoRouteMatched):
			log.Info().Str("path", r.URL.Path).Msg("no upstream route for path")
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		default:
			log.Err(err).Str("path", r.URL.Path).Msg("forwarding failed")
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		}
	}
}
