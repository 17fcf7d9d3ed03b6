package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.cacheBody)

	// the gate runs on every request; the rule set decides per path whether
	// a credential is required
	router.Use(h.authGate)

	// routes owned by the gateway itself
	router.Post(h.cfg.LoginPath, h.login)
	router.Get("/health", h.health)

	// every path the router does not own is forwarded upstream
	router.NotFound(h.proxy)

	// an unsupported method on an owned route hides the route instead of
	// advertising it with a 405
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
