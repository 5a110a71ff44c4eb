package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/middleware"
)

// NewRouter mounts the API on a chi router. Every API route requires a caller
// principal; ws, when non-nil, is served at /ws without one.
func NewRouter(svc StreamService, logger *slog.Logger, ws http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.NewStructuredLogger(logger))
	r.Use(chimw.Recoverer)

	if ws != nil {
		r.Handle("/ws", ws)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Principal)
		api.HandlerFromMux(NewApiHandler(svc), r)
	})
	return r
}
