package httpserver

import (
	"net/http"

	"visitscribe/internal/auth"
	"visitscribe/internal/middleware"
	"visitscribe/internal/summary"

	"log/slog"

	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Logger   *slog.Logger
	Verifier auth.Verifier
	Summary  *summary.Service
}

// NewRouter assembles the chi router with the shared middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	handler := NewSummaryHandler(deps.Summary, deps.Logger)
	r.With(RequireAuth(deps.Verifier, deps.Logger)).Post("/api", handler.ServeHTTP)

	return r
}
