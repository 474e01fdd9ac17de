package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hf-council/internal/handlers"
	"hf-council/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	CouncilService service.CouncilService
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.CouncilService)
	councilHandler := handlers.NewCouncilHandler(deps.CouncilService)
	runsHandler := handlers.NewRunsHandler(deps.CouncilService)
	healthHandler := handlers.NewHealthHandler(deps.CouncilService)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodPost, "/council", councilHandler)
		r.Get("/runs", runsHandler.List)
		r.Get("/runs/{id}", runsHandler.Get)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	r.Get("/runs/{id}", runsHandler.Page)

	return r
}
