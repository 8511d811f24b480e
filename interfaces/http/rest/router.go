// Package rest serves the read-side clutch API over chi.
package rest

import (
	"net/http"

	"clutchdemo/interfaces/http/rest/handlers"
	"clutchdemo/interfaces/http/rest/middleware"
	pkgerrors "clutchdemo/pkg/errors"
	"clutchdemo/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	queries        handlers.ClutchQueries
	errorHandler   *pkgerrors.ErrorHandler
	allowedOrigins []string
	rateLimit      int
	logger         *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	queries handlers.ClutchQueries,
	errorHandler *pkgerrors.ErrorHandler,
	allowedOrigins []string,
	logger *zap.Logger,
) *Router {
	return &Router{
		queries:        queries,
		errorHandler:   errorHandler,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// WithRateLimit caps requests per client IP per minute. Zero turns the
// limit off.
func (rt *Router) WithRateLimit(perMinute int) *Router {
	rt.rateLimit = perMinute
	return rt
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.rateLimit > 0 {
		router.Use(middleware.RateLimit(ratelimit.NewIPRateLimiter(rt.rateLimit), rt.errorHandler, rt.logger))
	}

	// The demo frontend reads the API straight from the browser
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)

	router.Route("/clutches", func(r chi.Router) {
		clutchHandler := handlers.NewClutchHandler(rt.queries, rt.errorHandler, rt.logger)
		r.Get("/", clutchHandler.ListClutches)
		r.Get("/{clutchID}", clutchHandler.GetClutch)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.Handle(w, r, pkgerrors.NewNotFoundError("route "+r.URL.Path))
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
