// Package server assembles the HTTP surface of the notes service.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"notekeeper/internal/config"
	"notekeeper/internal/metrics"
	"notekeeper/internal/notes"
)

// Router wires handlers and middleware into a single http.Handler.
type Router struct {
	notes   *notes.Handler
	mcp     http.Handler
	metrics *metrics.Collector
	cors    config.CORSConfig
	logger  *zap.Logger
}

// NewRouter creates a router. mcp may be nil to leave the MCP endpoint off.
func NewRouter(
	notesHandler *notes.Handler,
	mcp http.Handler,
	collector *metrics.Collector,
	corsCfg config.CORSConfig,
	logger *zap.Logger,
) *Router {
	return &Router{
		notes:   notesHandler,
		mcp:     mcp,
		metrics: collector,
		cors:    corsCfg,
		logger:  logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(rt.logger))
	router.Use(rt.metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cors.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/healthz", healthCheck)
	router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	rt.notes.Routes(router)

	if rt.mcp != nil {
		// POST carries requests, GET opens the SSE stream, DELETE ends a session.
		router.Method(http.MethodPost, "/mcp", rt.mcp)
		router.Method(http.MethodGet, "/mcp", rt.mcp)
		router.Method(http.MethodDelete, "/mcp", rt.mcp)
	}

	return router
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
