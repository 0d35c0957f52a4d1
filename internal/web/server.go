// Package web serves the lead list over HTTP.
//
// The JSON API under /api is the boundary to the browser UI: list views,
// lead mutations, CSV import and export, and places admission. Requests
// that carry HX-Request get HTML fragments instead of JSON for the
// import summary and error alerts.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/JonMunkholm/leadlist/internal/config"
	"github.com/JonMunkholm/leadlist/internal/importer"
	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/places"
	mw "github.com/JonMunkholm/leadlist/internal/web/middleware"
)

// Dependencies are the collaborators a Server routes requests to.
type Dependencies struct {
	Store    *lead.Store
	Importer *importer.Importer
	Imports  *importer.Limiter
	Admitter *places.Admitter
	Search   *places.Service
	Usage    *places.Meter
}

// Server is the HTTP server for the lead list.
type Server struct {
	cfg *config.Config
	Dependencies

	router *chi.Mux
	server *http.Server
	now    func() time.Time
}

// NewServer creates a Server and wires its routes.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	s := &Server{
		cfg:          cfg,
		Dependencies: deps,
		router:       chi.NewRouter(),
		now:          time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if len(s.cfg.Security.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Security.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-Key", "HX-Request", "HX-Target"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if s.cfg.Rate.Enabled {
		limiter := mw.NewIPRateLimiter(s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.Burst)
		s.router.Use(limiter.Middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))
		r.Use(requestMetadata)

		r.Get("/leads", s.handleListLeads)
		r.Post("/leads", s.handleCreateLead)
		r.Get("/leads/groups/recency", s.handleGroupByRecency)
		r.Get("/leads/groups/industry", s.handleGroupByIndustry)
		r.Get("/leads/{id}", s.handleGetLead)
		r.Patch("/leads/{id}", s.handleUpdateLead)
		r.Delete("/leads/{id}", s.handleDeleteLead)

		r.Get("/stats", s.handleStats)
		r.Get("/industries", s.handleIndustries)
		r.Get("/export", s.handleExport)

		r.Group(func(r chi.Router) {
			if s.cfg.Rate.Enabled {
				r.Use(mw.NewIPRateLimiter(s.cfg.Rate.ImportPerMinute, s.cfg.Rate.ImportPerMinute).Middleware)
			}
			r.Post("/import", s.handleImport)
			r.Post("/import/preview", s.handlePreview)
		})

		r.Post("/places/search", s.handlePlacesSearch)
		r.Post("/places/admit", s.handlePlacesAdmit)
		r.Get("/places/usage", s.handlePlacesUsage)
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests. It blocks until the server
// stops and returns http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				h.Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are only logged since the header is already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"leads":  s.Store.Len(),
	})
}
