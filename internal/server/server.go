// Package server exposes the planner over HTTP: the JSON API, the
// server-rendered build pages, and the WebSocket planner sessions. The
// server is stateless across requests — the share token in the URL is the
// only place a build lives.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lumina-tools/planner/internal/catalog"
	"github.com/lumina-tools/planner/internal/render"
)

// Config holds server configuration.
type Config struct {
	Port int
	// BaseURL is the externally visible root the share URLs are built
	// against, e.g. "https://planner.example.com".
	BaseURL string
	// AllowAll allows all CORS origins (dev mode).
	AllowAll bool
	// DefaultSummary controls which view a bare build link opens with.
	DefaultSummary bool
}

// Server serves the planner API and pages for one catalog.
type Server struct {
	cfg        Config
	cat        *catalog.Catalog
	renderer   *render.Renderer
	base       *url.URL
	router     chi.Router
	httpServer *http.Server
}

// New creates a planner server over the given catalog.
func New(cfg Config, cat *catalog.Catalog) (*Server, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	renderer, err := render.New(cat)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		cat:      cat,
		renderer: renderer,
		base:     base,
	}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// JSON API
	r.Get("/api/catalog", s.handleCatalog)
	r.Get("/api/build/{token}", s.handleGetBuild)
	r.Post("/api/build", s.handlePostBuild)

	// Pages
	r.Get("/", s.handlePage)
	r.Get("/b/{token}", s.handlePage)
	r.Post("/apply", s.handleApplyForm)

	// Live planner sessions
	r.Get("/ws", s.handleSession)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Catalog returns the catalog the server was built over.
func (s *Server) Catalog() *catalog.Catalog { return s.cat }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("planner listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
