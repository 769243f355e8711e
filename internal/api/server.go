package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/limitlesscruises/portguide/internal/config"
	"github.com/limitlesscruises/portguide/internal/parser"
	"github.com/limitlesscruises/portguide/internal/portguide"
	"github.com/limitlesscruises/portguide/internal/store"
)

// Server is the HTTP API for the port guide admin dashboard.
type Server struct {
	router chi.Router
	store  store.Store
	log    *slog.Logger
	cfg    config.Config

	parseOpts parser.Options
	parse     func(doc string, opts parser.Options) *portguide.PortGuide
}

// NewServer creates and configures the HTTP server.
func NewServer(st store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:     st,
		log:       log,
		cfg:       cfg,
		parseOpts: parser.Options{SiteName: cfg.SiteName},
		parse:     parser.Parse,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.AdminAPIKey, s.log))

		r.Post("/api/ports/upload", s.handleUpload)
		r.Get("/api/ports", s.handleListPorts)
		r.Get("/api/ports/{slug}", s.handleGetPort)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
