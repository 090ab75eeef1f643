package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/json-mapper/internal/audit"
	"github.com/ziadkadry99/json-mapper/internal/db"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
	"github.com/ziadkadry99/json-mapper/internal/transform"
)

// Config holds server configuration.
type Config struct {
	Port         int
	AllowAll     bool   // allow all CORS origins (dev mode)
	SavePath     string // revised mapping document written by save_mapping
	InputPath    string // source batch read by generate_output
	OutputPath   string // target batch written by generate_output
	ContainerKey string
}

// Server exposes the mapping store over HTTP.
type Server struct {
	cfg        Config
	db         *db.DB
	store      *mapping.Store
	audit      *audit.Store
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over store. When database is non-nil every
// mutation is written to its audit trail.
func New(cfg Config, database *db.DB, store *mapping.Store) *Server {
	s := &Server{
		cfg:   cfg,
		db:    database,
		store: store,
	}
	if database != nil {
		s.audit = audit.NewStore(database)
	}

	s.router = s.buildRouter()
	return s
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

	r.Get("/healthz", s.handleHealth)

	var recorder mapping.Recorder
	if s.audit != nil {
		recorder = s.audit
		audit.RegisterRoutes(r, s.audit)
	}
	mapping.RegisterRoutes(r, s.store, mapping.RouteOptions{
		SavePath: s.cfg.SavePath,
		Recorder: recorder,
	})
	transform.RegisterRoutes(r, s.store, transform.RouteOptions{
		InputPath:    s.cfg.InputPath,
		OutputPath:   s.cfg.OutputPath,
		ContainerKey: s.cfg.ContainerKey,
		Recorder:     recorder,
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"loaded": s.store.HasBaseline(),
	})
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Audit returns the audit store, or nil when the server runs without a database.
func (s *Server) Audit() *audit.Store { return s.audit }

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

	log.Printf("jsonmapper server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
