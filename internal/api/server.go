package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/config"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/pipeline"
	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/version"
)

// Server is the HTTP API for the extractor service.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
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

	r.Group(func(r chi.Router) {
		// Bearer auth guards the API only when a key is configured.
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/extract/batch", s.handleExtractBatch)
		r.Get("/api/extract/{jobID}", s.handleJobStatus)
		r.Get("/api/extract/{jobID}/records", s.handleJobRecords)
		r.Get("/api/extract/{jobID}/download", s.handleJobDownload)
		r.Get("/api/jobs", s.handleListJobs)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}
