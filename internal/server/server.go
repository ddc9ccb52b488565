// Package server exposes the analysis pipeline over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tripnotes/internal/metrics"
	"tripnotes/internal/models"
	"tripnotes/internal/service"
	"tripnotes/internal/store"
)

const shutdownTimeout = 10 * time.Second

// AnalyzeService runs the analysis pipeline for a set of URLs.
type AnalyzeService interface {
	Analyze(ctx context.Context, urls []string) (*models.AnalysisResult, error)
}

// SearchService answers similarity queries.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]models.ScoredDocument, error)
}

// Server serves the HTTP API.
type Server struct {
	addr     string
	analyzer AnalyzeService
	searcher SearchService
	metrics  *metrics.Collector
	logger   *slog.Logger
}

func New(addr string, analyzer AnalyzeService, searcher SearchService, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Server{
		addr:     addr,
		analyzer: analyzer,
		searcher: searcher,
		metrics:  collector,
		logger:   logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Post("/v1/analyze", s.handleAnalyze)
	r.Post("/v1/search", s.handleSearch)

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

type analyzeRequest struct {
	URLs []string `json:"urls"`
}

type analyzeResponse struct {
	FinalSummary          string             `json:"final_summary"`
	Videos                []models.VideoInfo `json:"video_infos"`
	Places                []models.PlaceInfo `json:"place_details"`
	ProcessingTimeSeconds float64            `json:"processing_time_seconds"`
	Report                string             `json:"report"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.URLs)
	if err != nil {
		if errors.Is(err, service.ErrURLCount) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("analyze failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		FinalSummary:          result.FinalSummary,
		Videos:                result.Videos,
		Places:                result.Places,
		ProcessingTimeSeconds: result.ProcessingTime.Seconds(),
		Report:                result.Report,
	})
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Results []models.ScoredDocument `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	docs, err := s.searcher.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuery):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, store.ErrStoreNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		default:
			s.logger.Error("search failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	if docs == nil {
		docs = []models.ScoredDocument{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: docs})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
