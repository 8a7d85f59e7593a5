// Package api exposes the analyzers over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/IshaanNene/ShopScope/internal/config"
	"github.com/IshaanNene/ShopScope/internal/dashboard"
	"github.com/IshaanNene/ShopScope/internal/report"
	"github.com/IshaanNene/ShopScope/internal/types"
	"github.com/IshaanNene/ShopScope/pkg/shopscope"
)

// Server provides a REST API for running analyzers against a URL.
type Server struct {
	cfg    *config.Config
	client *shopscope.Client
	router chi.Router
	logger *slog.Logger
}

// AnalyzerInfo describes one registered analyzer.
type AnalyzerInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// NewServer creates a new API server around client.
func NewServer(client *shopscope.Client, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    client.Config(),
		client: client,
		logger: logger.With("component", "api_server"),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server starting", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard/", http.StatusFound)
	})
	r.Mount("/dashboard", dashboard.NewDashboard(s.client.Analyzers(), s.client.Metrics(), config.Version, s.logger).Routes())
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.client.Metrics())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/analyzers", s.handleListAnalyzers)
		r.Get("/analyze", s.handleAnalyze)
	})

	return r
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}

func (s *Server) handleListAnalyzers(w http.ResponseWriter, r *http.Request) {
	list := s.client.Analyzers()
	infos := make([]AnalyzerInfo, len(list))
	for i, a := range list {
		infos[i] = AnalyzerInfo{Name: a.Name(), Title: a.Title()}
	}
	s.respondJSON(w, http.StatusOK, infos)
}

// handleAnalyze fetches ?url= and runs ?analyzer= on it. ?format= selects
// a report format other than JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := q.Get("url")
	if target == "" {
		s.respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	name := q.Get("analyzer")
	if name == "" {
		name = s.cfg.Analysis.Default
	}

	a, err := s.client.Registry().Get(name)
	if err != nil {
		s.client.Metrics().InvalidSelected.Add(1)
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.client.Fetch(r.Context(), target)
	if err != nil {
		var fe *types.FetchError
		if errors.As(err, &fe) {
			s.respondError(w, http.StatusBadGateway, fe.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	page.ID = middleware.GetReqID(r.Context())

	results, err := s.client.Run(r.Context(), page, a.Name())
	if err != nil {
		s.logger.Error("analysis failed", "analyzer", a.Name(), "url", target, "error", err)
		s.respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	result := results[0]

	status := http.StatusOK
	if result.NoData {
		status = http.StatusNotFound
	}
	s.respondResult(w, status, q.Get("format"), result)
}

func (s *Server) respondResult(w http.ResponseWriter, status int, format string, result *report.Result) {
	if format == "" || format == "json" {
		s.respondJSON(w, status, result)
		return
	}

	contentType, ok := contentTypes[format]
	if !ok {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}
	writer, err := report.NewWriter(format, w)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := writer.Write(result); err != nil {
		s.logger.Error("failed to write report", "format", format, "error", err)
	}
}

var contentTypes = map[string]string{
	"text":     "text/plain; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
	"jsonl":    "application/x-ndjson",
	"yaml":     "application/yaml",
	"csv":      "text/csv; charset=utf-8",
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
