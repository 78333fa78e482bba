package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// DefaultMaxBodyBytes caps the size of a posted machine definition.
const DefaultMaxBodyBytes = 1 << 20

// Engine defines what the HTTP server needs from the Turing engine.
type Engine interface {
	Parse(data []byte, format string) (*domain.Definition, error)
	Run(ctx context.Context, def *domain.Definition) (*domain.Run, error)
}

// Server exposes machine runs over a JSON API.
type Server struct {
	Engine  Engine
	Store   ports.RunStore
	Metrics http.Handler

	logger  *slog.Logger
	maxBody int64
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler serves h on /metrics instead of the default Prometheus registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// NewHandler creates a new HTTP handler for the engine. Runs are listed,
// fetched and deleted through store, which should be the one the engine saves to.
// A nil store disables those routes.
func NewHandler(engine Engine, store ports.RunStore, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Store:   store,
		Metrics: promhttp.Handler(),
		logger:  slog.Default(),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", s.Metrics)
	r.Post("/graph", s.RenderGraph)

	r.Route("/runs", func(r chi.Router) {
		r.Post("/", s.CreateRun)
		r.Get("/", s.ListRuns)
		r.Get("/{id}", s.GetRun)
		r.Get("/{id}/events", s.StreamRun)
		r.Delete("/{id}", s.DeleteRun)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string      `json:"error"`
	Hints []string    `json:"hints,omitempty"`
	Run   *RunSummary `json:"run,omitempty"`
}

// RunSummary is a run record without its trace.
type RunSummary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Status    domain.Status   `json:"status"`
	Steps     int             `json:"steps"`
	FinalTape string          `json:"final_tape"`
	Limited   bool            `json:"limited,omitempty"`
	Verdict   *domain.Verdict `json:"verdict,omitempty"`
}

func summarize(run *domain.Run) *RunSummary {
	return &RunSummary{
		ID:        run.ID,
		Name:      run.Name,
		CreatedAt: run.CreatedAt,
		Status:    run.Status,
		Steps:     run.Steps,
		FinalTape: run.FinalTape,
		Limited:   run.Limited,
		Verdict:   run.Verdict,
	}
}

// CreateRun handles POST /runs. The body is a machine definition in JSON, or
// YAML when the content type says so. The tape query parameter overrides the
// definition's tape.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	def, ok := s.readDefinition(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Has("tape") {
		def.SetTape(r.URL.Query().Get("tape"))
	}

	run, err := s.Engine.Run(r.Context(), def)
	if err != nil {
		var verr *dsl.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Hints: verr.Hints()})
		case errors.Is(err, domain.ErrStepLimitExceeded) && run != nil:
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Run: summarize(run)})
		default:
			s.logger.ErrorContext(r.Context(), "run failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	w.Header().Set("Location", "/runs/"+run.ID)
	writeJSON(w, http.StatusCreated, run)
}

// ListRuns handles GET /runs, oldest first.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list runs failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	runs := make([]*RunSummary, 0, len(ids))
	for _, id := range ids {
		run, err := s.Store.Load(r.Context(), id)
		if errors.Is(err, domain.ErrRunNotFound) {
			// Expired or deleted between List and Load.
			continue
		}
		if err != nil {
			s.logger.ErrorContext(r.Context(), "load run failed", "run_id", id, "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		runs = append(runs, summarize(run))
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// DeleteRun handles DELETE /runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.ErrorContext(r.Context(), "delete run failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StreamRun handles GET /runs/{id}/events: it replays a stored trace as
// Server-Sent Events, one "frame" event per snapshot and a closing "done".
// Query parameters: delay (a Go duration) and diff=true for diff frames.
func (s *Server) StreamRun(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "streaming not supported"})
		return
	}

	var delay time.Duration
	if raw := r.URL.Query().Get("delay"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid delay %q", raw)})
			return
		}
		delay = d
	}

	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	handler := &sseHandler{w: w, flusher: flusher, diffs: r.URL.Query().Get("diff") == "true"}
	player := runner.NewPlayer(handler, runner.WithDelay(delay), runner.WithLogger(s.logger))
	if err := player.Play(r.Context(), run.Trace); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.WarnContext(r.Context(), "SSE replay ended early", "run_id", run.ID, "err", err)
	}
}

// RenderGraph handles POST /graph: the body is a machine definition and the
// response its Mermaid state diagram. With run=<id>, the states that run
// visited are highlighted.
func (s *Server) RenderGraph(w http.ResponseWriter, r *http.Request) {
	def, ok := s.readDefinition(w, r)
	if !ok {
		return
	}

	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("run"); id != "" {
		if !s.requireStore(w) {
			return
		}
		run, err := s.Store.Load(r.Context(), id)
		if err != nil {
			s.writeLoadError(w, r, err)
			return
		}
		overlay = graph.OverlayFromTrace(run.Trace)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(def, overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
	})
}

func (s *Server) readDefinition(w http.ResponseWriter, r *http.Request) (*domain.Definition, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
		return nil, false
	}

	def, err := s.Engine.Parse(data, requestFormat(r))
	if err != nil {
		s.logger.WarnContext(r.Context(), "invalid machine definition", "err", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return def, true
}

// requestFormat picks the definition format from ?format= or the content type.
// JSON is the default.
func requestFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.Contains(mediaType, "yaml") {
		return compiler.FormatYAML
	}
	return compiler.FormatJSON
}

func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (*domain.Run, bool) {
	if !s.requireStore(w) {
		return nil, false
	}
	run, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeLoadError(w, r, err)
		return nil, false
	}
	return run, true
}

func (s *Server) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrRunNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	s.logger.ErrorContext(r.Context(), "load run failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "run storage is disabled"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
