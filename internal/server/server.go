// Package server exposes the simulation pipeline over HTTP.
//
// Routes:
//
//	POST /v1/simulate  body: puzzle text, query: mode, comment_marker, refresh
//	POST /v1/parse     body: puzzle text, query: comment_marker, refresh
//	GET  /healthz
//	GET  /metrics      when a metrics handler is configured
//
// Coded errors are returned as JSON with the input location of the failure.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cratetower/pkg/buildinfo"
	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/observability"
	"github.com/matzehuels/cratetower/pkg/pipeline"
	"github.com/matzehuels/cratetower/pkg/report"
)

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/simulate", s.simulate)
		r.Post("/parse", s.parse)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe reports every request to the HTTP hooks, labelled by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", ww.Status(), "duration", time.Since(start))
	})
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

// runResponse is the body of a successful simulate or parse call.
type runResponse struct {
	RunID string `json:"run_id"`
	*report.Report
	Cached bool           `json:"cached"`
	Stats  pipeline.Stats `json:"stats"`
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, s.runner.Execute)
}

func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, s.runner.Inspect)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, exec func(context.Context, pipeline.Options) (*pipeline.Result, error)) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, errs.MaxInputSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				errs.New(errs.ErrCodeInvalidInput, "input exceeds %d bytes", errs.MaxInputSize))
			return
		}
		writeError(w, http.StatusBadRequest, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body"))
		return
	}

	q := r.URL.Query()
	refresh, _ := strconv.ParseBool(q.Get("refresh"))
	res, err := exec(r.Context(), pipeline.Options{
		Input:         body,
		Mode:          q.Get("mode"),
		CommentMarker: q.Get("comment_marker"),
		Refresh:       refresh,
	})
	if err != nil {
		s.logger.Warn("run failed", "path", r.URL.Path, "err", err)
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, runResponse{
		RunID:  res.RunID,
		Report: res.Report,
		Cached: res.CacheInfo.Hit,
		Stats:  res.Stats,
	})
}

// errorResponse is the body of a failed call.
type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
	Line    int       `json:"line,omitempty"`
	Index   int       `json:"index,omitempty"`
}

// statusFor maps an error code to an HTTP status. Input the pipeline could
// not parse or simulate is 422; bad request parameters are 400.
func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeMalformedDiagram, errs.ErrCodeMalformedInstruction, errs.ErrCodeZeroQuantity,
		errs.ErrCodeUnknownStack, errs.ErrCodeInsufficientItems:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidMode:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if resp.Code == "" {
		resp.Code = errs.ErrCodeInternal
		resp.Message = "internal error"
	}
	var e *errs.Error
	if errors.As(err, &e) {
		resp.Message = e.Message
		resp.Line, resp.Index = e.Line, e.Index
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
