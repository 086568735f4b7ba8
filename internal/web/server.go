// Package web serves the wishlist console as server-rendered HTML. Every
// button posts the whole form to /{resource}/{action}; the response is the
// redrawn page.
package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-wishform/internal/metrics"
	"github.com/goliatone/go-wishform/pkg/controller"
	"github.com/goliatone/go-wishform/pkg/logger"
	"github.com/goliatone/go-wishform/pkg/orchestrator"
	"github.com/goliatone/go-wishform/pkg/render"
	"github.com/goliatone/go-wishform/pkg/renderers/html"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-Id"

const rendererName = "html"

// Console is the orchestrator surface the handlers use.
type Console interface {
	Run(ctx context.Context, req orchestrator.Request) (orchestrator.Outcome, error)
	Render(ctx context.Context, rendererName string, opts render.RenderOptions) ([]byte, string, error)
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics counts console actions and mounts /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// WithRenderOptions sets the title and theme used for every page.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(s *Server) {
		s.renderOpts = opts
	}
}

// Server routes console requests to a Console.
type Server struct {
	console    Console
	log        logrus.FieldLogger
	metrics    *metrics.Metrics
	origins    []string
	renderOpts render.RenderOptions
	router     chi.Router
}

// New builds the router. The console must have an "html" renderer.
func New(console Console, options ...Option) *Server {
	s := &Server{
		console: console,
		log:     logger.Discard(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(html.AssetsFS())))
	r.Get("/", s.handlePage)
	r.Post("/{resource}/{action}", s.handleAction)
	return r
}

// Handler returns the router for use in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	output, contentType, err := s.console.Render(r.Context(), rendererName, s.renderOpts)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	write(w, http.StatusOK, contentType, output)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	resource := chi.URLParam(r, "resource")
	action := chi.URLParam(r, "action")

	values := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		values[name] = r.PostForm.Get(name)
	}

	outcome, err := s.console.Run(r.Context(), orchestrator.Request{
		Resource:      resource,
		Action:        action,
		Values:        values,
		Renderer:      rendererName,
		RenderOptions: s.renderOpts,
	})
	switch {
	case errors.Is(err, orchestrator.ErrUnknownResource), errors.Is(err, controller.ErrUnknownAction):
		s.fail(w, r, http.StatusNotFound, err)
		return
	case err != nil:
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	if s.metrics != nil && !errors.Is(outcome.ActionErr, controller.ErrSuperseded) {
		s.metrics.ObserveAction(resource, action, outcome.ActionErr)
	}
	write(w, http.StatusOK, outcome.ContentType, outcome.Output)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	requestLogger(r, s.log).WithError(err).WithField("status", status).Warn("console request failed")
	http.Error(w, http.StatusText(status)+": "+err.Error(), status)
}

func write(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

type ctxKey struct{}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestID returns the id assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestLogger(r *http.Request, log logrus.FieldLogger) logrus.FieldLogger {
	return log.WithFields(logrus.Fields{
		"request_id": RequestID(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		requestLogger(r, s.log).WithFields(logrus.Fields{
			"status":   ww.Status(),
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(started),
		}).Debug("request served")
	})
}
