package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsync/pkg/formdef"
	"github.com/goliatone/go-formsync/pkg/location"
	"github.com/goliatone/go-formsync/pkg/page"
	"github.com/goliatone/go-formsync/pkg/syncer"
)

var errNilStore = errors.New("server: form store is nil")

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and sync logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer overrides the page renderer.
func WithRenderer(renderer *page.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithRedirect toggles redirecting to the canonical query. When disabled the
// form is rendered for any query.
func WithRedirect(enabled bool) Option {
	return func(s *Server) {
		s.redirect = enabled
	}
}

// Server is an http.Handler serving the forms in a store.
type Server struct {
	store    *formdef.Store
	renderer *page.Renderer
	syncer   *syncer.Syncer
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
	redirect bool
	router   chi.Router
}

// New builds a Server.
func New(store *formdef.Store, options ...Option) (*Server, error) {
	if store == nil {
		return nil, errNilStore
	}
	s := &Server{
		store:    store,
		logger:   zap.NewNop(),
		redirect: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderer == nil {
		renderer, err := page.New()
		if err != nil {
			return nil, err
		}
		s.renderer = renderer
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.logger = s.logger.Named("server")
	s.metrics = newMetrics(s.registry)
	s.syncer = syncer.New(syncer.WithLogger(s.logger))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.instrument)
	r.Get("/healthz", s.handleHealth)
	r.Get("/forms", s.handleList)
	r.Get("/forms/{id}", s.handleForm)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	ids := s.store.IDs()
	if ids == nil {
		ids = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]string{"forms": ids}); err != nil {
		s.logger.Error("encode form list", zap.Error(err))
	}
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	form, ok := s.store.Form(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	doc := syncer.NewMemoryDocument(form.Fields)
	loc, err := location.NewMemory(r.URL.RequestURI())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	applied, err := s.syncer.ApplyQuery(ctx, doc, loc)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.metrics.observeRejections(applied.Rejected)

	clamped, err := s.syncer.ClampDetailed(ctx, doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.metrics.clamped.Add(float64(len(clamped.Changes)))

	query, err := s.syncer.UpdateQuery(ctx, doc, loc)
	if err != nil {
		s.fail(w, err)
		return
	}

	if s.redirect && query != r.URL.RawQuery {
		http.Redirect(w, r, loc.URL(), http.StatusSeeOther)
		return
	}

	form.Fields, err = doc.Fields(ctx)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, page.Data{Form: form, Query: query}); err != nil {
		s.logger.Error("render form", zap.String("form", id), zap.Error(err))
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("sync form", zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
