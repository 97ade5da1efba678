package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hdbmap/geoquery/v1/recordsource"
	"github.com/hdbmap/geoquery/v1/resale"
)

// Service is the resale surface served over HTTP.
type Service interface {
	GetRecord(ctx context.Context, id string) (recordsource.Document, error)
	GetRecords(ctx context.Context, req resale.Request) (recordsource.ResultSet, error)
	GetRecordsAveragePrice(ctx context.Context, req resale.Request) ([]resale.BucketAggregate, error)
	GetLatestPostals(ctx context.Context) (recordsource.ResultSet, error)
	GetListing(ctx context.Context, id string) (recordsource.Document, error)
	GetListings(ctx context.Context, req resale.Request) (recordsource.ResultSet, error)
	GetDistinctTowns(ctx context.Context) ([]string, error)
	GetDistinctFlatTypes(ctx context.Context) ([]string, error)
	GetFilterOptions(ctx context.Context) (resale.FilterOptions, error)
}

var _ Service = (*resale.Service)(nil)

// Metrics records request outcomes.
type Metrics interface {
	IncrementRequests(status string)
	RecordRequestDuration(start time.Time, endpoint string)
	IncrementCompileErrors(kind string)
}

// Propagator extracts the caller's trace context from request headers.
type Propagator interface {
	ExtractHTTP(ctx context.Context, header http.Header) context.Context
}

// HealthChecker reports whether the record source is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Logger is the logging surface used by Server.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Server routes HTTP requests to a Service.
type Server struct {
	cfg        Config
	service    Service
	logger     Logger
	metrics    Metrics
	propagator Propagator
	health     HealthChecker
	router     *mux.Router
	server     *http.Server
}

// Option configures optional collaborators of a Server.
type Option func(*Server)

// WithMetrics records every request on m.
func WithMetrics(m Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithPropagator continues traces started by callers.
func WithPropagator(p Propagator) Option {
	return func(s *Server) { s.propagator = p }
}

// WithHealthChecker makes /healthz probe h.
func WithHealthChecker(h HealthChecker) Option {
	return func(s *Server) { s.health = h }
}

// NewServer builds the router. Call Start to listen.
func NewServer(cfg Config, service Service, log Logger, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
		logger:  log,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = mux.NewRouter()
	s.routes()
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}

	s.logger.Info("Starting HTTP API", nil, map[string]interface{}{"address": listener.Addr().String()})
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP API stopped unexpectedly", err, nil)
		}
	}()
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	s.router.Use(s.instrument)

	v1 := s.router.PathPrefix("/v1").Subrouter()
	v1.Handle("/records/search", s.handle(s.searchRecords)).Methods(http.MethodPost)
	v1.Handle("/records/average-price", s.handle(s.averagePrice)).Methods(http.MethodPost)
	v1.Handle("/records/latest-postals", s.handle(s.latestPostals)).Methods(http.MethodGet)
	v1.Handle("/records/{id}", s.handle(s.getRecord)).Methods(http.MethodGet)
	v1.Handle("/listings/search", s.handle(s.searchListings)).Methods(http.MethodPost)
	v1.Handle("/listings/{id}", s.handle(s.getListing)).Methods(http.MethodGet)
	v1.Handle("/options", s.handle(s.filterOptions)).Methods(http.MethodGet)
	v1.Handle("/options/towns", s.handle(s.towns)).Methods(http.MethodGet)
	v1.Handle("/options/flat-types", s.handle(s.flatTypes)).Methods(http.MethodGet)

	s.router.Handle("/healthz", s.handle(s.healthz)).Methods(http.MethodGet)
}

// statusRecorder captures the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument continues the caller's trace and records request metrics.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if s.propagator != nil {
			r = r.WithContext(s.propagator.ExtractHTTP(r.Context(), r.Header))
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if s.metrics == nil {
			return
		}
		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tmpl
			}
		}
		s.metrics.IncrementRequests(strconv.Itoa(rec.status))
		s.metrics.RecordRequestDuration(start, endpoint)
	})
}

// handlerFunc returns the response body or an error.
type handlerFunc func(r *http.Request) (interface{}, error)

func (s *Server) handle(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
			defer cancel()
		}

		body, err := h(r.WithContext(ctx))
		if err != nil {
			s.writeError(ctx, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, body)
	})
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	fields := map[string]interface{}{"path": r.URL.Path, "status": status}

	if kind := compileErrorKind(err); kind != "" && s.metrics != nil {
		s.metrics.IncrementCompileErrors(kind)
	}
	if status >= http.StatusInternalServerError {
		s.logger.ErrorWithContext(ctx, "Request failed", err, fields)
	} else {
		s.logger.WarnWithContext(ctx, "Request rejected", err, fields)
	}
	writeJSON(w, status, newErrorResponse(err, status))
}
