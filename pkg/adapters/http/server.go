// Package http exposes a running action graph over HTTP with chi.
//
// Every call that touches the runtime goes through the runner's Do (or Step
// for /tick), so requests never interleave with a frame.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/actiongraph"
	"github.com/aretw0/actiongraph/internal/logging"
	"github.com/aretw0/actiongraph/pkg/adapters/memory"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runtime is the part of *actiongraph.Runtime the server drives.
type Runtime interface {
	Invoke(nodeID, entry string) error
	Transition(state string) error
	CurrentState() string
	States() []string
	Read(nodeID, socket string) (any, error)
	Write(nodeID, socket string, value any) error
	ReadVariable(name string) (any, error)
	WriteVariable(name string, value any) error
	Inspect() []actiongraph.NodeInfo
	Links() []actiongraph.LinkInfo
	Variables() []actiongraph.VariableInfo
	Updating() []string
	Descriptors() []domain.Descriptor
	Snapshot() *domain.Snapshot
	Restore(snap *domain.Snapshot) error
}

// Loop serializes access to the runtime; *runner.Runner implements it.
type Loop interface {
	Do(fn func() error) error
	Step(elapsed time.Duration) int
}

// Server holds the handler dependencies.
type Server struct {
	runtime  Runtime
	loop     Loop
	store    ports.SnapshotStore
	streams  *StreamManager
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStore sets the snapshot store. Defaults to an in-memory store.
func WithStore(store ports.SnapshotStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithStreams enables GET /events, fed by the stream manager's hooks.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.streams = sm
	}
}

// WithMetrics serves GET /metrics from gatherer.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for rt, serialized through loop.
func NewHandler(rt Runtime, loop Loop, opts ...Option) http.Handler {
	s := &Server{
		runtime: rt,
		loop:    loop,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/catalog", s.getCatalog)
	r.Get("/catalog/{kind}", s.getKind)

	r.Get("/graph", s.getGraph)
	r.Get("/graph/mermaid", s.getMermaid)
	r.Post("/nodes/{id}/entries/{entry}", s.invoke)
	r.Get("/nodes/{id}/sockets/{socket}", s.readSocket)
	r.Put("/nodes/{id}/sockets/{socket}", s.writeSocket)
	r.Get("/variables/{name}", s.readVariable)
	r.Put("/variables/{name}", s.writeVariable)
	r.Post("/tick", s.tick)
	r.Post("/state", s.transition)

	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", s.listSnapshots)
		r.Post("/{id}", s.saveSnapshot)
		r.Get("/{id}", s.loadSnapshot)
		r.Delete("/{id}", s.deleteSnapshot)
		r.Post("/{id}/restore", s.restoreSnapshot)
	})

	if s.streams != nil {
		r.Get("/events", s.subscribeEvents)
	}
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// -- Helpers --

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	notFound := []error{
		domain.ErrNodeNotFound, domain.ErrEntryNotFound, domain.ErrSocketNotFound,
		domain.ErrStateNotFound, domain.ErrVariableNotFound, domain.ErrSnapshotNotFound,
		domain.ErrUnknownKind,
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, domain.ErrTypeMismatch), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, actiongraph.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body keeping numbers as json.Number, so ints stay ints.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}
