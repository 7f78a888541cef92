package actiongraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/actiongraph/internal/logging"
	"github.com/aretw0/actiongraph/internal/runtime"
	"github.com/aretw0/actiongraph/pkg/adapters/file"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/nodes"
	"github.com/aretw0/actiongraph/pkg/ports"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// ErrClosed is returned by host calls made after Close.
var ErrClosed = errors.New("runtime closed")

// Runtime is the high-level entry point for the library. It owns one
// instantiated graph and the update scheduler that ticks it.
//
// A Runtime is not safe for concurrent use; hosts with several goroutines
// serialize calls through pkg/runner.
type Runtime struct {
	Name string

	loader    ports.GraphLoader
	catalog   *nodes.Catalog
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	initial   string
	def       *schema.Graph
	scheduler *runtime.Scheduler
	graph     *runtime.Graph
	closed    bool
}

// Option defines a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithLoader injects a custom GraphLoader, bypassing the default file loader.
func WithLoader(l ports.GraphLoader) Option {
	return func(r *Runtime) {
		r.loader = l
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runtime) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// WithCatalog replaces the built-in node catalog, e.g. to add custom kinds.
func WithCatalog(c *nodes.Catalog) Option {
	return func(r *Runtime) {
		r.catalog = c
	}
}

// WithInitialState overrides the definition's initial state.
func WithInitialState(state string) Option {
	return func(r *Runtime) {
		r.initial = state
	}
}

// New loads a graph definition and instantiates it.
// By default the definition is read from the file at path. If WithLoader is
// provided, path is only used as a label and may be empty.
func New(path string, opts ...Option) (*Runtime, error) {
	return NewContext(context.Background(), path, opts...)
}

// NewContext is New with a context for the loader.
func NewContext(ctx context.Context, path string, opts ...Option) (*Runtime, error) {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}

	if r.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		r.loader = file.New(path)
	}
	if r.catalog == nil {
		r.catalog = nodes.Builtin()
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}

	def, err := r.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	if r.initial != "" {
		def.Initial = r.initial
	}

	r.Name = def.Name
	if r.Name == "" && path != "" {
		r.Name = filepath.Base(path)
	}
	r.logger = r.logger.With("graph", r.Name)

	r.scheduler = runtime.NewScheduler(
		runtime.WithSchedulerLogger(r.logger),
		runtime.WithSchedulerHooks(r.hooks),
	)
	g, err := runtime.Instantiate(def, r.catalog, r.scheduler,
		runtime.WithLogger(r.logger),
		runtime.WithHooks(r.hooks),
	)
	if err != nil {
		return nil, err
	}
	r.def = def
	r.graph = g
	r.logger.Debug("graph instantiated", "nodes", len(def.Nodes), "links", len(def.Links))
	return r, nil
}

// Invoke fires an entry point. Invoking a node outside the current state is a
// silent no-op.
func (r *Runtime) Invoke(nodeID, entry string) error {
	if r.closed {
		return ErrClosed
	}
	return r.graph.Invoke(nodeID, entry)
}

// Tick runs one update pass with the frame's elapsed time and returns how
// many nodes were updated.
func (r *Runtime) Tick(elapsed time.Duration) int {
	if r.closed {
		return 0
	}
	return r.scheduler.Tick(elapsed)
}

// Transition makes state current, interrupting the updating nodes of the old one.
func (r *Runtime) Transition(state string) error {
	if r.closed {
		return ErrClosed
	}
	return r.graph.Transition(state)
}

// CurrentState returns the active state name, or "" for a stateless graph.
func (r *Runtime) CurrentState() string {
	return r.graph.CurrentState()
}

// States returns the declared state names.
func (r *Runtime) States() []string {
	return r.graph.States()
}

// Read returns the current value of a node socket. Array inputs return []any.
func (r *Runtime) Read(nodeID, socket string) (any, error) {
	return r.graph.Read(nodeID, socket)
}

// Write assigns a value to a node input socket.
func (r *Runtime) Write(nodeID, socket string, value any) error {
	if r.closed {
		return ErrClosed
	}
	return r.graph.Write(nodeID, socket, value)
}

// ReadVariable returns the value of a graph variable.
func (r *Runtime) ReadVariable(name string) (any, error) {
	return r.graph.ReadVariable(name)
}

// WriteVariable assigns a graph variable, reaching every input bound to it.
func (r *Runtime) WriteVariable(name string, value any) error {
	if r.closed {
		return ErrClosed
	}
	return r.graph.WriteVariable(name, value)
}

// Updating returns the IDs of nodes currently registered for updates.
func (r *Runtime) Updating() []string {
	return r.graph.Updating()
}

// Descriptors lists every kind of the runtime's catalog.
func (r *Runtime) Descriptors() []domain.Descriptor {
	return r.catalog.Descriptors()
}

// Definition returns a copy of the loaded definition.
func (r *Runtime) Definition() *schema.Graph {
	return r.def.Clone()
}

// Snapshot captures the current cell values.
func (r *Runtime) Snapshot() *domain.Snapshot {
	return r.graph.Snapshot()
}

// Restore writes a snapshot back. Updating nodes are interrupted first.
func (r *Runtime) Restore(snap *domain.Snapshot) error {
	if r.closed {
		return ErrClosed
	}
	return r.graph.Restore(snap)
}

// Close interrupts every updating node. Further host calls return ErrClosed.
func (r *Runtime) Close() error {
	if r.closed {
		return nil
	}
	n := r.graph.Teardown()
	r.closed = true
	r.logger.Debug("runtime closed", "interrupted", n)
	return nil
}
