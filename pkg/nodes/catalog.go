package nodes

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// Categories of the built-in kinds.
const (
	CategoryMath        = "math"
	CategoryVector      = "vector"
	CategoryCompare     = "compare"
	CategoryLogic       = "logic"
	CategoryFlow        = "flow"
	CategoryInterpolate = "interpolate"
)

// ErrNoScheduler is returned when a ticking kind is built without a scheduler.
var ErrNoScheduler = errors.New("node requires an update scheduler")

// Env carries what a node needs from its host at construction.
type Env struct {
	// Scheduler receives the nodes that opt into per-frame updates.
	Scheduler ports.UpdateScheduler
}

// Factory builds a node instance with the given ID.
type Factory func(id string, env Env) domain.Node

// Configurable is implemented by nodes that accept a config map.
type Configurable interface {
	Configure(config map[string]any) error
}

type kindEntry struct {
	category string
	factory  Factory
}

// Catalog maps node kinds to factories.
type Catalog struct {
	mu    sync.RWMutex
	kinds map[string]kindEntry
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{kinds: make(map[string]kindEntry)}
}

// Register adds a kind. If the kind exists, it is overwritten.
func (c *Catalog) Register(kind, category string, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kinds[kind] = kindEntry{category: category, factory: f}
}

// Has reports whether kind is registered.
func (c *Catalog) Has(kind string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.kinds[kind]
	return ok
}

// Category returns the category of kind, or "" if unknown.
func (c *Catalog) Category(kind string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kinds[kind].category
}

// New builds a node of kind. Kinds that tick need env.Scheduler and fail with
// ErrNoScheduler without one.
func (c *Catalog) New(kind, id string, env Env) (domain.Node, error) {
	n, err := c.build(kind, id, env)
	if err != nil {
		return nil, err
	}
	if _, ok := n.(domain.Updatable); ok && env.Scheduler == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoScheduler, kind)
	}
	return n, nil
}

// Prototype builds a detached node of kind for inspection: descriptors and
// config checks. Its updates go nowhere.
func (c *Catalog) Prototype(kind, id string) (domain.Node, error) {
	return c.build(kind, id, Env{Scheduler: detached{}})
}

func (c *Catalog) build(kind, id string, env Env) (domain.Node, error) {
	c.mu.RLock()
	e, ok := c.kinds[kind]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKind, kind)
	}
	return e.factory(id, env), nil
}

type detached struct{}

func (detached) StartUpdating(domain.Updatable) {}

func (detached) StopUpdating(domain.Updatable) {}

func (detached) IsUpdating(domain.Updatable) bool { return false }

// Configure applies config to a node. An empty config is always accepted; a
// non-empty one requires the node to be Configurable.
func Configure(n domain.Node, config map[string]any) error {
	if len(config) == 0 {
		return nil
	}
	cfg, ok := n.(Configurable)
	if !ok {
		return fmt.Errorf("%s takes no config", n.Kind())
	}
	return cfg.Configure(config)
}

// Describe returns the descriptor of kind, built from a prototype's sockets.
func (c *Catalog) Describe(kind string) (domain.Descriptor, error) {
	n, err := c.Prototype(kind, "prototype")
	if err != nil {
		return domain.Descriptor{}, err
	}
	return n.Sockets().Describe(kind, c.Category(kind)), nil
}

// Kinds returns every registered kind, sorted.
func (c *Catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.kinds))
	for k := range c.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Descriptors returns the descriptor of every kind, sorted by kind.
func (c *Catalog) Descriptors() []domain.Descriptor {
	kinds := c.Kinds()
	out := make([]domain.Descriptor, 0, len(kinds))
	for _, k := range kinds {
		if d, err := c.Describe(k); err == nil {
			out = append(out, d)
		}
	}
	return out
}

// Builtin returns a fresh catalog holding every built-in kind.
func Builtin() *Catalog {
	c := NewCatalog()
	registerMath(c)
	registerVector(c)
	registerCompare(c)
	registerLogic(c)
	registerFlow(c)
	registerInterpolate(c)
	return c
}


// decodeConfig decodes a definition map into a config struct, rejecting unknown keys.
func decodeConfig(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// updater is embedded by nodes that tick. It is only built through Catalog.New
// or Prototype, so scheduler is never nil.
type updater struct {
	scheduler ports.UpdateScheduler
}

func (u updater) start(n domain.Updatable) { u.scheduler.StartUpdating(n) }

func (u updater) stop(n domain.Updatable) { u.scheduler.StopUpdating(n) }

// Stateful is implemented by nodes with an internal state machine, so hosts can
// inspect it ("open", "running", ...).
type Stateful interface {
	Status() string
}
