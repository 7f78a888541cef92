package runtime

import (
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/actiongraph/internal/logging"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/ports"
)

var _ ports.UpdateScheduler = (*Scheduler)(nil)

type registration struct {
	node         domain.Updatable
	active       bool
	interrupting bool
}

// Scheduler is the registry of nodes that tick every frame.
// Cost per frame is proportional to the number of registered nodes, not to the
// size of the graph.
type Scheduler struct {
	entries []*registration
	index   map[domain.Updatable]*registration
	ticking bool
	dirty   bool

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger configures the structured logger.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithSchedulerHooks configures the OnUpdate and OnTick callbacks.
func WithSchedulerHooks(hooks domain.LifecycleHooks) SchedulerOption {
	return func(s *Scheduler) {
		s.hooks = hooks
	}
}

// WithClock replaces time.Now for event timestamps and tick durations.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		s.now = now
	}
}

// NewScheduler creates an empty scheduler.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		index:  make(map[domain.Updatable]*registration),
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartUpdating registers n. Registering an already registered node does nothing.
// A node registered during a pass is first ticked on the next pass.
func (s *Scheduler) StartUpdating(n domain.Updatable) {
	if _, ok := s.index[n]; ok {
		return
	}
	r := &registration{node: n, active: true}
	s.entries = append(s.entries, r)
	s.index[n] = r
	s.logger.Debug("node started updating", "node", nodeName(n))
	s.emit(n, domain.UpdateStarted)
}

// StopUpdating removes n without calling OnUpdateStopped. Stopping an
// unregistered node does nothing.
func (s *Scheduler) StopUpdating(n domain.Updatable) {
	if s.remove(n) {
		s.logger.Debug("node stopped updating", "node", nodeName(n))
		s.emit(n, domain.UpdateStopped)
	}
}

// IsUpdating reports whether n is registered.
func (s *Scheduler) IsUpdating(n domain.Updatable) bool {
	_, ok := s.index[n]
	return ok
}

// Len returns the number of registered nodes.
func (s *Scheduler) Len() int { return len(s.index) }

// Nodes returns the registered nodes in registration order.
func (s *Scheduler) Nodes() []domain.Updatable {
	out := make([]domain.Updatable, 0, len(s.index))
	for _, r := range s.entries {
		if r.active {
			out = append(out, r.node)
		}
	}
	return out
}

// Tick runs one pass over the nodes registered when the pass began, in
// registration order, and returns how many were updated. A node stopped during
// the pass is skipped for the rest of it. Tick is not re-entrant: a call made
// from inside Update is ignored.
func (s *Scheduler) Tick(elapsed time.Duration) int {
	if s.ticking {
		s.logger.Warn("nested tick ignored", "elapsed", elapsed)
		return 0
	}
	s.ticking = true
	defer func() {
		s.ticking = false
		if s.dirty {
			s.compact()
		}
	}()

	start := s.now()
	pass := slices.Clone(s.entries)
	updated := 0
	for _, r := range pass {
		if !r.active {
			continue
		}
		r.node.Update(elapsed)
		updated++
	}

	if s.hooks.OnTick != nil {
		end := s.now()
		s.hooks.OnTick(&domain.TickEvent{
			Timestamp: end,
			Elapsed:   elapsed,
			Updated:   updated,
			Took:      end.Sub(start),
		})
	}
	return updated
}

// Interrupt forcibly removes n: OnUpdateStopped runs exactly once, then the
// node is deregistered unless the hook already did it. It reports whether n
// was registered.
func (s *Scheduler) Interrupt(n domain.Updatable) bool {
	r, ok := s.index[n]
	if !ok || r.interrupting {
		return false
	}
	r.interrupting = true
	n.OnUpdateStopped()
	r.interrupting = false

	// The hook may have stopped the node, or stopped and re-registered it.
	if s.index[n] == r {
		s.remove(n)
	}
	s.logger.Debug("node update interrupted", "node", nodeName(n))
	s.emit(n, domain.UpdateInterrupted)
	return true
}

// InterruptWhere interrupts every registered node matching pred, in
// registration order, and returns how many were interrupted.
func (s *Scheduler) InterruptWhere(pred func(domain.Updatable) bool) int {
	count := 0
	for _, r := range slices.Clone(s.entries) {
		if r.active && pred(r.node) && s.Interrupt(r.node) {
			count++
		}
	}
	return count
}

// InterruptAll interrupts every registered node.
func (s *Scheduler) InterruptAll() int {
	return s.InterruptWhere(func(domain.Updatable) bool { return true })
}

func (s *Scheduler) remove(n domain.Updatable) bool {
	r, ok := s.index[n]
	if !ok {
		return false
	}
	r.active = false
	delete(s.index, n)
	if s.ticking {
		s.dirty = true
	} else {
		s.compact()
	}
	return true
}

func (s *Scheduler) compact() {
	s.entries = slices.DeleteFunc(s.entries, func(r *registration) bool { return !r.active })
	s.dirty = false
}

func (s *Scheduler) emit(n domain.Updatable, reason domain.UpdateReason) {
	if s.hooks.OnUpdate == nil {
		return
	}
	ev := &domain.UpdateEvent{Timestamp: s.now(), Reason: reason, Registered: len(s.index)}
	if node, ok := n.(domain.Node); ok {
		ev.NodeID, ev.Kind = node.ID(), node.Kind()
	}
	s.hooks.OnUpdate(ev)
}

func nodeName(n domain.Updatable) string {
	if node, ok := n.(domain.Node); ok {
		return node.ID()
	}
	return "?"
}
