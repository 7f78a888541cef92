package observability

import (
	"log/slog"

	"github.com/aretw0/actiongraph/pkg/domain"
)

// LogHooks returns hooks that log every lifecycle event at debug level, and
// transitions at info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSignal: func(e *domain.SignalEvent) {
			logger.Debug("signal", "node_id", e.NodeID, "kind", e.Kind, "entry", e.Entry)
		},
		OnUpdate: func(e *domain.UpdateEvent) {
			logger.Debug("update", "node_id", e.NodeID, "kind", e.Kind, "reason", e.Reason, "registered", e.Registered)
		},
		OnTick: func(e *domain.TickEvent) {
			if e.Updated > 0 {
				logger.Debug("tick", "elapsed", e.Elapsed, "updated", e.Updated, "took", e.Took)
			}
		},
		OnTransition: func(e *domain.TransitionEvent) {
			logger.Info("transition", "from", e.From, "to", e.To, "interrupted", e.Interrupted)
		},
	}
}
