package ports

import "github.com/aretw0/actiongraph/pkg/domain"

// UpdateScheduler is the registry that ticks opted-in nodes once per frame.
// Nodes receive it at construction and call it from their entry points and
// from their own Update.
type UpdateScheduler interface {
	// StartUpdating registers n. Registering an already registered node is a no-op.
	StartUpdating(n domain.Updatable)

	// StopUpdating removes n without calling OnUpdateStopped. A node stopping
	// itself inside Update is not ticked again until it re-registers.
	StopUpdating(n domain.Updatable)

	// IsUpdating reports whether n is currently registered.
	IsUpdating(n domain.Updatable) bool
}
