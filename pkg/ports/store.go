package ports

import (
	"context"

	"github.com/aretw0/actiongraph/pkg/domain"
)

// SnapshotStore defines the interface for persisting cell-value snapshots.
// This allows hosts to checkpoint a running graph and restore it later.
type SnapshotStore interface {
	// Save persists the snapshot under id, replacing any previous one.
	Save(ctx context.Context, id string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for id.
	// Returns domain.ErrSnapshotNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Snapshot, error)

	// Delete removes the snapshot for id.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored snapshots.
	List(ctx context.Context) ([]string, error)
}
