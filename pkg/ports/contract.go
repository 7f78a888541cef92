package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	id := "contract-snapshot-" + time.Now().Format("20060102150405")

	sample := func() *domain.Snapshot {
		return &domain.Snapshot{
			Graph:   "contract",
			State:   "idle",
			TakenAt: time.Now().UTC().Truncate(time.Second),
			Cells: []domain.CellSnapshot{
				{Node: "add", Socket: "A", Index: 0, Type: domain.TypeInt, Value: 2},
				{Node: "lerp", Socket: "Duration", Type: domain.TypeFloat, Value: 1.5},
				{Node: "branch", Socket: "Condition", Type: domain.TypeBool, Value: true},
				{Node: "move", Socket: "Target", Type: domain.TypeVector2, Value: domain.Vector2{X: 1, Y: -1}},
				{Socket: "score", Type: domain.TypeInt, Value: 40},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := sample()

		err := store.Save(ctx, id, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.Graph, loaded.Graph)
		assert.Equal(t, snap.State, loaded.State)
		assert.True(t, snap.TakenAt.Equal(loaded.TakenAt))
		// Values must come back with their exact Go types, not JSON's float64.
		assert.Equal(t, snap.Cells, loaded.Cells)
	})

	t.Run("Isolation", func(t *testing.T) {
		snap := sample()
		require.NoError(t, store.Save(ctx, id, snap))

		snap.Cells[0].Value = 99

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Cells[0].Value, "mutating the saved snapshot must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, sample()))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, sample())
		_ = store.Save(ctx, id2, sample())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
