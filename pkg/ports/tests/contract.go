package tests

import (
	"context"
	"testing"

	"github.com/aretw0/actiongraph/pkg/ports"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// want is the definition the loader is expected to produce.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, want *schema.Graph) {
	t.Helper()

	t.Run("Load_Success", func(t *testing.T) {
		got, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		if got.Name != want.Name {
			t.Errorf("name mismatch: got %q, want %q", got.Name, want.Name)
		}
		if len(got.Nodes) != len(want.Nodes) {
			t.Fatalf("expected %d nodes, got %d", len(want.Nodes), len(got.Nodes))
		}
		for i, n := range want.Nodes {
			if got.Nodes[i].ID != n.ID || got.Nodes[i].Kind != n.Kind {
				t.Errorf("node %d mismatch: got %s/%s, want %s/%s", i, got.Nodes[i].ID, got.Nodes[i].Kind, n.ID, n.Kind)
			}
		}
		if len(got.Links) != len(want.Links) {
			t.Errorf("expected %d links, got %d", len(want.Links), len(got.Links))
		}
	})

	t.Run("Load_Isolated", func(t *testing.T) {
		first, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		if len(first.Nodes) == 0 {
			t.Skip("no nodes to mutate")
		}
		first.Nodes[0].ID = "mutated"

		second, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error reloading graph: %v", err)
		}
		if second.Nodes[0].ID == "mutated" {
			t.Error("mutating a loaded definition leaked into the loader")
		}
	})

	t.Run("Load_Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := loader.Load(ctx); err == nil {
			t.Error("expected error for canceled context, got nil")
		}
	})
}
