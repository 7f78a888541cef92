package ports

import (
	"context"

	"github.com/aretw0/actiongraph/pkg/schema"
)

// GraphLoader defines how the runtime retrieves a graph definition.
// This allows the definition source (file, memory, DSL) to be decoupled.
type GraphLoader interface {
	// Load returns the full definition. Implementations honor ctx cancellation
	// for any I/O they perform.
	Load(ctx context.Context) (*schema.Graph, error)
}
