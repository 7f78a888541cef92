package file

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/actiongraph/internal/compiler"
	"github.com/aretw0/actiongraph/pkg/ports"
	"github.com/aretw0/actiongraph/pkg/schema"
)

var _ ports.GraphLoader = (*Loader)(nil)

// Loader reads a YAML or JSON graph definition from disk on every Load, so
// edits are picked up by the next load.
type Loader struct {
	Path   string
	parser *compiler.Parser
}

// New creates a loader for the definition at path.
func New(path string, opts ...compiler.ParserOption) *Loader {
	return &Loader{Path: path, parser: compiler.NewParser(opts...)}
}

// Load reads and parses the definition.
func (l *Loader) Load(ctx context.Context) (*schema.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	g, err := l.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	return g, nil
}
