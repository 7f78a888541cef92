package memory

import (
	"context"
	"errors"

	"github.com/aretw0/actiongraph/internal/compiler"
	"github.com/aretw0/actiongraph/pkg/ports"
	"github.com/aretw0/actiongraph/pkg/schema"
)

var _ ports.GraphLoader = (*Loader)(nil)

// Loader implements ports.GraphLoader over a definition held in memory.
// Every Load returns a deep copy.
type Loader struct {
	def *schema.Graph
}

// NewLoader wraps an already-built definition. The definition is copied, so
// later changes by the caller do not reach the loader.
func NewLoader(def *schema.Graph) *Loader {
	return &Loader{def: def.Clone()}
}

// NewLoaderFromBytes parses a YAML or JSON definition once and serves copies of it.
func NewLoaderFromBytes(data []byte) (*Loader, error) {
	def, err := compiler.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Loader{def: def}, nil
}

// Load returns a copy of the held definition.
func (l *Loader) Load(ctx context.Context) (*schema.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.def == nil {
		return nil, errors.New("memory loader has no definition")
	}
	return l.def.Clone(), nil
}
