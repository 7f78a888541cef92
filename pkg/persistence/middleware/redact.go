package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/ports"
)

type redactMiddleware struct {
	next     ports.SnapshotStore
	patterns []*regexp.Regexp
}

// NewRedaction creates a middleware that leaves out of saved snapshots every
// cell whose name matches one of the patterns. Variable cells are named by the
// variable, node cells by "node.Socket". A restore resets left-out cells to
// their defaults.
func NewRedaction(patterns []string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		compiled[i] = re
	}
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &redactMiddleware{next: next, patterns: compiled}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, id string, snap *domain.Snapshot) error {
	cloned := snap.Clone()
	kept := cloned.Cells[:0]
	for _, c := range cloned.Cells {
		if !m.matches(cellName(c)) {
			kept = append(kept, c)
		}
	}
	cloned.Cells = kept
	return m.next.Save(ctx, id, cloned)
}

func (m *redactMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func cellName(c domain.CellSnapshot) string {
	if c.Node == "" {
		return c.Socket
	}
	return c.Node + "." + c.Socket
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
