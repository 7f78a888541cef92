package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/actiongraph/pkg/schema"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDefinition is returned when the input holds no document.
var ErrEmptyDefinition = errors.New("empty graph definition")

// Parser converts raw bytes into a graph definition.
type Parser struct {
	strict bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLenientFields accepts unknown keys instead of rejecting them.
func WithLenientFields() ParserOption {
	return func(p *Parser) { p.strict = false }
}

// NewParser creates a new parser instance. Unknown keys are rejected by default.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{strict: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes a YAML or JSON definition and checks its structure.
// JSON is accepted because it is a subset of YAML.
func (p *Parser) Parse(data []byte) (*schema.Graph, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(p.strict)

	var g schema.Graph
	if err := dec.Decode(&g); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDefinition
		}
		return nil, fmt.Errorf("failed to parse graph: %w", err)
	}
	if err := schema.Validate(&g); err != nil {
		return nil, fmt.Errorf("invalid graph %q: %w", g.Name, err)
	}
	return &g, nil
}

// Parse is a shorthand for NewParser().Parse(data).
func Parse(data []byte) (*schema.Graph, error) {
	return NewParser().Parse(data)
}
