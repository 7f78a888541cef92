package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/actiongraph/internal/presentation/graph"
	"github.com/aretw0/actiongraph/internal/presentation/tui"
	"github.com/aretw0/actiongraph/internal/validator"
	"github.com/aretw0/actiongraph/pkg/adapters/file"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/nodes"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// ErrInvalidGraph is returned by Validate when the definition has errors.
var ErrInvalidGraph = errors.New("graph is invalid")

// Validate checks the definition at path against the built-in catalog and
// prints every error and warning to w.
func Validate(ctx context.Context, path string, w io.Writer) error {
	def, err := file.New(path).Load(ctx)
	if err != nil {
		details := schema.ValidationErrors(err)
		if len(details) == 0 {
			return err
		}
		for _, e := range details {
			fmt.Fprintf(w, "error: %v\n", e)
		}
		return fmt.Errorf("%w: %d error(s)", ErrInvalidGraph, len(details))
	}

	report := validator.Validate(def, nodes.Builtin())
	for _, e := range report.Errors {
		fmt.Fprintf(w, "error: %v\n", e)
	}
	for _, e := range report.Warnings {
		fmt.Fprintf(w, "warning: %v\n", e)
	}
	if !report.OK() {
		return fmt.Errorf("%w: %d error(s)", ErrInvalidGraph, len(report.Errors))
	}
	fmt.Fprintf(w, "Graph %q is valid (%d node(s), %d link(s), %d warning(s))\n",
		def.Name, len(def.Nodes), len(def.Links), len(report.Warnings))
	return nil
}

// Graph prints the Mermaid diagram of the graph at path.
func Graph(path string, w io.Writer) error {
	rt, err := createRuntime(path, "", false, createLogger(false))
	if err != nil {
		return err
	}
	defer rt.Close()

	_, err = io.WriteString(w, graph.GenerateMermaid(rt.Inspect(), rt.Links(), &graph.GraphOverlay{
		CurrentState: rt.CurrentState(),
	}))
	return err
}

// Catalog prints the built-in catalog, or one kind, as markdown. When styled
// is set the markdown goes through the terminal renderer.
func Catalog(kind string, styled bool, w io.Writer) error {
	catalog := nodes.Builtin()
	descs := catalog.Descriptors()
	if kind != "" {
		d, err := catalog.Describe(kind)
		if err != nil {
			return err
		}
		descs = []domain.Descriptor{d}
	}

	var render func(string) (string, error)
	if styled {
		render = tui.NewRenderer()
	}
	out, err := tui.RenderCatalog(descs, render)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
