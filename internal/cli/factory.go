package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/actiongraph"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/observability"
)

// createRuntime loads the graph at path with the standard CLI conventions:
// the logger is always wired, and debug mode adds lifecycle logging.
func createRuntime(path, state string, debug bool, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*actiongraph.Runtime, error) {
	opts := []actiongraph.Option{actiongraph.WithLogger(logger)}
	if debug {
		opts = append(opts, actiongraph.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	for _, h := range hooks {
		opts = append(opts, actiongraph.WithLifecycleHooks(h))
	}
	if state != "" {
		opts = append(opts, actiongraph.WithInitialState(state))
	}

	rt, err := actiongraph.New(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing runtime: %w", err)
	}
	return rt, nil
}
