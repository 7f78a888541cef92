package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aretw0/actiongraph/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	GraphPath string
	Fire      []string      // node.Entry, invoked in order before the first frame
	Frames    int           // frames to tick after firing
	DT        time.Duration // elapsed time per frame
	State     string        // overrides the definition's initial state
	Watch     []string      // node.Socket, printed after firing and after every frame
	Debug     bool
	Out       io.Writer
}

// Execute loads the graph, fires the requested entries and ticks a fixed
// number of frames, printing watched sockets as it goes. The frames are
// stepped directly, so the run is deterministic and does not sleep.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.DT <= 0 {
		opts.DT = time.Second / time.Duration(runner.DefaultFPS)
	}
	fires, err := parseTargets(opts.Fire)
	if err != nil {
		return err
	}
	watches, err := parseTargets(opts.Watch)
	if err != nil {
		return err
	}

	logger := createLogger(opts.Debug)
	rt, err := createRuntime(opts.GraphPath, opts.State, opts.Debug, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	for _, f := range fires {
		if err := rt.Invoke(f.Node, f.Name); err != nil {
			return fmt.Errorf("fire %s: %w", f, err)
		}
	}
	if len(watches) > 0 {
		if err := printWatches(opts.Out, rt, 0, watches); err != nil {
			return err
		}
	}

	loop := runner.New(rt, runner.WithLogger(logger), runner.WithMaxStep(0))
	for frame := 1; frame <= opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return handleExecutionError(err)
		}
		loop.Step(opts.DT)
		if len(watches) > 0 {
			if err := printWatches(opts.Out, rt, frame, watches); err != nil {
				return err
			}
		}
	}

	printSystemMessage(opts.Out, "Finished in state %q after %d frame(s); updating: [%s]",
		rt.CurrentState(), opts.Frames, strings.Join(rt.Updating(), ", "))
	return nil
}

type socketReader interface {
	Read(nodeID, socket string) (any, error)
}

func printWatches(w io.Writer, rt socketReader, frame int, watches []Target) error {
	parts := make([]string, 0, len(watches))
	for _, t := range watches {
		v, err := rt.Read(t.Node, t.Name)
		if err != nil {
			return fmt.Errorf("watch %s: %w", t, err)
		}
		parts = append(parts, fmt.Sprintf("%s=%v", t, v))
	}
	fmt.Fprintf(w, "frame %d: %s\n", frame, strings.Join(parts, " "))
	return nil
}
