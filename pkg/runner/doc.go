/*
Package runner implements the host frame loop for an action graph runtime.

The runtime is single-threaded: entry points and ticks must never interleave.
A Runner owns that guarantee. Run ticks the host at a fixed rate with the
measured elapsed time, and Do lets other goroutines (an HTTP handler, a CLI
prompt) run against the host between frames.

# Usage

	rt, err := actiongraph.New("door.yaml")
	if err != nil {
		log.Fatal(err)
	}
	r := runner.New(rt, runner.WithFPS(30))

	go func() {
		_ = r.Do(func() error { return rt.Invoke("door", "Open") })
	}()

	if err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
*/
package runner
