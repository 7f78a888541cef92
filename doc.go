/*
Package actiongraph is an execution runtime for visual-scripting action graphs.

A graph is a set of action nodes (math operations, comparisons, gates, timers,
interpolators) joined by two kinds of links. Signal links chain entry points
synchronously: firing a signal output runs the connected entry point before
Fire returns. Variable links share typed cells: an output writes through to
every input attached to it, and array inputs aggregate one cell per producer,
re-reduced on every read.

Nodes that need per-frame work register with an update scheduler while they
are active and unregister when done, so the cost of a frame is the number of
ticking nodes, never the size of the graph. Nodes belong to states; leaving a
state interrupts its ticking nodes through OnUpdateStopped.

# Usage

Load a YAML or JSON definition, then drive the runtime from a host loop.

	package main

	import (
		"log"
		"time"

		"github.com/aretw0/actiongraph"
	)

	func main() {
		rt, err := actiongraph.New("./door.yaml")
		if err != nil {
			log.Fatal(err)
		}
		defer rt.Close()

		if err := rt.Invoke("fade", "Start"); err != nil {
			log.Fatal(err)
		}
		for i := 0; i < 60; i++ {
			rt.Tick(time.Second / 60)
		}
		v, _ := rt.Read("fade", "Value")
		log.Println("value:", v)
	}

pkg/runner provides a fixed-rate loop that serializes host calls, and
pkg/dsl builds definitions in Go without a file.
*/
package actiongraph
