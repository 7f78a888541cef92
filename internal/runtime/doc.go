// Package runtime executes action graphs: the update scheduler that ticks
// registered nodes once per frame, and the Graph that owns node instances,
// wiring and state gating.
//
// Nothing here is goroutine-safe. A host that mixes goroutines (an HTTP server
// next to a frame ticker) serializes access itself; see pkg/runner.
package runtime
