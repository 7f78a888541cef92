/*
Package domain contains the core types of the action graph runtime.

It defines the value cells, sockets and node contract that every action node is built
from, plus the state grouping and observability events. The package is kept free of
scheduling, wiring and I/O concerns.

# Key Entities

  - Variable: a typed cell with a default, optionally shared through wiring.
  - Input, ArrayInput, Output: variable sockets. Array inputs fan in several producer
    cells and are reduced on every read; outputs fan out every write.
  - Signal: an optional reference to a downstream entry point. Firing an unset signal
    is a no-op.
  - Node, Base, Sockets: the node contract and the declaration-ordered socket table.
  - Updatable: nodes that tick through an update scheduler.
  - Descriptor: the declarative socket table consumed by editors and loaders.
  - StateMachine: the grouping that decides which nodes may currently run.

# Non-guarantees

Signal propagation is synchronous and depth-first. Nothing detects wired cycles: a
cycle recurses until the goroutine stack is exhausted. Graph authors own that.
*/
package domain
