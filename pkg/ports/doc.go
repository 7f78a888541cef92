/*
Package ports defines the driven ports (interfaces) of the action graph runtime.

These interfaces decouple nodes and hosts from concrete implementations, so a node can
register for ticking without knowing which scheduler runs it, and the runtime can load
definitions and persist snapshots through any backend.

# Key Interfaces

  - UpdateScheduler: the registry nodes use to opt in and out of per-frame updates.
  - GraphLoader: produces a graph definition (file, memory, DSL).
  - SnapshotStore: persists cell-value snapshots (memory, Redis).
*/
package ports
