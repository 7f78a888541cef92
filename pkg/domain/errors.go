package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned when a node ID is not part of the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDuplicateNode is returned when two nodes share an ID.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrEntryNotFound is returned when a node declares no entry point with the given name.
	ErrEntryNotFound = errors.New("entry point not found")

	// ErrSocketNotFound is returned when a node declares no socket with the given name.
	ErrSocketNotFound = errors.New("socket not found")

	// ErrTypeMismatch is returned when a value or cell does not match a socket's element type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrStateNotFound is returned when a transition targets an undeclared state.
	ErrStateNotFound = errors.New("state not found")

	// ErrDuplicateState is returned when a state name is declared twice.
	ErrDuplicateState = errors.New("duplicate state")

	// ErrVariableNotFound is returned when a graph variable is not declared.
	ErrVariableNotFound = errors.New("variable not found")

	// ErrUnknownKind is returned when a catalog has no factory for a node kind.
	ErrUnknownKind = errors.New("unknown node kind")

	// ErrSnapshotNotFound is returned when a snapshot ID cannot be found in the store.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSnapshotSealed is returned when an encrypted snapshot is restored without being opened.
	ErrSnapshotSealed = errors.New("snapshot is sealed")
)

// WiringError describes a link that could not be made.
type WiringError struct {
	From   string
	To     string
	Reason error
}

func (e *WiringError) Error() string {
	return fmt.Sprintf("cannot wire %s -> %s: %v", e.From, e.To, e.Reason)
}

func (e *WiringError) Unwrap() error { return e.Reason }
