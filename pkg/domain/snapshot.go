package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot captures the written values of a graph's cells at a point in time.
// It holds values only; topology and node-internal state machines are not part of it.
type Snapshot struct {
	Graph   string         `json:"graph"`
	State   string         `json:"state,omitempty"`
	TakenAt time.Time      `json:"taken_at"`
	Cells   []CellSnapshot `json:"cells"`

	// Sealed holds an encrypted snapshot. A sealed envelope carries no cells.
	Sealed []byte `json:"sealed,omitempty"`
}

// CellSnapshot is the value of one bound cell.
// Variable cells use Node == "" and Socket == the variable name.
type CellSnapshot struct {
	Node   string    `json:"node,omitempty"`
	Socket string    `json:"socket"`
	Index  int       `json:"index"`
	Type   ValueType `json:"type"`
	Value  any       `json:"value"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Cells = make([]CellSnapshot, len(s.Cells))
	copy(out.Cells, s.Cells)
	if s.Sealed != nil {
		out.Sealed = append([]byte(nil), s.Sealed...)
	}
	return &out
}

// UnmarshalJSON decodes a snapshot and converts every cell value back to the
// exact Go type of its cell, so ints do not come back as float64.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type plain Snapshot
	var p plain
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	for i, c := range p.Cells {
		v, err := ParseValue(c.Type, c.Value)
		if err != nil {
			return fmt.Errorf("cell %s.%s[%d]: %w", c.Node, c.Socket, c.Index, err)
		}
		p.Cells[i].Value = v
	}
	*s = Snapshot(p)
	return nil
}
