package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/actiongraph"
	"github.com/aretw0/actiongraph/internal/presentation/graph"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// GraphResponse is the body of GET /graph.
type GraphResponse struct {
	State     string                     `json:"state,omitempty"`
	States    []string                   `json:"states,omitempty"`
	Nodes     []actiongraph.NodeInfo     `json:"nodes"`
	Links     []actiongraph.LinkInfo     `json:"links"`
	Variables []actiongraph.VariableInfo `json:"variables,omitempty"`
	Updating  []string                   `json:"updating"`
}

// StatusResponse reports the state after an invocation or transition.
type StatusResponse struct {
	State    string   `json:"state,omitempty"`
	Updating []string `json:"updating"`
}

// ValueRequest is the body of socket and variable writes.
type ValueRequest struct {
	Value any `json:"value"`
}

// ValueResponse is the body of socket and variable reads.
type ValueResponse struct {
	Value any `json:"value"`
}

// TickRequest is the body of POST /tick.
type TickRequest struct {
	ElapsedMS float64 `json:"elapsed_ms"`
}

// TickResponse is the body returned by POST /tick.
type TickResponse struct {
	Updated  int      `json:"updated"`
	Updating []string `json:"updating"`
}

// StateRequest is the body of POST /state.
type StateRequest struct {
	State string `json:"state"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "actiongraph-http",
		"version": actiongraph.Version,
	})
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.runtime.Descriptors())
}

func (s *Server) getKind(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	for _, d := range s.runtime.Descriptors() {
		if d.Kind == kind {
			s.writeJSON(w, http.StatusOK, d)
			return
		}
	}
	s.writeError(w, r, fmt.Errorf("%w: %s", domain.ErrUnknownKind, kind))
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	var resp GraphResponse
	_ = s.loop.Do(func() error {
		resp = GraphResponse{
			State:     s.runtime.CurrentState(),
			States:    s.runtime.States(),
			Nodes:     s.runtime.Inspect(),
			Links:     s.runtime.Links(),
			Variables: s.runtime.Variables(),
			Updating:  nonNil(s.runtime.Updating()),
		}
		return nil
	})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getMermaid(w http.ResponseWriter, r *http.Request) {
	var out string
	_ = s.loop.Do(func() error {
		out = graph.GenerateMermaid(s.runtime.Inspect(), s.runtime.Links(), &graph.GraphOverlay{
			Updating:     s.runtime.Updating(),
			CurrentState: s.runtime.CurrentState(),
		})
		return nil
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request) {
	id, entry := chi.URLParam(r, "id"), chi.URLParam(r, "entry")
	var resp StatusResponse
	err := s.loop.Do(func() error {
		if err := s.runtime.Invoke(id, entry); err != nil {
			return err
		}
		resp = s.status()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) readSocket(w http.ResponseWriter, r *http.Request) {
	id, socket := chi.URLParam(r, "id"), chi.URLParam(r, "socket")
	var v any
	err := s.loop.Do(func() (err error) {
		v, err = s.runtime.Read(id, socket)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ValueResponse{Value: v})
}

func (s *Server) writeSocket(w http.ResponseWriter, r *http.Request) {
	id, socket := chi.URLParam(r, "id"), chi.URLParam(r, "socket")
	var body ValueRequest
	if err := decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.loop.Do(func() error { return s.runtime.Write(id, socket, body.Value) }); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) readVariable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var v any
	err := s.loop.Do(func() (err error) {
		v, err = s.runtime.ReadVariable(name)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ValueResponse{Value: v})
}

func (s *Server) writeVariable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var body ValueRequest
	if err := decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.loop.Do(func() error { return s.runtime.WriteVariable(name, body.Value) }); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) tick(w http.ResponseWriter, r *http.Request) {
	var body TickRequest
	if err := decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.ElapsedMS < 0 {
		s.writeError(w, r, fmt.Errorf("%w: elapsed_ms must be >= 0", errBadRequest))
		return
	}
	elapsed := time.Duration(body.ElapsedMS * float64(time.Millisecond))
	updated := s.loop.Step(elapsed)

	var resp TickResponse
	_ = s.loop.Do(func() error {
		resp = TickResponse{Updated: updated, Updating: nonNil(s.runtime.Updating())}
		return nil
	})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request) {
	var body StateRequest
	if err := decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	var resp StatusResponse
	err := s.loop.Do(func() error {
		if err := s.runtime.Transition(body.State); err != nil {
			return err
		}
		resp = s.status()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(ids))
}

func (s *Server) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var snap *domain.Snapshot
	_ = s.loop.Do(func() error {
		snap = s.runtime.Snapshot()
		return nil
	})
	if err := s.store.Save(r.Context(), id, snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("snapshot saved", "id", id, "cells", len(snap.Cells))
	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) deleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) restoreSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var resp StatusResponse
	err = s.loop.Do(func() error {
		if err := s.runtime.Restore(snap); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		resp = s.status()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("snapshot restored", "id", id)
	s.writeJSON(w, http.StatusOK, resp)
}

// status must run inside loop.Do.
func (s *Server) status() StatusResponse {
	return StatusResponse{State: s.runtime.CurrentState(), Updating: nonNil(s.runtime.Updating())}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

