package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/actiongraph"
	agh "github.com/aretw0/actiongraph/pkg/adapters/http"
	"github.com/aretw0/actiongraph/pkg/dsl"
	"github.com/aretw0/actiongraph/pkg/observability"
	"github.com/aretw0/actiongraph/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRuntime(t *testing.T, opts ...actiongraph.Option) *actiongraph.Runtime {
	t.Helper()
	b := dsl.New("door").States("active", "idle")
	b.Add("add", "AddInt").In("A", 2, 3).In("B", 4).On("Out", "cmp.In").Pipe("Result", "cmp.A")
	b.Add("cmp", "CompareInt").In("B", 9)
	b.Add("fade", "InterpolateFloat").InState("active").In("EndValue", 10.0)
	loader, err := b.Build()
	require.NoError(t, err)

	rt, err := actiongraph.New("", append(opts, actiongraph.WithLoader(loader))...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func newHandler(t *testing.T, opts ...agh.Option) http.Handler {
	rt := newRuntime(t)
	return agh.NewHandler(rt, runner.New(rt), opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func value(t *testing.T, w *httptest.ResponseRecorder) any {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp agh.ValueResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Value
}

func TestServer_InvokeAndRead(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodPost, "/nodes/add/entries/In", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, 9.0, value(t, do(t, h, http.MethodGet, "/nodes/add/sockets/Result", "")))
	assert.Equal(t, 9.0, value(t, do(t, h, http.MethodGet, "/nodes/cmp/sockets/A", "")))

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/nodes/ghost/entries/In", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/nodes/add/entries/Nope", "").Code)
}

func TestServer_WriteSocket(t *testing.T) {
	h := newHandler(t)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/nodes/cmp/sockets/B", `{"value": 7}`).Code)
	assert.Equal(t, 7.0, value(t, do(t, h, http.MethodGet, "/nodes/cmp/sockets/B", "")))

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/nodes/cmp/sockets/B", `{"value": true}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/nodes/cmp/sockets/B", `{"value": 1.5}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/nodes/cmp/sockets/B", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/nodes/add/sockets/Result", `{"value": 1}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/nodes/cmp/sockets/Nope", `{"value": 1}`).Code)
}

func TestServer_TickAndState(t *testing.T) {
	h := newHandler(t)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/nodes/fade/entries/Start", "").Code)

	w := do(t, h, http.MethodPost, "/tick", `{"elapsed_ms": 500}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tick agh.TickResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tick))
	assert.Equal(t, 1, tick.Updated)
	assert.Equal(t, []string{"fade"}, tick.Updating)

	assert.InDelta(t, 5.0, value(t, do(t, h, http.MethodGet, "/nodes/fade/sockets/Value", "")), 1e-9)

	w = do(t, h, http.MethodPost, "/state", `{"state": "idle"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var status agh.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "idle", status.State)
	assert.Empty(t, status.Updating)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/state", `{"state": "boss"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/tick", `{"elapsed_ms": -1}`).Code)
}

func TestServer_Snapshots(t *testing.T) {
	h := newHandler(t)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/nodes/cmp/sockets/B", `{"value": 7}`).Code)
	assert.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/snapshots/s1", "").Code)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/nodes/cmp/sockets/B", `{"value": 100}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/snapshots/s1/restore", "").Code)
	assert.Equal(t, 7.0, value(t, do(t, h, http.MethodGet, "/nodes/cmp/sockets/B", "")))

	w := do(t, h, http.MethodGet, "/snapshots/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["s1"]`, w.Body.String())

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/snapshots/s1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/snapshots/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/snapshots/nope/restore", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/snapshots/s1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/snapshots/s1", "").Code)
}

func TestServer_GraphAndCatalog(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	var g agh.GraphResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Equal(t, "active", g.State)
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Links, 2)

	w = do(t, h, http.MethodGet, "/graph/mermaid", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph LR")
	assert.Contains(t, w.Body.String(), "class state_active current;")

	w = do(t, h, http.MethodGet, "/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)
	var descs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &descs))
	assert.Len(t, descs, 36)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/catalog/Gate", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/catalog/Teleport", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	rt := newRuntime(t, actiongraph.WithLifecycleHooks(m.Hooks()))
	h := agh.NewHandler(rt, runner.New(rt), agh.WithMetrics(reg))

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/nodes/add/entries/In", "").Code)

	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `actiongraph_signals_total{entry="In",kind="AddInt"} 1`)

	assert.Equal(t, http.StatusNotFound, do(t, newHandler(t), http.MethodGet, "/metrics", "").Code)
}

func TestServer_Events(t *testing.T) {
	streams := agh.NewStreamManager(nil)
	rt := newRuntime(t, actiongraph.WithLifecycleHooks(streams.Hooks()))
	srv := httptest.NewServer(agh.NewHandler(rt, runner.New(rt), agh.WithStreams(streams)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	readUntil := func(substr string) bool {
		for lines.Scan() {
			if strings.Contains(lines.Text(), substr) {
				return true
			}
		}
		return false
	}
	require.True(t, readUntil("data: connected"))

	post, err := http.Post(srv.URL+"/nodes/add/entries/In", "application/json", nil)
	require.NoError(t, err)
	_ = post.Body.Close()

	assert.True(t, readUntil(`"type":"signal"`))
}
