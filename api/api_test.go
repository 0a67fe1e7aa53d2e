package api_test

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/greenroute/api"
	"github.com/katalvlaran/greenroute/network"
	"github.com/katalvlaran/greenroute/observability"
)

const (
	nodesCSV = `Name,Production,Loss,Sustainability
Solar Farm,250,2,90
Substation North,0,5,60
Residential East,0,8,40
Storage Bay,0,1,80
`
	matrixCSV = `Node,Solar Farm,Substation North,Residential East,Storage Bay
Solar Farm,0,1,0,0
Substation North,1,0,1,0
Residential East,0,1,0,0
Storage Bay,0,0,0,0
`
)

type fixture struct {
	handler http.Handler
	svc     *network.Service
	logs    *observer.ObservedLogs
	dir     string
}

func newFixture(t *testing.T, load bool) *fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodes.csv"), []byte(nodesCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matrix.csv"), []byte(matrixCSV), 0o600))

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	metrics := observability.NewMetrics(false)
	svc, err := network.New(network.WithLogger(logger), network.WithMetrics(metrics))
	require.NoError(t, err)
	if load {
		require.NoError(t, svc.Load(context.Background(), filepath.Join(dir, "nodes.csv"), filepath.Join(dir, "matrix.csv")))
	}

	return &fixture{
		handler: api.NewServer(svc, logger, metrics).Handler(),
		svc:     svc,
		logs:    logs,
		dir:     dir,
	}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type routeResp struct {
	Path     []string `json:"path"`
	Cost     float64  `json:"cost"`
	Strategy string   `json:"strategy"`
	Hops     []struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Weight float64 `json:"weight"`
	} `json:"hops"`
}

func TestRoute(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodGet, "/v1/route?from=Solar+Farm&to=Residential+East", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	r := decodeBody[routeResp](t, rec)
	assert.Equal(t, []string{"Solar Farm", "Substation North", "Residential East"}, r.Path)
	assert.InDelta(t, 10.0, r.Cost, 1e-9)
	assert.Equal(t, "loss", r.Strategy)
	require.Len(t, r.Hops, 2)
	assert.InDelta(t, 3.5, r.Hops[0].Weight, 1e-9)

	rec = f.do(t, http.MethodGet, "/v1/route?from=Solar+Farm&to=Residential+East&strategy=Sostenibilidad", "")
	require.Equal(t, http.StatusOK, rec.Code)
	r = decodeBody[routeResp](t, rec)
	assert.Equal(t, "sustainability", r.Strategy)
	assert.InDelta(t, 275.0, r.Cost, 1e-9)
}

func TestRoute_Errors(t *testing.T) {
	f := newFixture(t, true)

	cases := []struct {
		name   string
		target string
		code   int
		msg    string
	}{
		{"no route", "/v1/route?from=Solar+Farm&to=Storage+Bay", http.StatusNotFound, "no route"},
		{"unknown endpoint", "/v1/route?from=Solar+Farm&to=Nowhere", http.StatusNotFound, ""},
		{"bad strategy", "/v1/route?from=Solar+Farm&to=Storage+Bay&strategy=cheapest", http.StatusBadRequest, ""},
		{"missing param", "/v1/route?from=Solar+Farm", http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.code, rec.Code)
			body := decodeBody[map[string]string](t, rec)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, body["error"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestNotLoaded(t *testing.T) {
	f := newFixture(t, false)

	for _, target := range []string{"/v1/nodes", "/v1/edges", "/v1/islands", "/v1/info", "/v1/dot", "/v1/route?from=a&to=b", "/v1/critical", "/v1/backbone", "/v1/redundancy?from=a&to=b"} {
		rec := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
	rec := f.do(t, http.MethodPost, "/v1/reload", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","loaded":false}`, rec.Body.String())
}

func TestNodesAndEdges(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodGet, "/v1/nodes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	nodes := decodeBody[[]map[string]interface{}](t, rec)
	require.Len(t, nodes, 4)
	byID := make(map[string]map[string]interface{})
	for _, n := range nodes {
		byID[n["id"].(string)] = n
	}
	assert.Equal(t, "green", byID["Solar Farm"]["color"])
	assert.Equal(t, "red", byID["Residential East"]["color"])
	assert.Equal(t, "blue", byID["Storage Bay"]["color"])
	assert.Equal(t, "orange", byID["Substation North"]["color"])

	rec = f.do(t, http.MethodGet, "/v1/edges?strategy=production", "")
	require.Equal(t, http.StatusOK, rec.Code)
	edges := decodeBody[[]struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Weight float64 `json:"weight"`
	}](t, rec)
	require.Len(t, edges, 2)
	assert.Equal(t, "Residential East", edges[0].From)
	assert.InDelta(t, 1000.0, edges[0].Weight, 1e-9)
	assert.InDelta(t, 1000.0/251, edges[1].Weight, 1e-9)
}

func TestIslandsAndInfo(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodGet, "/v1/islands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"islands":[["Residential East","Solar Farm","Substation North"],["Storage Bay"]]}`,
		rec.Body.String())

	rec = f.do(t, http.MethodGet, "/v1/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decodeBody[network.Info](t, rec)
	assert.Equal(t, 4, info.Nodes)
	assert.Equal(t, 1, info.Isolated)
}

func TestCriticalAndBackbone(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodGet, "/v1/critical", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cut_nodes":["Substation North"],"bridges":[
		{"from":"Residential East","to":"Substation North"},
		{"from":"Solar Farm","to":"Substation North"}]}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/v1/backbone?strategy=loss", "")
	require.Equal(t, http.StatusOK, rec.Code)
	bb := decodeBody[struct {
		Links []struct {
			From   string  `json:"from"`
			To     string  `json:"to"`
			Weight float64 `json:"weight"`
		} `json:"links"`
		Cost       float64 `json:"cost"`
		Strategy   string  `json:"strategy"`
		Components int     `json:"components"`
	}](t, rec)
	assert.Len(t, bb.Links, 2)
	assert.InDelta(t, 10.0, bb.Cost, 1e-9)
	assert.Equal(t, "loss", bb.Strategy)
	assert.Equal(t, 2, bb.Components)

	rec = f.do(t, http.MethodGet, "/v1/backbone?strategy=cheapest", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedundancy(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodGet, "/v1/redundancy?from=Solar+Farm&to=Residential+East&mode=nodes", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"source":"Solar Farm","sink":"Residential East","mode":"nodes","count":1,
		"routes":[["Solar Farm","Substation North","Residential East"]],
		"cut_nodes":["Substation North"]}`, rec.Body.String())

	cases := []struct {
		target string
		code   int
	}{
		{"/v1/redundancy?from=Solar+Farm", http.StatusBadRequest},
		{"/v1/redundancy?from=Solar+Farm&to=Solar+Farm", http.StatusBadRequest},
		{"/v1/redundancy?from=Solar+Farm&to=Storage+Bay&mode=pipes", http.StatusBadRequest},
		{"/v1/redundancy?from=Solar+Farm&to=Nowhere", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec = f.do(t, http.MethodGet, tc.target, "")
		assert.Equal(t, tc.code, rec.Code, tc.target)
	}
}

func TestDOT(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodGet, "/v1/dot?from=Solar+Farm&to=Residential+East", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "graphviz")
	out := rec.Body.String()
	assert.True(t, strings.HasPrefix(out, "graph "))
	assert.Contains(t, out, `"Solar Farm" -- "Substation North"`)
	assert.Contains(t, out, "penwidth=3")

	rec = f.do(t, http.MethodGet, "/v1/dot?from=Solar+Farm&to=Storage+Bay", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStrategyEndpoint(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodGet, "/v1/strategy", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"strategy":"loss"}`, rec.Body.String())

	rec = f.do(t, http.MethodPut, "/v1/strategy", `{"strategy":"Producción"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"strategy":"production"}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/v1/route?from=Solar+Farm&to=Residential+East", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "production", decodeBody[routeResp](t, rec).Strategy)

	for _, body := range []string{`{"strategy":"cheapest"}`, `{"mode":"loss"}`, `{"strategy":"loss"}{}`} {
		rec = f.do(t, http.MethodPut, "/v1/strategy", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	req := httptest.NewRequest(http.MethodPut, "/v1/strategy", strings.NewReader(`{"strategy":"loss"}`))
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing content type")
}

func TestReload(t *testing.T) {
	f := newFixture(t, true)

	updated := strings.Replace(matrixCSV, "Storage Bay,0,0,0,0", "Storage Bay,0,1,0,0", 1)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "matrix.csv"), []byte(updated), 0o600))

	rec := f.do(t, http.MethodPost, "/v1/reload", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	info := decodeBody[network.Info](t, rec)
	assert.Equal(t, 3, info.Edges)
	assert.Equal(t, uint64(2), info.Generation)

	rec = f.do(t, http.MethodGet, "/v1/route?from=Solar+Farm&to=Storage+Bay", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "nodes.csv"), []byte("Name\nX\n"), 0o600))
	rec = f.do(t, http.MethodPost, "/v1/reload", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = f.do(t, http.MethodGet, "/v1/route?from=Solar+Farm&to=Storage+Bay", "")
	assert.Equal(t, http.StatusOK, rec.Code, "failed reload keeps the previous network")
}

func TestMiddleware(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodGet, "/healthz", "")
	id := rec.Header().Get(api.RequestIDHeader)
	assert.Len(t, id, 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(api.RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(api.RequestIDHeader))

	entries := f.logs.FilterMessage("http request").FilterField(zap.String("request_id", "fixed-id")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])

	rec = f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `greenroute_http_requests_total{code="200",route="GET /healthz"}`)

	rec = f.do(t, http.MethodDelete, "/v1/nodes", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRespond_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	api.Respond(rec, http.StatusOK, map[string]float64{"cost": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	api.Respond(rec, http.StatusCreated, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := api.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		api.WithRequestID, api.WithLogger(zap.New(core)), api.Recover(nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic in handler").Len())
}
