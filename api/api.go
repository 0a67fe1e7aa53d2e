// Package api exposes a network.Service over HTTP/JSON.
//
//	GET  /v1/info              snapshot summary
//	GET  /v1/nodes             nodes with category and color
//	GET  /v1/edges?strategy=   edges with resolved weights
//	GET  /v1/islands           connected components
//	GET  /v1/critical          cut nodes and bridges
//	GET  /v1/backbone?strategy= minimum spanning forest
//	GET  /v1/redundancy?from=&to=&mode=links|nodes
//	GET  /v1/route?from=&to=&strategy=
//	GET  /v1/dot?strategy=&from=&to=
//	GET  /v1/strategy          default strategy
//	PUT  /v1/strategy          {"strategy": "..."}
//	POST /v1/reload            re-read the table files
//	GET  /healthz
//	GET  /metrics
//
// An omitted strategy parameter means the service default.
package api

import (
	"bytes"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/katalvlaran/greenroute/flow"
	"github.com/katalvlaran/greenroute/network"
	"github.com/katalvlaran/greenroute/observability"
	"github.com/katalvlaran/greenroute/render"
	"github.com/katalvlaran/greenroute/strategy"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	svc     *network.Service
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewServer returns handlers backed by svc. logger and metrics may be nil.
func NewServer(svc *network.Service, logger *zap.Logger, metrics *observability.Metrics) *Server {
	return &Server{svc: svc, logger: observability.OrNop(logger).Named("api"), metrics: metrics}
}

// Handler returns the routed handler wrapped in the standard middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/info", s.info)
	mux.HandleFunc("GET /v1/nodes", s.nodes)
	mux.HandleFunc("GET /v1/edges", s.edges)
	mux.HandleFunc("GET /v1/islands", s.islands)
	mux.HandleFunc("GET /v1/critical", s.critical)
	mux.HandleFunc("GET /v1/backbone", s.backbone)
	mux.HandleFunc("GET /v1/redundancy", s.redundancy)
	mux.HandleFunc("GET /v1/route", s.route)
	mux.HandleFunc("GET /v1/dot", s.dot)
	mux.HandleFunc("GET /v1/strategy", s.getStrategy)
	mux.HandleFunc("PUT /v1/strategy", s.putStrategy)
	mux.HandleFunc("POST /v1/reload", s.reload)
	mux.HandleFunc("GET /healthz", s.healthz)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	// AccessLog must wrap the mux directly to see the matched pattern.
	return Chain(mux,
		WithRequestID,
		WithLogger(s.logger),
		Recover(s.logger),
		AccessLog(s.logger, s.metrics),
	)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusOf(err)
	if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
		LoggerFromContext(r.Context(), s.logger).Error("request failed", zap.Error(err))
	}
	Respond(w, code, newErrResp(msg))
}

// strategyParam reads ?strategy=, falling back to the service default.
func (s *Server) strategyParam(r *http.Request) (strategy.Strategy, error) {
	token := r.URL.Query().Get("strategy")
	if token == "" {
		return s.svc.Strategy(), nil
	}

	return strategy.Parse(token)
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.Info()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, info)
}

func (s *Server) nodes(w http.ResponseWriter, r *http.Request) {
	net, err := s.svc.Network()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, render.NodeViews(net))
}

func (s *Server) edges(w http.ResponseWriter, r *http.Request) {
	st, err := s.strategyParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	net, err := s.svc.Network()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	views, err := render.EdgeViews(net, st, s.svc.Params())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, views)
}

func (s *Server) islands(w http.ResponseWriter, r *http.Request) {
	islands, err := s.svc.Islands()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, struct {
		Islands [][]string `json:"islands"`
	}{Islands: islands})
}

func (s *Server) critical(w http.ResponseWriter, r *http.Request) {
	rep, err := s.svc.Critical()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, rep)
}

func (s *Server) backbone(w http.ResponseWriter, r *http.Request) {
	st, err := s.strategyParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bb, err := s.svc.Backbone(r.Context(), st)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, bb)
}

func (s *Server) redundancy(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		s.fail(w, r, fmt.Errorf("%w: from and to are required", errBadRequest))
		return
	}
	mode, err := flow.ParseMode(q.Get("mode"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.svc.Redundancy(r.Context(), from, to, mode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, res)
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		s.fail(w, r, fmt.Errorf("%w: from and to are required", errBadRequest))
		return
	}
	st, err := s.strategyParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rt, err := s.svc.FindRoute(r.Context(), from, to, st)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, rt)
}

func (s *Server) dot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	net, err := s.svc.Network()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var opts []render.DOTOption
	if q.Has("strategy") || q.Has("from") {
		st, err := s.strategyParam(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		opts = append(opts, render.WithStrategy(st, s.svc.Params()))
		if from, to := q.Get("from"), q.Get("to"); from != "" && to != "" {
			rt, err := s.svc.FindRoute(r.Context(), from, to, st)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			opts = append(opts, render.WithRoute(rt.Edges()))
		}
	}

	var buf bytes.Buffer
	if err = render.DOT(&buf, net, opts...); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type strategyBody struct {
	Strategy strategy.Strategy `json:"strategy"`
}

func (s *Server) getStrategy(w http.ResponseWriter, r *http.Request) {
	Respond(w, http.StatusOK, strategyBody{Strategy: s.svc.Strategy()})
}

func (s *Server) putStrategy(w http.ResponseWriter, r *http.Request) {
	body, err := decode[strategyBody](w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err = s.svc.SetStrategy(body.Strategy); err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, strategyBody{Strategy: s.svc.Strategy()})
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Reload(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	info, err := s.svc.Info()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Respond(w, http.StatusOK, info)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	status := struct {
		Status string `json:"status"`
		Loaded bool   `json:"loaded"`
	}{Status: "ok"}
	_, err := s.svc.Network()
	status.Loaded = err == nil
	Respond(w, http.StatusOK, status)
}
