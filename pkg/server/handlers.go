package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	errs "github.com/matzehuels/heaviest/pkg/errors"
	"github.com/matzehuels/heaviest/pkg/graphio"
	"github.com/matzehuels/heaviest/pkg/observability"
	"github.com/matzehuels/heaviest/pkg/render/nodelink"
)

type edgeRequest struct {
	U *int `json:"u"`
	V *int `json:"v"`
}

type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"instance": s.id,
		"uptime":   time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleMax(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	v, ok := s.g.MaxNeighborhoodWeight()
	var st graphio.VertexState
	if ok {
		st = vertexState(s.g, v)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, errs.New(errs.ErrCodeNotFound, "graph is empty"))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.g.Stats()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleVertices(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := graphio.TakeSnapshot(s.g)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap.Vertices)
}

func (s *Server) handleVertex(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	v, ok := s.g.Vertex(id)
	var st graphio.VertexState
	if ok {
		st = vertexState(s.g, v)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, errs.New(errs.ErrCodeNotFound, "vertex %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteVertex(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	ok := s.g.DeleteNode(id)
	nodes, edges := s.g.NumNodes(), s.g.NumEdges()
	s.mu.Unlock()

	if !ok {
		writeError(w, errs.New(errs.ErrCodeNotFound, "vertex %d not found", id))
		return
	}
	observability.Server().OnMutation(r.Context(), "delete", nodes, edges)
	s.logger.Info("deleted vertex", "id", id, "nodes", nodes, "edges", edges)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req edgeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode edge"))
		return
	}
	if req.U == nil || req.V == nil {
		writeError(w, errs.New(errs.ErrCodeInvalidInput, "edge needs both u and v"))
		return
	}
	u, v := *req.U, *req.V
	if u == v {
		writeError(w, errs.New(errs.ErrCodeInvalidInput, "self loop on %d", u))
		return
	}

	s.mu.Lock()
	var err error
	switch {
	case !s.g.Has(u):
		err = errs.New(errs.ErrCodeNotFound, "vertex %d not found", u)
	case !s.g.Has(v):
		err = errs.New(errs.ErrCodeNotFound, "vertex %d not found", v)
	case !s.g.AddEdge(u, v):
		err = errs.New(errs.ErrCodeInvalidOperation, "edge (%d, %d) already exists", u, v)
	}
	nodes, edges := s.g.NumNodes(), s.g.NumEdges()
	s.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	observability.Server().OnMutation(r.Context(), "add", nodes, edges)
	s.logger.Info("added edge", "u", u, "v", v, "edges", edges)
	writeJSON(w, http.StatusCreated, graph.Edge{U: min(u, v), V: max(u, v)})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	engine := r.URL.Query().Get("engine")
	if engine == "" {
		engine = s.engine
	}

	s.mu.Lock()
	dot := nodelink.ToDOT(s.g, nodelink.Options{ShowWeights: true, HighlightMax: true})
	s.mu.Unlock()

	svg, hit, err := s.renderer.Render(r.Context(), dot, engine, nodelink.FormatSVG)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(hit))
	_, _ = w.Write(svg)
}

func vertexState(g *graph.Graph, v graph.Vertex) graphio.VertexState {
	return graphio.VertexState{
		ID:                 v.ID,
		Weight:             v.Weight,
		NeighborhoodWeight: g.NeighborhoodWeight(v.ID),
		Degree:             g.Degree(v.ID),
	}
}

func idParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "vertex id %q", raw)
	}
	return id, nil
}

var statusByCode = map[errs.Code]int{
	errs.ErrCodeInvalidInput:     http.StatusBadRequest,
	errs.ErrCodeInvalidFormat:    http.StatusBadRequest,
	errs.ErrCodeUnsupported:      http.StatusBadRequest,
	errs.ErrCodeNotFound:         http.StatusNotFound,
	errs.ErrCodeInvalidOperation: http.StatusConflict,
}

func writeError(w http.ResponseWriter, err error) {
	status, ok := statusByCode[errs.GetCode(err)]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorResponse{Code: errs.GetCode(err), Message: errs.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
