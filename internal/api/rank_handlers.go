package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bridgewise-ranker/internal/apperr"
	"bridgewise-ranker/internal/cache"
	"bridgewise-ranker/internal/ranker"
)

// rankConnectionsBody mirrors the /rank-connections request contract
// from §6, with every weight individually overridable.
type rankConnectionsBody struct {
	MeID          string   `json:"me_id"`
	Query         string   `json:"query"`
	TopK          *int     `json:"top_k"`
	PineconeTopK  *int     `json:"pinecone_top_k"`
	Prefilter     *bool    `json:"prefilter"`
	WVec          *float64 `json:"w_vec"`
	WSkill        *float64 `json:"w_skill"`
	WJob          *float64 `json:"w_job"`
	WStructGlobal *float64 `json:"w_struct_global"`
	WStructEgo    *float64 `json:"w_struct_ego"`
	WCompany      *float64 `json:"w_company"`
	RescaleTop    *float64 `json:"rescale_top"`
	Debug         bool     `json:"debug"`
}

func (a *API) toRequest(b rankConnectionsBody) ranker.Request {
	req := ranker.Request{
		MeID:         b.MeID,
		Query:        b.Query,
		TopK:         20,
		PineconeTopK: 1000,
		Prefilter:    true,
		Weights:      a.weights,
		RescaleTop:   0.8,
		Debug:        b.Debug,
	}
	if b.TopK != nil {
		req.TopK = *b.TopK
	}
	if b.PineconeTopK != nil {
		req.PineconeTopK = *b.PineconeTopK
	}
	if b.Prefilter != nil {
		req.Prefilter = *b.Prefilter
	}
	if b.WVec != nil {
		req.Weights.Vec = *b.WVec
	}
	if b.WSkill != nil {
		req.Weights.Skill = *b.WSkill
	}
	if b.WJob != nil {
		req.Weights.Job = *b.WJob
	}
	if b.WStructGlobal != nil {
		req.Weights.StructGlobal = *b.WStructGlobal
	}
	if b.WStructEgo != nil {
		req.Weights.StructEgo = *b.WStructEgo
	}
	if b.WCompany != nil {
		req.Weights.Company = *b.WCompany
	}
	if b.RescaleTop != nil {
		req.RescaleTop = *b.RescaleTop
	}
	return req
}

// RankConnectionsHandler implements POST /rank-connections.
func (a *API) RankConnectionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body rankConnectionsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.MeID == "" {
		writeKindError(w, fmt.Errorf("%w: me_id is required", apperr.ErrValidation))
		return
	}

	req := a.toRequest(body)
	key := cache.Key("rank", req.MeID, req.Query, fmt.Sprintf("%+v", req.Weights))
	if a.cache != nil {
		var cached []ranker.RankedPerson
		if found, _ := a.cache.Get(r.Context(), key, &cached); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	out, err := a.ranker.Rank(r.Context(), req)
	if err != nil {
		writeKindError(w, err)
		return
	}
	if out == nil {
		out = []ranker.RankedPerson{}
	}
	if a.cache != nil {
		_ = a.cache.Set(r.Context(), key, out, cacheTTL)
	}
	writeJSON(w, http.StatusOK, out)
}

// RankConnectionsBatchHandler implements POST /rank-connections/batch.
func (a *API) RankConnectionsBatchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var bodies []rankConnectionsBody
	if err := json.NewDecoder(r.Body).Decode(&bodies); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	reqs := make([]ranker.Request, len(bodies))
	for i, b := range bodies {
		reqs[i] = a.toRequest(b)
	}

	out, err := a.RankBatch(r.Context(), reqs)
	if err != nil {
		if err == errQueueSaturated {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// RankConnectionsExplainHandler implements POST /rank-connections/explain.
func (a *API) RankConnectionsExplainHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body struct {
		MeID   string `json:"me_id"`
		Query  string `json:"query"`
		Sample int    `json:"sample"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	out, err := a.ranker.Explain(r.Context(), body.MeID, body.Query, body.Sample)
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// graphNode is one annotated node in the /rank-connections/graph response.
type graphNode struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

type graphResponse struct {
	Nodes    []graphNode `json:"nodes"`
	Edges    [][2]string `json:"edges"`
	Fallback bool        `json:"fallback,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// RankConnectionsGraphHandler implements POST /rank-connections/graph: a
// subgraph limited to {me} ∪ top_k, with KNOWS edges between them and
// each node annotated with its score. On embedding failure it degrades
// to me's direct neighbors with fallback=true rather than 500ing, per §7.
func (a *API) RankConnectionsGraphHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body rankConnectionsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req := a.toRequest(body)

	ranked, err := a.ranker.Rank(r.Context(), req)
	if err != nil && apperr.Kind(err) == apperr.ErrEmbedFailure {
		a.writeDegradedGraph(w, r, req.MeID, req.TopK, err)
		return
	}
	if err != nil {
		writeKindError(w, err)
		return
	}

	ids := make([]string, 0, len(ranked)+1)
	ids = append(ids, req.MeID)
	nodes := make([]graphNode, 0, len(ranked)+1)
	nodes = append(nodes, graphNode{ID: req.MeID})
	for _, p := range ranked {
		ids = append(ids, p.ID)
		nodes = append(nodes, graphNode{ID: p.ID, Name: p.Name, Title: p.Title, Score: p.Score})
	}

	edges, err := a.store.KnowsEdgesAmong(r.Context(), ids)
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{Nodes: nodes, Edges: edges})
}

func (a *API) writeDegradedGraph(w http.ResponseWriter, r *http.Request, meID string, limit int, cause error) {
	if limit <= 0 {
		limit = 20
	}
	neighbors, nerr := a.store.FirstDegreeNeighbors(r.Context(), meID, limit)
	if nerr != nil {
		writeKindError(w, nerr)
		return
	}
	nodes := make([]graphNode, 0, len(neighbors)+1)
	nodes = append(nodes, graphNode{ID: meID})
	ids := []string{meID}
	for _, p := range neighbors {
		nodes = append(nodes, graphNode{ID: p.ID, Name: p.Name, Title: p.Title})
		ids = append(ids, p.ID)
	}
	edges, _ := a.store.KnowsEdgesAmong(r.Context(), ids)
	writeJSON(w, http.StatusOK, graphResponse{Nodes: nodes, Edges: edges, Fallback: true, Error: cause.Error()})
}

// RankHandler implements the plain POST /rank whole-graph endpoint.
func (a *API) RankHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body struct {
		Query   string   `json:"query"`
		TopK    int      `json:"top_k"`
		Exclude []string `json:"exclude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	out, err := a.ranker.RankGlobal(r.Context(), body.Query, body.TopK, body.Exclude)
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
