package api

import (
	"net/http"
	"strconv"

	"bridgewise-ranker/internal/apperr"
)

// ClustersHandler implements GET /clusters: community id + size, skills
// layer.
func (a *API) ClustersHandler(w http.ResponseWriter, r *http.Request) {
	out, err := a.store.Clusters(r.Context())
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ClustersSummaryHandler implements GET /clusters/summary?top_n=.
func (a *API) ClustersSummaryHandler(w http.ResponseWriter, r *http.Request) {
	topN := 5
	if v := r.URL.Query().Get("top_n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			topN = n
		}
	}
	out, err := a.store.ClusterSummaries(r.Context(), topN)
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ClusterMembersHandler implements GET /clusters/{cid}?limit=.
func (a *API) ClusterMembersHandler(w http.ResponseWriter, r *http.Request) {
	cidStr := r.PathValue("cid")
	cid, err := strconv.ParseInt(cidStr, 10, 64)
	if err != nil {
		writeKindError(w, fmtValidation("cid must be an integer"))
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	out, err := a.store.ClusterMembers(r.Context(), cid, limit)
	if err != nil {
		writeKindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// PersonHandler implements GET /person/{pid}: person plus community and
// bridge potential.
func (a *API) PersonHandler(w http.ResponseWriter, r *http.Request) {
	pid := r.PathValue("pid")
	person, err := a.store.GetPerson(r.Context(), pid)
	if err != nil {
		writeKindError(w, err)
		return
	}
	if person == nil {
		writeKindError(w, fmtNotFound("person not found: "+pid))
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// IntroPathHandler implements GET /intro-path?src&dst&max_depth.
func (a *API) IntroPathHandler(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("src")
	dst := r.URL.Query().Get("dst")
	if src == "" || dst == "" {
		writeKindError(w, fmtValidation("src and dst are required"))
		return
	}
	maxDepth := 4
	if v := r.URL.Query().Get("max_depth"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxDepth = n
		}
	}
	path, hops, err := a.store.ShortestKnowsPath(r.Context(), src, dst, maxDepth)
	if err != nil {
		writeKindError(w, err)
		return
	}
	if len(path) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"path": []string{}, "hops": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"path": path, "hops": hops})
}

func fmtValidation(msg string) error {
	return wrapErr(apperr.ErrValidation, msg)
}

func fmtNotFound(msg string) error {
	return wrapErr(apperr.ErrNotFound, msg)
}
