package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires every endpoint named in §4.6, CORS-wrapped and with
// swagger docs served the same way the teacher's router did.
func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /rank-connections", a.RankConnectionsHandler)
	mux.HandleFunc("POST /rank-connections/batch", a.RankConnectionsBatchHandler)
	mux.HandleFunc("POST /rank-connections/explain", a.RankConnectionsExplainHandler)
	mux.HandleFunc("POST /rank-connections/graph", a.RankConnectionsGraphHandler)
	mux.HandleFunc("POST /rank", a.RankHandler)
	mux.HandleFunc("POST /recompute", a.RecomputeHandler)

	mux.HandleFunc("GET /clusters", a.ClustersHandler)
	mux.HandleFunc("GET /clusters/summary", a.ClustersSummaryHandler)
	mux.HandleFunc("GET /clusters/{cid}", a.ClusterMembersHandler)
	mux.HandleFunc("GET /person/{pid}", a.PersonHandler)
	mux.HandleFunc("GET /intro-path", a.IntroPathHandler)

	return withCORS(mux)
}
