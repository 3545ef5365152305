// Package api wires the HTTP surface: rank-connections, the plain
// whole-graph rank, cluster inspection, recompute, and intro-path,
// following the teacher's API-struct-plus-NewRouter shape
// (internal/api/handler.go, internal/api/router.go).
package api

import (
	"log"
	"time"

	"bridgewise-ranker/internal/cache"
	"bridgewise-ranker/internal/config"
	"bridgewise-ranker/internal/embedding"
	"bridgewise-ranker/internal/graphstore"
	"bridgewise-ranker/internal/metrics"
	"bridgewise-ranker/internal/ranker"
	"bridgewise-ranker/internal/vectorstore"
)

// API holds every collaborator a handler might need. Any of vectors,
// embedder, or cache may be nil (degraded mode per §7 StoreUnavailable);
// handlers that need them must check.
type API struct {
	store    *graphstore.Store
	vectors  *vectorstore.Client
	embedder *embedding.Embedder
	engine   *metrics.Engine
	ranker   *ranker.Ranker
	cache    cache.Store
	weights  config.RankWeights

	batchQueue chan batchJob
}

func New(store *graphstore.Store, vectors *vectorstore.Client, embedder *embedding.Embedder, cacheStore cache.Store, weights config.RankWeights) *API {
	engine := metrics.NewEngine(store, 20)
	a := &API{
		store:      store,
		vectors:    vectors,
		embedder:   embedder,
		engine:     engine,
		ranker:     ranker.New(store, vectors, embedder),
		cache:      cacheStore,
		weights:    weights,
		batchQueue: make(chan batchJob, 64),
	}
	a.startBatchWorkers(8)
	return a
}

// cacheTTL is how long a rank result for an identical (me_id, query,
// weights) combination stays valid. POST /recompute clears the cache
// outright; otherwise results are keyed off the request only, not a graph
// version stamp, so graph changes made elsewhere show up once the TTL
// lapses.
const cacheTTL = 2 * time.Minute

func (a *API) logf(format string, args ...any) {
	log.Printf("[api] "+format, args...)
}
