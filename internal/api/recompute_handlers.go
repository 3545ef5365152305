package api

import (
	"context"
	"encoding/json"
	"net/http"

	"bridgewise-ranker/internal/embedding"
	"bridgewise-ranker/internal/graphstore"
	"bridgewise-ranker/internal/vectorstore"
)

// recomputeBody mirrors the POST /recompute contract from §6.
type recomputeBody struct {
	MinSharedSkills int      `json:"min_shared_skills"`
	WeightMode      string   `json:"weight_mode"`
	BoostCompany    float64  `json:"boost_company"`
	BoostSchool     float64  `json:"boost_school"`
	Exclude         []string `json:"exclude"`
	MaxIter         int      `json:"max_iter"`
	EmbedTopK       int      `json:"embed_top_k"`
	EmbedScale      float64  `json:"embed_scale"`
}

// RecomputeHandler implements POST /recompute: rebuild both similarity
// layers and their structural metrics, with an optional embedding-kNN
// augmentation pass when embed_top_k > 0.
func (a *API) RecomputeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body := recomputeBody{MinSharedSkills: 2, WeightMode: "count", BoostCompany: 1.0, BoostSchool: 0.5, MaxIter: 20, EmbedScale: 1.0}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	opts := graphstore.RecomputeOptions{
		MinSharedSkills: body.MinSharedSkills,
		WeightMode:      body.WeightMode,
		BoostCompany:    body.BoostCompany,
		BoostSchool:     body.BoostSchool,
		Exclude:         body.Exclude,
		MaxIter:         body.MaxIter,
		EmbedTopK:       body.EmbedTopK,
		EmbedScale:      body.EmbedScale,
	}

	if err := a.engine.RecomputeAll(r.Context(), opts); err != nil {
		writeKindError(w, err)
		return
	}

	if body.EmbedTopK > 0 {
		if err := augmentWithEmbeddings(r.Context(), a.store, a.vectors, a.embedder, body.EmbedTopK, body.EmbedScale); err != nil {
			a.logf("embedding augmentation failed: %v", err)
		}
	}

	if a.cache != nil {
		_ = a.cache.Clear(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "params": body})
}

// augmentWithEmbeddings runs a per-node kNN pass against the vector
// store and folds scaled similarity scores into the SIMILAR layer,
// grounded on similarity_builder.py's augment_with_embedding_edges.
// Skipped entirely (not an error) when no vector store is configured.
func augmentWithEmbeddings(ctx context.Context, store *graphstore.Store, vectors *vectorstore.Client, embedder *embedding.Embedder, topK int, scale float64) error {
	if vectors == nil {
		return nil
	}
	ids, err := store.AllPersonIDs(ctx)
	if err != nil {
		return err
	}
	var edges []graphstore.SimilarEdge
	for _, id := range ids {
		matches, err := vectors.QueryByID(ctx, id, topK+1, "")
		if err != nil {
			continue
		}
		for _, m := range matches {
			if m.ID == id {
				continue
			}
			if m.Score <= 0 {
				continue
			}
			edges = append(edges, graphstore.SimilarEdge{A: id, B: m.ID, Weight: m.Score * scale})
		}
	}
	return store.ApplyEmbeddingEdges(ctx, edges)
}
