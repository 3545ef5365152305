package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bridgewise-ranker/internal/canon"
	"bridgewise-ranker/internal/graphstore"
)

// Engine orchestrates a full recompute pass: title canonicalization,
// similarity-layer rebuilds, and per-layer community/betweenness/bridging
// metrics, writing everything back to the store. A process-wide mutex
// serializes recomputes against each other while leaving reads lock-free,
// per the concurrency model the ranker is built against — a recompute in
// progress should never block a rank request, only another recompute.
type Engine struct {
	store   *graphstore.Store
	mu      sync.Mutex
	maxIter int
}

func NewEngine(store *graphstore.Store, maxIter int) *Engine {
	if maxIter <= 0 {
		maxIter = 20
	}
	return &Engine{store: store, maxIter: maxIter}
}

// RecomputeAll runs the full pipeline: canonicalize titles, rebuild both
// similarity layers, then compute and write community/betweenness/
// bridging metrics for each. It mirrors precompute_graph.py's main(),
// which always canonicalizes titles before rebuilding either layer since
// SIMILAR_JOB depends on jobTitleCanon.
func (e *Engine) RecomputeAll(ctx context.Context, opts graphstore.RecomputeOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.canonicalizeTitles(ctx); err != nil {
		return fmt.Errorf("canonicalize titles: %w", err)
	}

	if err := e.store.RebuildSimilar(ctx, opts.MinSharedSkills, opts.WeightMode, opts.BoostCompany, opts.BoostSchool); err != nil {
		return fmt.Errorf("rebuild similar: %w", err)
	}
	if err := e.store.RebuildSimilarJob(ctx, 1.0); err != nil {
		return fmt.Errorf("rebuild similar_job: %w", err)
	}

	maxIter := e.maxIter
	if opts.MaxIter > 0 {
		maxIter = opts.MaxIter
	}
	if err := e.recomputeLayer(ctx, "SIMILAR", opts.Exclude, maxIter, "communitySkills", "betweennessSkills", "bridgeCoeffSkills", "bridgePotentialSkills", "similarDegreeSkills"); err != nil {
		return fmt.Errorf("recompute skills layer: %w", err)
	}
	if err := e.recomputeLayer(ctx, "SIMILAR_JOB", opts.Exclude, maxIter, "communityJob", "betweennessJob", "bridgeCoeffJob", "bridgePotentialJob", "similarDegreeJob"); err != nil {
		return fmt.Errorf("recompute job layer: %w", err)
	}
	return nil
}

func (e *Engine) canonicalizeTitles(ctx context.Context) error {
	raw, err := e.store.FetchRawTitles(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, r := range raw {
		result := canon.Canonicalize(r.Title, r.SchoolDateRange, now)
		if err := e.store.WriteJobTitleCanon(ctx, r.ID, result.Category, result.Tokens); err != nil {
			return err
		}
	}
	return nil
}

// recomputeLayer runs run_metrics_generic's Go equivalent for one layer:
// load the projection, run Louvain + Brandes + bridging in memory, then
// write the five properties back in a single batched transaction.
func (e *Engine) recomputeLayer(ctx context.Context, relType string, exclude []string, maxIter int,
	communityProp, betweennessProp, bridgeCoeffProp, bridgePotentialProp, degreeProp string) error {

	ids, weighted, err := e.store.LoadLayer(ctx, relType, exclude)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	edges := make([]Edge, len(weighted))
	for i, w := range weighted {
		edges[i] = Edge{A: w.A, B: w.B, Weight: w.Weight}
	}
	g := NewGraph(ids, edges)

	communities := Louvain(g, maxIter)
	betweenness := Betweenness(g)
	bridgeCoeff := BridgingCoefficients(g)
	bridgePotential := BridgePotential(betweenness, bridgeCoeff)

	rows := make([]graphstore.LayerMetrics, g.N())
	for i := 0; i < g.N(); i++ {
		rows[i] = graphstore.LayerMetrics{
			PersonID:        g.ID(i),
			Community:       communities[i],
			Betweenness:     betweenness[i],
			BridgeCoeff:     bridgeCoeff[i],
			BridgePotential: bridgePotential[i],
			Degree:          int64(g.Degree(i)),
		}
	}
	return e.store.WriteLayerMetrics(ctx, communityProp, betweennessProp, bridgeCoeffProp, bridgePotentialProp, degreeProp, rows)
}
