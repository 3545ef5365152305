package api

import (
	"context"
	"errors"

	"bridgewise-ranker/internal/ranker"
)

// batchJob is one item of a /rank-connections/batch request running
// through the bounded worker pool below.
type batchJob struct {
	ctx    context.Context
	req    ranker.Request
	result chan<- batchResult
}

type batchResult struct {
	index int
	out   []ranker.RankedPerson
	err   error
}

// errQueueSaturated surfaces as a 503-equivalent rather than blocking the
// caller, per §5's back-pressure policy: fail fast on saturation instead
// of buffering unboundedly.
var errQueueSaturated = errors.New("rank batch queue saturated")

func (a *API) startBatchWorkers(n int) {
	for i := 0; i < n; i++ {
		go a.batchWorker()
	}
}

func (a *API) batchWorker() {
	for job := range a.batchQueue {
		out, err := a.ranker.Rank(job.ctx, job.req)
		job.result <- batchResult{out: out, err: err}
	}
}

// RankBatch fans independent per-query rank requests out across the
// worker pool; each item's candidate fetch and graph reads run
// independently since items may target different me_ids.
func (a *API) RankBatch(ctx context.Context, reqs []ranker.Request) ([][]ranker.RankedPerson, error) {
	results := make([]chan batchResult, len(reqs))
	for i, req := range reqs {
		ch := make(chan batchResult, 1)
		results[i] = ch
		select {
		case a.batchQueue <- batchJob{ctx: ctx, req: req, result: ch}:
		default:
			return nil, errQueueSaturated
		}
	}

	out := make([][]ranker.RankedPerson, len(reqs))
	for i, ch := range results {
		r := <-ch
		if r.err != nil {
			return nil, r.err
		}
		out[i] = r.out
	}
	return out, nil
}
