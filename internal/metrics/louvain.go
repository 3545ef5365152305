package metrics

import (
	"math/rand"
)

// Louvain runs single-level modularity-maximizing community detection:
// each node starts in its own community, then repeatedly moves to
// whichever neighboring community yields the largest modularity gain,
// for up to maxIter passes or until a pass makes no move. This mirrors
// the iterative move-based optimization the teacher's leiden() used
// (internal/graphrag/community.go), generalized from its unweighted
// connection-count heuristic to the real modularity-gain formula Louvain
// is defined by, since the metrics this engine writes are consumed as
// real community ids, not an approximation.
func Louvain(g *Graph, maxIter int) []int64 {
	n := g.N()
	if n == 0 {
		return nil
	}
	m := g.TotalWeight()
	community := make([]int, n)
	sigmaTot := make([]float64, n)
	for i := 0; i < n; i++ {
		community[i] = i
		sigmaTot[i] = g.WeightedDegree(i)
	}

	if m > 0 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}

		for iter := 0; iter < maxIter; iter++ {
			rand.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
			moved := false

			for _, node := range order {
				ci := community[node]
				ki := g.WeightedDegree(node)

				sigmaTot[ci] -= ki
				neighborWeight := map[int]float64{}
				for _, nb := range g.adjacency[node] {
					if nb.node == node {
						continue
					}
					neighborWeight[community[nb.node]] += nb.weight
				}

				bestCommunity := ci
				bestGain := neighborWeight[ci]/m - (sigmaTot[ci]*ki)/(2*m*m)
				for c, kIn := range neighborWeight {
					if c == ci {
						continue
					}
					gain := kIn/m - (sigmaTot[c]*ki)/(2*m*m)
					if gain > bestGain {
						bestGain = gain
						bestCommunity = c
					}
				}

				community[node] = bestCommunity
				sigmaTot[bestCommunity] += ki
				if bestCommunity != ci {
					moved = true
				}
			}

			if !moved {
				break
			}
		}
	}

	relabeled := relabel(community)
	out := make([]int64, n)
	for i, c := range relabeled {
		out[i] = int64(c)
	}
	return out
}

// relabel compacts arbitrary community ids into a dense 0..k-1 range so
// downstream consumers (cluster listing, grouping) see stable small ids.
func relabel(community []int) []int {
	next := map[int]int{}
	out := make([]int, len(community))
	for i, c := range community {
		id, ok := next[c]
		if !ok {
			id = len(next)
			next[c] = id
		}
		out[i] = id
	}
	return out
}
