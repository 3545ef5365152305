// Package metrics is the in-process replacement for the GDS graph-data-
// science calls the original service made against Neo4j
// (gds.graph.project.cypher / gds.louvain.write / gds.betweenness.write).
// No example in the reference corpus wraps an equivalent analytics engine
// as an importable Go library, so Louvain-style modularity maximization
// and Brandes betweenness are implemented here directly, following the
// in-memory Node/Edge/Graph projection shape the teacher used for its own
// community detection (internal/graphrag/community.go).
package metrics

// Edge is one weighted, undirected connection between two node ids.
type Edge struct {
	A, B   string
	Weight float64
}

// Graph is an in-memory weighted adjacency projection of one similarity
// layer, built once per recompute and discarded after metrics are
// written back.
type Graph struct {
	ids       []string
	index     map[string]int
	adjacency [][]neighbor
	community []int
}

type neighbor struct {
	node   int
	weight float64
}

// NewGraph builds a projection over ids, wiring in only the edges whose
// endpoints are both present (already excluded per Metrics Engine's
// exclude_ids list by the caller).
func NewGraph(ids []string, edges []Edge) *Graph {
	g := &Graph{
		ids:       ids,
		index:     make(map[string]int, len(ids)),
		adjacency: make([][]neighbor, len(ids)),
		community: make([]int, len(ids)),
	}
	for i, id := range ids {
		g.index[id] = i
		g.community[i] = i
	}
	for _, e := range edges {
		ai, aok := g.index[e.A]
		bi, bok := g.index[e.B]
		if !aok || !bok || ai == bi {
			continue
		}
		g.adjacency[ai] = append(g.adjacency[ai], neighbor{node: bi, weight: e.Weight})
		g.adjacency[bi] = append(g.adjacency[bi], neighbor{node: ai, weight: e.Weight})
	}
	return g
}

func (g *Graph) N() int { return len(g.ids) }

func (g *Graph) ID(i int) string { return g.ids[i] }

// Degree returns the unweighted degree (distinct-neighbor count) of node
// i, used by bridging-coefficient and the similarDegree property.
func (g *Graph) Degree(i int) int { return len(g.adjacency[i]) }

// WeightedDegree returns the sum of incident edge weights, used by
// Louvain's modularity gain.
func (g *Graph) WeightedDegree(i int) float64 {
	sum := 0.0
	for _, n := range g.adjacency[i] {
		sum += n.weight
	}
	return sum
}

func (g *Graph) TotalWeight() float64 {
	sum := 0.0
	for i := range g.ids {
		sum += g.WeightedDegree(i)
	}
	return sum / 2
}
