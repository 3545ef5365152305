package metrics

// BridgingCoefficients computes, per node, coeff = (1/deg) * (1/invSum)
// where invSum = sum(1/neighborDegree) over its neighbors, and 0 when
// the node has no neighbors or all neighbors are isolated. It mirrors
// the pure-Cypher degree/neighbor-degree collection the original
// service ran per layer, done here over the in-memory projection
// instead of a second round-trip to the store.
func BridgingCoefficients(g *Graph) []float64 {
	n := g.N()
	coeff := make([]float64, n)
	for i := 0; i < n; i++ {
		deg := g.Degree(i)
		if deg == 0 {
			continue
		}
		invSum := 0.0
		for _, nb := range g.adjacency[i] {
			if nbDeg := g.Degree(nb.node); nbDeg > 0 {
				invSum += 1.0 / float64(nbDeg)
			}
		}
		if invSum == 0 {
			continue
		}
		coeff[i] = (1.0 / float64(deg)) * (1.0 / invSum)
	}
	return coeff
}

// BridgePotential is betweenness * bridgeCoeff, the composite structural
// signal the ranker's struct_global component reads.
func BridgePotential(betweenness, bridgeCoeff []float64) []float64 {
	out := make([]float64, len(betweenness))
	for i := range out {
		out[i] = betweenness[i] * bridgeCoeff[i]
	}
	return out
}
