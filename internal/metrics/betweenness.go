package metrics

// Betweenness computes unweighted Brandes betweenness centrality for
// every node, matching the original gds.betweenness.write call made
// with no relationshipWeightProperty set.
func Betweenness(g *Graph) []float64 {
	n := g.N()
	centrality := make([]float64, n)
	if n == 0 {
		return centrality
	}

	for s := 0; s < n; s++ {
		stack := make([]int, 0, n)
		predecessors := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[s] = 1
		dist[s] = 0

		queue := make([]int, 0, n)
		queue = append(queue, s)
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, nb := range g.adjacency[v] {
				w := nb.node
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				centrality[w] += delta[w]
			}
		}
	}

	for i := range centrality {
		centrality[i] /= 2
	}
	return centrality
}
