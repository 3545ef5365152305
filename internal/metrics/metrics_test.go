package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoCliquesGraph() *Graph {
	// two triangles (a,b,c) and (d,e,f) bridged by a single c-d edge.
	ids := []string{"a", "b", "c", "d", "e", "f"}
	edges := []Edge{
		{A: "a", B: "b", Weight: 1},
		{A: "b", B: "c", Weight: 1},
		{A: "a", B: "c", Weight: 1},
		{A: "d", B: "e", Weight: 1},
		{A: "e", B: "f", Weight: 1},
		{A: "d", B: "f", Weight: 1},
		{A: "c", B: "d", Weight: 1},
	}
	return NewGraph(ids, edges)
}

func TestLouvainSeparatesTwoCliques(t *testing.T) {
	g := twoCliquesGraph()
	communities := Louvain(g, 50)
	require.Len(t, communities, 6)

	idxOf := func(id string) int {
		for i := 0; i < g.N(); i++ {
			if g.ID(i) == id {
				return i
			}
		}
		t.Fatalf("id %s not found", id)
		return -1
	}

	assert.Equal(t, communities[idxOf("a")], communities[idxOf("b")])
	assert.Equal(t, communities[idxOf("b")], communities[idxOf("c")])
	assert.Equal(t, communities[idxOf("d")], communities[idxOf("e")])
	assert.Equal(t, communities[idxOf("e")], communities[idxOf("f")])
	assert.NotEqual(t, communities[idxOf("a")], communities[idxOf("d")])
}

func TestBetweennessHighestOnBridgeNodes(t *testing.T) {
	g := twoCliquesGraph()
	b := Betweenness(g)

	idxOf := func(id string) int {
		for i := 0; i < g.N(); i++ {
			if g.ID(i) == id {
				return i
			}
		}
		t.Fatalf("id %s not found", id)
		return -1
	}

	cIdx, dIdx, aIdx := idxOf("c"), idxOf("d"), idxOf("a")
	assert.Greater(t, b[cIdx], b[aIdx])
	assert.Greater(t, b[dIdx], b[aIdx])
}

func TestBridgingCoefficientZeroForIsolatedNode(t *testing.T) {
	g := NewGraph([]string{"solo", "x", "y"}, []Edge{{A: "x", B: "y", Weight: 1}})
	coeff := BridgingCoefficients(g)
	assert.Equal(t, 0.0, coeff[0])
}

func TestBridgePotentialMultipliesBetweennessAndCoeff(t *testing.T) {
	betweenness := []float64{2.0, 0.0}
	bridgeCoeff := []float64{0.5, 1.0}
	potential := BridgePotential(betweenness, bridgeCoeff)
	assert.Equal(t, []float64{1.0, 0.0}, potential)
}
