// Package graphstore adapts the property graph (Person/Skill/Company/
// School/Title nodes; HAS_SKILL/WORKED_AT/ATTENDED/KNOWS/SIMILAR/
// SIMILAR_JOB relationships) onto Neo4j. Every exported type here is an
// explicit record — no map[string]interface{} property bags leak past
// this package, per the node/edge model the ranker is built against.
package graphstore

// Person is the ranker's working view of a :Person node. Structural
// fields are populated by the Metrics Engine; everything else comes from
// the (out-of-scope) ingestion pipeline.
type Person struct {
	ID        string
	Name      string
	Title     string
	Company   string
	Companies []string
	Skills    []string

	JobTitleCanon       string
	JobTitleCanonTokens []string

	CommunitySkills int64
	CommunityJob    int64

	BetweennessSkills float64
	BetweennessJob    float64

	BridgeCoeffSkills float64
	BridgeCoeffJob    float64

	BridgePotentialSkills float64
	BridgePotentialJob    float64

	SimilarDegreeSkills int64
	SimilarDegreeJob    int64
}

// SimilarEdge is one (a,b) pair of the SIMILAR or SIMILAR_JOB layer in
// canonical orientation (a.id < b.id).
type SimilarEdge struct {
	A, B   string
	Weight float64
}

// WeightedEdge is the plain data shape LoadLayer hands to the Metrics
// Engine — graphstore has no dependency on internal/metrics, so the
// engine re-wraps this into its own Graph type.
type WeightedEdge struct {
	A, B   string
	Weight float64
}

// LayerMetrics is what the Metrics Engine writes back per person for one
// layer (Skills or Job).
type LayerMetrics struct {
	PersonID        string
	Community       int64
	Betweenness     float64
	BridgeCoeff     float64
	BridgePotential float64
	Degree          int64
}

// ClusterSummary is the response shape of /clusters.
type ClusterSummary struct {
	Community int64 `json:"community"`
	Size      int64 `json:"size"`
}

// ClusterDetail is the response shape of /clusters/summary entries.
type ClusterDetail struct {
	Community int64    `json:"community"`
	Size      int64    `json:"size"`
	TopSkills []string `json:"topSkills"`
	TopTitles []string `json:"topTitles"`
}

// ClusterMember is the response shape of /clusters/{cid} entries.
type ClusterMember struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Title           string  `json:"title"`
	Company         string  `json:"company"`
	BridgePotential float64 `json:"bridgePotential"`
}

// RecomputeOptions mirrors the POST /recompute request body.
type RecomputeOptions struct {
	MinSharedSkills int
	WeightMode      string // "count" | "jaccard"
	BoostCompany    float64
	BoostSchool     float64
	Exclude         []string
	MaxIter         int
	EmbedTopK       int
	EmbedScale      float64
}
