package ranker

import (
	"testing"

	"bridgewise-ranker/internal/graphstore"
	"bridgewise-ranker/internal/query"

	"github.com/stretchr/testify/assert"
)

func TestJaccardPureSkillMatch(t *testing.T) {
	// scenario 1: P2 skills=[python,sql] vs goal [python] outscores
	// P3 skills=[go].
	p2 := jaccard([]string{"python"}, []string{"python", "sql"})
	p3 := jaccard([]string{"python"}, []string{"go"})
	assert.Greater(t, p2, 0.0)
	assert.Equal(t, 0.0, p3)
	assert.Greater(t, p2, p3)
}

func TestCompanyMatchFuzzy(t *testing.T) {
	// scenario 2: "at gogle" against a universe containing "google".
	vocab := &query.Vocabulary{Companies: []string{"google"}}
	parsed := query.Parse("looking for someone at gogle", vocab)
	assert.Equal(t, []string{"google"}, parsed.GoalCompanies)
	assert.Equal(t, 1.0, companyMatch(parsed.GoalCompanies, nil, "google"))
	assert.Equal(t, 0.0, companyMatch(parsed.GoalCompanies, nil, "amazon"))
}

func TestCompanyMatchUsesWorkedAtCompanies(t *testing.T) {
	// a candidate whose scalar company is stale ("amazon") but whose
	// WORKED_AT history includes the goal company should still match.
	goals := []string{"google"}
	assert.InDelta(t, 1.0/3.0, companyMatch(goals, []string{"google", "meta"}, "amazon"), 0.001)
	assert.Equal(t, 0.0, companyMatch(goals, []string{"meta"}, "amazon"))
}

func TestExpandJobTokensAddsRoleRoot(t *testing.T) {
	// scenario 3: jobTitleCanonTokens=["softwareengineer"] should expand
	// to include the bare "engineer" root.
	expanded := expandJobTokens([]string{"softwareengineer"})
	assert.Contains(t, expanded, "softwareengineer")
	assert.Contains(t, expanded, "engineer")
}

func TestRoleSingularizationParsing(t *testing.T) {
	parsed := query.Parse("software engineers with python", nil)
	assert.ElementsMatch(t, []string{"engineer", "software"}, parsed.GoalJobTokens)
}

func TestRescalePreservesOrderingAndRatios(t *testing.T) {
	// scenario 4: weights sum to 1.0, top raw score 0.62, rescale_top=0.8.
	ranked := []RankedPerson{
		{ID: "a", Score: 0.62},
		{ID: "b", Score: 0.31},
	}
	out := rescale(ranked, 0.8)
	assert.Equal(t, 0.8, out[0].Score)
	assert.InDelta(t, 0.4, out[1].Score, 0.01)
	assert.Greater(t, out[0].Score, out[1].Score)
}

func TestMinMaxNormalizeConstantInputIsZero(t *testing.T) {
	out := minMaxNormalize([]float64{5, 5, 5})
	assert.Equal(t, []float64{0, 0, 0}, out)
}

func TestPrefilterTightensToAndWithoutSkills(t *testing.T) {
	candidates := []graphstore.Person{
		{ID: "p1", JobTitleCanonTokens: []string{"engineer"}, Company: "google"},
		{ID: "p2", JobTitleCanonTokens: []string{"engineer"}, Company: "amazon"},
		{ID: "p3", JobTitleCanonTokens: []string{"designer"}, Company: "google"},
	}
	parsed := query.Parsed{GoalJobTokens: []string{"engineer"}, GoalCompanies: []string{"google"}}
	out := prefilter(candidates, parsed)
	assert.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ID)
}

func TestPrefilterNoGoalsKeepsAllCandidates(t *testing.T) {
	candidates := []graphstore.Person{{ID: "p1"}, {ID: "p2"}}
	out := prefilter(candidates, query.Parsed{})
	assert.Len(t, out, 2)
}
