package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func vocab() *Vocabulary {
	return &Vocabulary{
		Skills:    map[string]bool{"golang": true, "kubernetes": true, "rust": true},
		Companies: []string{"google", "microsoft", "stripe"},
	}
}

func TestParsePureSkillMatch(t *testing.T) {
	p := Parse("looking for golang and kubernetes experience", vocab())
	assert.ElementsMatch(t, []string{"golang", "kubernetes"}, p.GoalSkills)
}

func TestParseCompanyFuzzyMatch(t *testing.T) {
	p := Parse("someone who used to work at gogle", vocab())
	assert.NotContains(t, p.GoalCompanies, "gogle") // unknown "at X" phrase is not kept
	assert.Contains(t, p.GoalCompanies, "google")   // fuzzy vocabulary match
}

func TestParseRoleSingularization(t *testing.T) {
	p := Parse("need some software engineers", vocab())
	assert.Contains(t, p.GoalJobTokens, "engineer")
	assert.Contains(t, p.GoalJobTokens, "software")
}

func TestParseCompanyWholeWord(t *testing.T) {
	p := Parse("worked with stripe before", vocab())
	assert.Contains(t, p.GoalCompanies, "stripe")
}

func TestParseEmptyVocabSkipsSkillsAndFuzzy(t *testing.T) {
	p := Parse("golang engineer at gogle", nil)
	assert.Empty(t, p.GoalSkills)
	assert.Contains(t, p.GoalJobTokens, "engineer")
}
