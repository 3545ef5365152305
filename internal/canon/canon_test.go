package canon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeSoftwareEngineer(t *testing.T) {
	r := Canonicalize("Senior Software Engineer", "", time.Now())
	assert.Equal(t, "SoftwareEngineer", r.Category)
	assert.Equal(t, "software_engineer", r.Snake)
	assert.Contains(t, r.Tokens, "software")
	assert.Contains(t, r.Tokens, "engineer")
}

func TestCanonicalizeFounderVariants(t *testing.T) {
	for _, title := range []string{"Co-Founder", "CEO", "Chief Executive Officer"} {
		r := Canonicalize(title, "", time.Now())
		assert.Equal(t, "Founder/Ceo", r.Category)
	}
}

func TestCanonicalizeMLEngineerOverridesDataScientist(t *testing.T) {
	r := Canonicalize("Data Scientist (Machine Learning)", "", time.Now())
	assert.Equal(t, "MlEngineer", r.Category)
}

func TestCanonicalizeStudentFallback(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	r := Canonicalize("", "2024-09 - Present", now)
	require.Equal(t, "student", r.Category)
}

func TestCanonicalizeUnemployedFallback(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	r := Canonicalize("", "2018-09 - 2020-06", now)
	require.Equal(t, "unemployed", r.Category)
}

func TestCanonicalizeUnemployedWithNoSchoolHistory(t *testing.T) {
	r := Canonicalize("", "", time.Now())
	require.Equal(t, "unemployed", r.Category)
}

func TestCanonicalizeOtherFallback(t *testing.T) {
	r := Canonicalize("Juggling Instructor", "", time.Now())
	assert.Equal(t, "Other", r.Category)
}
