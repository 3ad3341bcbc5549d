package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobmatch-backend/match/model"
)

func TestWeightSetsSumToOne(t *testing.T) {
	for name, w := range map[string]model.Weights{
		"engineer": engineerWeights,
		"fresher":  fresherWeights,
		"manager":  managerWeights,
		"default":  DefaultWeights(),
	} {
		assert.InDelta(t, 1.0, w.Sum(), 0.0001, "%s weights", name)
	}
}

func TestWeightsForRole(t *testing.T) {
	cases := []struct {
		role string
		want model.Weights
	}{
		{"", engineerWeights},
		{"Software Engineer", engineerWeights},
		{"senior", engineerWeights},
		{"Fresher", fresherWeights},
		{"intern", fresherWeights},
		{"Entry-Level", fresherWeights},
		{"Manager", managerWeights},
		{"tech lead", managerWeights},
		{"backend intern, summer", fresherWeights},
		{"engineering manager, entry level", fresherWeights},
		{"head of platform", managerWeights},
		{"staff developer", engineerWeights},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeightsForRole(tc.role), "role %q", tc.role)
	}
}

func TestDegreeLevel(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"PhD in Computer Science", 5},
		{"Doctorate", 5},
		{"Postdoctoral researcher", 5},
		{"Master of Science", 4},
		{"Masters in Data Science", 4},
		{"MBA", 4},
		{"M.S. Computer Science", 4},
		{"Bachelor's degree in CS", 3},
		{"B.Tech Electronics", 3},
		{"B.Sc.(Hons) Physics", 3},
		{"BSc Mathematics", 3},
		{"Associate degree", 2},
		{"Diploma in Computing", 2},
		{"High school graduate", 1},
		{"certified plumber", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DegreeLevel(tc.text), "degree %q", tc.text)
	}
}

func TestDegreeLevelHigherDegreeWinsWhenBothNamed(t *testing.T) {
	// Fragments are checked highest-first, so a transcript mentioning both
	// resolves to the higher level.
	assert.Equal(t, 4, DegreeLevel("B.S. 2015, M.S. 2017"))
}

func TestDegreeMentionIgnoresEmbeddedFragments(t *testing.T) {
	// Containment lookup sees "ged" inside "managed" and "bsc" inside
	// "subscriptions"; the whole-word variant does not.
	prose := []string{
		"Managed a team of engineers",
		"Migrated billing subscriptions",
		"Maintained system.service units",
	}
	for _, line := range prose {
		assert.NotZero(t, DegreeLevel(line), "containment %q", line)
		assert.Zero(t, DegreeMention(line), "mention %q", line)
	}

	assert.Equal(t, 4, DegreeMention("M.S. Computer Science"))
	assert.Equal(t, 4, DegreeMention("Masters in Data Science"))
	assert.Equal(t, 3, DegreeMention("Bachelor's degree in CS"))
	assert.Equal(t, 1, DegreeMention("High school graduate"))
	assert.Equal(t, 0, DegreeMention(""))
}

func TestCandidateDegreeLevelScansEducationEntries(t *testing.T) {
	resume := model.ResumeProfile{
		HighestDegree: "Diploma",
		Education:     []string{"Diploma in Computing", "Master of Engineering, 2019"},
	}
	assert.Equal(t, 4, candidateDegreeLevel(resume))
}

func TestLocationFlexTermsIsACopy(t *testing.T) {
	terms := LocationFlexTerms()
	assert.NotEmpty(t, terms)
	terms[0] = "mutated"
	assert.NotEqual(t, "mutated", LocationFlexTerms()[0])
}
