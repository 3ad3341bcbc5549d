package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-backend/match/model"
)

func fixtureResume() model.ResumeProfile {
	return model.ResumeProfile{
		Skills: []string{"golang", "kubernetes", "postgresql", "docker"},
		WorkHistory: []string{
			"Built Go microservices on kubernetes with postgresql storage",
			"Operated docker deployments and ci/cd pipelines",
		},
		Projects:          []string{"Open source kubernetes operator written in golang"},
		Summary:           "Backend engineer focused on Go services and kubernetes infrastructure",
		YearsOfExperience: 5,
		HighestDegree:     "Bachelor of Science in Computer Science",
		Education:         []string{"Bachelor of Science, 2018"},
		WorkAuthorization: "US citizen",
	}
}

func fixtureJob() model.JobPosting {
	return model.JobPosting{
		Title:             "Backend Engineer",
		Company:           "Acme",
		Location:          "Berlin",
		Description:       "Build Go microservices on kubernetes backed by postgresql and docker deployments",
		RequiredSkills:    []string{"go", "kubernetes"},
		PreferredSkills:   []string{"postgresql"},
		MinExperience:     3,
		RequiredEducation: "Bachelor's degree",
		RoleType:          "software engineer",
	}
}

func TestHardFiltersAllPass(t *testing.T) {
	got := ApplyHardFilters(fixtureResume(), fixtureJob())

	assert.True(t, got.Passed)
	assert.True(t, got.Checks.Location)
	assert.True(t, got.Checks.WorkAuthorization)
	assert.True(t, got.Checks.Experience)
	assert.True(t, got.Checks.Education)
	assert.Empty(t, got.FailureReasons)
}

func TestHardFiltersPassedMatchesChecks(t *testing.T) {
	resume := fixtureResume()
	resume.YearsOfExperience = 1
	resume.HighestDegree = ""
	resume.Education = nil

	got := ApplyHardFilters(resume, fixtureJob())

	assert.False(t, got.Passed)
	assert.False(t, got.Checks.Experience)
	assert.False(t, got.Checks.Education)
	// One reason per failed gate, location never among them.
	assert.Len(t, got.FailureReasons, 2)
	for _, reason := range got.FailureReasons {
		assert.NotContains(t, strings.ToLower(reason), "location")
	}
}

func TestExperienceGateLeniency(t *testing.T) {
	resume := fixtureResume()
	resume.YearsOfExperience = 0

	job := fixtureJob()
	job.MinExperience = 1
	assert.True(t, ApplyHardFilters(resume, job).Checks.Experience,
		"postings asking for at most a year always pass")

	job.MinExperience = 5
	resume.YearsOfExperience = 4 // exactly 0.8 * 5
	assert.True(t, ApplyHardFilters(resume, job).Checks.Experience)

	resume.YearsOfExperience = 3.9
	assert.False(t, ApplyHardFilters(resume, job).Checks.Experience)
}

func TestWorkAuthorizationGate(t *testing.T) {
	resume := fixtureResume()
	job := fixtureJob()

	// Description never raises the topic: passes regardless of the resume.
	resume.WorkAuthorization = ""
	assert.True(t, ApplyHardFilters(resume, job).Checks.WorkAuthorization)

	job.Description += " Candidates must have US work authorization; no visa sponsorship."
	assert.False(t, ApplyHardFilters(resume, job).Checks.WorkAuthorization)

	resume.WorkAuthorization = "authorized to work in the US, no sponsorship needed"
	assert.True(t, ApplyHardFilters(resume, job).Checks.WorkAuthorization)
}

func TestAnalyzePassingPair(t *testing.T) {
	got, err := Analyze(fixtureResume(), fixtureJob(), nil)
	require.NoError(t, err)

	require.NotNil(t, got.Relevance)
	assert.Equal(t, got.Relevance.WeightedTotal, got.OverallMatch)
	assert.GreaterOrEqual(t, got.OverallMatch, 0.0)
	assert.LessOrEqual(t, got.OverallMatch, 100.0)
	assert.Equal(t, engineerWeights, got.Relevance.Weights)
	assert.NotEmpty(t, got.Feedback)
	assert.False(t, got.AnalyzedAt.IsZero())

	for name, sub := range map[string]float64{
		"skills":     got.Relevance.Skills,
		"experience": got.Relevance.Experience,
		"projects":   got.Relevance.Projects,
		"keywords":   got.Relevance.Keywords,
		"summary":    got.Relevance.Summary,
		"education":  got.Relevance.Education,
	} {
		assert.GreaterOrEqual(t, sub, 0.0, name)
		assert.LessOrEqual(t, sub, 100.0, name)
	}
}

func TestAnalyzeFilterFailureHasNoRelevance(t *testing.T) {
	resume := fixtureResume()
	resume.YearsOfExperience = 1

	got, err := Analyze(resume, fixtureJob(), nil)
	require.NoError(t, err)

	assert.False(t, got.HardFilters.Passed)
	assert.Nil(t, got.Relevance)
	assert.Equal(t, 0.0, got.OverallMatch)
	// Skill analysis is still produced for feedback purposes.
	assert.NotZero(t, got.SkillAnalysis.TotalRequired)
	assert.Contains(t, got.Feedback, "does not meet")
	assert.NotEmpty(t, got.Recommendations)
}

func TestAnalyzeDeterministicApartFromTimestamp(t *testing.T) {
	first, err := Analyze(fixtureResume(), fixtureJob(), nil)
	require.NoError(t, err)
	second, err := Analyze(fixtureResume(), fixtureJob(), nil)
	require.NoError(t, err)

	first.AnalyzedAt = second.AnalyzedAt
	assert.Equal(t, first, second)
}

func TestAnalyzeCustomWeights(t *testing.T) {
	custom := &model.Weights{Skills: 1}
	got, err := Analyze(fixtureResume(), fixtureJob(), custom)
	require.NoError(t, err)
	require.NotNil(t, got.Relevance)
	assert.Equal(t, got.Relevance.Skills, got.OverallMatch)

	bad := &model.Weights{Skills: 0.5, Experience: 0.2}
	_, err = Analyze(fixtureResume(), fixtureJob(), bad)
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestEducationScoreBands(t *testing.T) {
	job := fixtureJob()
	job.RequiredEducation = "Master's degree"

	resume := fixtureResume()
	assert.Equal(t, 50.0, educationScore(resume, job), "under-qualified but educated")

	resume.HighestDegree = "M.S. Computer Science"
	assert.Equal(t, 100.0, educationScore(resume, job))

	resume.HighestDegree = ""
	resume.Education = nil
	assert.Equal(t, 0.0, educationScore(resume, job), "no education data at all")

	job.RequiredEducation = ""
	assert.Equal(t, 100.0, educationScore(resume, job), "nothing required")
}

func TestProjectScoreEmptyProjects(t *testing.T) {
	resume := fixtureResume()
	resume.Projects = nil
	assert.Equal(t, 0.0, projectScore(resume, fixtureJob()))
}

func TestSummaryScoreNeutralWhenAbsent(t *testing.T) {
	resume := fixtureResume()
	resume.Summary = "   "
	assert.Equal(t, 50.0, summaryScore(resume, fixtureJob()))
}

func TestAnalyzeDerivesSkillsFromDescription(t *testing.T) {
	job := fixtureJob()
	job.RequiredSkills = nil

	got, err := Analyze(fixtureResume(), job, nil)
	require.NoError(t, err)

	assert.NotZero(t, got.SkillAnalysis.TotalRequired)
	assert.Contains(t, got.SkillAnalysis.MatchedRequired, "golang")
	assert.Contains(t, got.SkillAnalysis.MatchedRequired, "kubernetes")
}

func TestQuickScoreDerivesSkillsFromDescription(t *testing.T) {
	job := fixtureJob()
	job.RequiredSkills = nil
	job.PreferredSkills = nil

	got := QuickScore(fixtureResume(), job)

	assert.Greater(t, got.Score, 0.0)
	assert.LessOrEqual(t, got.Score, 100.0)
	assert.Contains(t, got.MatchedSkills, "golang")
	assert.Contains(t, got.MatchedSkills, "kubernetes")
	assert.InDelta(t, 0.6*got.SkillMatchPct+0.4*got.KeywordMatchPct, got.Score, 0.01)
}

func TestQuickScoreIgnoresHardFilters(t *testing.T) {
	resume := fixtureResume()
	resume.YearsOfExperience = 0 // would fail the experience gate

	job := fixtureJob()
	job.MinExperience = 10

	got := QuickScore(resume, job)
	assert.Greater(t, got.Score, 0.0)
}

func TestRecommendationsCapAndOrder(t *testing.T) {
	resume := model.ResumeProfile{
		Skills:            []string{"php"},
		YearsOfExperience: 1,
	}
	job := fixtureJob()
	job.MinExperience = 0 // keep the pair past the gates
	job.RequiredEducation = ""

	got, err := Analyze(resume, job, nil)
	require.NoError(t, err)

	require.NotEmpty(t, got.Recommendations)
	assert.LessOrEqual(t, len(got.Recommendations), 5)
	// Missing required skills always lead.
	assert.Contains(t, got.Recommendations[0], "golang")

	seen := make(map[string]bool)
	for _, rec := range got.Recommendations {
		assert.False(t, seen[rec], "duplicate recommendation %q", rec)
		seen[rec] = true
	}
}
