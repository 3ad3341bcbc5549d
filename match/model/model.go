package model

import (
	"strings"
	"time"
)

// ResumeProfile is the structured candidate input to the scoring engine.
type ResumeProfile struct {
	Skills            []string `json:"skills"`
	WorkHistory       []string `json:"workHistory,omitempty"`
	Projects          []string `json:"projects,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	YearsOfExperience float64  `json:"yearsOfExperience"`
	HighestDegree     string   `json:"highestDegree,omitempty"`
	Education         []string `json:"education,omitempty"`
	WorkAuthorization string   `json:"workAuthorization,omitempty"`
	Certifications    []string `json:"certifications,omitempty"`
}

// Text flattens the profile into one blob for keyword comparisons.
func (p ResumeProfile) Text() string {
	parts := make([]string, 0, 8)
	if len(p.Skills) > 0 {
		parts = append(parts, strings.Join(p.Skills, " "))
	}
	if len(p.WorkHistory) > 0 {
		parts = append(parts, strings.Join(p.WorkHistory, " "))
	}
	if len(p.Projects) > 0 {
		parts = append(parts, strings.Join(p.Projects, " "))
	}
	if p.Summary != "" {
		parts = append(parts, p.Summary)
	}
	if len(p.Education) > 0 {
		parts = append(parts, strings.Join(p.Education, " "))
	}
	if len(p.Certifications) > 0 {
		parts = append(parts, strings.Join(p.Certifications, " "))
	}
	return strings.Join(parts, " ")
}

// JobPosting describes one job to score a resume against. The provider
// display fields (ID, URL, Source, PostedAt) never influence scoring.
type JobPosting struct {
	ID                string   `json:"id,omitempty"`
	Title             string   `json:"title"`
	Company           string   `json:"company,omitempty"`
	Location          string   `json:"location,omitempty"`
	Description       string   `json:"description"`
	RequiredSkills    []string `json:"requiredSkills,omitempty"`
	PreferredSkills   []string `json:"preferredSkills,omitempty"`
	MinExperience     float64  `json:"minExperience,omitempty"`
	MaxExperience     *float64 `json:"maxExperience,omitempty"`
	RequiredEducation string   `json:"requiredEducation,omitempty"`
	RoleType          string   `json:"roleType,omitempty"`
	URL               string   `json:"url,omitempty"`
	Source            string   `json:"source,omitempty"`
	PostedAt          string   `json:"postedAt,omitempty"`
}

// Weights control the relative contribution of each relevance component.
// A usable set sums to 1.
type Weights struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Projects   float64 `json:"projects"`
	Keywords   float64 `json:"keywords"`
	Summary    float64 `json:"summary"`
	Education  float64 `json:"education"`
}

// Sum returns the total of all component weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Projects + w.Keywords + w.Summary + w.Education
}

// HardFilterChecks records the outcome of each eligibility gate.
type HardFilterChecks struct {
	Location          bool `json:"location"`
	WorkAuthorization bool `json:"workAuthorization"`
	Experience        bool `json:"experience"`
	Education         bool `json:"education"`
}

// HardFilterResult is the outcome of the eligibility stage. Passed is true
// exactly when every check passed.
type HardFilterResult struct {
	Passed         bool             `json:"passed"`
	Checks         HardFilterChecks `json:"checks"`
	FailureReasons []string         `json:"failureReasons,omitempty"`
}

// RelevanceScore holds the weighted component scores, each 0..100.
type RelevanceScore struct {
	Skills        float64 `json:"skills"`
	Experience    float64 `json:"experience"`
	Projects      float64 `json:"projects"`
	Keywords      float64 `json:"keywords"`
	Summary       float64 `json:"summary"`
	Education     float64 `json:"education"`
	Weights       Weights `json:"weights"`
	WeightedTotal float64 `json:"weightedTotal"`
}

// SkillAnalysis compares resume skills against a posting's skill lists.
// Skill names are canonical and sorted.
type SkillAnalysis struct {
	MatchedRequired   []string `json:"matchedRequired"`
	MissingRequired   []string `json:"missingRequired"`
	MatchedPreferred  []string `json:"matchedPreferred"`
	MissingPreferred  []string `json:"missingPreferred"`
	RequiredMatchPct  float64  `json:"requiredMatchPct"`
	PreferredMatchPct float64  `json:"preferredMatchPct"`
	OverallScore      float64  `json:"overallScore"`
	TotalRequired     int      `json:"totalRequired"`
	TotalPreferred    int      `json:"totalPreferred"`
	TotalMatched      int      `json:"totalMatched"`
}

// AnalysisResult is the full outcome for one resume/job pair. Relevance is
// nil when the eligibility stage failed, and OverallMatch is 0 in that case.
type AnalysisResult struct {
	HardFilters     HardFilterResult `json:"hardFilters"`
	Relevance       *RelevanceScore  `json:"relevance,omitempty"`
	OverallMatch    float64          `json:"overallMatch"`
	SkillAnalysis   SkillAnalysis    `json:"skillAnalysis"`
	Feedback        string           `json:"feedback"`
	Recommendations []string         `json:"recommendations"`
	RoleType        string           `json:"roleType,omitempty"`
	AnalyzedAt      time.Time        `json:"analyzedAt"`
}

// QuickScore is a lightweight ranking signal without eligibility gating.
type QuickScore struct {
	Score           float64  `json:"score"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	SkillMatchPct   float64  `json:"skillMatchPct"`
	KeywordMatchPct float64  `json:"keywordMatchPct"`
}
