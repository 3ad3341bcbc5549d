package analyses

import (
	"strings"

	"jobmatch-backend/match/model"
)

// JobInput is the posting payload accepted by the scoring endpoints.
type JobInput struct {
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Location          string   `json:"location"`
	Description       string   `json:"description"`
	RequiredSkills    []string `json:"requiredSkills"`
	PreferredSkills   []string `json:"preferredSkills"`
	MinExperience     float64  `json:"minExperience"`
	MaxExperience     *float64 `json:"maxExperience"`
	RequiredEducation string   `json:"requiredEducation"`
	RoleType          string   `json:"roleType"`
}

func (j JobInput) toPosting() model.JobPosting {
	title := strings.TrimSpace(j.Title)
	roleType := strings.TrimSpace(j.RoleType)
	if roleType == "" {
		roleType = title
	}
	return model.JobPosting{
		Title:             title,
		Company:           strings.TrimSpace(j.Company),
		Location:          strings.TrimSpace(j.Location),
		Description:       j.Description,
		RequiredSkills:    j.RequiredSkills,
		PreferredSkills:   j.PreferredSkills,
		MinExperience:     j.MinExperience,
		MaxExperience:     j.MaxExperience,
		RequiredEducation: j.RequiredEducation,
		RoleType:          roleType,
	}
}

// AnalyzeRequest is the direct-analysis payload. ResumeID and Resume are
// alternatives; ResumeID wins when both are set.
type AnalyzeRequest struct {
	ResumeID       string               `json:"resumeId"`
	Resume         *model.ResumeProfile `json:"resume"`
	JobDescription string               `json:"jobDescription"`
	JobTitle       string               `json:"jobTitle"`
	RoleType       string               `json:"roleType"`
	CustomWeights  *model.Weights       `json:"customWeights"`
}

// QuickScoreRequest scores one posting without eligibility gating.
type QuickScoreRequest struct {
	ResumeID string               `json:"resumeId"`
	Resume   *model.ResumeProfile `json:"resume"`
	Job      *JobInput            `json:"job"`
}

// BatchScoreRequest ranks up to MaxBatchJobs postings in one call.
type BatchScoreRequest struct {
	ResumeID string               `json:"resumeId"`
	Resume   *model.ResumeProfile `json:"resume"`
	Jobs     []JobInput           `json:"jobs"`
}

// BatchScoreItem is one per-posting outcome, in input order. Score is
// nil when scoring that posting failed; Error carries the sanitized
// cause.
type BatchScoreItem struct {
	Index int      `json:"index"`
	Score *float64 `json:"score,omitempty"`
	Error string   `json:"error,omitempty"`
}
