package search

import (
	"time"

	"jobmatch-backend/match/model"
)

const (
	StatusSearching = "searching"
	StatusAnalyzing = "analyzing"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Request holds the caller-supplied parameters for one search run.
type Request struct {
	Keyword         string
	Location        string
	Company         string
	Platform        string
	ExperienceLevel string
	ResumeID        string
	CustomWeights   *model.Weights
}

// ScoredJob pairs a fetched posting with its scoring outcome. Score is
// nil when no resume was supplied or scoring that job failed; ScoreError
// carries the reason in the latter case.
type ScoredJob struct {
	Job        model.JobPosting      `json:"job"`
	Score      *float64              `json:"score"`
	Analysis   *model.AnalysisResult `json:"analysis,omitempty"`
	ScoreError string                `json:"scoreError,omitempty"`
}

// Guidance replaces scores when a search matches nothing.
type Guidance struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// Task is the pollable record for one search run. After Create returns,
// only the background routine owning the id mutates it.
type Task struct {
	ID            string      `json:"taskId"`
	UserID        string      `json:"-"`
	Keyword       string      `json:"keyword"`
	Status        string      `json:"status"`
	Progress      float64     `json:"progress"`
	TotalJobs     int         `json:"totalJobs"`
	ProcessedJobs int         `json:"processedJobs"`
	Completed     bool        `json:"completed"`
	ATSAnalyzed   bool        `json:"atsAnalyzed"`
	Jobs          []ScoredJob `json:"jobs"`
	Guidance      *Guidance   `json:"guidance,omitempty"`
	ErrorCode     string      `json:"errorCode,omitempty"`
	Error         string      `json:"error,omitempty"`
	Retryable     bool        `json:"retryable,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	StartedAt     *time.Time  `json:"startedAt,omitempty"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
}
