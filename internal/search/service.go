package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jobmatch-backend/internal/provider"
	"jobmatch-backend/internal/resumes"
	"jobmatch-backend/internal/shared/metrics"
	"jobmatch-backend/internal/shared/telemetry"
	"jobmatch-backend/internal/usage"
	"jobmatch-backend/match/model"
	"jobmatch-backend/match/scoring"
)

const (
	// maxJobsPerTask bounds how many postings one task will score.
	maxJobsPerTask = 20
	// scoreBatchSize bounds concurrent scoring calls within a task.
	scoreBatchSize = 3
	// TaskRetention is how long a terminal task stays pollable.
	TaskRetention = 5 * time.Minute
)

// ErrKeywordRequired rejects a search request without a keyword.
var ErrKeywordRequired = errors.New("keyword is required")

// Scorer runs the relevance pipeline for one resume/job pair.
type Scorer interface {
	Analyze(resume model.ResumeProfile, job model.JobPosting, custom *model.Weights) (model.AnalysisResult, error)
}

// Service owns the search task lifecycle: it creates tasks, runs the
// fetch-and-score pipeline in the background and answers polls.
type Service struct {
	Store    Store
	Provider provider.Provider
	Resumes  resumes.Repo
	Usage    *usage.Service
	// Scorer defaults to the in-process scoring engine when nil.
	Scorer Scorer

	// Retention overrides TaskRetention when positive.
	Retention time.Duration
}

type engineScorer struct{}

func (engineScorer) Analyze(resume model.ResumeProfile, job model.JobPosting, custom *model.Weights) (model.AnalysisResult, error) {
	return scoring.Analyze(resume, job, custom)
}

func (s *Service) scorer() Scorer {
	if s.Scorer != nil {
		return s.Scorer
	}
	return engineScorer{}
}

// Create registers a new task and kicks off its background run. The
// returned task is already in the searching state.
func (s *Service) Create(ctx context.Context, userID string, req Request) (Task, error) {
	if userID == "" {
		return Task{}, errors.New("userID is required")
	}
	req.Keyword = strings.TrimSpace(req.Keyword)
	if req.Keyword == "" {
		return Task{}, ErrKeywordRequired
	}

	// Resolve collaborator inputs before creating any state so a bad
	// resume id or weight set fails the request, not the task.
	var resume *model.ResumeProfile
	if req.ResumeID != "" {
		if s.Resumes == nil {
			return Task{}, errors.New("resume repository not configured")
		}
		rec, err := s.Resumes.GetByID(ctx, userID, req.ResumeID)
		if err != nil {
			return Task{}, fmt.Errorf("resume lookup: %w", err)
		}
		resume = &rec.Profile
	}

	if req.CustomWeights != nil {
		if err := scoring.ValidateWeights(*req.CustomWeights); err != nil {
			return Task{}, err
		}
	}

	if s.Usage != nil {
		ok, _, err := s.Usage.CanSearch(ctx, userID)
		if err != nil {
			return Task{}, err
		}
		if !ok {
			return Task{}, usage.ErrLimitReached
		}
	}

	task := Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Keyword:   req.Keyword,
		Status:    StatusSearching,
		Jobs:      []ScoredJob{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Put(ctx, task); err != nil {
		return Task{}, err
	}

	if s.Usage != nil {
		if _, err := s.Usage.ChargeSearch(ctx, userID); err != nil {
			return Task{}, err
		}
	}

	telemetry.Info("search.created", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"user_id":    userID,
		"task_id":    task.ID,
		"keyword":    req.Keyword,
		"has_resume": resume != nil,
	})

	go s.run(backgroundWithRequestID(ctx), task.ID, userID, req, resume)

	return task, nil
}

// Get returns the current snapshot of a task. Terminal tasks older than
// the retention window report ErrNotFound even between janitor sweeps.
func (s *Service) Get(ctx context.Context, id string) (Task, error) {
	if id == "" {
		return Task{}, errors.New("task id is required")
	}
	task, err := s.Store.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if task.Completed && task.CompletedAt != nil && time.Since(*task.CompletedAt) > s.retention() {
		_ = s.Store.Delete(ctx, id)
		return Task{}, ErrNotFound
	}
	return task, nil
}

func (s *Service) retention() time.Duration {
	if s.Retention > 0 {
		return s.Retention
	}
	return TaskRetention
}

// run executes the task pipeline: one provider fetch, then scoring in
// bounded batches. It is the only writer for its task id.
func (s *Service) run(ctx context.Context, id, userID string, req Request, resume *model.ResumeProfile) {
	startedAt := time.Now().UTC()
	defer func() {
		if r := recover(); r != nil {
			s.failTask(ctx, id, fmt.Errorf("panic: %v", r), &startedAt)
		}
	}()

	if err := s.Store.Update(ctx, id, func(t *Task) {
		t.StartedAt = &startedAt
	}); err != nil {
		s.failTask(ctx, id, fmt.Errorf("task update: %w", err), &startedAt)
		return
	}
	metrics.IncSearchStarted()

	jobs, err := s.Provider.Search(ctx, provider.Query{
		Keyword:    req.Keyword,
		Location:   req.Location,
		Experience: req.ExperienceLevel,
		Page:       1,
		PageCount:  1,
		Company:    req.Company,
		Platform:   req.Platform,
	})
	if err != nil {
		s.failTask(ctx, id, err, &startedAt)
		return
	}

	if len(jobs) == 0 {
		s.finishTask(ctx, id, StatusSearching, &startedAt, func(t *Task) {
			t.Guidance = buildGuidance(req)
		})
		return
	}

	if resume == nil {
		unscored := make([]ScoredJob, 0, len(jobs))
		for _, job := range jobs {
			unscored = append(unscored, ScoredJob{Job: job})
		}
		s.finishTask(ctx, id, StatusSearching, &startedAt, func(t *Task) {
			t.Jobs = unscored
			t.TotalJobs = len(unscored)
		})
		return
	}

	if len(jobs) > maxJobsPerTask {
		jobs = jobs[:maxJobsPerTask]
	}
	total := len(jobs)

	if err := s.Store.Update(ctx, id, func(t *Task) {
		t.Status = StatusAnalyzing
		t.TotalJobs = total
	}); err != nil {
		s.failTask(ctx, id, fmt.Errorf("task update: %w", err), &startedAt)
		return
	}
	telemetry.Info("search.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"task_id":           id,
		"status":            StatusAnalyzing,
		"status_transition": "searching->analyzing",
		"total_jobs":        total,
	})

	scored := make([]ScoredJob, 0, total)
	for start := 0; start < total; start += scoreBatchSize {
		end := start + scoreBatchSize
		if end > total {
			end = total
		}
		batch := jobs[start:end]
		results := make([]ScoredJob, len(batch))

		var g errgroup.Group
		for i, job := range batch {
			g.Go(func() error {
				results[i] = s.scoreJob(*resume, job, req.CustomWeights)
				return nil
			})
		}
		_ = g.Wait()

		scored = append(scored, results...)
		processed := len(scored)
		snapshot := make([]ScoredJob, processed)
		copy(snapshot, scored)

		if err := s.Store.Update(ctx, id, func(t *Task) {
			t.Jobs = snapshot
			t.ProcessedJobs = processed
			t.Progress = float64(processed*100) / float64(total)
		}); err != nil {
			s.failTask(ctx, id, fmt.Errorf("task update: %w", err), &startedAt)
			return
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scoreValue(scored[i]) > scoreValue(scored[j])
	})

	metrics.AddJobsScored(total)
	if s.Usage != nil {
		// Best effort: accounting must not fail a finished task.
		if _, err := s.Usage.RecordJobsScored(ctx, userID, total); err != nil {
			telemetry.Error("search.usage_update", map[string]any{
				"task_id": id,
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	s.finishTask(ctx, id, StatusAnalyzing, &startedAt, func(t *Task) {
		t.Jobs = scored
		t.ATSAnalyzed = true
	})
}

// scoreJob analyzes one posting, converting an error or panic into a
// recorded per-job failure so the batch keeps going.
func (s *Service) scoreJob(resume model.ResumeProfile, job model.JobPosting, custom *model.Weights) (out ScoredJob) {
	out = ScoredJob{Job: job}
	defer func() {
		if r := recover(); r != nil {
			out.Score = nil
			out.Analysis = nil
			out.ScoreError = sanitizeError(fmt.Errorf("panic: %v", r))
		}
	}()

	analysis, err := s.scorer().Analyze(resume, job, custom)
	if err != nil {
		out.ScoreError = sanitizeError(err)
		return out
	}

	score := analysis.OverallMatch
	out.Score = &score
	out.Analysis = &analysis
	return out
}

func (s *Service) finishTask(ctx context.Context, id, fromStatus string, startedAt *time.Time, apply func(*Task)) {
	completedAt := time.Now().UTC()
	var userID string
	if err := s.Store.Update(ctx, id, func(t *Task) {
		if apply != nil {
			apply(t)
		}
		t.Status = StatusCompleted
		t.Completed = true
		t.Progress = 100
		t.CompletedAt = &completedAt
		userID = t.UserID
	}); err != nil {
		s.failTask(ctx, id, fmt.Errorf("task update: %w", err), startedAt)
		return
	}
	metrics.IncSearchCompleted()
	metrics.ObserveSearchDurationMs(durationMs(startedAt, &completedAt))
	telemetry.Info("search.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"task_id":           id,
		"status":            StatusCompleted,
		"status_transition": fromStatus + "->completed",
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func (s *Service) failTask(ctx context.Context, id string, cause error, startedAt *time.Time) {
	code, retryable := classifyFailure(cause)
	msg := sanitizeError(cause)
	completedAt := time.Now().UTC()
	var userID, fromStatus string
	// The failure write uses a fresh context: the cause may be the
	// request context itself being done.
	if err := s.Store.Update(context.Background(), id, func(t *Task) {
		fromStatus = t.Status
		t.Status = StatusFailed
		t.Completed = true
		t.ErrorCode = code
		t.Error = msg
		t.Retryable = retryable
		t.CompletedAt = &completedAt
		userID = t.UserID
	}); err != nil {
		telemetry.Error("search.fail_update", map[string]any{
			"task_id": id,
			"error":   err.Error(),
			"cause":   msg,
		})
	}
	metrics.IncSearchFailed()
	if startedAt != nil {
		metrics.ObserveSearchDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("search.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"task_id":           id,
		"status":            StatusFailed,
		"status_transition": fromStatus + "->failed",
		"error_code":        code,
		"retryable":         retryable,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func scoreValue(j ScoredJob) float64 {
	if j.Score == nil {
		return 0
	}
	return *j.Score
}

// buildGuidance suggests broader searches when nothing matched. It always
// returns at least one suggestion.
func buildGuidance(req Request) *Guidance {
	suggestions := make([]string, 0, 4)
	if req.Company != "" {
		suggestions = append(suggestions, fmt.Sprintf("Drop the company filter %q and search across all companies.", req.Company))
	}
	if req.Platform != "" {
		suggestions = append(suggestions, fmt.Sprintf("Search every platform instead of only %q.", req.Platform))
	}
	if len(strings.Fields(req.Keyword)) > 2 {
		suggestions = append(suggestions, fmt.Sprintf("Shorten %q to its core role title.", req.Keyword))
	}
	if req.Location != "" {
		flex := scoring.LocationFlexTerms()
		suggestions = append(suggestions, fmt.Sprintf("Search without the %q filter to include %s roles.", req.Location, flex[0]))
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Try a broader keyword or a related role title.")
	}
	return &Guidance{
		Message:     "No jobs matched this search.",
		Suggestions: suggestions,
	}
}

func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	switch {
	case errors.Is(err, provider.ErrRateLimited):
		return ErrorCodeProviderRateLimited, true
	case errors.Is(err, provider.ErrUnauthorized):
		return ErrorCodeProviderAuth, false
	case errors.Is(err, provider.ErrBadRequest):
		return ErrorCodeProviderBadRequest, false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeProvider, true
	case strings.Contains(msg, "provider"):
		return ErrorCodeProvider, true
	case strings.Contains(msg, "task update"):
		return ErrorCodeStorage, true
	default:
		return ErrorCodeInternal, false
	}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}
