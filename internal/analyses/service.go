package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobmatch-backend/internal/resumes"
	"jobmatch-backend/internal/shared/metrics"
	"jobmatch-backend/internal/shared/telemetry"
	"jobmatch-backend/match/model"
	"jobmatch-backend/match/scoring"
)

// Service scores resume/job pairs on demand. Unlike search tasks these
// calls are synchronous: the result goes straight back to the caller.
type Service struct {
	Resumes resumes.Repo
}

// Analyze resolves the resume and runs the full relevance pipeline.
func (s *Service) Analyze(ctx context.Context, userID string, req AnalyzeRequest) (model.AnalysisResult, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return model.AnalysisResult{}, ErrJobDescriptionRequired
	}
	resume, err := s.resolveResume(ctx, userID, req.ResumeID, req.Resume)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	title := strings.TrimSpace(req.JobTitle)
	roleType := strings.TrimSpace(req.RoleType)
	if roleType == "" {
		roleType = title
	}
	job := model.JobPosting{
		Title:       title,
		Description: req.JobDescription,
		RoleType:    roleType,
	}

	result, err := scoring.Analyze(resume, job, req.CustomWeights)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	metrics.IncAnalysisServed()
	telemetry.Info("analysis.served", map[string]any{
		"user_id": userID,
		"passed":  result.HardFilters.Passed,
		"overall": result.OverallMatch,
	})
	return result, nil
}

// Quick computes the bulk-ranking score for one posting.
func (s *Service) Quick(ctx context.Context, userID string, req QuickScoreRequest) (model.QuickScore, error) {
	if req.Job == nil || strings.TrimSpace(req.Job.Description) == "" {
		return model.QuickScore{}, ErrJobRequired
	}
	resume, err := s.resolveResume(ctx, userID, req.ResumeID, req.Resume)
	if err != nil {
		return model.QuickScore{}, err
	}

	score := scoring.QuickScore(resume, req.Job.toPosting())
	metrics.IncQuickScoreServed()
	return score, nil
}

// Batch quick-scores every posting, isolating per-item failures so one
// bad posting cannot sink the rest. Items come back in input order.
func (s *Service) Batch(ctx context.Context, userID string, req BatchScoreRequest) ([]BatchScoreItem, error) {
	if len(req.Jobs) == 0 {
		return nil, ErrNoJobs
	}
	if len(req.Jobs) > MaxBatchJobs {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrBatchTooLarge, len(req.Jobs), MaxBatchJobs)
	}
	resume, err := s.resolveResume(ctx, userID, req.ResumeID, req.Resume)
	if err != nil {
		return nil, err
	}

	items := make([]BatchScoreItem, len(req.Jobs))
	failed := 0
	for i, job := range req.Jobs {
		items[i] = scoreItem(resume, i, job)
		if items[i].Error != "" {
			failed++
			continue
		}
		metrics.IncQuickScoreServed()
	}

	telemetry.Info("batch_score.served", map[string]any{
		"user_id": userID,
		"count":   len(items),
		"failed":  failed,
	})
	return items, nil
}

// scoreItem converts an error or panic into a recorded per-item failure
// so the rest of the batch keeps going.
func scoreItem(resume model.ResumeProfile, index int, job JobInput) (out BatchScoreItem) {
	out = BatchScoreItem{Index: index}
	defer func() {
		if r := recover(); r != nil {
			out.Score = nil
			out.Error = sanitizeMessage(fmt.Sprintf("panic: %v", r))
		}
	}()

	if strings.TrimSpace(job.Description) == "" {
		out.Error = "job description is required"
		return out
	}

	quick := scoring.QuickScore(resume, job.toPosting())
	out.Score = &quick.Score
	return out
}

func (s *Service) resolveResume(ctx context.Context, userID, resumeID string, inline *model.ResumeProfile) (model.ResumeProfile, error) {
	if resumeID != "" {
		if s.Resumes == nil {
			return model.ResumeProfile{}, errors.New("resume repository not configured")
		}
		rec, err := s.Resumes.GetByID(ctx, userID, resumeID)
		if err != nil {
			return model.ResumeProfile{}, fmt.Errorf("resume lookup: %w", err)
		}
		return rec.Profile, nil
	}
	if inline != nil {
		return *inline, nil
	}
	return model.ResumeProfile{}, ErrResumeRequired
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
