// Package scoring implements the two-stage relevance pipeline: hard
// eligibility filters first, weighted component scores for pairs that
// survive them.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"jobmatch-backend/match/model"
	"jobmatch-backend/match/skills"
	"jobmatch-backend/match/text"
)

// ErrInvalidWeights signals a custom weight set that does not sum to 1.
var ErrInvalidWeights = errors.New("custom weights must sum to 1")

const weightSumTolerance = 0.01

// ValidateWeights rejects weight sets whose components do not sum to 1
// within a small tolerance.
func ValidateWeights(w model.Weights) error {
	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: got %.4f", ErrInvalidWeights, sum)
	}
	return nil
}

// Analyze runs the full pipeline for one resume/job pair. Relevance stays
// nil and OverallMatch stays 0 when the eligibility stage fails; the skill
// analysis, feedback and recommendations are produced either way. The
// result is deterministic for fixed inputs apart from AnalyzedAt.
func Analyze(resume model.ResumeProfile, job model.JobPosting, custom *model.Weights) (model.AnalysisResult, error) {
	weights := WeightsForRole(job.RoleType)
	if custom != nil {
		if err := ValidateWeights(*custom); err != nil {
			return model.AnalysisResult{}, err
		}
		weights = *custom
	}

	filters := ApplyHardFilters(resume, job)
	analysis := skills.Match(resume.Skills, effectiveRequired(job), job.PreferredSkills)

	result := model.AnalysisResult{
		HardFilters:   filters,
		SkillAnalysis: analysis,
		RoleType:      job.RoleType,
		AnalyzedAt:    time.Now().UTC(),
	}

	if filters.Passed {
		relevance := scoreRelevance(resume, job, weights, analysis)
		result.Relevance = &relevance
		result.OverallMatch = relevance.WeightedTotal
	}

	result.Feedback = buildFeedback(result)
	result.Recommendations = buildRecommendations(resume, result)
	return result, nil
}

// ScoreRelevance computes the weighted component scores for a pair,
// without the eligibility stage. Callers that already ran skills.Match can
// use Analyze instead to avoid recomputing it.
func ScoreRelevance(resume model.ResumeProfile, job model.JobPosting, weights model.Weights) model.RelevanceScore {
	analysis := skills.Match(resume.Skills, effectiveRequired(job), job.PreferredSkills)
	return scoreRelevance(resume, job, weights, analysis)
}

// effectiveRequired is the required-skill list a posting is scored
// against: the declared list, or one derived from the description when
// the posting declares none.
func effectiveRequired(job model.JobPosting) []string {
	if len(job.RequiredSkills) > 0 {
		return job.RequiredSkills
	}
	return skills.ExtractFromText(job.Description)
}

func scoreRelevance(resume model.ResumeProfile, job model.JobPosting, weights model.Weights, analysis model.SkillAnalysis) model.RelevanceScore {
	score := model.RelevanceScore{
		Skills:     round2(analysis.OverallScore),
		Experience: round2(experienceScore(resume, job)),
		Projects:   round2(projectScore(resume, job)),
		Keywords:   round2(keywordScore(resume, job)),
		Summary:    round2(summaryScore(resume, job)),
		Education:  round2(educationScore(resume, job)),
		Weights:    weights,
	}
	total := score.Skills*weights.Skills +
		score.Experience*weights.Experience +
		score.Projects*weights.Projects +
		score.Keywords*weights.Keywords +
		score.Summary*weights.Summary +
		score.Education*weights.Education
	score.WeightedTotal = round2(total)
	return score
}

// experienceScore blends how the candidate's years stack up against the
// posted minimum (40%) with how closely the work history reads like the
// job description (60%).
func experienceScore(resume model.ResumeProfile, job model.JobPosting) float64 {
	minReq := job.MinExperience
	if minReq < 1 {
		minReq = 1
	}
	ratio := resume.YearsOfExperience / minReq * 100
	if ratio > 100 {
		ratio = 100
	}

	similarity := text.Similarity(strings.Join(resume.WorkHistory, " "), job.Description)

	score := 0.4*ratio + 0.6*similarity
	if score > 100 {
		score = 100
	}
	return score
}

// projectScore rewards relevant projects plus a small volume bonus, capped
// so a long project list cannot dominate.
func projectScore(resume model.ResumeProfile, job model.JobPosting) float64 {
	if len(resume.Projects) == 0 {
		return 0
	}
	similarity := text.Similarity(strings.Join(resume.Projects, " "), job.Description)
	bonus := 5 * float64(len(resume.Projects))
	if bonus > 20 {
		bonus = 20
	}
	score := similarity + bonus
	if score > 100 {
		score = 100
	}
	return score
}

func keywordScore(resume model.ResumeProfile, job model.JobPosting) float64 {
	score := text.Overlap(resume.Text(), job.Description)
	if score > 100 {
		score = 100
	}
	return score
}

// summaryScore is neutral when the resume has no summary at all.
func summaryScore(resume model.ResumeProfile, job model.JobPosting) float64 {
	if strings.TrimSpace(resume.Summary) == "" {
		return 50
	}
	return text.Similarity(resume.Summary, job.Description)
}

func educationScore(resume model.ResumeProfile, job model.JobPosting) float64 {
	required := DegreeLevel(job.RequiredEducation)
	if required == 0 {
		return 100
	}
	if strings.TrimSpace(resume.HighestDegree) == "" && len(resume.Education) == 0 {
		return 0
	}
	if candidateDegreeLevel(resume) >= required {
		return 100
	}
	return 50
}

// QuickScore ranks a pair without eligibility gating, for bulk flows that
// need a comparable number rather than a verdict. Postings with no
// declared skills get a list derived from their description.
func QuickScore(resume model.ResumeProfile, job model.JobPosting) model.QuickScore {
	analysis := skills.Match(resume.Skills, effectiveRequired(job), job.PreferredSkills)
	overlap := text.Overlap(resume.Text(), job.Description)
	if overlap > 100 {
		overlap = 100
	}

	return model.QuickScore{
		Score:           round2(0.6*analysis.OverallScore + 0.4*overlap),
		MatchedSkills:   analysis.MatchedRequired,
		MissingSkills:   analysis.MissingRequired,
		SkillMatchPct:   round2(analysis.OverallScore),
		KeywordMatchPct: round2(overlap),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
