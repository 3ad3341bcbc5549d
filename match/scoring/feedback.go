package scoring

import (
	"fmt"
	"strings"

	"jobmatch-backend/match/model"
)

const maxRecommendations = 5

// buildFeedback writes a short human-readable verdict. Filter failures get
// the collected reasons; scored pairs get a band plus specific call-outs.
func buildFeedback(result model.AnalysisResult) string {
	if !result.HardFilters.Passed {
		return "This role has requirements the resume does not meet: " +
			strings.Join(result.HardFilters.FailureReasons, "; ") + "."
	}

	var b strings.Builder
	switch total := result.OverallMatch; {
	case total >= 80:
		b.WriteString("Excellent match for this role.")
	case total >= 60:
		b.WriteString("Good match with room to strengthen the application.")
	case total >= 40:
		b.WriteString("Moderate match; tailoring the resume to this posting would help.")
	default:
		b.WriteString("Limited match for this role.")
	}

	if result.Relevance != nil && result.Relevance.Skills < 70 {
		b.WriteString(" Core skill coverage falls short of what the posting asks for.")
	}
	if missing := len(result.SkillAnalysis.MissingRequired); missing > 0 {
		fmt.Fprintf(&b, " %d required skill(s) are not evidenced.", missing)
	}
	if result.Relevance != nil && result.Relevance.Experience < 70 {
		b.WriteString(" Relevant experience looks thin for this position.")
	}
	return b.String()
}

// buildRecommendations emits prioritized suggestions, deduplicated and
// capped. Tips keyed on component scores are skipped when the relevance
// stage never ran.
func buildRecommendations(resume model.ResumeProfile, result model.AnalysisResult) []string {
	recs := make([]string, 0, maxRecommendations)
	seen := make(map[string]struct{}, maxRecommendations)
	add := func(rec string) {
		if _, dup := seen[rec]; dup {
			return
		}
		seen[rec] = struct{}{}
		recs = append(recs, rec)
	}

	if missing := result.SkillAnalysis.MissingRequired; len(missing) > 0 {
		top := missing
		if len(top) > 3 {
			top = top[:3]
		}
		add("Add evidence of " + strings.Join(top, ", ") + " to the skills or projects sections.")
	}

	if rel := result.Relevance; rel != nil {
		if rel.Experience < 70 {
			add("Describe past roles with outcomes that mirror this job's responsibilities.")
		}
		if rel.Projects < 50 && !isManagementRole(result.RoleType) {
			add("Add a project that demonstrates the posting's core stack.")
		}
		if rel.Keywords < 60 {
			add("Mirror more of the posting's own terminology in the resume.")
		}
		if rel.Summary < 50 || strings.TrimSpace(resume.Summary) == "" {
			add("Open with a short summary targeted at this specific role.")
		}
	}

	if len(resume.Certifications) == 0 && len(result.SkillAnalysis.MissingRequired) > 0 {
		add("A certification covering the missing skills would strengthen the application.")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func isManagementRole(roleType string) bool {
	role := strings.ToLower(roleType)
	for _, tag := range []string{"manager", "lead", "director", "head of"} {
		if strings.Contains(role, tag) {
			return true
		}
	}
	return false
}
