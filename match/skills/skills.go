// Package skills matches resume skills against job requirements with
// synonym and abbreviation awareness, and derives skill lists from free
// text for postings that never declare one.
package skills

import (
	"math"
	"sort"
	"strings"

	"jobmatch-backend/match/model"
	"jobmatch-backend/match/text"
)

// MatchResult describes a comparison against one job skill list. Matched
// and Missing hold canonical names, sorted, and together cover the deduped
// job list exactly.
type MatchResult struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Pct     float64  `json:"pct"`
}

// Canonical resolves a skill to its canonical spelling: abbreviations
// first, then synonym aliases, otherwise the lowercased input itself.
func Canonical(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	if s == "" {
		return ""
	}
	if c, ok := abbreviations[s]; ok {
		return c
	}
	if c, ok := aliasIndex[s]; ok {
		return c
	}
	return s
}

// Normalize expands a skill list into the full set of spellings it covers:
// each skill's canonical form plus every known alias of that form.
func Normalize(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills)*2)
	for _, s := range skills {
		c := Canonical(s)
		if c == "" {
			continue
		}
		out[c] = struct{}{}
		for _, alias := range synonymGroups[c] {
			out[alias] = struct{}{}
		}
	}
	return out
}

// MatchWithSynonyms compares resume skills against one job skill list.
// The resume side is expanded with synonyms so "node" satisfies "nodejs";
// the job side is only canonicalized so distinct requirements stay
// distinct. Pct is 0 when the job list is empty.
func MatchWithSynonyms(resumeSkills, jobSkills []string) MatchResult {
	matched := []string{}
	missing := []string{}
	if len(jobSkills) == 0 {
		return MatchResult{Matched: matched, Missing: missing, Pct: 0}
	}

	resumeSet := Normalize(resumeSkills)
	seen := make(map[string]struct{}, len(jobSkills))
	for _, js := range jobSkills {
		c := Canonical(js)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if _, ok := resumeSet[c]; ok {
			matched = append(matched, c)
		} else {
			missing = append(missing, c)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	pct := 0.0
	if total := len(seen); total > 0 {
		pct = float64(len(matched)) / float64(total) * 100
	}
	return MatchResult{Matched: matched, Missing: missing, Pct: pct}
}

// Match runs the two-sided comparison and blends the percentages into the
// overall skill score: required coverage dominates at 70/30.
func Match(resumeSkills, required, preferred []string) model.SkillAnalysis {
	req := MatchWithSynonyms(resumeSkills, required)
	pref := MatchWithSynonyms(resumeSkills, preferred)
	return model.SkillAnalysis{
		MatchedRequired:   req.Matched,
		MissingRequired:   req.Missing,
		MatchedPreferred:  pref.Matched,
		MissingPreferred:  pref.Missing,
		RequiredMatchPct:  round2(req.Pct),
		PreferredMatchPct: round2(pref.Pct),
		OverallScore:      round2(0.7*req.Pct + 0.3*pref.Pct),
		TotalRequired:     len(req.Matched) + len(req.Missing),
		TotalPreferred:    len(pref.Matched) + len(pref.Missing),
		TotalMatched:      len(req.Matched) + len(pref.Matched),
	}
}

// ExtractFromText derives a canonical skill list from free text, typically
// a job description with no declared skill lists. Only terms in the known
// vocabulary are returned, sorted.
func ExtractFromText(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	candidates := text.TechnicalTerms(raw)
	for kw := range text.ExtractKeywords(raw, text.DefaultMinTokenLen) {
		candidates[kw] = struct{}{}
	}

	found := make(map[string]struct{})
	for term := range candidates {
		if canonical, ok := vocabIndex[term]; ok {
			found[canonical] = struct{}{}
		}
	}

	// Vocabulary entries that normalize to more than one token (spaces,
	// slashes, hyphens) never surface as single keywords.
	padded := " " + text.Normalize(raw) + " "
	for term, canonical := range vocabIndex {
		probe := text.Normalize(term)
		if !strings.Contains(probe, " ") {
			continue
		}
		if strings.Contains(padded, " "+probe+" ") {
			found[canonical] = struct{}{}
		}
	}

	if len(found) == 0 {
		return nil
	}
	return text.SortedKeywords(found)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
