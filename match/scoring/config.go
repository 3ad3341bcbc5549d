package scoring

import (
	"strings"

	"jobmatch-backend/match/model"
	"jobmatch-backend/match/text"
)

// Weight sets per role archetype. Each set sums to 1.
var (
	engineerWeights = model.Weights{
		Skills:     0.35,
		Experience: 0.25,
		Projects:   0.15,
		Keywords:   0.15,
		Summary:    0.05,
		Education:  0.05,
	}
	fresherWeights = model.Weights{
		Skills:     0.30,
		Experience: 0.10,
		Projects:   0.25,
		Keywords:   0.15,
		Summary:    0.10,
		Education:  0.10,
	}
	managerWeights = model.Weights{
		Skills:     0.25,
		Experience: 0.35,
		Projects:   0.10,
		Keywords:   0.15,
		Summary:    0.10,
		Education:  0.05,
	}
)

// DefaultWeights returns the fallback weight set used when no role tag
// matches.
func DefaultWeights() model.Weights {
	return engineerWeights
}

// WeightsForRole picks the weight set for a role tag, case-insensitively.
// Exact tags win; otherwise the first archetype with an alias contained in
// the tag applies, junior archetypes checked before senior ones so
// "engineering manager, entry level" resolves as fresher.
func WeightsForRole(roleType string) model.Weights {
	role := strings.ToLower(strings.TrimSpace(roleType))
	if role == "" {
		return engineerWeights
	}

	switch role {
	case "fresher", "intern", "internship", "entry-level", "entry level", "graduate", "junior":
		return fresherWeights
	case "manager", "lead", "director", "engineering manager", "tech lead":
		return managerWeights
	case "software engineer", "engineer", "developer", "senior", "senior engineer":
		return engineerWeights
	}

	for _, tag := range []string{"fresher", "intern", "entry", "graduate", "junior"} {
		if strings.Contains(role, tag) {
			return fresherWeights
		}
	}
	for _, tag := range []string{"manager", "lead", "director", "head of"} {
		if strings.Contains(role, tag) {
			return managerWeights
		}
	}
	return engineerWeights
}

const (
	// minExperienceRatio is the share of a posting's minimum experience a
	// candidate must show once the posting asks for more than the
	// leniency threshold.
	minExperienceRatio = 0.8

	// experienceLenienceYears: postings asking for at most this many
	// years always pass the experience gate.
	experienceLenienceYears = 1.0
)

// workAuthKeywords trigger the work-authorization gate when any of them
// appears in a job description.
var workAuthKeywords = []string{
	"work authorization",
	"work permit",
	"authorized to work",
	"visa",
	"sponsorship",
	"citizen",
	"citizenship",
	"green card",
	"security clearance",
}

// WorkAuthTerms exposes the authorization vocabulary so profile builders
// can recognize the lines the gate will later look for.
func WorkAuthTerms() []string {
	out := make([]string, len(workAuthKeywords))
	copy(out, workAuthKeywords)
	return out
}

// locationFlexKeywords mark remote-friendly phrasing. The location gate
// itself always passes; the list feeds search guidance when a query comes
// back empty.
var locationFlexKeywords = []string{
	"remote",
	"hybrid",
	"work from home",
	"wfh",
	"anywhere",
	"relocation",
	"willing to relocate",
	"distributed",
}

// LocationFlexTerms exposes the flexibility vocabulary for guidance
// builders.
func LocationFlexTerms() []string {
	out := make([]string, len(locationFlexKeywords))
	copy(out, locationFlexKeywords)
	return out
}

type degreeLevel struct {
	fragment string
	level    int
}

// degreeLevels maps degree name fragments to a comparable rank. Lookup
// walks the table in declaration order and the first match wins, so the
// order below is part of the contract: higher and more specific degrees
// sit before lower and looser ones.
var degreeLevels = []degreeLevel{
	{"postdoctoral", 5},
	{"postdoc", 5},
	{"ph.d", 5},
	{"phd", 5},
	{"doctorate", 5},
	{"doctoral", 5},
	{"doctor", 5},
	{"mba", 4},
	{"master", 4},
	{"m.tech", 4},
	{"m.sc", 4},
	{"m.s", 4},
	{"msc", 4},
	{"bachelor", 3},
	{"b.tech", 3},
	{"b.sc", 3},
	{"b.s", 3},
	{"bsc", 3},
	{"b.e", 3},
	{"undergraduate", 3},
	{"associate", 2},
	{"diploma", 2},
	{"high school", 1},
	{"ged", 1},
	{"secondary school", 1},
}

// DegreeLevel ranks a degree description from 1 (high school) to 5
// (doctorate) by containment lookup over the normalized text, so
// run-together forms like "B.Sc.(Hons)" still rank. Text that names no
// known degree ranks 0.
func DegreeLevel(raw string) int {
	norm := text.Normalize(raw)
	if norm == "" {
		return 0
	}
	for _, d := range degreeLevels {
		if strings.Contains(norm, d.fragment) {
			return d.level
		}
	}
	return 0
}

// DegreeMention ranks a degree named as a standalone word, with a plural
// s and trailing periods allowed. Fragments buried inside longer words
// ("managed", "subscriptions") do not register. Meant for scanning
// free-form prose; degree fields go through DegreeLevel.
func DegreeMention(raw string) int {
	tokens := strings.Fields(text.Normalize(raw))
	if len(tokens) == 0 {
		return 0
	}
	for i, tok := range tokens {
		tokens[i] = strings.TrimRight(tok, ".")
	}
	padded := " " + strings.Join(tokens, " ") + " "
	for _, d := range degreeLevels {
		if strings.Contains(d.fragment, " ") {
			if strings.Contains(padded, " "+d.fragment+" ") {
				return d.level
			}
			continue
		}
		for _, tok := range tokens {
			if tok == d.fragment || tok == d.fragment+"s" {
				return d.level
			}
		}
	}
	return 0
}

func candidateDegreeLevel(resume model.ResumeProfile) int {
	best := DegreeLevel(resume.HighestDegree)
	for _, entry := range resume.Education {
		if lvl := DegreeLevel(entry); lvl > best {
			best = lvl
		}
	}
	return best
}
