package resumes

import (
	"regexp"
	"strings"

	"jobmatch-backend/match/model"
	"jobmatch-backend/match/scoring"
	"jobmatch-backend/match/skills"
	"jobmatch-backend/match/text"
)

const (
	summaryMaxLines = 5
	summaryMaxChars = 400
)

// calendarYearRe spots lines carrying employment dates ("2019 - 2023").
var calendarYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var educationMarkers = []string{"university", "college", "institute", "school of"}

var certificationMarkers = []string{"certified", "certification", "certificate"}

// DeriveProfile builds a best-effort structured profile from extracted
// resume text. It reuses the engine's own vocabularies so a derived profile
// behaves under the eligibility gates exactly like a hand-written one.
func DeriveProfile(raw string) model.ResumeProfile {
	profile := model.ResumeProfile{
		Skills: skills.ExtractFromText(raw),
	}

	// The largest duration on a resume is almost always the total.
	if years := text.Years(raw); len(years) > 0 {
		top := years[0]
		for _, y := range years[1:] {
			if y > top {
				top = y
			}
		}
		profile.YearsOfExperience = top
	}

	authTerms := scoring.WorkAuthTerms()
	bestDegree := 0
	var summary []string
	summaryLen := 0

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case scoring.DegreeMention(lower) > 0 || containsAny(lower, educationMarkers):
			profile.Education = append(profile.Education, line)
			if lvl := scoring.DegreeMention(lower); lvl > bestDegree {
				bestDegree = lvl
				profile.HighestDegree = line
			}
		case containsAny(lower, certificationMarkers):
			profile.Certifications = append(profile.Certifications, line)
		case profile.WorkAuthorization == "" && containsAny(lower, authTerms):
			profile.WorkAuthorization = line
		case calendarYearRe.MatchString(line):
			profile.WorkHistory = append(profile.WorkHistory, line)
		}

		if len(summary) < summaryMaxLines && summaryLen < summaryMaxChars {
			summary = append(summary, line)
			summaryLen += len(line) + 1
		}
	}

	profile.Summary = strings.Join(summary, " ")
	return profile
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
