package scoring

import (
	"fmt"
	"strings"

	"jobmatch-backend/match/model"
)

// ApplyHardFilters evaluates the eligibility gates for a pair. Every gate
// runs even after one fails so FailureReasons is complete. The location
// gate always passes and never contributes a reason.
func ApplyHardFilters(resume model.ResumeProfile, job model.JobPosting) model.HardFilterResult {
	result := model.HardFilterResult{
		Checks: model.HardFilterChecks{Location: true},
	}
	var reasons []string

	result.Checks.WorkAuthorization = checkWorkAuthorization(resume, job)
	if !result.Checks.WorkAuthorization {
		reasons = append(reasons, "the job requires work authorization the resume does not mention")
	}

	result.Checks.Experience = checkExperience(resume, job)
	if !result.Checks.Experience {
		reasons = append(reasons, fmt.Sprintf("the job asks for %.1f+ years of experience, the resume shows %.1f", job.MinExperience, resume.YearsOfExperience))
	}

	result.Checks.Education = checkEducation(resume, job)
	if !result.Checks.Education {
		reasons = append(reasons, fmt.Sprintf("the job requires %s or an equivalent degree", strings.TrimSpace(job.RequiredEducation)))
	}

	result.Passed = result.Checks.Location &&
		result.Checks.WorkAuthorization &&
		result.Checks.Experience &&
		result.Checks.Education
	result.FailureReasons = reasons
	return result
}

// checkWorkAuthorization passes unless the description raises the topic
// and the resume's authorization text answers with none of the known
// phrases.
func checkWorkAuthorization(resume model.ResumeProfile, job model.JobPosting) bool {
	desc := strings.ToLower(job.Description)
	mentioned := false
	for _, kw := range workAuthKeywords {
		if strings.Contains(desc, kw) {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return true
	}

	auth := strings.ToLower(resume.WorkAuthorization)
	if strings.TrimSpace(auth) == "" {
		return false
	}
	for _, kw := range workAuthKeywords {
		if strings.Contains(auth, kw) {
			return true
		}
	}
	return false
}

// checkExperience is lenient near the bottom of the range: postings asking
// for a year or less always pass, anything above requires 80% of the
// posted minimum.
func checkExperience(resume model.ResumeProfile, job model.JobPosting) bool {
	if job.MinExperience <= experienceLenienceYears {
		return true
	}
	return resume.YearsOfExperience >= job.MinExperience*minExperienceRatio
}

func checkEducation(resume model.ResumeProfile, job model.JobPosting) bool {
	required := DegreeLevel(job.RequiredEducation)
	if required == 0 {
		return true
	}
	return candidateDegreeLevel(resume) >= required
}
