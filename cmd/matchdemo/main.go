package main

// Score a resume against a job posting from the command line:
//   go run ./cmd/matchdemo
//   go run ./cmd/matchdemo -resume my_resume.txt -job posting.txt -quick

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"jobmatch-backend/internal/resumes"
	"jobmatch-backend/match/model"
	"jobmatch-backend/match/scoring"
)

func main() {
	resumePath := flag.String("resume", "", "Path to plain-text resume (sample used when empty)")
	jobPath := flag.String("job", "", "Path to plain-text job description (sample used when empty)")
	quick := flag.Bool("quick", false, "Print the quick score instead of the full analysis")
	flag.Parse()

	profile, err := loadProfile(*resumePath)
	if err != nil {
		exitErr(err.Error())
	}
	job, err := loadJob(*jobPath)
	if err != nil {
		exitErr(err.Error())
	}

	var out any
	if *quick {
		out = scoring.QuickScore(profile, job)
	} else {
		result, err := scoring.Analyze(profile, job, nil)
		if err != nil {
			exitErr(fmt.Sprintf("analyze: %v", err))
		}
		out = result
	}

	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("encode result: %v", err))
	}
	fmt.Println(string(payload))
}

func loadProfile(path string) (model.ResumeProfile, error) {
	if strings.TrimSpace(path) == "" {
		return sampleProfile(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeProfile{}, fmt.Errorf("read resume: %v", err)
	}
	return resumes.DeriveProfile(string(raw)), nil
}

func loadJob(path string) (model.JobPosting, error) {
	if strings.TrimSpace(path) == "" {
		return sampleJob(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.JobPosting{}, fmt.Errorf("read job description: %v", err)
	}
	return model.JobPosting{
		Title:       "Imported Posting",
		Description: string(raw),
	}, nil
}

func sampleProfile() model.ResumeProfile {
	return model.ResumeProfile{
		Skills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "AWS", "REST"},
		WorkHistory: []string{
			"Senior Backend Engineer at Acme Logistics, owning the shipment routing APIs.",
			"Backend Engineer at Blue Harbor Systems, building event-driven ingestion pipelines.",
		},
		Projects: []string{
			"Built a rate-limited job queue processing 2M tasks per day.",
		},
		Summary:           "Backend engineer with a focus on resilient APIs and data services.",
		YearsOfExperience: 7,
		HighestDegree:     "Bachelor's",
		Education:         []string{"BSc Computer Science, University of Texas"},
	}
}

func sampleJob() model.JobPosting {
	maxExp := 10.0
	return model.JobPosting{
		Title:             "Senior Backend Engineer",
		Company:           "Northwind Analytics",
		Location:          "Remote",
		Description:       "We build data pipelines in Go on AWS. You will design REST APIs backed by PostgreSQL, containerize services with Docker, and operate them on Kubernetes.",
		RequiredSkills:    []string{"Go", "PostgreSQL", "REST"},
		PreferredSkills:   []string{"Kubernetes", "Terraform"},
		MinExperience:     5,
		MaxExperience:     &maxExp,
		RequiredEducation: "Bachelor's",
		RoleType:          "Senior Backend Engineer",
	}
}

func exitErr(msg string) {
	fmt.Fprintf(os.Stderr, "%s\n", msg)
	os.Exit(1)
}
