package usage

import "time"

// Usage is a user's quota snapshot for the current period. JobsScored
// counts postings the relevance pipeline scored on the user's behalf;
// it is informational and never gates anything.
type Usage struct {
	Plan       string    `json:"plan"`
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	JobsScored int       `json:"jobsScored"`
	ResetsAt   time.Time `json:"resetsAt"`
}
