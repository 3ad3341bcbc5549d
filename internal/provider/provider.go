package provider

import (
	"context"
	"errors"

	"jobmatch-backend/match/model"
)

// Query describes one page of a job-board search.
type Query struct {
	Keyword    string
	Location   string
	Experience string
	Page       int
	PageCount  int
	Company    string
	Platform   string
}

// Provider fetches normalized job postings from an external board.
type Provider interface {
	Search(ctx context.Context, q Query) ([]model.JobPosting, error)
}

// Sentinel conditions callers can check with errors.Is to surface a
// specific failure to their own clients.
var (
	ErrRateLimited  = errors.New("provider rate limited")
	ErrUnauthorized = errors.New("provider rejected credentials")
	ErrBadRequest   = errors.New("provider rejected the request")
)
