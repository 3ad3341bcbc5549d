package usage

import "context"

type store interface {
	Current(ctx context.Context, userID string) (Usage, error)
	Consume(ctx context.Context, userID string, n int) (Usage, error)
	AddJobsScored(ctx context.Context, userID string, n int) (Usage, error)
	Reset(ctx context.Context, userID string) (Usage, error)
}

// Service answers quota questions for the search pipeline. Each search
// costs one unit of the plan's allowance; scored postings are tallied
// but never gated.
type Service struct {
	store store
}

// NewService constructs a Service backed by process memory. State is
// lost on restart.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Current returns the user's usage for the current period, creating
// defaults on first sight and rolling the window forward once it has
// lapsed.
func (s *Service) Current(ctx context.Context, userID string) (Usage, error) {
	return s.store.Current(ctx, userID)
}

// CanSearch reports whether one more search fits the user's allowance.
func (s *Service) CanSearch(ctx context.Context, userID string) (bool, Usage, error) {
	u, err := s.store.Current(ctx, userID)
	if err != nil {
		return false, Usage{}, err
	}
	return u.Used < u.Limit, u, nil
}

// ChargeSearch spends one search unit. It returns ErrLimitReached when
// the allowance is already exhausted.
func (s *Service) ChargeSearch(ctx context.Context, userID string) (Usage, error) {
	return s.store.Consume(ctx, userID, 1)
}

// RecordJobsScored adds n scored postings to the period tally.
func (s *Service) RecordJobsScored(ctx context.Context, userID string, n int) (Usage, error) {
	return s.store.AddJobsScored(ctx, userID, n)
}

// Reset zeroes the counters and starts a fresh period.
func (s *Service) Reset(ctx context.Context, userID string) (Usage, error) {
	return s.store.Reset(ctx, userID)
}
