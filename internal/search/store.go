package search

import (
	"context"
	"time"
)

// Store keeps live task records. One goroutine writes a given task while
// many pollers read it; implementations must be safe for that pattern.
type Store interface {
	Put(ctx context.Context, task Task) error
	Get(ctx context.Context, id string) (Task, error)
	// Update applies fn to the stored task under the store's write lock.
	Update(ctx context.Context, id string, fn func(*Task)) error
	Delete(ctx context.Context, id string) error
	// DeleteExpired drops terminal tasks completed before cutoff and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) int
}
