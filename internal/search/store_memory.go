package search

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps tasks in a map and is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]Task

	janitorStop chan struct{}
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]Task)}
}

// Put stores the task, replacing any record under the same id.
func (s *MemoryStore) Put(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

// Get returns a snapshot of the task so callers never observe later
// mutations by the owning routine.
func (s *MemoryStore) Get(ctx context.Context, id string) (Task, error) {
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return cloneTask(task), nil
}

// Update applies fn to the stored task under the write lock.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*Task)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	fn(&task)
	s.tasks[id] = cloneTask(task)
	return nil
}

// Delete removes the task. Deleting an unknown id is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

// DeleteExpired drops terminal tasks completed before cutoff.
func (s *MemoryStore) DeleteExpired(_ context.Context, cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, task := range s.tasks {
		if task.Completed && task.CompletedAt != nil && task.CompletedAt.Before(cutoff) {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired tasks every interval until StopJanitor is
// called. Calling it twice replaces the previous sweeper.
func (s *MemoryStore) StartJanitor(interval, retention time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	s.StopJanitor()

	stop := make(chan struct{})
	s.janitorStop = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.DeleteExpired(context.Background(), time.Now().UTC().Add(-retention))
			case <-stop:
				return
			}
		}
	}()
}

// StopJanitor halts the background sweeper if one is running.
func (s *MemoryStore) StopJanitor() {
	if s.janitorStop != nil {
		close(s.janitorStop)
		s.janitorStop = nil
	}
}

// cloneTask copies the jobs slice so a stored task and a returned one do
// not share mutable state. Per-job pointers are write-once and safe to
// share.
func cloneTask(t Task) Task {
	if t.Jobs != nil {
		jobs := make([]ScoredJob, len(t.Jobs))
		copy(jobs, t.Jobs)
		t.Jobs = jobs
	}
	return t
}
