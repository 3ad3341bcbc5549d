package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobmatch-backend/match/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, Task{ID: "task-1", Keyword: "backend", Status: StatusSearching}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	task, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if task.Keyword != "backend" || task.Status != StatusSearching {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestMemoryStoreUpdateMutatesUnderLock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Put(ctx, Task{ID: "task-1", Status: StatusSearching}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	err := store.Update(ctx, "task-1", func(task *Task) {
		task.Status = StatusAnalyzing
		task.TotalJobs = 7
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	task, _ := store.Get(ctx, "task-1")
	if task.Status != StatusAnalyzing || task.TotalJobs != 7 {
		t.Fatalf("update not applied: %+v", task)
	}

	if err := store.Update(ctx, "missing", func(*Task) {}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreReturnsSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Put(ctx, Task{ID: "task-1", Jobs: []ScoredJob{{Job: model.JobPosting{ID: "job-1"}}}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	task, _ := store.Get(ctx, "task-1")
	task.Jobs[0].ScoreError = "mutated by caller"

	again, _ := store.Get(ctx, "task-1")
	if again.Jobs[0].ScoreError != "" {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	old := time.Now().UTC().Add(-10 * time.Minute)
	fresh := time.Now().UTC()
	running := Task{ID: "running", Status: StatusAnalyzing}
	doneOld := Task{ID: "done-old", Status: StatusCompleted, Completed: true, CompletedAt: &old}
	doneFresh := Task{ID: "done-fresh", Status: StatusCompleted, Completed: true, CompletedAt: &fresh}
	for _, task := range []Task{running, doneOld, doneFresh} {
		if err := store.Put(ctx, task); err != nil {
			t.Fatalf("Put %s: %v", task.ID, err)
		}
	}

	removed := store.DeleteExpired(ctx, time.Now().UTC().Add(-5*time.Minute))
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, err := store.Get(ctx, "done-old"); !errors.Is(err, ErrNotFound) {
		t.Fatal("expected expired task gone")
	}
	if _, err := store.Get(ctx, "running"); err != nil {
		t.Fatalf("running task must survive: %v", err)
	}
	if _, err := store.Get(ctx, "done-fresh"); err != nil {
		t.Fatalf("fresh terminal task must survive: %v", err)
	}
}

func TestMemoryStoreJanitorSweeps(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	old := time.Now().UTC().Add(-time.Hour)
	if err := store.Put(ctx, Task{ID: "done-old", Status: StatusCompleted, Completed: true, CompletedAt: &old}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	store.StartJanitor(5*time.Millisecond, time.Minute)
	defer store.StopJanitor()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := store.Get(ctx, "done-old"); errors.Is(err, ErrNotFound) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("janitor never removed the expired task")
}
