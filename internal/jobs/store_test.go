package jobs_test

import (
	"context"
	"errors"
	"testing"

	"seqflow/internal/jobs"
	"seqflow/internal/testsupport"
)

func openStore(t *testing.T) *jobs.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := jobs.Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewJobAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "job-1", "filter")
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}
	if job.ID == 0 {
		t.Fatal("expected assigned row id")
	}
	if job.Status != jobs.StatusRunning {
		t.Fatalf("unexpected status: %q", job.Status)
	}

	got, err := store.GetByJobID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetByJobID returned error: %v", err)
	}
	if got.Tool != "filter" || got.Status != jobs.StatusRunning {
		t.Fatalf("unexpected job: %+v", got)
	}
}

func TestUpdateTransitions(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "job-1", "trim")
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}

	job.SetCompleted(6)
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err := store.GetByJobID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetByJobID returned error: %v", err)
	}
	if got.Status != jobs.StatusCompleted || got.ArtifactCount != 6 {
		t.Fatalf("unexpected job after completion: %+v", got)
	}

	job.SetFailed("pairing", "no run prefix matches forward read x.fastq.gz")
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, err = store.GetByJobID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetByJobID returned error: %v", err)
	}
	if got.Status != jobs.StatusFailed || got.ErrorKind != "pairing" {
		t.Fatalf("unexpected job after failure: %+v", got)
	}
	if got.Message == "" {
		t.Fatal("expected failure message to persist")
	}
}

func TestGetMissingJob(t *testing.T) {
	store := openStore(t)
	if _, err := store.GetByJobID(context.Background(), "nope"); !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, id := range []string{"job-1", "job-2", "job-3"} {
		if _, err := store.NewJob(ctx, id, "filter"); err != nil {
			t.Fatalf("NewJob returned error: %v", err)
		}
	}

	listed, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(listed))
	}
	if listed[0].JobID != "job-3" {
		t.Fatalf("expected newest first, got %q", listed[0].JobID)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(limited))
	}
}
