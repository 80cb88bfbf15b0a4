package main

import (
	"context"
	"testing"

	"seqflow/internal/config"
	"seqflow/internal/jobs"
)

func TestJobsListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, []string{"jobs", "list"}, configPath)
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	requireContains(t, out, "No jobs recorded")
}

func TestJobsListAndShow(t *testing.T) {
	configPath := writeTestConfig(t)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := jobs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	ctx := context.Background()
	entry, err := store.NewJob(ctx, "job-42", "filter")
	if err != nil {
		t.Fatalf("insert job: %v", err)
	}
	entry.SetCompleted(4)
	if err := store.Update(ctx, entry); err != nil {
		t.Fatalf("update job: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	out, _, err := runCLI(t, []string{"jobs", "list"}, configPath)
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	requireContains(t, out, "job-42")
	requireContains(t, out, "completed")
	requireContains(t, out, "4 files")

	out, _, err = runCLI(t, []string{"jobs", "show", "job-42"}, configPath)
	if err != nil {
		t.Fatalf("jobs show: %v", err)
	}
	requireContains(t, out, "Job:       job-42")
	requireContains(t, out, "Artifacts: 4")

	if _, _, err := runCLI(t, []string{"jobs", "show", "missing"}, configPath); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

func TestJobsListJSON(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, []string{"jobs", "list", "--json"}, configPath)
	if err != nil {
		t.Fatalf("jobs list --json: %v", err)
	}
	requireContains(t, out, "[]")
}
