// Package jobs persists a local ledger of processed jobs backed by SQLite.
//
// The ledger records the orchestrator job identifier, processing tool, status
// transitions, the final message, and how many artifact files were harvested.
// It exists for operator visibility (the CLI's jobs listing); the
// orchestrating service remains the source of truth for job state.
package jobs
