package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"seqflow/internal/jobs"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect the local job ledger",
	}

	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsShowCommand(ctx))

	return jobsCmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := jobs.Open(cfg)
			if err != nil {
				return fmt.Errorf("open job ledger: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJobsJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No jobs recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.JobID,
					entry.Tool,
					string(entry.Status),
					jobDetail(entry),
					entry.UpdatedAt.Local().Format(time.RFC3339),
				})
			}
			table := renderTable(
				[]string{"Job", "Tool", "Status", "Detail", "Updated"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of jobs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the list as JSON")
	return cmd
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one recorded job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := jobs.Open(cfg)
			if err != nil {
				return fmt.Errorf("open job ledger: %w", err)
			}
			defer store.Close()

			entry, err := store.GetByJobID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJobsJSON(cmd, []*jobs.Job{entry})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Job:       %s\n", entry.JobID)
			fmt.Fprintf(out, "Tool:      %s\n", entry.Tool)
			fmt.Fprintf(out, "Status:    %s\n", entry.Status)
			if entry.Status == jobs.StatusCompleted {
				fmt.Fprintf(out, "Artifacts: %d\n", entry.ArtifactCount)
			}
			if entry.ErrorKind != "" {
				fmt.Fprintf(out, "Error:     %s\n", entry.ErrorKind)
			}
			if entry.Message != "" {
				fmt.Fprintf(out, "Message:   %s\n", entry.Message)
			}
			fmt.Fprintf(out, "Created:   %s\n", entry.CreatedAt.Local().Format(time.RFC3339))
			fmt.Fprintf(out, "Updated:   %s\n", entry.UpdatedAt.Local().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the job as JSON")
	return cmd
}

func jobDetail(entry *jobs.Job) string {
	switch entry.Status {
	case jobs.StatusCompleted:
		return strconv.Itoa(entry.ArtifactCount) + " files"
	case jobs.StatusFailed:
		return entry.ErrorKind
	default:
		return ""
	}
}

func writeJobsJSON(cmd *cobra.Command, entries []*jobs.Job) error {
	type jsonJob struct {
		JobID         string `json:"job_id"`
		Tool          string `json:"tool"`
		Status        string `json:"status"`
		Message       string `json:"message,omitempty"`
		ErrorKind     string `json:"error_kind,omitempty"`
		ArtifactCount int    `json:"artifact_count"`
		CreatedAt     string `json:"created_at"`
		UpdatedAt     string `json:"updated_at"`
	}
	out := make([]jsonJob, 0, len(entries))
	for _, entry := range entries {
		out = append(out, jsonJob{
			JobID:         entry.JobID,
			Tool:          entry.Tool,
			Status:        string(entry.Status),
			Message:       entry.Message,
			ErrorKind:     entry.ErrorKind,
			ArtifactCount: entry.ArtifactCount,
			CreatedAt:     entry.CreatedAt.Format(time.RFC3339Nano),
			UpdatedAt:     entry.UpdatedAt.Format(time.RFC3339Nano),
		})
	}
	return writeJSON(cmd, out)
}
