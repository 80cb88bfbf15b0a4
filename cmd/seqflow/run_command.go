package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"seqflow/internal/jobs"
	"seqflow/internal/logging"
	"seqflow/internal/qiita"
	"seqflow/internal/runner"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var jobID string
	var artifactID string
	var tool string
	var outDir string
	var paramFlags []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a processing job against a Qiita artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			parameters, err := parseParams(paramFlags)
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			store, err := jobs.Open(cfg)
			if err != nil {
				return fmt.Errorf("open job ledger: %w", err)
			}
			defer store.Close()

			client := qiita.New(cfg.Qiita)
			r, err := runner.New(cfg, client,
				runner.WithStore(store),
				runner.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			result := r.Run(cmd.Context(), runner.Request{
				JobID:      strings.TrimSpace(jobID),
				Tool:       tool,
				ArtifactID: strings.TrimSpace(artifactID),
				Parameters: parameters,
				OutDir:     outDir,
			})

			if jsonOutput {
				if err := writeRunResultJSON(cmd, result); err != nil {
					return err
				}
			} else {
				printRunResult(cmd, result)
			}
			if !result.OK {
				return fmt.Errorf("job failed: %s", result.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobID, "job-id", "", "Orchestrator job identifier (generated when omitted)")
	cmd.Flags().StringVar(&artifactID, "artifact", "", "Qiita artifact identifier to process")
	cmd.Flags().StringVar(&tool, "tool", "", "Processing tool (trim or filter)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for job outputs")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "Tool parameter as name=value (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	_ = cmd.MarkFlagRequired("artifact")
	_ = cmd.MarkFlagRequired("tool")
	_ = cmd.MarkFlagRequired("out-dir")

	return cmd
}

// parseParams converts repeated name=value flags into a parameter map. The
// value may itself contain "=" characters; only the first one splits.
func parseParams(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(flags))
	for _, flag := range flags {
		name, value, found := strings.Cut(flag, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected name=value)", flag)
		}
		params[name] = value
	}
	return params, nil
}

func writeRunResultJSON(cmd *cobra.Command, result runner.Result) error {
	type jsonFile struct {
		Path string `json:"path"`
		Type string `json:"type"`
	}
	type jsonArtifact struct {
		Label string     `json:"label"`
		Kind  string     `json:"kind"`
		Files []jsonFile `json:"files"`
	}
	out := struct {
		Success   bool           `json:"success"`
		Message   string         `json:"message,omitempty"`
		Artifacts []jsonArtifact `json:"artifacts,omitempty"`
	}{Success: result.OK, Message: result.Message}
	for _, desc := range result.Artifacts {
		artifact := jsonArtifact{Label: desc.Label, Kind: desc.Kind}
		for _, file := range desc.Files {
			artifact.Files = append(artifact.Files, jsonFile{Path: file.Path, Type: file.Type})
		}
		out.Artifacts = append(out.Artifacts, artifact)
	}
	return writeJSON(cmd, out)
}

func printRunResult(cmd *cobra.Command, result runner.Result) {
	out := cmd.OutOrStdout()
	if !result.OK {
		return
	}
	fmt.Fprintln(out, statusLine("Job completed", shouldColorize(out)))
	for _, desc := range result.Artifacts {
		rows := make([][]string, 0, len(desc.Files))
		for _, file := range desc.Files {
			rows = append(rows, []string{file.Path, file.Type})
		}
		fmt.Fprintf(out, "%s (%s)\n", desc.Label, desc.Kind)
		fmt.Fprintln(out, renderTable([]string{"File", "Type"}, rows, []columnAlignment{alignLeft, alignLeft}))
	}
}
