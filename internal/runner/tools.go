package runner

import (
	"strconv"

	"seqflow/internal/artifacts"
	"seqflow/internal/config"
	"seqflow/internal/params"
	"seqflow/internal/pipeline"
	"seqflow/internal/readpair"
	"seqflow/internal/services"
)

// Tool names accepted by the runner.
const (
	ToolTrim   = "trim"
	ToolFilter = "filter"
)

type toolSpec struct {
	name     string
	schema   params.Schema
	template artifacts.Template
	generate func(cfg *config.Config, samples []readpair.Sample, formatted string, values map[string]string, conv pipeline.Conventions) []pipeline.Command
}

func lookupTool(name string) (toolSpec, error) {
	switch name {
	case ToolTrim:
		return toolSpec{
			name:     ToolTrim,
			schema:   pipeline.TrimSchema(),
			template: artifacts.TrimTemplate(),
			generate: func(cfg *config.Config, samples []readpair.Sample, formatted string, _ map[string]string, conv pipeline.Conventions) []pipeline.Command {
				commands, _ := pipeline.GenerateTrim(samples, formatted, conv, cfg.Trim.Binary)
				return commands
			},
		}, nil
	case ToolFilter:
		return toolSpec{
			name:     ToolFilter,
			schema:   pipeline.FilterSchema(),
			template: artifacts.FilterTemplate(),
			generate: func(cfg *config.Config, samples []readpair.Sample, formatted string, values map[string]string, conv pipeline.Conventions) []pipeline.Command {
				tools := pipeline.FilterTools{
					Bowtie2:  cfg.Filter.Bowtie2Binary,
					Samtools: cfg.Filter.SamtoolsBinary,
					Bedtools: cfg.Filter.BedtoolsBinary,
					Pigz:     cfg.Filter.PigzBinary,
					Threads:  filterThreads(cfg, values),
				}
				commands, _ := pipeline.GenerateFilter(samples, formatted, conv, tools)
				return commands
			},
		}, nil
	default:
		return toolSpec{}, services.Wrap(services.ErrValidation, "runner", "", "unknown tool "+name, nil)
	}
}

func filterThreads(cfg *config.Config, values map[string]string) int {
	if raw, ok := values["Number of threads to be used"]; ok {
		if threads, err := strconv.Atoi(raw); err == nil && threads > 0 {
			return threads
		}
	}
	return cfg.Filter.Threads
}
