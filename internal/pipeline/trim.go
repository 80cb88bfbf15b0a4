package pipeline

import (
	"path/filepath"

	"seqflow/internal/params"
	"seqflow/internal/readpair"
)

// TrimSchema declares the kneaddata options accepted from job configuration.
// Option names double as the rendered long-flag names.
func TrimSchema() params.Schema {
	return params.Schema{
		"reference-db":        {Flag: "reference-db", Kind: params.KindValue},
		"threads":             {Flag: "threads", Kind: params.KindValue},
		"processes":           {Flag: "processes", Kind: params.KindValue},
		"quality-scores":      {Flag: "quality-scores", Kind: params.KindValue},
		"max-memory":          {Flag: "max-memory", Kind: params.KindValue},
		"log-level":           {Flag: "log-level", Kind: params.KindValue},
		"bypass-trim":         {Flag: "bypass-trim", Kind: params.KindFlag},
		"run-bmtagger":        {Flag: "run-bmtagger", Kind: params.KindFlag},
		"run-trf":             {Flag: "run-trf", Kind: params.KindFlag},
		"run-fastqc-start":    {Flag: "run-fastqc-start", Kind: params.KindFlag},
		"run-fastqc-end":      {Flag: "run-fastqc-end", Kind: params.KindFlag},
		"store-temp-output":   {Flag: "store-temp-output", Kind: params.KindFlag},
		"trimmomatic-options": {Flag: "trimmomatic-options", Kind: params.KindQuoted},
		"bowtie2-options":     {Flag: "bowtie2-options", Kind: params.KindQuoted},
	}
}

// GenerateTrim builds one kneaddata invocation per sample, preserving sample
// order. The returned prefix list is positionally aligned with the commands.
func GenerateTrim(samples []readpair.Sample, formatted string, conv Conventions, binary string) ([]Command, []string) {
	paramArgs := params.SplitArgs(formatted)

	commands := make([]Command, 0, len(samples))
	prefixes := make([]string, 0, len(samples))
	for _, sample := range samples {
		args := []string{"--input", sample.ForwardPath}
		if sample.Paired() {
			args = append(args, "--input", sample.ReversePath)
		}
		args = append(args,
			"--output", filepath.Join(conv.OutDir, sample.RunPrefix),
			"--output-prefix", sample.RunPrefix,
		)
		args = append(args, paramArgs...)

		commands = append(commands, Command{
			RunPrefix: sample.RunPrefix,
			Steps:     []Step{{Program: binary, Args: args}},
		})
		prefixes = append(prefixes, sample.RunPrefix)
	}
	return commands, prefixes
}
