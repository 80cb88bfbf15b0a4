package pipeline

import (
	"path/filepath"
	"strconv"

	"seqflow/internal/params"
	"seqflow/internal/readpair"
)

// Conventions carries the path conventions commands are generated against.
// TempDir holds run-prefix-namespaced intermediates; OutDir receives the
// files the collector later harvests.
type Conventions struct {
	OutDir  string
	TempDir string
}

// FilterTools names the binaries chained by the host-filtering path.
type FilterTools struct {
	Bowtie2  string
	Samtools string
	Bedtools string
	Pigz     string
	Threads  int
}

// FilterSchema declares the bowtie2 options accepted from job configuration.
func FilterSchema() params.Schema {
	return params.Schema{
		"Bowtie2 database to filter":   {Flag: "x", Kind: params.KindDatabase},
		"Number of threads to be used": {Flag: "p", Kind: params.KindValue},
	}
}

// GenerateFilter builds the host-filtering chain for each sample: align
// against the filter database, keep unmapped reads, sort by name, convert
// back to FASTQ, and compress into the output directory. Intermediates live
// under conv.TempDir with run-prefix-derived names.
func GenerateFilter(samples []readpair.Sample, formatted string, conv Conventions, tools FilterTools) ([]Command, []string) {
	paramArgs := params.SplitArgs(formatted)
	threads := strconv.Itoa(tools.Threads)

	commands := make([]Command, 0, len(samples))
	prefixes := make([]string, 0, len(samples))
	for _, sample := range samples {
		prefix := sample.RunPrefix
		tmp := func(suffix string) string {
			return filepath.Join(conv.TempDir, prefix+suffix)
		}

		alignArgs := append([]string{}, paramArgs...)
		alignArgs = append(alignArgs, "--very-sensitive")
		if sample.Paired() {
			alignArgs = append(alignArgs, "-1", sample.ForwardPath, "-2", sample.ReversePath)
		} else {
			alignArgs = append(alignArgs, "-U", sample.ForwardPath)
		}
		alignArgs = append(alignArgs, "-S", tmp(".sam"))

		// -f 12 keeps pairs where both mates missed the filter database;
		// single-end reads only need -f 4.
		unmappedFlag := "12"
		if !sample.Paired() {
			unmappedFlag = "4"
		}

		steps := []Step{
			{Program: tools.Bowtie2, Args: alignArgs},
			{Program: tools.Samtools, Args: []string{
				"view", "-f", unmappedFlag, "-F", "256", "-b",
				"-o", tmp(".unsorted.bam"), tmp(".sam"),
			}},
			{Program: tools.Samtools, Args: []string{
				"sort", "-T", filepath.Join(conv.TempDir, prefix), "-@", threads, "-n",
				"-o", tmp(".bam"), tmp(".unsorted.bam"),
			}},
		}

		fastqArgs := []string{"bamtofastq", "-i", tmp(".bam"), "-fq", tmp(".R1.trimmed.filtered.fastq")}
		if sample.Paired() {
			fastqArgs = append(fastqArgs, "-fq2", tmp(".R2.trimmed.filtered.fastq"))
		}
		steps = append(steps, Step{Program: tools.Bedtools, Args: fastqArgs})

		steps = append(steps, Step{
			Program:    tools.Pigz,
			Args:       []string{"-p", threads, "-c", tmp(".R1.trimmed.filtered.fastq")},
			StdoutFile: filepath.Join(conv.OutDir, prefix+".R1.trimmed.filtered.fastq.gz"),
		})
		if sample.Paired() {
			steps = append(steps, Step{
				Program:    tools.Pigz,
				Args:       []string{"-p", threads, "-c", tmp(".R2.trimmed.filtered.fastq")},
				StdoutFile: filepath.Join(conv.OutDir, prefix+".R2.trimmed.filtered.fastq.gz"),
			})
		}

		commands = append(commands, Command{RunPrefix: prefix, Steps: steps})
		prefixes = append(prefixes, prefix)
	}
	return commands, prefixes
}
