package artifacts

import (
	"os"
	"path/filepath"

	"seqflow/internal/readpair"
	"seqflow/internal/services"
)

// Artifact kinds understood by the orchestrating service.
const (
	KindPerSampleFASTQ = "per_sample_FASTQ"
	KindBIOM           = "BIOM"
)

// File is one harvested output file with its declared type.
type File struct {
	Path string
	Type string
}

// Descriptor is a named, typed bundle of output files. Ownership transfers to
// the orchestrating service on return.
type Descriptor struct {
	Label string
	Kind  string
	Files []File
}

// Template describes the per-sample filenames a processing path is expected
// to produce. Suffixes are appended to each sample's run prefix; PairedOnly
// suffixes apply only when the matching pass produced reverse reads.
type Template struct {
	Label      string
	Kind       string
	FileType   string
	Suffixes   []string
	PairedOnly []string
}

// FilterTemplate describes the host-filtering path outputs.
func FilterTemplate() Template {
	return Template{
		Label:      "Filtered files",
		Kind:       KindPerSampleFASTQ,
		FileType:   "raw_forward_seqs",
		Suffixes:   []string{".R1.trimmed.filtered.fastq.gz"},
		PairedOnly: []string{".R2.trimmed.filtered.fastq.gz"},
	}
}

// TrimTemplate describes the trimming path outputs.
func TrimTemplate() Template {
	return Template{
		Label:      "Trimmed files",
		Kind:       KindPerSampleFASTQ,
		FileType:   "raw_forward_seqs",
		Suffixes:   []string{".R1.trimmed.fastq.gz"},
		PairedOnly: []string{".R2.trimmed.fastq.gz"},
	}
}

// Collect scans the output directory for each sample's expected files.
// Missing files are skipped per sample; if no file exists across all samples
// the job failed to produce output and a NoOutput error is returned.
func Collect(outDir string, samples []readpair.Sample, paired bool, tmpl Template) ([]Descriptor, error) {
	suffixes := append([]string{}, tmpl.Suffixes...)
	if paired {
		suffixes = append(suffixes, tmpl.PairedOnly...)
	}

	var files []File
	for _, sample := range samples {
		for _, suffix := range suffixes {
			path := filepath.Join(outDir, sample.RunPrefix+suffix)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			files = append(files, File{Path: path, Type: tmpl.FileType})
		}
	}

	if len(files) == 0 {
		return nil, services.Wrap(services.ErrNoOutput, "collect", "",
			"no sequences left after processing", nil)
	}

	return []Descriptor{{Label: tmpl.Label, Kind: tmpl.Kind, Files: files}}, nil
}
