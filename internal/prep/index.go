package prep

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"seqflow/internal/services"
)

// RunPrefixColumn is the mandatory metadata column naming each sample's
// filename prefix.
const RunPrefixColumn = "run_prefix"

// Index maps run prefixes to sample identifiers for one matching pass.
type Index struct {
	samples map[string]string
}

// LoadIndex reads a mapping file from disk and builds the run-prefix index.
func LoadIndex(path string) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "index", "open mapping file", path, err)
	}
	defer file.Close()
	return ParseIndex(file)
}

// ParseIndex builds the run-prefix index from tab-separated mapping data.
// Duplicate run prefixes across rows are rejected: silently picking one of
// several samples for the same prefix would make downstream pairing depend on
// row order.
func ParseIndex(r io.Reader) (*Index, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "index", "read mapping file", "", err)
		}
		return nil, services.Wrap(services.ErrConfiguration, "index", "read mapping file", "empty mapping file", nil)
	}

	header := strings.Split(scanner.Text(), "\t")
	prefixCol := -1
	for i, name := range header {
		if strings.TrimSpace(name) == RunPrefixColumn {
			prefixCol = i
			break
		}
	}
	if prefixCol == -1 {
		return nil, services.Wrap(services.ErrConfiguration, "index", "parse header",
			fmt.Sprintf("mapping file has no %s column", RunPrefixColumn), nil)
	}

	samples := make(map[string]string)
	line := 1
	for scanner.Scan() {
		line++
		row := scanner.Text()
		if strings.TrimSpace(row) == "" {
			continue
		}
		fields := strings.Split(row, "\t")
		if len(fields) <= prefixCol {
			return nil, services.Wrap(services.ErrConfiguration, "index", "parse row",
				fmt.Sprintf("line %d has %d columns, %s expected at column %d", line, len(fields), RunPrefixColumn, prefixCol+1), nil)
		}
		sample := strings.TrimSpace(fields[0])
		prefix := strings.TrimSpace(fields[prefixCol])
		if sample == "" || prefix == "" {
			return nil, services.Wrap(services.ErrConfiguration, "index", "parse row",
				fmt.Sprintf("line %d has an empty sample identifier or run prefix", line), nil)
		}
		if existing, ok := samples[prefix]; ok {
			return nil, services.Wrap(services.ErrConfiguration, "index", "parse row",
				fmt.Sprintf("run prefix %q declared for both %q and %q", prefix, existing, sample), nil)
		}
		samples[prefix] = sample
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "index", "read mapping file", "", err)
	}
	if len(samples) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "index", "parse rows", "mapping file has no sample rows", nil)
	}

	return &Index{samples: samples}, nil
}

// Len reports the number of indexed run prefixes.
func (idx *Index) Len() int {
	return len(idx.samples)
}

// Sample returns the sample identifier declared for the given run prefix.
func (idx *Index) Sample(prefix string) (string, bool) {
	name, ok := idx.samples[prefix]
	return name, ok
}

// MatchPrefixes returns every indexed run prefix that is a string prefix of
// the given filename, sorted lexicographically so callers report ambiguity
// deterministically.
func (idx *Index) MatchPrefixes(filename string) []string {
	var matches []string
	for prefix := range idx.samples {
		if strings.HasPrefix(filename, prefix) {
			matches = append(matches, prefix)
		}
	}
	sort.Strings(matches)
	return matches
}
