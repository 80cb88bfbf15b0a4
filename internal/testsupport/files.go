package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates a file with the given content under dir, creating parent
// directories as needed, and returns its path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteMappingFile writes a minimal QIIME-style mapping file declaring the
// given sample-to-run-prefix rows and returns its path.
func WriteMappingFile(t testing.TB, dir string, rows map[string]string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("#SampleID\tplatform\trun_prefix\tDescription\n")
	for sample, prefix := range rows {
		b.WriteString(sample + "\tILLUMINA\t" + prefix + "\tdesc\n")
	}
	return WriteFile(t, dir, "mapping.tsv", b.String())
}
