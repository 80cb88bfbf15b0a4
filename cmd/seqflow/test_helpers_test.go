package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"seqflow/internal/testsupport"
)

// writeTestConfig produces a config file whose directories live under a
// per-test temp dir and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
work_dir = %q
log_dir = %q

[qiita]
base_url = "https://qiita.test"
client_id = "test-client"
client_secret = "test-secret"

[databases]
dir = %q
`,
		filepath.Join(base, "work"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "dbs"),
	)
	return testsupport.WriteFile(t, base, "config.toml", content)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	cmd := newRootCommand()
	cmd.SetArgs(args)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q does not contain %q", output, want)
	}
}
