package testsupport

import (
	"path/filepath"
	"testing"

	"seqflow/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Databases.Dir = filepath.Join(base, "dbs")
	cfg.Qiita.BaseURL = "https://qiita.test"
	cfg.Qiita.ClientID = "test-client"
	cfg.Qiita.ClientSecret = "test-secret"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithFilterThreads overrides the filter thread count on the test config.
func WithFilterThreads(threads int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Filter.Threads = threads
	}
}

// WithDatabaseRefs overrides the database label table on the test config.
func WithDatabaseRefs(refs map[string]string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Databases.Refs = refs
	}
}
