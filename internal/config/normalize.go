package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDatabases(); err != nil {
		return err
	}
	c.normalizeQiita()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDatabases() error {
	if strings.TrimSpace(c.Databases.Dir) == "" {
		if env, ok := os.LookupEnv("SEQFLOW_FILTER_DB_DIR"); ok {
			c.Databases.Dir = env
		}
	}
	if strings.TrimSpace(c.Databases.Dir) != "" {
		var err error
		if c.Databases.Dir, err = expandPath(c.Databases.Dir); err != nil {
			return fmt.Errorf("databases.dir: %w", err)
		}
	}
	if c.Databases.Refs == nil {
		c.Databases.Refs = Default().Databases.Refs
	}
	return nil
}

func (c *Config) normalizeQiita() {
	c.Qiita.BaseURL = strings.TrimRight(strings.TrimSpace(c.Qiita.BaseURL), "/")
	if c.Qiita.ClientSecret == "" {
		if env, ok := os.LookupEnv("QIITA_CLIENT_SECRET"); ok {
			c.Qiita.ClientSecret = env
		}
	}
	if c.Qiita.RequestTimeout <= 0 {
		c.Qiita.RequestTimeout = defaultQiitaTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
