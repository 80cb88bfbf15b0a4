package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateQiita(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateQiita() error {
	if c.Qiita.BaseURL == "" {
		return errors.New("qiita.base_url must be set")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Trim.Binary == "" {
		return errors.New("trim.binary must be set")
	}
	for field, value := range map[string]string{
		"filter.bowtie2_binary":  c.Filter.Bowtie2Binary,
		"filter.samtools_binary": c.Filter.SamtoolsBinary,
		"filter.bedtools_binary": c.Filter.BedtoolsBinary,
		"filter.pigz_binary":     c.Filter.PigzBinary,
	} {
		if value == "" {
			return fmt.Errorf("%s must be set", field)
		}
	}
	if c.Filter.Threads < 1 {
		return errors.New("filter.threads must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
