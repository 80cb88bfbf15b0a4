// Package config loads, normalizes, and validates seqflow configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SEQFLOW_FILTER_DB_DIR. The Config type centralizes every knob the CLI and
// job runner need: work directories, external tool binaries, filter database
// locations, and orchestrator connection settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
