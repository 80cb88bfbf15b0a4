// Package logging provides the slog construction and attribute conventions
// used across seqflow.
//
// Loggers are built from config (format, level, optional file output in the
// log directory) and carry standardized field names for job IDs, stages, and
// tools so log lines stay greppable across processing paths.
package logging
