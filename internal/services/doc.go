// Package services defines shared utilities consumed by the job runner and
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp job identifiers, pipeline stage names, and
//     tool names for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (configuration, pairing, execution, empty output) consistently.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across processing paths.
package services
