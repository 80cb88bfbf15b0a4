package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks malformed or missing metadata, parameters, or
	// tool configuration. Raised before any external process starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrPairing marks ambiguous, missing, or mismatched sample/file
	// correspondence detected while matching read pairs.
	ErrPairing = errors.New("pairing error")
	// ErrExecution marks a generated command that exited non-zero.
	ErrExecution = errors.New("execution error")
	// ErrNoOutput marks a job whose commands all succeeded but produced no
	// expected output file. A legitimate data outcome, still a job failure.
	ErrNoOutput = errors.New("no output error")
	// ErrValidation marks input that fails sanity checks before processing.
	ErrValidation = errors.New("validation error")
	// ErrExternalTool marks failures while talking to external collaborators.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExecution
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short string classification for a wrapped error, used by the
// job ledger and CLI output.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrPairing):
		return "pairing"
	case errors.Is(err, ErrNoOutput):
		return "no_output"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	default:
		return "execution"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "job failure"
	}
	return strings.Join(parts, ": ")
}
