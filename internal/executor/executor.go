package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"seqflow/internal/logging"
	"seqflow/internal/pipeline"
	"seqflow/internal/services"
)

// ProcessRunner abstracts step execution for testability.
type ProcessRunner interface {
	Run(ctx context.Context, step pipeline.Step) (stdout, stderr string, exitCode int, err error)
}

// CommandError reports a command whose step exited non-zero, with the
// captured process output attached verbatim.
type CommandError struct {
	Command string
	Stdout  string
	Stderr  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("error running %s\nStd out: %s\nStd err: %s", e.Command, e.Stdout, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return services.ErrExecution
}

// Option configures the executor.
type Option func(*Executor)

// WithRunner injects a custom process runner (primarily for tests).
func WithRunner(runner ProcessRunner) Option {
	return func(e *Executor) {
		if runner != nil {
			e.runner = runner
		}
	}
}

// WithLogger attaches a logger to the executor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Executor runs command sequences for one job at a time.
type Executor struct {
	runner ProcessRunner
	logger *slog.Logger
}

// New constructs a sequential executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		runner: processRunner{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes commands strictly in input order. Before each command the
// progress callback receives a "Step X of N" message. The first step exiting
// non-zero aborts the remaining sequence with a CommandError.
func (e *Executor) Run(ctx context.Context, commands []pipeline.Command, progress func(string)) error {
	total := len(commands)
	for i, command := range commands {
		if progress != nil {
			progress(fmt.Sprintf("Step %d of %d", i+1, total))
		}
		logger := logging.WithContext(ctx, e.logger)
		logger.Info("command started",
			logging.Int(logging.FieldStep, i+1),
			logging.String("run_prefix", command.RunPrefix),
		)
		for _, step := range command.Steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			stdout, stderr, exitCode, err := e.runner.Run(ctx, step)
			if err != nil {
				return services.Wrap(services.ErrExecution, "execute", step.Program, "start command", err)
			}
			if exitCode != 0 {
				logger.Error("command failed",
					logging.Int(logging.FieldStep, i+1),
					logging.String("program", step.Program),
					logging.Int("exit_code", exitCode),
				)
				return &CommandError{Command: step.String(), Stdout: stdout, Stderr: stderr}
			}
		}
		logger.Info("command completed", logging.Int(logging.FieldStep, i+1))
	}
	return nil
}

type processRunner struct{}

func (processRunner) Run(ctx context.Context, step pipeline.Step) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, step.Program, step.Args...) //nolint:gosec

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if step.StdoutFile != "" {
		file, err := os.Create(step.StdoutFile)
		if err != nil {
			return "", "", 0, fmt.Errorf("create stdout target: %w", err)
		}
		defer file.Close()
		cmd.Stdout = file
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
		}
		return "", "", 0, err
	}
	return stdout.String(), stderr.String(), 0, nil
}
