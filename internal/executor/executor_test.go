package executor_test

import (
	"context"
	"errors"
	"testing"

	"seqflow/internal/executor"
	"seqflow/internal/pipeline"
	"seqflow/internal/services"
)

type fakeRunner struct {
	calls    []string
	failOn   string
	stdout   string
	stderr   string
	startErr error
}

func (f *fakeRunner) Run(ctx context.Context, step pipeline.Step) (string, string, int, error) {
	f.calls = append(f.calls, step.Program)
	if f.startErr != nil {
		return "", "", 0, f.startErr
	}
	if step.Program == f.failOn {
		return f.stdout, f.stderr, 1, nil
	}
	return "", "", 0, nil
}

func commandsOf(programs ...string) []pipeline.Command {
	commands := make([]pipeline.Command, 0, len(programs))
	for _, program := range programs {
		commands = append(commands, pipeline.Command{
			RunPrefix: program,
			Steps:     []pipeline.Step{{Program: program}},
		})
	}
	return commands
}

func TestRunExecutesInOrderWithProgress(t *testing.T) {
	runner := &fakeRunner{}
	exec := executor.New(executor.WithRunner(runner))

	var messages []string
	err := exec.Run(context.Background(), commandsOf("a", "b", "c"), func(msg string) {
		messages = append(messages, msg)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantCalls := []string{"a", "b", "c"}
	for i, want := range wantCalls {
		if runner.calls[i] != want {
			t.Fatalf("call %d = %q, want %q", i, runner.calls[i], want)
		}
	}
	wantMessages := []string{"Step 1 of 3", "Step 2 of 3", "Step 3 of 3"}
	if len(messages) != len(wantMessages) {
		t.Fatalf("expected %d progress messages, got %v", len(wantMessages), messages)
	}
	for i, want := range wantMessages {
		if messages[i] != want {
			t.Fatalf("message %d = %q, want %q", i, messages[i], want)
		}
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	runner := &fakeRunner{failOn: "b", stdout: "some out", stderr: "some err"}
	exec := executor.New(executor.WithRunner(runner))

	err := exec.Run(context.Background(), commandsOf("a", "b", "c"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExecution) {
		t.Fatalf("expected execution marker, got %v", err)
	}

	var cmdErr *executor.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %T", err)
	}
	if cmdErr.Stdout != "some out" || cmdErr.Stderr != "some err" {
		t.Fatalf("captured output not preserved: %+v", cmdErr)
	}
	if cmdErr.Command != "b" {
		t.Fatalf("unexpected failing command: %q", cmdErr.Command)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("expected no calls after failure, got %v", runner.calls)
	}
}

func TestRunFailsStepInsideMultiStageCommand(t *testing.T) {
	runner := &fakeRunner{failOn: "samtools"}
	exec := executor.New(executor.WithRunner(runner))

	commands := []pipeline.Command{{
		RunPrefix: "s1",
		Steps: []pipeline.Step{
			{Program: "bowtie2"},
			{Program: "samtools"},
			{Program: "bedtools"},
		},
	}}
	err := exec.Run(context.Background(), commands, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected abort after failing step, got calls %v", runner.calls)
	}
}

func TestRunWrapsStartFailures(t *testing.T) {
	runner := &fakeRunner{startErr: errors.New("no such binary")}
	exec := executor.New(executor.WithRunner(runner))

	err := exec.Run(context.Background(), commandsOf("a"), nil)
	if !errors.Is(err, services.ErrExecution) {
		t.Fatalf("expected execution marker, got %v", err)
	}
}

func TestRunHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	exec := executor.New(executor.WithRunner(runner))

	err := exec.Run(ctx, commandsOf("a"), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("expected no calls after cancellation, got %v", runner.calls)
	}
}
