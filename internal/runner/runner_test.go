package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"seqflow/internal/artifacts"
	"seqflow/internal/executor"
	"seqflow/internal/jobs"
	"seqflow/internal/logging"
	"seqflow/internal/pipeline"
	"seqflow/internal/qiita"
	"seqflow/internal/testsupport"
)

type fakeOrchestrator struct {
	artifact     *qiita.Artifact
	prepTemplate *qiita.PrepTemplate

	steps []string

	completeCalled  bool
	completeSuccess bool
	completeDesc    []artifacts.Descriptor
	completeMessage string
}

func (f *fakeOrchestrator) GetArtifact(_ context.Context, _ string) (*qiita.Artifact, error) {
	return f.artifact, nil
}

func (f *fakeOrchestrator) GetPrepTemplate(_ context.Context, _ string) (*qiita.PrepTemplate, error) {
	return f.prepTemplate, nil
}

func (f *fakeOrchestrator) UpdateJobStep(_ context.Context, _, message string) error {
	f.steps = append(f.steps, message)
	return nil
}

func (f *fakeOrchestrator) CompleteJob(_ context.Context, _ string, success bool, descriptors []artifacts.Descriptor, message string) error {
	f.completeCalled = true
	f.completeSuccess = success
	f.completeDesc = descriptors
	f.completeMessage = message
	return nil
}

// touchRunner succeeds on every step and materializes redirected stdout
// files so the artifact scan finds them.
type touchRunner struct{}

func (touchRunner) Run(_ context.Context, step pipeline.Step) (string, string, int, error) {
	if step.StdoutFile != "" {
		if err := os.WriteFile(step.StdoutFile, []byte("data"), 0o644); err != nil {
			return "", "", -1, err
		}
	}
	return "", "", 0, nil
}

// failAtRunner fails the first step whose program matches.
type failAtRunner struct {
	program string
	ran     []string
}

func (f *failAtRunner) Run(_ context.Context, step pipeline.Step) (string, string, int, error) {
	f.ran = append(f.ran, step.Program)
	if step.Program == f.program {
		return "partial out", "segfault", 1, nil
	}
	if step.StdoutFile != "" {
		if err := os.WriteFile(step.StdoutFile, []byte("data"), 0o644); err != nil {
			return "", "", -1, err
		}
	}
	return "", "", 0, nil
}

// dryRunner succeeds without producing any output files.
type dryRunner struct{}

func (dryRunner) Run(_ context.Context, _ pipeline.Step) (string, string, int, error) {
	return "", "", 0, nil
}

func newTestRunner(t *testing.T, client Orchestrator, proc executor.ProcessRunner, opts ...Option) *Runner {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	logger, err := logging.New(logging.Options{Level: "error", Format: "text", Output: io.Discard})
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}

	opts = append([]Option{
		WithExecutor(executor.New(executor.WithRunner(proc), executor.WithLogger(logger))),
		WithLogger(logger),
	}, opts...)

	r, err := New(cfg, client, opts...)
	if err != nil {
		t.Fatalf("create runner: %v", err)
	}
	return r
}

func pairedFixture(t *testing.T) *fakeOrchestrator {
	t.Helper()

	dir := t.TempDir()
	mapping := testsupport.WriteMappingFile(t, dir, map[string]string{
		"1.S1": "s1",
		"1.S2": "s2",
	})

	return &fakeOrchestrator{
		artifact: &qiita.Artifact{
			Files: map[string][]string{
				"raw_forward_seqs": {
					filepath.Join(dir, "s1_S011_L001_R1_001.fastq.gz"),
					filepath.Join(dir, "s2_S012_L001_R1_001.fastq.gz"),
				},
				"raw_reverse_seqs": {
					filepath.Join(dir, "s1_S011_L001_R2_001.fastq.gz"),
					filepath.Join(dir, "s2_S012_L001_R2_001.fastq.gz"),
				},
			},
			PrepInformation: []json.Number{"1"},
		},
		prepTemplate: &qiita.PrepTemplate{QiimeMap: mapping},
	}
}

func filterRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		JobID:      "job-1",
		Tool:       ToolFilter,
		ArtifactID: "5",
		Parameters: map[string]string{
			"Bowtie2 database to filter":   "Human",
			"Number of threads to be used": "2",
		},
		OutDir: filepath.Join(t.TempDir(), "out"),
	}
}

func TestRunFilterSuccess(t *testing.T) {
	client := pairedFixture(t)
	r := newTestRunner(t, client, touchRunner{})
	req := filterRequest(t)

	result := r.Run(context.Background(), req)

	if !result.OK {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if len(result.Artifacts) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(result.Artifacts))
	}
	desc := result.Artifacts[0]
	if desc.Label != "Filtered files" {
		t.Errorf("descriptor label = %q", desc.Label)
	}
	if len(desc.Files) != 4 {
		t.Fatalf("expected 4 output files (R1/R2 for two samples), got %d", len(desc.Files))
	}
	for _, file := range desc.Files {
		if _, err := os.Stat(file.Path); err != nil {
			t.Errorf("reported file missing on disk: %v", err)
		}
	}

	if !client.completeCalled || !client.completeSuccess {
		t.Errorf("completion not reported as success: called=%v success=%v",
			client.completeCalled, client.completeSuccess)
	}
	if len(client.steps) == 0 || client.steps[0] != "Step 1 of 4: Collecting information" {
		t.Errorf("missing initial progress message, got %v", client.steps)
	}
	last := client.steps[len(client.steps)-1]
	if last != "Step 4 of 4: Collecting artifacts" {
		t.Errorf("final progress message = %q", last)
	}
}

func TestRunRemovesTempDirectory(t *testing.T) {
	client := pairedFixture(t)
	r := newTestRunner(t, client, touchRunner{})
	req := filterRequest(t)

	if result := r.Run(context.Background(), req); !result.OK {
		t.Fatalf("run failed: %s", result.Message)
	}

	entries, err := os.ReadDir(req.OutDir)
	if err != nil {
		t.Fatalf("read output directory: %v", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			t.Errorf("temp directory %s left behind", entry.Name())
		}
	}
}

func TestRunPairingFailureReported(t *testing.T) {
	client := pairedFixture(t)
	// Drop one reverse file so forward and reverse counts disagree.
	client.artifact.Files["raw_reverse_seqs"] = client.artifact.Files["raw_reverse_seqs"][:1]

	r := newTestRunner(t, client, touchRunner{})
	result := r.Run(context.Background(), filterRequest(t))

	if result.OK {
		t.Fatal("expected failure")
	}
	if result.Artifacts != nil {
		t.Errorf("failure carried artifacts: %v", result.Artifacts)
	}
	if result.Message == "" {
		t.Error("failure carried no message")
	}
	if client.completeSuccess {
		t.Error("completion reported as success")
	}
	if client.completeMessage != result.Message {
		t.Errorf("orchestrator message %q != result message %q",
			client.completeMessage, result.Message)
	}
}

func TestRunCommandFailureStopsPipeline(t *testing.T) {
	client := pairedFixture(t)
	cfg := testsupport.NewConfig(t)
	proc := &failAtRunner{program: cfg.Filter.SamtoolsBinary}

	r := newTestRunner(t, client, proc)
	result := r.Run(context.Background(), filterRequest(t))

	if result.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "Std err: segfault") {
		t.Errorf("message does not carry captured stderr: %q", result.Message)
	}
	for _, step := range client.steps {
		if step == "Step 4 of 4: Collecting artifacts" {
			t.Error("artifact collection ran after a failed command")
		}
	}
	// The first sample's samtools view fails, so its later stages and the
	// second sample's commands never run.
	for _, program := range proc.ran {
		if program == cfg.Filter.BedtoolsBinary {
			t.Errorf("later stage ran after failure: %v", proc.ran)
		}
	}
}

func TestRunNoOutput(t *testing.T) {
	client := pairedFixture(t)
	r := newTestRunner(t, client, dryRunner{})
	result := r.Run(context.Background(), filterRequest(t))

	if result.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "no sequences left after processing") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestRunUnknownTool(t *testing.T) {
	client := pairedFixture(t)
	r := newTestRunner(t, client, touchRunner{})

	req := filterRequest(t)
	req.Tool = "assemble"
	result := r.Run(context.Background(), req)

	if result.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "unknown tool") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestRunGeneratesJobID(t *testing.T) {
	client := pairedFixture(t)
	r := newTestRunner(t, client, touchRunner{})

	req := filterRequest(t)
	req.JobID = ""
	if result := r.Run(context.Background(), req); !result.OK {
		t.Fatalf("run failed: %s", result.Message)
	}
	if !client.completeCalled {
		t.Error("completion never reported")
	}
}

func TestRunRecordsLedgerOutcome(t *testing.T) {
	client := pairedFixture(t)
	cfg := testsupport.NewConfig(t)
	store, err := jobs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	logger, err := logging.New(logging.Options{Level: "error", Format: "text", Output: io.Discard})
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}
	r, err := New(cfg, client,
		WithStore(store),
		WithExecutor(executor.New(executor.WithRunner(touchRunner{}), executor.WithLogger(logger))),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("create runner: %v", err)
	}

	req := filterRequest(t)
	if result := r.Run(context.Background(), req); !result.OK {
		t.Fatalf("run failed: %s", result.Message)
	}

	entry, err := store.GetByJobID(context.Background(), req.JobID)
	if err != nil {
		t.Fatalf("fetch ledger entry: %v", err)
	}
	if entry.Status != jobs.StatusCompleted {
		t.Errorf("status = %q", entry.Status)
	}
	if entry.ArtifactCount != 4 {
		t.Errorf("artifact count = %d, want 4", entry.ArtifactCount)
	}
}

func TestRunRecordsFailureKind(t *testing.T) {
	client := pairedFixture(t)
	client.artifact.Files["raw_reverse_seqs"] = nil
	client.artifact.Files["raw_forward_seqs"] = client.artifact.Files["raw_forward_seqs"][:1]

	cfg := testsupport.NewConfig(t)
	store, err := jobs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	logger, err := logging.New(logging.Options{Level: "error", Format: "text", Output: io.Discard})
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}
	r, err := New(cfg, client,
		WithStore(store),
		WithExecutor(executor.New(executor.WithRunner(dryRunner{}), executor.WithLogger(logger))),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("create runner: %v", err)
	}

	req := filterRequest(t)
	result := r.Run(context.Background(), req)
	if result.OK {
		t.Fatal("expected failure")
	}

	entry, err := store.GetByJobID(context.Background(), req.JobID)
	if err != nil {
		t.Fatalf("fetch ledger entry: %v", err)
	}
	if entry.Status != jobs.StatusFailed {
		t.Errorf("status = %q", entry.Status)
	}
	if entry.ErrorKind != "no_output" {
		t.Errorf("error kind = %q, want no_output", entry.ErrorKind)
	}
}

func TestRunOutputDirectoryLocked(t *testing.T) {
	client := pairedFixture(t)
	r := newTestRunner(t, client, touchRunner{})
	req := filterRequest(t)

	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		t.Fatalf("create output directory: %v", err)
	}
	held := flock.New(filepath.Join(req.OutDir, ".seqflow.lock"))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("acquire lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	result := r.Run(context.Background(), req)
	if result.OK {
		t.Fatal("expected failure while directory is locked")
	}
	if !errorMentionsLock(result.Message) {
		t.Errorf("message = %q", result.Message)
	}
}

func errorMentionsLock(message string) bool {
	return strings.Contains(message, "lock output directory") ||
		strings.Contains(message, "another job is writing")
}
