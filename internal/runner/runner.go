package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"seqflow/internal/artifacts"
	"seqflow/internal/config"
	"seqflow/internal/executor"
	"seqflow/internal/jobs"
	"seqflow/internal/logging"
	"seqflow/internal/params"
	"seqflow/internal/pipeline"
	"seqflow/internal/prep"
	"seqflow/internal/qiita"
	"seqflow/internal/readpair"
	"seqflow/internal/services"
)

// Orchestrator is the subset of the Qiita client the runner depends on.
type Orchestrator interface {
	GetArtifact(ctx context.Context, artifactID string) (*qiita.Artifact, error)
	GetPrepTemplate(ctx context.Context, prepID string) (*qiita.PrepTemplate, error)
	UpdateJobStep(ctx context.Context, jobID, message string) error
	CompleteJob(ctx context.Context, jobID string, success bool, descriptors []artifacts.Descriptor, message string) error
}

// Request describes one job to run.
type Request struct {
	JobID      string
	Tool       string
	ArtifactID string
	Parameters map[string]string
	OutDir     string
}

// Result is the tri-state outcome reported to the orchestrator.
type Result struct {
	OK        bool
	Artifacts []artifacts.Descriptor
	Message   string
}

// Option configures the runner.
type Option func(*Runner)

// WithStore attaches a job ledger; outcomes are recorded best-effort.
func WithStore(store *jobs.Store) Option {
	return func(r *Runner) { r.store = store }
}

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec *executor.Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithLogger attaches a logger to the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner executes jobs one at a time.
type Runner struct {
	cfg    *config.Config
	client Orchestrator
	store  *jobs.Store
	exec   *executor.Executor
	logger *slog.Logger
}

// New constructs a job runner.
func New(cfg *config.Config, client Orchestrator, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if client == nil {
		return nil, fmt.Errorf("orchestrator client is required")
	}
	r := &Runner{
		cfg:    cfg,
		client: client,
		exec:   executor.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run drives one job end to end and reports the tri-state result to the
// orchestrator. The ledger records the outcome when a store is attached.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	if req.JobID == "" {
		req.JobID = uuid.NewString()
	}
	ctx = services.WithJobID(ctx, req.JobID)
	ctx = services.WithTool(ctx, req.Tool)
	logger := logging.WithContext(ctx, r.logger)

	entry := r.recordStart(ctx, req, logger)

	descriptors, runErr := r.process(ctx, req, logger)

	result := Result{OK: runErr == nil, Artifacts: descriptors}
	if runErr != nil {
		result.Message = runErr.Error()
		result.Artifacts = nil
		logger.Error("job failed",
			logging.String("error_kind", services.Kind(runErr)),
			logging.Error(runErr),
		)
	}

	r.recordOutcome(ctx, entry, result, runErr, logger)
	if err := r.client.CompleteJob(ctx, req.JobID, result.OK, result.Artifacts, result.Message); err != nil {
		logger.Error("report job completion", logging.Error(err))
	}
	return result
}

func (r *Runner) process(ctx context.Context, req Request, logger *slog.Logger) ([]artifacts.Descriptor, error) {
	tool, err := lookupTool(req.Tool)
	if err != nil {
		return nil, err
	}
	if req.ArtifactID == "" {
		return nil, services.Wrap(services.ErrValidation, "runner", "", "artifact identifier is required", nil)
	}
	if req.OutDir == "" {
		return nil, services.Wrap(services.ErrValidation, "runner", "", "output directory is required", nil)
	}

	r.step(ctx, req.JobID, "Step 1 of 4: Collecting information", logger)

	artifact, err := r.client.GetArtifact(ctx, req.ArtifactID)
	if err != nil {
		return nil, err
	}
	prepTemplate, err := r.client.GetPrepTemplate(ctx, artifact.PrepID())
	if err != nil {
		return nil, err
	}

	r.step(ctx, req.JobID, "Step 2 of 4: Matching read pairs and generating commands", logger)

	index, err := prep.LoadIndex(prepTemplate.QiimeMap)
	if err != nil {
		return nil, err
	}
	forward := artifact.ForwardFiles()
	reverse := artifact.ReverseFiles()
	samples, err := readpair.Match(forward, reverse, index)
	if err != nil {
		return nil, err
	}
	paired := len(reverse) > 0

	formatted, err := params.Format(req.Parameters, tool.schema, params.Databases{
		Dir:  r.cfg.Databases.Dir,
		Refs: r.cfg.Databases.Refs,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runner", "prepare output directory", req.OutDir, err)
	}

	// One job at a time per output directory, so partial outputs from
	// concurrent runs never interleave.
	lock := flock.New(filepath.Join(req.OutDir, ".seqflow.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runner", "lock output directory", req.OutDir, err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "runner", "lock output directory",
			"another job is writing to "+req.OutDir, nil)
	}
	defer func() { _ = lock.Unlock() }()

	tempDir, err := os.MkdirTemp(req.OutDir, tool.name+"_")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runner", "create temp directory", "", err)
	}
	defer os.RemoveAll(tempDir)

	conv := pipeline.Conventions{OutDir: req.OutDir, TempDir: tempDir}
	commands := tool.generate(r.cfg, samples, formatted, req.Parameters, conv)

	r.step(ctx, req.JobID, fmt.Sprintf("Step 3 of 4: Executing %s commands", tool.name), logger)

	err = r.exec.Run(ctx, commands, func(message string) {
		r.step(ctx, req.JobID, message, logger)
	})
	if err != nil {
		return nil, err
	}

	r.step(ctx, req.JobID, "Step 4 of 4: Collecting artifacts", logger)

	return artifacts.Collect(req.OutDir, samples, paired, tool.template)
}

func (r *Runner) step(ctx context.Context, jobID, message string, logger *slog.Logger) {
	logger.Info("job step", logging.String("message", message))
	if err := r.client.UpdateJobStep(ctx, jobID, message); err != nil {
		logger.Warn("report job step", logging.Error(err))
	}
}

func (r *Runner) recordStart(ctx context.Context, req Request, logger *slog.Logger) *jobs.Job {
	if r.store == nil {
		return nil
	}
	entry, err := r.store.NewJob(ctx, req.JobID, req.Tool)
	if err != nil {
		logger.Warn("record job start", logging.Error(err))
		return nil
	}
	return entry
}

func (r *Runner) recordOutcome(ctx context.Context, entry *jobs.Job, result Result, runErr error, logger *slog.Logger) {
	if r.store == nil || entry == nil {
		return
	}
	if result.OK {
		count := 0
		for _, desc := range result.Artifacts {
			count += len(desc.Files)
		}
		entry.SetCompleted(count)
	} else {
		entry.SetFailed(services.Kind(runErr), result.Message)
	}
	if err := r.store.Update(ctx, entry); err != nil {
		logger.Warn("record job outcome", logging.Error(err))
	}
}
