package jobs

import "time"

// Status represents the lifecycle of a recorded job.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job is one row of the ledger.
type Job struct {
	ID            int64
	JobID         string
	Tool          string
	Status        Status
	Message       string
	ErrorKind     string
	ArtifactCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SetCompleted marks the job successful with the number of harvested files.
func (j *Job) SetCompleted(artifactCount int) {
	j.Status = StatusCompleted
	j.Message = ""
	j.ErrorKind = ""
	j.ArtifactCount = artifactCount
}

// SetFailed marks the job failed with a classification and message.
func (j *Job) SetFailed(kind, message string) {
	j.Status = StatusFailed
	j.ErrorKind = kind
	j.Message = message
	j.ArtifactCount = 0
}
