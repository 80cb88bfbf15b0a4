// Package executor runs generated commands strictly in order, reporting
// per-command progress and stopping at the first failure.
//
// Process launching sits behind the ProcessRunner interface so tests can
// substitute a fake; the default runner uses os/exec with captured output.
// Completed side effects are never rolled back.
package executor
