// Package runner drives one job end to end: fetch artifact and prep metadata
// from the orchestrator, match read pairs, generate the tool pipeline,
// execute it sequentially with step reporting, harvest artifacts, and record
// the outcome in the local ledger.
//
// All fatal conditions collapse into the tri-state result the orchestrator
// expects: (success, artifacts, message). Nothing is retried; the scoped temp
// directory is removed on every exit path.
package runner
