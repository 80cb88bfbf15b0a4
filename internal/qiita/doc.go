// Package qiita implements the HTTP JSON client for the orchestrating Qiita
// server: artifact and prep-template lookups, per-step progress updates, and
// final job completion with harvested artifacts.
//
// The HTTP backend sits behind the HTTPDoer interface so tests can substitute
// a fake without a listening server.
package qiita
