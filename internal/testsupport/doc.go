// Package testsupport provides shared helpers for package tests: temp-backed
// configs and fixture file builders.
package testsupport
