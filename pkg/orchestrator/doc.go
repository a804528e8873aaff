// Package orchestrator wires the loader → parser → decorators → sorter →
// renderer → post-processor → writer pipeline behind a single entry point
// while keeping every stage injectable.
package orchestrator
