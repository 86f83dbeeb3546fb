// Package pipeline discovers image files, converts each one on a fixed worker
// pool, and folds the per-file outcomes into a batch summary.
//
// Split into:
//   - discover.go: recursive walk producing immutable SourceFile snapshots
//   - outcome.go:  per-file result values and stage errors
//   - claims.go:   output-path ownership, resolved before any work starts
//   - convert.go:  the per-file state machine (direct or two-stage)
//   - pool.go:     worker pool with a single result collector
//   - stats.go:    RunStats and the Aggregate reduction
//   - runner.go:   Run, wiring everything together and logging the summary
//
// Workers never share counters: every file yields exactly one Outcome, and
// RunStats is computed from the complete slice afterwards.
package pipeline
