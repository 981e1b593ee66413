// Package scheduler provides a single-flight periodic loop for background
// jobs. A tick that arrives while the previous run is still executing is
// skipped, so slow runs degrade cadence instead of piling up concurrent
// executions of the same job.
package scheduler
