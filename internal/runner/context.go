package runner

import (
	"time"
)

// RunIDFormat is the timestamp layout used as the run identifier. The run ID
// is embedded in every artifact file name, so it stays human-readable and
// lexically sortable.
const RunIDFormat = "20060102_150405"

// RunContext carries the immutable parameters of one benchmark run. It is
// created once at run start and shared read-only by all concurrent tasks.
type RunContext struct {
	// ID uniquely identifies this invocation; artifact file names embed it.
	ID string
	// StartedAt is when the run began, used for wall-clock totals.
	StartedAt time.Time
	// Parallelism is the batch width: how many projects run concurrently.
	Parallelism int
	// Timeout bounds a single operation attempt.
	Timeout time.Duration
	// MaxRetries is how many extra attempts a timed-out operation gets.
	MaxRetries int
	// Model is the resolved model identifier driving the agent, empty for
	// the provider default.
	Model string
	// StreamOutput enables console streaming of agent output. Only set when
	// Parallelism is 1 so output from concurrent items never interleaves.
	StreamOutput bool
}

// NewRunContext stamps a fresh run context. The run identifier is derived
// from the current time.
func NewRunContext(parallelism int, timeout time.Duration, maxRetries int, model string) RunContext {
	now := time.Now()
	return RunContext{
		ID:           now.Format(RunIDFormat),
		StartedAt:    now,
		Parallelism:  parallelism,
		Timeout:      timeout,
		MaxRetries:   maxRetries,
		Model:        model,
		StreamOutput: parallelism == 1,
	}
}
