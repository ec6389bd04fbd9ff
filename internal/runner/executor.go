package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrTimedOut marks an operation that exhausted its timeout retry budget.
var ErrTimedOut = errors.New("operation timed out")

// Executor runs a single operation under a per-attempt timeout with bounded
// retry. Only timeouts are retried; any other failure propagates
// immediately. There is no backoff between attempts.
type Executor struct {
	run RunContext
}

// NewExecutor creates an executor bound to a run context.
func NewExecutor(run RunContext) *Executor {
	return &Executor{run: run}
}

// Execute drives op to completion. A timed-out attempt is cancelled and
// retried up to MaxRetries additional times; exhaustion yields an error
// wrapping ErrTimedOut. A non-timeout error from op is returned as-is
// without further attempts.
func (e *Executor) Execute(ctx context.Context, op Operation, projectDir string) (string, error) {
	for attempt := 0; attempt <= e.run.MaxRetries; attempt++ {
		output, err := e.runAttempt(ctx, op, projectDir)
		if err == nil {
			return output, nil
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		if attempt < e.run.MaxRetries {
			slog.Warn("operation timed out, retrying",
				"project", projectDir,
				"timeout", e.run.Timeout,
				"retry", attempt+1,
				"max_retries", e.run.MaxRetries,
			)
		}
	}
	slog.Error("operation failed after exhausting retries",
		"project", projectDir,
		"max_retries", e.run.MaxRetries,
	)
	return "", fmt.Errorf("%w after %d attempts", ErrTimedOut, e.run.MaxRetries+1)
}

type attemptResult struct {
	output string
	err    error
}

// runAttempt races one invocation of op against the attempt deadline. The
// operation receives a context that is cancelled when the deadline fires;
// if it ignores cancellation and keeps running, the attempt is abandoned
// rather than awaited.
func (e *Executor) runAttempt(ctx context.Context, op Operation, projectDir string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.run.Timeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		output, err := op.Run(attemptCtx, e.run, projectDir)
		done <- attemptResult{output: output, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && attemptCtx.Err() != nil && ctx.Err() == nil {
			// The operation surfaced our own deadline; normalize it so the
			// retry loop sees a timeout.
			return "", context.DeadlineExceeded
		}
		return res.output, res.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", context.DeadlineExceeded
	}
}
