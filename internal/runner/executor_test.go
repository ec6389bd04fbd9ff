package runner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// timesOutNTimes hangs past the attempt deadline for its first n calls and
// then succeeds immediately.
func timesOutNTimes(n int, attempts *atomic.Int32) Operation {
	return OperationFunc(func(ctx context.Context, run RunContext, projectDir string) (string, error) {
		call := attempts.Add(1)
		if int(call) <= n {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return SuccessSentinel, nil
	})
}

func testRun(maxRetries int) RunContext {
	return RunContext{
		ID:          "test_run",
		StartedAt:   time.Now(),
		Parallelism: 1,
		Timeout:     20 * time.Millisecond,
		MaxRetries:  maxRetries,
	}
}

func TestExecuteRetriesTimeouts(t *testing.T) {
	var attempts atomic.Int32
	op := timesOutNTimes(2, &attempts)

	output, err := NewExecutor(testRun(2)).Execute(context.Background(), op, "proj")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if output != SuccessSentinel {
		t.Errorf("expected %q, got %q", SuccessSentinel, output)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestExecuteExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32
	op := timesOutNTimes(2, &attempts)

	_, err := NewExecutor(testRun(1)).Execute(context.Background(), op, "proj")
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("expected ErrTimedOut, got %v", err)
	}
	if got := attempts.Load(); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestExecuteDoesNotRetryOperationErrors(t *testing.T) {
	var attempts atomic.Int32
	opErr := errors.New("rate limited")
	op := OperationFunc(func(ctx context.Context, run RunContext, projectDir string) (string, error) {
		attempts.Add(1)
		return "", opErr
	})

	_, err := NewExecutor(testRun(3)).Execute(context.Background(), op, "proj")
	if !errors.Is(err, opErr) {
		t.Fatalf("expected operation error to propagate, got %v", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("expected a single attempt, got %d", got)
	}
}

func TestExecuteAbandonsHangingOperation(t *testing.T) {
	// An operation that ignores cancellation entirely must still time out.
	block := make(chan struct{})
	defer close(block)
	op := OperationFunc(func(ctx context.Context, run RunContext, projectDir string) (string, error) {
		<-block
		return SuccessSentinel, nil
	})

	start := time.Now()
	_, err := NewExecutor(testRun(0)).Execute(context.Background(), op, "proj")
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("expected ErrTimedOut, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("executor blocked on a hanging operation for %s", elapsed)
	}
}

func TestExecuteParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	op := OperationFunc(func(ctx context.Context, run RunContext, projectDir string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	_, err := NewExecutor(testRun(5)).Execute(ctx, op, "proj")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
