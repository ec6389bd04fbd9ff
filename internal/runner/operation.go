package runner

import (
	"context"
)

// SuccessSentinel is the literal final response an operation produces when
// it completed the request. Any other response is a failure.
const SuccessSentinel = "SUCCESS"

// Operation is one unit of external agent work: given a project directory it
// eventually yields the agent's final textual verdict. It may write a
// judgment record and a transcript into the project directory as side
// effects, it may hang indefinitely, and it may fail. Implementations must
// honor ctx cancellation on a best-effort basis; the executor guards
// against those that do not.
type Operation interface {
	Run(ctx context.Context, run RunContext, projectDir string) (string, error)
}

// OperationFunc adapts a function to the Operation interface.
type OperationFunc func(ctx context.Context, run RunContext, projectDir string) (string, error)

func (f OperationFunc) Run(ctx context.Context, run RunContext, projectDir string) (string, error) {
	return f(ctx, run, projectDir)
}
