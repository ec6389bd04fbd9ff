package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/sourcegraph/conc"

	"github.com/kazz187/gigbench/internal/artifact"
	"github.com/kazz187/gigbench/pkg/panicerr"
)

// Scheduler drives projects through the executor in consecutive batches of
// size Parallelism. All items of a batch run concurrently and the whole
// batch is awaited before the next one starts, so concurrency is bounded by
// batch width rather than a refilled worker pool. One item's failure never
// aborts its siblings or later batches.
type Scheduler struct {
	executor *Executor
}

// NewScheduler creates a scheduler bound to a run context.
func NewScheduler(run RunContext) *Scheduler {
	return &Scheduler{
		executor: NewExecutor(run),
	}
}

// Run processes all projects and returns one outcome per project, in the
// same order the projects were given.
func (s *Scheduler) Run(ctx context.Context, run RunContext, op Operation, projects []string) []TaskOutcome {
	outcomes := make([]TaskOutcome, 0, len(projects))
	width := run.Parallelism
	if width < 1 {
		width = 1
	}

	for start := 0; start < len(projects); start += width {
		end := start + width
		if end > len(projects) {
			end = len(projects)
		}
		batch := projects[start:end]
		batchOutcomes := make([]TaskOutcome, len(batch))

		var wg conc.WaitGroup
		for i, projectDir := range batch {
			i, projectDir := i, projectDir
			wg.Go(func() {
				batchOutcomes[i] = s.processProject(ctx, run, op, projectDir)
			})
		}
		wg.Wait()

		outcomes = append(outcomes, batchOutcomes...)
	}
	return outcomes
}

// processProject is the per-item failure boundary: any error or panic below
// it becomes a failed outcome instead of propagating.
func (s *Scheduler) processProject(ctx context.Context, run RunContext, op Operation, projectDir string) TaskOutcome {
	start := time.Now()
	outcome := TaskOutcome{
		ProjectPath: projectDir,
		Judgments:   map[string]string{},
	}
	slog.Info("processing project", "project", outcome.ProjectName())

	var output string
	err := panicerr.Catch(func() error {
		var execErr error
		output, execErr = s.executor.Execute(ctx, op, projectDir)
		return execErr
	})
	outcome.Duration = time.Since(start)

	if err != nil {
		outcome.FailureCause = err.Error()
		slog.Error("failed to process project",
			"project", outcome.ProjectName(),
			"status", color.RedString("FAILED"),
			"error", err,
		)
		return outcome
	}

	outcome.Success = output == SuccessSentinel
	outcome.Judgments = artifact.LoadJudgments(projectDir, run.ID)

	status := color.RedString("FAILED")
	if outcome.Success {
		status = color.GreenString("SUCCESS")
	}
	slog.Info("project processed",
		"project", outcome.ProjectName(),
		"status", status,
		"duration", outcome.Duration.Round(time.Millisecond),
	)
	return outcome
}
