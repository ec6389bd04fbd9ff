// Package bench wires the run together: discover projects, drive them
// through the batch scheduler, aggregate the outcomes, and persist the
// statistics document.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kazz187/gigbench/internal/agent"
	"github.com/kazz187/gigbench/internal/artifact"
	"github.com/kazz187/gigbench/internal/criteria"
	"github.com/kazz187/gigbench/internal/project"
	"github.com/kazz187/gigbench/internal/runner"
	"github.com/kazz187/gigbench/internal/stats"
)

// Config parameterizes one benchmark run.
type Config struct {
	// Role selects qualification or submission behavior.
	Role agent.Role
	// DataDir holds the projects subtree and receives qualification
	// artifacts.
	DataDir string
	// SubmissionDir receives deliverables and submission statistics.
	// Required for submission runs, unused otherwise.
	SubmissionDir string
	// Limit caps the number of projects processed; 0 means all.
	Limit int
	// Parallelism is the batch width.
	Parallelism int
	// Timeout bounds one operation attempt.
	Timeout time.Duration
	// MaxRetries is the extra attempts a timed-out operation gets.
	MaxRetries int
	// Model is the named model selector, empty for the default.
	Model string
	// CriteriaPath points at the criteria catalog; empty uses the default
	// path and built-in fallback.
	CriteriaPath string
	// Transcript enables per-item agent transcripts.
	Transcript bool
}

// Run executes one full benchmark run and returns its statistics. Errors
// here are the run-aborting kind: discovery, setup, aggregation, or
// persistence. Per-item failures are captured in the statistics instead.
func Run(ctx context.Context, cfg Config) (*stats.RunStatistics, error) {
	model, err := agent.ResolveModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	if err := agent.ExportModel(model); err != nil {
		return nil, err
	}

	op, statsBase, statsPrefix, err := buildOperation(cfg)
	if err != nil {
		return nil, err
	}

	run := runner.NewRunContext(cfg.Parallelism, cfg.Timeout, cfg.MaxRetries, model)

	repo := project.NewRepository(cfg.DataDir, cfg.Limit)
	projects, err := repo.Discover()
	if err != nil {
		return nil, err
	}
	slog.Info("starting run",
		"run_id", run.ID,
		"role", cfg.Role,
		"projects", len(projects),
		"parallelism", run.Parallelism,
		"timeout", run.Timeout,
	)

	outcomes := runner.NewScheduler(run).Run(ctx, run, op, projects)

	statistics, err := stats.Aggregate(run, outcomes)
	if err != nil {
		return nil, err
	}

	store := artifact.NewStore(statsBase)
	statsPath, err := store.SaveStatistics(statsPrefix, run.ID, statistics)
	if err != nil {
		return nil, err
	}
	slog.Info("statistics saved", "path", statsPath)

	logSummary(run, statistics)
	return statistics, nil
}

// buildOperation selects the concrete agent operation for the configured
// role, plus where that role's statistics document belongs.
func buildOperation(cfg Config) (runner.Operation, string, string, error) {
	switch cfg.Role {
	case agent.RoleQualification:
		catalog, err := criteria.Load(cfg.CriteriaPath)
		if err != nil {
			return nil, "", "", err
		}
		op := agent.NewQualificationOperation(catalog, cfg.Transcript)
		return op, cfg.DataDir, artifact.QualificationStatsPrefix, nil
	case agent.RoleSubmission:
		if cfg.SubmissionDir == "" {
			return nil, "", "", fmt.Errorf("submission runs require a submission directory")
		}
		op := agent.NewSubmissionOperation(cfg.SubmissionDir, cfg.Transcript)
		return op, cfg.SubmissionDir, artifact.SubmissionStatsPrefix, nil
	default:
		return nil, "", "", fmt.Errorf("unsupported run role: %s", cfg.Role)
	}
}

func logSummary(run runner.RunContext, s *stats.RunStatistics) {
	slog.Info("run complete",
		"run_id", run.ID,
		"projects", s.TotalProjects,
		"successful", s.SuccessfulTasks,
		"failed", s.FailedTasks,
		"success_rate", fmt.Sprintf("%.2f%%", s.SuccessRate*100),
		"total_time", fmt.Sprintf("%.2fs", s.TotalProcessingTime),
		"avg_time", fmt.Sprintf("%.2fs", s.AvgProcessingTime),
	)
	for criterion, rate := range s.CriteriaPassRates {
		slog.Info("criterion pass rate", "criterion", criterion, "rate", fmt.Sprintf("%.2f%%", rate*100))
	}
}
