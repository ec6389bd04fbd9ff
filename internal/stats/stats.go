// Package stats reduces per-item outcomes into run-level statistics.
package stats

import (
	"errors"
	"strings"
	"time"

	"github.com/kazz187/gigbench/internal/runner"
)

// ErrNoResults is returned when there are no outcomes to aggregate.
var ErrNoResults = errors.New("no results to analyze")

// JudgmentKeyMarker tags the judgment entries of a criteria record; keys
// without it (reasoning text and the like) are ignored by aggregation.
const JudgmentKeyMarker = "_judgment"

// PositiveVerdict is the passing value of a judgment entry.
const PositiveVerdict = "YES"

// ItemResult is the serialized per-project entry of a statistics document.
type ItemResult struct {
	Project           string            `json:"project"`
	Success           bool              `json:"success"`
	ProcessingTime    float64           `json:"processing_time"`
	FailureCause      string            `json:"failure_cause,omitempty"`
	CriteriaJudgments map[string]string `json:"criteria_judgments,omitempty"`
}

// RunStatistics aggregates all outcomes of one run.
type RunStatistics struct {
	RunID               string             `json:"run_id"`
	TotalProjects       int                `json:"total_projects"`
	Parallelism         int                `json:"parallelism"`
	TotalProcessingTime float64            `json:"total_processing_time"`
	SuccessfulTasks     int                `json:"successful_tasks"`
	FailedTasks         int                `json:"failed_tasks"`
	SuccessRate         float64            `json:"success_rate"`
	AvgProcessingTime   float64            `json:"average_processing_time"`
	Results             []ItemResult       `json:"results"`
	CriteriaPassRates   map[string]float64 `json:"criteria_pass_rates,omitempty"`
}

// Aggregate reduces the ordered outcome list of a completed run. It returns
// ErrNoResults for an empty list instead of producing degenerate rates.
func Aggregate(run runner.RunContext, outcomes []runner.TaskOutcome) (*RunStatistics, error) {
	if len(outcomes) == 0 {
		return nil, ErrNoResults
	}

	successes := 0
	var totalItemTime time.Duration
	results := make([]ItemResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Success {
			successes++
		}
		totalItemTime += o.Duration
		item := ItemResult{
			Project:        o.ProjectName(),
			Success:        o.Success,
			ProcessingTime: o.Duration.Seconds(),
			FailureCause:   o.FailureCause,
		}
		if len(o.Judgments) > 0 {
			item.CriteriaJudgments = o.Judgments
		}
		results = append(results, item)
	}

	return &RunStatistics{
		RunID:               run.ID,
		TotalProjects:       len(outcomes),
		Parallelism:         run.Parallelism,
		TotalProcessingTime: time.Since(run.StartedAt).Seconds(),
		SuccessfulTasks:     successes,
		FailedTasks:         len(outcomes) - successes,
		SuccessRate:         float64(successes) / float64(len(outcomes)),
		AvgProcessingTime:   totalItemTime.Seconds() / float64(len(outcomes)),
		Results:             results,
		CriteriaPassRates:   criteriaPassRates(outcomes),
	}, nil
}

// criteriaPassRates scans every outcome's judgment record for keys carrying
// the judgment marker and computes pass rate = positive / occurrences per
// key. Criteria no outcome reported contribute no entry. Returns nil when
// nothing was reported at all.
func criteriaPassRates(outcomes []runner.TaskOutcome) map[string]float64 {
	counts := map[string]int{}
	passes := map[string]int{}
	for _, o := range outcomes {
		for criterion, judgment := range o.Judgments {
			if !strings.Contains(criterion, JudgmentKeyMarker) {
				continue
			}
			counts[criterion]++
			if judgment == PositiveVerdict {
				passes[criterion]++
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}
	rates := make(map[string]float64, len(counts))
	for criterion, count := range counts {
		rates[criterion] = float64(passes[criterion]) / float64(count)
	}
	return rates
}
