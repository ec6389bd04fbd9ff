package runner

import (
	"path/filepath"
	"time"
)

// TaskOutcome records the result of processing one project. Every project
// handed to the scheduler yields exactly one outcome, success or failure.
type TaskOutcome struct {
	// ProjectPath is the work item's directory.
	ProjectPath string
	// Success reports whether the operation produced the success sentinel.
	Success bool
	// Duration is the elapsed wall-clock time for the item, retries
	// included.
	Duration time.Duration
	// Judgments holds the item's judgment record for this run; empty when
	// no record was written or it could not be read.
	Judgments map[string]string
	// FailureCause describes why the item failed, empty on success.
	FailureCause string
}

// ProjectName returns the project directory's base name for readability.
func (o TaskOutcome) ProjectName() string {
	return filepath.Base(o.ProjectPath)
}
