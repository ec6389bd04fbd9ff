// Package artifact persists and locates the files a run leaves behind:
// the per-run statistics document and the per-item judgment records.
package artifact

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Reserved file-name prefixes for run-generated artifacts. Files carrying
// these prefixes are excluded when a project tree is transferred for a
// clean re-run.
const (
	JudgmentFilePrefix = "llm_eval"
	StreamFilePrefix   = "agent_stream"
)

// Statistics document prefixes, one per run role.
const (
	QualificationStatsPrefix = "qualification_stats"
	SubmissionStatsPrefix    = "submission_stats"
)

// JudgmentFileName returns the judgment record file name for a run.
// There is at most one such file per (project, run) pair.
func JudgmentFileName(runID string) string {
	return fmt.Sprintf("%s_%s.json", JudgmentFilePrefix, runID)
}

// StreamFileName returns the transcript file name appended to per item.
func StreamFileName() string {
	return StreamFilePrefix + ".txt"
}

// Store reads and writes run artifacts under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at baseDir. Statistics documents go into
// its "summary" subdirectory.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// SaveStatistics writes the statistics document for a run to
// <base>/summary/<prefix>_<runID>.json, creating parent directories as
// needed. It returns the written path.
func (s *Store) SaveStatistics(prefix, runID string, stats any) (string, error) {
	summaryDir := filepath.Join(s.baseDir, "summary")
	if err := os.MkdirAll(summaryDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create summary directory %s: %w", summaryDir, err)
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode statistics: %w", err)
	}
	path := filepath.Join(summaryDir, fmt.Sprintf("%s_%s.json", prefix, runID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write statistics file %s: %w", path, err)
	}
	return path, nil
}

// LoadJudgments reads the judgment record a run left in a project directory.
// A missing file means no judgment is available and yields an empty map; a
// malformed file is logged and likewise yields an empty map. Neither is an
// error.
func LoadJudgments(projectDir, runID string) map[string]string {
	path := filepath.Join(projectDir, JudgmentFileName(runID))
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read judgment record", "path", path, "error", err)
		}
		return map[string]string{}
	}
	var judgments map[string]string
	if err := json.Unmarshal(data, &judgments); err != nil {
		slog.Warn("failed to parse judgment record", "path", path, "error", err)
		return map[string]string{}
	}
	if judgments == nil {
		judgments = map[string]string{}
	}
	slog.Debug("loaded judgment record", "path", path, "keys", len(judgments))
	return judgments
}
