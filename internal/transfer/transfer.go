// Package transfer implements the selective copy pass: it reads the
// judgment records of a prior qualification run and copies qualifying
// projects into a fresh tree, leaving run-generated artifacts behind.
package transfer

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kazz187/gigbench/internal/artifact"
	"github.com/kazz187/gigbench/internal/project"
	"github.com/kazz187/gigbench/internal/stats"
)

// Options parameterizes one transfer pass.
type Options struct {
	// DataDir is the source tree holding the projects.
	DataDir string
	// DestDir receives qualifying projects at the same relative paths.
	DestDir string
	// RunID names the prior qualification run whose judgments are read.
	RunID string
	// Criteria lists the required criterion names. Empty means every
	// project qualifies.
	Criteria []string
}

// Run walks the source tree and copies every qualifying project. It returns
// the number of projects transferred.
func Run(opts Options) (int, error) {
	if err := os.MkdirAll(opts.DestDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create destination directory %s: %w", opts.DestDir, err)
	}

	transferred := 0
	err := filepath.WalkDir(opts.DataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, statErr := os.Stat(filepath.Join(path, project.DescriptorFile)); statErr != nil {
			return nil
		}

		judgments := artifact.LoadJudgments(path, opts.RunID)
		if !Qualifies(judgments, opts.Criteria) {
			return nil
		}

		relPath, relErr := filepath.Rel(opts.DataDir, path)
		if relErr != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, relErr)
		}
		slog.Info("project qualified, copying", "project", relPath)
		if copyErr := copyProject(path, filepath.Join(opts.DestDir, relPath)); copyErr != nil {
			return copyErr
		}
		transferred++
		return nil
	})
	if err != nil {
		return transferred, fmt.Errorf("failed to process data directory %s: %w", opts.DataDir, err)
	}
	return transferred, nil
}

// Qualifies reports whether a judgment record satisfies every required
// criterion: the criterion's judgment key must be present with the positive
// verdict. An empty criteria list qualifies everything.
func Qualifies(judgments map[string]string, criteria []string) bool {
	for _, criterion := range criteria {
		key := criterion + stats.JudgmentKeyMarker
		if judgments[key] != stats.PositiveVerdict {
			return false
		}
	}
	return true
}

// copyProject recursively copies a project tree, excluding the deliverables
// subtree and files named with a reserved artifact prefix. Re-running over
// an existing destination overwrites files in place, so the copy is
// idempotent.
func copyProject(srcDir, destDir string) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(srcDir, path)
		if relErr != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, relErr)
		}
		target := filepath.Join(destDir, rel)

		if d.IsDir() {
			if d.Name() == project.DeliverablesDir && rel != "." {
				return filepath.SkipDir
			}
			if mkErr := os.MkdirAll(target, 0o755); mkErr != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, mkErr)
			}
			return nil
		}

		if isGeneratedArtifact(d.Name()) {
			return nil
		}
		return copyFile(path, target)
	})
}

func isGeneratedArtifact(name string) bool {
	return strings.HasPrefix(name, artifact.JudgmentFilePrefix) ||
		strings.HasPrefix(name, artifact.StreamFilePrefix)
}

// copyFile copies one regular file, carrying over its mode and timestamps
// where the platform supports it.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}
	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		slog.Debug("failed to preserve timestamps", "path", dest, "error", err)
	}
	return nil
}
