package project

import (
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
)

// Repository discovers work items under a data directory. Items live in the
// "projects" subtree; any directory holding a descriptor file is an item,
// directories without one are skipped. The returned order is shuffled so a
// truncating limit does not bias the sample toward any part of the tree.
type Repository struct {
	dataDir string
	limit   int
}

// NewRepository creates a repository rooted at dataDir. A limit of 0 means
// no truncation.
func NewRepository(dataDir string, limit int) *Repository {
	return &Repository{
		dataDir: dataDir,
		limit:   limit,
	}
}

// Discover walks the projects subtree and returns the shuffled, optionally
// truncated list of project directories.
func (r *Repository) Discover() ([]string, error) {
	projectsDir := filepath.Join(r.dataDir, "projects")
	if _, err := os.Stat(projectsDir); err != nil {
		return nil, fmt.Errorf("failed to open projects directory %s: %w", projectsDir, err)
	}

	var projects []string
	err := filepath.WalkDir(projectsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, statErr := os.Stat(filepath.Join(path, DescriptorFile)); statErr == nil {
			projects = append(projects, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk projects directory %s: %w", projectsDir, err)
	}

	rand.Shuffle(len(projects), func(i, j int) {
		projects[i], projects[j] = projects[j], projects[i]
	})

	if r.limit > 0 && len(projects) > r.limit {
		slog.Info("limiting discovered projects", "found", len(projects), "limit", r.limit)
		projects = projects[:r.limit]
	}
	return projects, nil
}
