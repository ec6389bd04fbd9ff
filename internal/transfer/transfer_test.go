package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/gigbench/internal/artifact"
)

const testRunID = "20250101_120000"

// buildTree creates a data directory with three projects: alpha passes
// criterion_1, beta fails it, gamma has no judgment record at all.
func buildTree(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()

	alpha := filepath.Join(dataDir, "projects", "design", "alpha")
	writeFile(t, filepath.Join(alpha, "project.json"), `{"project_id":"alpha"}`)
	writeFile(t, filepath.Join(alpha, "inputs", "brief.txt"), "the brief")
	writeFile(t, filepath.Join(alpha, "outputs", "result.txt"), "generated deliverable")
	writeFile(t, filepath.Join(alpha, artifact.JudgmentFileName(testRunID)),
		`{"criterion_1_judgment":"YES","criterion_1_reasoning":"ok"}`)
	writeFile(t, filepath.Join(alpha, artifact.StreamFileName()), "agent chatter")

	beta := filepath.Join(dataDir, "projects", "design", "beta")
	writeFile(t, filepath.Join(beta, "project.json"), `{"project_id":"beta"}`)
	writeFile(t, filepath.Join(beta, artifact.JudgmentFileName(testRunID)), `{"criterion_1_judgment":"NO"}`)

	gamma := filepath.Join(dataDir, "projects", "writing", "gamma")
	writeFile(t, filepath.Join(gamma, "project.json"), `{"project_id":"gamma"}`)

	return dataDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestQualifies(t *testing.T) {
	judgments := map[string]string{"criterion_1_judgment": "YES", "criterion_2_judgment": "NO"}

	assert.True(t, Qualifies(judgments, []string{"criterion_1"}))
	assert.False(t, Qualifies(judgments, []string{"criterion_2"}))
	assert.False(t, Qualifies(judgments, []string{"criterion_1", "criterion_2"}))
	assert.False(t, Qualifies(judgments, []string{"criterion_3"}))
	// Empty criteria qualify everything, even with no judgments at all.
	assert.True(t, Qualifies(judgments, nil))
	assert.True(t, Qualifies(map[string]string{}, nil))
}

func TestRunCopiesQualifiedProjects(t *testing.T) {
	dataDir := buildTree(t)
	destDir := t.TempDir()

	count, err := Run(Options{
		DataDir:  dataDir,
		DestDir:  destDir,
		RunID:    testRunID,
		Criteria: []string{"criterion_1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	alphaDest := filepath.Join(destDir, "projects", "design", "alpha")
	assert.FileExists(t, filepath.Join(alphaDest, "project.json"))
	assert.FileExists(t, filepath.Join(alphaDest, "inputs", "brief.txt"))

	// Run-generated artifacts and the deliverables subtree stay behind.
	assert.NoDirExists(t, filepath.Join(alphaDest, "outputs"))
	assert.NoFileExists(t, filepath.Join(alphaDest, artifact.JudgmentFileName(testRunID)))
	assert.NoFileExists(t, filepath.Join(alphaDest, artifact.StreamFileName()))

	// Disqualified and unjudged projects are not copied.
	assert.NoDirExists(t, filepath.Join(destDir, "projects", "design", "beta"))
	assert.NoDirExists(t, filepath.Join(destDir, "projects", "writing", "gamma"))
}

func TestRunEmptyCriteriaQualifiesEverything(t *testing.T) {
	dataDir := buildTree(t)
	destDir := t.TempDir()

	count, err := Run(Options{
		DataDir: dataDir,
		DestDir: destDir,
		RunID:   testRunID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// gamma has no judgment record but qualifies anyway.
	assert.FileExists(t, filepath.Join(destDir, "projects", "writing", "gamma", "project.json"))
}

func TestRunIsIdempotent(t *testing.T) {
	dataDir := buildTree(t)
	destDir := t.TempDir()
	opts := Options{
		DataDir:  dataDir,
		DestDir:  destDir,
		RunID:    testRunID,
		Criteria: []string{"criterion_1"},
	}

	count, err := Run(opts)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	data, err := os.ReadFile(filepath.Join(destDir, "projects", "design", "alpha", "inputs", "brief.txt"))
	require.NoError(t, err)
	assert.Equal(t, "the brief", string(data))
}

func TestRunPreservesFileMode(t *testing.T) {
	dataDir := t.TempDir()
	destDir := t.TempDir()

	proj := filepath.Join(dataDir, "projects", "tool")
	writeFile(t, filepath.Join(proj, "project.json"), `{"project_id":"tool"}`)
	script := filepath.Join(proj, "run.sh")
	writeFile(t, script, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(script, 0o755))

	_, err := Run(Options{DataDir: dataDir, DestDir: destDir, RunID: testRunID})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(destDir, "projects", "tool", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
