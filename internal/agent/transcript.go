package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kazz187/gigbench/internal/artifact"
)

// transcript appends agent output to the project's stream file. The file is
// only ever written by the one task that owns the project, but SDK
// callbacks may fire concurrently, so appends are serialized.
type transcript struct {
	mu   sync.Mutex
	path string
}

func newTranscript(projectDir string) *transcript {
	return &transcript{
		path: filepath.Join(projectDir, artifact.StreamFileName()),
	}
}

func (t *transcript) Append(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open transcript %s: %w", t.path, err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("failed to append to transcript %s: %w", t.path, err)
	}
	return nil
}
