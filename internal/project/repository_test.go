package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFindsDescriptorDirs(t *testing.T) {
	dataDir := t.TempDir()
	projects := filepath.Join(dataDir, "projects")

	writeDescriptor(t, filepath.Join(projects, "design", "logo"), "{}")
	writeDescriptor(t, filepath.Join(projects, "writing", "deep", "nested", "blog"), "{}")
	// Directories without a descriptor are skipped silently.
	if err := os.MkdirAll(filepath.Join(projects, "empty", "nothing"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	found, err := NewRepository(dataDir, 0).Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 projects, got %d: %v", len(found), found)
	}
	seen := map[string]bool{}
	for _, p := range found {
		if seen[p] {
			t.Errorf("project returned twice: %s", p)
		}
		seen[p] = true
	}
	if !seen[filepath.Join(projects, "design", "logo")] {
		t.Error("expected design/logo to be discovered")
	}
	if !seen[filepath.Join(projects, "writing", "deep", "nested", "blog")] {
		t.Error("expected nested blog project to be discovered")
	}
}

func TestDiscoverNestedDescriptors(t *testing.T) {
	dataDir := t.TempDir()
	projects := filepath.Join(dataDir, "projects")

	// A descriptor-bearing directory inside another one: both are items.
	writeDescriptor(t, filepath.Join(projects, "outer"), "{}")
	writeDescriptor(t, filepath.Join(projects, "outer", "inner"), "{}")

	found, err := NewRepository(dataDir, 0).Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("expected 2 projects, got %d: %v", len(found), found)
	}
}

func TestDiscoverLimit(t *testing.T) {
	dataDir := t.TempDir()
	projects := filepath.Join(dataDir, "projects")
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		writeDescriptor(t, filepath.Join(projects, name), "{}")
	}

	found, err := NewRepository(dataDir, 3).Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(found) != 3 {
		t.Errorf("expected limit of 3 projects, got %d", len(found))
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := NewRepository(filepath.Join(t.TempDir(), "nope"), 0).Discover(); err == nil {
		t.Error("expected error for missing projects directory")
	}
}
