package criteria

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "criteria.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Criteria) != 2 {
		t.Fatalf("expected 2 default criteria, got %d", len(cfg.Criteria))
	}
	names := cfg.Names()
	if names[0] != "criterion_1" || names[1] != "criterion_2" {
		t.Errorf("unexpected default names: %v", names)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	content := `criteria:
  - name: has_budget
    description: The project states a concrete budget.
  - name: deliverable_format
    description: The requested deliverable format is unambiguous.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Criteria) != 2 {
		t.Fatalf("expected 2 criteria, got %d", len(cfg.Criteria))
	}
	if cfg.Criteria[0].Name != "has_budget" {
		t.Errorf("unexpected first criterion: %+v", cfg.Criteria[0])
	}
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	if err := os.WriteFile(path, []byte("criteria: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty criteria list")
	}
}

func TestLoadRejectsUnnamedCriterion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	if err := os.WriteFile(path, []byte("criteria:\n  - description: nameless\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unnamed criterion")
	}
}
