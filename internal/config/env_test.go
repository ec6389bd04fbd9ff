package config

import (
	"log/slog"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if env.Env != "local" {
		t.Errorf("expected default env local, got %s", env.Env)
	}
	if env.SlogLevel() != slog.LevelInfo {
		t.Errorf("expected default level info, got %s", env.SlogLevel())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GIGBENCH_LOG_LEVEL", "debug")
	t.Setenv("GIGBENCH_DATASET_BUCKET", "benchmark-datasets")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if env.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %s", env.SlogLevel())
	}
	if env.DatasetBucket != "benchmark-datasets" {
		t.Errorf("expected bucket override, got %s", env.DatasetBucket)
	}
}

func TestSlogLevelBadValue(t *testing.T) {
	env := &Env{LogLevel: "nonsense"}
	if env.SlogLevel() != slog.LevelInfo {
		t.Errorf("bad level should fall back to info, got %s", env.SlogLevel())
	}
}
