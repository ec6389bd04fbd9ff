package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

// Env is the process environment configuration. Flags override the
// per-invocation knobs; Env carries the ambient ones.
type Env struct {
	Env           string `envconfig:"ENV" default:"local"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	CriteriaPath  string `envconfig:"CRITERIA_PATH"`
	Transcript    bool   `envconfig:"TRANSCRIPT" default:"false"`
	DatasetBucket string `envconfig:"DATASET_BUCKET"`
	DatasetRegion string `envconfig:"DATASET_REGION" default:"us-east-1"`
}

const namespace = "GIGBENCH"

// LoadEnv reads the GIGBENCH_* environment variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

// SlogLevel parses the configured log level, defaulting to info.
func (e *Env) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
