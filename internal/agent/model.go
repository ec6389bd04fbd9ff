package agent

import (
	"fmt"
	"os"
	"strings"
)

// modelCatalog maps the CLI's short model selectors to full model
// identifiers understood by the agent runtime.
var modelCatalog = map[string]string{
	"haiku":    "claude-3-5-haiku-latest",
	"sonnet":   "claude-sonnet-4-5",
	"opus":     "claude-opus-4-5",
	"sonnet-4": "claude-sonnet-4-0",
}

// ResolveModel maps a named model selector to its full identifier. An empty
// name selects the runtime default; an unknown name is an error. Full
// identifiers pass through untouched so new models need no catalog entry.
func ResolveModel(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if id, ok := modelCatalog[name]; ok {
		return id, nil
	}
	if strings.HasPrefix(name, "claude-") {
		return name, nil
	}
	return "", fmt.Errorf("unsupported model: %s", name)
}

// ExportModel makes the resolved model the agent runtime's default for this
// process. A run uses exactly one model, so process-wide scope is safe.
func ExportModel(model string) error {
	if model == "" {
		return nil
	}
	if err := os.Setenv("ANTHROPIC_MODEL", model); err != nil {
		return fmt.Errorf("failed to export model selection: %w", err)
	}
	return nil
}
