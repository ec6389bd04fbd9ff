// Package agent provides the external-operation layer of the benchmark: it
// turns project descriptors into prompts and drives the Claude Agent SDK to
// evaluate or complete the work. The orchestration core only sees the
// runner.Operation contract.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	claudeagent "github.com/kazz187/claude-agent-sdk-go"

	"github.com/kazz187/gigbench/internal/criteria"
	"github.com/kazz187/gigbench/internal/project"
	"github.com/kazz187/gigbench/internal/runner"
)

// Role selects which prompt an operation builds.
type Role string

const (
	// RoleQualification judges whether a project is benchmark-worthy and
	// writes a judgment record.
	RoleQualification Role = "qualification"
	// RoleSubmission completes the project's milestones into a submission
	// directory.
	RoleSubmission Role = "submission"
)

// maxAgentTurns bounds the agent's tool-use loop per project.
const maxAgentTurns = 25

// ClaudeOperation implements runner.Operation on top of the Claude Agent
// SDK. The agent works inside the project directory; for qualification runs
// it leaves the judgment record there as a side effect.
type ClaudeOperation struct {
	role          Role
	catalog       *criteria.Config
	submissionDir string
	transcribe    bool
}

// NewQualificationOperation creates the judging operation. catalog supplies
// the criteria embedded in the prompt.
func NewQualificationOperation(catalog *criteria.Config, transcribe bool) *ClaudeOperation {
	return &ClaudeOperation{
		role:       RoleQualification,
		catalog:    catalog,
		transcribe: transcribe,
	}
}

// NewSubmissionOperation creates the work-completing operation. Deliverables
// land under submissionDir, grouped by run, category, and project ID.
func NewSubmissionOperation(submissionDir string, transcribe bool) *ClaudeOperation {
	return &ClaudeOperation{
		role:          RoleSubmission,
		submissionDir: submissionDir,
		transcribe:    transcribe,
	}
}

// Run drives one agent session for the project and returns the agent's
// final textual verdict.
func (o *ClaudeOperation) Run(ctx context.Context, run runner.RunContext, projectDir string) (string, error) {
	desc, err := project.LoadDescriptor(projectDir)
	if err != nil {
		return "", err
	}

	var prompt string
	switch o.role {
	case RoleQualification:
		prompt = qualificationPrompt(projectDir, desc, run.ID, o.catalog)
	case RoleSubmission:
		submissionDir := filepath.Join(o.submissionDir, run.ID, desc.Category, desc.ID)
		prompt = submissionPrompt(projectDir, desc, submissionDir)
	default:
		return "", fmt.Errorf("unsupported agent role: %s", o.role)
	}

	maxTurns := maxAgentTurns
	opts := &claudeagent.ClaudeAgentOptions{
		Cwd:            projectDir,
		PermissionMode: claudeagent.PermissionModeAcceptEdits,
		MaxTurns:       &maxTurns,
	}
	if run.StreamOutput || o.transcribe {
		var stream *transcript
		if o.transcribe {
			stream = newTranscript(projectDir)
		}
		opts.StderrCallback = func(line string) {
			if run.StreamOutput {
				fmt.Println(line)
			}
			if stream != nil {
				if err := stream.Append(line); err != nil {
					slog.Warn("failed to write transcript", "project", projectDir, "error", err)
				}
			}
		}
	}

	result, err := claudeagent.RunQuerySync(ctx, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("failed to run agent for %s: %w", projectDir, err)
	}
	if result.Result == nil {
		return "", fmt.Errorf("agent returned no result for %s", projectDir)
	}
	if result.Result.IsError {
		return "", fmt.Errorf("agent error for %s: %s", projectDir, result.Result.Result)
	}
	response := strings.TrimSpace(result.Result.Result)
	if o.transcribe {
		if err := newTranscript(projectDir).Append(response); err != nil {
			slog.Warn("failed to write transcript", "project", projectDir, "error", err)
		}
	}
	return response, nil
}
