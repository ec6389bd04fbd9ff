package agent

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kazz187/gigbench/internal/artifact"
	"github.com/kazz187/gigbench/internal/criteria"
	"github.com/kazz187/gigbench/internal/project"
)

// qualificationPrompt builds the evaluator prompt for one project. The
// agent is asked to judge every criterion independently and to drop a
// judgment record named for this run into the project directory.
func qualificationPrompt(projectDir string, desc *project.Descriptor, runID string, catalog *criteria.Config) string {
	var sb strings.Builder
	sb.WriteString("You are an expert project evaluator. Analyze the project information, attachments, and ")
	sb.WriteString("deliverables and evaluate each criterion independently of the others. Determine if the project ")
	sb.WriteString("meets the following criteria:\n\n")
	for i, c := range catalog.Criteria {
		fmt.Fprintf(&sb, "%d. %s\n\n", i+1, c.Description)
	}

	fmt.Fprintf(&sb, "Create a json report called %s and put it in the project directory with the following structure:\n\n",
		artifact.JudgmentFileName(runID))
	for _, c := range catalog.Criteria {
		fmt.Fprintf(&sb, "%s_judgment: [YES/NO]\n%s_reasoning: [Your detailed explanation]\n\n", c.Name, c.Name)
	}

	sb.WriteString("Finally respond with SUCCESS if you were able to complete the request successfully and FAILED ")
	sb.WriteString("if you were unable to complete for any reason.\n\n")

	writeProjectSummary(&sb, projectDir, desc)
	fmt.Fprintf(&sb, "## Deliverables Directory\n%s\n", filepath.Join(projectDir, project.DeliverablesDir))
	return sb.String()
}

// submissionPrompt builds the freelancer prompt for one project. The agent
// is asked to produce the milestone deliverables under the submission
// directory.
func submissionPrompt(projectDir string, desc *project.Descriptor, submissionDir string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert freelancer agent that uses the information included from the client to deliver ")
	sb.WriteString("work described in the Project Title, Project Description, and Milestones. Put the completed work ")
	sb.WriteString("as requested by the client in the appropriate sub-directory for each milestone in the submission ")
	sb.WriteString("directory. DO NOT attempt to complete the work if you do not have the correct tools or ")
	sb.WriteString("capabilities to complete the work as requested by the client. DO NOT simply create a report ")
	sb.WriteString("describing the work that should be completed, you are being hired to actually complete the work.\n\n")

	sb.WriteString("Finally respond with SUCCESS if you were able to complete the request successfully and FAILED ")
	sb.WriteString("if you were unable to complete for any reason.\n\n")

	writeProjectSummary(&sb, projectDir, desc)

	sb.WriteString("## Milestones\n")
	for _, m := range desc.Milestones {
		fmt.Fprintf(&sb, "Milestone %d\n%s\n\n", m.Sequence, m.Description)
	}
	fmt.Fprintf(&sb, "## Submission Directory\n%s\n", submissionDir)
	return sb.String()
}

func writeProjectSummary(sb *strings.Builder, projectDir string, desc *project.Descriptor) {
	fmt.Fprintf(sb, "## Project Category\nCategory: %s\nSub Category: %s\nOccupation: %s\n\n",
		desc.Category, desc.Subcategory, desc.Occupation)
	fmt.Fprintf(sb, "## Project Title\n%s\n\n", desc.Title)
	fmt.Fprintf(sb, "## Project Description\n%s\n\n", desc.Description)
	fmt.Fprintf(sb, "## Project Path\n%s\n\n", projectDir)
	fmt.Fprintf(sb, "## Attachments Directory\n%s\n\n", filepath.Join(projectDir, project.AttachmentsDir))
}
