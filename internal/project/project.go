package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DescriptorFile is the file that marks a directory as a work item.
const DescriptorFile = "project.json"

// Well-known subdirectories inside a project.
const (
	AttachmentsDir  = "inputs"
	DeliverablesDir = "outputs"
)

// Milestone is one agreed unit of deliverable work within a project.
type Milestone struct {
	Sequence    int    `json:"milestone_sequence"`
	Description string `json:"milestone_description"`
}

// Descriptor is the parsed content of a project.json file.
type Descriptor struct {
	ID          string      `json:"project_id"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	Occupation  string      `json:"occupation"`
	Title       string      `json:"job_title"`
	Description string      `json:"job_description"`
	Milestones  []Milestone `json:"milestone_data"`
}

// LoadDescriptor reads and parses the descriptor file of a project directory.
func LoadDescriptor(projectDir string) (*Descriptor, error) {
	path := filepath.Join(projectDir, DescriptorFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor %s: %w", path, err)
	}
	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}
	return &desc, nil
}
