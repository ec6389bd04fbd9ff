// Package criteria holds the qualification criteria catalog. Criteria feed
// the qualification prompt and supply the default requirement list for the
// transfer pass.
package criteria

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Criterion is one named qualification requirement.
type Criterion struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Config is the criteria catalog.
type Config struct {
	Criteria []Criterion `yaml:"criteria"`
}

// DefaultConfigPath is where Load looks when no path is given.
const DefaultConfigPath = "criteria.yaml"

// Defaults returns the built-in catalog used when no config file exists.
func Defaults() *Config {
	return &Config{
		Criteria: []Criterion{
			{
				Name: "criterion_1",
				Description: "The attachments contain the information described in the project description needed to " +
					"complete the job and there are no other proprietary systems/logins needed beyond the attachments " +
					"themselves. Do not accept examples that say things like 'attached is a sample' because that means " +
					"there is another source of information not included in the attachments. If no attachments are " +
					"given, then ensure the project can be completed on the information in the project description alone.",
			},
			{
				Name: "criterion_2",
				Description: "The milestone descriptions are well-defined and someone without context of the client or " +
					"freelancer would be able to understand what was agreed to.",
			},
		},
	}
}

// Load reads the criteria catalog from configPath, falling back to the
// default path and then to the built-in defaults when no file exists.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read criteria config %s: %w", configPath, err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse criteria config %s: %w", configPath, err)
	}
	if len(config.Criteria) == 0 {
		return nil, fmt.Errorf("criteria config %s defines no criteria", configPath)
	}
	for i, c := range config.Criteria {
		if c.Name == "" {
			return nil, fmt.Errorf("criteria config %s: criterion %d has no name", configPath, i+1)
		}
	}
	return &config, nil
}

// Names returns the criterion names in catalog order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Criteria))
	for _, criterion := range c.Criteria {
		names = append(names, criterion.Name)
	}
	return names
}
