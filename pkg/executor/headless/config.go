package headless

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script describes a session to replay without prompting.
type Script struct {
	// Export settings for the run
	Export ExportConfig `yaml:"export" json:"export"`

	// Entities to add, in order, with their contacts
	Entities []EntityConfig `yaml:"entities" json:"entities"`

	// Interactions to log after all entities exist
	Log []LogEntry `yaml:"log" json:"log"`
}

// ExportConfig controls what the replay produces.
type ExportConfig struct {
	// Path of the CSV file; empty means the resolved default path
	Path string `yaml:"path" json:"path"`

	// Render also prints the console table
	Render bool `yaml:"render" json:"render"`
}

// EntityConfig is one entity and the contacts to add to it.
type EntityConfig struct {
	Name        string          `yaml:"name" json:"name"`
	FundingType string          `yaml:"funding_type" json:"funding_type"`
	Contacts    []ContactConfig `yaml:"contacts" json:"contacts"`
}

// ContactConfig is one contact of an entity.
type ContactConfig struct {
	Name  string `yaml:"name" json:"name"`
	Title string `yaml:"title" json:"title"`
}

// LogEntry is one interaction, addressed the way an operator would in the
// shell: entity by 1-based menu ordinal, contact by exact name.
type LogEntry struct {
	Entity   int    `yaml:"entity" json:"entity"`
	Contact  string `yaml:"contact" json:"contact"`
	Question string `yaml:"question" json:"question"`
	Response string `yaml:"response" json:"response"`
	Flagged  bool   `yaml:"flagged" json:"flagged"`
}

// LoadScript reads and validates a replay script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a replay script.
func ParseScript(data []byte) (*Script, error) {
	script := &Script{}
	if err := yaml.Unmarshal(data, script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	return script, nil
}

// Validate checks the structure of the script. It does not resolve log
// references; those fail during Run the same way they would in the shell.
func (s *Script) Validate() error {
	if len(s.Entities) == 0 {
		return fmt.Errorf("at least one entity is required")
	}

	for i, entry := range s.Log {
		if strings.TrimSpace(entry.Contact) == "" {
			return fmt.Errorf("log entry %d: contact is required", i+1)
		}
	}

	return nil
}
