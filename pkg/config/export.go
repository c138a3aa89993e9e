package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// SectionIDExport is the identifier for the export settings section
	SectionIDExport = "export"

	// DefaultExportFileName matches the file name operators already expect.
	DefaultExportFileName = "TitleIVD_Audit_Log.csv"
	defaultExportDir      = "."
)

// ExportSection holds where CSV exports are written.
type ExportSection struct {
	FileName  string `json:"file_name"`
	Directory string `json:"directory"`
}

// NewExportSection creates an export section with default settings.
func NewExportSection() *ExportSection {
	return &ExportSection{
		FileName:  DefaultExportFileName,
		Directory: defaultExportDir,
	}
}

// ID returns the section identifier.
func (s *ExportSection) ID() string {
	return SectionIDExport
}

// Title returns the section title.
func (s *ExportSection) Title() string {
	return "Export Settings"
}

// Description returns the section description.
func (s *ExportSection) Description() string {
	return "Configure the file name and directory used when exporting the audit log to CSV."
}

// Data returns the current configuration data.
func (s *ExportSection) Data() map[string]any {
	return map[string]any{
		"file_name": s.FileName,
		"directory": s.Directory,
	}
}

// SetData updates the configuration from the provided data.
func (s *ExportSection) SetData(data map[string]any) error {
	for key, value := range data {
		switch key {
		case "file_name", "directory":
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for %s: expected string, got %T", key, value)
			}
			if key == "file_name" {
				s.FileName = str
			} else {
				s.Directory = str
			}
		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}
	return nil
}

// Validate validates the current configuration.
func (s *ExportSection) Validate() error {
	if strings.TrimSpace(s.FileName) == "" {
		return fmt.Errorf("file_name cannot be empty")
	}
	if strings.ContainsAny(s.FileName, `/\`) {
		return fmt.Errorf("file_name must not contain path separators, use directory instead: %q", s.FileName)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *ExportSection) Reset() {
	s.FileName = DefaultExportFileName
	s.Directory = defaultExportDir
}

// Path joins the directory and file name.
func (s *ExportSection) Path() string {
	dir := s.Directory
	if dir == "" {
		dir = defaultExportDir
	}
	return filepath.Join(dir, s.FileName)
}
