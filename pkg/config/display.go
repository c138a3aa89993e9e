package config

import (
	"fmt"
	"strings"
)

const (
	// SectionIDDisplay is the identifier for the display settings section
	SectionIDDisplay = "display"

	defaultColor  = true
	defaultBanner = "TITLE IV-D FRAUD TRACKER"
)

// DisplaySection manages how the interactive shell looks.
type DisplaySection struct {
	Color  bool   `json:"color"`
	Banner string `json:"banner"`
}

// NewDisplaySection creates a new display section with default settings.
func NewDisplaySection() *DisplaySection {
	return &DisplaySection{
		Color:  defaultColor,
		Banner: defaultBanner,
	}
}

// ID returns the section identifier.
func (s *DisplaySection) ID() string {
	return SectionIDDisplay
}

// Title returns the section title.
func (s *DisplaySection) Title() string {
	return "Display Settings"
}

// Description returns the section description.
func (s *DisplaySection) Description() string {
	return "Configure the menu banner and whether shell messages are colored."
}

// Data returns the current configuration data.
func (s *DisplaySection) Data() map[string]any {
	return map[string]any{
		"color":  s.Color,
		"banner": s.Banner,
	}
}

// SetData updates the configuration from the provided data.
func (s *DisplaySection) SetData(data map[string]any) error {
	for key, value := range data {
		switch key {
		case "color":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for color: expected bool, got %T", value)
			}
			s.Color = enabled

		case "banner":
			banner, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for banner: expected string, got %T", value)
			}
			s.Banner = banner

		default:
			continue
		}
	}
	return nil
}

// Validate validates the current configuration.
func (s *DisplaySection) Validate() error {
	if strings.TrimSpace(s.Banner) == "" {
		return fmt.Errorf("banner cannot be empty")
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *DisplaySection) Reset() {
	s.Color = defaultColor
	s.Banner = defaultBanner
}
