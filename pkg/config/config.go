// Package config loads ivdtrack settings from a JSON file, lets environment
// variables override them, and resolves the final export path.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the loaded configuration for one run.
type Config struct {
	Manager *Manager
	Export  *ExportSection
	Display *DisplaySection
}

// Load opens the config file at path (or the default path when empty),
// registers the default sections and loads them. A file that cannot be read
// or decoded, or a section holding invalid values, leaves the affected
// sections at their defaults; the problem is reported through the returned
// error while the Config is still usable. A nil Config means no config
// location could be determined.
func Load(path string) (*Config, error) {
	store, err := newFileStore(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Manager: NewManager(store),
		Export:  NewExportSection(),
		Display: NewDisplaySection(),
	}

	if err := cfg.Manager.RegisterSection(cfg.Export); err != nil {
		return nil, err
	}
	if err := cfg.Manager.RegisterSection(cfg.Display); err != nil {
		return nil, err
	}

	if err := cfg.Manager.LoadAll(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Env holds settings that may be supplied through the environment.
type Env struct {
	ConfigPath string `env:"IVDTRACK_CONFIG"`
	ExportFile string `env:"IVDTRACK_EXPORT_FILE"`
	ExportDir  string `env:"IVDTRACK_EXPORT_DIR"`
	NoColor    bool   `env:"NO_COLOR"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ResolveExportPath picks the export path with the precedence
// flag > environment > config file > default.
//
// An environment file name that is not absolute is placed in the environment
// directory if set, otherwise in the configured directory.
func ResolveExportPath(flagPath string, e Env, export *ExportSection) string {
	if flagPath != "" {
		return flagPath
	}
	if filepath.IsAbs(e.ExportFile) {
		return e.ExportFile
	}

	resolved := *export
	if e.ExportDir != "" {
		resolved.Directory = e.ExportDir
	}
	if e.ExportFile != "" {
		resolved.FileName = e.ExportFile
	}
	return resolved.Path()
}

// Path returns the location of the config file.
func (c *Config) Path() string {
	if fs, ok := c.Manager.Store().(*FileStore); ok {
		return fs.Path()
	}
	return ""
}

// UseColor reports whether shell output should be colored.
func (c *Config) UseColor(e Env, noColorFlag bool) bool {
	if noColorFlag || e.NoColor {
		return false
	}
	return c.Display.Color
}
