package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// Store provides persistence for configuration data.
type Store interface {
	// Load loads the configuration from disk
	Load() error

	// Save saves the configuration to disk
	Save() error

	// GetSection retrieves configuration data for a specific section
	GetSection(sectionID string) (map[string]any, error)

	// SetSection stores configuration data for a specific section
	SetSection(sectionID string, data map[string]any) error
}

// fileFormat is the on-disk layout of the configuration file.
type fileFormat struct {
	Version  string                    `json:"version"`
	Sections map[string]map[string]any `json:"sections"`
}

const currentVersion = "1.0"

// FileStore implements Store using a JSON file.
type FileStore struct {
	path     string
	data     map[string]map[string]any
	mu       sync.RWMutex
	version  string
}

// DefaultPath returns ~/.ivdtrack/config.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ivdtrack", "config.json"), nil
}

// NewFileStore creates a new file-based configuration store.
// If path is empty, defaults to ~/.ivdtrack/config.json. A missing file is
// not an error; the store starts empty and the file is created on Save.
func NewFileStore(path string) (*FileStore, error) {
	store, err := newFileStore(path)
	if err != nil {
		return nil, err
	}

	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", store.path, err)
	}

	return store, nil
}

// newFileStore resolves path and returns an empty store without reading it.
func newFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return &FileStore{
		path:    path,
		data:    make(map[string]map[string]any),
		version: currentVersion,
	}, nil
}

// Load loads the configuration from disk.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.data = make(map[string]map[string]any)
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg fileFormat
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	if cfg.Version != "" {
		s.version = cfg.Version
	}
	s.data = cfg.Sections
	if s.data == nil {
		s.data = make(map[string]map[string]any)
	}
	return nil
}

// Save writes the configuration to disk through a temp file and rename.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw, err := json.MarshalIndent(fileFormat{Version: s.version, Sections: s.data}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, append(raw, '\n'), 0600); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// GetSection returns a copy of the stored data for a section, or an empty
// map when the section has never been saved.
func (s *FileStore) GetSection(sectionID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data, ok := s.data[sectionID]; ok {
		return maps.Clone(data), nil
	}
	return make(map[string]any), nil
}

// SetSection stores a copy of data for a section.
func (s *FileStore) SetSection(sectionID string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sectionID] = maps.Clone(data)
	return nil
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}
