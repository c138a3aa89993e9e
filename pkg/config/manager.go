package config

import (
	"fmt"
)

// Section is one named group of settings persisted under its ID.
type Section interface {
	ID() string
	Title() string
	Description() string

	// Data returns the section's current values keyed by setting name.
	Data() map[string]any

	// SetData applies values read from the store. Unknown keys are ignored.
	SetData(data map[string]any) error

	Validate() error

	// Reset restores the defaults.
	Reset()
}

// Manager ties registered sections to a Store.
type Manager struct {
	store    Store
	sections []Section
	byID     map[string]Section
}

// NewManager creates a manager with no sections.
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		byID:  make(map[string]Section),
	}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// RegisterSection adds a section. IDs must be unique.
func (m *Manager) RegisterSection(section Section) error {
	if _, exists := m.byID[section.ID()]; exists {
		return fmt.Errorf("section %q already registered", section.ID())
	}
	m.sections = append(m.sections, section)
	m.byID[section.ID()] = section
	return nil
}

// GetSection looks up a section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	s, ok := m.byID[id]
	return s, ok
}

// GetSections returns the sections in registration order.
func (m *Manager) GetSections() []Section {
	out := make([]Section, len(m.sections))
	copy(out, m.sections)
	return out
}

// LoadAll reads every registered section from the store and validates it.
// A section that fails validation is reset to its defaults and the error is
// returned after the remaining sections have been loaded.
func (m *Manager) LoadAll() error {
	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var firstErr error
	for _, section := range m.sections {
		data, err := m.store.GetSection(section.ID())
		if err != nil {
			return fmt.Errorf("failed to read section %s: %w", section.ID(), err)
		}

		if err := section.SetData(data); err != nil {
			section.Reset()
			if firstErr == nil {
				firstErr = fmt.Errorf("invalid data in section %s: %w", section.ID(), err)
			}
			continue
		}

		if err := section.Validate(); err != nil {
			section.Reset()
			if firstErr == nil {
				firstErr = fmt.Errorf("invalid configuration in section %s: %w", section.ID(), err)
			}
		}
	}
	return firstErr
}

// SaveAll validates every section, writes it to the store and saves the store.
func (m *Manager) SaveAll() error {
	for _, section := range m.sections {
		if err := section.Validate(); err != nil {
			return fmt.Errorf("invalid configuration in section %s: %w", section.ID(), err)
		}
		if err := m.store.SetSection(section.ID(), section.Data()); err != nil {
			return fmt.Errorf("failed to store section %s: %w", section.ID(), err)
		}
	}
	return m.store.Save()
}

// ResetAll restores every section to its defaults. The store is untouched
// until SaveAll is called.
func (m *Manager) ResetAll() {
	for _, section := range m.sections {
		section.Reset()
	}
}
