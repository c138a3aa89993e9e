package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, path string, sections map[string]map[string]any) {
	t.Helper()
	data, err := json.MarshalIndent(map[string]any{
		"version":  "1.0",
		"sections": sections,
	}, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	t.Run("creates store with custom path", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")

		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}

		if store.Path() != configPath {
			t.Errorf("Expected path %s, got %s", configPath, store.Path())
		}
	})

	t.Run("creates store with default path when empty", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		store, err := NewFileStore("")
		if err != nil {
			t.Fatalf("NewFileStore with empty path failed: %v", err)
		}

		expectedPath := filepath.Join(home, ".ivdtrack", "config.json")
		if store.Path() != expectedPath {
			t.Errorf("Expected default path %s, got %s", expectedPath, store.Path())
		}
	})

	t.Run("loads existing config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		writeConfigFile(t, configPath, map[string]map[string]any{
			"export": {"file_name": "q3.csv"},
		})

		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}

		section, err := store.GetSection("export")
		if err != nil {
			t.Fatalf("GetSection failed: %v", err)
		}

		if section["file_name"] != "q3.csv" {
			t.Errorf("Expected file_name=q3.csv, got %v", section["file_name"])
		}
	})

	t.Run("fails on invalid JSON", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(configPath, []byte("{invalid json}"), 0644); err != nil {
			t.Fatalf("Failed to write invalid JSON: %v", err)
		}

		if _, err := NewFileStore(configPath); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})
}

func TestFileStore_Load(t *testing.T) {
	t.Run("handles non-existent file", func(t *testing.T) {
		store := &FileStore{path: filepath.Join(t.TempDir(), "nonexistent.json")}
		if err := store.Load(); err != nil {
			t.Fatalf("Load should not fail for non-existent file: %v", err)
		}

		if len(store.data) != 0 {
			t.Error("Expected empty config for non-existent file")
		}
	})

	t.Run("handles missing sections key", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(configPath, []byte(`{"version":"1.0"}`), 0644); err != nil {
			t.Fatal(err)
		}

		store := &FileStore{path: configPath}
		if err := store.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if store.data == nil {
			t.Error("Expected data map to be initialized")
		}
	})
}

func TestFileStore_Save(t *testing.T) {
	t.Run("saves config to file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")

		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}

		store.SetSection("display", map[string]any{"color": false})

		if err := store.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		reloaded, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("Reload failed: %v", err)
		}

		section, _ := reloaded.GetSection("display")
		if section["color"] != false {
			t.Errorf("Expected color=false after reload, got %v", section["color"])
		}

		if _, err := os.Stat(configPath + ".tmp"); !os.IsNotExist(err) {
			t.Error("Temp file should not remain after save")
		}
	})

	t.Run("creates directory if needed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}

		if err := store.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("Config file not created: %v", err)
		}
	})

	t.Run("leaves no temp file after save", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		store, _ := NewFileStore(configPath)
		store.SetSection("export", map[string]any{"file_name": "x.csv"})

		if err := store.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if _, err := os.Stat(configPath + ".tmp"); !os.IsNotExist(err) {
			t.Errorf("Temp file left behind: %v", err)
		}
	})
}

func TestFileStore_SectionCopies(t *testing.T) {
	store, _ := NewFileStore(filepath.Join(t.TempDir(), "config.json"))

	t.Run("returns empty map for non-existent section", func(t *testing.T) {
		section, err := store.GetSection("nonexistent")
		if err != nil {
			t.Fatalf("GetSection failed: %v", err)
		}
		if section == nil || len(section) != 0 {
			t.Error("Expected empty non-nil map")
		}
	})

	t.Run("stores copy to prevent external modification", func(t *testing.T) {
		data := map[string]any{"file_name": "a.csv"}
		store.SetSection("export", data)
		data["file_name"] = "changed.csv"

		section, _ := store.GetSection("export")
		if section["file_name"] != "a.csv" {
			t.Error("External modification affected stored data")
		}
	})

	t.Run("returns copy to prevent external modification", func(t *testing.T) {
		section, _ := store.GetSection("export")
		section["file_name"] = "changed.csv"

		again, _ := store.GetSection("export")
		if again["file_name"] != "a.csv" {
			t.Error("Modifying returned section affected stored data")
		}
	})
}
