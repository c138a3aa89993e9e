package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultExportFileName, cfg.Export.FileName)
	assert.Equal(t, ".", cfg.Export.Directory)
	assert.True(t, cfg.Display.Color)
	assert.Equal(t, "TITLE IV-D FRAUD TRACKER", cfg.Display.Banner)

	sections := cfg.Manager.GetSections()
	require.Len(t, sections, 2)
	assert.Equal(t, SectionIDExport, sections[0].ID())
	assert.Equal(t, SectionIDDisplay, sections[1].ID())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfigFile(t, path, map[string]map[string]any{
		"export":  {"file_name": "q3.csv", "directory": "/srv/audits"},
		"display": {"color": false, "banner": "COUNTY AUDIT"},
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "q3.csv", cfg.Export.FileName)
	assert.Equal(t, filepath.Join("/srv/audits", "q3.csv"), cfg.Export.Path())
	assert.False(t, cfg.Display.Color)
	assert.Equal(t, "COUNTY AUDIT", cfg.Display.Banner)
}

func TestLoad_InvalidSectionFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfigFile(t, path, map[string]map[string]any{
		"export":  {"file_name": "nested/q3.csv"},
		"display": {"banner": "OK"},
	})

	cfg, err := Load(path)
	require.Error(t, err)
	require.NotNil(t, cfg, "config stays usable")

	assert.Equal(t, DefaultExportFileName, cfg.Export.FileName)
	assert.Equal(t, "OK", cfg.Display.Banner)
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sections": {`), 0600))

	cfg, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode config file")
	require.NotNil(t, cfg, "config stays usable")

	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, DefaultExportFileName, cfg.Export.FileName)
	assert.Equal(t, defaultBanner, cfg.Display.Banner)
	assert.True(t, cfg.Display.Color)
}

func TestLoad_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Export.FileName = "county.csv"
	cfg.Display.Color = false
	require.NoError(t, cfg.Manager.SaveAll())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "county.csv", again.Export.FileName)
	assert.False(t, again.Display.Color)
}

func TestExportSection_SetData(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]any
		expectFile  string
		expectDir   string
		expectError bool
	}{
		{
			name:       "valid data",
			data:       map[string]any{"file_name": "a.csv", "directory": "out"},
			expectFile: "a.csv",
			expectDir:  "out",
		},
		{
			name:       "partial data keeps defaults",
			data:       map[string]any{"directory": "out"},
			expectFile: DefaultExportFileName,
			expectDir:  "out",
		},
		{
			name:       "unknown keys ignored",
			data:       map[string]any{"delimiter": ";"},
			expectFile: DefaultExportFileName,
			expectDir:  ".",
		},
		{
			name:        "wrong type",
			data:        map[string]any{"file_name": 42},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewExportSection()
			err := s.SetData(tt.data)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectFile, s.FileName)
			assert.Equal(t, tt.expectDir, s.Directory)
		})
	}
}

func TestExportSection_Validate(t *testing.T) {
	s := NewExportSection()
	assert.NoError(t, s.Validate())

	s.FileName = "  "
	assert.Error(t, s.Validate())

	s.FileName = `dir\file.csv`
	assert.Error(t, s.Validate())

	s.Reset()
	assert.NoError(t, s.Validate())
	assert.Equal(t, DefaultExportFileName, s.FileName)
}

func TestDisplaySection(t *testing.T) {
	s := NewDisplaySection()
	assert.Equal(t, SectionIDDisplay, s.ID())
	assert.NotEmpty(t, s.Description())

	assert.Error(t, s.SetData(map[string]any{"color": "yes"}))
	assert.Error(t, s.SetData(map[string]any{"banner": false}))

	require.NoError(t, s.SetData(map[string]any{"banner": ""}))
	assert.Error(t, s.Validate())

	s.Reset()
	assert.NoError(t, s.Validate())
	assert.Equal(t, map[string]any{"color": true, "banner": "TITLE IV-D FRAUD TRACKER"}, s.Data())
}

func TestParseEnv(t *testing.T) {
	t.Setenv("IVDTRACK_CONFIG", "/etc/ivdtrack.json")
	t.Setenv("IVDTRACK_EXPORT_FILE", "env.csv")
	t.Setenv("IVDTRACK_EXPORT_DIR", "/tmp/exports")
	t.Setenv("NO_COLOR", "true")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, Env{
		ConfigPath: "/etc/ivdtrack.json",
		ExportFile: "env.csv",
		ExportDir:  "/tmp/exports",
		NoColor:    true,
	}, e)
}

func TestParseEnv_InvalidBool(t *testing.T) {
	t.Setenv("NO_COLOR", "maybe")

	_, err := ParseEnv()
	assert.Error(t, err)
}

func TestResolveExportPath(t *testing.T) {
	export := &ExportSection{FileName: "config.csv", Directory: "cfgdir"}

	tests := []struct {
		name string
		flag string
		env  Env
		want string
	}{
		{name: "config file", want: filepath.Join("cfgdir", "config.csv")},
		{name: "flag wins", flag: "flag.csv", env: Env{ExportFile: "env.csv"}, want: "flag.csv"},
		{name: "env file in config dir", env: Env{ExportFile: "env.csv"}, want: filepath.Join("cfgdir", "env.csv")},
		{name: "env dir", env: Env{ExportDir: "envdir"}, want: filepath.Join("envdir", "config.csv")},
		{name: "env dir and file", env: Env{ExportDir: "envdir", ExportFile: "env.csv"}, want: filepath.Join("envdir", "env.csv")},
		{name: "absolute env file", env: Env{ExportDir: "envdir", ExportFile: "/abs/env.csv"}, want: "/abs/env.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveExportPath(tt.flag, tt.env, export))
		})
	}

	assert.Equal(t, DefaultExportFileName, ResolveExportPath("", Env{}, NewExportSection()))
}

func TestUseColor(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.True(t, cfg.UseColor(Env{}, false))
	assert.False(t, cfg.UseColor(Env{}, true))
	assert.False(t, cfg.UseColor(Env{NoColor: true}, false))

	cfg.Display.Color = false
	assert.False(t, cfg.UseColor(Env{}, false))
}
