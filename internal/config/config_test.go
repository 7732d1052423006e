// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/swe-tools/swecfg/internal/issue"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if diff := cmp.Diff([]string{"build/options", "."}, cfg.SearchPaths); diff != "" {
		t.Errorf("default search paths mismatch (-want +got):\n%s", diff)
	}

	if cfg.OutputFormat != OutputFormatText {
		t.Errorf("expected default output format to be text, got %s", cfg.OutputFormat)
	}

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
}

func TestConfigDir(t *testing.T) {
	Reset()
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}

	testXDGPath := filepath.Join(t.TempDir(), "xdg")
	t.Setenv("XDG_CONFIG_HOME", testXDGPath)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	expected := filepath.Join(testXDGPath, AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected = filepath.Join(home, ".config", AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestReset(t *testing.T) {
	SetConfigDirOverride("/some/dir")
	Reset()

	if configDirOverride != "" {
		t.Errorf("configDirOverride = %q after Reset(), want empty", configDirOverride)
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Parallel()

	got, err := ConfigFilePath("/etc/swecfg")
	if err != nil {
		t.Fatalf("ConfigFilePath() returned error: %v", err)
	}
	want := filepath.Join("/etc/swecfg", "config.cue")
	if got != want {
		t.Errorf("ConfigFilePath() = %q, want %q", got, want)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, source, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadWithSource() returned error: %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want empty when no file exists", source)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAndSave(t *testing.T) {
	Reset()
	configDir := filepath.Join(t.TempDir(), AppName)
	SetConfigDirOverride(configDir)
	t.Cleanup(Reset)

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}

	cfg := &Config{
		SearchPaths:  []string{"/path/one", "/path/two"},
		OutputFormat: OutputFormatYAML,
		UI: UIConfig{
			ColorScheme: ColorSchemeDark,
			Verbose:     true,
		},
	}

	if err := Save(cfg, ""); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, source, err := LoadWithSource(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadWithSource() returned error: %v", err)
	}
	if source != filepath.Join(configDir, "config.cue") {
		t.Errorf("source = %q, want the saved file", source)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("loaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "ui: color_scheme: \"light\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	want := DefaultConfig()
	want.UI.ColorScheme = ColorSchemeLight
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SWECFG_OUTPUT_FORMAT", "json")
	t.Setenv("SWECFG_UI_VERBOSE", "true")
	t.Setenv("SWECFG_SEARCH_PATHS", "opts,more")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.OutputFormat != OutputFormatJSON {
		t.Errorf("OutputFormat = %q, want json", cfg.OutputFormat)
	}
	if !cfg.UI.Verbose {
		t.Error("Verbose = false, want true")
	}
	if diff := cmp.Diff([]string{"opts", "more"}, cfg.SearchPaths); diff != "" {
		t.Errorf("SearchPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SkipEnvIgnoresOverrides(t *testing.T) {
	t.Setenv("SWECFG_OUTPUT_FORMAT", "xml")
	t.Setenv("SWECFG_UI_VERBOSE", "true")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir(), SkipEnv: true})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_ExplicitPath(t *testing.T) {
	Reset()
	SetConfigDirOverride(filepath.Join(t.TempDir(), AppName))
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "nested", "custom.cue")
	cfg := DefaultConfig()
	cfg.OutputFormat = OutputFormatTOML
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if loaded.OutputFormat != OutputFormatTOML {
		t.Errorf("OutputFormat = %q, want toml", loaded.OutputFormat)
	}

	defaultPath, err := ConfigFilePath("")
	if err != nil {
		t.Fatal(err)
	}
	if fileExists(defaultPath) {
		t.Errorf("Save() with an explicit path also wrote %s", defaultPath)
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	t.Setenv("SWECFG_OUTPUT_FORMAT", "xml")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("Load() expected error for invalid output format")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error should wrap ErrInvalidConfig, got: %v", err)
	}

	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) || len(cfgErr.FieldErrors) != 1 {
		t.Fatalf("expected one field error, got: %v", err)
	}
	if !errors.Is(cfgErr.FieldErrors[0], ErrInvalidOutputFormat) {
		t.Errorf("field error should wrap ErrInvalidOutputFormat, got: %v", cfgErr.FieldErrors[0])
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	content := "output_format: \"scons\"\nsearch_paths: [\"opts\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadWithSource(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("LoadWithSource() returned error: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.OutputFormat != OutputFormatSCons {
		t.Errorf("OutputFormat = %q, want scons", cfg.OutputFormat)
	}
	if diff := cmp.Diff([]string{"opts"}, cfg.SearchPaths); diff != "" {
		t.Errorf("SearchPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if !errors.Is(err, ErrConfigFileNotFound) {
		t.Fatalf("Load() error = %v, want ErrConfigFileNotFound", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Operation != "load configuration" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "load configuration")
	}
	if ae.Resource != path {
		t.Errorf("Resource = %q, want %q", ae.Resource, path)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions on a missing config file")
	}
}

func TestLoad_CustomPath_InvalidCUE_ReturnsError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", "output_format: \"text\n"},
		{"unknown field", "container_engine: \"docker\"\n"},
		{"invalid enum", "output_format: \"xml\"\n"},
		{"wrong type", "ui: verbose: \"yes\"\n"},
		{"blank search path", "search_paths: [\" \"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.cue")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("Load() expected error for invalid CUE")
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T", err)
			}
			if !strings.Contains(ae.Format(true), path) {
				t.Errorf("formatted error should mention %s:\n%s", path, ae.Format(true))
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", AppName)

	path, created, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if !created {
		t.Error("created = false on first call, want true")
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() of generated file returned error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("generated config mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte("output_format: \"env\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, created, err = CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("second CreateDefaultConfig() returned error: %v", err)
	}
	if created {
		t.Error("created = true on second call, want false")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "output_format: \"env\"\n" {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	out, err := GenerateCUE(DefaultConfig())
	if err != nil {
		t.Fatalf("GenerateCUE() returned error: %v", err)
	}

	for _, want := range []string{
		"// swecfg configuration file",
		"search_paths:",
		`"build/options"`,
		`output_format: "text"`,
		`color_scheme: "auto"`,
		"verbose:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() output missing %q:\n%s", want, out)
		}
	}
}
