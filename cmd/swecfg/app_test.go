// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/swe-tools/swecfg/internal/config"
)

type stubConfigProvider struct {
	cfg *config.Config
	err error
}

func (p *stubConfigProvider) Load(_ context.Context, _ config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	cfg := *p.cfg
	return &cfg, nil
}

type testApp struct {
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestApp builds an App whose settings search only dirs.
func newTestApp(t *testing.T, dirs ...string) *testApp {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.SearchPaths = dirs
	return newTestAppWithProvider(t, &stubConfigProvider{cfg: cfg})
}

func newTestAppWithProvider(t *testing.T, provider ConfigProvider) *testApp {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app, err := NewApp(Dependencies{Config: provider, Stdout: stdout, Stderr: stderr})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return &testApp{app: app, stdout: stdout, stderr: stderr}
}

func (ta *testApp) run(args ...string) error {
	rootCmd := newRootCommand(ta.app)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestNewApp_Defaults(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	if app.Config == nil {
		t.Error("Config provider should default to the file provider")
	}
	if app.stdout == nil || app.stderr == nil {
		t.Error("output streams should default to os.Stdout/os.Stderr")
	}
	if got := app.Settings().OutputFormat; got != config.OutputFormatText {
		t.Errorf("Settings().OutputFormat = %q, want %q", got, config.OutputFormatText)
	}
}

func TestApp_LoadSettingsFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("broken settings")
	ta := newTestAppWithProvider(t, &stubConfigProvider{err: loadErr})

	if err := ta.app.loadSettings(context.Background()); !errors.Is(err, loadErr) {
		t.Fatalf("loadSettings() error = %v, want %v", err, loadErr)
	}
	want := config.DefaultConfig()
	if got := ta.app.Settings(); got.OutputFormat != want.OutputFormat || len(got.SearchPaths) != len(want.SearchPaths) {
		t.Errorf("Settings() = %+v, want defaults %+v", got, want)
	}
}

func TestRoot_SettingsErrorIsAWarning(t *testing.T) {
	t.Parallel()

	ta := newTestAppWithProvider(t, &stubConfigProvider{err: errors.New("broken settings")})

	if err := ta.run("schema"); err != nil {
		t.Fatalf("schema error = %v, want nil", err)
	}
	if !bytes.Contains(ta.stderr.Bytes(), []byte("Warning:")) || !bytes.Contains(ta.stderr.Bytes(), []byte("broken settings")) {
		t.Errorf("stderr = %q, want settings warning", ta.stderr.String())
	}
}

func TestRoot_VerboseFromSettings(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UI.Verbose = true
	ta := newTestAppWithProvider(t, &stubConfigProvider{cfg: cfg})

	if err := ta.run("schema"); err != nil {
		t.Fatalf("schema error = %v", err)
	}
	if !ta.app.verbose {
		t.Error("ui.verbose from settings should enable verbose mode")
	}
}
