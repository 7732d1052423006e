// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/swe-tools/swecfg/internal/config"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra command handler receives an App reference and reads
	// settings, output streams and the logger through it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger

		// Per-invocation state, populated by the root command's PersistentPreRunE.
		verbose    bool
		configPath string
		settings   *config.Config
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		Prefix: config.AppName,
	})

	return &App{
		Config:   deps.Config,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		logger:   logger,
		settings: config.DefaultConfig(),
	}, nil
}

// Settings returns the settings loaded for the current invocation, or the
// defaults when loading failed or has not happened yet.
func (a *App) Settings() *config.Config {
	if a.settings == nil {
		return config.DefaultConfig()
	}
	return a.settings
}

// loadSettings loads swecfg's settings through the provider. On failure the
// defaults stay in place and the error is returned for the caller to report.
func (a *App) loadSettings(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		a.settings = config.DefaultConfig()
		return err
	}
	a.settings = cfg
	return nil
}

// setVerbose toggles verbose output and debug logging.
func (a *App) setVerbose(v bool) {
	a.verbose = v
	if v {
		a.logger.SetLevel(log.DebugLevel)
	} else {
		a.logger.SetLevel(log.InfoLevel)
	}
}
