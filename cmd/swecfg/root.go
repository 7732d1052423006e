// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/swe-tools/swecfg/internal/config"
	"github.com/swe-tools/swecfg/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the swecfg command tree around app.
func newRootCommand(app *App) *cobra.Command {
	var (
		verbose bool
		cfgFile string
	)

	rootCmd := &cobra.Command{
		Use:   "swecfg",
		Short: "Resolve and validate SWE build options",
		Long: TitleStyle.Render("swecfg") + SubtitleStyle.Render(" - Resolve and validate SWE build options") + `

swecfg turns an option file (the key='value' files kept under build/options)
into a complete, validated build configuration: every option gets a value,
every value is checked against its domain, and conflicting combinations such
as a vectorized solver without vectorization are rejected.

Option files are read as data and never executed. Besides shell-style
assignments, CUE, TOML, YAML, JSON and HCL files are accepted.

` + SubtitleStyle.Render("Examples:") + `
  swecfg resolve SWE_gnu_cuda_openGL          Resolve a named option file
  swecfg resolve opts.py --set openGL=no      Override a key on the command line
  swecfg resolve opts.py -f json -o cfg.json  Export the resolved configuration
  swecfg validate build/options/*.py          Check option files
  swecfg schema                               List every option and constraint
  swecfg init gnu_cuda_openGL build/options   Create an option file from a preset`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.configPath = cfgFile
			if err := app.loadSettings(cmd.Context()); err != nil {
				// Always surface settings errors; swecfg keeps working with defaults.
				fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
			}

			// Apply verbose from settings if not set via flag
			app.setVerbose(verbose || app.Settings().UI.Verbose)
			applyColorScheme(app.Settings().UI.ColorScheme)
			app.logger.Debug("settings loaded", "search_paths", app.Settings().SearchPaths, "output_format", app.Settings().OutputFormat)
			return nil
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/swecfg/config.cue)")

	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newSchemaCommand(app))
	rootCmd.AddCommand(newInitCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// handleError prints errors that reached fang unrendered. An ExitError has
// already been reported by the command that returned it.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// applyColorScheme forces lipgloss' background detection for explicit schemes.
func applyColorScheme(scheme config.ColorScheme) {
	switch scheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// issueStyle returns the glamour style used to render issue guidance.
func issueStyle(scheme config.ColorScheme) string {
	if scheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
