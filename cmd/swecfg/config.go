// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/swe-tools/swecfg/internal/config"
	"github.com/swe-tools/swecfg/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `swecfg config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage swecfg configuration",
		Long: `Manage swecfg configuration.

Configuration is stored in:
  - Linux: ~/.config/swecfg/config.cue
  - macOS: ~/Library/Application Support/swecfg/config.cue
  - Windows: %APPDATA%\swecfg\config.cue

Environment variables prefixed with SWECFG_ override the file, e.g.
SWECFG_OUTPUT_FORMAT=json or SWECFG_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value and save it to the configuration file.

Keys: search_paths (comma-separated), output_format, ui.color_scheme, ui.verbose`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: app.configPath})
			if err != nil {
				return app.fail(app.configLoadError(err))
			}

			cueContent, err := config.GenerateCUE(cfg)
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprint(app.stdout, cueContent)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil {
		return app.fail(app.configLoadError(err))
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	cfgPath := app.configPath
	if cfgPath == "" {
		if p, pathErr := config.ConfigFilePath(""); pathErr == nil && fileExistsCheck(p) {
			cfgPath = p
		}
	}
	if cfgPath != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("search_paths"))
	if len(cfg.SearchPaths) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range cfg.SearchPaths {
			fmt.Fprintf(w, "  - %s\n", valueStyle.Render(p))
		}
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("output_format"), valueStyle.Render(string(cfg.OutputFormat)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig("")
	if err != nil {
		return app.fail(fmt.Errorf("failed to create config: %w", err))
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(err)
	}
	cfgPath, err := config.ConfigFilePath("")
	if err != nil {
		return app.fail(err)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
	return nil
}

// setConfigValue edits the settings file that was loaded, which is the
// --config file when given. Environment overrides are left out of the file.
func setConfigValue(ctx context.Context, app *App, key, value string) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: app.configPath, SkipEnv: true})
	if err != nil {
		return app.fail(app.configLoadError(err))
	}

	switch key {
	case "search_paths":
		var paths []string
		for p := range strings.SplitSeq(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.SearchPaths = paths

	case "output_format":
		cfg.OutputFormat = config.OutputFormat(value)

	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return app.fail(fmt.Errorf("unknown configuration key: %s\nValid keys: search_paths, output_format, ui.color_scheme, ui.verbose", key))
	}

	if valid, errs := cfg.IsValid(); !valid {
		return app.fail(errors.Join(errs...))
	}

	if err := config.Save(cfg, app.configPath); err != nil {
		return app.fail(fmt.Errorf("failed to save config: %w", err))
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// configLoadError attaches the configuration guidance to a load failure.
func (a *App) configLoadError(err error) error {
	if classifyError(err) != 0 {
		return err
	}
	return newServiceError(err, issue.ConfigLoadFailedId,
		fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, a.verbose)))
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
