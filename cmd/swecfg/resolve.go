// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/swe-tools/swecfg/internal/export"
	"github.com/swe-tools/swecfg/internal/issue"
	"github.com/swe-tools/swecfg/internal/optfile"
	"github.com/swe-tools/swecfg/internal/options"

	"github.com/spf13/cobra"
)

type resolveFlags struct {
	set    []string
	format string
	output string
}

// newResolveCommand creates the `swecfg resolve` command.
func newResolveCommand(app *App) *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve [file|name]",
		Short: "Resolve an option file into a complete build configuration",
		Long: `Resolve an option file into a complete build configuration.

The argument is either a path or the name of an option file, which is looked up
in the configured search paths (with or without the SWE_ prefix and extension).
Names of bundled presets work even when no such file exists. Without an
argument only the defaults and --set overrides are resolved.

Keys given with --set override the file. The result is printed in the
configured output format unless --format is given; with --output and no
--format the format is taken from the file extension.`,
		Example: `  swecfg resolve SWE_gnu_cuda_openGL
  swecfg resolve build/options/SWE_intel_mpi_vectorized.py --set netCDFDir=/opt/netcdf
  swecfg resolve gnu_cuda_openGL -f scons -o build/options/local.py`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			formatSet := cmd.Flags().Changed("format")
			return runResolve(cmd.Context(), app, name, flags, formatSet)
		},
	}

	cmd.Flags().StringArrayVar(&flags.set, "set", nil, "override an option (key=value, repeatable)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, scons, env, json, toml, yaml, cue")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runResolve(ctx context.Context, app *App, name string, flags resolveFlags, formatSet bool) error {
	format, err := outputFormat(app, flags, formatSet)
	if err != nil {
		return app.fail(err)
	}

	cfg, source, err := resolveSource(ctx, app, name, flags.set)
	if err != nil {
		return app.fail(err)
	}
	app.logger.Debug("resolved build configuration", "source", source, "format", format)

	var buf bytes.Buffer
	if err := export.Write(&buf, cfg, format); err != nil {
		return app.fail(fmt.Errorf("failed to write %s output: %w", format, err))
	}

	if flags.output == "" {
		_, err := app.stdout.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(flags.output, buf.Bytes(), 0o644); err != nil {
		return app.fail(issue.NewErrorContext().
			WithOperation("write resolved configuration").
			WithResource(flags.output).
			WithSuggestion("Check that the directory exists and is writable").
			Wrap(err).
			BuildError())
	}
	fmt.Fprintf(app.stderr, "%s Wrote %s\n", SuccessStyle.Render("✓"), flags.output)
	return nil
}

// outputFormat picks the export format: the --format flag, then the --output
// extension, then the configured default.
func outputFormat(app *App, flags resolveFlags, formatSet bool) (export.Format, error) {
	format := export.Format(app.Settings().OutputFormat)
	switch {
	case formatSet:
		format = export.Format(strings.ToLower(flags.format))
	case flags.output != "":
		if f, ok := formatForExtension(filepath.Ext(flags.output)); ok {
			format = f
		}
	}

	if valid, errs := format.IsValid(); !valid {
		return "", errors.Join(errs...)
	}
	return format, nil
}

func formatForExtension(ext string) (export.Format, bool) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		return export.FormatYAML, true
	}
	for _, f := range export.Formats() {
		if f.Extension() == ext {
			return f, true
		}
	}
	return "", false
}

// resolveSource loads the named option file, overlays the overrides and resolves
// the result. It returns the configuration and a description of its source.
func resolveSource(ctx context.Context, app *App, name string, overrides []string) (*options.ResolvedConfig, string, error) {
	values, source, err := loadSource(ctx, app, name)
	if err != nil {
		return nil, source, err
	}

	set, err := optfile.ParseAssignments(overrides)
	if err != nil {
		return nil, source, err
	}

	cfg, err := options.Resolve(optfile.Merge(values, set))
	if err != nil {
		return nil, source, issue.NewErrorContext().
			WithOperation("resolve build options").
			WithResource(source).
			WithSuggestion("Run 'swecfg schema' to list the allowed values and constraints").
			Wrap(err).
			BuildError()
	}
	return cfg, source, nil
}

// loadSource reads the option values named by name. An empty name yields no
// values. Names that match no file fall back to the bundled presets.
func loadSource(ctx context.Context, app *App, name string) (map[string]string, string, error) {
	if name == "" {
		return map[string]string{}, "defaults", nil
	}

	path, err := optfile.Find(name, app.Settings().SearchPaths)
	if err != nil {
		if preset, ok := optfile.LookupPreset(name); ok && errors.Is(err, optfile.ErrOptionFileNotFound) {
			app.logger.Debug("using bundled preset", "name", name, "preset", preset.Filename)
			values, perr := preset.Values()
			return values, "preset " + preset.Name, perr
		}
		return nil, name, issue.NewErrorContext().
			WithOperation("find option file").
			WithResource(name).
			WithSuggestion("Pass a path to the option file").
			WithSuggestion("Run 'swecfg config show' to see the search paths").
			Wrap(err).
			BuildError()
	}

	app.logger.Debug("loading option file", "path", path)
	values, err := optfile.Load(ctx, path)
	if err != nil {
		return nil, path, issue.NewErrorContext().
			WithOperation("load option file").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	return values, path, nil
}
