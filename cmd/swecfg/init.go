// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/swe-tools/swecfg/internal/issue"
	"github.com/swe-tools/swecfg/internal/optfile"

	"github.com/spf13/cobra"
)

// ErrFileExists is returned when init would overwrite an existing option file.
var ErrFileExists = errors.New("file already exists")

// newInitCommand creates the `swecfg init` command.
func newInitCommand(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <preset> [dir]",
		Short: "Create an option file from a preset",
		Long: `Create an option file from one of the bundled presets.

The file is written to dir (default: the first search path) under the preset's
file name, e.g. SWE_gnu_cuda_openGL.py. Existing files are never overwritten
unless --force is given.

Without arguments, the available presets are listed.`,
		Example: `  swecfg init
  swecfg init gnu_cuda_openGL build/options
  swecfg init SWE_intel_mpi_vectorized .`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listPresets(app)
				return nil
			}
			dir := ""
			if len(args) > 1 {
				dir = args[1]
			}
			return runInit(app, args[0], dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing option file")

	return cmd
}

func listPresets(app *App) {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Presets"))
	fmt.Fprintln(app.stdout)
	for _, p := range optfile.Presets() {
		fmt.Fprintf(app.stdout, "  %s %s\n", CmdStyle.Render(p.Name), SubtitleStyle.Render("("+p.Filename+")"))
	}
}

func runInit(app *App, name, dir string, force bool) error {
	preset, ok := optfile.LookupPreset(name)
	if !ok {
		names := make([]string, 0, 2)
		for _, p := range optfile.Presets() {
			names = append(names, p.Name)
		}
		return app.fail(issue.NewErrorContext().
			WithOperation("create option file").
			WithResource(name).
			WithSuggestion("Available presets: " + strings.Join(names, ", ")).
			Wrap(fmt.Errorf("unknown preset %q", name)).
			BuildError())
	}

	if dir == "" {
		dir = "."
		if paths := app.Settings().SearchPaths; len(paths) > 0 {
			dir = paths[0]
		}
	}

	path := filepath.Join(dir, preset.Filename)
	if err := writePreset(path, preset.Content, force); err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("create option file").
			WithResource(path)
		if errors.Is(err, ErrFileExists) {
			ctx = ctx.WithSuggestion("Use --force to overwrite it")
		}
		return app.fail(ctx.Wrap(err).BuildError())
	}

	fmt.Fprintf(app.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), path)
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(app.stdout, "  1. Edit the machine-specific paths in the option file")
	fmt.Fprintf(app.stdout, "  2. Run 'swecfg resolve %s' to check the configuration\n", path)
	return nil
}

func writePreset(path string, content []byte, force bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrFileExists
		}
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
