// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/swe-tools/swecfg/internal/optfile"

	"github.com/spf13/cobra"
)

var (
	validateSuccessIcon = SuccessStyle.Render("✓")
	validateErrorIcon   = ErrorStyle.Render("✗")
)

// newValidateCommand creates the `swecfg validate` command.
// Without arguments, it validates every SWE_* option file in the search paths.
func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file|name]...",
		Short: "Validate option files",
		Long: `Validate option files by resolving each of them.

Every file is parsed, merged with the defaults and checked against the option
domains and constraints. All files are checked; the command fails if any of
them is invalid.

Without arguments, every SWE_* option file in the configured search paths is
validated.`,
		Example: `  swecfg validate
  swecfg validate build/options/SWE_gnu_cuda_openGL.py
  swecfg validate SWE_intel_mpi_vectorized local.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = discoverOptionFiles(app.Settings().SearchPaths)
				if len(args) == 0 {
					fmt.Fprintln(app.stderr, WarningStyle.Render("No option files found in the search paths."))
					return nil
				}
			}
			return runValidate(cmd, app, args)
		},
	}
}

func runValidate(cmd *cobra.Command, app *App, names []string) error {
	failed := 0
	for _, name := range names {
		_, source, err := resolveSource(cmd.Context(), app, name, nil)
		if err != nil {
			failed++
			fmt.Fprintf(app.stdout, "%s %s\n", validateErrorIcon, CmdStyle.Render(name))
			fmt.Fprintf(app.stdout, "    %s\n", strings.ReplaceAll(formatErrorForDisplay(err, app.verbose), "\n", "\n    "))
			continue
		}
		fmt.Fprintf(app.stdout, "%s %s %s\n", validateSuccessIcon, CmdStyle.Render(name), SubtitleStyle.Render("("+source+")"))
	}

	if failed > 0 {
		fmt.Fprintln(app.stdout)
		fmt.Fprintf(app.stderr, "%s %d of %d option file(s) invalid\n", validateErrorIcon, failed, len(names))
		return &ExitError{Code: 1}
	}
	return nil
}

// discoverOptionFiles lists the SWE_* files with a known extension in dirs.
// Unreadable directories are skipped.
func discoverOptionFiles(dirs []string) []string {
	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasPrefix(name, "SWE_") {
				continue
			}
			if !slices.Contains(optfile.Extensions, filepath.Ext(name)) {
				continue
			}
			path := filepath.Join(dir, name)
			if !strings.ContainsRune(path, filepath.Separator) {
				// Keep it a path so it is not looked up as a name.
				path = "." + string(filepath.Separator) + path
			}
			if !slices.Contains(files, path) {
				files = append(files, path)
			}
		}
	}
	return files
}
