// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/swe-tools/swecfg/internal/export"
	"github.com/swe-tools/swecfg/internal/options"

	"github.com/spf13/cobra"
)

// newSchemaCommand creates the `swecfg schema` command.
func newSchemaCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "List every build option and constraint",
		Long: `List every build option with its domain and default, followed by the
constraints between options.

With --format cue the catalogue is printed as a CUE definition (#Options) that
accepts exactly the resolved configurations. It can validate the output of
'swecfg resolve -f cue' or 'swecfg resolve -f json' with the cue tool.`,
		Example: `  swecfg schema
  swecfg schema --format cue > options_schema.cue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch strings.ToLower(format) {
			case "text":
				return writeSchemaText(app.stdout, options.Default())
			case "cue":
				if err := export.WriteSchemaCUE(app.stdout, options.Default()); err != nil {
					return app.fail(err)
				}
				return nil
			default:
				return app.fail(&export.UnsupportedFormatError{Value: export.Format(format)})
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, cue")

	return cmd
}

func writeSchemaText(w io.Writer, s *options.Schema) error {
	opts := s.Options()
	width := 0
	for _, opt := range opts {
		width = max(width, len(opt.Name))
	}

	fmt.Fprintln(w, TitleStyle.Render("Options"))
	fmt.Fprintln(w)
	for _, opt := range opts {
		name := CmdStyle.Render(fmt.Sprintf("%-*s", width, opt.Name))
		fmt.Fprintf(w, "  %s  %s\n", name, opt.Description)
		fmt.Fprintf(w, "  %*s  %s %s\n", width, "", SubtitleStyle.Render("values: "), describeDomain(opt))
		fmt.Fprintf(w, "  %*s  %s %s\n", width, "", SubtitleStyle.Render("default:"), describeDefault(opt.Default))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Constraints"))
	fmt.Fprintln(w)
	for _, c := range s.Constraints() {
		fmt.Fprintf(w, "  %s %s\n", WarningStyle.Render(c.Name+":"), c.String())
	}
	return nil
}

func describeDomain(opt options.Option) string {
	var desc string
	switch opt.Domain.Kind() {
	case options.KindEnum:
		desc = strings.Join(opt.Domain.Values(), " | ")
	case options.KindToggle:
		desc = "yes | no (also on/off, true/false, 1/0, y/n, t/f, all/none)"
	default:
		desc = "any non-empty path"
	}
	if opt.Optional {
		desc += SubtitleStyle.Render(" (optional)")
	}
	return desc
}

func describeDefault(value string) string {
	if value == "" {
		return SubtitleStyle.Render("(unset)")
	}
	return SuccessStyle.Render(value)
}
