// SPDX-License-Identifier: MPL-2.0

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/format"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"

	"github.com/swe-tools/swecfg/internal/options"
)

const (
	// EnvPrefix starts every variable name of the env format.
	EnvPrefix = "SWE_"

	generatedHeader = "Generated by swecfg. Edit the option file instead."
)

// Write renders cfg in the given format.
func Write(w io.Writer, cfg *options.ResolvedConfig, f Format) error {
	switch f {
	case FormatText:
		return writeText(w, cfg)
	case FormatSCons:
		return writeSCons(w, cfg)
	case FormatEnv:
		return writeEnv(w, cfg)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(orderedRecord(cfg))
	case FormatTOML:
		return toml.NewEncoder(w).Encode(orderedRecord(cfg))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(orderedRecord(cfg)); err != nil {
			return err
		}
		return enc.Close()
	case FormatCUE:
		return writeCUE(w, cfg)
	default:
		return &UnsupportedFormatError{Value: f}
	}
}

func writeText(w io.Writer, cfg *options.ResolvedConfig) error {
	width := 0
	for _, key := range cfg.Keys() {
		width = max(width, len(key))
	}

	for key, value := range cfg.All() {
		if value == "" {
			value = "(unset)"
		}
		if _, err := fmt.Fprintf(w, "%-*s = %s\n", width, key, value); err != nil {
			return err
		}
	}
	return nil
}

func writeSCons(w io.Writer, cfg *options.ResolvedConfig) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", generatedHeader); err != nil {
		return err
	}
	for key, value := range cfg.All() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, singleQuote(value)); err != nil {
			return err
		}
	}
	return nil
}

// singleQuote wraps s in single quotes, closing and reopening the quotes
// around each embedded single quote.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func writeEnv(w io.Writer, cfg *options.ResolvedConfig) error {
	if _, err := fmt.Fprintf(w, "# %s\n", generatedHeader); err != nil {
		return err
	}
	for key, value := range cfg.All() {
		quoted, err := syntax.Quote(value, syntax.LangPOSIX)
		if err != nil {
			return fmt.Errorf("cannot quote value of %s: %w", key, err)
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", EnvName(key), quoted); err != nil {
			return err
		}
	}
	return nil
}

// EnvName converts an option key to its environment variable name:
// "libSDLDir" becomes "SWE_LIB_SDL_DIR" and "openGL" becomes "SWE_OPEN_GL".
func EnvName(key string) string {
	runes := []rune(key)
	var sb strings.Builder
	sb.WriteString(EnvPrefix)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

// orderedRecord builds a struct value with one string field per option, in
// catalogue order, so that the JSON, TOML and YAML encoders keep that order.
func orderedRecord(cfg *options.ResolvedConfig) any {
	keys := cfg.Keys()
	fields := make([]reflect.StructField, len(keys))
	for i, key := range keys {
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("Option%d", i),
			Type: reflect.TypeFor[string](),
			Tag:  reflect.StructTag(fmt.Sprintf(`json:%q toml:%q yaml:%q`, key, key, key)),
		}
	}

	rec := reflect.New(reflect.StructOf(fields)).Elem()
	for i, key := range keys {
		rec.Field(i).SetString(cfg.Value(key))
	}
	return rec.Interface()
}

func writeCUE(w io.Writer, cfg *options.ResolvedConfig) error {
	file := &ast.File{}
	for key, value := range cfg.All() {
		file.Decls = append(file.Decls, &ast.Field{
			Label: cueLabel(key),
			Value: ast.NewString(value),
		})
	}
	if len(file.Decls) > 0 {
		ast.AddComment(file.Decls[0], &ast.CommentGroup{
			Doc:  true,
			List: []*ast.Comment{{Text: "// " + generatedHeader}},
		})
	}

	out, err := format.Node(file)
	if err != nil {
		return fmt.Errorf("failed to format CUE output: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func cueLabel(key string) ast.Label {
	if ast.IsValidIdent(key) && !strings.HasPrefix(key, "_") && !strings.HasPrefix(key, "#") {
		return ast.NewIdent(key)
	}
	return ast.NewString(key)
}
