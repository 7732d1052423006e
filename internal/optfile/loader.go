// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/swe-tools/swecfg/pkg/cueutil"
)

// Parse reads option file data in the given format. filename is only used in
// error messages.
func Parse(data []byte, format Format, filename string) (map[string]string, error) {
	if filename == "" {
		filename = "<input>"
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	switch format {
	case FormatShell:
		return parseShell(data, filename)
	case FormatCUE:
		return parseCUE(data, filename)
	case FormatTOML:
		return parseTOML(data, filename)
	case FormatYAML, FormatJSON:
		return parseYAML(data, filename)
	case FormatHCL:
		return parseHCL(data, filename)
	default:
		return nil, &UnsupportedFormatError{Value: string(format)}
	}
}

// Load reads an option file from disk, picking the format from its extension.
func Load(ctx context.Context, path string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &OptionFileNotFoundError{Name: path, SearchPaths: []string{filepath.Dir(path)}}
		}
		return nil, fmt.Errorf("failed to read option file: %w", err)
	}

	return Parse(data, format, path)
}

// Find locates an option file by name. A name containing a path separator is
// used as a path and must exist. Otherwise each directory is tried
// in order with the bare name, then with the SWE_ prefix, each combined with no
// extension and every entry of Extensions.
func Find(name string, dirs []string) (string, error) {
	if name == "" {
		return "", &OptionFileNotFoundError{Name: name, SearchPaths: dirs}
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		if isFile(name) {
			return name, nil
		}
		return "", &OptionFileNotFoundError{Name: name, SearchPaths: []string{filepath.Dir(name)}}
	}

	bases := []string{name}
	if !strings.HasPrefix(name, "SWE_") {
		bases = append(bases, "SWE_"+name)
	}
	suffixes := append([]string{""}, Extensions...)

	for _, dir := range dirs {
		for _, base := range bases {
			for _, ext := range suffixes {
				candidate := filepath.Join(dir, base+ext)
				if isFile(candidate) {
					return candidate, nil
				}
			}
		}
	}
	return "", &OptionFileNotFoundError{Name: name, SearchPaths: dirs}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ParseAssignments parses command line overrides of the form key=value.
// A value may be wrapped in single or double quotes, which are removed.
// Later assignments of the same key win.
func ParseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return nil, &InvalidAssignmentError{Value: arg}
		}
		values[key] = unquote(value)
	}
	return values, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// Merge returns a new map holding base overlaid with each overlay in order.
// Neither input is modified.
func Merge(base map[string]string, overlays ...map[string]string) map[string]string {
	merged := maps.Clone(base)
	if merged == nil {
		merged = make(map[string]string)
	}
	for _, overlay := range overlays {
		maps.Copy(merged, overlay)
	}
	return merged
}
