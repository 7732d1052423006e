// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"path/filepath"
	"strings"
)

const (
	// FormatShell is the native assignment format (key='value' per line).
	FormatShell Format = "shell"
	// FormatCUE is a CUE file with top-level scalar fields.
	FormatCUE Format = "cue"
	// FormatTOML is a TOML file with top-level scalar keys.
	FormatTOML Format = "toml"
	// FormatYAML is a YAML mapping of scalars.
	FormatYAML Format = "yaml"
	// FormatHCL is an HCL body with top-level attributes.
	FormatHCL Format = "hcl"
	// FormatJSON is a JSON object of scalars. It is read with the YAML parser.
	FormatJSON Format = "json"
)

// Extensions lists the file extensions Find tries, in order.
var Extensions = []string{".py", ".opts", ".sh", ".cue", ".toml", ".yaml", ".yml", ".hcl", ".json"}

// Format identifies an option file syntax.
type Format string

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the defined formats,
// and a list of validation errors if it is not.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatShell, FormatCUE, FormatTOML, FormatYAML, FormatHCL, FormatJSON:
		return true, nil
	default:
		return false, []error{&UnsupportedFormatError{Value: string(f)}}
	}
}

// FormatFromPath picks the format from a file extension. Files without an
// extension and the historical .py option files are shell-style assignments.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".py", ".opts", ".sh":
		return FormatShell, nil
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", &UnsupportedFormatError{Value: ext}
	}
}
