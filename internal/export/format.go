// SPDX-License-Identifier: MPL-2.0

package export

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// FormatText is an aligned key = value table for humans.
	FormatText Format = "text"
	// FormatSCons is one key='value' assignment per line, as read by the build driver.
	FormatSCons Format = "scons"
	// FormatEnv is SWE_<KEY>=value assignments with shell quoting.
	FormatEnv Format = "env"
	// FormatJSON is a JSON object.
	FormatJSON Format = "json"
	// FormatTOML is a TOML document of top-level keys.
	FormatTOML Format = "toml"
	// FormatYAML is a YAML mapping.
	FormatYAML Format = "yaml"
	// FormatCUE is a list of CUE fields.
	FormatCUE Format = "cue"
)

// ErrUnsupportedFormat is the sentinel error wrapped by UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var formats = []Format{FormatText, FormatSCons, FormatEnv, FormatJSON, FormatTOML, FormatYAML, FormatCUE}

type (
	// Format names an output format.
	Format string

	// UnsupportedFormatError is returned for unknown format names.
	// It wraps ErrUnsupportedFormat for errors.Is() compatibility.
	UnsupportedFormatError struct {
		Value Format
	}
)

// Formats returns every supported format.
func Formats() []Format { return slices.Clone(formats) }

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the defined formats,
// and a list of validation errors if it is not.
func (f Format) IsValid() (bool, []error) {
	if slices.Contains(formats, f) {
		return true, nil
	}
	return false, []error{&UnsupportedFormatError{Value: f}}
}

// Extension returns the file extension conventionally used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatSCons:
		return ".py"
	case FormatEnv:
		return ".sh"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// Error implements the error interface for UnsupportedFormatError.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q (valid: text, scons, env, json, toml, yaml, cue)", e.Value)
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }
