// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is the sentinel error wrapped by UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported option file format")
	// ErrSyntax is wrapped around parser errors of every format.
	ErrSyntax = errors.New("option file syntax error")
	// ErrDynamicValue is the sentinel error wrapped by DynamicValueError.
	ErrDynamicValue = errors.New("option file is not declarative")
	// ErrNonScalarValue is the sentinel error wrapped by NonScalarValueError.
	ErrNonScalarValue = errors.New("option value is not a scalar")
	// ErrDuplicateKey is the sentinel error wrapped by DuplicateKeyError.
	ErrDuplicateKey = errors.New("option assigned twice")
	// ErrOptionFileNotFound is the sentinel error wrapped by OptionFileNotFoundError.
	ErrOptionFileNotFound = errors.New("option file not found")
	// ErrInvalidAssignment is the sentinel error wrapped by InvalidAssignmentError.
	ErrInvalidAssignment = errors.New("invalid assignment")
)

type (
	// UnsupportedFormatError is returned for unknown format names or file extensions.
	UnsupportedFormatError struct {
		Value string
	}

	// DynamicValueError is returned when an option file contains anything but
	// literal assignments.
	DynamicValueError struct {
		File      string
		Line      int
		Key       string
		Construct string
	}

	// NonScalarValueError is returned when a structured format assigns a table,
	// list or null to a key.
	NonScalarValueError struct {
		File string
		Key  string
		Kind string
	}

	// DuplicateKeyError is returned when a key is assigned more than once.
	DuplicateKeyError struct {
		File string
		Line int
		Key  string
	}

	// OptionFileNotFoundError is returned by Find when no candidate exists.
	OptionFileNotFoundError struct {
		Name        string
		SearchPaths []string
	}

	// InvalidAssignmentError is returned by ParseAssignments for entries that
	// are not of the form key=value.
	InvalidAssignmentError struct {
		Value string
	}
)

// Error implements the error interface for UnsupportedFormatError.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", e.Value)
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// Error implements the error interface for DynamicValueError.
func (e *DynamicValueError) Error() string {
	var loc string
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	} else {
		loc = e.File
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: %s in value of %q is not allowed; option files must be declarative", loc, e.Construct, e.Key)
	}
	return fmt.Sprintf("%s: %s is not allowed; option files must be declarative", loc, e.Construct)
}

// Unwrap returns ErrDynamicValue for errors.Is() compatibility.
func (e *DynamicValueError) Unwrap() error { return ErrDynamicValue }

// Error implements the error interface for NonScalarValueError.
func (e *NonScalarValueError) Error() string {
	return fmt.Sprintf("%s: option %q holds a %s; expected a string, bool or number", e.File, e.Key, e.Kind)
}

// Unwrap returns ErrNonScalarValue for errors.Is() compatibility.
func (e *NonScalarValueError) Unwrap() error { return ErrNonScalarValue }

// Error implements the error interface for DuplicateKeyError.
func (e *DuplicateKeyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: option %q assigned twice", e.File, e.Line, e.Key)
	}
	return fmt.Sprintf("%s: option %q assigned twice", e.File, e.Key)
}

// Unwrap returns ErrDuplicateKey for errors.Is() compatibility.
func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// Error implements the error interface for OptionFileNotFoundError.
func (e *OptionFileNotFoundError) Error() string {
	return fmt.Sprintf("option file %q not found (searched: %s)", e.Name, strings.Join(e.SearchPaths, ", "))
}

// Unwrap returns ErrOptionFileNotFound for errors.Is() compatibility.
func (e *OptionFileNotFoundError) Unwrap() error { return ErrOptionFileNotFound }

// Error implements the error interface for InvalidAssignmentError.
func (e *InvalidAssignmentError) Error() string {
	return fmt.Sprintf("invalid assignment %q (expected key=value)", e.Value)
}

// Unwrap returns ErrInvalidAssignment for errors.Is() compatibility.
func (e *InvalidAssignmentError) Unwrap() error { return ErrInvalidAssignment }
