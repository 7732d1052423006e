// SPDX-License-Identifier: MPL-2.0

package options

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownOption is the sentinel error wrapped by UnknownOptionError.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidValue is the sentinel error wrapped by InvalidValueError.
	ErrInvalidValue = errors.New("invalid option value")
	// ErrConstraintViolation is the sentinel error wrapped by ConstraintViolationError.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInvalidSchema is the sentinel error wrapped by InvalidSchemaError.
	ErrInvalidSchema = errors.New("invalid option schema")
	// ErrNotToggle is returned by ResolvedConfig.Bool for options that are not toggles.
	ErrNotToggle = errors.New("option is not a toggle")
)

type (
	// UnknownOptionError is returned when user input names a key outside the schema.
	// It wraps ErrUnknownOption for errors.Is() compatibility.
	UnknownOptionError struct {
		Key string
	}

	// InvalidValueError is returned when a recognized key holds a value outside
	// its domain. It wraps ErrInvalidValue for errors.Is() compatibility.
	InvalidValueError struct {
		Key     string
		Value   string
		Allowed Domain
	}

	// ConstraintViolationError is returned when the populated configuration breaks
	// a cross-key rule. It wraps ErrConstraintViolation for errors.Is() compatibility.
	ConstraintViolationError struct {
		// Constraint is the constraint name, e.g. "fwavevec-requires-vectorize".
		Constraint string
		// Rule is the human-readable rule, e.g. "solver=fwavevec requires vectorize on".
		Rule string
		// Keys lists the options involved in the rule.
		Keys []string
	}

	// InvalidSchemaError is returned by NewSchema when the catalogue itself is
	// inconsistent. It collects every problem found.
	InvalidSchemaError struct {
		FieldErrors []error
	}
)

// Error implements the error interface for UnknownOptionError.
func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q", e.Key)
}

// Unwrap returns ErrUnknownOption for errors.Is() compatibility.
func (e *UnknownOptionError) Unwrap() error { return ErrUnknownOption }

// Error implements the error interface for InvalidValueError.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for option %q (must be %s)", e.Value, e.Key, e.Allowed)
}

// Unwrap returns ErrInvalidValue for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// Error implements the error interface for ConstraintViolationError.
func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint %q violated: %s (involves: %s)", e.Constraint, e.Rule, strings.Join(e.Keys, ", "))
}

// Unwrap returns ErrConstraintViolation for errors.Is() compatibility.
func (e *ConstraintViolationError) Unwrap() error { return ErrConstraintViolation }

// Error implements the error interface for InvalidSchemaError.
func (e *InvalidSchemaError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid option schema: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid option schema: %d error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidSchema for errors.Is() compatibility.
func (e *InvalidSchemaError) Unwrap() error { return ErrInvalidSchema }
