// SPDX-License-Identifier: MPL-2.0

package options

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type (
	// Option is one entry of the schema catalogue.
	Option struct {
		// Name is the unique key used in option files, e.g. "parallelization".
		Name string
		// Domain is the set of legal values.
		Domain Domain
		// Default is used when the key is absent from user input.
		Default string
		// Optional marks keys that may stay unset. An optional key accepts the
		// empty string and defaults to it unless Default says otherwise.
		Optional bool
		// Description is one line of help text.
		Description string
	}

	// Schema is an immutable catalogue of options and constraints.
	// Build one with NewSchema; the zero value is not usable.
	Schema struct {
		options     []Option
		index       map[string]int
		constraints []Constraint
	}
)

// Accepts reports whether value is legal for the option.
func (o Option) Accepts(value string) bool {
	if o.Optional && value == "" {
		return true
	}
	return o.Domain.Contains(value)
}

// NewSchema validates a catalogue and returns it as a Schema. Option order is the
// declaration order used for validation and output; constraints are evaluated
// in the given order.
func NewSchema(opts []Option, constraints []Constraint) (*Schema, error) {
	var errs []error
	s := &Schema{
		options:     slices.Clone(opts),
		index:       make(map[string]int, len(opts)),
		constraints: slices.Clone(constraints),
	}

	for i, opt := range s.options {
		if strings.TrimSpace(opt.Name) == "" {
			errs = append(errs, fmt.Errorf("option #%d has an empty name", i))
			continue
		}
		if _, dup := s.index[opt.Name]; dup {
			errs = append(errs, fmt.Errorf("option %q declared twice", opt.Name))
			continue
		}
		s.index[opt.Name] = i

		if opt.Domain.Kind() == 0 {
			errs = append(errs, fmt.Errorf("option %q has no domain", opt.Name))
			continue
		}
		if opt.Domain.Kind() == KindEnum && len(opt.Domain.values) == 0 {
			errs = append(errs, fmt.Errorf("option %q has an empty enumeration", opt.Name))
			continue
		}
		if !opt.Accepts(opt.Default) {
			errs = append(errs, fmt.Errorf("option %q: default %q is not %s", opt.Name, opt.Default, opt.Domain))
		}
	}

	seen := make(map[string]bool, len(s.constraints))
	for i, c := range s.constraints {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("constraint #%d has an empty name", i))
		} else if seen[c.Name] {
			errs = append(errs, fmt.Errorf("constraint %q declared twice", c.Name))
		}
		seen[c.Name] = true
		if c.When.holds == nil || c.Then.holds == nil {
			errs = append(errs, fmt.Errorf("constraint %q is missing a predicate", c.Name))
		}
		for _, k := range c.Keys() {
			if _, ok := s.index[k]; !ok {
				errs = append(errs, fmt.Errorf("constraint %q references unknown option %q", c.Name, k))
			}
		}
	}

	if len(errs) > 0 {
		return nil, &InvalidSchemaError{FieldErrors: errs}
	}
	return s, nil
}

// Options returns the catalogue in declaration order.
func (s *Schema) Options() []Option { return slices.Clone(s.options) }

// Constraints returns the constraints in evaluation order.
func (s *Schema) Constraints() []Constraint { return slices.Clone(s.constraints) }

// Lookup returns the option named key.
func (s *Schema) Lookup(key string) (Option, bool) {
	i, ok := s.index[key]
	if !ok {
		return Option{}, false
	}
	return s.options[i], true
}

// Names returns every option name in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.options))
	for i, opt := range s.options {
		names[i] = opt.Name
	}
	return names
}

// Defaults returns the default value of every option.
func (s *Schema) Defaults() map[string]string {
	defaults := make(map[string]string, len(s.options))
	for _, opt := range s.options {
		defaults[opt.Name] = opt.Default
	}
	return defaults
}

// Resolve merges user over the schema defaults and validates the result.
//
// Unknown keys are reported first (in sorted order), then domain violations in
// declaration order, then constraint violations in evaluation order. Only the
// first failure is returned.
func (s *Schema) Resolve(user map[string]string) (*ResolvedConfig, error) {
	for _, key := range slices.Sorted(maps.Keys(user)) {
		if _, ok := s.index[key]; !ok {
			return nil, &UnknownOptionError{Key: key}
		}
	}

	values := make(map[string]string, len(s.options))
	for _, opt := range s.options {
		value, ok := user[opt.Name]
		if !ok {
			value = opt.Default
		}
		if !opt.Accepts(value) {
			return nil, &InvalidValueError{Key: opt.Name, Value: value, Allowed: opt.Domain}
		}
		values[opt.Name] = value
	}

	cfg := &ResolvedConfig{schema: s, values: values}
	for _, c := range s.constraints {
		if !c.Holds(cfg.Value) {
			return nil, &ConstraintViolationError{Constraint: c.Name, Rule: c.String(), Keys: c.Keys()}
		}
	}
	return cfg, nil
}
