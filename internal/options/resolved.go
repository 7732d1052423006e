// SPDX-License-Identifier: MPL-2.0

package options

import (
	"fmt"
	"iter"
	"maps"
)

// ResolvedConfig is a complete, validated build configuration. Every schema key
// has exactly one value. It has no mutators; accessors return copies.
type ResolvedConfig struct {
	schema *Schema
	values map[string]string
}

// Schema returns the schema the configuration was resolved against.
func (c *ResolvedConfig) Schema() *Schema { return c.schema }

// Get returns the value of key and whether key is part of the schema.
func (c *ResolvedConfig) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Value returns the value of key, or "" for keys outside the schema.
func (c *ResolvedConfig) Value(key string) string {
	return c.values[key]
}

// IsSet reports whether key holds a non-empty value.
func (c *ResolvedConfig) IsSet(key string) bool {
	return c.values[key] != ""
}

// Bool interprets a toggle option.
func (c *ResolvedConfig) Bool(key string) (bool, error) {
	opt, ok := c.schema.Lookup(key)
	if !ok {
		return false, &UnknownOptionError{Key: key}
	}
	if opt.Domain.Kind() != KindToggle {
		return false, fmt.Errorf("%w: %s is %s", ErrNotToggle, key, opt.Domain.Kind())
	}
	v, _ := ParseToggle(c.values[key])
	return v, nil
}

// Len returns the number of options, always equal to the schema size.
func (c *ResolvedConfig) Len() int { return len(c.values) }

// Keys returns the option names in schema declaration order.
func (c *ResolvedConfig) Keys() []string { return c.schema.Names() }

// All iterates over key/value pairs in schema declaration order.
func (c *ResolvedConfig) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, opt := range c.schema.options {
			if !yield(opt.Name, c.values[opt.Name]) {
				return
			}
		}
	}
}

// AsOptions converts the configuration back into raw user input. Resolving the
// result against the same schema yields an equal configuration.
func (c *ResolvedConfig) AsOptions() map[string]string {
	return maps.Clone(c.values)
}

// Equal reports whether both configurations share a schema and hold the same values.
func (c *ResolvedConfig) Equal(other *ResolvedConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.schema == other.schema && maps.Equal(c.values, other.values)
}
