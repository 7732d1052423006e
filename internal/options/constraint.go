// SPDX-License-Identifier: MPL-2.0

package options

import (
	"fmt"
	"slices"
	"strings"
)

type (
	// Predicate is a named test over a fully populated option map.
	Predicate struct {
		keys  []string
		desc  string
		holds func(get func(string) string) bool
	}

	// Constraint is a declarative cross-key rule: whenever When holds, Then must hold.
	Constraint struct {
		Name string
		When Predicate
		Then Predicate
	}
)

// Equals holds when key has exactly value.
func Equals(key, value string) Predicate {
	return Predicate{
		keys: []string{key},
		desc: key + "=" + value,
		holds: func(get func(string) string) bool {
			return get(key) == value
		},
	}
}

// OneOf holds when key has any of values.
func OneOf(key string, values ...string) Predicate {
	values = slices.Clone(values)
	return Predicate{
		keys: []string{key},
		desc: fmt.Sprintf("%s in {%s}", key, strings.Join(values, ", ")),
		holds: func(get func(string) string) bool {
			return slices.Contains(values, get(key))
		},
	}
}

// Enabled holds when key carries a true toggle token.
func Enabled(key string) Predicate {
	return Predicate{
		keys: []string{key},
		desc: key + " on",
		holds: func(get func(string) string) bool {
			on, ok := ParseToggle(get(key))
			return ok && on
		},
	}
}

// IsSet holds when key has a non-empty value.
func IsSet(key string) Predicate {
	return Predicate{
		keys: []string{key},
		desc: key + " set",
		holds: func(get func(string) string) bool {
			return get(key) != ""
		},
	}
}

// Keys returns the options the predicate reads.
func (p Predicate) Keys() []string { return slices.Clone(p.keys) }

// String returns the predicate in rule notation, e.g. "solver=fwavevec".
func (p Predicate) String() string { return p.desc }

// Implies builds a constraint requiring then whenever when holds.
func Implies(name string, when, then Predicate) Constraint {
	return Constraint{Name: name, When: when, Then: then}
}

// Keys returns the involved options in rule order without duplicates.
func (c Constraint) Keys() []string {
	keys := make([]string, 0, len(c.When.keys)+len(c.Then.keys))
	for _, k := range slices.Concat(c.When.keys, c.Then.keys) {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// String returns the rule, e.g. "solver=fwavevec requires vectorize on".
func (c Constraint) String() string {
	return c.When.desc + " requires " + c.Then.desc
}

// Holds evaluates the constraint against a lookup function.
func (c Constraint) Holds(get func(string) string) bool {
	if c.When.holds == nil || c.Then.holds == nil {
		return false
	}
	return !c.When.holds(get) || c.Then.holds(get)
}
