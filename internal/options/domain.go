// SPDX-License-Identifier: MPL-2.0

package options

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// KindEnum accepts one of a fixed set of values (case-sensitive).
	KindEnum DomainKind = iota + 1
	// KindToggle accepts a boolean-like token such as yes/no or on/off.
	KindToggle
	// KindPath accepts any non-empty string. Existence is not checked.
	// No domain accepts a value with leading or trailing whitespace.
	KindPath
)

var (
	trueTokens  = []string{"y", "yes", "t", "true", "1", "on", "all"}
	falseTokens = []string{"n", "no", "f", "false", "0", "off", "none"}
)

type (
	// DomainKind classifies how an option value is validated.
	DomainKind int

	// Domain is the set of legal values for one option.
	Domain struct {
		kind   DomainKind
		values []string
	}
)

// Enum returns a domain accepting exactly the given values.
func Enum(values ...string) Domain {
	return Domain{kind: KindEnum, values: slices.Clone(values)}
}

// Toggle returns a domain accepting boolean-like tokens.
func Toggle() Domain {
	return Domain{kind: KindToggle}
}

// Path returns a domain accepting any non-empty string.
func Path() Domain {
	return Domain{kind: KindPath}
}

// String returns the name of the DomainKind.
func (k DomainKind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindToggle:
		return "toggle"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("DomainKind(%d)", int(k))
	}
}

// Kind returns the domain kind.
func (d Domain) Kind() DomainKind { return d.kind }

// Values returns the accepted values: the enumeration for enums, every recognized
// token for toggles, and nil for paths.
func (d Domain) Values() []string {
	switch d.kind {
	case KindEnum:
		return slices.Clone(d.values)
	case KindToggle:
		return slices.Concat(trueTokens, falseTokens)
	default:
		return nil
	}
}

// Contains reports whether value is legal in this domain.
func (d Domain) Contains(value string) bool {
	if value != strings.TrimSpace(value) {
		return false
	}
	switch d.kind {
	case KindEnum:
		return slices.Contains(d.values, value)
	case KindToggle:
		_, ok := ParseToggle(value)
		return ok
	case KindPath:
		return value != ""
	default:
		return false
	}
}

// String describes the domain for diagnostics.
func (d Domain) String() string {
	switch d.kind {
	case KindEnum:
		return "one of " + strings.Join(d.values, ", ")
	case KindToggle:
		return "a boolean (" + strings.Join(d.Values(), ", ") + ")"
	case KindPath:
		return "a non-empty path"
	default:
		return "an undefined domain"
	}
}

// ParseToggle interprets a boolean-like token. Matching is case-insensitive
// and padded tokens are not recognized.
// The second result is false when the token is not recognized.
func ParseToggle(token string) (value, ok bool) {
	t := strings.ToLower(token)
	switch {
	case slices.Contains(trueTokens, t):
		return true, true
	case slices.Contains(falseTokens, t):
		return false, true
	default:
		return false, false
	}
}
