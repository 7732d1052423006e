// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

func parseTOML(data []byte, filename string) (map[string]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSyntax, filename, err)
	}

	values := make(map[string]string, len(raw))
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value, err := scalarString(filename, key, raw[key])
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}
