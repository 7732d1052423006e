// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// parseYAML walks the node tree instead of decoding into a map so scalars keep
// their source text ("on" stays "on" and 1.10 stays "1.10").
func parseYAML(data []byte, filename string) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSyntax, filename, err)
	}

	values := make(map[string]string)
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return values, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: top level must be a mapping", ErrSyntax, filename)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		key := keyNode.Value
		if _, dup := values[key]; dup {
			return nil, &DuplicateKeyError{File: filename, Line: keyNode.Line, Key: key}
		}

		switch {
		case valueNode.Kind == yaml.AliasNode:
			return nil, &DynamicValueError{File: filename, Line: valueNode.Line, Key: key, Construct: "alias"}
		case valueNode.Kind == yaml.SequenceNode:
			return nil, &NonScalarValueError{File: filename, Key: key, Kind: "list"}
		case valueNode.Kind == yaml.MappingNode:
			return nil, &NonScalarValueError{File: filename, Key: key, Kind: "mapping"}
		case valueNode.ShortTag() == "!!null" && valueNode.Style == 0:
			return nil, &NonScalarValueError{File: filename, Key: key, Kind: "null"}
		}
		values[key] = valueNode.Value
	}
	return values, nil
}
