// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	_ "embed"
	"fmt"
	"strconv"

	"cuelang.org/go/cue"

	"github.com/swe-tools/swecfg/pkg/cueutil"
)

//go:embed optfile_schema.cue
var optfileSchema []byte

func parseCUE(data []byte, filename string) (map[string]string, error) {
	result, err := cueutil.ParseAndDecode[map[string]any](optfileSchema, data, "#OptionFile",
		cueutil.WithFilename(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	iter, err := result.Unified.Fields()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, cueutil.FormatError(err, filename))
	}

	values := make(map[string]string)
	for iter.Next() {
		key := iter.Selector().Unquoted()
		value, err := cueScalar(filename, key, iter.Value())
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

func cueScalar(file, key string, v cue.Value) (string, error) {
	switch kind := v.Kind(); kind {
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case cue.IntKind:
		i, err := v.Int(nil)
		if err != nil {
			return "", err
		}
		return i.String(), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case cue.StructKind:
		return "", &NonScalarValueError{File: file, Key: key, Kind: "struct"}
	case cue.ListKind:
		return "", &NonScalarValueError{File: file, Key: key, Kind: "list"}
	default:
		return "", &NonScalarValueError{File: file, Key: key, Kind: kind.String()}
	}
}
