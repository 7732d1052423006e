// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// scalarString renders a decoded TOML value as option text.
func scalarString(file, key string, v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case int:
		return strconv.Itoa(val), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case *big.Int:
		return val.String(), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return val.String(), nil
	case nil:
		return "", &NonScalarValueError{File: file, Key: key, Kind: "null"}
	case []any:
		return "", &NonScalarValueError{File: file, Key: key, Kind: "list"}
	case map[string]any:
		return "", &NonScalarValueError{File: file, Key: key, Kind: "table"}
	default:
		return "", &NonScalarValueError{File: file, Key: key, Kind: fmt.Sprintf("%T", v)}
	}
}
