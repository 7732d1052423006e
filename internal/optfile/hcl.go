// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

func parseHCL(data []byte, filename string) (map[string]string, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unexpected HCL body", ErrSyntax, filename)
	}
	if len(body.Blocks) > 0 {
		block := body.Blocks[0]
		return nil, &NonScalarValueError{File: filename, Key: block.Type, Kind: "block"}
	}

	values := make(map[string]string, len(body.Attributes))
	attrs := slices.SortedFunc(maps.Values(body.Attributes), func(a, b *hclsyntax.Attribute) int {
		return cmp.Compare(a.SrcRange.Start.Byte, b.SrcRange.Start.Byte)
	})
	for _, attr := range attrs {
		key := attr.Name
		line := attr.SrcRange.Start.Line
		if construct := hclDynamicConstruct(attr.Expr); construct != "" {
			return nil, &DynamicValueError{File: filename, Line: line, Key: key, Construct: construct}
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, diags)
		}
		value, err := ctyScalar(filename, key, val)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

// hclDynamicConstruct names the first non-literal construct in expr, or
// returns "" when the expression is a constant.
func hclDynamicConstruct(expr hclsyntax.Expression) string {
	if len(expr.Variables()) > 0 {
		return "variable reference"
	}
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr, *hclsyntax.TupleConsExpr, *hclsyntax.ObjectConsExpr:
		return ""
	case *hclsyntax.TemplateExpr:
		if e.IsStringLiteral() {
			return ""
		}
		return "template interpolation"
	case *hclsyntax.TemplateWrapExpr:
		return "template interpolation"
	case *hclsyntax.UnaryOpExpr:
		if _, ok := e.Val.(*hclsyntax.LiteralValueExpr); ok && e.Op == hclsyntax.OpNegate {
			return ""
		}
		return "expression"
	case *hclsyntax.FunctionCallExpr:
		return "function call"
	case *hclsyntax.ConditionalExpr:
		return "conditional"
	default:
		return "expression"
	}
}

func ctyScalar(file, key string, val cty.Value) (string, error) {
	if val.IsNull() {
		return "", &NonScalarValueError{File: file, Key: key, Kind: "null"}
	}
	switch ty := val.Type(); ty {
	case cty.String:
		return val.AsString(), nil
	case cty.Bool:
		if val.True() {
			return "true", nil
		}
		return "false", nil
	case cty.Number:
		return val.AsBigFloat().Text('f', -1), nil
	default:
		return "", &NonScalarValueError{File: file, Key: key, Kind: ty.FriendlyName()}
	}
}
