// SPDX-License-Identifier: MPL-2.0

package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/token"

	"github.com/swe-tools/swecfg/internal/options"
)

// SchemaDefinition is the name of the definition written by WriteSchemaCUE.
const SchemaDefinition = "#Options"

// WriteSchemaCUE renders the option catalogue as a closed CUE definition.
// Every field carries its domain with the default marked, so a CUE file
// written by the cue format unifies with it. Cross-option constraints are
// listed as comments.
func WriteSchemaCUE(w io.Writer, s *options.Schema) error {
	body := &ast.StructLit{}
	for _, opt := range s.Options() {
		field := &ast.Field{
			Label: cueLabel(opt.Name),
			Value: domainExpr(opt),
		}
		if opt.Description != "" {
			ast.AddComment(field, docComment(opt.Description))
		}
		body.Elts = append(body.Elts, field)
	}

	def := &ast.Field{
		Label: ast.NewIdent(SchemaDefinition),
		Value: body,
	}

	doc := []string{"SWE build options."}
	if cs := s.Constraints(); len(cs) > 0 {
		doc = append(doc, "", "Constraints:")
		for _, c := range cs {
			doc = append(doc, fmt.Sprintf("  %s: %s", c.Name, c))
		}
	}
	ast.AddComment(def, docComment(doc...))

	out, err := format.Node(&ast.File{Decls: []ast.Decl{def}})
	if err != nil {
		return fmt.Errorf("failed to format CUE schema: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func domainExpr(opt options.Option) ast.Expr {
	var alts []ast.Expr
	hasDefault := false
	lit := func(v string) ast.Expr {
		if v == opt.Default && !hasDefault {
			hasDefault = true
			return &ast.UnaryExpr{Op: token.MUL, X: ast.NewString(v)}
		}
		return ast.NewString(v)
	}

	switch opt.Domain.Kind() {
	case options.KindEnum:
		for _, v := range opt.Domain.Values() {
			alts = append(alts, lit(v))
		}
	case options.KindToggle:
		alts = append(alts, lit(opt.Default), match(togglePattern(opt.Domain.Values())))
	case options.KindPath:
		if opt.Default != "" {
			alts = append(alts, lit(opt.Default))
		}
		alts = append(alts, match(`\S`))
	}

	if opt.Optional {
		alts = append(alts, lit(""))
	}
	return ast.NewBinExpr(token.OR, alts...)
}

func match(pattern string) ast.Expr {
	return &ast.UnaryExpr{Op: token.MAT, X: ast.NewString(pattern)}
}

func togglePattern(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return "^(?i)(" + strings.Join(quoted, "|") + ")$"
}

func docComment(lines ...string) *ast.CommentGroup {
	cg := &ast.CommentGroup{Doc: true}
	for _, line := range lines {
		text := "//"
		if line != "" {
			text += " " + line
		}
		cg.List = append(cg.List, &ast.Comment{Text: text})
	}
	return cg
}
