// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// parseShell reads literal assignments. The file is parsed as POSIX shell and
// never executed; every statement must be a bare assignment list. Python style
// assignments with blanks around the equals sign (key = 'value') are accepted
// as well.
func parseShell(data []byte, filename string) (map[string]string, error) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	file, err := parser.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	values := make(map[string]string)
	for _, stmt := range file.Stmts {
		line := int(stmt.Pos().Line())
		call, ok := stmt.Cmd.(*syntax.CallExpr)
		if ok {
			call = spacedAssign(call)
		}
		if !ok || len(call.Assigns) == 0 {
			return nil, &DynamicValueError{File: filename, Line: line, Construct: describeCommand(stmt.Cmd)}
		}
		if len(call.Args) > 0 {
			return nil, &DynamicValueError{File: filename, Line: line, Construct: "command with environment prefix"}
		}
		if stmt.Negated || stmt.Background || stmt.Coprocess || len(stmt.Redirs) > 0 {
			return nil, &DynamicValueError{File: filename, Line: line, Construct: "statement operator"}
		}

		for _, as := range call.Assigns {
			key := as.Name.Value
			switch {
			case as.Append:
				return nil, &DynamicValueError{File: filename, Line: line, Key: key, Construct: "append assignment (+=)"}
			case as.Array != nil || as.Index != nil:
				return nil, &DynamicValueError{File: filename, Line: line, Key: key, Construct: "array"}
			}

			value, construct := literalWord(as.Value)
			if construct != "" {
				return nil, &DynamicValueError{File: filename, Line: line, Key: key, Construct: construct}
			}
			if _, dup := values[key]; dup {
				return nil, &DuplicateKeyError{File: filename, Line: line, Key: key}
			}
			values[key] = value
		}
	}
	return values, nil
}

// spacedAssign rewrites the call forms produced by "key = value", "key =value"
// and "key= value" into a plain assignment. Any other call is returned as is.
func spacedAssign(call *syntax.CallExpr) *syntax.CallExpr {
	var name string
	var value *syntax.Word
	switch {
	case len(call.Assigns) == 0 && len(call.Args) == 3 && call.Args[1].Lit() == "=":
		name, value = call.Args[0].Lit(), call.Args[2]
	case len(call.Assigns) == 0 && len(call.Args) == 2:
		value = trimLeadingEquals(call.Args[1])
		if value == nil {
			return call
		}
		name = call.Args[0].Lit()
	case len(call.Assigns) == 1 && len(call.Args) == 1 && call.Assigns[0].Value == nil &&
		!call.Assigns[0].Append && !call.Assigns[0].Naked && call.Assigns[0].Array == nil && call.Assigns[0].Index == nil:
		name, value = call.Assigns[0].Name.Value, call.Args[0]
	default:
		return call
	}
	if !isName(name) {
		return call
	}
	return &syntax.CallExpr{Assigns: []*syntax.Assign{{
		Name:  &syntax.Lit{ValuePos: call.Pos(), ValueEnd: call.Pos(), Value: name},
		Value: value,
	}}}
}

// trimLeadingEquals returns w without its leading "=", or nil when w does not
// start with a literal "=" followed by more text.
func trimLeadingEquals(w *syntax.Word) *syntax.Word {
	if len(w.Parts) == 0 {
		return nil
	}
	lit, ok := w.Parts[0].(*syntax.Lit)
	if !ok || !strings.HasPrefix(lit.Value, "=") {
		return nil
	}
	parts := slices.Clone(w.Parts)
	if rest := lit.Value[1:]; rest == "" {
		parts = parts[1:]
	} else {
		trimmed := *lit
		trimmed.Value = rest
		parts[0] = &trimmed
	}
	if len(parts) == 0 {
		return nil
	}
	return &syntax.Word{Parts: parts}
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// literalWord flattens a word made of literal, single-quoted and double-quoted
// parts. When the word contains an expansion it returns the construct name.
func literalWord(w *syntax.Word) (value, construct string) {
	if w == nil {
		return "", ""
	}

	var sb strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(unescape(p.Value, func(byte) bool { return true }))
		case *syntax.SglQuoted:
			if p.Dollar {
				return "", "ANSI-C quoting ($'...')"
			}
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			if p.Dollar {
				return "", "locale quoting ($\"...\")"
			}
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok {
					return "", describeWordPart(inner)
				}
				sb.WriteString(unescape(lit.Value, isDoubleQuoteEscapable))
			}
		default:
			return "", describeWordPart(part)
		}
	}
	return sb.String(), ""
}

func isDoubleQuoteEscapable(c byte) bool {
	return c == '$' || c == '`' || c == '"' || c == '\\' || c == '\n'
}

// unescape drops a backslash in front of every byte accepted by escapable.
// An escaped newline is a line continuation and disappears entirely.
func unescape(s string, escapable func(byte) bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && escapable(s[i+1]) {
			i++
			if s[i] == '\n' {
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func describeWordPart(part syntax.WordPart) string {
	switch part.(type) {
	case *syntax.ParamExp:
		return "variable expansion"
	case *syntax.CmdSubst:
		return "command substitution"
	case *syntax.ArithmExp:
		return "arithmetic expansion"
	case *syntax.ProcSubst:
		return "process substitution"
	case *syntax.ExtGlob:
		return "glob pattern"
	case *syntax.BraceExp:
		return "brace expansion"
	default:
		return fmt.Sprintf("%T", part)
	}
}

func describeCommand(cmd syntax.Command) string {
	switch c := cmd.(type) {
	case *syntax.CallExpr:
		if len(c.Args) > 0 {
			if lit := c.Args[0].Lit(); lit != "" {
				return fmt.Sprintf("command %q", lit)
			}
		}
		return "command"
	case *syntax.FuncDecl:
		return "function declaration"
	case *syntax.IfClause, *syntax.CaseClause:
		return "conditional"
	case *syntax.WhileClause, *syntax.ForClause:
		return "loop"
	case *syntax.BinaryCmd:
		return "command list"
	default:
		return "statement"
	}
}
