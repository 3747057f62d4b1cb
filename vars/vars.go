// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vars expands $name variable references in pipeline text.
//
// Expansion runs before parsing and understands just enough of the
// pipeline syntax to know whether a reference sits inside a string
// literal. Inside a string, the value is spliced in with quotes and
// backslashes escaped. Elsewhere, a value that reads as a number,
// true/false, or an identifier is spliced in as is, and any other
// value becomes a string literal.
package vars

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// UndefinedVariableError reports a reference to a variable that has
// no definition.
type UndefinedVariableError struct {
	Name string
	Pos  int // byte offset of the '$'
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("variable '$%s' not defined", e.Name)
}

// Expand replaces every $name in src with defs[name]. A '$' that is
// not followed by an identifier is kept as is. If any references are
// undefined, Expand returns an error combining an
// *UndefinedVariableError for each one, in source order.
func Expand(src string, defs map[string]string) (string, error) {
	if !strings.Contains(src, "$") {
		return src, nil
	}
	var (
		out      strings.Builder
		err      error
		inString bool
		reported = map[string]bool{}
	)
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString && c == '\\' && i+1 < len(src):
			out.WriteByte(c)
			i++
			out.WriteByte(src[i])
			continue
		case c == '"':
			inString = !inString
		case c == '$':
			j := i + 1
			for j < len(src) && isIdentByte(src[j], j == i+1) {
				j++
			}
			if j == i+1 {
				break
			}
			name := src[i+1 : j]
			val, ok := defs[name]
			if !ok {
				if !reported[name] {
					reported[name] = true
					err = multierr.Append(err, &UndefinedVariableError{Name: name, Pos: i})
				}
			} else if inString {
				out.WriteString(escape(val))
			} else {
				out.WriteString(literal(val))
			}
			i = j - 1
			continue
		}
		out.WriteByte(c)
	}
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return !first
	}
	return false
}

// literal returns val as pipeline text outside a string literal.
func literal(val string) string {
	if val == "true" || val == "false" {
		return val
	}
	if _, err := strconv.ParseFloat(val, 64); err == nil && val != "" && !strings.ContainsAny(val, "xXpP_nN") {
		return val
	}
	if isIdent(val) {
		return val
	}
	return strconv.Quote(val)
}

// escape returns val spliced into an existing string literal.
func escape(val string) string {
	q := strconv.Quote(val)
	return q[1 : len(q)-1]
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i], i == 0) {
			return false
		}
	}
	return true
}

// Parse parses "name=value" definitions, as given on a command line.
func Parse(defs []string) (map[string]string, error) {
	m := make(map[string]string, len(defs))
	for _, d := range defs {
		name, val, ok := strings.Cut(d, "=")
		if !ok || !isIdent(name) {
			return nil, fmt.Errorf("malformed variable definition %q: want name=value", d)
		}
		m[name] = val
	}
	return m, nil
}
