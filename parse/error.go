// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SyntaxError reports malformed pipeline text.
type SyntaxError struct {
	// Pos is the byte offset of the error in the source.
	Pos int
	// Line and Column are the 1-based position of Pos.
	Line, Column int

	// Expected describes what the parser wanted at Pos, if the
	// error is an unexpected token.
	Expected string
	// Found describes what the parser got instead.
	Found string

	// Msg is the error text when the error is not a token
	// mismatch.
	Msg string

	// Hint is a suggested replacement for a misspelled name.
	Hint string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at line %d, column %d: ", e.Line, e.Column)
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		fmt.Fprintf(&b, "expected %s, found %s", e.Expected, e.Found)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Hint)
	}
	return b.String()
}

func newError(src string, pos int) *SyntaxError {
	line, col := 1, 1
	for i := 0; i < pos && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Pos: pos, Line: line, Column: col}
}

func errorAt(src string, pos int, format string, args ...interface{}) *SyntaxError {
	e := newError(src, pos)
	e.Msg = fmt.Sprintf(format, args...)
	return e
}

// suggest returns the candidate closest to name, or "" if none is
// close enough to be a plausible misspelling.
func suggest(name string, candidates []string) string {
	best, bestDist := "", len(name)/2+1
	if bestDist > 3 {
		bestDist = 3
	}
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist || d == bestDist && best == "" {
			best, bestDist = c, d
		}
	}
	if best == name {
		return ""
	}
	return best
}
