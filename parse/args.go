// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strings"

	"github.com/aclements/gramgraph/plotspec"
)

// args gives typed access to the arguments of one segment. Every
// accessor records its key so finish can reject arguments that no
// accessor asked for.
type args struct {
	p     *parser
	seg   *segment
	tried []string
}

// lookup returns the argument named key, or nil.
func (a *args) lookup(key string) *arg {
	a.tried = append(a.tried, key)
	for _, ar := range a.seg.args {
		if ar.key.text == key {
			ar.used = true
			return ar
		}
	}
	return nil
}

// get returns the value of key, which must have the given kind, or
// nil if key is absent.
func (a *args) get(key string, kind valueKind) *value {
	ar := a.lookup(key)
	if ar == nil {
		return nil
	}
	if ar.val.kind != kind {
		a.typeError(ar.val, kind)
	}
	return ar.val
}

func (a *args) typeError(v *value, want ...valueKind) {
	var names []string
	for _, k := range want {
		names = append(names, valueKindNames[k])
	}
	e := newError(a.p.src, v.tok.pos)
	e.Expected = strings.Join(names, " or ")
	e.Found = fmt.Sprintf("%s %s", valueKindNames[v.kind], v.tok.text)
	a.p.fail(e)
}

// finish rejects arguments that were never looked up.
func (a *args) finish() {
	for _, ar := range a.seg.args {
		if !ar.used {
			e := errorAt(a.p.src, ar.key.pos, "unknown argument %q for %s()", ar.key.text, a.seg.name.text)
			e.Hint = suggest(ar.key.text, a.tried)
			a.p.fail(e)
		}
	}
}

// column returns a column name given as an identifier or string.
func (a *args) column(key string) string {
	ar := a.lookup(key)
	if ar == nil {
		return ""
	}
	switch ar.val.kind {
	case valIdent:
		return ar.val.tok.text
	case valString:
		if ar.val.tok.str == "" {
			a.p.errorf(ar.val.tok.pos, "empty column name for %s", key)
		}
		return ar.val.tok.str
	}
	a.typeError(ar.val, valIdent, valString)
	return ""
}

// colorAes returns a string-valued aesthetic: a string literal is
// fixed and an identifier maps a column.
func (a *args) colorAes(key string) *plotspec.AesValue[string] {
	ar := a.lookup(key)
	if ar == nil {
		return nil
	}
	switch ar.val.kind {
	case valIdent:
		return plotspec.Mapped[string](ar.val.tok.text)
	case valString:
		return plotspec.Fixed(ar.val.tok.str)
	}
	a.typeError(ar.val, valString, valIdent)
	return nil
}

// numAes returns a numeric aesthetic: a number in [lo, hi] is fixed
// and an identifier maps a column.
func (a *args) numAes(key string, lo, hi float64) *plotspec.AesValue[float64] {
	ar := a.lookup(key)
	if ar == nil {
		return nil
	}
	switch ar.val.kind {
	case valIdent:
		return plotspec.Mapped[float64](ar.val.tok.text)
	case valNumber:
		a.checkRange(key, ar.val, lo, hi)
		return plotspec.Fixed(ar.val.tok.num)
	}
	a.typeError(ar.val, valNumber, valIdent)
	return nil
}

func (a *args) checkRange(key string, v *value, lo, hi float64) {
	if n := v.tok.num; n < lo || n > hi {
		a.p.errorf(v.tok.pos, "%s %s is out of range", key, v.tok.text)
	}
}

// fraction returns a width in (0, 1], or 0 if absent.
func (a *args) fraction(key string) float64 {
	v := a.get(key, valNumber)
	if v == nil {
		return 0
	}
	if v.tok.num <= 0 || v.tok.num > 1 {
		a.p.errorf(v.tok.pos, "%s must be in (0, 1]", key)
	}
	return v.tok.num
}

func (a *args) str(key string) string {
	if v := a.get(key, valString); v != nil {
		return v.tok.str
	}
	return ""
}

func (a *args) strPtr(key string) *string {
	if v := a.get(key, valString); v != nil {
		s := v.tok.str
		return &s
	}
	return nil
}

func (a *args) numPtr(key string, lo, hi float64) *float64 {
	if v := a.get(key, valNumber); v != nil {
		a.checkRange(key, v, lo, hi)
		n := v.tok.num
		return &n
	}
	return nil
}

func (a *args) boolean(key string) bool {
	if v := a.get(key, valBool); v != nil {
		return v.tok.text == "true"
	}
	return false
}

// oneOf returns a string argument that must be one of choices, or
// "" if absent.
func (a *args) oneOf(key string, choices ...string) string {
	v := a.get(key, valString)
	if v == nil {
		return ""
	}
	for _, c := range choices {
		if v.tok.str == c {
			return c
		}
	}
	e := errorAt(a.p.src, v.tok.pos, "%s must be one of %s", key, quoteList(choices))
	e.Hint = suggest(v.tok.str, choices)
	a.p.fail(e)
	return ""
}

func (a *args) position(def plotspec.Position) plotspec.Position {
	s := a.oneOf("position", "identity", "dodge", "stack")
	if s == "" {
		return def
	}
	pos, _ := plotspec.ParsePosition(s)
	return pos
}

func quoteList(choices []string) string {
	q := make([]string, len(choices))
	for i, c := range choices {
		q[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(q, ", ")
}
