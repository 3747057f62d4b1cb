// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package theme resolves theme presets and theme() calls into one
// fully-populated style sheet.
//
// A Sheet is a partial theme. Sheets combine with Merge, which is
// associative and right-biased: a slot in the right sheet overrides
// the left sheet's slot field by field if both hold the same element
// kind, and replaces it outright otherwise. A blank element always
// wins. Resolve folds a sequence of sheets over Default and fills
// every field that is still unset.
package theme

import (
	"fmt"

	"github.com/aclements/gramgraph/plotspec"
)

// Sheet is a partial style sheet.
type Sheet struct {
	Slots map[string]Element

	// LegendPosition is empty if unset.
	LegendPosition string
}

// Element is one slot of a Sheet. Exactly one of Text, Line, and
// Rect is meaningful, selected by Kind; a BlankKind element has no
// fields.
type Element struct {
	Kind plotspec.ElementKind

	// Reset is set if this element replaced an element of a
	// different kind, so it must not inherit the fields of
	// anything merged before it.
	Reset bool

	Text plotspec.TextElement
	Line plotspec.LineElement
	Rect plotspec.RectElement
}

// Blank is the blank element.
var Blank = Element{Kind: plotspec.BlankKind}

// FromElement converts a parsed theme element.
func FromElement(e plotspec.Element) Element {
	switch e := e.(type) {
	case *plotspec.TextElement:
		return Element{Kind: plotspec.TextKind, Text: *e}
	case *plotspec.LineElement:
		return Element{Kind: plotspec.LineKind, Line: *e}
	case *plotspec.RectElement:
		return Element{Kind: plotspec.RectKind, Rect: *e}
	case *plotspec.BlankElement:
		return Blank
	}
	panic(fmt.Sprintf("unknown theme element %T", e))
}

// FromSpec converts a theme segment to a Sheet. A preset expands to
// its full sheet.
func FromSpec(ts plotspec.ThemeSpec) (Sheet, error) {
	if ts.Preset != "" {
		return Preset(ts.Preset)
	}
	s := Sheet{Slots: make(map[string]Element, len(ts.Elements)), LegendPosition: ts.LegendPosition}
	for slot, e := range ts.Elements {
		s.Slots[slot] = FromElement(e)
	}
	return s, nil
}

// Merge returns b layered over a. Neither argument is modified.
func Merge(a, b Sheet) Sheet {
	out := Sheet{Slots: make(map[string]Element, len(a.Slots)+len(b.Slots)), LegendPosition: a.LegendPosition}
	for slot, e := range a.Slots {
		out.Slots[slot] = e
	}
	for slot, eb := range b.Slots {
		if ea, ok := out.Slots[slot]; ok {
			out.Slots[slot] = mergeElement(ea, eb)
		} else {
			out.Slots[slot] = eb
		}
	}
	if b.LegendPosition != "" {
		out.LegendPosition = b.LegendPosition
	}
	return out
}

func mergeElement(a, b Element) Element {
	switch {
	case b.Kind == plotspec.BlankKind:
		return b
	case a.Kind != b.Kind || a.Kind == plotspec.BlankKind:
		b.Reset = true
		return b
	case b.Reset:
		return b
	}
	out := a
	switch a.Kind {
	case plotspec.TextKind:
		t, u := &out.Text, b.Text
		set(&t.Size, u.Size)
		set(&t.Color, u.Color)
		set(&t.Family, u.Family)
		set(&t.Face, u.Face)
		set(&t.Angle, u.Angle)
		set(&t.HJust, u.HJust)
		set(&t.VJust, u.VJust)
	case plotspec.LineKind:
		l, u := &out.Line, b.Line
		set(&l.Color, u.Color)
		set(&l.Width, u.Width)
		set(&l.Linetype, u.Linetype)
	case plotspec.RectKind:
		r, u := &out.Rect, b.Rect
		set(&r.Fill, u.Fill)
		set(&r.Color, u.Color)
		set(&r.Width, u.Width)
	}
	return out
}

// set overrides *dst with v if v is set.
func set[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}
