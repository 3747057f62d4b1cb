// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotspec

import "fmt"

// ThemeSpec is one theme segment: either a named preset or an
// explicit theme() call.
type ThemeSpec struct {
	// Preset is the preset name (such as "minimal") for
	// theme_<name>() segments, and empty for theme().
	Preset string

	// Elements maps slot names to their elements.
	Elements map[string]Element

	// LegendPosition is "right", "left", "top", "bottom", "none",
	// or empty if not given.
	LegendPosition string
}

// Element is a theme slot value. The set of Element types is
// closed: *TextElement, *LineElement, *RectElement, and
// *BlankElement.
//
// Nil fields are unset and fall through to earlier themes or the
// defaults.
type Element interface {
	Kind() ElementKind
	isElement()
}

// ElementKind identifies an Element variant.
type ElementKind int

const (
	TextKind ElementKind = iota
	LineKind
	RectKind
	BlankKind
)

func (k ElementKind) String() string {
	switch k {
	case TextKind:
		return "element_text"
	case LineKind:
		return "element_line"
	case RectKind:
		return "element_rect"
	case BlankKind:
		return "element_blank"
	}
	return fmt.Sprintf("ElementKind(%d)", int(k))
}

type TextElement struct {
	Size   *float64
	Color  *string
	Family *string
	Face   *string
	Angle  *float64
	HJust  *float64
	VJust  *float64
}

type LineElement struct {
	Color    *string
	Width    *float64
	Linetype *string
}

type RectElement struct {
	Fill  *string
	Color *string
	Width *float64
}

// BlankElement suppresses drawing of a slot.
type BlankElement struct{}

func (*TextElement) Kind() ElementKind  { return TextKind }
func (*LineElement) Kind() ElementKind  { return LineKind }
func (*RectElement) Kind() ElementKind  { return RectKind }
func (*BlankElement) Kind() ElementKind { return BlankKind }

func (*TextElement) isElement()  {}
func (*LineElement) isElement()  {}
func (*RectElement) isElement()  {}
func (*BlankElement) isElement() {}

// Slots lists every theme slot and the element kind it holds.
// "line", "rect", and "text" are root slots inherited by the others.
var Slots = map[string]ElementKind{
	"line": LineKind,
	"rect": RectKind,
	"text": TextKind,

	"plot_background":  RectKind,
	"plot_title":       TextKind,
	"plot_subtitle":    TextKind,
	"plot_caption":     TextKind,
	"panel_background": RectKind,
	"panel_grid_major": LineKind,
	"panel_grid_minor": LineKind,
	"axis_text":        TextKind,
	"axis_title":       TextKind,
	"axis_line":        LineKind,
	"axis_ticks":       LineKind,
	"legend_text":      TextKind,
	"legend_key":       RectKind,
	"strip_text":       TextKind,
	"strip_background": RectKind,
}

// LegendPositions are the accepted legend_position values.
var LegendPositions = []string{"right", "left", "top", "bottom", "none"}

// Presets are the accepted theme_<name>() segments.
var Presets = []string{"gray", "grey", "bw", "minimal", "classic", "void"}
