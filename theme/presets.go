// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"fmt"
	"strings"

	"github.com/aclements/gramgraph/plotspec"
)

func ptr[T any](v T) *T { return &v }

func text(size float64) Element {
	return Element{Kind: plotspec.TextKind, Text: plotspec.TextElement{Size: ptr(size)}}
}

func line(color string, width float64) Element {
	return Element{Kind: plotspec.LineKind, Line: plotspec.LineElement{Color: ptr(color), Width: ptr(width)}}
}

func rect(fill, color string) Element {
	return Element{Kind: plotspec.RectKind, Rect: plotspec.RectElement{Fill: ptr(fill), Color: ptr(color)}}
}

func withHJust(e Element, h float64) Element {
	e.Text.HJust = ptr(h)
	return e
}

// Default returns the base style sheet: white backgrounds, a thin gray
// grid, and black text. Child slots leave most fields to the root
// "text", "line", and "rect" slots.
func Default() Sheet {
	return Sheet{
		LegendPosition: "right",
		Slots: map[string]Element{
			"text": {Kind: plotspec.TextKind, Text: plotspec.TextElement{
				Size: ptr(11.0), Color: ptr("black"), Family: ptr("sans"), Face: ptr("plain"),
				Angle: ptr(0.0), HJust: ptr(0.5), VJust: ptr(0.5),
			}},
			"line": {Kind: plotspec.LineKind, Line: plotspec.LineElement{
				Color: ptr("black"), Width: ptr(0.5), Linetype: ptr("solid"),
			}},
			"rect": {Kind: plotspec.RectKind, Rect: plotspec.RectElement{
				Fill: ptr("white"), Color: ptr("black"), Width: ptr(0.5),
			}},

			"plot_background":  rect("white", "none"),
			"plot_title":       withHJust(text(14), 0),
			"plot_subtitle":    withHJust(text(11), 0),
			"plot_caption":     withHJust(text(9), 1),
			"panel_background": rect("white", "none"),
			"panel_grid_major": line("gray85", 0.5),
			"panel_grid_minor": {Kind: plotspec.LineKind},
			"axis_text":        text(9),
			"axis_title":       text(11),
			"axis_line":        line("black", 0.5),
			"axis_ticks":       line("black", 0.5),
			"legend_text":      text(9),
			"legend_key":       rect("white", "none"),
			"strip_text":       text(10),
			"strip_background": rect("gray85", "none"),
		},
	}
}

// presetDeltas are the changes each preset makes to Default.
var presetDeltas = map[string]Sheet{
	"gray": {Slots: map[string]Element{
		"panel_background": rect("gray92", "none"),
		"panel_grid_major": line("white", 0.5),
		"axis_line":        Blank,
		"axis_ticks":       line("gray20", 0.5),
	}},
	"bw": {Slots: map[string]Element{
		"panel_background": rect("white", "gray20"),
		"panel_grid_major": line("gray92", 0.5),
		"axis_line":        Blank,
		"strip_background": rect("gray85", "gray20"),
	}},
	"minimal": {Slots: map[string]Element{
		"plot_background":  Blank,
		"panel_background": Blank,
		"axis_line":        Blank,
		"axis_ticks":       Blank,
		"legend_key":       Blank,
		"strip_background": Blank,
	}},
	"classic": {Slots: map[string]Element{
		"panel_grid_major": Blank,
		"panel_grid_minor": Blank,
		"axis_line":        line("black", 0.5),
		"strip_background": rect("white", "black"),
	}},
	"void": {Slots: map[string]Element{
		"line":             Blank,
		"rect":             Blank,
		"plot_background":  Blank,
		"panel_background": Blank,
		"panel_grid_major": Blank,
		"panel_grid_minor": Blank,
		"axis_text":        Blank,
		"axis_title":       Blank,
		"axis_line":        Blank,
		"axis_ticks":       Blank,
		"legend_key":       Blank,
		"strip_background": Blank,
	}},
}

// Preset returns the complete sheet of a named preset, such as
// "minimal". Applying a preset replaces every earlier theme.
func Preset(name string) (Sheet, error) {
	if name == "grey" {
		name = "gray"
	}
	delta, ok := presetDeltas[name]
	if !ok {
		return Sheet{}, fmt.Errorf("unknown theme preset %q (want one of %s)", name, strings.Join(plotspec.Presets, ", "))
	}
	s := Merge(Default(), delta)
	// A preset is a complete theme, so nothing earlier shows
	// through it.
	for slot, e := range s.Slots {
		e.Reset = true
		s.Slots[slot] = e
	}
	return s, nil
}
