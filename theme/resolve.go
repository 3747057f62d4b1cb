// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"fmt"
	"image/color"

	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/plotspec"
)

// Text is a resolved text style. Sizes are in points.
type Text struct {
	Blank        bool
	Size         float64
	Color        color.RGBA
	Family, Face string
	Angle        float64
	HJust, VJust float64
}

// Line is a resolved line style.
type Line struct {
	Blank    bool
	Color    color.RGBA
	Width    float64
	Linetype string
}

// Rect is a resolved rectangle style.
type Rect struct {
	Blank bool
	Fill  color.RGBA
	Color color.RGBA
	Width float64
}

// Resolved is a fully-populated theme.
type Resolved struct {
	PlotBackground  Rect
	PlotTitle       Text
	PlotSubtitle    Text
	PlotCaption     Text
	PanelBackground Rect
	GridMajor       Line
	GridMinor       Line
	AxisText        Text
	AxisTitle       Text
	AxisLine        Line
	AxisTicks       Line
	LegendText      Text
	LegendKey       Rect
	StripText       Text
	StripBackground Rect

	// LegendPosition is one of plotspec.LegendPositions.
	LegendPosition string
}

// Fallbacks for fields that even the root slots leave unset, which
// happens only if a root slot was blanked.
var (
	fallbackText = plotspec.TextElement{
		Size: ptr(11.0), Color: ptr("black"), Family: ptr("sans"), Face: ptr("plain"),
		Angle: ptr(0.0), HJust: ptr(0.5), VJust: ptr(0.5),
	}
	fallbackLine = plotspec.LineElement{Color: ptr("black"), Width: ptr(0.5), Linetype: ptr("solid")}
	fallbackRect = plotspec.RectElement{Fill: ptr("white"), Color: ptr("black"), Width: ptr(0.5)}
)

// Resolve folds sheets over Default, in order, and fills every unset
// field: from the root "text", "line", or "rect" slot, then from
// built-in fallbacks. The minor grid inherits from the major grid at
// half its width.
func Resolve(sheets ...Sheet) (*Resolved, error) {
	acc := Default()
	for _, s := range sheets {
		acc = Merge(acc, s)
	}
	r := &resolver{slots: acc.Slots}
	out := &Resolved{
		PlotBackground:  r.rect("plot_background"),
		PlotTitle:       r.text("plot_title"),
		PlotSubtitle:    r.text("plot_subtitle"),
		PlotCaption:     r.text("plot_caption"),
		PanelBackground: r.rect("panel_background"),
		GridMajor:       r.line("panel_grid_major"),
		AxisText:        r.text("axis_text"),
		AxisTitle:       r.text("axis_title"),
		AxisLine:        r.line("axis_line"),
		AxisTicks:       r.line("axis_ticks"),
		LegendText:      r.text("legend_text"),
		LegendKey:       r.rect("legend_key"),
		StripText:       r.text("strip_text"),
		StripBackground: r.rect("strip_background"),
		LegendPosition:  acc.LegendPosition,
	}
	out.GridMinor = r.minorGrid()
	if r.err != nil {
		return nil, r.err
	}
	return out, nil
}

type resolver struct {
	slots map[string]Element
	err   error
}

func (r *resolver) color(slot string, s *string) color.RGBA {
	c, err := palette.ParseColor(*s)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("theme %s: %w", slot, err)
	}
	return c
}

// textFields returns the text fields of slot with inheritance applied.
func (r *resolver) textFields(slot string) (plotspec.TextElement, bool) {
	e := r.slots[slot]
	if e.Kind == plotspec.BlankKind {
		return plotspec.TextElement{}, false
	}
	t := e.Text
	for _, parent := range []plotspec.TextElement{r.slots["text"].Text, fallbackText} {
		setUnset(&t.Size, parent.Size)
		setUnset(&t.Color, parent.Color)
		setUnset(&t.Family, parent.Family)
		setUnset(&t.Face, parent.Face)
		setUnset(&t.Angle, parent.Angle)
		setUnset(&t.HJust, parent.HJust)
		setUnset(&t.VJust, parent.VJust)
	}
	return t, true
}

func (r *resolver) text(slot string) Text {
	t, ok := r.textFields(slot)
	if !ok {
		return Text{Blank: true}
	}
	return Text{
		Size:   *t.Size,
		Color:  r.color(slot, t.Color),
		Family: *t.Family,
		Face:   *t.Face,
		Angle:  *t.Angle,
		HJust:  *t.HJust,
		VJust:  *t.VJust,
	}
}

func (r *resolver) lineFields(l plotspec.LineElement, parents ...plotspec.LineElement) plotspec.LineElement {
	for _, parent := range parents {
		setUnset(&l.Color, parent.Color)
		setUnset(&l.Width, parent.Width)
		setUnset(&l.Linetype, parent.Linetype)
	}
	return l
}

func (r *resolver) makeLine(slot string, l plotspec.LineElement) Line {
	return Line{Color: r.color(slot, l.Color), Width: *l.Width, Linetype: *l.Linetype}
}

func (r *resolver) line(slot string) Line {
	e := r.slots[slot]
	if e.Kind == plotspec.BlankKind {
		return Line{Blank: true}
	}
	return r.makeLine(slot, r.lineFields(e.Line, r.slots["line"].Line, fallbackLine))
}

func (r *resolver) minorGrid() Line {
	minor, major := r.slots["panel_grid_minor"], r.slots["panel_grid_major"]
	if minor.Kind == plotspec.BlankKind {
		return Line{Blank: true}
	}
	l := minor.Line
	if major.Kind == plotspec.LineKind {
		m := r.lineFields(major.Line, r.slots["line"].Line, fallbackLine)
		if l.Width == nil {
			l.Width = ptr(*m.Width / 2)
		}
		l = r.lineFields(l, m)
	}
	return r.makeLine("panel_grid_minor", r.lineFields(l, r.slots["line"].Line, fallbackLine))
}

func (r *resolver) rect(slot string) Rect {
	e := r.slots[slot]
	if e.Kind == plotspec.BlankKind {
		return Rect{Blank: true}
	}
	x := e.Rect
	for _, parent := range []plotspec.RectElement{r.slots["rect"].Rect, fallbackRect} {
		setUnset(&x.Fill, parent.Fill)
		setUnset(&x.Color, parent.Color)
		setUnset(&x.Width, parent.Width)
	}
	return Rect{Fill: r.color(slot, x.Fill), Color: r.color(slot, x.Color), Width: *x.Width}
}

// setUnset sets *dst to v if *dst is unset.
func setUnset[T any](dst **T, v *T) {
	if *dst == nil {
		*dst = v
	}
}
