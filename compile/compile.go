// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile lowers a transformed, scaled, and themed plot to a
// scene.
//
// Every geometry becomes a handful of primitives: lines and smooths
// become polylines, points become markers, bars, histograms, and
// boxes become rectangles and whisker lines, and ribbons, confidence
// bands, and violins become polygons. Decorations are emitted around
// the data in a fixed order: backgrounds, minor grid, major grid,
// data, axis lines, ticks, axis text, titles, and finally the legend.
package compile

import (
	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/resolve"
	"github.com/aclements/gramgraph/scales"
	"github.com/aclements/gramgraph/scene"
	"github.com/aclements/gramgraph/stat"
	"github.com/aclements/gramgraph/theme"
)

// Input is everything the compiler consumes.
type Input struct {
	Plot   *resolve.Plot
	Result *stat.Result
	Scales *scales.Scales
	Theme  *theme.Resolved
	// Labels may be nil.
	Labels *plotspec.Labels

	// Width and Height are the canvas size in pixels.
	Width, Height float64

	// Palette colors the groups. nil means palette.Default().
	Palette *palette.Palette
}

type compiler struct {
	plot   *resolve.Plot
	res    *stat.Result
	scales *scales.Scales
	theme  *theme.Resolved
	labels plotspec.Labels
	pal    *palette.Palette

	scene *scene.Scene

	style  map[*stat.Series]style
	ranges map[string][2]float64

	legendTitle string
	frame       frame
	panels      []*panel
}

// Compile builds the scene of a plot. It fails only on styling values
// that cannot be interpreted, such as an unknown color name.
func Compile(in Input) (*scene.Scene, error) {
	c := &compiler{
		plot:   in.Plot,
		res:    in.Result,
		scales: in.Scales,
		theme:  in.Theme,
		pal:    in.Palette,
		scene:  &scene.Scene{Width: in.Width, Height: in.Height},
		style:  map[*stat.Series]style{},
		ranges: map[string][2]float64{},
	}
	if c.pal == nil {
		c.pal = palette.Default()
	}
	if in.Labels != nil {
		c.labels = *in.Labels
	}
	if err := c.styles(); err != nil {
		return nil, err
	}
	c.layout()

	th := c.theme
	if !th.PlotBackground.Blank {
		canvas := scene.Bounds{Max: scene.Vec{X: c.scene.Width, Y: c.scene.Height}}
		c.scene.Add(&scene.Rect{Bounds: canvas, Style: rectStyle(th.PlotBackground)})
	}
	for _, p := range c.panels {
		if !th.PanelBackground.Blank {
			c.scene.Add(&scene.Rect{Bounds: p.co.b, Style: rectStyle(th.PanelBackground)})
		}
		if p.strip != (scene.Bounds{}) && !th.StripBackground.Blank {
			c.scene.Add(&scene.Rect{Bounds: p.strip, Style: rectStyle(th.StripBackground)})
		}
	}
	for _, p := range c.panels {
		c.grid(p, th.GridMinor, p.hMinor, p.vMinor)
	}
	for _, p := range c.panels {
		c.grid(p, th.GridMajor, tickValues(p.hTicks), tickValues(p.vTicks))
	}
	for i, p := range c.panels {
		for _, s := range c.res.Panels[i].Series {
			c.lower(p, s)
		}
	}
	for _, p := range c.panels {
		c.axisLines(p)
	}
	for _, p := range c.panels {
		c.ticks(p)
	}
	for _, p := range c.panels {
		c.axisText(p)
	}
	c.titles()
	c.legend()
	return c.scene, nil
}

func rectStyle(r theme.Rect) scene.RectStyle {
	return scene.RectStyle{Fill: r.Fill, Stroke: r.Color, Width: r.Width}
}

// axisTitles returns the default x and y axis titles: the labs()
// labels, or else the first layer's columns.
func (c *compiler) axisTitles() (x, y string) {
	x, y = c.labels.X, c.labels.Y
	if len(c.plot.Layers) == 0 {
		return x, y
	}
	l := c.plot.Layers[0]
	if x == "" {
		x = l.X
	}
	if y == "" {
		y = l.Y
	}
	if y == "" {
		switch l.Geom.(type) {
		case *plotspec.Histogram, *plotspec.Bar:
			y = "count"
		default:
			y = l.YMax
		}
	}
	return x, y
}

// titles draws the strip titles, plot titles, and axis titles.
func (c *compiler) titles() {
	th := c.theme
	for _, p := range c.panels {
		if p.strip == (scene.Bounds{}) {
			continue
		}
		at := scene.Vec{X: (p.strip.Min.X + p.strip.Max.X) / 2, Y: (p.strip.Min.Y + p.strip.Max.Y) / 2}
		c.scene.Add(&scene.Text{At: at, Text: p.title, Style: textStyle(th.StripText, 0.5, 0.5)})
	}

	f := &c.frame
	lines := func(b *box, ls []string, t theme.Text) {
		if b == nil {
			return
		}
		r := b.bounds(margin, margin)
		for i, line := range ls {
			at := scene.Vec{X: r.Min.X + t.HJust*r.Width(), Y: r.Min.Y + float64(i)*t.Size*lineHeight}
			c.scene.Add(&scene.Text{At: at, Text: line, Style: textStyle(t, t.HJust, 0)})
		}
	}
	lines(f.titleBox, f.title, th.PlotTitle)
	lines(f.subtitleBox, f.subtitle, th.PlotSubtitle)
	lines(f.captionBox, f.caption, th.PlotCaption)

	if f.xTitleBox != nil {
		r := f.xTitleBox.bounds(margin, margin)
		at := scene.Vec{X: (r.Min.X + r.Max.X) / 2, Y: r.Min.Y + gap/2}
		c.scene.Add(&scene.Text{At: at, Text: f.xTitle, Style: textStyle(th.AxisTitle, 0.5, 0)})
	}
	if f.yTitleBox != nil {
		r := f.yTitleBox.bounds(margin, margin)
		at := scene.Vec{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
		st := textStyle(th.AxisTitle, 0.5, 0.5)
		if st.Angle == 0 {
			st.Angle = 90
		}
		c.scene.Add(&scene.Text{At: at, Text: f.yTitle, Style: st})
	}
}

// legend draws the legend keys and labels.
func (c *compiler) legend() {
	pos := c.legendPosition()
	if pos == "none" {
		c.scene.Legend = nil
		return
	}
	th := c.theme
	b := c.frame.legendBox.bounds(margin, margin)
	vertical := pos == "left" || pos == "right"
	row := c.legendRow()
	x, y := b.Min.X+gap, b.Min.Y
	if vertical {
		_, h := c.legendSize(pos)
		if h < b.Height() {
			y += (b.Height() - h) / 2
		}
	}
	if titleH := c.legendTitleHeight(); titleH > 0 {
		if vertical {
			c.scene.Add(&scene.Text{At: scene.Vec{X: x, Y: y}, Text: c.legendTitle, Style: textStyle(th.AxisTitle, 0, 0)})
			y += titleH
		} else {
			c.scene.Add(&scene.Text{At: scene.Vec{X: x, Y: y + row/2}, Text: c.legendTitle, Style: textStyle(th.AxisTitle, 0, 0.5)})
			x += textWidth(c.legendTitle, th.AxisTitle.Size) + gap
		}
	}
	for _, e := range c.scene.Legend {
		key := scene.Bounds{
			Min: scene.Vec{X: x, Y: y + (row-keySize)/2},
			Max: scene.Vec{X: x + keySize, Y: y + (row+keySize)/2},
		}
		c.key(key, e)
		at := scene.Vec{X: key.Max.X + gap, Y: y + row/2}
		c.scene.Add(&scene.Text{At: at, Text: e.Label, Style: textStyle(th.LegendText, 0, 0.5)})
		if vertical {
			y += row
		} else {
			x += c.entryWidth(e) + 2*gap
		}
	}
}

// key draws the swatch of a legend entry.
func (c *compiler) key(b scene.Bounds, e scene.LegendEntry) {
	if k := c.theme.LegendKey; !k.Blank {
		c.scene.Add(&scene.Rect{Bounds: b, Style: rectStyle(k)})
	}
	mid := scene.Vec{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
	switch e.Kind {
	case scene.SwatchRect:
		inner := scene.Bounds{
			Min: scene.Vec{X: b.Min.X + 2, Y: b.Min.Y + 2},
			Max: scene.Vec{X: b.Max.X - 2, Y: b.Max.Y - 2},
		}
		c.scene.Add(&scene.Rect{Bounds: inner, Style: scene.RectStyle{Fill: e.Color}})
	case scene.SwatchLine:
		c.scene.Add(&scene.Line{
			Points: []scene.Vec{{X: b.Min.X + 2, Y: mid.Y}, {X: b.Max.X - 2, Y: mid.Y}},
			Style:  scene.LineStyle{Color: e.Color, Width: defaultLineWidth},
		})
	case scene.SwatchPoint:
		c.scene.Add(&scene.Point{At: mid, Style: scene.PointStyle{Color: e.Color, Size: 2 * defaultPointSize, Shape: e.Shape}})
	}
}
