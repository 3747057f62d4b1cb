// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/aclements/go-gg/gg/layout"
	"github.com/aclements/gramgraph/scales"
	"github.com/aclements/gramgraph/scene"
	"github.com/aclements/gramgraph/theme"
	"github.com/kr/text"
)

// Spacing, in pixels.
const (
	margin       = 8.0
	gap          = 4.0
	tickLen      = 4.0
	panelSpacing = 8.0
	keySize      = 16.0
)

// Approximate text metrics, relative to the font size.
const (
	advance    = 0.6
	lineHeight = 1.2
)

// box is a leaf of the plot layout.
type box struct {
	layout.Leaf
	w, h         float64
	flexw, flexh bool
}

func (b *box) SizeHint() (w, h float64, flexw, flexh bool) {
	return b.w, b.h, b.flexw, b.flexh
}

// bounds returns b's layout offset by (dx, dy). layout.Grid places
// children relative to the grid's own origin.
func (b *box) bounds(dx, dy float64) scene.Bounds {
	x, y, w, h := b.Layout()
	return scene.Bounds{
		Min: scene.Vec{X: x + dx, Y: y + dy},
		Max: scene.Vec{X: x + dx + w, Y: y + dy + h},
	}
}

func textWidth(s string, size float64) float64 {
	w := 0.0
	for _, line := range strings.Split(s, "\n") {
		w = math.Max(w, advance*size*float64(utf8.RuneCountInString(line)))
	}
	return w
}

// textExtent returns the size of a single line of text rotated by
// angle degrees.
func textExtent(s string, t theme.Text) (w, h float64) {
	w, h = textWidth(s, t.Size), t.Size*lineHeight
	if t.Angle == 0 {
		return w, h
	}
	a := t.Angle * math.Pi / 180
	sin, cos := math.Abs(math.Sin(a)), math.Abs(math.Cos(a))
	return w*cos + h*sin, w*sin + h*cos
}

// wrap breaks s into lines that fit width pixels.
func wrap(s string, t theme.Text, width float64) []string {
	if s == "" || t.Blank {
		return nil
	}
	lim := int(width / (advance * t.Size))
	if lim < 1 {
		lim = 1
	}
	return strings.Split(text.Wrap(s, lim), "\n")
}

// facetGrid returns the column and row counts of an n-panel grid.
func facetGrid(n, ncol int) (cols, rows int) {
	if n == 0 {
		return 0, 0
	}
	if ncol > 0 {
		cols = ncol
	} else {
		cols = int(math.Ceil(math.Sqrt(float64(n))))
	}
	rows = (n + cols - 1) / cols
	return cols, rows
}

// frame is the top-level arrangement of the canvas.
type frame struct {
	title, subtitle, caption []string
	xTitle, yTitle           string

	titleBox, subtitleBox, captionBox *box
	xTitleBox, yTitleBox, legendBox   *box
	body                              *box
}

// layout places the titles, legend, and panels on the canvas.
func (c *compiler) layout() {
	f := &c.frame
	th := c.theme
	width := c.scene.Width - 2*margin
	f.title = wrap(c.labels.Title, th.PlotTitle, width)
	f.subtitle = wrap(c.labels.Subtitle, th.PlotSubtitle, width)
	f.caption = wrap(c.labels.Caption, th.PlotCaption, width)
	if !th.AxisTitle.Blank {
		f.xTitle, f.yTitle = c.axisTitles()
		if c.plot.Flip {
			f.xTitle, f.yTitle = f.yTitle, f.xTitle
		}
	}

	band := func(lines []string, t theme.Text) *box {
		if len(lines) == 0 {
			return nil
		}
		return &box{h: float64(len(lines))*t.Size*lineHeight + gap, flexw: true}
	}
	f.titleBox = band(f.title, th.PlotTitle)
	f.subtitleBox = band(f.subtitle, th.PlotSubtitle)
	f.captionBox = band(f.caption, th.PlotCaption)
	if f.xTitle != "" {
		f.xTitleBox = &box{h: th.AxisTitle.Size*lineHeight + gap, flexw: true}
	}
	if f.yTitle != "" {
		f.yTitleBox = &box{w: th.AxisTitle.Size*lineHeight + gap, flexh: true}
	}
	pos := c.legendPosition()
	if pos != "none" {
		w, h := c.legendSize(pos)
		switch pos {
		case "left", "right":
			f.legendBox = &box{w: w, h: h, flexh: true}
		default:
			f.legendBox = &box{w: w, h: h, flexw: true}
		}
	}
	f.body = &box{flexw: true, flexh: true}

	var ncols, nrows int
	next := func(n *int, present bool) int {
		if !present {
			return -1
		}
		*n++
		return *n - 1
	}
	lcol := next(&ncols, pos == "left")
	ycol := next(&ncols, f.yTitleBox != nil)
	bcol := next(&ncols, true)
	rcol := next(&ncols, pos == "right")
	trow := next(&nrows, f.titleBox != nil)
	srow := next(&nrows, f.subtitleBox != nil)
	ltrow := next(&nrows, pos == "top")
	brow := next(&nrows, true)
	xrow := next(&nrows, f.xTitleBox != nil)
	lbrow := next(&nrows, pos == "bottom")
	crow := next(&nrows, f.captionBox != nil)

	g := new(layout.Grid)
	span := func(b *box, row int) {
		if b != nil {
			g.Add(b, 0, row, ncols, 1)
		}
	}
	span(f.titleBox, trow)
	span(f.subtitleBox, srow)
	span(f.captionBox, crow)
	g.Add(f.body, bcol, brow, 1, 1)
	if f.yTitleBox != nil {
		g.Add(f.yTitleBox, ycol, brow, 1, 1)
	}
	if f.xTitleBox != nil {
		g.Add(f.xTitleBox, bcol, xrow, 1, 1)
	}
	switch pos {
	case "left":
		g.Add(f.legendBox, lcol, brow, 1, 1)
	case "right":
		g.Add(f.legendBox, rcol, brow, 1, 1)
	case "top":
		g.Add(f.legendBox, bcol, ltrow, 1, 1)
	case "bottom":
		g.Add(f.legendBox, bcol, lbrow, 1, 1)
	}
	g.SetLayout(0, 0, width, c.scene.Height-2*margin)

	c.layoutPanels(f.body.bounds(margin, margin))
}

// layoutPanels arranges the facet panels in a grid within body and
// fits each panel's plot area inside its strip and axis gutters.
func (c *compiler) layoutPanels(body scene.Bounds) {
	n := len(c.res.Panels)
	cols, _ := facetGrid(n, c.plot.FacetNCol)
	g := new(layout.Grid)
	cells := make([]*box, n)
	for i := range cells {
		cells[i] = &box{flexw: true, flexh: true}
		g.Add(cells[i], i%cols, i/cols, 1, 1)
	}
	if n > 0 {
		g.SetLayout(0, 0, body.Width(), body.Height())
	}

	faceted := c.plot.Facet != ""
	th := c.theme
	for i, rp := range c.res.Panels {
		cell := cells[i].bounds(body.Min.X, body.Min.Y)
		if faceted {
			cell.Min.X += panelSpacing / 2
			cell.Max.X -= panelSpacing / 2
			cell.Min.Y += panelSpacing / 2
			cell.Max.Y -= panelSpacing / 2
		}
		x, y := c.scales.Panel(i)
		p := &panel{co: coord{x: x, y: y, flip: c.plot.Flip}}
		if faceted {
			p.title = c.plot.Facet + " = " + rp.Key
			if !th.StripText.Blank {
				p.strip = scene.Bounds{
					Min: cell.Min,
					Max: scene.Vec{X: cell.Max.X, Y: cell.Min.Y + th.StripText.Size*lineHeight + gap},
				}
				cell.Min.Y = p.strip.Max.Y
			}
		}

		hMax := int(math.Max(2, cell.Width()/80))
		vMax := int(math.Max(2, cell.Height()/40))
		p.hTicks, p.hMinor = p.co.horizontal().Ticks(hMax)
		p.vTicks, p.vMinor = p.co.vertical().Ticks(vMax)

		left, bottom := tickLen+gap, tickLen+gap
		if !th.AxisText.Blank {
			left += maxExtent(p.vTicks, th.AxisText, true)
			bottom += maxExtent(p.hTicks, th.AxisText, false)
		}
		area := scene.Bounds{
			Min: scene.Vec{X: cell.Min.X + left, Y: cell.Min.Y + gap},
			Max: scene.Vec{X: cell.Max.X - 2*gap, Y: cell.Max.Y - bottom},
		}
		if area.Max.X < area.Min.X {
			area.Max.X = area.Min.X
		}
		if area.Max.Y < area.Min.Y {
			area.Max.Y = area.Min.Y
		}
		if faceted && !th.StripText.Blank {
			p.strip.Min.X, p.strip.Max.X = area.Min.X, area.Max.X
		}
		p.co.b = area
		c.panels = append(c.panels, p)
		c.scene.Panels = append(c.scene.Panels, scene.Panel{Title: p.title, Bounds: area})
	}
}

// maxExtent returns the largest width (or height) of the tick labels.
func maxExtent(ticks []scales.Tick, t theme.Text, width bool) float64 {
	m := 0.0
	for _, tk := range ticks {
		w, h := textExtent(tk.Label, t)
		if width {
			m = math.Max(m, w)
		} else {
			m = math.Max(m, h)
		}
	}
	return m
}

func (c *compiler) legendPosition() string {
	if len(c.scene.Legend) == 0 {
		return "none"
	}
	return c.theme.LegendPosition
}

// legendRow is the height of one legend entry.
func (c *compiler) legendRow() float64 {
	return math.Max(keySize, c.theme.LegendText.Size*lineHeight) + 2
}

func (c *compiler) legendTitleHeight() float64 {
	if c.legendTitle == "" || c.theme.AxisTitle.Blank {
		return 0
	}
	return c.theme.AxisTitle.Size*lineHeight + gap
}

// entryWidth is the width of a legend entry's key and label.
func (c *compiler) entryWidth(e scene.LegendEntry) float64 {
	return keySize + gap + textWidth(e.Label, c.theme.LegendText.Size)
}

// legendSize returns the size of the legend at position pos.
func (c *compiler) legendSize(pos string) (w, h float64) {
	th := c.theme
	titleW := 0.0
	if c.legendTitleHeight() > 0 {
		titleW = textWidth(c.legendTitle, th.AxisTitle.Size)
	}
	switch pos {
	case "left", "right":
		w = titleW
		for _, e := range c.scene.Legend {
			w = math.Max(w, c.entryWidth(e))
		}
		return w + 2*gap, c.legendTitleHeight() + float64(len(c.scene.Legend))*c.legendRow()
	}
	w = titleW + gap
	for _, e := range c.scene.Legend {
		w += c.entryWidth(e) + 2*gap
	}
	return w, math.Max(c.legendTitleHeight(), c.legendRow()) + gap
}
