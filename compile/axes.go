// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/aclements/gramgraph/scales"
	"github.com/aclements/gramgraph/scene"
	"github.com/aclements/gramgraph/theme"
)

// panel is the layout of one facet panel.
type panel struct {
	title string
	// strip is the strip title band, or the zero Bounds.
	strip scene.Bounds
	co    coord

	// Ticks of the horizontal and vertical axes.
	hTicks, vTicks []scales.Tick
	hMinor, vMinor []float64
}

func lineStyle(l theme.Line) scene.LineStyle {
	return scene.LineStyle{Color: l.Color, Width: l.Width, Dash: dash(l.Linetype, l.Width)}
}

func tickValues(ts []scales.Tick) []float64 {
	vs := make([]float64, len(ts))
	for i, t := range ts {
		vs[i] = t.Value
	}
	return vs
}

// grid draws grid lines across the plot area at the given horizontal
// and vertical axis values.
func (c *compiler) grid(p *panel, l theme.Line, h, v []float64) {
	if l.Blank {
		return
	}
	st := lineStyle(l)
	b := p.co.b
	for _, x := range h {
		px := p.co.hpos(x)
		c.scene.Add(&scene.Line{Points: []scene.Vec{{X: px, Y: b.Min.Y}, {X: px, Y: b.Max.Y}}, Style: st})
	}
	for _, y := range v {
		py := p.co.vpos(y)
		c.scene.Add(&scene.Line{Points: []scene.Vec{{X: b.Min.X, Y: py}, {X: b.Max.X, Y: py}}, Style: st})
	}
}

// axisLines draws the bottom and left edges of the plot area.
func (c *compiler) axisLines(p *panel) {
	l := c.theme.AxisLine
	if l.Blank {
		return
	}
	b := p.co.b
	st := lineStyle(l)
	c.scene.Add(
		&scene.Line{Points: []scene.Vec{{X: b.Min.X, Y: b.Max.Y}, {X: b.Max.X, Y: b.Max.Y}}, Style: st},
		&scene.Line{Points: []scene.Vec{{X: b.Min.X, Y: b.Min.Y}, {X: b.Min.X, Y: b.Max.Y}}, Style: st},
	)
}

// ticks draws the major tick marks outside the plot area.
func (c *compiler) ticks(p *panel) {
	l := c.theme.AxisTicks
	if l.Blank {
		return
	}
	b := p.co.b
	st := lineStyle(l)
	for _, t := range p.hTicks {
		px := p.co.hpos(t.Value)
		c.scene.Add(&scene.Line{Points: []scene.Vec{{X: px, Y: b.Max.Y}, {X: px, Y: b.Max.Y + tickLen}}, Style: st})
	}
	for _, t := range p.vTicks {
		py := p.co.vpos(t.Value)
		c.scene.Add(&scene.Line{Points: []scene.Vec{{X: b.Min.X - tickLen, Y: py}, {X: b.Min.X, Y: py}}, Style: st})
	}
}

// axisText labels the major ticks.
func (c *compiler) axisText(p *panel) {
	t := c.theme.AxisText
	if t.Blank {
		return
	}
	b := p.co.b
	below := textStyle(t, 0.5, 0)
	if t.Angle != 0 {
		below.HJust, below.VJust = 1, 0.5
	}
	for _, tk := range p.hTicks {
		at := scene.Vec{X: p.co.hpos(tk.Value), Y: b.Max.Y + tickLen + 2}
		c.scene.Add(&scene.Text{At: at, Text: tk.Label, Style: below})
	}
	left := textStyle(t, 1, 0.5)
	for _, tk := range p.vTicks {
		at := scene.Vec{X: b.Min.X - tickLen - 2, Y: p.co.vpos(tk.Value)}
		c.scene.Add(&scene.Text{At: at, Text: tk.Label, Style: left})
	}
}

func textStyle(t theme.Text, hjust, vjust float64) scene.TextStyle {
	return scene.TextStyle{
		Color:  t.Color,
		Size:   t.Size,
		Family: t.Family,
		Face:   t.Face,
		Angle:  t.Angle,
		HJust:  hjust,
		VJust:  vjust,
	}
}
