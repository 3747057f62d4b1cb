// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"image/color"

	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/scene"
	"github.com/aclements/gramgraph/stat"
)

// lower appends the primitives of series s to the scene.
func (c *compiler) lower(p *panel, s *stat.Series) {
	st := c.style[s]
	co := &p.co
	switch g := s.Layer.Geom.(type) {
	case *plotspec.Line:
		c.polyline(co, c.trace(co, s.Points, func(pt stat.Point) float64 { return pt.Y }),
			scene.LineStyle{Color: st.color, Width: st.size, Dash: dash(g.Linetype, st.size)})

	case *plotspec.Point:
		for _, pt := range s.Points {
			v := co.at(c.xOf(co, pt), pt.Y)
			if co.b.Contains(v) {
				c.scene.Add(&scene.Point{At: v, Style: scene.PointStyle{Color: st.color, Size: 2 * st.size, Shape: st.shape}})
			}
		}

	case *plotspec.Bar, *plotspec.Histogram:
		rs := scene.RectStyle{Fill: st.color}
		if _, ok := g.(*plotspec.Histogram); ok {
			rs.Stroke, rs.Width = c.binStroke()
		}
		for _, pt := range s.Points {
			x := co.cat(pt.Cat) + pt.Offset
			c.rect(co, co.rect(x-pt.Width/2, co.floor(pt.Base), x+pt.Width/2, pt.Y), rs)
		}

	case *plotspec.Ribbon:
		c.band(co, s.Points, st.color)

	case *plotspec.Smooth:
		if s.Fit != nil && s.Fit.Band {
			c.band(co, s.Points, fade(st.color, bandAlpha))
		}
		c.polyline(co, c.trace(co, s.Points, func(pt stat.Point) float64 { return pt.Y }),
			scene.LineStyle{Color: st.color, Width: st.size})

	case *plotspec.Boxplot:
		for _, b := range s.Boxes {
			c.box(co, g, b, st)
		}

	case *plotspec.Violin:
		for _, v := range s.Violins {
			c.violin(co, v, st)
		}

	default:
		plotspec.BadLayer(g)
	}
}

// binStroke separates adjacent histogram bins with the background
// color.
func (c *compiler) binStroke() (color.RGBA, float64) {
	bg := c.theme.PanelBackground
	if bg.Blank {
		bg = c.theme.PlotBackground
	}
	if bg.Blank {
		return color.RGBA{}, 0
	}
	return bg.Fill, 0.5
}

// xOf returns the x position of pt in data space.
func (c *compiler) xOf(co *coord, pt stat.Point) float64 {
	if c.res.XKind == stat.Categorical {
		return co.cat(pt.Cat) + pt.Offset
	}
	return pt.X
}

// trace maps pts to the canvas using y to select each point's value.
func (c *compiler) trace(co *coord, pts []stat.Point, y func(stat.Point) float64) []scene.Vec {
	out := make([]scene.Vec, 0, len(pts))
	for _, pt := range pts {
		out = append(out, co.at(c.xOf(co, pt), y(pt)))
	}
	return out
}

func (c *compiler) polyline(co *coord, pts []scene.Vec, st scene.LineStyle) {
	for _, run := range clipLine(pts, co.b) {
		c.scene.Add(&scene.Line{Points: run, Style: st})
	}
}

func (c *compiler) polygon(co *coord, pts []scene.Vec, st scene.RectStyle) {
	if pts := clipPolygon(pts, co.b); pts != nil {
		c.scene.Add(&scene.Polygon{Points: pts, Style: st})
	}
}

func (c *compiler) rect(co *coord, r scene.Bounds, st scene.RectStyle) {
	if r, ok := clipRect(r, co.b); ok {
		c.scene.Add(&scene.Rect{Bounds: r, Style: st})
	}
}

// band fills the area between the YMin and YMax of pts.
func (c *compiler) band(co *coord, pts []stat.Point, fill color.RGBA) {
	if len(pts) < 2 {
		return
	}
	upper := c.trace(co, pts, func(pt stat.Point) float64 { return pt.YMax })
	lower := c.trace(co, pts, func(pt stat.Point) float64 { return pt.YMin })
	poly := upper
	for i := len(lower) - 1; i >= 0; i-- {
		poly = append(poly, lower[i])
	}
	c.polygon(co, poly, scene.RectStyle{Fill: fill})
}

// box draws a box and whiskers with its outliers.
func (c *compiler) box(co *coord, g *plotspec.Boxplot, b stat.Box, st style) {
	x := co.cat(b.Cat) + b.Offset
	half := b.Width / 2
	line := scene.LineStyle{Color: boxStroke, Width: 0.5}
	whisker := func(from, to float64) {
		c.polyline(co, []scene.Vec{co.at(x, from), co.at(x, to)}, line)
	}
	whisker(b.Q3, b.HiWhisker)
	whisker(b.Q1, b.LoWhisker)
	c.rect(co, co.rect(x-half, b.Q1, x+half, b.Q3), scene.RectStyle{Fill: st.color, Stroke: boxStroke, Width: 0.5})
	c.polyline(co, []scene.Vec{co.at(x-half, b.Median), co.at(x+half, b.Median)},
		scene.LineStyle{Color: boxStroke, Width: 1.5})

	out := scene.PointStyle{Color: st.color, Size: 2 * outlierSize, Shape: palette.Circle}
	if st.outlierColor != nil {
		out.Color = *st.outlierColor
	}
	if st.outlierShape != nil {
		out.Shape = *st.outlierShape
	}
	if g.OutlierSize > 0 {
		out.Size = 2 * g.OutlierSize
	}
	for _, y := range b.Outliers {
		if v := co.at(x, y); co.b.Contains(v) {
			c.scene.Add(&scene.Point{At: v, Style: out})
		}
	}
}

// violin draws a mirrored density silhouette and its quantile marks.
func (c *compiler) violin(co *coord, v stat.Violin, st style) {
	if len(v.Ys) < 2 {
		return
	}
	x := co.cat(v.Cat) + v.Offset
	half := v.Width / 2
	poly := make([]scene.Vec, 0, 2*len(v.Ys))
	for i, y := range v.Ys {
		poly = append(poly, co.at(x+v.Density[i]*half, y))
	}
	for i := len(v.Ys) - 1; i >= 0; i-- {
		poly = append(poly, co.at(x-v.Density[i]*half, v.Ys[i]))
	}
	c.polygon(co, poly, scene.RectStyle{Fill: st.color, Stroke: boxStroke, Width: 0.5})
	for _, q := range v.Quantiles {
		d := density(v, q.Y) * half
		c.polyline(co, []scene.Vec{co.at(x-d, q.Y), co.at(x+d, q.Y)}, scene.LineStyle{Color: boxStroke, Width: 0.5})
	}
}

// density interpolates the density of v at y.
func density(v stat.Violin, y float64) float64 {
	ys := v.Ys
	if y <= ys[0] {
		return v.Density[0]
	}
	for i := 1; i < len(ys); i++ {
		if y <= ys[i] {
			t := (y - ys[i-1]) / (ys[i] - ys[i-1])
			return v.Density[i-1] + t*(v.Density[i]-v.Density[i-1])
		}
	}
	return v.Density[len(ys)-1]
}
