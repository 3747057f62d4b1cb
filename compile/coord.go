// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"math"

	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/scales"
	"github.com/aclements/gramgraph/scene"
)

// coord maps data space into the plot area of one panel.
//
// The x axis is horizontal and the y axis vertical unless flip is
// set, in which case they trade places. This is the only place a
// flip takes effect.
type coord struct {
	b    scene.Bounds
	x, y *scales.Axis
	flip bool
}

// at maps the data point (x, y) to the canvas.
func (c *coord) at(x, y float64) scene.Vec {
	tx, ty := c.x.Map(x), c.y.Map(y)
	if c.flip {
		tx, ty = ty, tx
	}
	return scene.Vec{X: c.b.Min.X + tx*c.b.Width(), Y: c.b.Max.Y - ty*c.b.Height()}
}

// rect maps the data rectangle with corners (x0, y0) and (x1, y1).
func (c *coord) rect(x0, y0, x1, y1 float64) scene.Bounds {
	p, q := c.at(x0, y0), c.at(x1, y1)
	return scene.Bounds{
		Min: scene.Vec{X: math.Min(p.X, q.X), Y: math.Min(p.Y, q.Y)},
		Max: scene.Vec{X: math.Max(p.X, q.X), Y: math.Max(p.Y, q.Y)},
	}
}

// floor returns v, or the bottom of the y domain if v has no position
// on a log axis.
func (c *coord) floor(v float64) float64 {
	if c.y.Transform == plotspec.Log10 && v <= 0 {
		return math.Min(c.y.Min, c.y.Max)
	}
	return v
}

// cat returns the position of an x category.
func (c *coord) cat(label string) float64 {
	if v, ok := c.x.Category(label); ok {
		return v
	}
	return math.NaN()
}

// horizontal and vertical return the axes drawn along the bottom and
// left edges of the panel.
func (c *coord) horizontal() *scales.Axis {
	if c.flip {
		return c.y
	}
	return c.x
}

func (c *coord) vertical() *scales.Axis {
	if c.flip {
		return c.x
	}
	return c.y
}

// hpos and vpos map values of the horizontal and vertical axes to
// canvas x and y.
func (c *coord) hpos(v float64) float64 {
	return c.b.Min.X + c.horizontal().Map(v)*c.b.Width()
}

func (c *coord) vpos(v float64) float64 {
	return c.b.Max.Y - c.vertical().Map(v)*c.b.Height()
}

const clipEps = 1e-9

func finite(v scene.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// clipLine clips the polyline pts to b and returns its visible runs.
func clipLine(pts []scene.Vec, b scene.Bounds) [][]scene.Vec {
	var runs [][]scene.Vec
	var cur []scene.Vec
	flush := func() {
		if len(cur) >= 2 {
			runs = append(runs, cur)
		}
		cur = nil
	}
	for i := 0; i+1 < len(pts); i++ {
		p, q, ok := clipSegment(pts[i], pts[i+1], b)
		if !ok {
			flush()
			continue
		}
		if len(cur) == 0 || cur[len(cur)-1] != p {
			flush()
			cur = []scene.Vec{p}
		}
		cur = append(cur, q)
	}
	flush()
	return runs
}

// clipSegment clips the segment pq to b using the Liang-Barsky
// algorithm.
func clipSegment(p, q scene.Vec, b scene.Bounds) (scene.Vec, scene.Vec, bool) {
	if !finite(p) || !finite(q) {
		return p, q, false
	}
	dx, dy := q.X-p.X, q.Y-p.Y
	edges := [4][2]float64{
		{-dx, p.X - b.Min.X},
		{dx, b.Max.X - p.X},
		{-dy, p.Y - b.Min.Y},
		{dy, b.Max.Y - p.Y},
	}
	t0, t1 := 0.0, 1.0
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < -clipEps {
				return p, q, false
			}
			continue
		}
		r := qe / pe
		if pe < 0 {
			if r > t1 {
				return p, q, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return p, q, false
			}
			t1 = math.Min(t1, r)
		}
	}
	p0, q0 := p, q
	if t0 > 0 {
		p0 = scene.Vec{X: p.X + t0*dx, Y: p.Y + t0*dy}
	}
	if t1 < 1 {
		q0 = scene.Vec{X: p.X + t1*dx, Y: p.Y + t1*dy}
	}
	return p0, q0, true
}

// clipEdge is one half-plane of a clip rectangle.
type clipEdge struct {
	vertical bool // the edge is a vertical line x = at
	at       float64
	keepLo   bool // keep coordinates >= at
}

func (e clipEdge) coord(v scene.Vec) float64 {
	if e.vertical {
		return v.X
	}
	return v.Y
}

func (e clipEdge) inside(v scene.Vec) bool {
	if e.keepLo {
		return e.coord(v) >= e.at-clipEps
	}
	return e.coord(v) <= e.at+clipEps
}

func (e clipEdge) cross(p, q scene.Vec) scene.Vec {
	if e.vertical {
		t := (e.at - p.X) / (q.X - p.X)
		return scene.Vec{X: e.at, Y: p.Y + t*(q.Y-p.Y)}
	}
	t := (e.at - p.Y) / (q.Y - p.Y)
	return scene.Vec{X: p.X + t*(q.X-p.X), Y: e.at}
}

// clipPolygon clips a closed polygon to b using Sutherland-Hodgman.
func clipPolygon(pts []scene.Vec, b scene.Bounds) []scene.Vec {
	for _, v := range pts {
		if !finite(v) {
			return nil
		}
	}
	edges := []clipEdge{
		{true, b.Min.X, true},
		{true, b.Max.X, false},
		{false, b.Min.Y, true},
		{false, b.Max.Y, false},
	}
	out := pts
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = nil
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

// clipRect intersects r with b.
func clipRect(r, b scene.Bounds) (scene.Bounds, bool) {
	out := scene.Bounds{
		Min: scene.Vec{X: math.Max(r.Min.X, b.Min.X), Y: math.Max(r.Min.Y, b.Min.Y)},
		Max: scene.Vec{X: math.Min(r.Max.X, b.Max.X), Y: math.Min(r.Max.Y, b.Max.Y)},
	}
	ok := out.Width() > 0 && out.Height() > 0 && finite(out.Min) && finite(out.Max)
	return out, ok
}
