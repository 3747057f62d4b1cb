// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"

	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/scene"
)

// circleSides is the number of sides of a rasterized circle.
const circleSides = 24

// marker returns the outline of a filled marker of diameter d centered
// at c. Cross markers are stroked, not filled, and have no outline.
func marker(sh palette.Shape, c scene.Vec, d float64) []scene.Vec {
	r := d / 2
	switch sh {
	case palette.Circle:
		pts := make([]scene.Vec, circleSides)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / circleSides
			pts[i] = scene.Vec{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
		}
		return pts
	case palette.Square:
		return []scene.Vec{
			{X: c.X - r, Y: c.Y - r}, {X: c.X + r, Y: c.Y - r},
			{X: c.X + r, Y: c.Y + r}, {X: c.X - r, Y: c.Y + r},
		}
	case palette.Triangle:
		// Equilateral, pointing up, centered on its centroid.
		h := r * 1.5
		half := h / math.Sqrt(3)
		return []scene.Vec{
			{X: c.X, Y: c.Y - r},
			{X: c.X + half, Y: c.Y - r + h},
			{X: c.X - half, Y: c.Y - r + h},
		}
	case palette.Diamond:
		return []scene.Vec{
			{X: c.X, Y: c.Y - r}, {X: c.X + r, Y: c.Y},
			{X: c.X, Y: c.Y + r}, {X: c.X - r, Y: c.Y},
		}
	}
	return nil
}

// cross returns the two strokes of a cross marker.
func cross(c scene.Vec, d float64) [2][2]scene.Vec {
	r := d / 2 / math.Sqrt2
	return [2][2]scene.Vec{
		{{X: c.X - r, Y: c.Y - r}, {X: c.X + r, Y: c.Y + r}},
		{{X: c.X - r, Y: c.Y + r}, {X: c.X + r, Y: c.Y - r}},
	}
}

// crossWidth is the stroke width of a cross marker of diameter d.
func crossWidth(d float64) float64 {
	return math.Max(1, d/4)
}

// dashes splits a polyline into its "on" runs under an on/off dash
// pattern. A nil or degenerate pattern returns pts unchanged.
func dashes(pts []scene.Vec, pattern []float64) [][]scene.Vec {
	total := 0.0
	for _, v := range pattern {
		if v < 0 {
			return [][]scene.Vec{pts}
		}
		total += v
	}
	if len(pattern) == 0 || total == 0 || len(pts) < 2 {
		return [][]scene.Vec{pts}
	}

	var out [][]scene.Vec
	cur := []scene.Vec{pts[0]}
	i, left, on := 0, pattern[0], true
	for k := 1; k < len(pts); k++ {
		p, q := pts[k-1], pts[k]
		seg := math.Hypot(q.X-p.X, q.Y-p.Y)
		pos := 0.0
		for seg-pos > left {
			pos += left
			t := pos / seg
			v := scene.Vec{X: p.X + t*(q.X-p.X), Y: p.Y + t*(q.Y-p.Y)}
			if on {
				cur = append(cur, v)
				out = append(out, cur)
				cur = nil
			} else {
				cur = []scene.Vec{v}
			}
			on = !on
			i = (i + 1) % len(pattern)
			left = pattern[i]
		}
		left -= seg - pos
		if on {
			cur = append(cur, q)
		}
	}
	if on && len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}
