// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"math"

	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/stat"
)

// extent is the range of the values an axis must show.
type extent struct {
	min, max float64
	n        int

	// zero is set if the domain should include 0.
	zero bool
}

func (e *extent) add(vs ...float64) {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if e.n == 0 {
			e.min, e.max = v, v
		} else {
			e.min, e.max = math.Min(e.min, v), math.Max(e.max, v)
		}
		e.n++
	}
}

func (e *extent) union(o *extent) {
	if o.n > 0 {
		e.add(o.min, o.max)
	}
	e.zero = e.zero || o.zero
}

// extents returns the x and y extents of panel p. x is empty for a
// categorical axis.
func extents(p *stat.Panel, kind stat.XKind) (x, y *extent) {
	x, y = new(extent), new(extent)
	numX := kind != stat.Categorical
	for _, s := range p.Series {
		switch s.Layer.Geom.(type) {
		case *plotspec.Line, *plotspec.Point:
			for _, pt := range s.Points {
				if numX {
					x.add(pt.X)
				}
				y.add(pt.Y)
			}
		case *plotspec.Ribbon:
			for _, pt := range s.Points {
				if numX {
					x.add(pt.X)
				}
				y.add(pt.YMin, pt.YMax)
			}
		case *plotspec.Smooth:
			for _, pt := range s.Points {
				x.add(pt.X)
				y.add(pt.Y)
				if s.Fit != nil && s.Fit.Band {
					y.add(pt.YMin, pt.YMax)
				}
			}
		case *plotspec.Bar, *plotspec.Histogram:
			y.zero = true
			for _, pt := range s.Points {
				y.add(pt.Y)
				if pt.Base != 0 {
					y.add(pt.Base)
				}
			}
		case *plotspec.Boxplot:
			for _, b := range s.Boxes {
				y.add(b.Min, b.Max)
			}
		case *plotspec.Violin:
			for _, v := range s.Violins {
				if len(v.Ys) > 0 {
					y.add(v.Ys[0], v.Ys[len(v.Ys)-1])
				}
			}
		default:
			plotspec.BadLayer(s.Layer.Geom)
		}
	}
	return x, y
}
