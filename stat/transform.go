// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/gramgraph/data"
	"github.com/aclements/gramgraph/plotspec"
	"golang.org/x/exp/slices"
)

// transform computes the layer's series over the data rows of one
// panel.
func (li *layerInfo) transform(kind XKind, panel []int) ([]*Series, []EmptyGroupWarning) {
	c := li.c
	var out []*Series
	var warns []EmptyGroupWarning
	for g, rows := range li.groupRows(panel) {
		if len(rows) == 0 {
			continue
		}
		s := li.newSeries(g)
		switch geom := li.l.Geom.(type) {
		case *plotspec.Line:
			s.Points = raw(kind, c, rows, true)
		case *plotspec.Point:
			s.Points = raw(kind, c, rows, false)
		case *plotspec.Ribbon:
			s.Points = raw(kind, c, rows, true)
		case *plotspec.Bar:
			if geom.Count {
				s.Points = count(c.cat, rows)
			} else {
				s.Points = raw(kind, c, rows, false)
			}
		case *plotspec.Histogram:
			s.Points = li.histogram(c.x, rows)
		case *plotspec.Smooth:
			if reason := smooth(geom, c, rows, s); reason != "" {
				warns = append(warns, EmptyGroupWarning{Layer: li.l.Index, Group: s.Label, Reason: reason})
				continue
			}
		case *plotspec.Boxplot:
			s.Boxes = boxes(c, rows)
		case *plotspec.Violin:
			s.Violins = violins(geom, c, rows)
		default:
			plotspec.BadLayer(geom)
		}
		out = append(out, s)
	}
	return out, warns
}

// raw passes rows through, dropping rows with a missing value. If
// sortX is set and x is not categorical, points are sorted by x.
func raw(kind XKind, c *columns, rows []int, sortX bool) []Point {
	pts := make([]Point, 0, len(rows))
	for _, r := range rows {
		var p Point
		if kind == Categorical {
			p.Cat = c.cat[r]
		} else if p.X = c.x[r]; math.IsNaN(p.X) {
			continue
		}
		if c.y != nil {
			if p.Y = c.y[r]; math.IsNaN(p.Y) {
				continue
			}
		}
		if c.ymin != nil {
			p.YMin, p.YMax = c.ymin[r], c.ymax[r]
			if math.IsNaN(p.YMin) || math.IsNaN(p.YMax) {
				continue
			}
		}
		pts = append(pts, p)
	}
	if sortX && kind != Categorical {
		slices.SortStableFunc(pts, func(a, b Point) bool { return a.X < b.X })
	}
	return pts
}

// count returns one point per category holding its row count.
func count(cats []string, rows []int) []Point {
	var pts []Point
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[cats[r]]
		if !ok {
			i = len(pts)
			index[cats[r]] = i
			pts = append(pts, Point{Cat: cats[r]})
		}
		pts[i].Y++
	}
	return pts
}

// setBins fixes the layer's histogram bins over the whole table.
func (li *layerInfo) setBins(t *table.Table, bins int) error {
	xs, err := data.Floats(t, li.l.X)
	if err != nil {
		return err
	}
	if bins < 1 {
		bins = plotspec.DefaultBins
	}
	var lo, hi float64
	if vals := sorted(xs); len(vals) > 0 {
		lo, hi = stats.Bounds(vals)
	}
	li.bins, li.binLo = bins, lo
	if li.binW = (hi - lo) / float64(bins); li.binW == 0 {
		li.binW = 1
	}
	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*li.binW
	}
	li.binCats = binLabels(centers)
	return nil
}

// histogram counts rows into the layer's bins. Every bin produces a
// point, even if it is empty, so that stacked histograms line up.
func (li *layerInfo) histogram(xs []float64, rows []int) []Point {
	counts := make([]float64, li.bins)
	for _, x := range at(xs, rows) {
		i := int((x - li.binLo) / li.binW)
		// The maximum falls on the last bin's upper edge.
		if i >= li.bins {
			i = li.bins - 1
		} else if i < 0 {
			i = 0
		}
		counts[i]++
	}
	pts := make([]Point, li.bins)
	for i, n := range counts {
		lo := li.binLo + float64(i)*li.binW
		pts[i] = Point{
			X: lo + li.binW/2, Cat: li.binCats[i], Y: n,
			XMin: lo, XMax: lo + li.binW,
		}
	}
	return pts
}

// binLabels formats the bin centers xs with the fewest significant
// digits, but at least 6, that keep every label distinct.
func binLabels(xs []float64) []string {
	labels := make([]string, len(xs))
	for prec := 6; prec <= 17; prec++ {
		seen := make(map[string]bool, len(xs))
		for i, x := range xs {
			labels[i] = strconv.FormatFloat(x, 'g', prec, 64)
			seen[labels[i]] = true
		}
		if len(seen) == len(xs) {
			return labels
		}
	}
	for i, x := range xs {
		labels[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return labels
}
