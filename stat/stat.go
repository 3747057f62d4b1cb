// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stat computes the statistical transforms of a resolved
// plot: it partitions the data into facet panels and groups, runs each
// layer's statistic, and positions categorical layers.
//
// The output is axis-agnostic. Coordinates are data values (or
// category labels); scaling and coordinate flips happen later.
package stat

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/gramgraph/data"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/resolve"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// XKind is how the x values of a plot are interpreted.
type XKind int

const (
	// Continuous x values are numbers.
	Continuous XKind = iota
	// Categorical x values are labels placed at integer positions.
	Categorical
	// Time x values are instants, stored as Unix seconds.
	Time
)

func (k XKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Categorical:
		return "categorical"
	case Time:
		return "time"
	}
	return fmt.Sprintf("XKind(%d)", int(k))
}

// Result is the output of Transform.
type Result struct {
	XKind XKind

	// Categories is the categorical x domain over all panels, or
	// nil if XKind is not Categorical.
	Categories []string

	// Panels has one entry per facet value in first-encounter
	// order, or exactly one entry if the plot is not faceted.
	Panels []*Panel

	// Levels maps each grouping column to its distinct values in
	// first-encounter order over the whole table.
	Levels map[string][]string

	Warnings []EmptyGroupWarning
}

// Panel is the transformed data of one facet value.
type Panel struct {
	// Key is the facet value, or "" if the plot is not faceted.
	Key string

	// Series is in layer order, then group order. Groups with no
	// rows in this panel are omitted.
	Series []*Series
}

// Series is the output of one layer for one group.
type Series struct {
	Layer *resolve.Layer

	// Group is the index of the group in the layer's Cartesian
	// product of grouping levels.
	Group int

	// Label is the legend label: the group's values joined with
	// ", ". It is "" for an ungrouped layer.
	Label string

	// Values maps each mapped role to this group's value of its
	// column.
	Values map[plotspec.Role]string

	Points  []Point
	Boxes   []Box
	Violins []Violin

	// Fit is the regression of a Smooth series, if any.
	Fit *Fit
}

// Point is one output observation.
type Point struct {
	// X is the x value on a continuous or time axis.
	X float64
	// Cat is the x label on a categorical axis.
	Cat string

	Y float64
	// YMin and YMax are the band of a ribbon or smooth.
	YMin, YMax float64

	// Base is the bottom of a bar. It is 0 unless stacked.
	Base float64

	// XMin and XMax are the edges of a histogram bin.
	XMin, XMax float64

	Slot
}

// Slot is a horizontal placement within a category, in category
// units relative to the category's center.
type Slot struct {
	Offset, Width float64
}

// Fit is the line fitted by a smooth.
type Fit struct {
	Method string
	// Intercept and Slope are set for method "lm".
	Intercept, Slope float64
	N                int

	// Band reports whether the points carry a confidence band in
	// YMin and YMax.
	Band bool
}

// EmptyGroupWarning reports a group that produced no output.
type EmptyGroupWarning struct {
	Layer  int
	Group  string
	Reason string
}

func (w EmptyGroupWarning) String() string {
	return fmt.Sprintf("layer %d group %q: %s", w.Layer+1, w.Group, w.Reason)
}

// Transform runs the statistical phase over t.
func Transform(ctx context.Context, plot *resolve.Plot, t *table.Table) (*Result, error) {
	res := &Result{Levels: map[string][]string{}}

	kind, err := xKind(plot, t)
	if err != nil {
		return nil, err
	}
	res.XKind = kind

	// Grouping, binning, and coercion are global so colors and bins
	// agree across panels and bad cells are found in data row order.
	all := make([]int, t.Len())
	for i := range all {
		all[i] = i
	}
	layers := make([]*layerInfo, len(plot.Layers))
	for i, l := range plot.Layers {
		li, err := newLayerInfo(l, t, res.Levels)
		if err != nil {
			return nil, err
		}
		if h, ok := l.Geom.(*plotspec.Histogram); ok {
			if err := li.setBins(t, h.Bins); err != nil {
				return nil, err
			}
		}
		if li.c, err = li.read(kind, t); err != nil {
			return nil, err
		}
		layers[i] = li
		res.Warnings = append(res.Warnings, li.emptyGroups(all)...)
	}

	keys, panels := partition(t, plot.Facet, all)
	res.Panels = make([]*Panel, len(panels))
	warns := make([][]EmptyGroupWarning, len(panels))
	eg, ctx := errgroup.WithContext(ctx)
	for i := range panels {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := &Panel{Key: keys[i]}
			for _, li := range layers {
				ss, w := li.transform(kind, panels[i])
				p.Series = append(p.Series, ss...)
				warns[i] = append(warns[i], w...)
			}
			res.Panels[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for _, w := range warns {
		res.Warnings = append(res.Warnings, w...)
	}

	if kind == Categorical {
		res.Categories = categories(res.Panels)
		order := map[string]int{}
		for i, c := range res.Categories {
			order[c] = i
		}
		for _, p := range res.Panels {
			sortCategorical(p, order)
			position(p)
		}
	}
	return res, nil
}

// rowColumn holds each row's index in the unpartitioned table.
const rowColumn = "\x00row"

// partition splits the data rows of t by the values of column facet,
// in first-encounter order. If facet is "", all rows form one panel.
func partition(t *table.Table, facet string, all []int) (keys []string, panels [][]int) {
	if facet == "" {
		return []string{""}, [][]int{all}
	}
	g := table.GroupBy(table.NewBuilder(t).Add(rowColumn, all).Done(), facet)
	for _, gid := range g.Tables() {
		keys = append(keys, fmt.Sprint(gid.Label()))
		panels = append(panels, g.Table(gid).MustColumn(rowColumn).([]int))
	}
	return keys, panels
}

// xKind decides how x is interpreted. Any categorical geometry makes
// the axis categorical. Otherwise x is continuous if every x column is
// numeric, a time axis if every x column parses as dates, and
// categorical if neither.
func xKind(plot *resolve.Plot, t *table.Table) (XKind, error) {
	numeric, times := true, true
	for _, l := range plot.Layers {
		switch l.Geom.(type) {
		case *plotspec.Bar, *plotspec.Boxplot, *plotspec.Violin:
			return Categorical, nil
		case *plotspec.Histogram:
			// Histograms bin numeric x into labeled bins.
			if _, err := data.Floats(t, l.X); err != nil {
				return 0, err
			}
			return Categorical, nil
		case *plotspec.Line, *plotspec.Point, *plotspec.Ribbon, *plotspec.Smooth:
			if numeric && !data.IsNumeric(t, l.X) {
				numeric = false
			}
		default:
			plotspec.BadLayer(l.Geom)
		}
	}
	if numeric {
		return Continuous, nil
	}
	for _, l := range plot.Layers {
		if _, err := data.Times(t, l.X); err != nil {
			times = false
			break
		}
	}
	if times {
		return Time, nil
	}
	for _, l := range plot.Layers {
		if _, ok := l.Geom.(*plotspec.Smooth); ok {
			if _, err := data.Floats(t, l.X); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("layer %d (smooth) needs a numeric or time x axis, but x is categorical", l.Index+1)
		}
	}
	return Categorical, nil
}

// categories returns the distinct category labels over all panels.
// They are sorted numerically if every label is a number, and
// otherwise kept in first-encounter order.
func categories(panels []*Panel) []string {
	var cats []string
	seen := map[string]bool{}
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	for _, p := range panels {
		for _, s := range p.Series {
			for _, c := range s.cats() {
				add(c)
			}
		}
	}
	nums := make(map[string]float64, len(cats))
	for _, c := range cats {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil || math.IsNaN(v) {
			return cats
		}
		nums[c] = v
	}
	slices.SortStableFunc(cats, func(a, b string) bool { return nums[a] < nums[b] })
	return cats
}

// sortCategorical orders the points of lines and ribbons on a
// categorical axis by category position.
func sortCategorical(p *Panel, order map[string]int) {
	for _, s := range p.Series {
		switch s.Layer.Geom.(type) {
		case *plotspec.Line, *plotspec.Ribbon:
			slices.SortStableFunc(s.Points, func(a, b Point) bool { return order[a.Cat] < order[b.Cat] })
		}
	}
}
