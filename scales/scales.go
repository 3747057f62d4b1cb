// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scales trains the x and y axes of a plot from its
// transformed series.
//
// An Axis maps data values to [0, 1]. Categorical axes place category
// i at position i and map the domain [-0.5, n-0.5]. Continuous axes
// pad the data range by 5% on each side unless explicit limits are
// given.
package scales

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/resolve"
	"github.com/aclements/gramgraph/stat"
)

// Padding is the fraction of the data range added to each side of a
// continuous domain.
const Padding = 0.05

// Kind is the kind of values an axis maps.
type Kind int

const (
	Continuous Kind = iota
	Categorical
	Time
)

// Axis is a trained axis.
type Axis struct {
	Kind Kind

	// Categories is the categorical domain.
	Categories []string

	// Min and Max are the padded domain in data space. For a
	// categorical axis they are -0.5 and n-0.5.
	Min, Max float64

	Transform plotspec.Transform

	// HasLimits is set if Min and Max came from explicit limits.
	HasLimits bool

	index map[string]int
}

// Map maps data value v to [0, 1]. Values outside the domain map
// outside [0, 1].
func (a *Axis) Map(v float64) float64 {
	lo, hi := a.Min, a.Max
	if a.Transform == plotspec.Log10 {
		v, lo, hi = math.Log10(v), math.Log10(lo), math.Log10(hi)
	}
	t := scale.Linear{Min: lo, Max: hi}.Map(v)
	if a.Transform == plotspec.Reverse {
		t = 1 - t
	}
	return t
}

// Category returns the position of a category label.
func (a *Axis) Category(label string) (float64, bool) {
	i, ok := a.index[label]
	return float64(i), ok
}

// Scales holds the trained axes of every panel.
type Scales struct {
	x, y []*Axis
}

// Panel returns the axes of panel i.
func (s *Scales) Panel(i int) (x, y *Axis) {
	return s.x[i], s.y[i]
}

// DomainError reports data that a scale cannot represent.
type DomainError struct {
	Axis      plotspec.Axis
	Transform plotspec.Transform
	Value     float64
	// Panel is the 0-based facet panel, or -1 for explicit limits.
	Panel int
	Msg   string
}

func (e *DomainError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s axis: %s", e.Axis, e.Msg)
	}
	where := ""
	if e.Panel > 0 {
		where = fmt.Sprintf(" in panel %d", e.Panel+1)
	} else if e.Panel < 0 {
		where = " in limits"
	}
	return fmt.Sprintf("%s axis: %s scale requires positive values, found %g%s", e.Axis, e.Transform, e.Value, where)
}

// directive is the combined scale directives of one axis.
type directive struct {
	trans  plotspec.Transform
	limits *[2]float64
}

// combine folds the directives of axis ax. The last transform and the
// last limits win.
func combine(ds []plotspec.ScaleDirective, ax plotspec.Axis) directive {
	var d directive
	for _, sd := range ds {
		if sd.Axis != ax {
			continue
		}
		if sd.Transform != plotspec.NoTransform {
			d.trans = sd.Transform
		}
		if sd.Limits != nil {
			d.limits = sd.Limits
		}
	}
	if d.trans == plotspec.NoTransform {
		d.trans = plotspec.Linear
	}
	return d
}

// Train computes the axes of every panel of res.
func Train(res *stat.Result, plot *resolve.Plot, directives []plotspec.ScaleDirective) (*Scales, error) {
	xd, yd := combine(directives, plotspec.XAxis), combine(directives, plotspec.YAxis)
	freeX := plot.FacetScales.FreeAxis(plotspec.XAxis)
	freeY := plot.FacetScales.FreeAxis(plotspec.YAxis)

	n := len(res.Panels)
	s := &Scales{x: make([]*Axis, n), y: make([]*Axis, n)}
	exs := make([]*extent, n)
	eys := make([]*extent, n)
	for i, p := range res.Panels {
		exs[i], eys[i] = extents(p, res.XKind)
	}

	// x axis.
	if res.XKind == stat.Categorical {
		if xd.trans == plotspec.Log10 {
			return nil, &DomainError{Axis: plotspec.XAxis, Transform: xd.trans, Msg: "log10 scale on a categorical axis"}
		}
		for i, p := range res.Panels {
			cats := res.Categories
			if freeX {
				cats = present(res.Categories, p)
			}
			s.x[i] = categorical(cats, xd.trans)
		}
	} else {
		kind := Continuous
		if res.XKind == stat.Time {
			kind = Time
		}
		if err := train(s.x, exs, freeX, xd, plotspec.XAxis, kind); err != nil {
			return nil, err
		}
	}

	// y axis.
	if err := train(s.y, eys, freeY, yd, plotspec.YAxis, Continuous); err != nil {
		return nil, err
	}
	return s, nil
}

// train fills axes from per-panel extents, either one shared domain or
// one per panel.
func train(axes []*Axis, exts []*extent, free bool, d directive, ax plotspec.Axis, kind Kind) error {
	if d.trans == plotspec.Log10 && d.limits == nil {
		for i, e := range exts {
			if e.n > 0 && e.min <= 0 {
				return &DomainError{Axis: ax, Transform: d.trans, Value: e.min, Panel: i}
			}
		}
	}
	if !free {
		all := new(extent)
		for _, e := range exts {
			all.union(e)
		}
		a, err := continuous(all, d, ax, kind)
		if err != nil {
			return err
		}
		for i := range axes {
			axes[i] = a
		}
		return nil
	}
	for i, e := range exts {
		a, err := continuous(e, d, ax, kind)
		if err != nil {
			return err
		}
		axes[i] = a
	}
	return nil
}

// continuous builds a numeric axis over e.
func continuous(e *extent, d directive, ax plotspec.Axis, kind Kind) (*Axis, error) {
	a := &Axis{Kind: kind, Transform: d.trans}
	log := d.trans == plotspec.Log10
	if d.limits != nil {
		a.Min, a.Max, a.HasLimits = d.limits[0], d.limits[1], true
		if log && a.Min <= 0 {
			return nil, &DomainError{Axis: ax, Transform: d.trans, Value: a.Min, Panel: -1}
		}
		return a, nil
	}
	lo, hi, n := e.min, e.max, e.n
	if e.zero && !log {
		// Bars grow from 0, which cannot appear on a log axis.
		if n == 0 {
			lo, hi = 0, 0
		}
		lo, hi, n = math.Min(lo, 0), math.Max(hi, 0), n+1
	}
	if n == 0 {
		a.Min, a.Max = 0, 1
		if log {
			a.Min, a.Max = 1, 10
		}
		return a, nil
	}
	if log {
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	switch {
	case lo == hi && log:
		lo, hi = lo-0.5, hi+0.5
	case lo == hi:
		lo, hi = lo-1, hi+1
	default:
		pad := (hi - lo) * Padding
		lo, hi = lo-pad, hi+pad
	}
	if log {
		lo, hi = math.Pow(10, lo), math.Pow(10, hi)
	}
	a.Min, a.Max = lo, hi
	return a, nil
}

func categorical(cats []string, trans plotspec.Transform) *Axis {
	a := &Axis{
		Kind:       Categorical,
		Categories: cats,
		Min:        -0.5,
		Max:        float64(len(cats)) - 0.5,
		Transform:  trans,
		index:      make(map[string]int, len(cats)),
	}
	if len(cats) == 0 {
		a.Max = 0.5
	}
	for i, c := range cats {
		a.index[c] = i
	}
	return a
}

// present returns the categories of all that occur in panel p.
func present(all []string, p *stat.Panel) []string {
	seen := map[string]bool{}
	for _, s := range p.Series {
		for _, pt := range s.Points {
			seen[pt.Cat] = true
		}
		for _, b := range s.Boxes {
			seen[b.Cat] = true
		}
		for _, v := range s.Violins {
			seen[v.Cat] = true
		}
	}
	var out []string
	for _, c := range all {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}
