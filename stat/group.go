// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/gramgraph/data"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/resolve"
	"golang.org/x/exp/slices"
)

// layerInfo is the panel-independent state of one layer.
type layerInfo struct {
	l *resolve.Layer

	// cols are the distinct grouping columns, in role order.
	cols []string
	// levels[i] are the distinct values of cols[i].
	levels [][]string
	index  []map[string]int
	// roles maps each grouping role to its index in cols.
	roles map[plotspec.Role]int

	// strs[i] is the column cols[i] of the whole table.
	strs [][]string
	// c holds the coerced position columns of the whole table.
	c *columns

	// Histogram bins.
	bins        int
	binLo, binW float64
	binCats     []string
}

func newLayerInfo(l *resolve.Layer, t *table.Table, levels map[string][]string) (*layerInfo, error) {
	li := &layerInfo{l: l, roles: map[plotspec.Role]int{}}
	for _, b := range l.Groups() {
		i := slices.Index(li.cols, b.Column)
		if i < 0 {
			i = len(li.cols)
			li.cols = append(li.cols, b.Column)
			lv, ok := levels[b.Column]
			if !ok {
				lv = distinct(data.Strings(t, b.Column))
				levels[b.Column] = lv
			}
			li.levels = append(li.levels, lv)
			idx := make(map[string]int, len(lv))
			for j, v := range lv {
				idx[v] = j
			}
			li.index = append(li.index, idx)
			li.strs = append(li.strs, data.Strings(t, b.Column))
		}
		li.roles[b.Role] = i
		// Size and alpha are scaled numerically.
		if b.Role == plotspec.RoleSize || b.Role == plotspec.RoleAlpha {
			if _, err := data.Floats(t, b.Column); err != nil {
				return nil, err
			}
		}
	}
	return li, nil
}

// distinct returns the distinct values of xs in first-encounter
// order.
func distinct(xs []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}

// nGroups returns the size of the Cartesian product of the layer's
// grouping levels.
func (li *layerInfo) nGroups() int {
	n := 1
	for _, lv := range li.levels {
		n *= len(lv)
	}
	return n
}

// key returns the level values of group g.
func (li *layerInfo) key(g int) []string {
	key := make([]string, len(li.cols))
	for i := len(li.cols) - 1; i >= 0; i-- {
		n := len(li.levels[i])
		key[i] = li.levels[i][g%n]
		g /= n
	}
	return key
}

func (li *layerInfo) label(g int) string {
	return strings.Join(li.key(g), ", ")
}

// groupRows assigns each of rows to its group. The first grouping
// column varies slowest.
func (li *layerInfo) groupRows(rows []int) [][]int {
	groups := make([][]int, li.nGroups())
	for _, row := range rows {
		g := 0
		for i := range li.cols {
			g = g*len(li.levels[i]) + li.index[i][li.strs[i][row]]
		}
		groups[g] = append(groups[g], row)
	}
	return groups
}

// emptyGroups reports the combinations of grouping levels that occur
// in none of rows.
func (li *layerInfo) emptyGroups(rows []int) []EmptyGroupWarning {
	var out []EmptyGroupWarning
	for g, rows := range li.groupRows(rows) {
		if len(rows) == 0 {
			out = append(out, EmptyGroupWarning{Layer: li.l.Index, Group: li.label(g), Reason: "no rows"})
		}
	}
	return out
}

// newSeries returns an empty series for group g.
func (li *layerInfo) newSeries(g int) *Series {
	s := &Series{Layer: li.l, Group: g, Label: li.label(g)}
	if len(li.cols) > 0 {
		key := li.key(g)
		s.Values = make(map[plotspec.Role]string, len(li.roles))
		for r, i := range li.roles {
			s.Values[r] = key[i]
		}
	}
	return s
}

// columns holds the coerced columns a layer reads, indexed by data
// row.
type columns struct {
	x          []float64
	cat        []string
	y          []float64
	ymin, ymax []float64
}

// read coerces the layer's position columns of t. It runs once over
// the whole table so a bad cell is reported by its data row.
func (li *layerInfo) read(kind XKind, t *table.Table) (*columns, error) {
	var c columns
	var err error
	l := li.l
	switch kind {
	case Continuous:
		c.x, err = data.Floats(t, l.X)
	case Time:
		ts, terr := data.Times(t, l.X)
		err = terr
		c.x = make([]float64, len(ts))
		for i, tm := range ts {
			c.x[i] = float64(tm.UnixNano()) / 1e9
		}
	case Categorical:
		c.cat = data.Strings(t, l.X)
		switch l.Geom.(type) {
		case *plotspec.Histogram, *plotspec.Smooth:
			c.x, err = data.Floats(t, l.X)
		}
	}
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		col string
		dst *[]float64
	}{{l.Y, &c.y}, {l.YMin, &c.ymin}, {l.YMax, &c.ymax}} {
		if f.col == "" {
			continue
		}
		if *f.dst, err = data.Floats(t, f.col); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// at returns values of xs at rows, dropping NaNs.
func at(xs []float64, rows []int) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if !math.IsNaN(xs[r]) {
			out = append(out, xs[r])
		}
	}
	return out
}
