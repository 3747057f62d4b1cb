// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve binds a PlotSpec's layers to the columns of a data
// table.
//
// For each layer, Resolve fixes the position columns by precedence
// (layer override, then global aes) and classifies every styling
// aesthetic as either a fixed value or a grouping column. Resolve
// only validates; it never reads cell values.
package resolve

import (
	"fmt"

	"github.com/aclements/gramgraph/data"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/agnivade/levenshtein"
	"go.uber.org/multierr"
)

// Plot is a PlotSpec bound to a table's columns.
type Plot struct {
	Layers []*Layer

	// Facet is the facet column, or "" if the plot is not
	// faceted.
	Facet       string
	FacetNCol   int
	FacetScales plotspec.FacetScales

	Flip bool
}

// Layer is one resolved layer.
type Layer struct {
	Index int
	Geom  plotspec.Layer

	// Column names as spelled in the table. Unused roles are "".
	X, Y, YMin, YMax string

	// Aes lists the layer's styling aesthetics in role order.
	Aes []Binding
}

// Binding is a styling aesthetic of a layer: either a data column
// that splits the layer into groups, or a fixed value.
type Binding struct {
	Role plotspec.Role

	// Column is the grouping column, or "" for a fixed value.
	Column string

	// Text is the fixed value of a color or shape.
	Text string
	// Num is the fixed value of a size or alpha.
	Num float64
}

// Mapped reports whether b is data driven.
func (b Binding) Mapped() bool { return b.Column != "" }

// Groups returns the layer's grouping bindings in role order.
func (l *Layer) Groups() []Binding {
	var out []Binding
	for _, b := range l.Aes {
		if b.Mapped() {
			out = append(out, b)
		}
	}
	return out
}

// Fixed returns the fixed binding for role r, if any.
func (l *Layer) Fixed(r plotspec.Role) (Binding, bool) {
	for _, b := range l.Aes {
		if b.Role == r && !b.Mapped() {
			return b, true
		}
	}
	return Binding{}, false
}

// Mapping returns the grouping binding for role r, if any.
func (l *Layer) Mapping(r plotspec.Role) (Binding, bool) {
	for _, b := range l.Aes {
		if b.Role == r && b.Mapped() {
			return b, true
		}
	}
	return Binding{}, false
}

// Resolve binds spec to a table with the given columns. All missing
// columns and aesthetics are reported together.
func Resolve(spec *plotspec.PlotSpec, columns []string) (*Plot, error) {
	r := &resolver{spec: spec, columns: columns}
	p := &Plot{Flip: spec.Flip}
	for i, l := range spec.Layers {
		p.Layers = append(p.Layers, r.layer(i, l))
	}
	if f := spec.Facet; f != nil {
		p.Facet = r.column(-1, "facet", "facet", f.By)
		p.FacetNCol = f.NCol
		p.FacetScales = f.Scales
	}
	if r.err == nil {
		r.err = checkAxes(p)
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

type resolver struct {
	spec    *plotspec.PlotSpec
	columns []string
	err     error
}

// column resolves a column reference, recording an error if it is
// not in the table.
func (r *resolver) column(layer int, geom string, role plotspec.Role, name string) string {
	if name == "" {
		return ""
	}
	col, ok := data.LookupIn(r.columns, name)
	if !ok {
		r.err = multierr.Append(r.err, &MissingColumnError{
			Layer: layer, Geom: geom, Role: role, Column: name,
			Hint: suggest(name, r.columns),
		})
		return ""
	}
	return col
}

// position resolves a position role: the layer override if given,
// else the global mapping. If required and unresolvable, it records
// a MissingAestheticError.
func (r *resolver) position(i int, l plotspec.Layer, role plotspec.Role, override string, required bool) string {
	name := override
	if name == "" {
		name = r.spec.Aes.Get(role)
	}
	if name == "" {
		if required {
			r.err = multierr.Append(r.err, &MissingAestheticError{Layer: i, Geom: l.Geom(), Role: role})
		}
		return ""
	}
	return r.column(i, l.Geom(), role, name)
}

func (r *resolver) layer(i int, l plotspec.Layer) *Layer {
	m := l.Columns()
	out := &Layer{Index: i, Geom: l}
	out.X = r.position(i, l, plotspec.RoleX, m.X, true)

	var (
		color, shape *plotspec.AesValue[string]
		size, alpha  *plotspec.AesValue[float64]
		needY        = true
	)
	switch l := l.(type) {
	case *plotspec.Line:
		color, alpha = l.Color, l.Alpha
		// Line width plays the size role.
		size = l.Width
	case *plotspec.Point:
		color, shape, size, alpha = l.Color, l.Shape, l.Size, l.Alpha
	case *plotspec.Bar:
		color, alpha = l.Color, l.Alpha
		needY = !l.Count
	case *plotspec.Ribbon:
		color, alpha = l.Color, l.Alpha
		needY = false
		out.YMin = r.position(i, l, plotspec.RoleYMin, l.YMin, true)
		out.YMax = r.position(i, l, plotspec.RoleYMax, l.YMax, true)
	case *plotspec.Histogram:
		color, alpha = l.Color, l.Alpha
		needY = false
	case *plotspec.Smooth:
		color, alpha = l.Color, l.Alpha
		size = l.Width
	case *plotspec.Boxplot:
		color, alpha = l.Color, l.Alpha
	case *plotspec.Violin:
		color, alpha = l.Color, l.Alpha
	default:
		plotspec.BadLayer(l)
	}
	if needY {
		out.Y = r.position(i, l, plotspec.RoleY, m.Y, true)
	}

	out.Aes = append(out.Aes, r.text(i, l, plotspec.RoleColor, color)...)
	out.Aes = append(out.Aes, r.num(i, l, plotspec.RoleSize, size)...)
	out.Aes = append(out.Aes, r.text(i, l, plotspec.RoleShape, shape)...)
	out.Aes = append(out.Aes, r.num(i, l, plotspec.RoleAlpha, alpha)...)
	return out
}

// text classifies a string-valued aesthetic. A layer value, fixed or
// mapped, takes precedence over the global mapping.
func (r *resolver) text(i int, l plotspec.Layer, role plotspec.Role, v *plotspec.AesValue[string]) []Binding {
	switch {
	case v == nil:
		if col := r.spec.Aes.Get(role); col != "" {
			return []Binding{{Role: role, Column: r.column(i, l.Geom(), role, col)}}
		}
		return nil
	case v.IsMapped():
		return []Binding{{Role: role, Column: r.column(i, l.Geom(), role, v.Column)}}
	}
	return []Binding{{Role: role, Text: v.Fixed}}
}

func (r *resolver) num(i int, l plotspec.Layer, role plotspec.Role, v *plotspec.AesValue[float64]) []Binding {
	switch {
	case v == nil:
		if col := r.spec.Aes.Get(role); col != "" {
			return []Binding{{Role: role, Column: r.column(i, l.Geom(), role, col)}}
		}
		return nil
	case v.IsMapped():
		return []Binding{{Role: role, Column: r.column(i, l.Geom(), role, v.Column)}}
	}
	return []Binding{{Role: role, Num: v.Fixed}}
}

// checkAxes rejects plots whose layers disagree on what the x axis
// means. Binned and fitted layers cannot share an axis with the
// other family at all; categorical and continuous layers may share
// an axis only if they use the same x column.
func checkAxes(p *Plot) error {
	var cat, cont *Layer
	for _, l := range p.Layers {
		if plotspec.Categorical(l.Geom) {
			if cat == nil || isBinnedOrFitted(l) {
				cat = l
			}
		} else if cont == nil || isBinnedOrFitted(l) {
			cont = l
		}
	}
	if cat == nil || cont == nil {
		return nil
	}
	if isBinnedOrFitted(cat) || isBinnedOrFitted(cont) || cat.X != cont.X {
		return &AxisConflictError{
			Layer1: cat.Index, Geom1: cat.Geom.Geom(), X1: cat.X,
			Layer2: cont.Index, Geom2: cont.Geom.Geom(), X2: cont.X,
		}
	}
	for _, l := range p.Layers {
		if plotspec.Categorical(l.Geom) && l.X != cat.X {
			return &AxisConflictError{
				Layer1: cat.Index, Geom1: cat.Geom.Geom(), X1: cat.X,
				Layer2: l.Index, Geom2: l.Geom.Geom(), X2: l.X,
			}
		}
	}
	return nil
}

func isBinnedOrFitted(l *Layer) bool {
	switch l.Geom.(type) {
	case *plotspec.Histogram, *plotspec.Smooth:
		return true
	case *plotspec.Line, *plotspec.Point, *plotspec.Bar, *plotspec.Ribbon, *plotspec.Boxplot, *plotspec.Violin:
		return false
	default:
		plotspec.BadLayer(l.Geom)
	}
	return false
}

// MissingColumnError reports a column reference that is not in the
// data table.
type MissingColumnError struct {
	Layer  int // -1 for the facet
	Geom   string
	Role   plotspec.Role
	Column string
	Hint   string
}

func (e *MissingColumnError) Error() string {
	var msg string
	if e.Layer < 0 {
		msg = fmt.Sprintf("facet column %q not found in data", e.Column)
	} else {
		msg = fmt.Sprintf("layer %d (%s): %s column %q not found in data", e.Layer+1, e.Geom, e.Role, e.Column)
	}
	if e.Hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Hint)
	}
	return msg
}

// MissingAestheticError reports a layer that needs a role no
// mapping provides.
type MissingAestheticError struct {
	Layer int
	Geom  string
	Role  plotspec.Role
}

func (e *MissingAestheticError) Error() string {
	return fmt.Sprintf("layer %d (%s) requires aesthetic %s", e.Layer+1, e.Geom, e.Role)
}

// AxisConflictError reports two layers that cannot share an x axis.
type AxisConflictError struct {
	Layer1    int
	Geom1, X1 string
	Layer2    int
	Geom2, X2 string
}

func (e *AxisConflictError) Error() string {
	return fmt.Sprintf("layer %d (%s, x=%s) and layer %d (%s, x=%s) cannot share an x axis",
		e.Layer1+1, e.Geom1, e.X1, e.Layer2+1, e.Geom2, e.X2)
}

// suggest returns the column closest to name, if any is close.
func suggest(name string, columns []string) string {
	best, bestDist := "", 3
	for _, c := range columns {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
