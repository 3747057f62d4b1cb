// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotspec

import (
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// String returns the canonical pipeline text for s. Parsing the
// result yields a PlotSpec equal to s.
//
// Segments are printed in a fixed order: aes, layers, facet_wrap,
// labs, coord_flip, themes, then scales. Themes and scales keep
// their relative order since later ones override earlier ones.
func (s *PlotSpec) String() string {
	var segs []string
	if s.Aes != nil {
		var a args
		for _, r := range []Role{RoleX, RoleY, RoleYMin, RoleYMax, RoleColor, RoleSize, RoleShape, RoleAlpha} {
			a.column(string(r), s.Aes.Get(r))
		}
		segs = append(segs, a.call("aes"))
	}
	for _, l := range s.Layers {
		segs = append(segs, layerString(l))
	}
	if f := s.Facet; f != nil {
		var a args
		a.column("by", f.By)
		if f.NCol > 0 {
			a.num("ncol", float64(f.NCol))
		}
		if f.Scales != FixedScales {
			a.str("scales", f.Scales.String())
		}
		segs = append(segs, a.call("facet_wrap"))
	}
	if l := s.Labels; l != nil {
		var a args
		a.optStr("title", l.Title)
		a.optStr("subtitle", l.Subtitle)
		a.optStr("x", l.X)
		a.optStr("y", l.Y)
		a.optStr("caption", l.Caption)
		segs = append(segs, a.call("labs"))
	}
	if s.Flip {
		segs = append(segs, "coord_flip()")
	}
	for _, t := range s.Themes {
		segs = append(segs, themeString(t))
	}
	for _, d := range s.Scales {
		segs = append(segs, scaleString(d))
	}
	return strings.Join(segs, " | ")
}

func layerString(l Layer) string {
	var a args
	m := l.Columns()
	a.column("x", m.X)
	a.column("y", m.Y)
	switch l := l.(type) {
	case *Line:
		a.color("color", l.Color)
		a.number("width", l.Width)
		a.number("alpha", l.Alpha)
		a.optStr("linetype", l.Linetype)
	case *Point:
		a.color("color", l.Color)
		a.color("shape", l.Shape)
		a.number("size", l.Size)
		a.number("alpha", l.Alpha)
	case *Bar:
		a.color("color", l.Color)
		a.number("alpha", l.Alpha)
		a.optNum("width", l.Width)
		a.str("position", l.Position.String())
		if l.Count {
			a.str("stat", "count")
		}
	case *Ribbon:
		a.column("ymin", l.YMin)
		a.column("ymax", l.YMax)
		a.color("color", l.Color)
		a.number("alpha", l.Alpha)
	case *Histogram:
		a.num("bins", float64(l.Bins))
		a.color("color", l.Color)
		a.number("alpha", l.Alpha)
		a.str("position", l.Position.String())
	case *Smooth:
		a.color("color", l.Color)
		a.number("width", l.Width)
		a.number("alpha", l.Alpha)
		a.str("method", l.Method)
		if l.SE {
			a.add("se", "true")
		}
		a.num("level", l.Level)
	case *Boxplot:
		a.color("color", l.Color)
		a.number("alpha", l.Alpha)
		a.optNum("width", l.Width)
		a.str("position", l.Position.String())
		a.optStr("outlier_color", l.OutlierColor)
		a.optStr("outlier_shape", l.OutlierShape)
		a.optNum("outlier_size", l.OutlierSize)
	case *Violin:
		a.color("color", l.Color)
		a.number("alpha", l.Alpha)
		a.optNum("width", l.Width)
		a.str("position", l.Position.String())
		if l.DrawQuantiles != nil {
			qs := make([]string, len(l.DrawQuantiles))
			for i, q := range l.DrawQuantiles {
				qs[i] = fmtNum(q)
			}
			a.add("draw_quantiles", "["+strings.Join(qs, ", ")+"]")
		}
	default:
		BadLayer(l)
	}
	return a.call(l.Geom())
}

func themeString(t ThemeSpec) string {
	if t.Preset != "" {
		return "theme_" + t.Preset + "()"
	}
	var a args
	a.optStr("legend_position", t.LegendPosition)
	names := maps.Keys(t.Elements)
	slices.Sort(names)
	for _, name := range names {
		a.add(name, ElementString(t.Elements[name]))
	}
	return a.call("theme")
}

// ElementString returns the canonical call syntax for e.
func ElementString(e Element) string {
	var a args
	switch e := e.(type) {
	case *TextElement:
		a.optNumPtr("size", e.Size)
		a.optStrPtr("color", e.Color)
		a.optStrPtr("family", e.Family)
		a.optStrPtr("face", e.Face)
		a.optNumPtr("angle", e.Angle)
		a.optNumPtr("hjust", e.HJust)
		a.optNumPtr("vjust", e.VJust)
	case *LineElement:
		a.optStrPtr("color", e.Color)
		a.optNumPtr("width", e.Width)
		a.optStrPtr("linetype", e.Linetype)
	case *RectElement:
		a.optStrPtr("fill", e.Fill)
		a.optStrPtr("color", e.Color)
		a.optNumPtr("width", e.Width)
	case *BlankElement:
	default:
		panic("unknown element type")
	}
	return a.call(e.Kind().String())
}

func scaleString(d ScaleDirective) string {
	ax := d.Axis.String()
	switch {
	case d.Limits == nil && (d.Transform == Log10 || d.Transform == Reverse):
		return "scale_" + ax + "_" + d.Transform.String() + "()"
	case d.Limits != nil && d.Transform == NoTransform:
		var a args
		a.num("min", d.Limits[0])
		a.num("max", d.Limits[1])
		return a.call(ax + "lim")
	}
	var a args
	if d.Transform != NoTransform {
		a.str("trans", d.Transform.String())
	}
	if d.Limits != nil {
		a.add("limits", "["+fmtNum(d.Limits[0])+", "+fmtNum(d.Limits[1])+"]")
	}
	return a.call("scale_" + ax + "_continuous")
}

// args accumulates "key: value" arguments of one segment.
type args []string

func (a *args) add(key, val string) {
	*a = append(*a, key+": "+val)
}

func (a args) call(name string) string {
	return name + "(" + strings.Join(a, ", ") + ")"
}

func (a *args) str(key, s string) { a.add(key, strconv.Quote(s)) }

func (a *args) num(key string, v float64) { a.add(key, fmtNum(v)) }

func (a *args) optStr(key, s string) {
	if s != "" {
		a.str(key, s)
	}
}

func (a *args) optNum(key string, v float64) {
	if v != 0 {
		a.num(key, v)
	}
}

func (a *args) optStrPtr(key string, s *string) {
	if s != nil {
		a.str(key, *s)
	}
}

func (a *args) optNumPtr(key string, v *float64) {
	if v != nil {
		a.num(key, *v)
	}
}

// column prints a column reference, quoting it when it is not a
// plain identifier.
func (a *args) column(key, col string) {
	if col == "" {
		return
	}
	if IsIdent(col) {
		a.add(key, col)
	} else {
		a.str(key, col)
	}
}

func (a *args) color(key string, v *AesValue[string]) {
	switch {
	case v == nil:
	case v.IsMapped():
		a.add(key, v.Column)
	default:
		a.str(key, v.Fixed)
	}
}

func (a *args) number(key string, v *AesValue[float64]) {
	switch {
	case v == nil:
	case v.IsMapped():
		a.add(key, v.Column)
	default:
		a.num(key, v.Fixed)
	}
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// IsIdent reports whether s can be written as a bare identifier.
// The keywords true and false are not identifiers.
func IsIdent(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}
