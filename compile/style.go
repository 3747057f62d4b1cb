// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/scene"
	"github.com/aclements/gramgraph/stat"
	"golang.org/x/exp/slices"
)

// Default layer styling. Point sizes are marker radii and line sizes
// are stroke widths, both in pixels.
const (
	defaultPointSize = 2.5
	defaultLineWidth = 1.5
	ribbonAlpha      = 0.4
	bandAlpha        = 0.3
	outlierSize      = 1.5
)

// boxStroke outlines boxes and violins.
var boxStroke = color.RGBA{0x33, 0x33, 0x33, 0xff}

// style is the palette-driven styling of one series.
type style struct {
	// color is the group's color with its alpha applied.
	color color.RGBA
	alpha float64
	// size is a point radius or a line width.
	size  float64
	shape palette.Shape

	// Boxplot outlier overrides.
	outlierColor *color.RGBA
	outlierShape *palette.Shape
}

// fade scales the opacity of c by a.
func fade(c color.RGBA, a float64) color.RGBA {
	if a >= 1 {
		return c
	}
	if a < 0 {
		a = 0
	}
	f := func(v uint8) uint8 { return uint8(math.Round(float64(v) * a)) }
	return color.RGBA{f(c.R), f(c.G), f(c.B), f(c.A)}
}

// isLine reports whether the size role of l is a stroke width.
func isLine(l plotspec.Layer) bool {
	switch l.(type) {
	case *plotspec.Line, *plotspec.Smooth:
		return true
	}
	return false
}

func swatch(l plotspec.Layer) scene.SwatchKind {
	switch l.(type) {
	case *plotspec.Line, *plotspec.Smooth:
		return scene.SwatchLine
	case *plotspec.Point:
		return scene.SwatchPoint
	case *plotspec.Bar, *plotspec.Ribbon, *plotspec.Histogram, *plotspec.Boxplot, *plotspec.Violin:
		return scene.SwatchRect
	default:
		plotspec.BadLayer(l)
	}
	return scene.SwatchRect
}

// level returns the index of value v among the levels of col.
func (c *compiler) level(col, v string) int {
	if i := slices.Index(c.res.Levels[col], v); i >= 0 {
		return i
	}
	return 0
}

// numRange returns the numeric range of the levels of col.
func (c *compiler) numRange(col string) (lo, hi float64) {
	if r, ok := c.ranges[col]; ok {
		return r[0], r[1]
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range c.res.Levels[col] {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	c.ranges[col] = [2]float64{lo, hi}
	return lo, hi
}

// seriesStyle computes the styling of s from its layer's fixed values
// and the series' group values.
func (c *compiler) seriesStyle(s *stat.Series) (style, error) {
	l := s.Layer
	st := style{color: c.pal.Color(0), alpha: 1, shape: palette.Circle, size: defaultPointSize}
	switch l.Geom.(type) {
	case *plotspec.Line, *plotspec.Smooth:
		st.size = defaultLineWidth
	case *plotspec.Ribbon:
		st.alpha = ribbonAlpha
	}
	for _, b := range l.Aes {
		if !b.Mapped() {
			switch b.Role {
			case plotspec.RoleColor:
				col, err := palette.ParseColor(b.Text)
				if err != nil {
					return st, fmt.Errorf("layer %d (%s): %w", l.Index+1, l.Geom.Geom(), err)
				}
				st.color = col
			case plotspec.RoleShape:
				sh, err := palette.ParseShape(b.Text)
				if err != nil {
					return st, fmt.Errorf("layer %d (%s): %w", l.Index+1, l.Geom.Geom(), err)
				}
				st.shape = sh
			case plotspec.RoleSize:
				st.size = b.Num
			case plotspec.RoleAlpha:
				st.alpha = b.Num
			}
			continue
		}
		v := s.Values[b.Role]
		switch b.Role {
		case plotspec.RoleColor:
			st.color = c.pal.Color(c.level(b.Column, v))
		case plotspec.RoleShape:
			st.shape = palette.ShapeAt(c.level(b.Column, v))
		case plotspec.RoleSize:
			lo, hi := c.numRange(b.Column)
			x, _ := strconv.ParseFloat(v, 64)
			st.size = palette.Size(x, lo, hi)
			if isLine(l.Geom) {
				st.size /= 2
			}
		case plotspec.RoleAlpha:
			lo, hi := c.numRange(b.Column)
			x, _ := strconv.ParseFloat(v, 64)
			st.alpha = palette.Alpha(x, lo, hi)
		}
	}
	st.color = fade(st.color, st.alpha)

	if g, ok := l.Geom.(*plotspec.Boxplot); ok {
		if g.OutlierColor != "" {
			col, err := palette.ParseColor(g.OutlierColor)
			if err != nil {
				return st, fmt.Errorf("layer %d (boxplot) outlier_color: %w", l.Index+1, err)
			}
			st.outlierColor = &col
		}
		if g.OutlierShape != "" {
			sh, err := palette.ParseShape(g.OutlierShape)
			if err != nil {
				return st, fmt.Errorf("layer %d (boxplot) outlier_shape: %w", l.Index+1, err)
			}
			st.outlierShape = &sh
		}
	}
	return st, nil
}

// styles computes the style of every series and the legend: one
// entry per distinct group label, ordered by layer and then by group.
func (c *compiler) styles() error {
	var all []*stat.Series
	for _, p := range c.res.Panels {
		all = append(all, p.Series...)
	}
	slices.SortStableFunc(all, func(a, b *stat.Series) bool {
		if a.Layer.Index != b.Layer.Index {
			return a.Layer.Index < b.Layer.Index
		}
		return a.Group < b.Group
	})
	seen := map[string]bool{}
	for _, s := range all {
		st, err := c.seriesStyle(s)
		if err != nil {
			return err
		}
		c.style[s] = st
		if s.Label == "" || seen[s.Label] {
			continue
		}
		seen[s.Label] = true
		c.scene.Legend = append(c.scene.Legend, scene.LegendEntry{
			Label: s.Label,
			Color: st.color,
			Shape: st.shape,
			Kind:  swatch(s.Layer.Geom),
		})
		if c.legendTitle == "" {
			c.legendTitle = groupColumns(s)
		}
	}
	return nil
}

// groupColumns names the grouping columns of s's layer.
func groupColumns(s *stat.Series) string {
	var cols []string
	for _, b := range s.Layer.Groups() {
		if !slices.Contains(cols, b.Column) {
			cols = append(cols, b.Column)
		}
	}
	return strings.Join(cols, ", ")
}

// dash returns the dash pattern of a line type at the given width.
func dash(linetype string, width float64) []float64 {
	w := math.Max(width, 1)
	switch linetype {
	case "dashed":
		return []float64{4 * w, 3 * w}
	case "dotted":
		return []float64{w, 2 * w}
	}
	return nil
}
