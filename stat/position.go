// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/gramgraph/plotspec"
)

// DefaultWidth is the fraction of a category occupied by bars, boxes,
// and violins.
const DefaultWidth = 0.8

// placement returns the position adjustment and width of a
// categorical geometry. ok is false for geometries that are not
// placed in slots.
func placement(l plotspec.Layer) (pos plotspec.Position, width float64, ok bool) {
	switch l := l.(type) {
	case *plotspec.Bar:
		pos, width = l.Position, l.Width
	case *plotspec.Histogram:
		// Bins touch.
		return l.Position, 1, true
	case *plotspec.Boxplot:
		pos, width = l.Position, l.Width
	case *plotspec.Violin:
		pos, width = l.Position, l.Width
	case *plotspec.Line, *plotspec.Point, *plotspec.Ribbon, *plotspec.Smooth:
		return 0, 0, false
	default:
		plotspec.BadLayer(l)
	}
	if width == 0 {
		width = DefaultWidth
	}
	return pos, width, true
}

// cats returns the distinct categories occupied by s.
func (s *Series) cats() []string {
	var out []string
	seen := map[string]bool{}
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, p := range s.Points {
		add(p.Cat)
	}
	for _, b := range s.Boxes {
		add(b.Cat)
	}
	for _, v := range s.Violins {
		add(v.Cat)
	}
	return out
}

// position assigns slots to the categorical series of p.
//
// Under dodge, the occupants of a category are every dodged series
// with data there, in series order; they split the widest occupant's
// width evenly. Under stack, bars accumulate a running base per
// category in series order. Boxes and violins cannot stack and are
// placed as identity.
func position(p *Panel) {
	occupants := map[string][]*Series{}
	widths := map[string]float64{}
	for _, s := range p.Series {
		pos, w, ok := placement(s.Layer.Geom)
		if !ok || pos != plotspec.Dodge {
			continue
		}
		for _, c := range s.cats() {
			occupants[c] = append(occupants[c], s)
			widths[c] = math.Max(widths[c], w)
		}
	}
	dodge := func(s *Series, c string) Slot {
		occ := occupants[c]
		n := float64(len(occ))
		w := widths[c]
		for i, o := range occ {
			if o == s {
				return Slot{Offset: -w/2 + (float64(i)+0.5)*w/n, Width: w / n}
			}
		}
		panic("series is not an occupant of its own category")
	}

	base := map[string]float64{}
	for _, s := range p.Series {
		pos, w, ok := placement(s.Layer.Geom)
		if !ok {
			continue
		}
		slot := func(c string) Slot {
			if pos == plotspec.Dodge {
				return dodge(s, c)
			}
			return Slot{Width: w}
		}
		for i := range s.Points {
			pt := &s.Points[i]
			pt.Slot = slot(pt.Cat)
			if pos == plotspec.Stack {
				pt.Base = base[pt.Cat]
				pt.Y += pt.Base
				base[pt.Cat] = pt.Y
			}
		}
		for i := range s.Boxes {
			s.Boxes[i].Slot = slot(s.Boxes[i].Cat)
		}
		for i := range s.Violins {
			s.Violins[i].Slot = slot(s.Violins[i].Cat)
		}
	}
}
