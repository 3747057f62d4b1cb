// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palette assigns colors, shapes, sizes, and alphas to groups
// and parses color names.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	ggpalette "github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
)

// Palette is a qualitative color table.
type Palette struct {
	Name   string
	Colors []color.RGBA
}

// category10 is the default qualitative palette.
var category10 = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xff, 0x7f, 0x0e, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x94, 0x67, 0xbd, 0xff},
	{0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
	{0xbc, 0xbd, 0x22, 0xff},
	{0x17, 0xbe, 0xcf, 0xff},
}

// Default returns the default palette.
func Default() *Palette {
	return &Palette{Name: "category10", Colors: category10}
}

// ByName returns the palette called name: "category10" (or "" or
// "default"), or any ColorBrewer palette such as "Set1" or "Dark2",
// using its largest variant.
func ByName(name string) (*Palette, error) {
	switch name {
	case "", "default", "category10":
		return Default(), nil
	}
	variants, ok := brewer.ByName[name]
	if !ok {
		var names []string
		for n := range brewer.ByName {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown palette %q (want category10 or one of %s)", name, strings.Join(names, ", "))
	}
	best := 0
	for n := range variants {
		if n > best {
			best = n
		}
	}
	p := &Palette{Name: name}
	for _, c := range variants[best] {
		p.Colors = append(p.Colors, color.RGBAModel.Convert(c).(color.RGBA))
	}
	return p, nil
}

// Color returns the color of the i'th group. Past the end of the
// table, colors repeat, progressively darkened on each cycle.
func (p *Palette) Color(i int) color.RGBA {
	n := len(p.Colors)
	c := p.Colors[i%n]
	cycle := i / n
	if cycle == 0 {
		return c
	}
	shade := 0.2 * float64(cycle)
	if shade > 0.6 {
		shade = 0.6
	}
	dark := func(v uint8) uint8 { return uint8(float64(v)*(1-shade) + 0.5) }
	return color.RGBA{dark(c.R), dark(c.G), dark(c.B), c.A}
}

// Continuous maps x in [0, 1] to the viridis color scale.
func Continuous(x float64) color.RGBA {
	return color.RGBAModel.Convert(ggpalette.Viridis.Map(clamp(x))).(color.RGBA)
}

// Shape is a point marker.
type Shape int

const (
	Circle Shape = iota
	Triangle
	Square
	Diamond
	Cross
)

var shapeNames = []string{"circle", "triangle", "square", "diamond", "cross"}

func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape returns the shape called name.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "circle", "dot":
		return Circle, nil
	case "triangle":
		return Triangle, nil
	case "square", "box":
		return Square, nil
	case "diamond":
		return Diamond, nil
	case "cross", "plus", "x":
		return Cross, nil
	}
	return 0, fmt.Errorf("unknown shape %q (want one of %s)", name, strings.Join(shapeNames, ", "))
}

// ShapeAt returns the shape of the i'th group.
func ShapeAt(i int) Shape {
	return Shape(i % len(shapeNames))
}

// Point sizes and alphas for mapped values.
const (
	MinSize, MaxSize   = 2.0, 8.0
	MinAlpha, MaxAlpha = 0.3, 1.0
)

// Size maps v in [lo, hi] linearly to [MinSize, MaxSize].
func Size(v, lo, hi float64) float64 {
	return lerp(v, lo, hi, MinSize, MaxSize)
}

// Alpha maps v in [lo, hi] linearly to [MinAlpha, MaxAlpha].
func Alpha(v, lo, hi float64) float64 {
	if lo == hi {
		return MaxAlpha
	}
	return lerp(v, lo, hi, MinAlpha, MaxAlpha)
}

func lerp(v, lo, hi, out0, out1 float64) float64 {
	if lo == hi {
		return (out0 + out1) / 2
	}
	return out0 + clamp((v-lo)/(hi-lo))*(out1-out0)
}

func clamp(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
