// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene defines the drawing program handed to a renderer.
//
// A Scene is an ordered list of primitive commands in canvas
// coordinates: the origin is the top-left corner, x grows right, and y
// grows down. Later commands draw over earlier ones. Commands carry no
// knowledge of the geometry that produced them.
package scene

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/aclements/gramgraph/palette"
)

// Vec is a point in canvas coordinates.
type Vec struct {
	X, Y float64
}

// Bounds is an axis-aligned rectangle with Min at the top left.
type Bounds struct {
	Min, Max Vec
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether v is inside b, allowing for rounding
// error.
func (b Bounds) Contains(v Vec) bool {
	const eps = 1e-9
	return v.X >= b.Min.X-eps && v.X <= b.Max.X+eps && v.Y >= b.Min.Y-eps && v.Y <= b.Max.Y+eps
}

// Command is a drawing primitive. The set of Command types is closed:
// *Line, *Rect, *Point, *Polygon, and *Text.
type Command interface {
	isCommand()
}

// Line is an open polyline.
type Line struct {
	Points []Vec
	Style  LineStyle
}

// Rect is a filled and stroked rectangle.
type Rect struct {
	Bounds
	Style RectStyle
}

// Point is a marker centered at At.
type Point struct {
	At    Vec
	Style PointStyle
}

// Polygon is a closed, filled shape.
type Polygon struct {
	Points []Vec
	Style  RectStyle
}

// Text is a label anchored at At. The style's justification selects
// which part of the text's box sits on At.
type Text struct {
	At    Vec
	Text  string
	Style TextStyle
}

func (*Line) isCommand()    {}
func (*Rect) isCommand()    {}
func (*Point) isCommand()   {}
func (*Polygon) isCommand() {}
func (*Text) isCommand()    {}

// BadCommand panics on a Command of unknown type.
func BadCommand(c Command) {
	panic(fmt.Sprintf("unknown scene command %T", c))
}

type LineStyle struct {
	Color color.RGBA
	Width float64
	// Dash is the on/off dash pattern, or nil for a solid line.
	Dash []float64
}

// RectStyle styles rectangles and polygons. A zero Width or a
// transparent color disables the stroke.
type RectStyle struct {
	Fill   color.RGBA
	Stroke color.RGBA
	Width  float64
}

type PointStyle struct {
	Color color.RGBA
	// Size is the marker's diameter in pixels.
	Size  float64
	Shape palette.Shape
}

type TextStyle struct {
	Color color.RGBA
	// Size is the font size in pixels.
	Size         float64
	Family, Face string
	// Angle is the counterclockwise rotation in degrees.
	Angle float64
	// HJust and VJust place At within the text box: 0 is the left
	// (top) edge, 1 is the right (bottom) edge.
	HJust, VJust float64
}

// SwatchKind is how a legend entry draws its key.
type SwatchKind int

const (
	SwatchRect SwatchKind = iota
	SwatchLine
	SwatchPoint
)

func (k SwatchKind) String() string {
	switch k {
	case SwatchRect:
		return "rect"
	case SwatchLine:
		return "line"
	case SwatchPoint:
		return "point"
	}
	return fmt.Sprintf("SwatchKind(%d)", int(k))
}

// LegendEntry describes one group of the legend.
type LegendEntry struct {
	Label string
	Color color.RGBA
	Shape palette.Shape
	Kind  SwatchKind
}

// Panel is one facet panel of the scene.
type Panel struct {
	// Title is the strip title, or "" if the plot is not faceted.
	Title  string
	Bounds Bounds
}

// Scene is a complete drawing program.
type Scene struct {
	Width, Height float64
	Commands      []Command
	Legend        []LegendEntry
	Panels        []Panel
}

// Add appends commands to the scene.
func (s *Scene) Add(cs ...Command) {
	s.Commands = append(s.Commands, cs...)
}

// Fprint writes a human-readable listing of s to w, one command per
// line.
func Fprint(w io.Writer, s *Scene) error {
	var b strings.Builder
	fmt.Fprintf(&b, "scene %gx%g\n", s.Width, s.Height)
	for _, p := range s.Panels {
		fmt.Fprintf(&b, "panel %q %s\n", p.Title, fmtBounds(p.Bounds))
	}
	for _, c := range s.Commands {
		switch c := c.(type) {
		case *Line:
			fmt.Fprintf(&b, "line %s %s w=%g", fmtColor(c.Style.Color), fmtVecs(c.Points), c.Style.Width)
			if c.Style.Dash != nil {
				fmt.Fprintf(&b, " dash=%v", c.Style.Dash)
			}
		case *Rect:
			fmt.Fprintf(&b, "rect %s fill=%s stroke=%s", fmtBounds(c.Bounds), fmtColor(c.Style.Fill), fmtColor(c.Style.Stroke))
		case *Point:
			fmt.Fprintf(&b, "point %s %s %s size=%g", fmtVec(c.At), c.Style.Shape, fmtColor(c.Style.Color), c.Style.Size)
		case *Polygon:
			fmt.Fprintf(&b, "polygon %s fill=%s", fmtVecs(c.Points), fmtColor(c.Style.Fill))
		case *Text:
			fmt.Fprintf(&b, "text %s %q size=%g", fmtVec(c.At), c.Text, c.Style.Size)
			if c.Style.Angle != 0 {
				fmt.Fprintf(&b, " angle=%g", c.Style.Angle)
			}
		default:
			BadCommand(c)
		}
		b.WriteByte('\n')
	}
	for _, e := range s.Legend {
		fmt.Fprintf(&b, "legend %q %s %s", e.Label, e.Kind, fmtColor(e.Color))
		if e.Kind == SwatchPoint {
			fmt.Fprintf(&b, " %s", e.Shape)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func fmtVec(v Vec) string {
	return fmt.Sprintf("(%.4g,%.4g)", v.X, v.Y)
}

func fmtVecs(vs []Vec) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmtVec(v)
	}
	return strings.Join(parts, " ")
}

func fmtBounds(b Bounds) string {
	return fmtVec(b.Min) + "-" + fmtVec(b.Max)
}

func fmtColor(c color.RGBA) string {
	if c.A == 0 {
		return "none"
	}
	if c.A != 0xff {
		return fmt.Sprintf("%s/%.2f", palette.Hex(c), palette.Opacity(c))
	}
	return palette.Hex(c)
}
