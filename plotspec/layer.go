// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotspec

import "fmt"

// Layer is one geometry of a pipeline. The set of Layer types is
// closed: it is exactly *Line, *Point, *Bar, *Ribbon, *Histogram,
// *Smooth, *Boxplot, and *Violin. Code that switches over layers
// should list every variant and call BadLayer in the default case.
type Layer interface {
	// Geom returns the segment name of this layer, such as "line".
	Geom() string

	// Columns returns the layer's column overrides.
	Columns() *Mapping

	isLayer()
}

// BadLayer panics on a Layer that is not one of the known variants.
func BadLayer(l Layer) {
	panic(fmt.Sprintf("unknown layer type %T", l))
}

// Mapping holds per-layer column overrides of the global aesthetics.
// An empty string defers to the global mapping.
type Mapping struct {
	X, Y string
}

func (m *Mapping) Columns() *Mapping { return m }

// Line connects observations in x order.
type Line struct {
	Mapping
	Color    *AesValue[string]
	Width    *AesValue[float64]
	Alpha    *AesValue[float64]
	Linetype string // "solid", "dashed", "dotted", or "" for solid
}

// Point draws one marker per observation.
type Point struct {
	Mapping
	Color *AesValue[string]
	Shape *AesValue[string]
	Size  *AesValue[float64]
	Alpha *AesValue[float64]
}

// Bar draws one rectangle per observation on a categorical x axis.
type Bar struct {
	Mapping
	Color *AesValue[string]
	Alpha *AesValue[float64]
	// Width is the fraction of a category occupied by bars, or 0
	// for the default.
	Width    float64
	Position Position
	// Count replaces y with the number of rows in each category.
	Count bool
}

// Ribbon fills the band between YMin and YMax along x.
type Ribbon struct {
	Mapping
	YMin, YMax string
	Color      *AesValue[string]
	Alpha      *AesValue[float64]
}

// Histogram bins x into equal-width bins and draws counts.
type Histogram struct {
	Mapping
	Bins     int
	Color    *AesValue[string]
	Alpha    *AesValue[float64]
	Position Position
}

// DefaultBins is the histogram bin count when bins is not given.
const DefaultBins = 30

// Smooth draws a fitted curve of y against x.
type Smooth struct {
	Mapping
	Color *AesValue[string]
	Width *AesValue[float64]
	Alpha *AesValue[float64]
	// Method is "lm" or "loess".
	Method string
	// SE adds a confidence band at Level.
	SE    bool
	Level float64
}

// DefaultLevel is the smooth confidence level when level is not
// given.
const DefaultLevel = 0.95

// Boxplot draws a five-number summary of y per x category.
type Boxplot struct {
	Mapping
	Color        *AesValue[string]
	Alpha        *AesValue[float64]
	Width        float64
	Position     Position
	OutlierColor string
	OutlierShape string
	OutlierSize  float64
}

// Violin draws a mirrored density estimate of y per x category.
type Violin struct {
	Mapping
	Color         *AesValue[string]
	Alpha         *AesValue[float64]
	Width         float64
	Position      Position
	DrawQuantiles []float64
}

func (*Line) Geom() string      { return "line" }
func (*Point) Geom() string     { return "point" }
func (*Bar) Geom() string       { return "bar" }
func (*Ribbon) Geom() string    { return "ribbon" }
func (*Histogram) Geom() string { return "histogram" }
func (*Smooth) Geom() string    { return "smooth" }
func (*Boxplot) Geom() string   { return "boxplot" }
func (*Violin) Geom() string    { return "violin" }

func (*Line) isLayer()      {}
func (*Point) isLayer()     {}
func (*Bar) isLayer()       {}
func (*Ribbon) isLayer()    {}
func (*Histogram) isLayer() {}
func (*Smooth) isLayer()    {}
func (*Boxplot) isLayer()   {}
func (*Violin) isLayer()    {}

// Categorical reports whether l places its data on a categorical x
// axis.
func Categorical(l Layer) bool {
	switch l.(type) {
	case *Bar, *Histogram, *Boxplot, *Violin:
		return true
	case *Line, *Point, *Ribbon, *Smooth:
		return false
	default:
		BadLayer(l)
	}
	return false
}
