// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plotspec defines the abstract plot specification produced
// by parsing a gramgraph pipeline.
//
// A PlotSpec is built once by the parser and is read-only afterwards.
// Its String method prints the canonical form of the pipeline, which
// parses back to an equal PlotSpec.
package plotspec

// PlotSpec is the root of a parsed pipeline.
type PlotSpec struct {
	// Aes is the global aesthetic mapping, or nil if the pipeline
	// has no aes segment.
	Aes *Aesthetics

	// Layers are the geometry layers in pipeline order.
	Layers []Layer

	Facet  *Facet
	Labels *Labels

	// Themes are preset and theme() segments in pipeline order.
	Themes []ThemeSpec

	// Scales are scale directives in pipeline order. Later
	// directives for the same axis override earlier ones.
	Scales []ScaleDirective

	// Flip is set by coord_flip().
	Flip bool
}

// Aesthetics maps semantic roles to column names. An empty string
// means the role is unset.
type Aesthetics struct {
	X, Y       string
	YMin, YMax string
	Color      string
	Size       string
	Shape      string
	Alpha      string
}

// Role names an aesthetic role.
type Role string

const (
	RoleX     Role = "x"
	RoleY     Role = "y"
	RoleYMin  Role = "ymin"
	RoleYMax  Role = "ymax"
	RoleColor Role = "color"
	RoleSize  Role = "size"
	RoleShape Role = "shape"
	RoleAlpha Role = "alpha"
)

// GroupRoles are the roles that split data into groups when mapped
// to a column, in the order groups are keyed.
var GroupRoles = []Role{RoleColor, RoleSize, RoleShape, RoleAlpha}

// Get returns the column mapped to role r.
func (a *Aesthetics) Get(r Role) string {
	if a == nil {
		return ""
	}
	switch r {
	case RoleX:
		return a.X
	case RoleY:
		return a.Y
	case RoleYMin:
		return a.YMin
	case RoleYMax:
		return a.YMax
	case RoleColor:
		return a.Color
	case RoleSize:
		return a.Size
	case RoleShape:
		return a.Shape
	case RoleAlpha:
		return a.Alpha
	}
	return ""
}

// Set maps role r to column col. It reports false if r is not a
// known role.
func (a *Aesthetics) Set(r Role, col string) bool {
	switch r {
	case RoleX:
		a.X = col
	case RoleY:
		a.Y = col
	case RoleYMin:
		a.YMin = col
	case RoleYMax:
		a.YMax = col
	case RoleColor:
		a.Color = col
	case RoleSize:
		a.Size = col
	case RoleShape:
		a.Shape = col
	case RoleAlpha:
		a.Alpha = col
	default:
		return false
	}
	return true
}

// AesValue is either a fixed literal or a mapping to a data column.
// A nil *AesValue means the property was not given.
type AesValue[T string | float64] struct {
	// Column is the mapped column name. If it is empty, the value
	// is Fixed.
	Column string
	Fixed  T
}

// Fixed returns a constant aesthetic value.
func Fixed[T string | float64](v T) *AesValue[T] {
	return &AesValue[T]{Fixed: v}
}

// Mapped returns an aesthetic value driven by column col.
func Mapped[T string | float64](col string) *AesValue[T] {
	return &AesValue[T]{Column: col}
}

// IsMapped reports whether v is driven by a data column.
func (v *AesValue[T]) IsMapped() bool {
	return v != nil && v.Column != ""
}

// Position is a position adjustment for categorical geometries.
type Position int

const (
	Identity Position = iota
	Dodge
	Stack
)

func (p Position) String() string {
	switch p {
	case Identity:
		return "identity"
	case Dodge:
		return "dodge"
	case Stack:
		return "stack"
	}
	return "Position(?)"
}

// ParsePosition parses a position name.
func ParsePosition(s string) (Position, bool) {
	switch s {
	case "identity":
		return Identity, true
	case "dodge":
		return Dodge, true
	case "stack":
		return Stack, true
	}
	return 0, false
}

// Facet splits the data into small multiples by the values of a
// column.
type Facet struct {
	By string
	// NCol is the number of grid columns, or 0 for an automatic
	// square-ish grid.
	NCol   int
	Scales FacetScales
}

// FacetScales controls whether axis domains are shared across facet
// panels.
type FacetScales int

const (
	FixedScales FacetScales = iota
	FreeX
	FreeY
	Free
)

var facetScaleNames = []string{"fixed", "free_x", "free_y", "free"}

func (s FacetScales) String() string {
	if int(s) < len(facetScaleNames) {
		return facetScaleNames[s]
	}
	return "FacetScales(?)"
}

// ParseFacetScales parses a facet scale-sharing mode.
func ParseFacetScales(s string) (FacetScales, bool) {
	for i, n := range facetScaleNames {
		if n == s {
			return FacetScales(i), true
		}
	}
	return 0, false
}

// FreeAxis reports whether axis a gets an independent domain per
// panel.
func (s FacetScales) FreeAxis(a Axis) bool {
	switch s {
	case Free:
		return true
	case FreeX:
		return a == XAxis
	case FreeY:
		return a == YAxis
	}
	return false
}

// Labels holds plot annotations from labs().
type Labels struct {
	Title, Subtitle string
	X, Y            string
	Caption         string
}

// Axis identifies a position axis.
type Axis int

const (
	XAxis Axis = iota
	YAxis
)

func (a Axis) String() string {
	if a == XAxis {
		return "x"
	}
	return "y"
}

// Transform is an axis scale transform.
type Transform int

const (
	// NoTransform means the directive leaves the transform alone.
	NoTransform Transform = iota
	Linear
	Log10
	Reverse
)

func (t Transform) String() string {
	switch t {
	case NoTransform:
		return "none"
	case Linear:
		return "identity"
	case Log10:
		return "log10"
	case Reverse:
		return "reverse"
	}
	return "Transform(?)"
}

// ScaleDirective adjusts one axis. Zero fields leave the axis
// unchanged.
type ScaleDirective struct {
	Axis      Axis
	Transform Transform
	// Limits, if non-nil, are explicit [min, max] domain bounds.
	Limits *[2]float64
}
