// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
	"strings"
	"testing"

	"github.com/aclements/gramgraph/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFprint(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	s := &Scene{Width: 100, Height: 50}
	s.Panels = []Panel{{Title: "", Bounds: Bounds{Vec{10, 5}, Vec{90, 45}}}}
	s.Add(
		&Rect{Bounds: Bounds{Vec{0, 0}, Vec{100, 50}}, Style: RectStyle{Fill: color.RGBA{0xff, 0xff, 0xff, 0xff}}},
		&Line{Points: []Vec{{10, 40}, {50, 20}}, Style: LineStyle{Color: red, Width: 1, Dash: []float64{4, 2}}},
		&Point{At: Vec{50, 20}, Style: PointStyle{Color: color.RGBA{0, 0, 0x80, 0x80}, Size: 4, Shape: palette.Diamond}},
		&Text{At: Vec{50, 2}, Text: "title", Style: TextStyle{Size: 14, Angle: 90}},
	)
	s.Legend = []LegendEntry{{Label: "a", Color: red, Kind: SwatchPoint, Shape: palette.Circle}}

	var b strings.Builder
	require.NoError(t, Fprint(&b, s))
	want := `scene 100x50
panel "" (10,5)-(90,45)
rect (0,0)-(100,50) fill=#ffffff stroke=none
line #ff0000 (10,40) (50,20) w=1 dash=[4 2]
point (50,20) diamond #0000ff/0.50 size=4
text (50,2) "title" size=14 angle=90
legend "a" point #ff0000 circle
`
	assert.Equal(t, want, b.String())
}

func TestBounds(t *testing.T) {
	b := Bounds{Vec{1, 2}, Vec{5, 10}}
	assert.Equal(t, 4.0, b.Width())
	assert.Equal(t, 8.0, b.Height())
	assert.True(t, b.Contains(Vec{1, 10}))
	assert.False(t, b.Contains(Vec{0.5, 3}))
}
