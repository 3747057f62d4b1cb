// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/aclements/gramgraph/data"
	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/parse"
	"github.com/aclements/gramgraph/resolve"
	"github.com/aclements/gramgraph/scales"
	"github.com/aclements/gramgraph/scene"
	"github.com/aclements/gramgraph/stat"
	"github.com/aclements/gramgraph/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, csv, src string) (*scene.Scene, error) {
	t.Helper()
	tab, err := data.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	spec, err := parse.Parse(src)
	require.NoError(t, err)
	p, err := resolve.Resolve(spec, tab.Columns())
	require.NoError(t, err)
	res, err := stat.Transform(context.Background(), p, tab)
	require.NoError(t, err)
	sc, err := scales.Train(res, p, spec.Scales)
	require.NoError(t, err)
	var sheets []theme.Sheet
	for _, ts := range spec.Themes {
		s, err := theme.FromSpec(ts)
		require.NoError(t, err)
		sheets = append(sheets, s)
	}
	th, err := theme.Resolve(sheets...)
	require.NoError(t, err)
	return Compile(Input{
		Plot:   p,
		Result: res,
		Scales: sc,
		Theme:  th,
		Labels: spec.Labels,
		Width:  800,
		Height: 600,
	})
}

func mustBuild(t *testing.T, csv, src string) *scene.Scene {
	t.Helper()
	s, err := build(t, csv, src)
	require.NoError(t, err)
	return s
}

var (
	color0 = palette.Default().Color(0)
	color1 = palette.Default().Color(1)
)

// inPanel reports whether v is in some panel, which excludes legend
// swatches.
func inPanel(s *scene.Scene, v scene.Vec) bool {
	for _, p := range s.Panels {
		if p.Bounds.Contains(v) {
			return true
		}
	}
	return false
}

// linesOf returns the data lines drawn in color c.
func linesOf(s *scene.Scene, c color.RGBA) []*scene.Line {
	var out []*scene.Line
	for _, cmd := range s.Commands {
		if l, ok := cmd.(*scene.Line); ok && l.Style.Color == c && inPanel(s, l.Points[0]) {
			out = append(out, l)
		}
	}
	return out
}

// rectsOf returns the data rectangles filled with color c.
func rectsOf(s *scene.Scene, c color.RGBA) []*scene.Rect {
	var out []*scene.Rect
	for _, cmd := range s.Commands {
		if r, ok := cmd.(*scene.Rect); ok && r.Style.Fill == c && inPanel(s, r.Min) {
			out = append(out, r)
		}
	}
	return out
}

func countOf[T scene.Command](s *scene.Scene) int {
	n := 0
	for _, cmd := range s.Commands {
		if _, ok := cmd.(T); ok {
			n++
		}
	}
	return n
}

func TestLineScenario(t *testing.T) {
	s := mustBuild(t, "x,y\n1,2\n2,4\n3,6\n", `aes(x: x, y: y) | line()`)
	require.Len(t, s.Panels, 1)
	b := s.Panels[0].Bounds
	assert.Equal(t, "", s.Panels[0].Title)

	lines := linesOf(s, color0)
	require.Len(t, lines, 1)
	pts := lines[0].Points
	require.Len(t, pts, 3)
	for i, p := range pts {
		assert.True(t, p.X > b.Min.X && p.X < b.Max.X && p.Y > b.Min.Y && p.Y < b.Max.Y, "point %v is strictly inside the padded panel", p)
		if i > 0 {
			assert.Greater(t, p.X, pts[i-1].X)
			assert.Less(t, p.Y, pts[i-1].Y, "larger y is higher on the canvas")
		}
	}
	// The data spans 1/1.1 of the padded domain on both axes.
	assert.InDelta(t, b.Width()/1.1, pts[2].X-pts[0].X, 1e-6)
	assert.InDelta(t, b.Height()/1.1, pts[0].Y-pts[2].Y, 1e-6)
	assert.Empty(t, s.Legend)
}

func TestStackScenario(t *testing.T) {
	s := mustBuild(t, "cat,v,g\na,1,p\na,2,q\n", `aes(x: cat, y: v, color: g) | bar(position: "stack")`)
	p, q := rectsOf(s, color0), rectsOf(s, color1)
	require.Len(t, p, 1)
	require.Len(t, q, 1)
	lo, hi := p[0].Bounds, q[0].Bounds
	assert.InDelta(t, lo.Min.Y, hi.Max.Y, 1e-9, "segments are contiguous")
	assert.InDelta(t, 2*lo.Height(), hi.Height(), 1e-6)
	assert.Equal(t, lo.Min.X, hi.Min.X)
	assert.Equal(t, lo.Max.X, hi.Max.X)

	require.Len(t, s.Legend, 2)
	assert.Equal(t, "p", s.Legend[0].Label)
	assert.Equal(t, "q", s.Legend[1].Label)
	assert.Equal(t, scene.SwatchRect, s.Legend[0].Kind)
}

func TestDodge(t *testing.T) {
	s := mustBuild(t, "cat,v,g\na,1,p\na,2,q\nb,3,p\nb,1,q\n", `aes(x: cat, y: v, color: g) | bar(position: "dodge")`)
	b := s.Panels[0].Bounds
	p, q := rectsOf(s, color0), rectsOf(s, color1)
	require.Len(t, p, 2)
	require.Len(t, q, 2)
	for i := range p {
		assert.InDelta(t, p[i].Width(), q[i].Width(), 1e-9, "equal slots")
		assert.InDelta(t, p[i].Max.X, q[i].Min.X, 1e-9, "adjacent slots")
		// Two categories share the panel; bars fill 80% of each.
		assert.InDelta(t, 0.8*b.Width()/2, q[i].Max.X-p[i].Min.X, 1e-6)
	}
}

func TestFlip(t *testing.T) {
	s := mustBuild(t, "cat,v\na,1\nb,2\n", `aes(x: cat, y: v) | bar() | coord_flip()`)
	rs := rectsOf(s, color0)
	require.Len(t, rs, 2)
	assert.InDelta(t, rs[0].Height(), rs[1].Height(), 1e-9, "bars have equal thickness")
	assert.InDelta(t, 2*rs[0].Width(), rs[1].Width(), 1e-6, "bar length is proportional to value")
	assert.InDelta(t, rs[0].Min.X, rs[1].Min.X, 1e-9, "bars share a baseline")
	assert.Greater(t, rs[0].Min.Y, rs[1].Min.Y, "the first category is at the bottom")
}

func TestFacetGrid(t *testing.T) {
	for _, tc := range []struct {
		n, ncol    int
		cols, rows int
	}{
		{0, 0, 0, 0},
		{1, 0, 1, 1},
		{2, 0, 2, 1},
		{4, 0, 2, 2},
		{5, 0, 3, 2},
		{3, 1, 1, 3},
		{5, 2, 2, 3},
	} {
		cols, rows := facetGrid(tc.n, tc.ncol)
		assert.Equal(t, tc.cols, cols, "%+v", tc)
		assert.Equal(t, tc.rows, rows, "%+v", tc)
	}
}

func TestFacetPanels(t *testing.T) {
	csv := "x,y,f\n1,1,b\n2,2,a\n3,3,c\n4,4,b\n"
	s := mustBuild(t, csv, `aes(x: x, y: y) | point() | facet_wrap(by: f)`)
	require.Len(t, s.Panels, 3)
	var titles []string
	for _, p := range s.Panels {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"f = b", "f = a", "f = c"}, titles)

	// A 2x2 grid: b and a side by side, c below b.
	p0, p1, p2 := s.Panels[0].Bounds, s.Panels[1].Bounds, s.Panels[2].Bounds
	assert.Less(t, p0.Max.X, p1.Min.X)
	assert.InDelta(t, p0.Min.Y, p1.Min.Y, 1e-9)
	assert.Less(t, p0.Max.Y, p2.Min.Y)
	assert.InDelta(t, p0.Min.X, p2.Min.X, 1e-9)

	var strips []string
	for _, cmd := range s.Commands {
		if txt, ok := cmd.(*scene.Text); ok && strings.HasPrefix(txt.Text, "f = ") {
			strips = append(strips, txt.Text)
		}
	}
	assert.Equal(t, titles, strips)

	// Each point lands in its own panel.
	for _, cmd := range s.Commands {
		if pt, ok := cmd.(*scene.Point); ok {
			in := 0
			for _, p := range s.Panels {
				if p.Bounds.Contains(pt.At) {
					in++
				}
			}
			assert.Equal(t, 1, in)
		}
	}
	assert.Equal(t, 4, countOf[*scene.Point](s))
}

func TestLegend(t *testing.T) {
	csv := "x,y,g\n1,1,b\n2,2,a\n3,3,b\n"
	s := mustBuild(t, csv, `aes(x: x, y: y, color: g) | line() | point()`)
	require.Len(t, s.Legend, 2, "labels are de-duplicated across layers")
	assert.Equal(t, "b", s.Legend[0].Label)
	assert.Equal(t, "a", s.Legend[1].Label)
	assert.Equal(t, scene.SwatchLine, s.Legend[0].Kind, "the first layer picks the swatch")
	assert.Equal(t, color0, s.Legend[0].Color)
	assert.Equal(t, color1, s.Legend[1].Color)

	var labels []string
	for _, cmd := range s.Commands {
		if txt, ok := cmd.(*scene.Text); ok {
			labels = append(labels, txt.Text)
		}
	}
	assert.Equal(t, []string{"g", "b", "a"}, labels[len(labels)-3:], "the legend is drawn last")

	s = mustBuild(t, csv, `aes(x: x, y: y, color: g) | line() | theme(legend_position: "none")`)
	assert.Empty(t, s.Legend)
}

func TestCommandOrder(t *testing.T) {
	s := mustBuild(t, "x,y\n1,2\n2,4\n3,6\n", `aes(x: x, y: y) | point() | labs(title: "T", x: "X", y: "Y")`)
	require.NotEmpty(t, s.Commands)
	bg, ok := s.Commands[0].(*scene.Rect)
	require.True(t, ok)
	assert.Equal(t, scene.Bounds{Max: scene.Vec{X: 800, Y: 600}}, bg.Bounds)
	panelBg, ok := s.Commands[1].(*scene.Rect)
	require.True(t, ok)
	assert.Equal(t, s.Panels[0].Bounds, panelBg.Bounds)

	th, err := theme.Resolve()
	require.NoError(t, err)
	firstData, lastGrid, firstText := -1, -1, -1
	for i, cmd := range s.Commands {
		switch cmd := cmd.(type) {
		case *scene.Point:
			if firstData < 0 {
				firstData = i
			}
		case *scene.Line:
			if cmd.Style.Color == th.GridMajor.Color {
				lastGrid = i
			}
		case *scene.Text:
			if firstText < 0 {
				firstText = i
			}
		}
	}
	assert.Less(t, lastGrid, firstData, "grid lines are under the data")
	assert.Less(t, firstData, firstText, "text is over the data")

	var texts []string
	for _, cmd := range s.Commands {
		if txt, ok := cmd.(*scene.Text); ok {
			texts = append(texts, txt.Text)
		}
	}
	assert.Subset(t, texts, []string{"T", "X", "Y"})
}

func TestLimitsClip(t *testing.T) {
	s := mustBuild(t, "x,y\n0,0\n1,1\n2,2\n3,3\n4,4\n", `aes(x: x, y: y) | line() | point() | xlim(min: 1, max: 3)`)
	b := s.Panels[0].Bounds
	assert.Equal(t, 3, countOf[*scene.Point](s), "points outside the limits are dropped")
	lines := linesOf(s, color0)
	require.Len(t, lines, 1)
	for _, p := range lines[0].Points {
		assert.True(t, b.Contains(p), "%v is clipped to the panel", p)
	}
	pts := lines[0].Points
	assert.InDelta(t, b.Min.X, pts[0].X, 1e-6)
	assert.InDelta(t, b.Max.X, pts[len(pts)-1].X, 1e-6)
}

func TestBoxplot(t *testing.T) {
	csv := "g,v\na,1\na,2\na,3\na,4\na,5\na,6\na,7\na,8\na,9\na,10\na,100\n"
	s := mustBuild(t, csv, `aes(x: g, y: v) | boxplot(outlier_color: "red", outlier_shape: "cross")`)
	var outliers []*scene.Point
	for _, cmd := range s.Commands {
		if p, ok := cmd.(*scene.Point); ok {
			outliers = append(outliers, p)
		}
	}
	require.Len(t, outliers, 1)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, outliers[0].Style.Color)
	assert.Equal(t, palette.Cross, outliers[0].Style.Shape)
	require.Len(t, rectsOf(s, color0), 1)

	box := rectsOf(s, color0)[0]
	assert.Less(t, box.Min.Y, box.Max.Y)
	assert.Less(t, outliers[0].At.Y, box.Min.Y, "the outlier is above the box")
}

func TestViolin(t *testing.T) {
	csv := "g,v\na,1\na,2\na,2\na,3\na,3\na,3\na,4\na,4\na,5\n"
	s := mustBuild(t, csv, `aes(x: g, y: v) | violin(draw_quantiles: [0.5])`)
	var polys []*scene.Polygon
	for _, cmd := range s.Commands {
		if p, ok := cmd.(*scene.Polygon); ok {
			polys = append(polys, p)
		}
	}
	require.Len(t, polys, 1)
	b := s.Panels[0].Bounds
	for _, v := range polys[0].Points {
		assert.True(t, b.Contains(v))
	}
	// The median mark is a horizontal line inside the silhouette.
	var marks int
	for _, cmd := range s.Commands {
		if l, ok := cmd.(*scene.Line); ok && l.Style.Color == boxStroke && len(l.Points) == 2 && l.Points[0].Y == l.Points[1].Y {
			marks++
		}
	}
	assert.Equal(t, 1, marks)
}

func TestSmoothBand(t *testing.T) {
	csv := "x,y\n1,1\n2,3\n3,2\n4,5\n5,4\n6,6\n"
	s := mustBuild(t, csv, `aes(x: x, y: y) | smooth(se: true)`)
	assert.Equal(t, 1, countOf[*scene.Polygon](s))
	assert.Len(t, linesOf(s, color0), 1)
}

func TestInvalidStyle(t *testing.T) {
	_, err := build(t, "x,y\n1,2\n", `aes(x: x, y: y) | point(color: "blurple")`)
	assert.ErrorContains(t, err, "blurple")
	_, err = build(t, "x,y\n1,2\n", `aes(x: x, y: y) | point(shape: "star")`)
	assert.ErrorContains(t, err, "star")
}

func TestEmptyScene(t *testing.T) {
	th, err := theme.Resolve()
	require.NoError(t, err)
	p := &resolve.Plot{}
	res := &stat.Result{Levels: map[string][]string{}}
	sc, err := scales.Train(res, p, nil)
	require.NoError(t, err)
	s, err := Compile(Input{Plot: p, Result: res, Scales: sc, Theme: th, Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Empty(t, s.Panels)
	assert.Empty(t, s.Legend)
	require.Len(t, s.Commands, 1, "only the plot background")
}

func TestClipSegment(t *testing.T) {
	b := scene.Bounds{Max: scene.Vec{X: 10, Y: 10}}
	p, q, ok := clipSegment(scene.Vec{X: -5, Y: 5}, scene.Vec{X: 15, Y: 5}, b)
	require.True(t, ok)
	assert.Equal(t, scene.Vec{X: 0, Y: 5}, p)
	assert.Equal(t, scene.Vec{X: 10, Y: 5}, q)

	_, _, ok = clipSegment(scene.Vec{X: -5, Y: -5}, scene.Vec{X: -1, Y: 20}, b)
	assert.False(t, ok)

	runs := clipLine([]scene.Vec{{X: 1, Y: 1}, {X: 5, Y: 20}, {X: 9, Y: 1}}, b)
	assert.Len(t, runs, 2, "a line leaving and re-entering splits in two")

	poly := clipPolygon([]scene.Vec{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}, b)
	require.Len(t, poly, 4)
	for _, v := range poly {
		assert.True(t, b.Contains(v))
	}
}
