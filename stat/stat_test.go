// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/aclements/gramgraph/data"
	"github.com/aclements/gramgraph/parse"
	"github.com/aclements/gramgraph/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transform(t *testing.T, csv, src string) (*Result, error) {
	t.Helper()
	tab, err := data.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	spec, err := parse.Parse(src)
	require.NoError(t, err)
	p, err := resolve.Resolve(spec, tab.Columns())
	require.NoError(t, err)
	return Transform(context.Background(), p, tab)
}

func mustTransform(t *testing.T, csv, src string) *Result {
	t.Helper()
	res, err := transform(t, csv, src)
	require.NoError(t, err)
	return res
}

func TestLineSorted(t *testing.T) {
	res := mustTransform(t, "x,y\n3,6\n1,2\n2,4\nNA,9\n", `aes(x: x, y: y) | line() | point()`)
	assert.Equal(t, Continuous, res.XKind)
	require.Len(t, res.Panels, 1)
	ss := res.Panels[0].Series
	require.Len(t, ss, 2)

	var xs []float64
	for _, p := range ss[0].Points {
		xs = append(xs, p.X)
	}
	assert.Equal(t, []float64{1, 2, 3}, xs, "line points are sorted and NA is dropped")
	assert.Equal(t, 3.0, ss[1].Points[0].X, "points keep row order")
}

func TestStack(t *testing.T) {
	csv := "cat,v,g\na,1,p\na,2,q\nb,3,p\nb,4,q\n"
	res := mustTransform(t, csv, `aes(x: cat, y: v, color: g) | bar(position: "stack")`)
	assert.Equal(t, Categorical, res.XKind)
	assert.Equal(t, []string{"a", "b"}, res.Categories)
	ss := res.Panels[0].Series
	require.Len(t, ss, 2)
	assert.Equal(t, "p", ss[0].Label)
	assert.Equal(t, "q", ss[1].Label)

	sums := map[string]float64{"a": 3, "b": 7}
	for _, cat := range []string{"a", "b"} {
		top := 0.0
		for _, s := range ss {
			for _, p := range s.Points {
				if p.Cat != cat {
					continue
				}
				assert.Equal(t, top, p.Base, "segments are contiguous")
				assert.Greater(t, p.Y, p.Base)
				top = p.Y
			}
		}
		assert.Equal(t, sums[cat], top, "stack height is the sum of %s", cat)
	}
}

func TestDodge(t *testing.T) {
	csv := "cat,v,g\na,1,p\na,2,q\na,3,r\nb,4,p\n"
	res := mustTransform(t, csv, `aes(x: cat, y: v, color: g) | bar(position: "dodge")`)
	ss := res.Panels[0].Series
	require.Len(t, ss, 3)

	// Category a has three occupants splitting the default width.
	lo := -DefaultWidth / 2
	for _, s := range ss {
		p := s.Points[0]
		require.Equal(t, "a", p.Cat)
		assert.InDelta(t, DefaultWidth/3, p.Width, 1e-12)
		assert.InDelta(t, lo, p.Offset-p.Width/2, 1e-12, "slots abut")
		lo = p.Offset + p.Width/2
	}
	assert.InDelta(t, DefaultWidth/2, lo, 1e-12, "slots cover the category")

	// Category b has a single occupant at full width.
	b := ss[0].Points[1]
	assert.Equal(t, "b", b.Cat)
	assert.Equal(t, Slot{Offset: 0, Width: DefaultWidth}, b.Slot)
}

func TestDodgeAcrossLayers(t *testing.T) {
	csv := "cat,v\na,1\nb,2\n"
	res := mustTransform(t, csv, `aes(x: cat, y: v) | boxplot(width: 0.5) | violin()`)
	ss := res.Panels[0].Series
	require.Len(t, ss, 2)
	box, vio := ss[0].Boxes[0], ss[1].Violins[0]
	assert.InDelta(t, 0.4, box.Width, 1e-12, "the widest occupant sets the category width")
	assert.InDelta(t, -0.2, box.Offset, 1e-12)
	assert.InDelta(t, 0.2, vio.Offset, 1e-12)
}

func TestHistogram(t *testing.T) {
	var b strings.Builder
	b.WriteString("v\n")
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	res := mustTransform(t, b.String(), `aes(x: v) | histogram(bins: 5)`)
	assert.Equal(t, Categorical, res.XKind)
	pts := res.Panels[0].Series[0].Points
	require.Len(t, pts, 5)
	total := 0.0
	for i, p := range pts {
		assert.Equal(t, 20.0, p.Y, "bin %d", i)
		assert.InDelta(t, 19.8, p.XMax-p.XMin, 1e-9)
		assert.Equal(t, 1.0, p.Width)
		total += p.Y
	}
	assert.Equal(t, 100.0, total)
	assert.InDelta(t, 99.0, pts[4].XMax, 1e-9, "the maximum is in the last bin")
	assert.Len(t, res.Categories, 5)
}

func TestHistogramConstant(t *testing.T) {
	res := mustTransform(t, "v\n7\n7\n7\n", `aes(x: v) | histogram(bins: 3)`)
	pts := res.Panels[0].Series[0].Points
	require.Len(t, pts, 3)
	assert.Equal(t, 3.0, pts[0].Y)
	assert.Equal(t, 1.0, pts[0].XMax-pts[0].XMin)
}

func TestHistogramNarrowRange(t *testing.T) {
	var b strings.Builder
	b.WriteString("v\n")
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, "%g\n", 1e6+float64(i)*0.01)
	}
	res := mustTransform(t, b.String(), `aes(x: v) | histogram(bins: 5)`)
	require.Len(t, res.Categories, 5)
	pts := res.Panels[0].Series[0].Points
	for i, p := range pts {
		assert.Equal(t, res.Categories[i], p.Cat, "bin %d", i)
	}
}

func TestBinLabels(t *testing.T) {
	for _, tt := range []struct {
		xs   []float64
		want []string
	}{
		{[]float64{1.5, 2.5}, []string{"1.5", "2.5"}},
		{[]float64{1e6 + 0.1, 1e6 + 0.3}, []string{"1000000.1", "1000000.3"}},
		{[]float64{1.7e9 + 1440, 1.7e9 + 4320}, []string{"1.700001e+09", "1.700004e+09"}},
	} {
		assert.Equal(t, tt.want, binLabels(tt.xs), "%v", tt.xs)
	}
}

func TestBarCount(t *testing.T) {
	res := mustTransform(t, "c\nx\ny\nx\nx\n", `aes(x: c) | bar(stat: "count")`)
	pts := res.Panels[0].Series[0].Points
	require.Len(t, pts, 2)
	assert.Equal(t, "x", pts[0].Cat)
	assert.Equal(t, 3.0, pts[0].Y)
	assert.Equal(t, 1.0, pts[1].Y)
}

func TestBoxplot(t *testing.T) {
	csv := "c,v\n" + "a,1\na,2\na,3\na,4\na,5\na,6\na,7\na,8\na,9\na,100\n"
	res := mustTransform(t, csv, `aes(x: c, y: v) | boxplot()`)
	boxes := res.Panels[0].Series[0].Boxes
	require.Len(t, boxes, 1)
	b := boxes[0]
	assert.Equal(t, 3.25, b.Q1)
	assert.Equal(t, 5.5, b.Median)
	assert.Equal(t, 7.75, b.Q3)
	assert.Equal(t, 1.0, b.LoWhisker)
	assert.Equal(t, 9.0, b.HiWhisker)
	assert.Equal(t, []float64{100}, b.Outliers)
	assert.Equal(t, 10, b.N)

	iqr := b.Q3 - b.Q1
	assert.LessOrEqual(t, b.Q1, b.Median)
	assert.LessOrEqual(t, b.Median, b.Q3)
	for _, o := range b.Outliers {
		assert.True(t, o < b.Q1-1.5*iqr || o > b.Q3+1.5*iqr)
	}
}

func TestQuantile(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, Quantile(xs, 0))
	assert.Equal(t, 1.75, Quantile(xs, 0.25))
	assert.Equal(t, 2.5, Quantile(xs, 0.5))
	assert.Equal(t, 4.0, Quantile(xs, 1))
	assert.Equal(t, 5.0, Quantile([]float64{5}, 0.3))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestViolin(t *testing.T) {
	csv := "c,v\na,1\na,2\na,2\na,3\na,4\nb,5\n"
	res := mustTransform(t, csv, `aes(x: c, y: v) | violin(draw_quantiles: [0.5])`)
	vs := res.Panels[0].Series[0].Violins
	require.Len(t, vs, 2)
	v := vs[0]
	require.Len(t, v.Ys, violinPoints)
	require.Len(t, v.Density, violinPoints)
	assert.InDelta(t, 1.0, maxOf(v.Density), 1e-12)
	assert.Greater(t, v.Bandwidth, 0.0)
	assert.InDelta(t, 1-3*v.Bandwidth, v.Ys[0], 1e-9)
	assert.Equal(t, []QuantileMark{{P: 0.5, Y: 2}}, v.Quantiles)

	// A single value still has a usable bandwidth.
	assert.Equal(t, 1.0, vs[1].Bandwidth)
}

func TestSmooth(t *testing.T) {
	csv := "x,y\n0,1\n1,3\n2,5\n3,7\n"
	res := mustTransform(t, csv, `aes(x: x, y: y) | smooth(se: true)`)
	s := res.Panels[0].Series[0]
	require.NotNil(t, s.Fit)
	assert.InDelta(t, 1.0, s.Fit.Intercept, 1e-9)
	assert.InDelta(t, 2.0, s.Fit.Slope, 1e-9)
	assert.True(t, s.Fit.Band)
	require.Len(t, s.Points, smoothPoints)
	assert.Equal(t, 0.0, s.Points[0].X)
	assert.InDelta(t, 3.0, s.Points[smoothPoints-1].X, 1e-9)
	for _, p := range s.Points {
		assert.InDelta(t, 1+2*p.X, p.Y, 1e-9)
		assert.InDelta(t, p.Y, p.YMin, 1e-6, "an exact fit has no band")
	}
}

func TestSmoothBand(t *testing.T) {
	csv := "x,y\n0,0\n1,2\n2,1\n3,4\n4,3\n"
	res := mustTransform(t, csv, `aes(x: x, y: y) | smooth(se: true, level: 0.9)`)
	pts := res.Panels[0].Series[0].Points
	mid := pts[len(pts)/2]
	end := pts[0]
	assert.Less(t, mid.YMax-mid.YMin, end.YMax-end.YMin, "the band is narrowest near the mean")
	assert.Less(t, end.YMin, end.Y)
}

func TestSmoothDegenerate(t *testing.T) {
	csv := "x,y,g\n1,1,a\n1,2,a\n1,3,b\n2,4,b\n"
	res := mustTransform(t, csv, `aes(x: x, y: y, color: g) | smooth()`)
	ss := res.Panels[0].Series
	require.Len(t, ss, 1)
	assert.Equal(t, "b", ss[0].Label)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "a", res.Warnings[0].Group)
	assert.Contains(t, res.Warnings[0].Reason, "distinct x")
}

func TestEmptyGroups(t *testing.T) {
	csv := "x,y,c,s\n1,1,red,o\n2,2,blue,x\n"
	res := mustTransform(t, csv, `aes(x: x, y: y, color: c) | point(shape: s)`)
	ss := res.Panels[0].Series
	require.Len(t, ss, 2)
	assert.Equal(t, "red, o", ss[0].Label)
	assert.Equal(t, "blue, x", ss[1].Label)
	assert.Equal(t, "x", ss[1].Values["shape"])

	var groups []string
	for _, w := range res.Warnings {
		groups = append(groups, w.Group)
	}
	assert.Equal(t, []string{"red, x", "blue, o"}, groups)
	assert.Equal(t, []string{"red", "blue"}, res.Levels["c"])
}

func TestFacetPanels(t *testing.T) {
	csv := "x,y,r\n1,1,west\n2,2,east\n3,3,west\n"
	res := mustTransform(t, csv, `aes(x: x, y: y) | point() | facet_wrap(by: r)`)
	require.Len(t, res.Panels, 2)
	assert.Equal(t, "west", res.Panels[0].Key)
	assert.Equal(t, "east", res.Panels[1].Key)
	assert.Len(t, res.Panels[0].Series[0].Points, 2)
	assert.Len(t, res.Panels[1].Series[0].Points, 1)
}

func TestNumericCategories(t *testing.T) {
	res := mustTransform(t, "c,v\n10,1\n9,2\n2,3\n", `aes(x: c, y: v) | bar()`)
	assert.Equal(t, []string{"2", "9", "10"}, res.Categories)
}

func TestTimeAxis(t *testing.T) {
	res := mustTransform(t, "d,v\n2024-01-03,1\n2024-01-01,2\n", `aes(x: d, y: v) | line()`)
	assert.Equal(t, Time, res.XKind)
	pts := res.Panels[0].Series[0].Points
	require.Len(t, pts, 2)
	assert.Equal(t, 2*86400.0, pts[1].X-pts[0].X)
}

func TestTypeError(t *testing.T) {
	_, err := transform(t, "x,y\n1,2\n2,oops\n", `aes(x: x, y: y) | line()`)
	var te *data.TypeError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, "y", te.Column)
	assert.Equal(t, 2, te.Row)

	_, err = transform(t, "x,y,s\n1,2,big\n", `aes(x: x, y: y, size: s) | point()`)
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, "s", te.Column)
}

func TestFacetTypeError(t *testing.T) {
	// Rows 4 and 5 are bad and fall in different panels.
	csv := "x,y,g\n1,1,a\n2,2,b\n3,3,a\n4,oops,b\n5,bad,a\n"
	for i := 0; i < 50; i++ {
		_, err := transform(t, csv, `aes(x: x, y: y) | point() | facet_wrap(by: g)`)
		var te *data.TypeError
		require.True(t, errors.As(err, &te), "got %v", err)
		assert.Equal(t, "y", te.Column)
		assert.Equal(t, 4, te.Row)
		assert.Equal(t, "oops", te.Value)
	}
}
