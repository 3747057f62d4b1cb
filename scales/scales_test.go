// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/aclements/gramgraph/data"
	"github.com/aclements/gramgraph/parse"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/resolve"
	"github.com/aclements/gramgraph/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainPlot(t *testing.T, csv, src string) (*Scales, *stat.Result, error) {
	t.Helper()
	tab, err := data.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	spec, err := parse.Parse(src)
	require.NoError(t, err)
	p, err := resolve.Resolve(spec, tab.Columns())
	require.NoError(t, err)
	res, err := stat.Transform(context.Background(), p, tab)
	require.NoError(t, err)
	s, err := Train(res, p, spec.Scales)
	return s, res, err
}

func mustTrain(t *testing.T, csv, src string) (*Scales, *stat.Result) {
	t.Helper()
	s, res, err := trainPlot(t, csv, src)
	require.NoError(t, err)
	return s, res
}

func TestPadding(t *testing.T) {
	s, res := mustTrain(t, "x,y\n1,2\n2,4\n3,6\n", `aes(x: x, y: y) | line()`)
	x, y := s.Panel(0)
	assert.InDelta(t, 0.9, x.Min, 1e-12)
	assert.InDelta(t, 3.1, x.Max, 1e-12)
	assert.InDelta(t, 1.8, y.Min, 1e-12)
	assert.InDelta(t, 6.2, y.Max, 1e-12)
	assert.False(t, x.HasLimits)

	for _, p := range res.Panels[0].Series[0].Points {
		for _, v := range []float64{x.Map(p.X), y.Map(p.Y)} {
			assert.True(t, v > 0 && v < 1, "%v maps inside the panel", v)
		}
	}
}

func TestBarsIncludeZero(t *testing.T) {
	s, _ := mustTrain(t, "c,v\na,1\nb,3\n", `aes(x: c, y: v) | bar()`)
	x, y := s.Panel(0)
	assert.Equal(t, Categorical, x.Kind)
	assert.Equal(t, -0.5, x.Min)
	assert.Equal(t, 1.5, x.Max)
	pos, ok := x.Category("b")
	assert.True(t, ok)
	assert.Equal(t, 1.0, pos)
	_, ok = x.Category("zzz")
	assert.False(t, ok)

	assert.InDelta(t, -0.15, y.Min, 1e-12)
	assert.InDelta(t, 3.15, y.Max, 1e-12)
}

func TestSingleValue(t *testing.T) {
	s, _ := mustTrain(t, "x,y\n5,5\n", `aes(x: x, y: y) | point()`)
	x, _ := s.Panel(0)
	assert.Equal(t, 4.0, x.Min)
	assert.Equal(t, 6.0, x.Max)
	assert.Equal(t, 0.5, x.Map(5))
}

func TestLog10(t *testing.T) {
	s, _ := mustTrain(t, "x,y\n1,1\n2,100\n", `aes(x: x, y: y) | point() | scale_y_log10()`)
	_, y := s.Panel(0)
	assert.Equal(t, plotspec.Log10, y.Transform)
	assert.InDelta(t, math.Pow(10, -0.1), y.Min, 1e-12)
	assert.InDelta(t, math.Pow(10, 2.1), y.Max, 1e-9)
	assert.InDelta(t, 0.5, y.Map(10), 1e-12)

	major, minor := y.Ticks(10)
	var labels []string
	for _, tk := range major {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"1", "10", "100"}, labels)
	assert.Contains(t, minor, 20.0)
}

func TestLog10Domain(t *testing.T) {
	_, _, err := trainPlot(t, "x,y\n1,0\n2,100\n", `aes(x: x, y: y) | point() | scale_y_log10()`)
	var de *DomainError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, plotspec.YAxis, de.Axis)
	assert.Equal(t, 0.0, de.Value)

	_, _, err = trainPlot(t, "c,v\na,1\n", `aes(x: c, y: v) | bar() | scale_x_log10()`)
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Contains(t, de.Error(), "categorical")
}

func TestLimits(t *testing.T) {
	s, _ := mustTrain(t, "x,y\n1,2\n2,40\n", `aes(x: x, y: y) | point() | ylim(min: 0, max: 10)`)
	_, y := s.Panel(0)
	assert.True(t, y.HasLimits)
	assert.Equal(t, 0.0, y.Min)
	assert.Equal(t, 10.0, y.Max)
	assert.Equal(t, 4.0, y.Map(40), "data outside limits maps outside the panel")

	// The last limits win.
	s, _ = mustTrain(t, "x,y\n1,2\n", `aes(x: x, y: y) | point() | xlim(min: 0, max: 1) | xlim(min: 5, max: 6)`)
	x, _ := s.Panel(0)
	assert.Equal(t, 5.0, x.Min)
}

func TestReverse(t *testing.T) {
	s, _ := mustTrain(t, "x,y\n0,0\n10,10\n", `aes(x: x, y: y) | point() | scale_x_reverse()`)
	x, y := s.Panel(0)
	assert.Equal(t, 1.0, x.Map(x.Min))
	assert.Equal(t, 0.0, x.Map(x.Max))
	assert.Equal(t, x.Min, y.Min, "reverse leaves the domain alone")
}

func TestFacetScales(t *testing.T) {
	csv := "x,y,f\n1,1,a\n2,2,a\n10,100,b\n20,200,b\n"
	s, _ := mustTrain(t, csv, `aes(x: x, y: y) | point() | facet_wrap(by: f)`)
	x0, y0 := s.Panel(0)
	x1, y1 := s.Panel(1)
	assert.Equal(t, x0, x1)
	assert.Equal(t, y0, y1)

	s, _ = mustTrain(t, csv, `aes(x: x, y: y) | point() | facet_wrap(by: f, scales: "free_y")`)
	x0, y0 = s.Panel(0)
	x1, y1 = s.Panel(1)
	assert.Equal(t, x0, x1)
	assert.Less(t, y0.Max, 3.0)
	assert.Greater(t, y1.Max, 200.0)
}

func TestFreeCategories(t *testing.T) {
	csv := "c,v,f\na,1,p\nb,2,q\nc,3,q\n"
	s, _ := mustTrain(t, csv, `aes(x: c, y: v) | bar() | facet_wrap(by: f, scales: "free_x")`)
	x0, _ := s.Panel(0)
	x1, _ := s.Panel(1)
	assert.Equal(t, []string{"a"}, x0.Categories)
	assert.Equal(t, []string{"b", "c"}, x1.Categories)
}

func TestTicks(t *testing.T) {
	s, _ := mustTrain(t, "x,y\n0,0\n10,1\n", `aes(x: x, y: y) | point()`)
	x, _ := s.Panel(0)
	major, minor := x.Ticks(6)
	require.NotEmpty(t, major)
	assert.LessOrEqual(t, len(major), 6)
	for _, tk := range major {
		assert.GreaterOrEqual(t, tk.Value, x.Min)
		assert.LessOrEqual(t, tk.Value, x.Max)
	}
	assert.Equal(t, "0", major[0].Label)
	assert.Greater(t, len(minor), len(major))
}

func TestCategoricalTicks(t *testing.T) {
	a := categorical([]string{"a", "b", "c", "d", "e"}, plotspec.Linear)
	major, _ := a.Ticks(2)
	assert.Equal(t, []Tick{{0, "a"}, {3, "d"}}, major)
}
