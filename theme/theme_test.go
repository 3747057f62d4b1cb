// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"image/color"
	"strings"
	"testing"

	"github.com/aclements/gramgraph/parse"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	black = color.RGBA{0, 0, 0, 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.RGBA{0xff, 0, 0, 0xff}
)

// sheets parses the theme segments of a plot.
func sheets(t *testing.T, src string) []Sheet {
	t.Helper()
	spec, err := parse.Parse("aes(x: x, y: y) | point() | " + src)
	require.NoError(t, err)
	var out []Sheet
	for _, ts := range spec.Themes {
		s, err := FromSpec(ts)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func TestDefault(t *testing.T) {
	r, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, white, r.PlotBackground.Fill)
	assert.Equal(t, white, r.PanelBackground.Fill)
	assert.Equal(t, black, r.AxisText.Color, "axis text inherits the root text color")
	assert.Equal(t, 9.0, r.AxisText.Size)
	assert.Equal(t, "sans", r.PlotTitle.Family)
	assert.Equal(t, 0.5, r.GridMajor.Width)
	assert.Equal(t, 0.25, r.GridMinor.Width, "the minor grid is half the major width")
	assert.Equal(t, r.GridMajor.Color, r.GridMinor.Color)
	assert.Equal(t, "right", r.LegendPosition)
	assert.False(t, r.AxisLine.Blank)
}

func TestFieldMerge(t *testing.T) {
	r, err := Resolve(sheets(t, `theme(axis_text: element_text(color: "red")) | theme(axis_text: element_text(size: 20))`)...)
	require.NoError(t, err)
	assert.Equal(t, red, r.AxisText.Color)
	assert.Equal(t, 20.0, r.AxisText.Size)
}

func TestBlank(t *testing.T) {
	r, err := Resolve(sheets(t, `theme(panel_grid_major: element_blank(), legend_position: "none")`)...)
	require.NoError(t, err)
	assert.True(t, r.GridMajor.Blank)
	assert.False(t, r.GridMinor.Blank)
	assert.Equal(t, "none", r.LegendPosition)

	// A later element replaces a blank and inherits nothing from
	// before it.
	r, err = Resolve(sheets(t, `theme(axis_line: element_blank()) | theme(axis_line: element_line(color: "red"))`)...)
	require.NoError(t, err)
	assert.False(t, r.AxisLine.Blank)
	assert.Equal(t, red, r.AxisLine.Color)
	assert.Equal(t, 0.5, r.AxisLine.Width, "unset fields come from the root line")
}

func TestRootInheritance(t *testing.T) {
	r, err := Resolve(sheets(t, `theme(text: element_text(family: "serif", color: "gray40"))`)...)
	require.NoError(t, err)
	for _, txt := range []Text{r.PlotTitle, r.AxisText, r.LegendText, r.StripText} {
		assert.Equal(t, "serif", txt.Family)
		assert.Equal(t, color.RGBA{0x66, 0x66, 0x66, 0xff}, txt.Color)
	}
	assert.Equal(t, 14.0, r.PlotTitle.Size, "explicit child fields win")
}

func TestPresets(t *testing.T) {
	r, err := Resolve(sheets(t, `theme_minimal()`)...)
	require.NoError(t, err)
	assert.True(t, r.PanelBackground.Blank)
	assert.True(t, r.AxisTicks.Blank)
	assert.False(t, r.GridMajor.Blank)

	r, err = Resolve(sheets(t, `theme_void()`)...)
	require.NoError(t, err)
	assert.True(t, r.GridMajor.Blank)
	assert.True(t, r.AxisText.Blank)
	assert.False(t, r.PlotTitle.Blank)
	assert.Equal(t, 14.0, r.PlotTitle.Size)

	// A preset replaces earlier themes, and later themes refine it.
	r, err = Resolve(sheets(t, `theme(axis_text: element_text(size: 30)) | theme_bw() | theme(axis_text: element_text(color: "red"))`)...)
	require.NoError(t, err)
	assert.Equal(t, 9.0, r.AxisText.Size)
	assert.Equal(t, red, r.AxisText.Color)

	grey, err := Preset("grey")
	require.NoError(t, err)
	gray, err := Preset("gray")
	require.NoError(t, err)
	assert.Equal(t, gray, grey)

	for _, name := range plotspec.Presets {
		_, err := Preset(name)
		assert.NoError(t, err, name)
	}
	_, err = Preset("fancy")
	assert.Error(t, err)
}

func TestMergeAssociative(t *testing.T) {
	srcs := []string{
		`theme(axis_text: element_text(size: 12), axis_line: element_blank())`,
		`theme(axis_text: element_text(color: "blue"), axis_line: element_line(width: 2))`,
		`theme(axis_line: element_line(color: "red"), panel_grid_major: element_blank(), legend_position: "top")`,
		`theme_minimal()`,
		`theme(panel_background: element_rect(fill: "gray90"), text: element_text(size: 8))`,
		`theme(axis_text: element_blank(), panel_background: element_blank())`,
	}
	var all []Sheet
	for _, src := range srcs {
		all = append(all, sheets(t, src)...)
	}
	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				left := Merge(Merge(a, b), c)
				right := Merge(a, Merge(b, c))
				require.Equal(t, left, right)
			}
		}
	}
}

func TestInvalidColor(t *testing.T) {
	_, err := Resolve(sheets(t, `theme(axis_line: element_line(color: "blurple"))`)...)
	assert.ErrorContains(t, err, "axis_line")
}

func TestLoadYAML(t *testing.T) {
	src := `
legend_position: bottom
plot_title: {size: 18, color: navy}
panel_grid_minor: blank
panel_background:
  fill: "#eeeeee"
`
	s, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)
	r, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, "bottom", r.LegendPosition)
	assert.Equal(t, 18.0, r.PlotTitle.Size)
	assert.Equal(t, color.RGBA{0, 0, 0x80, 0xff}, r.PlotTitle.Color)
	assert.True(t, r.GridMinor.Blank)
	assert.Equal(t, color.RGBA{0xee, 0xee, 0xee, 0xff}, r.PanelBackground.Fill)

	for _, bad := range []string{
		"plot_tittle: blank\n",
		"axis_line: {size: 3}\n",
		"legend_position: middle\n",
		"plot_title: {size: big}\n",
	} {
		_, err := LoadYAML(strings.NewReader(bad))
		assert.Error(t, err, bad)
	}

	s, err = LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Slots)
}
