// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"errors"
	"testing"

	"github.com/aclements/gramgraph/parse"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

var columns = []string{"x", "y", "Cat", "g", "lo", "hi", "s", "region"}

func mustResolve(t *testing.T, src string) *Plot {
	t.Helper()
	spec, err := parse.Parse(src)
	require.NoError(t, err)
	p, err := Resolve(spec, columns)
	require.NoError(t, err)
	return p
}

func TestPrecedence(t *testing.T) {
	p := mustResolve(t, `aes(x: x, y: y, color: g) | line() | point(y: lo, color: "red")`)
	require.Len(t, p.Layers, 2)

	l := p.Layers[0]
	assert.Equal(t, "x", l.X)
	assert.Equal(t, "y", l.Y)
	assert.Equal(t, []Binding{{Role: plotspec.RoleColor, Column: "g"}}, l.Aes)

	l = p.Layers[1]
	assert.Equal(t, "lo", l.Y)
	b, ok := l.Fixed(plotspec.RoleColor)
	require.True(t, ok)
	assert.Equal(t, "red", b.Text)
	assert.Empty(t, l.Groups())

	// A bar has its own x axis, so it is resolved separately.
	p = mustResolve(t, `aes(x: x, y: y, color: g) | bar(x: cat, color: s)`)
	l = p.Layers[0]
	assert.Equal(t, "y", l.Y)
	assert.Equal(t, "Cat", l.X, "case-insensitive lookup returns the table spelling")
	b, ok = l.Mapping(plotspec.RoleColor)
	require.True(t, ok)
	assert.Equal(t, "s", b.Column)
}

func TestGroupingRoles(t *testing.T) {
	p := mustResolve(t, `aes(x: x, y: y, size: s, alpha: lo) | point(shape: g, color: region)`)
	var roles []plotspec.Role
	for _, b := range p.Layers[0].Groups() {
		roles = append(roles, b.Role)
	}
	assert.Equal(t, []plotspec.Role{plotspec.RoleColor, plotspec.RoleSize, plotspec.RoleShape, plotspec.RoleAlpha}, roles)

	p = mustResolve(t, `aes(x: x, y: y) | line(width: s)`)
	b, ok := p.Layers[0].Mapping(plotspec.RoleSize)
	require.True(t, ok)
	assert.Equal(t, "s", b.Column)
}

func TestOptionalY(t *testing.T) {
	p := mustResolve(t, `aes(x: x) | histogram() | bar(stat: "count")`)
	assert.Equal(t, "", p.Layers[0].Y)
	assert.Equal(t, "", p.Layers[1].Y)

	p = mustResolve(t, `aes(x: x, ymin: lo) | ribbon(ymax: hi)`)
	assert.Equal(t, "lo", p.Layers[0].YMin)
	assert.Equal(t, "hi", p.Layers[0].YMax)
}

func TestMissingAesthetic(t *testing.T) {
	for _, test := range []struct {
		src  string
		role plotspec.Role
	}{
		{`aes(x: x) | line()`, plotspec.RoleY},
		{`aes(y: y) | point()`, plotspec.RoleX},
		{`aes(x: x) | ribbon(ymin: lo)`, plotspec.RoleYMax},
		{`aes(x: x) | boxplot()`, plotspec.RoleY},
		{`bar(y: y)`, plotspec.RoleX},
	} {
		spec, err := parse.Parse(test.src)
		require.NoError(t, err)
		_, err = Resolve(spec, columns)
		var ma *MissingAestheticError
		require.True(t, errors.As(err, &ma), "%s: got %v", test.src, err)
		assert.Equal(t, test.role, ma.Role, test.src)
	}
}

func TestMissingColumns(t *testing.T) {
	spec, err := parse.Parse(`aes(x: x, y: why) | line(color: grp) | facet_wrap(by: regoin)`)
	require.NoError(t, err)
	_, err = Resolve(spec, columns)
	errs := multierr.Errors(err)
	require.Len(t, errs, 3)

	var mc *MissingColumnError
	require.True(t, errors.As(errs[0], &mc))
	assert.Equal(t, "why", mc.Column)
	assert.Equal(t, plotspec.RoleY, mc.Role)
	assert.Equal(t, 0, mc.Layer)

	require.True(t, errors.As(errs[1], &mc))
	assert.Equal(t, "grp", mc.Column)
	assert.Equal(t, "g", mc.Hint)

	require.True(t, errors.As(errs[2], &mc))
	assert.Equal(t, -1, mc.Layer)
	assert.Equal(t, "region", mc.Hint)
	assert.Contains(t, mc.Error(), `facet column "regoin"`)
}

func TestAxisConflict(t *testing.T) {
	for _, test := range []struct {
		src string
		ok  bool
	}{
		{`aes(x: cat, y: y) | bar() | line()`, true},
		{`aes(x: cat, y: y) | boxplot() | point()`, true},
		{`aes(x: cat, y: y) | bar() | line(x: x)`, false},
		{`aes(x: x, y: y) | histogram() | line()`, false},
		{`aes(x: x, y: y) | bar() | smooth()`, false},
		{`aes(x: x, y: y) | line() | smooth() | point()`, true},
		{`aes(x: x, y: y) | bar() | violin()`, true},
		{`aes(x: x, y: y) | line() | bar(x: cat)`, false},
	} {
		spec, err := parse.Parse(test.src)
		require.NoError(t, err)
		_, err = Resolve(spec, columns)
		if test.ok {
			assert.NoError(t, err, test.src)
		} else {
			var ac *AxisConflictError
			assert.True(t, errors.As(err, &ac), "%s: got %v", test.src, err)
		}
	}
}

func TestFacet(t *testing.T) {
	p := mustResolve(t, `aes(x: x, y: y) | point() | facet_wrap(by: REGION, ncol: 3, scales: "free")`)
	assert.Equal(t, "region", p.Facet)
	assert.Equal(t, 3, p.FacetNCol)
	assert.Equal(t, plotspec.Free, p.FacetScales)
}
