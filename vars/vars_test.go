// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vars

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestExpand(t *testing.T) {
	defs := map[string]string{
		"col":   "temp",
		"n":     "20",
		"neg":   "-1.5",
		"title": `Temps "today"`,
		"spacy": "max temp",
		"on":    "true",
	}
	for _, test := range []struct{ in, want string }{
		{`aes(x: $col) | line()`, `aes(x: temp) | line()`},
		{`histogram(bins: $n)`, `histogram(bins: 20)`},
		{`xlim(min: $neg, max: 1)`, `xlim(min: -1.5, max: 1)`},
		{`labs(title: "$title")`, `labs(title: "Temps \"today\"")`},
		{`labs(title: $title)`, `labs(title: "Temps \"today\"")`},
		{`aes(y: $spacy)`, `aes(y: "max temp")`},
		{`smooth(se: $on)`, `smooth(se: true)`},
		{`labs(title: "cost in $ and $col")`, `labs(title: "cost in $ and temp")`},
		{`labs(title: "a \"$col\" b")`, `labs(title: "a \"temp\" b")`},
		{`point(size: $n$n)`, `point(size: 2020)`},
		{`line() | $`, `line() | $`},
	} {
		got, err := Expand(test.in, defs)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}
}

func TestExpandUnchanged(t *testing.T) {
	src := `aes(x: a, y: b) | point(color: "red")`
	got, err := Expand(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestExpandUndefined(t *testing.T) {
	_, err := Expand(`aes(x: $missing, y: $other) | line(color: $missing)`, map[string]string{"unused": "1"})
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)

	var uv *UndefinedVariableError
	require.True(t, errors.As(errs[0], &uv))
	assert.Equal(t, "missing", uv.Name)
	assert.Equal(t, 7, uv.Pos)
	assert.Contains(t, errs[0].Error(), "'$missing'")
	require.True(t, errors.As(errs[1], &uv))
	assert.Equal(t, "other", uv.Name)
}

func TestParseDefs(t *testing.T) {
	m, err := Parse([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": ""}, m)

	_, err = Parse([]string{"novalue"})
	assert.Error(t, err)
	_, err = Parse([]string{"1a=2"})
	assert.Error(t, err)
}
