// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package data loads tabular input into a go-gg table.
//
// Every column is stored as a []string exactly as read. Columns are
// coerced to numbers or times on demand by the phases that need
// them, so a type error can name the offending column and row.
package data

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned when the input has no data rows.
var ErrEmpty = errors.New("data must have a header and at least one data row")

// TypeError reports a cell that cannot be coerced to the type its
// role requires.
type TypeError struct {
	Column string
	Row    int // 1-based data row, not counting the header
	Value  string
	Want   string // "number" or "time"
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot use %q as a %s", e.Column, e.Row, e.Value, e.Want)
}

// ReadCSV reads comma-separated data with a header row.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmpty
	}
	header := rows[0]
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	return table.TableFromStrings(header, rows[1:], false), nil
}

// ReadJSON reads either an array of objects, one per row, or an
// object mapping column names to arrays of values. Column order is
// the key order of the first row (or of the object).
func ReadJSON(r io.Reader) (*table.Table, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf = bytes.TrimSpace(buf)
	if len(buf) == 0 {
		return nil, ErrEmpty
	}
	if buf[0] == '{' {
		return readJSONColumns(buf)
	}

	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}
	var header []string
	var rows [][]string
	for dec.More() {
		keys, obj, err := readObject(dec)
		if err != nil {
			return nil, fmt.Errorf("reading JSON row %d: %w", len(rows)+1, err)
		}
		if header == nil {
			header = keys
		}
		row := make([]string, len(header))
		for i, k := range header {
			row[i] = obj[k]
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	return table.TableFromStrings(header, rows, false), nil
}

func readJSONColumns(buf []byte) (*table.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	dec.Token() // '{'
	var b table.Builder
	n := -1
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading JSON: %w", err)
		}
		name, _ := tok.(string)
		var vals []interface{}
		if err := dec.Decode(&vals); err != nil {
			return nil, fmt.Errorf("reading JSON column %q: %w", name, err)
		}
		if n >= 0 && len(vals) != n {
			return nil, fmt.Errorf("JSON column %q has %d values, want %d", name, len(vals), n)
		}
		n = len(vals)
		col := make([]string, len(vals))
		for i, v := range vals {
			col[i] = cellString(v)
		}
		b.Add(name, col)
	}
	t := b.Done()
	if n <= 0 {
		return nil, ErrEmpty
	}
	return t, nil
}

// readObject decodes one JSON object, keeping its key order.
func readObject(dec *json.Decoder) ([]string, map[string]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, found %v", tok)
	}
	var keys []string
	obj := map[string]string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		k, _ := tok.(string)
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		keys = append(keys, k)
		obj[k] = cellString(v)
	}
	_, err = dec.Token() // '}'
	return keys, obj, err
}

func cellString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func checkHeader(header []string) error {
	seen := map[string]bool{}
	for _, h := range header {
		if h == "" {
			return errors.New("data header has an empty column name")
		}
		if seen[h] {
			return fmt.Errorf("data header has duplicate column %q", h)
		}
		seen[h] = true
	}
	return nil
}

func foldName(s string) string {
	// Casers are stateful, so each call gets its own.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Lookup finds the column of t named name. An exact match wins;
// otherwise names are compared case-insensitively after Unicode
// normalization. It returns the column's name as spelled in t.
func Lookup(t *table.Table, name string) (string, bool) {
	return LookupIn(t.Columns(), name)
}

// LookupIn is Lookup over a list of column names.
func LookupIn(columns []string, name string) (string, bool) {
	for _, c := range columns {
		if c == name {
			return c, true
		}
	}
	want := foldName(name)
	for _, c := range columns {
		if foldName(c) == want {
			return c, true
		}
	}
	return "", false
}

// Strings returns column col of t as strings.
func Strings(t *table.Table, col string) []string {
	var out []string
	slice.Convert(&out, t.MustColumn(col))
	return out
}

// ParseNumber parses one numeric cell. Empty cells and "NA" are
// missing values and parse as NaN.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "na", "NaN", "nan", "null":
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Floats returns column col of t as numbers. Missing cells are NaN.
func Floats(t *table.Table, col string) ([]float64, error) {
	strs := Strings(t, col)
	out := make([]float64, len(strs))
	for i, s := range strs {
		v, ok := ParseNumber(s)
		if !ok {
			return nil, &TypeError{Column: col, Row: i + 1, Value: s, Want: "number"}
		}
		out[i] = v
	}
	return out, nil
}

// IsNumeric reports whether every non-missing cell of column col is
// a number and at least one cell is present.
func IsNumeric(t *table.Table, col string) bool {
	present := false
	for _, s := range Strings(t, col) {
		v, ok := ParseNumber(s)
		if !ok {
			return false
		}
		if !math.IsNaN(v) {
			present = true
		}
	}
	return present
}

// Times returns column col of t as times, trying a wide range of
// date layouts. It returns a *TypeError if a cell is not a date.
func Times(t *table.Table, col string) ([]time.Time, error) {
	strs := Strings(t, col)
	out := make([]time.Time, len(strs))
	for i, s := range strs {
		s = strings.TrimSpace(s)
		if _, ok := ParseNumber(s); ok {
			// Bare numbers are numbers, not dates.
			return nil, &TypeError{Column: col, Row: i + 1, Value: s, Want: "time"}
		}
		tm, err := dateparse.ParseStrict(s)
		if err != nil {
			return nil, &TypeError{Column: col, Row: i + 1, Value: s, Want: "time"}
		}
		out[i] = tm
	}
	return out, nil
}
