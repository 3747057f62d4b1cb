// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokPipe
	tokColon
	tokComma
	tokLParen
	tokRParen
	tokLBrack
	tokRBrack
)

var tokenNames = [...]string{
	tokEOF:    "end of input",
	tokIdent:  "identifier",
	tokString: "string",
	tokNumber: "number",
	tokPipe:   "'|'",
	tokColon:  "':'",
	tokComma:  "','",
	tokLParen: "'('",
	tokRParen: "')'",
	tokLBrack: "'['",
	tokRBrack: "']'",
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	pos  int    // byte offset in the source
	text string // source text of the token
	str  string // unquoted value of a string token
	num  float64
}

// describe returns a short description of t for error messages.
func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokIdent, tokNumber, tokString:
		return fmt.Sprintf("%s %s", t.kind, t.text)
	}
	return t.kind.String()
}

// lex splits src into tokens. The final token is always tokEOF.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for {
		for i < len(src) && isSpace(src[i]) {
			i++
		}
		if i >= len(src) {
			toks = append(toks, token{kind: tokEOF, pos: i})
			return toks, nil
		}
		start := i
		c := src[i]
		var kind tokenKind
		switch c {
		case '|':
			kind = tokPipe
		case ':':
			kind = tokColon
		case ',':
			kind = tokComma
		case '(':
			kind = tokLParen
		case ')':
			kind = tokRParen
		case '[':
			kind = tokLBrack
		case ']':
			kind = tokRBrack
		}
		if kind != tokEOF {
			i++
			toks = append(toks, token{kind: kind, pos: start, text: src[start:i]})
			continue
		}

		switch {
		case isIdentStart(c):
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, pos: start, text: src[start:i]})

		case isDigit(c) || c == '.' || c == '-' || c == '+':
			tok, err := lexNumber(src, start)
			if err != nil {
				return nil, err
			}
			i = start + len(tok.text)
			toks = append(toks, tok)

		case c == '"':
			i++
			for i < len(src) && src[i] != '"' {
				if src[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(src) {
				return nil, errorAt(src, start, "unterminated string literal")
			}
			i++
			text := src[start:i]
			s, err := strconv.Unquote(text)
			if err != nil {
				return nil, errorAt(src, start, "invalid string literal %s", text)
			}
			toks = append(toks, token{kind: tokString, pos: start, text: text, str: s})

		case c == '$':
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			return nil, errorAt(src, start, "unexpanded variable reference %s", src[start:j])

		default:
			return nil, errorAt(src, start, "unexpected character %q", c)
		}
	}
}

func lexNumber(src string, start int) (token, error) {
	i := start
	if src[i] == '-' || src[i] == '+' {
		i++
	}
	digits := 0
	for i < len(src) && isDigit(src[i]) {
		i++
		digits++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return token{}, errorAt(src, start, "malformed number")
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '-' || src[j] == '+') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}
	if i < len(src) && isIdentPart(src[i]) {
		return token{}, errorAt(src, start, "malformed number %s", src[start:i+1])
	}
	text := src[start:i]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, errorAt(src, start, "malformed number %s", text)
	}
	return token{kind: tokNumber, pos: start, text: text, num: v}, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
