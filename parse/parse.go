// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse turns gramgraph pipeline text into a PlotSpec.
//
// A pipeline is a sequence of segments separated by '|'. Each
// segment is a call with named arguments:
//
//	aes(x: time, y: value, color: host) | line(width: 2) | labs(title: "Load")
//
// Argument values are strings, numbers, true/false, bare
// identifiers (column names), bracketed lists, or nested calls
// (theme elements such as element_text(size: 10)).
//
// Parse reports every malformed input as a *SyntaxError.
package parse

import (
	"github.com/aclements/gramgraph/plotspec"
)

// segment is a generic, uninterpreted call.
type segment struct {
	name token
	args []*arg
	end  int // offset of the closing ')'
}

type arg struct {
	key  token
	val  *value
	used bool
}

type valueKind int

const (
	valString valueKind = iota
	valNumber
	valBool
	valIdent
	valList
	valCall
)

var valueKindNames = [...]string{
	valString: "string",
	valNumber: "number",
	valBool:   "true or false",
	valIdent:  "column name",
	valList:   "list",
	valCall:   "element call",
}

type value struct {
	kind valueKind
	tok  token
	list []*value
	call *segment
}

type parser struct {
	src  string
	toks []token
	i    int
}

// Parse parses pipeline text into a PlotSpec.
func Parse(src string) (spec *plotspec.PlotSpec, err error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	defer func() {
		if e := recover(); e != nil {
			se, ok := e.(*SyntaxError)
			if !ok {
				panic(e)
			}
			spec, err = nil, se
		}
	}()
	segs := p.pipeline()
	return p.interpret(segs), nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// fail aborts parsing with err.
func (p *parser) fail(err *SyntaxError) {
	panic(err)
}

func (p *parser) errorf(pos int, format string, args ...interface{}) {
	p.fail(errorAt(p.src, pos, format, args...))
}

func (p *parser) expect(kind tokenKind, what string) token {
	t := p.next()
	if t.kind != kind {
		e := newError(p.src, t.pos)
		e.Expected, e.Found = what, t.describe()
		p.fail(e)
	}
	return t
}

// pipeline parses segment ('|' segment)*, with an optional leading
// bare "df" data-source marker.
func (p *parser) pipeline() []*segment {
	if p.peek().kind == tokEOF {
		p.errorf(0, "empty pipeline")
	}
	if t := p.peek(); t.kind == tokIdent && t.text == "df" && p.toks[p.i+1].kind != tokLParen {
		p.next()
		if p.peek().kind == tokEOF {
			p.errorf(p.peek().pos, "pipeline has no geometry layer")
		}
		p.expect(tokPipe, "'|'")
	}
	var segs []*segment
	for {
		segs = append(segs, p.call())
		t := p.next()
		switch t.kind {
		case tokEOF:
			return segs
		case tokPipe:
			if p.peek().kind == tokEOF {
				p.errorf(t.pos, "trailing '|' with no segment after it")
			}
		default:
			e := newError(p.src, t.pos)
			e.Expected, e.Found = "'|' or end of input", t.describe()
			p.fail(e)
		}
	}
}

// call parses identifier '(' (named_arg (',' named_arg)*)? ')'.
func (p *parser) call() *segment {
	s := &segment{name: p.expect(tokIdent, "segment name")}
	p.expect(tokLParen, "'('")
	seen := map[string]bool{}
	if p.peek().kind != tokRParen {
		for {
			key := p.expect(tokIdent, "argument name")
			if seen[key.text] {
				p.errorf(key.pos, "duplicate argument %q in %s()", key.text, s.name.text)
			}
			seen[key.text] = true
			p.expect(tokColon, "':'")
			s.args = append(s.args, &arg{key: key, val: p.value()})
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	s.end = p.expect(tokRParen, "',' or ')'").pos
	return s
}

func (p *parser) value() *value {
	t := p.peek()
	switch t.kind {
	case tokString:
		p.next()
		return &value{kind: valString, tok: t}
	case tokNumber:
		p.next()
		return &value{kind: valNumber, tok: t}
	case tokIdent:
		if t.text == "true" || t.text == "false" {
			p.next()
			return &value{kind: valBool, tok: t}
		}
		if p.toks[p.i+1].kind == tokLParen {
			return &value{kind: valCall, tok: t, call: p.call()}
		}
		p.next()
		return &value{kind: valIdent, tok: t}
	case tokLBrack:
		p.next()
		v := &value{kind: valList, tok: t}
		if p.peek().kind != tokRBrack {
			for {
				v.list = append(v.list, p.value())
				if p.peek().kind != tokComma {
					break
				}
				p.next()
			}
		}
		p.expect(tokRBrack, "',' or ']'")
		return v
	}
	e := newError(p.src, t.pos)
	e.Expected, e.Found = "value", t.describe()
	p.fail(e)
	return nil
}
