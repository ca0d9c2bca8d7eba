// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the lexer and parser for pin specifications
// ("a, b, bus[4]") and connection descriptions ("a=x, b[0..3]=y[4..7]").
//
package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Type is the type of a lexical item.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

// Item is a lexical item. Value is a string for identifiers and punctuation,
// an int for integers and a rune for Raw items. Integer literals that do not
// fit in an int are returned as Int items with the literal string as Value.
//
type Item struct {
	Type  Type
	Pos   int
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		if s, ok := i.Value.(string); ok {
			return "integer " + s
		}
		return "integer " + strconv.Itoa(i.Value.(int))
	case Raw:
		return "character " + strconv.QuoteRune(i.Value.(rune))
	}
	return "'" + i.Value.(string) + "'"
}

// Lexer splits its input into Items.
//
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a new lexer for i/o specs and connection descriptions.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) next() (rune, int) {
	if l.pos >= len(l.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

// Lex returns the next item in the input. Once the end of input is reached,
// or after a Raw item has been returned, Lex only returns EOF items.
//
func (l *Lexer) Lex() Item {
	for {
		r, sz := l.next()
		if sz == 0 {
			return Item{EOF, l.pos, nil}
		}
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += sz
	}

	start := l.pos
	r, sz := l.next()
	l.pos += sz
	switch {
	case unicode.IsLetter(r) || r == '_':
		for {
			r, sz = l.next()
			if sz == 0 || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
				break
			}
			l.pos += sz
		}
		return Item{Ident, start, l.input[start:l.pos]}
	case '0' <= r && r <= '9':
		for l.pos < len(l.input) && '0' <= l.input[l.pos] && l.input[l.pos] <= '9' {
			l.pos++
		}
		lit := l.input[start:l.pos]
		n, err := strconv.Atoi(lit)
		if err != nil {
			return Item{Int, start, lit}
		}
		return Item{Int, start, n}
	case r == '[':
		return Item{BracketOpen, start, "["}
	case r == ']':
		return Item{BracketClose, start, "]"}
	case r == ',':
		return Item{Comma, start, ","}
	case r == '=':
		return Item{Equal, start, "="}
	case r == '.' && l.pos < len(l.input) && l.input[l.pos] == '.':
		l.pos++
		return Item{Range, start, ".."}
	}
	// garbage: stop lexing
	l.pos = len(l.input)
	return Item{Raw, start, r}
}

// Pin is a simple pin name
//
type Pin struct {
	Name string
	Pos  int
}

// PinIndex is an indexed pin p[index]
//
type PinIndex struct {
	Pin
	Index int
}

// PinRange is a pin range p[start..end]
//
type PinRange struct {
	Pin
	Start int
	End   int
}

// PinAssignment is a part pin to chip pin assignment. pp=pc
//
type PinAssignment struct {
	LHS interface{}
	RHS interface{}
}

// Parser is a simplistic parser
//
type Parser struct {
	Input string
	l     *Lexer
	i     Item
	state int
}

const (
	stateInit = iota
	stateStarted
	stateDone
)

// Next returns the next item in the input stream: a Pin, PinIndex or PinRange,
// or, if allowConns is true, a PinAssignment. It returns nil, nil once the
// input is exhausted.
//
func (p *Parser) Next(allowConns bool) (interface{}, error) {
	if p.state == stateDone {
		return nil, nil
	}
	if p.l == nil {
		p.l = NewLexer(p.Input)
	}

	p.i = p.l.Lex()
	if p.state == stateInit && p.i.Type == EOF {
		p.state = stateDone
		return nil, nil
	}
	p.state = stateStarted

	pin, err := p.getPin()
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return pin, nil
	case Equal:
		if allowConns {
			break
		}
		fallthrough
	default:
		p.state = stateDone
		return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
	}

	p.i = p.l.Lex()
	pin2, err := p.getPin()
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return PinAssignment{pin, pin2}, nil
	}

	p.state = stateDone
	return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
}

func (p *Parser) getPin() (interface{}, error) {
	if p.i.Type != Ident {
		return nil, parseError(p.Input, p.i.Pos, "expected pin name")
	}
	pin := Pin{p.i.Value.(string), p.i.Pos}
	// after ident, expect ',', '[', '=' or EOF
	p.i = p.l.Lex()
	if p.i.Type != BracketOpen {
		return pin, nil
	}
	p.i = p.l.Lex()
	start, err := p.getInt("'['")
	if err != nil {
		return nil, err
	}
	end := -1
	p.i = p.l.Lex()
	if p.i.Type == Range {
		p.i = p.l.Lex()
		if end, err = p.getInt("'..'"); err != nil {
			return nil, err
		}
		p.i = p.l.Lex()
	}
	if p.i.Type != BracketClose {
		return nil, parseError(p.Input, p.i.Pos, "closing ']' expected after index or range")
	}
	p.i = p.l.Lex()
	if end >= 0 {
		return PinRange{pin, start, end}, nil
	}
	return PinIndex{pin, start}, nil
}

func (p *Parser) getInt(after string) (int, error) {
	if p.i.Type != Int {
		return 0, parseError(p.Input, p.i.Pos, "integer value expected after "+after)
	}
	n, ok := p.i.Value.(int)
	if !ok {
		return 0, parseError(p.Input, p.i.Pos, "integer out of range")
	}
	return n, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
