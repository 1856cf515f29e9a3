// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"fmt"
	"math"
	"strconv"

	"go4.org/mem"

	"github.com/creachadair/jflow/ast"
	"github.com/creachadair/jflow/internal/escape"
)

type lexMode byte

const (
	modeMain    lexMode = iota // between values
	modeString                 // inside a quoted string
	modeEscape                 // after a backslash inside a string
	modeUnicode                // inside a \uXXXX escape payload
)

// A Lexer is a resumable lexical analyzer for JSON. It consumes input
// one code point at a time and emits zero, one, or two tokens per
// character into a small output window. Feeding the characters of an
// input one call at a time leaves the lexer in the same state as
// feeding them in any other grouping.
type Lexer struct {
	mode lexMode
	out  []Tok // current output window, see Tokens
	wbuf [2]Tok

	sbuf []rune // decoded string content since the last emission
	ubuf []rune // pending hex digits of a \u escape

	lbuf     []rune // undecoded literal text
	litStart Location

	loc    Location
	lastCR bool // previous character was '\r'
}

// NewLexer constructs a new empty Lexer.
func NewLexer() *Lexer {
	lx := new(Lexer)
	lx.Reset()
	return lx
}

// Reset returns lx to its initial state, discarding buffered input.
func (lx *Lexer) Reset() {
	*lx = Lexer{}
	lx.out = lx.wbuf[:0]
	lx.loc = Location{Line: 1}
}

// Tokens returns the tokens emitted by the most recent call to
// PushChar, FlushString, or Close. The returned slice is only valid
// until the next such call. At most two tokens are emitted per call:
// a character that terminates a pending literal and itself begins a
// new token produces the literal first.
func (lx *Lexer) Tokens() []Tok { return lx.out }

// Location returns the location of the most recently consumed
// character.
func (lx *Lexer) Location() Location { return lx.loc }

// PushChar consumes a single code point of input. On a syntax fault it
// reports an error of concrete type *SyntaxError; tokens already
// emitted in the same call remain valid.
func (lx *Lexer) PushChar(ch rune) error {
	lx.out = lx.wbuf[:0]
	lx.advance(ch)

	switch lx.mode {
	case modeMain:
		return lx.lexMain(ch)
	case modeString:
		lx.lexString(ch)
		return nil
	case modeEscape:
		return lx.lexEscape(ch)
	case modeUnicode:
		return lx.lexUnicode(ch)
	}
	panic(fmt.Sprintf("jflow: invalid lexer mode %d", lx.mode))
}

// FlushString emits a StringChunk token carrying the string content
// accumulated since the last emission, and reports whether a token was
// emitted. Outside a string, or with no content pending, FlushString
// emits nothing.
func (lx *Lexer) FlushString() bool {
	lx.out = lx.wbuf[:0]
	if lx.mode == modeMain || len(lx.sbuf) == 0 {
		return false
	}
	lx.emit(Tok{Kind: StringChunk, Text: string(lx.sbuf), Loc: lx.loc})
	lx.sbuf = lx.sbuf[:0]
	return true
}

// Close flushes any pending literal and verifies that the input does
// not end inside a string.
func (lx *Lexer) Close() error {
	lx.out = lx.wbuf[:0]
	if lx.mode != modeMain {
		return syntaxErr(lx.loc, "Unterminated string")
	}
	return lx.flushLiteral()
}

// advance updates the location counters for ch. The index and column
// are incremented before the character is classified, so the first
// character of the input is at index 1 and column 1. A "\r\n" pair
// counts as a single line break.
func (lx *Lexer) advance(ch rune) {
	lx.loc.Index++
	lx.loc.Column++
	switch ch {
	case '\r':
		lx.breakLine()
		lx.lastCR = true
	case '\n':
		if !lx.lastCR {
			lx.breakLine()
		}
		lx.lastCR = false
	default:
		lx.lastCR = false
	}
}

func (lx *Lexer) breakLine() {
	lx.loc.Line++
	lx.loc.Column = 0
}

func (lx *Lexer) emit(t Tok) { lx.out = append(lx.out, t) }

func (lx *Lexer) lexMain(ch rune) error {
	if t, ok := selfDelim(ch); ok {
		if err := lx.flushLiteral(); err != nil {
			return err
		}
		lx.emit(Tok{Kind: t, Loc: lx.loc})
		return nil
	}
	switch ch {
	case '"':
		if err := lx.flushLiteral(); err != nil {
			return err
		}
		lx.mode = modeString
		lx.sbuf = lx.sbuf[:0]
		lx.emit(Tok{Kind: StringStart, Loc: lx.loc})
	case ' ', '\t', '\r', '\n':
		return lx.flushLiteral()
	default:
		if len(lx.lbuf) == 0 {
			lx.litStart = lx.loc
		}
		lx.lbuf = append(lx.lbuf, ch)
	}
	return nil
}

func (lx *Lexer) lexString(ch rune) {
	switch ch {
	case '\\':
		lx.mode = modeEscape
	case '"':
		lx.emit(Tok{Kind: StringEnd, Text: string(lx.sbuf), Loc: lx.loc})
		lx.sbuf = lx.sbuf[:0]
		lx.mode = modeMain
	default:
		// Raw control characters are accepted inside strings.
		lx.sbuf = append(lx.sbuf, ch)
	}
}

func (lx *Lexer) lexEscape(ch rune) error {
	switch ch {
	case '"', '\\', '/':
		lx.sbuf = append(lx.sbuf, ch)
	case 'b':
		lx.sbuf = append(lx.sbuf, '\b')
	case 'f':
		lx.sbuf = append(lx.sbuf, '\f')
	case 'n':
		lx.sbuf = append(lx.sbuf, '\n')
	case 'r':
		lx.sbuf = append(lx.sbuf, '\r')
	case 't':
		lx.sbuf = append(lx.sbuf, '\t')
	case 'u':
		lx.mode = modeUnicode
		lx.ubuf = lx.ubuf[:0]
		return nil
	default:
		return syntaxErr(lx.loc, `Illegal escape sequence: \%c`, ch)
	}
	lx.mode = modeString
	return nil
}

func (lx *Lexer) lexUnicode(ch rune) error {
	lx.ubuf = append(lx.ubuf, ch)
	if len(lx.ubuf) < 4 {
		return nil
	}
	text := string(lx.ubuf)
	v, err := escape.Hex4(mem.S(text))
	if err != nil {
		return syntaxErr(lx.loc, `Illegal escape sequence: \u%s`, text)
	}

	// Surrogate halves are not paired; an unpaired half does not
	// survive conversion to UTF-8 and becomes the replacement rune.
	lx.sbuf = append(lx.sbuf, v)
	lx.ubuf = lx.ubuf[:0]
	lx.mode = modeString
	return nil
}

// flushLiteral decodes and emits a pending literal, if any. The token
// location is the start of the literal text.
func (lx *Lexer) flushLiteral() error {
	if len(lx.lbuf) == 0 {
		return nil
	}
	text := string(lx.lbuf)
	lx.lbuf = lx.lbuf[:0]

	var v ast.Value
	got := mem.S(text)
	switch {
	case got.Equal(mem.S("null")):
		v = ast.Null{}
	case got.Equal(mem.S("true")):
		v = ast.Bool(true)
	case got.Equal(mem.S("false")):
		v = ast.Bool(false)
	default:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return syntaxErr(lx.litStart, "Unknown literal value: %s", text)
		}
		v = ast.Number(f)
	}
	lx.emit(Tok{Kind: Literal, Value: v, Loc: lx.litStart})
	return nil
}
