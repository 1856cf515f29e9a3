// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"strings"

	"github.com/creachadair/jflow/ast"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid     Token = iota // invalid token
	LBrace                   // left brace "{"
	RBrace                   // right brace "}"
	LSquare                  // left square bracket "["
	RSquare                  // right square bracket "]"
	Comma                    // comma ","
	Colon                    // colon ":"
	Literal                  // decoded scalar: null, true, false, or a number
	StringStart              // opening quote of a string
	StringChunk              // fragment of string content
	StringEnd                // closing quote of a string, with trailing content
)

var tokenStr = [...]string{
	Invalid:     "invalid token",
	LBrace:      "{",
	RBrace:      "}",
	LSquare:     "[",
	RSquare:     "]",
	Comma:       ",",
	Colon:       ":",
	Literal:     "literal value",
	StringStart: `"`,
	StringChunk: "string chunk",
	StringEnd:   `"`,
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Tok is a single lexical token and its payload.
//
// A Literal token carries the decoded scalar in Value. StringChunk and
// StringEnd tokens carry decoded string content in Text; the
// concatenation of all chunk payloads with the end payload is the
// complete string. Other kinds have no payload.
type Tok struct {
	Kind  Token
	Value ast.Value // decoded scalar, for Literal
	Text  string    // decoded fragment, for StringChunk and StringEnd
	Loc   Location
}

var structTok = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

// selfDelim reports whether ch is a structural character, and if so
// which token it denotes.
func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return structTok[i], true
	}
	return Invalid, false
}
