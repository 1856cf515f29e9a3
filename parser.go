// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"github.com/creachadair/mds/mapset"

	"github.com/creachadair/jflow/ast"
	"github.com/creachadair/jflow/jpath"
)

// IncompleteStrings controls how a Parser surfaces a string value that
// is still being accumulated when a chunk boundary is reached.
type IncompleteStrings byte

const (
	// OmitIncomplete leaves partial strings invisible to Value.
	OmitIncomplete IncompleteStrings = iota

	// KeepIncomplete writes the partial content into its slot at each
	// chunk boundary, so Value reflects the string so far.
	KeepIncomplete

	// SuffixIncomplete is like KeepIncomplete but appends the
	// configured suffix to the partial content.
	SuffixIncomplete
)

// Options are optional settings for a Parser. A nil *Options is ready
// for use and provides default values as described.
type Options struct {
	// How to surface strings still in progress at a chunk boundary.
	// Default: OmitIncomplete.
	Incomplete IncompleteStrings

	// The suffix appended to partial strings when Incomplete is
	// SuffixIncomplete, for example "...".
	Suffix string

	// Record an Event for each structural mutation of the tree.
	// Default: false.
	TrackEvents bool
}

func (o *Options) incomplete() IncompleteStrings {
	if o == nil {
		return OmitIncomplete
	}
	return o.Incomplete
}

func (o *Options) suffix() string {
	if o == nil || o.Incomplete != SuffixIncomplete {
		return ""
	}
	return o.Suffix
}

func (o *Options) trackEvents() bool { return o != nil && o.TrackEvents }

// A piece is the next grammatical atom expected inside a container.
type piece byte

const (
	pieceValue piece = iota // an array element or member value
	pieceName               // an object member name
	pieceColon              // the ":" after a member name
	pieceComma              // the "," between elements or members
)

// An arrayFrame tracks an array whose elements are being populated.
// The bottom of the parse stack is always an arrayFrame of length 1
// whose single slot holds the root value.
type arrayFrame struct {
	val    *ast.Array
	index  int // slot receiving the next value
	expect piece
	empty  bool // no element has been committed yet
}

// An objectFrame tracks an object whose members are being populated.
type objectFrame struct {
	val    *ast.Object
	key    string // most recently consumed member name
	expect piece
	empty  bool // no member name has been consumed yet
	seen   mapset.Set[string]
}

// A stringFrame accumulates the content of a string in progress.
type stringFrame struct {
	buf []rune
}

// A Parser incrementally decodes a stream of JSON text into a value
// tree. Input is supplied in arbitrary chunks via Push and finalized
// with Close. The root of the tree is available from Value at any
// point during parsing, with all complete input already reflected.
//
// A Parser is not safe for concurrent use. The caller may read the
// tree between calls, but must not modify containers inside it while
// parsing is in progress.
type Parser struct {
	lex  *Lexer
	stk  []frame
	root *ast.Array // synthetic container holding the root slot

	opts        *Options
	events      []Event
	err         error // first syntax fault, sticky
	started     bool  // some input has been consumed
	closed      bool
	placeholder bool
}

type frame any // *arrayFrame, *objectFrame, or *stringFrame

// New constructs an empty Parser with the given options. Passing a nil
// *Options is equivalent to passing the zero Options.
func New(opts *Options) *Parser {
	p := &Parser{lex: NewLexer(), opts: opts}
	p.init()
	return p
}

func (p *Parser) init() {
	p.root = &ast.Array{Values: []ast.Value{ast.Null{}}}
	p.stk = p.stk[:0]
	p.stk = append(p.stk, &arrayFrame{val: p.root, expect: pieceValue, empty: true})
}

// Reset returns p to its initial state, discarding buffered input, the
// value tree, any placeholder, and any recorded events.
func (p *Parser) Reset() {
	p.lex.Reset()
	p.init()
	p.events = nil
	p.err = nil
	p.started = false
	p.closed = false
	p.placeholder = false
}

// SetPlaceholder installs v as the initial root value. While parsing
// descends into containers of v whose kind matches the input, their
// unvisited members and elements remain visible through Value; when
// such a container is closed, the entries not set by the input are
// removed. SetPlaceholder panics if any input has been consumed.
func (p *Parser) SetPlaceholder(v ast.Value) {
	if p.started {
		panic("jflow: input has already been consumed")
	}
	p.root.Values[0] = v
	p.placeholder = true
}

// Value returns the current root value. It is valid at any point
// during parsing; content from chunks not yet pushed is absent, and
// a string still in progress is included or omitted according to the
// Incomplete option.
func (p *Parser) Value() ast.Value { return p.root.Values[0] }

// TakeEvents returns the events recorded since the previous call to
// TakeEvents, and clears the log. It panics if the parser was not
// constructed with TrackEvents enabled.
func (p *Parser) TakeEvents() []Event {
	if !p.opts.trackEvents() {
		panic("jflow: event tracking is not enabled")
	}
	evts := p.events
	p.events = nil
	return evts
}

// Push parses a chunk of input text. If a syntax fault is found, Push
// reports an error of concrete type *SyntaxError; the tree retains
// everything parsed before the fault. After an error the parser is
// stuck, and all further calls report the same error until Reset.
// Push panics if the parser is closed.
func (p *Parser) Push(text string) error {
	if p.closed {
		panic("jflow: parser is closed")
	}
	if p.err != nil {
		return p.err
	}
	if text != "" {
		p.started = true
	}
	for _, ch := range text {
		err := p.lex.PushChar(ch)
		if cerr := p.consumeTokens(); cerr != nil {
			return p.fail(cerr)
		}
		if err != nil {
			return p.fail(err)
		}
	}
	p.surfacePartial()
	return nil
}

// Close finalizes the input, flushing any trailing literal and
// verifying that every container has been closed. Close panics if the
// parser is already closed.
func (p *Parser) Close() error {
	if p.closed {
		panic("jflow: parser is closed")
	}
	if p.err != nil {
		return p.err
	}
	p.surfacePartial()
	err := p.lex.Close()
	if cerr := p.consumeTokens(); cerr != nil {
		return p.fail(cerr)
	}
	if err != nil {
		return p.fail(err)
	}
	if len(p.stk) > 1 {
		switch p.top().(type) {
		case *objectFrame:
			return p.fail(syntaxErr(p.lex.Location(), "Unterminated object"))
		default:
			return p.fail(syntaxErr(p.lex.Location(), "Unterminated array"))
		}
	}
	p.closed = true
	return nil
}

func (p *Parser) fail(err error) error { p.err = err; return err }

func (p *Parser) top() frame { return p.stk[len(p.stk)-1] }

func (p *Parser) push(f frame) { p.stk = append(p.stk, f) }

func (p *Parser) pop() frame {
	f := p.top()
	p.stk = p.stk[:len(p.stk)-1]
	return f
}

func (p *Parser) consumeTokens() error {
	for _, t := range p.lex.Tokens() {
		if err := p.consume(t); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) consume(t Tok) error {
	switch t.Kind {
	case Literal:
		return p.setValue(t.Value, t.Loc)

	case LBrace:
		target, ok := p.currentSlot().(*ast.Object)
		if !ok {
			target = new(ast.Object)
		}
		if err := p.setValue(target, t.Loc); err != nil {
			return err
		}
		p.push(&objectFrame{val: target, expect: pieceName, empty: true, seen: mapset.New[string]()})

	case LSquare:
		target, ok := p.currentSlot().(*ast.Array)
		if !ok {
			target = new(ast.Array)
		}
		if err := p.setValue(target, t.Loc); err != nil {
			return err
		}
		p.push(&arrayFrame{val: target, expect: pieceValue, empty: true})

	case RBrace:
		f, ok := p.top().(*objectFrame)
		if !ok {
			return unexpectedToken(t)
		}
		want := pieceComma
		if f.empty {
			want = pieceName
		}
		if f.expect != want {
			return unexpectedToken(t)
		}
		p.closeContainer()

	case RSquare:
		f, ok := p.top().(*arrayFrame)
		if !ok || len(p.stk) == 1 {
			return unexpectedToken(t)
		}
		if !f.empty && f.expect == pieceValue {
			return unexpectedToken(t)
		}
		p.closeContainer()

	case Colon:
		f, ok := p.top().(*objectFrame)
		if !ok || f.expect != pieceColon {
			return unexpectedToken(t)
		}
		f.expect = pieceValue

	case Comma:
		if len(p.stk) == 1 {
			return unexpectedToken(t)
		}
		switch f := p.top().(type) {
		case *arrayFrame:
			if f.expect != pieceComma {
				return unexpectedToken(t)
			}
			p.advance(f)
		case *objectFrame:
			if f.expect != pieceComma {
				return unexpectedToken(t)
			}
			p.advance(f)
		default:
			return unexpectedToken(t)
		}

	case StringStart:
		if f, ok := p.top().(*objectFrame); ok && f.expect == pieceName {
			p.push(new(stringFrame))
			return nil
		}
		if !canSetValue(p.top()) {
			return unexpectedToken(t)
		}
		p.push(new(stringFrame))

	case StringChunk:
		f, ok := p.top().(*stringFrame)
		if !ok {
			panic("jflow: string content outside a string")
		}
		f.buf = append(f.buf, []rune(t.Text)...)

	case StringEnd:
		f, ok := p.top().(*stringFrame)
		if !ok {
			panic("jflow: string content outside a string")
		}
		f.buf = append(f.buf, []rune(t.Text)...)
		p.pop()
		if parent, ok := p.top().(*objectFrame); ok && parent.expect == pieceName {
			parent.key = string(f.buf)
			parent.expect = pieceColon
			parent.empty = false
			return nil
		}
		return p.setValue(ast.String(string(f.buf)), t.Loc)

	default:
		return unexpectedToken(t)
	}
	return nil
}

func unexpectedToken(t Tok) error {
	return syntaxErr(t.Loc, `Unexpected token: "%s"`, t.Kind)
}

// canSetValue reports whether f is a container frame ready to receive
// a value.
func canSetValue(f frame) bool {
	switch t := f.(type) {
	case *arrayFrame:
		return t.expect == pieceValue
	case *objectFrame:
		return t.expect == pieceValue
	}
	return false
}

// currentSlot returns the existing value in the slot the top frame
// will populate next, or nil if the slot is absent.
func (p *Parser) currentSlot() ast.Value {
	switch f := p.top().(type) {
	case *arrayFrame:
		if f.index < f.val.Len() {
			return f.val.Values[f.index]
		}
	case *objectFrame:
		if m := f.val.Find(f.key); m != nil {
			return m.Value
		}
	}
	return nil
}

// setValue writes v into the slot designated by the top frame, marks
// the frame as expecting a separator, and records an event.
func (p *Parser) setValue(v ast.Value, loc Location) error {
	switch f := p.top().(type) {
	case *arrayFrame:
		if f.expect != pieceValue {
			return syntaxErr(loc, "Unexpected value")
		}
		f.val.Put(f.index, v)
		f.expect = pieceComma
		f.empty = false
	case *objectFrame:
		if f.expect != pieceValue {
			return syntaxErr(loc, "Unexpected value")
		}
		f.val.Set(f.key, v)
		f.expect = pieceComma
	default:
		return syntaxErr(loc, "Unexpected value")
	}
	if p.opts.trackEvents() {
		kind := Set
		switch v.(type) {
		case *ast.Object, *ast.Array:
			kind = Begin
		}
		p.events = append(p.events, Event{Kind: kind, Path: p.path(), Value: v})
	}
	return nil
}

// advance moves a container frame past a committed entry, so the frame
// expects the next element or member name.
func (p *Parser) advance(f frame) {
	switch t := f.(type) {
	case *arrayFrame:
		t.index++
		t.expect = pieceValue
	case *objectFrame:
		t.seen.Add(t.key)
		t.expect = pieceName
	}
}

// closeContainer pops the top container frame. A non-empty frame is
// first advanced past its final entry. If a placeholder was installed,
// entries of the container that this parse did not set are removed.
func (p *Parser) closeContainer() {
	switch f := p.top().(type) {
	case *arrayFrame:
		if !f.empty {
			p.advance(f)
		}
		if p.placeholder {
			f.val.Truncate(f.index)
		}
	case *objectFrame:
		if !f.empty {
			p.advance(f)
		}
		if p.placeholder {
			f.val.Keep(f.seen.Has)
		}
	}
	p.pop()
	if p.opts.trackEvents() {
		p.events = append(p.events, Event{Kind: End, Path: p.path()})
	}
}

// path returns the path from the root to the slot the top frame will
// populate next. The synthetic bottom frame holds the root itself and
// contributes no step.
func (p *Parser) path() jpath.Path {
	if len(p.stk) == 1 {
		return nil
	}
	out := make(jpath.Path, 0, len(p.stk)-1)
	for _, f := range p.stk[1:] {
		switch t := f.(type) {
		case *arrayFrame:
			out = append(out, jpath.Elem(t.index))
		case *objectFrame:
			out = append(out, jpath.Field(t.key))
		}
	}
	return out
}

// surfacePartial writes a string in progress into its destination slot
// at a chunk boundary. The write bypasses setValue: the enclosing
// frame still expects the value, so the finished string overwrites the
// partial one. A member name in progress is never surfaced.
func (p *Parser) surfacePartial() {
	if p.opts.incomplete() == OmitIncomplete {
		return
	}
	if p.lex.FlushString() {
		for _, t := range p.lex.Tokens() {
			sf, ok := p.top().(*stringFrame)
			if !ok {
				panic("jflow: string content outside a string")
			}
			sf.buf = append(sf.buf, []rune(t.Text)...)
		}
	}
	sf, ok := p.top().(*stringFrame)
	if !ok {
		return
	}
	v := ast.String(string(sf.buf) + p.opts.suffix())
	switch f := p.stk[len(p.stk)-2].(type) {
	case *arrayFrame:
		f.val.Put(f.index, v)
	case *objectFrame:
		if f.expect == pieceName {
			return // a member name in progress
		}
		f.val.Set(f.key, v)
	}
}
