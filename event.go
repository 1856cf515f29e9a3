// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"fmt"

	"github.com/creachadair/jflow/ast"
	"github.com/creachadair/jflow/jpath"
)

// EventKind is the kind of a structural mutation event.
type EventKind byte

const (
	Begin EventKind = iota // a container was opened
	Set                    // a scalar was assigned
	End                    // a container was closed
)

var eventStr = [...]string{
	Begin: "begin",
	Set:   "set",
	End:   "end",
}

func (e EventKind) String() string {
	v := int(e)
	if v >= len(eventStr) {
		return fmt.Sprintf("EventKind(%d)", v)
	}
	return eventStr[v]
}

// An Event records a single structural mutation of the value tree. The
// path addresses the mutated slot at the moment of emission.
//
// A Begin event carries the container installed at the path, an empty
// object or array unless a placeholder was reused. A Set event carries
// the assigned scalar. An End event has no payload.
type Event struct {
	Kind  EventKind
	Path  jpath.Path
	Value ast.Value
}

func (e Event) String() string {
	return fmt.Sprintf("Event(%s %s)", e.Kind, e.Path)
}
