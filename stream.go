// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"iter"

	"github.com/creachadair/jflow/ast"
)

// An Update is one observation of a parse in progress, reported after
// each chunk of input and once more after the input ends.
type Update struct {
	// The current root value. Until Done, later updates may modify
	// containers reachable from it.
	Root ast.Value

	// The events recorded since the previous update. Empty unless the
	// TrackEvents option is enabled.
	Events []Event

	// Whether this is the final update for the input.
	Done bool
}

// Parse incrementally parses the concatenation of the given chunks and
// yields an Update after each chunk, then a final Update with Done set
// after the input is finished. If a chunk has a syntax fault, the
// fault is reported with the update for that chunk and the sequence
// ends.
func Parse(chunks iter.Seq[string], opts *Options) iter.Seq2[Update, error] {
	return func(yield func(Update, error) bool) {
		p := New(opts)
		track := opts.trackEvents()
		for chunk := range chunks {
			err := p.Push(chunk)
			u := Update{Root: p.Value()}
			if track {
				u.Events = p.TakeEvents()
			}
			if !yield(u, err) || err != nil {
				return
			}
		}
		err := p.Close()
		u := Update{Root: p.Value(), Done: true}
		if track {
			u.Events = p.TakeEvents()
		}
		yield(u, err)
	}
}
