// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jflow implements a streaming, incremental parser for JSON.
//
// A Parser accepts input in arbitrarily-sized chunks via Push and
// builds the decoded value tree as the text arrives. The root of the
// tree is available from Value at any moment during the parse, with
// every complete construct from the input already in place. Strings
// still in progress at a chunk boundary can optionally be surfaced
// into the tree, and a placeholder tree installed before parsing is
// progressively overwritten and trimmed as real values arrive.
//
// The lower layer is a resumable Lexer that consumes one code point at
// a time, which may be used on its own. The Parse function adapts a
// sequence of chunks into a sequence of tree observations.
package jflow
