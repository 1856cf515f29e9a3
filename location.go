// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jflow

import "fmt"

// A Location identifies a single code point in the input stream.
//
// Index counts code points from the start of the stream, so the first
// character of the input is at index 1. Line numbers are 1-based.
// Columns are counted per character within a line, so the first
// character of a line is at column 1; a line break resets the column
// counter for the following line. In a "\r\n" pair the "\n" is counted
// as column 1 of the new line, so the next character is at column 2.
type Location struct {
	Index  int64 // code point offset, 1-based
	Line   int   // line number, 1-based
	Column int   // column offset in line, 1-based
}

func (loc Location) String() string { return fmt.Sprintf("%d:%d", loc.Line, loc.Column) }
