// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jflow

import "fmt"

// SyntaxError is the concrete type of errors reported for faults in
// the input text. The location identifies the offending character, or
// the start of an offending literal.
type SyntaxError struct {
	Message  string
	Location Location
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

func syntaxErr(loc Location, msg string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(msg, args...), Location: loc}
}
