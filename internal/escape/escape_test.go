// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"go4.org/mem"

	"github.com/creachadair/jflow/internal/escape"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{`say "what"`, `"say \"what\""`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x01\x1f", `"\u0001\u001f"`},
		{"non-ASCII ɸ", "\"non-ASCII ɸ\""},
		{"sep\u2028par\u2029", `"sep\u2028par\u2029"`},
		{"bad\ufffdrune", `"bad\ufffdrune"`},
	}
	for _, test := range tests {
		got := string(escape.Quote(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Quote %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestHex4(t *testing.T) {
	tests := []struct {
		input string
		want  rune
		ok    bool
	}{
		{"0000", 0, true},
		{"002f", '/', true},
		{"002F", '/', true},
		{"01fc", 'Ǽ', true},
		{"AA9c", 'ꪜ', true},
		{"ffff", '￿', true},
		{"", 0, false},
		{"12", 0, false},
		{"12345", 0, false},
		{"zzzz", 0, false},
		{"00g1", 0, false},
	}
	for _, test := range tests {
		got, err := escape.Hex4(mem.S(test.input))
		if test.ok {
			if err != nil {
				t.Errorf("Hex4 %q: unexpected error: %v", test.input, err)
			} else if got != test.want {
				t.Errorf("Hex4 %q: got %q, want %q", test.input, got, test.want)
			}
		} else if err == nil {
			t.Errorf("Hex4 %q: got %q, want error", test.input, got)
		}
	}
}
