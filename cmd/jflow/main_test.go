// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(s string, n int) []string {
	var out []string
	for c := range chunks(s, n) {
		out = append(out, c)
	}
	return out
}

func TestChunks(t *testing.T) {
	assert.Nil(t, collect("", 4))
	assert.Equal(t, []string{"ab"}, collect("ab", 4))
	assert.Equal(t, []string{"abcd"}, collect("abcd", 4))
	assert.Equal(t, []string{"abcd", "e"}, collect("abcde", 4))
	assert.Equal(t, []string{"ab", "cd", "ef"}, collect("abcdef", 2))
	assert.Equal(t, []string{"a", "b", "c"}, collect("abc", 1))
}

func TestChunks_runeBoundary(t *testing.T) {
	// A chunk may run past the requested size rather than split a
	// multibyte character.
	const input = "aǼb" // 4 bytes, the middle rune is 2
	assert.Equal(t, []string{"aǼ", "b"}, collect(input, 2))
	assert.Equal(t, []string{"aǼ", "b"}, collect(input, 3))

	big := strings.Repeat("ꪜ", 3) // 9 bytes of 3-byte runes
	assert.Equal(t, []string{"ꪜ", "ꪜ", "ꪜ"}, collect(big, 1))
	assert.Equal(t, []string{"ꪜꪜ", "ꪜ"}, collect(big, 4))

	for _, c := range collect("ǼꪜǼꪜǼ", 3) {
		assert.True(t, strings.ToValidUTF8(c, "") == c, "chunk %q is valid UTF-8", c)
	}
}
