// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles encoding of JSON string values and decoding
// of hexadecimal escape payloads.
package escape

import (
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as a JSON string value, escaping characters as
// needed and adding enclosing double quotation marks.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		if r >= utf8.RuneSelf {
			switch r {
			case '\ufffd': // replacement rune
				buf = append(buf, `\ufffd`...)
			case '\u2028': // line separator
				buf = append(buf, `\u2028`...)
			case '\u2029': // paragraph separator
				buf = append(buf, `\u2029`...)
			default:
				var rbuf [6]byte
				nb := utf8.EncodeRune(rbuf[:], r)
				buf = append(buf, rbuf[:nb]...)
			}
			continue
		}

		switch {
		case r == '"' || r == '\\':
			buf = append(buf, '\\', byte(r))
		case r == '\b':
			buf = append(buf, '\\', 'b')
		case r == '\f':
			buf = append(buf, '\\', 'f')
		case r == '\n':
			buf = append(buf, '\\', 'n')
		case r == '\r':
			buf = append(buf, '\\', 'r')
		case r == '\t':
			buf = append(buf, '\\', 't')
		case r < ' ':
			buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
		default:
			buf = append(buf, byte(r))
		}
	}
	return append(buf, '"')
}

// Hex4 decodes data, which must comprise exactly four hexadecimal
// digits, and returns the code unit they denote.
func Hex4(data mem.RO) (rune, error) {
	if data.Len() != 4 {
		return 0, fmt.Errorf("got %d hex digits, want 4", data.Len())
	}
	var v rune
	for i := range 4 {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
