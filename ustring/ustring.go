// Package ustring provides the codepoint-level view of UTF-8 rule sources that
// the meta-grammar pipeline works on: a random-access decoding stream, base-N
// digit parsing for count suffixes and hex escapes, and printable forms for
// codepoints outside the ASCII range.
package ustring

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// AugmentChar is 2^21, a value above the Unicode range. It marks the end of
// a meta-rule input; a charset may hold it as a member.
const AugmentChar rune = 0x200000

// Stream is a UTF-8 byte sequence read as a sequence of codepoints. An
// ill-formed byte advances the cursor by one byte and decodes to 0.
type Stream struct {
	src []byte
}

// Cursor is a byte position within a Stream. The zero value is the start of
// the stream.
type Cursor struct {
	pos int
}

func NewStream(src []byte) *Stream {
	return &Stream{
		src: src,
	}
}

// Len returns the number of codepoints the whole stream decodes to.
func (s *Stream) Len() int {
	n := 0
	c := Cursor{}
	for !s.EOF(c) {
		s.Eat(&c)
		n++
	}
	return n
}

func (s *Stream) EOF(c Cursor) bool {
	return c.pos >= len(s.src)
}

// Eat decodes the codepoint at the cursor and advances the cursor past it.
// At the end of the stream it returns 0 and leaves the cursor in place.
func (s *Stream) Eat(c *Cursor) rune {
	if c.pos >= len(s.src) {
		return 0
	}
	r, size := utf8.DecodeRune(s.src[c.pos:])
	c.pos += size
	if r == utf8.RuneError && size == 1 {
		return 0
	}
	return r
}

// Peek returns the codepoint n positions ahead of the cursor without moving
// it. Peek(c, 0) is the codepoint Eat would return next.
func (s *Stream) Peek(c Cursor, n int) rune {
	r := rune(0)
	for i := 0; i <= n; i++ {
		r = s.Eat(&c)
	}
	return r
}

// Decode converts a whole UTF-8 byte sequence into codepoints, one 0 per
// ill-formed byte.
func Decode(src []byte) []rune {
	s := NewStream(src)
	var out []rune
	c := Cursor{}
	for !s.EOF(c) {
		out = append(out, s.Eat(&c))
	}
	return out
}

// DigitValue returns the numeric value of c in the given base, or -1 when c
// is not a digit of that base. Bases up to 36 use letters case-insensitively.
func DigitValue(c rune, base uint64) int {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return -1
	}
	if uint64(v) >= base {
		return -1
	}
	return v
}

// ParseBase reads digits as an unsigned integer in the given base.
func ParseBase(digits []rune, base uint64) (uint64, error) {
	if len(digits) == 0 {
		return 0, fmt.Errorf("empty digit sequence")
	}
	val := uint64(0)
	for _, c := range digits {
		v := DigitValue(c, base)
		if v < 0 {
			return 0, fmt.Errorf("invalid base-%v digit: %q", base, c)
		}
		val = val*base + uint64(v)
	}
	return val, nil
}

func ParseHex(digits []rune) (uint64, error) {
	return ParseBase(digits, 16)
}

func ParseDec(digits []rune) (uint64, error) {
	return ParseBase(digits, 10)
}

// EscapeToRune maps the character following a backslash to the codepoint it
// denotes. Unrecognized escapes denote the character itself, which covers
// \\ \' \" \[ \] and \- among others.
func EscapeToRune(c rune) rune {
	switch c {
	case 'a':
		return 0x7
	case 'b':
		return 0x8
	case 't':
		return 0x9
	case 'n':
		return 0xA
	case 'v':
		return 0xB
	case 'f':
		return 0xC
	case 'r':
		return 0xD
	default:
		return c
	}
}

// CharStr renders a codepoint as itself when printable ASCII and as a \x hex
// escape otherwise.
func CharStr(c rune) string {
	if c >= 0x21 && c <= 0x7E {
		return string(c)
	}
	return fmt.Sprintf(`\x%X`, c)
}

// RunesStr renders a codepoint sequence, hex-escaping non-ASCII-printable
// characters.
func RunesStr(rs []rune) string {
	var b strings.Builder
	for _, c := range rs {
		if c == 0x20 {
			b.WriteRune(c)
			continue
		}
		b.WriteString(CharStr(c))
	}
	return b.String()
}
