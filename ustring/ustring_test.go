package ustring

import (
	"testing"
)

func TestStream(t *testing.T) {
	s := NewStream([]byte("a€😀"))
	if s.Len() != 3 {
		t.Fatalf("unexpected length: want: 3, got: %v", s.Len())
	}

	c := Cursor{}
	want := []rune{'a', '€', '😀'}
	for i, w := range want {
		if got := s.Peek(c, 0); got != w {
			t.Fatalf("unexpected peek at %v: want: %q, got: %q", i, w, got)
		}
		if got := s.Eat(&c); got != w {
			t.Fatalf("unexpected codepoint at %v: want: %q, got: %q", i, w, got)
		}
	}
	if !s.EOF(c) {
		t.Fatalf("cursor should be at the end of the stream")
	}
	if got := s.Eat(&c); got != 0 {
		t.Fatalf("eating past the end should yield 0, got: %q", got)
	}
}

func TestStreamPeekAhead(t *testing.T) {
	s := NewStream([]byte("abc"))
	c := Cursor{}
	if got := s.Peek(c, 2); got != 'c' {
		t.Fatalf("unexpected peek: want: 'c', got: %q", got)
	}
	if got := s.Eat(&c); got != 'a' {
		t.Fatalf("peek moved the cursor: got: %q", got)
	}
}

func TestStreamInvalidUTF8(t *testing.T) {
	// An ill-formed byte decodes to 0 and advances one byte.
	s := NewStream([]byte{'a', 0xFF, 'b'})
	c := Cursor{}
	want := []rune{'a', 0, 'b'}
	for i, w := range want {
		if got := s.Eat(&c); got != w {
			t.Fatalf("unexpected codepoint at %v: want: %v, got: %v", i, w, got)
		}
	}
	if !s.EOF(c) {
		t.Fatalf("cursor should be at the end of the stream")
	}
}

func TestDecode(t *testing.T) {
	got := Decode([]byte("héllo"))
	want := []rune{'h', 'é', 'l', 'l', 'o'}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: want: %v, got: %v", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected codepoint at %v: want: %q, got: %q", i, want[i], got[i])
		}
	}
}

func TestDigitValue(t *testing.T) {
	tests := []struct {
		c    rune
		base uint64
		want int
	}{
		{c: '0', base: 10, want: 0},
		{c: '9', base: 10, want: 9},
		{c: 'a', base: 16, want: 10},
		{c: 'F', base: 16, want: 15},
		{c: 'g', base: 16, want: -1},
		{c: 'z', base: 36, want: 35},
		{c: '2', base: 2, want: -1},
		{c: '!', base: 10, want: -1},
	}
	for _, tt := range tests {
		if got := DigitValue(tt.c, tt.base); got != tt.want {
			t.Fatalf("DigitValue(%q, %v): want: %v, got: %v", tt.c, tt.base, tt.want, got)
		}
	}
}

func TestParseBase(t *testing.T) {
	tests := []struct {
		digits string
		base   uint64
		want   uint64
		fails  bool
	}{
		{digits: "123", base: 10, want: 123},
		{digits: "ff", base: 16, want: 255},
		{digits: "10FFFF", base: 16, want: 0x10FFFF},
		{digits: "101", base: 2, want: 5},
		{digits: "", base: 10, fails: true},
		{digits: "12a", base: 10, fails: true},
	}
	for _, tt := range tests {
		got, err := ParseBase([]rune(tt.digits), tt.base)
		if tt.fails {
			if err == nil {
				t.Fatalf("ParseBase(%q, %v) should fail", tt.digits, tt.base)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Fatalf("ParseBase(%q, %v): want: %v, got: %v", tt.digits, tt.base, tt.want, got)
		}
	}
}

func TestEscapeToRune(t *testing.T) {
	if got := EscapeToRune('n'); got != '\n' {
		t.Fatalf("unexpected escape: want: newline, got: %q", got)
	}
	if got := EscapeToRune('t'); got != '\t' {
		t.Fatalf("unexpected escape: want: tab, got: %q", got)
	}
	// Unrecognized escapes denote themselves.
	if got := EscapeToRune('"'); got != '"' {
		t.Fatalf("unexpected escape: want: quote, got: %q", got)
	}
}

func TestCharStr(t *testing.T) {
	if got := CharStr('a'); got != "a" {
		t.Fatalf("unexpected form: want: a, got: %v", got)
	}
	if got := CharStr('\n'); got != `\xA` {
		t.Fatalf("unexpected form: want: \\xA, got: %v", got)
	}
	if got := CharStr(0x10FFFF); got != `\x10FFFF` {
		t.Fatalf("unexpected form: want: \\x10FFFF, got: %v", got)
	}
}

func TestRunesStr(t *testing.T) {
	if got := RunesStr([]rune("a b\n")); got != `a b\xA` {
		t.Fatalf("unexpected form: want: a b\\xA, got: %v", got)
	}
}
