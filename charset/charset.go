// Package charset implements the set algebra the folder and symbol store use:
// closed sets of codepoints over [0, 0x10FFFF] plus the augment sentinel,
// represented as sorted, non-overlapping inclusive ranges.
package charset

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	MinChar rune = 0x0
	MaxChar rune = 0x10FFFF
)

// Range is an inclusive codepoint range.
type Range struct {
	Lo rune
	Hi rune
}

// Set is a normalized list of ranges: sorted by Lo, non-overlapping, and with
// no two ranges mergeable into one. All operations preserve normalization.
type Set struct {
	ranges []Range
}

func New() *Set {
	return &Set{}
}

func Of(ranges ...Range) *Set {
	s := New()
	for _, r := range ranges {
		s.Add(r.Lo, r.Hi)
	}
	return s
}

func Single(c rune) *Set {
	return Of(Range{Lo: c, Hi: c})
}

// Universe is every Unicode scalar value. The augment sentinel is not a
// member; sets that need it add it explicitly.
func Universe() *Set {
	return Of(Range{Lo: MinChar, Hi: MaxChar})
}

// Add inserts the inclusive range [lo, hi] and renormalizes.
func (s *Set) Add(lo, hi rune) {
	if lo > hi {
		return
	}
	s.ranges = append(s.ranges, Range{Lo: lo, Hi: hi})
	s.normalize()
}

func (s *Set) normalize() {
	if len(s.ranges) < 2 {
		return
	}
	sort.Slice(s.ranges, func(i, j int) bool {
		if s.ranges[i].Lo != s.ranges[j].Lo {
			return s.ranges[i].Lo < s.ranges[j].Lo
		}
		return s.ranges[i].Hi < s.ranges[j].Hi
	})
	merged := s.ranges[:1]
	for _, r := range s.ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	s.ranges = merged
}

func (s *Set) Ranges() []Range {
	rs := make([]Range, len(s.ranges))
	copy(rs, s.ranges)
	return rs
}

func (s *Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Size returns the number of codepoints the set contains.
func (s *Set) Size() int {
	n := 0
	for _, r := range s.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

func (s *Set) Contains(c rune) bool {
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].Hi >= c
	})
	return i < len(s.ranges) && s.ranges[i].Lo <= c
}

func (s *Set) Equal(o *Set) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i, r := range s.ranges {
		if o.ranges[i] != r {
			return false
		}
	}
	return true
}

func (s *Set) Clone() *Set {
	return &Set{
		ranges: s.Ranges(),
	}
}

func Union(a, b *Set) *Set {
	u := a.Clone()
	for _, r := range b.ranges {
		u.Add(r.Lo, r.Hi)
	}
	return u
}

func Intersect(a, b *Set) *Set {
	out := New()
	i, j := 0, 0
	for i < len(a.ranges) && j < len(b.ranges) {
		ra, rb := a.ranges[i], b.ranges[j]
		lo, hi := maxRune(ra.Lo, rb.Lo), minRune(ra.Hi, rb.Hi)
		if lo <= hi {
			out.Add(lo, hi)
		}
		if ra.Hi < rb.Hi {
			i++
		} else {
			j++
		}
	}
	return out
}

// Diff returns the members of a that are not members of b.
func Diff(a, b *Set) *Set {
	out := New()
	for _, r := range a.ranges {
		lo := r.Lo
		for _, cut := range b.ranges {
			if cut.Hi < lo {
				continue
			}
			if cut.Lo > r.Hi {
				break
			}
			if cut.Lo > lo {
				out.Add(lo, cut.Lo-1)
			}
			lo = cut.Hi + 1
			if lo > r.Hi {
				break
			}
		}
		if lo <= r.Hi {
			out.Add(lo, r.Hi)
		}
	}
	return out
}

// Complement is relative to the Unicode scalar range. The augment sentinel is
// never a member of a complement.
func Complement(a *Set) *Set {
	return Diff(Universe(), a)
}

// Hash digests the normalized ranges as little-endian 64-bit words. Equal
// sets share a digest.
func (s *Set) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, r := range s.ranges {
		binary.LittleEndian.PutUint64(buf[:], uint64(r.Lo))
		d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(r.Hi))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// String renders the set in the surface bracket form. The output re-lexes to
// an equal set: members the bracket syntax reserves are backslash-escaped and
// non-printable members use fixed-width hex escapes.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range s.ranges {
		b.WriteString(bracketCharStr(r.Lo))
		if r.Hi != r.Lo {
			b.WriteByte('-')
			b.WriteString(bracketCharStr(r.Hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func bracketCharStr(c rune) string {
	switch c {
	case ']', '-', '\\':
		return `\` + string(c)
	}
	if c >= 0x21 && c <= 0x7E {
		return string(c)
	}
	if c <= 0xFFFF {
		return fmt.Sprintf(`\u%04X`, c)
	}
	return fmt.Sprintf(`\U%08X`, c)
}

func minRune(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}

func maxRune(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}
