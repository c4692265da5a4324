package charset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalization(t *testing.T) {
	s := New()
	s.Add('d', 'f')
	s.Add('a', 'b')
	s.Add('c', 'c')
	require.Equal(t, []Range{{Lo: 'a', Hi: 'f'}}, s.Ranges())

	s.Add('x', 'z')
	require.Equal(t, []Range{{Lo: 'a', Hi: 'f'}, {Lo: 'x', Hi: 'z'}}, s.Ranges())

	s.Add('e', 'y')
	require.Equal(t, []Range{{Lo: 'a', Hi: 'z'}}, s.Ranges())
}

func TestContains(t *testing.T) {
	s := Of(Range{Lo: 'a', Hi: 'f'}, Range{Lo: 'x', Hi: 'z'})
	require.True(t, s.Contains('a'))
	require.True(t, s.Contains('f'))
	require.True(t, s.Contains('y'))
	require.False(t, s.Contains('g'))
	require.False(t, s.Contains('w'))
	require.False(t, New().Contains('a'))
}

func TestSize(t *testing.T) {
	require.Equal(t, 0, New().Size())
	require.Equal(t, 1, Single('a').Size())
	require.Equal(t, 26, Of(Range{Lo: 'a', Hi: 'z'}).Size())
	require.Equal(t, 0x110000, Universe().Size())
}

func TestUnion(t *testing.T) {
	u := Union(
		Of(Range{Lo: 'a', Hi: 'f'}),
		Of(Range{Lo: 'd', Hi: 'z'}),
	)
	require.Equal(t, []Range{{Lo: 'a', Hi: 'z'}}, u.Ranges())
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		caption string
		a, b    *Set
		want    []Range
	}{
		{
			caption: "overlapping ranges keep the overlap",
			a:       Of(Range{Lo: 'a', Hi: 'f'}),
			b:       Of(Range{Lo: 'd', Hi: 'z'}),
			want:    []Range{{Lo: 'd', Hi: 'f'}},
		},
		{
			caption: "disjoint ranges are empty",
			a:       Of(Range{Lo: 'a', Hi: 'c'}),
			b:       Of(Range{Lo: 'x', Hi: 'z'}),
			want:    nil,
		},
		{
			caption: "multiple fragments survive",
			a:       Of(Range{Lo: '0', Hi: '9'}, Range{Lo: 'a', Hi: 'z'}),
			b:       Of(Range{Lo: '5', Hi: 'e'}),
			want:    []Range{{Lo: '5', Hi: '9'}, {Lo: 'a', Hi: 'e'}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			got := Intersect(tt.a, tt.b)
			if tt.want == nil {
				require.True(t, got.IsEmpty())
				return
			}
			require.Equal(t, tt.want, got.Ranges())
		})
	}
}

func TestDiff(t *testing.T) {
	d := Diff(
		Of(Range{Lo: 'a', Hi: 'z'}),
		Of(Range{Lo: 'k', Hi: 'k'}),
	)
	require.Equal(t, []Range{{Lo: 'a', Hi: 'j'}, {Lo: 'l', Hi: 'z'}}, d.Ranges())

	d = Diff(
		Of(Range{Lo: 'a', Hi: 'f'}),
		Of(Range{Lo: 'a', Hi: 'f'}),
	)
	require.True(t, d.IsEmpty())
}

func TestComplement(t *testing.T) {
	c := Complement(Of(Range{Lo: 'a', Hi: 'z'}))
	require.Equal(t, []Range{{Lo: 0, Hi: 0x60}, {Lo: 0x7B, Hi: MaxChar}}, c.Ranges())
	require.False(t, c.Contains('k'))
	require.True(t, c.Contains('K'))

	require.True(t, Complement(Universe()).IsEmpty())
	require.True(t, Complement(New()).Equal(Universe()))
}

func TestEqualAndClone(t *testing.T) {
	a := Of(Range{Lo: 'a', Hi: 'f'}, Range{Lo: 'x', Hi: 'z'})
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Add('0', '9')
	require.False(t, a.Equal(b))
	require.False(t, a.Contains('0'))
}

func TestHash(t *testing.T) {
	a := Of(Range{Lo: 'a', Hi: 'f'})
	b := Of(Range{Lo: 'a', Hi: 'c'}, Range{Lo: 'd', Hi: 'f'})
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())

	c := Of(Range{Lo: 'a', Hi: 'g'})
	require.NotEqual(t, a.Hash(), c.Hash())
}

func TestString(t *testing.T) {
	require.Equal(t, "[a-z]", Of(Range{Lo: 'a', Hi: 'z'}).String())
	require.Equal(t, `[\-a]`, Of(Range{Lo: '-', Hi: '-'}, Range{Lo: 'a', Hi: 'a'}).String())
	require.Equal(t, `[\u0009]`, Single('\t').String())
	require.Equal(t, `[\U0001F600]`, Single(0x1F600).String())
}
