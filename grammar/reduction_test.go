package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReductionEquality(t *testing.T) {
	a := NewReduction(42, 3)
	b := NewReduction(42, 3)
	c := NewReduction(42, 4)
	d := NewReduction(3, 42)

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.NotEqual(t, a, d)
}

func TestReductionHash(t *testing.T) {
	a := NewReduction(42, 3)
	b := NewReduction(42, 3)
	require.Equal(t, a.Hash(), b.Hash())

	require.NotEqual(t, a.Hash(), NewReduction(42, 4).Hash())
	// The digest is order-sensitive over (length, head).
	require.NotEqual(t, a.Hash(), NewReduction(3, 42).Hash())
}

func TestReductionString(t *testing.T) {
	tests := []struct {
		r    Reduction
		want string
	}{
		{r: NewReduction(0, 0), want: "R(0, 0)"},
		{r: NewReduction(42, 3), want: "R(42, 3)"},
		{r: NewReduction(1000, 99), want: "R(1000, 99)"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.r.String())
	}
}

func TestReductionFormat(t *testing.T) {
	store := NewSymbolStore()
	head := store.InternIdentifier([]rune("expr"))
	r := NewReduction(head, 2)
	require.Equal(t, "R(#expr, 2)", r.Format(store))
	require.Equal(t, len("R(#expr, 2)"), r.FormatWidth(store))

	long := NewReduction(store.InternIdentifier([]rune("statement")), 12)
	require.Equal(t, len(long.Format(store)), long.FormatWidth(store))
}

func TestReductionSetDedup(t *testing.T) {
	rs := NewReductionSet()

	require.True(t, rs.Add(NewReduction(42, 3)))
	require.False(t, rs.Add(NewReduction(42, 3)))
	require.Equal(t, 1, rs.Len())

	require.True(t, rs.Add(NewReduction(42, 4)))
	require.Equal(t, 2, rs.Len())

	require.True(t, rs.Contains(NewReduction(42, 3)))
	require.False(t, rs.Contains(NewReduction(41, 3)))
	require.Equal(t, []Reduction{NewReduction(42, 3), NewReduction(42, 4)}, rs.All())
}

func TestReductionTable(t *testing.T) {
	tbl := NewReductionTable()

	require.True(t, tbl.Add(0, NewReduction(7, 1)))
	require.False(t, tbl.Add(0, NewReduction(7, 1)))
	// The same action in another state is independent.
	require.True(t, tbl.Add(1, NewReduction(7, 1)))

	require.Equal(t, 1, tbl.State(0).Len())
	require.Equal(t, 1, tbl.State(1).Len())
	require.Nil(t, tbl.State(2))
}
