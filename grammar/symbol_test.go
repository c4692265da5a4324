package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dewy-lang/dewy/charset"
)

func TestSymbolStoreInterning(t *testing.T) {
	store := NewSymbolStore()

	digit := store.InternIdentifier([]rune("digit"))
	foo := store.InternString([]rune("foo"))
	lower := store.InternCharset(charset.Of(charset.Range{Lo: 'a', Hi: 'z'}))

	require.Equal(t, digit, store.InternIdentifier([]rune("digit")))
	require.Equal(t, foo, store.InternString([]rune("foo")))
	require.Equal(t, lower, store.InternCharset(charset.Of(charset.Range{Lo: 'a', Hi: 'z'})))
	require.Equal(t, 3, store.Len())

	require.NotEqual(t, digit, store.InternIdentifier([]rune("alpha")))
	require.NotEqual(t, foo, store.InternString([]rune("bar")))
	require.NotEqual(t, lower, store.InternCharset(charset.Of(charset.Range{Lo: 'A', Hi: 'Z'})))
	require.Equal(t, 6, store.Len())
}

func TestSymbolStoreKindsNeverCollide(t *testing.T) {
	store := NewSymbolStore()

	ident := store.InternIdentifier([]rune("foo"))
	lit := store.InternString([]rune("foo"))
	caseless := store.InternCaseless([]rune("foo"))
	require.NotEqual(t, ident, lit)
	require.NotEqual(t, ident, caseless)
	require.NotEqual(t, lit, caseless)
}

func TestSymbolStoreIndicesFollowFirstOccurrence(t *testing.T) {
	intern := func(store *SymbolStore) []SymbolIdx {
		return []SymbolIdx{
			store.InternString([]rune("a")),
			store.InternIdentifier([]rune("b")),
			store.InternString([]rune("a")),
			store.InternCharset(charset.Single('c')),
			store.InternIdentifier([]rune("b")),
		}
	}
	a := intern(NewSymbolStore())
	b := intern(NewSymbolStore())
	require.Equal(t, a, b)
	require.Equal(t, []SymbolIdx{0, 1, 0, 2, 1}, a)
}

func TestSymbolStoreGet(t *testing.T) {
	store := NewSymbolStore()
	idx := store.InternCaseless([]rune("Begin"))

	sym := store.Get(idx)
	require.NotNil(t, sym)
	require.Equal(t, SymbolKindCaseless, sym.Kind)
	require.Equal(t, "Begin", string(sym.Text))

	require.Nil(t, store.Get(SymbolIdx(99)))
}

func TestSymbolStoreAnonymous(t *testing.T) {
	store := NewSymbolStore()
	a := store.NewAnonymous()
	b := store.NewAnonymous()
	require.NotEqual(t, a, b)
	require.Equal(t, SymbolKindAnonymous, store.Get(a).Kind)
}

func TestSymbolStoreCharsetClones(t *testing.T) {
	store := NewSymbolStore()
	set := charset.Of(charset.Range{Lo: 'a', Hi: 'f'})
	idx := store.InternCharset(set)

	// Mutating the caller's set must not corrupt the interned value.
	set.Add('0', '9')
	require.True(t, store.Get(idx).Set.Equal(charset.Of(charset.Range{Lo: 'a', Hi: 'f'})))
	require.NotEqual(t, idx, store.InternCharset(set))
}
