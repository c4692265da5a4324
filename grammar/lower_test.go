package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dewy-lang/dewy/spec"
)

func lowerSource(t *testing.T, name, src string) (*Lowerer, SymbolIdx) {
	t.Helper()
	root, err := spec.ParseSource([]byte(src))
	require.NoError(t, err)
	spec.FoldAll(&root)
	lw := NewLowerer(NewSymbolStore())
	head, err := lw.LowerRule([]rune(name), root)
	require.NoError(t, err)
	return lw, head
}

func TestLowerAlternativesBecomeProductions(t *testing.T) {
	lw, head := lowerSource(t, "ab", `"a" | "b" | \e`)

	prods := lw.Productions().FindByHead(head)
	require.Len(t, prods, 3)
	require.Len(t, prods[0].RHS(), 1)
	require.Len(t, prods[1].RHS(), 1)
	require.True(t, prods[2].IsEmpty())

	store := lw.Store()
	require.Equal(t, SymbolKindString, store.Get(prods[0].RHS()[0]).Kind)
	require.Equal(t, "a", string(store.Get(prods[0].RHS()[0]).Text))
}

func TestLowerConcatenationInlines(t *testing.T) {
	lw, head := lowerSource(t, "seq", `#alpha #digit "end"`)

	prods := lw.Productions().FindByHead(head)
	require.Len(t, prods, 1)
	require.Len(t, prods[0].RHS(), 3)

	store := lw.Store()
	require.Equal(t, SymbolKindIdentifier, store.Get(prods[0].RHS()[0]).Kind)
	require.Equal(t, SymbolKindIdentifier, store.Get(prods[0].RHS()[1]).Kind)
	require.Equal(t, SymbolKindString, store.Get(prods[0].RHS()[2]).Kind)
}

func TestLowerStar(t *testing.T) {
	lw, head := lowerSource(t, "spaces", `[ \t]*`)

	prods := lw.Productions().FindByHead(head)
	require.Len(t, prods, 1)
	require.Len(t, prods[0].RHS(), 1)

	anon := prods[0].RHS()[0]
	require.Equal(t, SymbolKindAnonymous, lw.Store().Get(anon).Kind)

	anonProds := lw.Productions().FindByHead(anon)
	require.Len(t, anonProds, 2)
	// Left recursion: A -> A x, A -> eps.
	require.Equal(t, []SymbolIdx{anon, anonProds[0].RHS()[1]}, anonProds[0].RHS())
	require.True(t, anonProds[1].IsEmpty())
}

func TestLowerPlus(t *testing.T) {
	lw, head := lowerSource(t, "digits", `[0-9]+`)

	anon := lw.Productions().FindByHead(head)[0].RHS()[0]
	anonProds := lw.Productions().FindByHead(anon)
	require.Len(t, anonProds, 2)
	require.Len(t, anonProds[0].RHS(), 2)
	require.Equal(t, anon, anonProds[0].RHS()[0])
	require.Len(t, anonProds[1].RHS(), 1)
}

func TestLowerOption(t *testing.T) {
	lw, head := lowerSource(t, "sign", `"-"?`)

	anon := lw.Productions().FindByHead(head)[0].RHS()[0]
	anonProds := lw.Productions().FindByHead(anon)
	require.Len(t, anonProds, 2)
	require.Len(t, anonProds[0].RHS(), 1)
	require.True(t, anonProds[1].IsEmpty())
}

func TestLowerNestedAlternation(t *testing.T) {
	lw, head := lowerSource(t, "tok", `{"a" | "b"} "c"`)

	prods := lw.Productions().FindByHead(head)
	require.Len(t, prods, 1)
	require.Len(t, prods[0].RHS(), 2)

	anon := prods[0].RHS()[0]
	require.Equal(t, SymbolKindAnonymous, lw.Store().Get(anon).Kind)
	require.Len(t, lw.Productions().FindByHead(anon), 2)
}

func TestLowerCountOverIdentifier(t *testing.T) {
	lw, head := lowerSource(t, "triple", `#digit3`)

	prods := lw.Productions().FindByHead(head)
	require.Len(t, prods, 1)
	rhs := prods[0].RHS()
	require.Len(t, rhs, 3)
	require.Equal(t, rhs[0], rhs[1])
	require.Equal(t, rhs[1], rhs[2])
}

func TestLowerCapture(t *testing.T) {
	lw, head := lowerSource(t, "num", `("-"?) [0-9]+`)

	prods := lw.Productions().FindByHead(head)
	require.Len(t, prods, 1)
	require.Len(t, prods[0].RHS(), 2)

	captures := lw.Captures()
	require.Len(t, captures, 1)
	require.Equal(t, prods[0].RHS()[0], captures[0])
}

func TestLowerFilters(t *testing.T) {
	lw, head := lowerSource(t, "ident", `#word - "if"`)

	prods := lw.Productions().FindByHead(head)
	require.Len(t, prods, 1)
	require.Len(t, prods[0].RHS(), 1)

	restrictions := lw.Restrictions()
	require.Len(t, restrictions, 1)
	require.Equal(t, RestrictionReject, restrictions[0].Kind)
	require.Equal(t, prods[0].RHS()[0], restrictions[0].Left)
	require.Equal(t, SymbolKindString, lw.Store().Get(restrictions[0].Right).Kind)
}

func TestLowerPreference(t *testing.T) {
	lw, head := lowerSource(t, "expr", `#long > #short`)

	prods := lw.Productions().FindByHead(head)
	require.Len(t, prods, 1)
	anon := prods[0].RHS()[0]
	anonProds := lw.Productions().FindByHead(anon)
	require.Len(t, anonProds, 2)

	restrictions := lw.Restrictions()
	require.Len(t, restrictions, 1)
	require.Equal(t, RestrictionGreaterThan, restrictions[0].Kind)
	require.Equal(t, anonProds[0].RHS()[0], restrictions[0].Left)
	require.Equal(t, anonProds[1].RHS()[0], restrictions[0].Right)
}

func TestLowerRejectsSurvivingSetOperator(t *testing.T) {
	root, err := spec.ParseSource([]byte(`"ab" & "cd"`))
	require.NoError(t, err)
	spec.FoldAll(&root)

	lw := NewLowerer(NewSymbolStore())
	_, err = lw.LowerRule([]rune("bad"), root)
	require.Error(t, err)
}

func TestLowerSharesSymbolsAcrossRules(t *testing.T) {
	lw := NewLowerer(NewSymbolStore())

	rootA, err := spec.ParseSource([]byte(`[0-9] #rest`))
	require.NoError(t, err)
	headA, err := lw.LowerRule([]rune("a"), rootA)
	require.NoError(t, err)

	rootB, err := spec.ParseSource([]byte(`[0-9]`))
	require.NoError(t, err)
	headB, err := lw.LowerRule([]rune("b"), rootB)
	require.NoError(t, err)

	digitsA := lw.Productions().FindByHead(headA)[0].RHS()[0]
	digitsB := lw.Productions().FindByHead(headB)[0].RHS()[0]
	require.Equal(t, digitsA, digitsB)
}

func TestLowerReductions(t *testing.T) {
	lw, _ := lowerSource(t, "ab", `"a" "b" | \e`)

	reds := lw.Reductions()
	require.Len(t, reds, lw.Productions().Len())
	for num, r := range reds {
		p, ok := lw.Productions().FindByNum(num)
		require.True(t, ok)
		require.Equal(t, p.Head(), r.HeadIdx)
		require.Equal(t, uint64(len(p.RHS())), r.Length)
	}
}
