package grammar

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Reduction is one RNGLR reduce action: pop Length items from the
// graph-structured stack and push a node for the symbol HeadIdx. Length may
// be shorter than the production's full right-hand side for right-nulled
// rules. Reductions are immutable value types.
type Reduction struct {
	HeadIdx SymbolIdx
	Length  uint64
}

func NewReduction(head SymbolIdx, length uint64) Reduction {
	return Reduction{HeadIdx: head, Length: length}
}

// Hash digests the reduction as the word sequence [length, head]. Equal
// reductions always hash equal; the sequence is order-sensitive so (a, b)
// and (b, a) diverge.
func (r Reduction) Hash() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], r.Length)
	binary.LittleEndian.PutUint64(buf[8:], uint64(r.HeadIdx))
	return xxhash.Sum64(buf[:])
}

// String renders the action with the raw head index, for contexts with no
// store at hand. Format is the readable form.
func (r Reduction) String() string {
	return fmt.Sprintf("R(%v, %v)", uint64(r.HeadIdx), r.Length)
}

// Format resolves the head symbol through the store for readable dumps.
func (r Reduction) Format(store *SymbolStore) string {
	return fmt.Sprintf("R(%v, %v)", formatSymbol(store, r.HeadIdx), r.Length)
}

// FormatWidth reports the width of Format's output without building the
// string. Column layouts size themselves with this before rendering.
func (r Reduction) FormatWidth(store *SymbolStore) int {
	return len("R(, )") + utf8.RuneCountInString(formatSymbol(store, r.HeadIdx)) + decimalWidth(r.Length)
}

func decimalWidth(n uint64) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}

// ReductionSet is the per-state collection of reduce actions. Insertion is
// idempotent, which gives each state at most one copy of any action.
type ReductionSet struct {
	members map[Reduction]struct{}
	order   []Reduction
}

func NewReductionSet() *ReductionSet {
	return &ReductionSet{
		members: map[Reduction]struct{}{},
	}
}

// Add inserts a reduction and reports whether the set grew.
func (rs *ReductionSet) Add(r Reduction) bool {
	if _, ok := rs.members[r]; ok {
		return false
	}
	rs.members[r] = struct{}{}
	rs.order = append(rs.order, r)
	return true
}

func (rs *ReductionSet) Contains(r Reduction) bool {
	_, ok := rs.members[r]
	return ok
}

// All returns the reductions in insertion order. The slice is shared;
// callers must not mutate it.
func (rs *ReductionSet) All() []Reduction {
	return rs.order
}

func (rs *ReductionSet) Len() int {
	return len(rs.order)
}

// ReductionTable maps parse states to their reduce-action sets during table
// construction. States are created on first touch.
type ReductionTable struct {
	states map[uint64]*ReductionSet
}

func NewReductionTable() *ReductionTable {
	return &ReductionTable{
		states: map[uint64]*ReductionSet{},
	}
}

// Add records an action for a state and reports whether it was new to that
// state.
func (t *ReductionTable) Add(state uint64, r Reduction) bool {
	rs, ok := t.states[state]
	if !ok {
		rs = NewReductionSet()
		t.states[state] = rs
	}
	return rs.Add(r)
}

// State returns the action set of a state, or nil when the state has none.
func (t *ReductionTable) State(state uint64) *ReductionSet {
	return t.states[state]
}
