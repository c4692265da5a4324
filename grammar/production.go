package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
)

// ProductionID is a content hash of a production. Two productions with the
// same head and right-hand side always share an ID.
type ProductionID [32]byte

func (id ProductionID) String() string {
	return fmt.Sprintf("%x", id[:])
}

func genProductionID(head SymbolIdx, rhs []SymbolIdx) ProductionID {
	seq := make([]byte, 8*(len(rhs)+1))
	binary.LittleEndian.PutUint64(seq, uint64(head))
	for i, sym := range rhs {
		binary.LittleEndian.PutUint64(seq[8*(i+1):], uint64(sym))
	}
	return ProductionID(sha256.Sum256(seq))
}

// ProductionNum numbers productions in insertion order, starting at 0.
type ProductionNum uint64

// Production is one CFG rule: a head symbol and an ordered right-hand side.
// An empty RHS denotes epsilon.
type Production struct {
	id   ProductionID
	num  ProductionNum
	head SymbolIdx
	rhs  []SymbolIdx
}

func newProduction(head SymbolIdx, rhs []SymbolIdx) *Production {
	return &Production{
		id:   genProductionID(head, rhs),
		head: head,
		rhs:  rhs,
	}
}

func (p *Production) ID() ProductionID {
	return p.id
}

func (p *Production) Num() ProductionNum {
	return p.num
}

func (p *Production) Head() SymbolIdx {
	return p.head
}

func (p *Production) RHS() []SymbolIdx {
	return p.rhs
}

// IsEmpty reports whether the production derives epsilon directly.
func (p *Production) IsEmpty() bool {
	return len(p.rhs) == 0
}

// Format renders the production for diagnostics, resolving symbols through
// the store.
func (p *Production) Format(store *SymbolStore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v :", formatSymbol(store, p.head))
	if len(p.rhs) == 0 {
		b.WriteString(" \\e")
	}
	for _, sym := range p.rhs {
		b.WriteString(" ")
		b.WriteString(formatSymbol(store, sym))
	}
	return b.String()
}

func formatSymbol(store *SymbolStore, idx SymbolIdx) string {
	sym := store.Get(idx)
	if sym == nil {
		return fmt.Sprintf("<sym %v>", uint64(idx))
	}
	if sym.Kind == SymbolKindAnonymous {
		return fmt.Sprintf("_%v", uint64(idx))
	}
	return sym.String()
}

// ProductionSet holds the productions of one grammar, deduplicated by
// content. Insertion order fixes production numbering.
type ProductionSet struct {
	byID   map[ProductionID]*Production
	byHead map[SymbolIdx][]*Production
	order  []*Production
}

func NewProductionSet() *ProductionSet {
	return &ProductionSet{
		byID:   map[ProductionID]*Production{},
		byHead: map[SymbolIdx][]*Production{},
	}
}

// Append adds a production unless an identical one is already present. It
// reports whether the set grew.
func (ps *ProductionSet) Append(head SymbolIdx, rhs []SymbolIdx) bool {
	p := newProduction(head, rhs)
	if _, ok := ps.byID[p.id]; ok {
		return false
	}
	p.num = ProductionNum(len(ps.order))
	ps.byID[p.id] = p
	ps.byHead[p.head] = append(ps.byHead[p.head], p)
	ps.order = append(ps.order, p)
	return true
}

// FindByID looks a production up by content hash.
func (ps *ProductionSet) FindByID(id ProductionID) (*Production, bool) {
	p, ok := ps.byID[id]
	return p, ok
}

// FindByHead returns every production whose head is the given symbol, in
// insertion order.
func (ps *ProductionSet) FindByHead(head SymbolIdx) []*Production {
	return ps.byHead[head]
}

// FindByNum looks a production up by its number.
func (ps *ProductionSet) FindByNum(num ProductionNum) (*Production, bool) {
	if num >= ProductionNum(len(ps.order)) {
		return nil, false
	}
	return ps.order[num], true
}

// All returns the productions in insertion order. The slice is shared;
// callers must not mutate it.
func (ps *ProductionSet) All() []*Production {
	return ps.order
}

func (ps *ProductionSet) Len() int {
	return len(ps.order)
}
