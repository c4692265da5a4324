package grammar

import (
	"fmt"

	"github.com/dewy-lang/dewy/charset"
)

type SymbolKind int

const (
	// SymbolKindIdentifier names another rule.
	SymbolKindIdentifier SymbolKind = iota
	// SymbolKindString is a case-sensitive terminal literal.
	SymbolKindString
	// SymbolKindCaseless is a case-insensitive terminal literal.
	SymbolKindCaseless
	// SymbolKindCharset is a terminal matching one codepoint from a set.
	SymbolKindCharset
	// SymbolKindAnonymous is a synthesized non-terminal introduced by
	// lowering. It has no surface form.
	SymbolKindAnonymous
)

var symbolKindNames = map[SymbolKind]string{
	SymbolKindIdentifier: "identifier",
	SymbolKindString:     "string",
	SymbolKindCaseless:   "caseless",
	SymbolKindCharset:    "charset",
	SymbolKindAnonymous:  "anonymous",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// SymbolIdx is a dense index into a SymbolStore. Indices are stable for the
// store's lifetime and are never recycled.
type SymbolIdx uint64

// Symbol is one interned value. Text holds the name or literal for
// identifier, string, and caseless kinds; Set holds the value for the
// charset kind. Anonymous symbols carry neither.
type Symbol struct {
	Kind SymbolKind
	Text []rune
	Set  *charset.Set
}

// String renders the symbol in surface-like form for diagnostics.
func (s *Symbol) String() string {
	switch s.Kind {
	case SymbolKindIdentifier:
		return fmt.Sprintf("#%v", string(s.Text))
	case SymbolKindString:
		return fmt.Sprintf("%q", string(s.Text))
	case SymbolKindCaseless:
		return fmt.Sprintf("'%v'", string(s.Text))
	case SymbolKindCharset:
		return s.Set.String()
	}
	return "<anon>"
}

// SymbolStore interns symbols to dense indices. Equal values always map to
// the same index, and an index is a function only of the order of first
// occurrence. The store is not safe for concurrent use.
type SymbolStore struct {
	syms []*Symbol

	idents    map[string]SymbolIdx
	strings   map[string]SymbolIdx
	caselesss map[string]SymbolIdx
	sets      map[uint64][]SymbolIdx
}

func NewSymbolStore() *SymbolStore {
	return &SymbolStore{
		idents:    map[string]SymbolIdx{},
		strings:   map[string]SymbolIdx{},
		caselesss: map[string]SymbolIdx{},
		sets:      map[uint64][]SymbolIdx{},
	}
}

func (s *SymbolStore) append(sym *Symbol) SymbolIdx {
	idx := SymbolIdx(len(s.syms))
	s.syms = append(s.syms, sym)
	return idx
}

// InternIdentifier interns a rule name.
func (s *SymbolStore) InternIdentifier(name []rune) SymbolIdx {
	key := string(name)
	if idx, ok := s.idents[key]; ok {
		return idx
	}
	idx := s.append(&Symbol{Kind: SymbolKindIdentifier, Text: name})
	s.idents[key] = idx
	return idx
}

// InternString interns a case-sensitive terminal literal.
func (s *SymbolStore) InternString(text []rune) SymbolIdx {
	key := string(text)
	if idx, ok := s.strings[key]; ok {
		return idx
	}
	idx := s.append(&Symbol{Kind: SymbolKindString, Text: text})
	s.strings[key] = idx
	return idx
}

// InternCaseless interns a case-insensitive terminal literal. It never
// collides with a case-sensitive literal of the same spelling.
func (s *SymbolStore) InternCaseless(text []rune) SymbolIdx {
	key := string(text)
	if idx, ok := s.caselesss[key]; ok {
		return idx
	}
	idx := s.append(&Symbol{Kind: SymbolKindCaseless, Text: text})
	s.caselesss[key] = idx
	return idx
}

// InternCharset interns a set value. The lookup is keyed by the set's hash
// with an equality check over the bucket, so hash collisions stay correct.
func (s *SymbolStore) InternCharset(set *charset.Set) SymbolIdx {
	h := set.Hash()
	for _, idx := range s.sets[h] {
		if s.syms[idx].Set.Equal(set) {
			return idx
		}
	}
	idx := s.append(&Symbol{Kind: SymbolKindCharset, Set: set.Clone()})
	s.sets[h] = append(s.sets[h], idx)
	return idx
}

// NewAnonymous allocates a fresh synthesized non-terminal. Every call yields
// a distinct index.
func (s *SymbolStore) NewAnonymous() SymbolIdx {
	return s.append(&Symbol{Kind: SymbolKindAnonymous})
}

// Get is the constant-time reverse lookup. It returns nil when idx was never
// allocated by this store.
func (s *SymbolStore) Get(idx SymbolIdx) *Symbol {
	if idx >= SymbolIdx(len(s.syms)) {
		return nil
	}
	return s.syms[idx]
}

// Len reports how many symbols the store holds.
func (s *SymbolStore) Len() int {
	return len(s.syms)
}
