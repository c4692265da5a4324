package grammar

import (
	"fmt"

	"github.com/dewy-lang/dewy/spec"
)

type RestrictionKind int

const (
	// RestrictionGreaterThan prefers the Left alternative when both parse.
	RestrictionGreaterThan RestrictionKind = iota
	// RestrictionLessThan prefers the Right alternative when both parse.
	RestrictionLessThan
	// RestrictionReject discards a Left match whose text Right also matches.
	RestrictionReject
	// RestrictionNoFollow discards a Left match immediately followed by a
	// Right match.
	RestrictionNoFollow
)

var restrictionKindNames = map[RestrictionKind]string{
	RestrictionGreaterThan: "greaterthan",
	RestrictionLessThan:    "lessthan",
	RestrictionReject:      "reject",
	RestrictionNoFollow:    "nofollow",
}

func (k RestrictionKind) String() string {
	if name, ok := restrictionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Restriction is a disambiguation filter attached to the grammar rather than
// encoded into productions. The GLR runtime applies filters after parsing.
type Restriction struct {
	Kind  RestrictionKind
	Left  SymbolIdx
	Right SymbolIdx
}

// LowerError reports a node the lowerer cannot translate.
type LowerError struct {
	Kind spec.Kind
}

func (e *LowerError) Error() string {
	return fmt.Sprintf("cannot lower %v node to productions", e.Kind)
}

// Lowerer turns folded trees into CFG productions over a shared symbol
// store. Repetition, option, and alternation sub-trees become synthesized
// anonymous non-terminals; follow and rejection operators become
// restrictions consumed by the parse-table builder.
type Lowerer struct {
	store        *SymbolStore
	prods        *ProductionSet
	restrictions []Restriction
	captures     []SymbolIdx
}

func NewLowerer(store *SymbolStore) *Lowerer {
	return &Lowerer{
		store: store,
		prods: NewProductionSet(),
	}
}

func (lw *Lowerer) Store() *SymbolStore {
	return lw.store
}

func (lw *Lowerer) Productions() *ProductionSet {
	return lw.prods
}

func (lw *Lowerer) Restrictions() []Restriction {
	return lw.restrictions
}

// Captures returns the synthesized non-terminals that stand for capture
// groups, in lowering order.
func (lw *Lowerer) Captures() []SymbolIdx {
	return lw.captures
}

// LowerRule lowers one named rule. The root must already be folded; a
// surviving set operator is a lowering error. Each top-level alternative
// becomes one production of the rule's head.
func (lw *Lowerer) LowerRule(name []rune, root spec.Node) (SymbolIdx, error) {
	if err := spec.CheckSetOperands(root); err != nil {
		return 0, err
	}
	head := lw.store.InternIdentifier(name)
	for _, alt := range alternatives(root) {
		rhs, err := lw.lowerSeq(alt)
		if err != nil {
			return 0, err
		}
		lw.prods.Append(head, rhs)
	}
	return head, nil
}

// alternatives flattens the right-nested alternation spine of a tree.
func alternatives(n spec.Node) []spec.Node {
	if or, ok := n.(*spec.OrNode); ok {
		return append([]spec.Node{or.Left}, alternatives(or.Right)...)
	}
	return []spec.Node{n}
}

// lowerSeq lowers a node to a right-hand-side fragment. Epsilon contributes
// nothing, concatenations and counted repetitions inline, and everything else
// contributes one symbol.
func (lw *Lowerer) lowerSeq(n spec.Node) ([]SymbolIdx, error) {
	switch v := n.(type) {
	case *spec.EpsNode:
		return nil, nil
	case *spec.CatNode:
		var rhs []SymbolIdx
		for _, child := range v.Seq {
			frag, err := lw.lowerSeq(child)
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, frag...)
		}
		return rhs, nil
	case *spec.CountNode:
		frag, err := lw.lowerSeq(v.Inner)
		if err != nil {
			return nil, err
		}
		rhs := make([]SymbolIdx, 0, uint64(len(frag))*v.Count)
		for i := uint64(0); i < v.Count; i++ {
			rhs = append(rhs, frag...)
		}
		return rhs, nil
	}
	sym, err := lw.lowerSym(n)
	if err != nil {
		return nil, err
	}
	return []SymbolIdx{sym}, nil
}

// lowerSym lowers a node to a single symbol, synthesizing an anonymous
// non-terminal when the node is not a plain terminal or rule reference.
func (lw *Lowerer) lowerSym(n spec.Node) (SymbolIdx, error) {
	switch v := n.(type) {
	case *spec.StringNode:
		return lw.store.InternString(v.Runes), nil
	case *spec.CaselessNode:
		return lw.store.InternCaseless(v.Runes), nil
	case *spec.IdentifierNode:
		return lw.store.InternIdentifier(v.Name), nil
	case *spec.CharsetNode:
		return lw.store.InternCharset(v.Set), nil
	case *spec.EpsNode:
		anon := lw.store.NewAnonymous()
		lw.prods.Append(anon, nil)
		return anon, nil
	case *spec.OrNode:
		anon := lw.store.NewAnonymous()
		for _, alt := range alternatives(v) {
			rhs, err := lw.lowerSeq(alt)
			if err != nil {
				return 0, err
			}
			lw.prods.Append(anon, rhs)
		}
		return anon, nil
	case *spec.StarNode:
		frag, err := lw.lowerSeq(v.Inner)
		if err != nil {
			return 0, err
		}
		anon := lw.store.NewAnonymous()
		lw.prods.Append(anon, append([]SymbolIdx{anon}, frag...))
		lw.prods.Append(anon, nil)
		return anon, nil
	case *spec.PlusNode:
		frag, err := lw.lowerSeq(v.Inner)
		if err != nil {
			return 0, err
		}
		anon := lw.store.NewAnonymous()
		lw.prods.Append(anon, append([]SymbolIdx{anon}, frag...))
		lw.prods.Append(anon, frag)
		return anon, nil
	case *spec.OptionNode:
		frag, err := lw.lowerSeq(v.Inner)
		if err != nil {
			return 0, err
		}
		anon := lw.store.NewAnonymous()
		lw.prods.Append(anon, frag)
		lw.prods.Append(anon, nil)
		return anon, nil
	case *spec.CountNode:
		frag, err := lw.lowerSeq(v)
		if err != nil {
			return 0, err
		}
		anon := lw.store.NewAnonymous()
		lw.prods.Append(anon, frag)
		return anon, nil
	case *spec.CaptureNode:
		frag, err := lw.lowerSeq(v.Inner)
		if err != nil {
			return 0, err
		}
		anon := lw.store.NewAnonymous()
		lw.prods.Append(anon, frag)
		lw.captures = append(lw.captures, anon)
		return anon, nil
	case *spec.GreaterThanNode:
		return lw.lowerPreference(RestrictionGreaterThan, v.Left, v.Right)
	case *spec.LessThanNode:
		return lw.lowerPreference(RestrictionLessThan, v.Left, v.Right)
	case *spec.RejectNode:
		return lw.lowerFilter(RestrictionReject, v.Left, v.Right)
	case *spec.NoFollowNode:
		return lw.lowerFilter(RestrictionNoFollow, v.Left, v.Right)
	case *spec.CatNode:
		frag, err := lw.lowerSeq(v)
		if err != nil {
			return 0, err
		}
		anon := lw.store.NewAnonymous()
		lw.prods.Append(anon, frag)
		return anon, nil
	}
	return 0, &LowerError{Kind: n.Kind()}
}

// lowerPreference lowers a follow-preference operator: both sides remain
// alternatives of one synthesized head, and the preference between them is
// recorded as a restriction.
func (lw *Lowerer) lowerPreference(kind RestrictionKind, left, right spec.Node) (SymbolIdx, error) {
	lsym, err := lw.lowerSym(left)
	if err != nil {
		return 0, err
	}
	rsym, err := lw.lowerSym(right)
	if err != nil {
		return 0, err
	}
	anon := lw.store.NewAnonymous()
	lw.prods.Append(anon, []SymbolIdx{lsym})
	lw.prods.Append(anon, []SymbolIdx{rsym})
	lw.restrictions = append(lw.restrictions, Restriction{Kind: kind, Left: lsym, Right: rsym})
	return anon, nil
}

// lowerFilter lowers reject and no-follow: the match is the left side, and
// the right side only constrains it.
func (lw *Lowerer) lowerFilter(kind RestrictionKind, left, right spec.Node) (SymbolIdx, error) {
	lsym, err := lw.lowerSym(left)
	if err != nil {
		return 0, err
	}
	rsym, err := lw.lowerSym(right)
	if err != nil {
		return 0, err
	}
	lw.restrictions = append(lw.restrictions, Restriction{Kind: kind, Left: lsym, Right: rsym})
	return lsym, nil
}

// Reductions derives the complete-match reduce action of every production,
// grouped by production number. The table builder adds right-nulled variants
// itself; this seeds each production's full-length action.
func (lw *Lowerer) Reductions() map[ProductionNum]Reduction {
	out := map[ProductionNum]Reduction{}
	for _, p := range lw.prods.All() {
		out[p.Num()] = NewReduction(p.Head(), uint64(len(p.RHS())))
	}
	return out
}
