package spec

import (
	"github.com/dewy-lang/dewy/charset"
)

// Fold runs one full constant-folding pass over the tree rooted at *root and
// reports whether anything changed. Callers iterate to a fixed point:
//
//	for spec.Fold(&root) {
//	}
//
// Folding canonicalizes the representation without changing the language the
// tree denotes. Replaced sub-trees are dropped through the owner's slot.
func Fold(root *Node) bool {
	cs := foldCharsets(root)
	ss := foldStrings(root)
	return cs || ss
}

// FoldAll folds to a fixed point.
func FoldAll(root *Node) {
	for Fold(root) {
	}
}

// foldCharsets collapses every set-operation sub-tree whose operands are
// constant sets into a single charset leaf, bottom-up.
func foldCharsets(slot *Node) bool {
	changed := false
	for _, child := range childSlots(*slot) {
		if foldCharsets(child) {
			changed = true
		}
	}

	switch n := (*slot).(type) {
	case *ComplimentNode:
		if set := asConstSet(n.Inner); set != nil {
			*slot = NewCharsetNode(charset.Complement(set))
			return true
		}
	case *IntersectNode:
		l, r := asConstSet(n.Left), asConstSet(n.Right)
		if l != nil && r != nil {
			*slot = NewCharsetNode(charset.Intersect(l, r))
			return true
		}
	case *OrNode:
		if inSetContext(n.Left, n.Right) {
			l, r := asConstSet(n.Left), asConstSet(n.Right)
			if l != nil && r != nil {
				*slot = NewCharsetNode(charset.Union(l, r))
				return true
			}
		}
	case *RejectNode:
		if inSetContext(n.Left, n.Right) {
			l, r := asConstSet(n.Left), asConstSet(n.Right)
			if l != nil && r != nil {
				*slot = NewCharsetNode(charset.Diff(l, r))
				return true
			}
		}
	}
	return changed
}

// asConstSet views a node as a constant set when possible. Length-1 strings
// promote to singleton sets; longer strings and everything else are not sets.
func asConstSet(n Node) *charset.Set {
	switch v := n.(type) {
	case *CharsetNode:
		return v.Set
	case *StringNode:
		if len(v.Runes) == 1 {
			return charset.Single(v.Runes[0])
		}
	}
	return nil
}

// inSetContext reports whether an overloaded operator (or, reject) is acting
// on sets. At least one operand must already be a charset; a lone pair of
// strings stays an alternation of strings.
func inSetContext(left, right Node) bool {
	_, l := left.(*CharsetNode)
	_, r := right.(*CharsetNode)
	return l || r
}

// foldStrings fuses adjacent constant strings inside concatenations and
// expands constant counted repetitions, bottom-up. Case-insensitive literals
// fuse only with each other.
func foldStrings(slot *Node) bool {
	changed := false
	for _, child := range childSlots(*slot) {
		if foldStrings(child) {
			changed = true
		}
	}

	switch n := (*slot).(type) {
	case *CatNode:
		if fused, ok := fuseCat(n); ok {
			*slot = fused
			return true
		}
	case *CountNode:
		switch inner := n.Inner.(type) {
		case *StringNode:
			*slot = NewStringNode(repeatRunes(inner.Runes, n.Count))
			return true
		case *CaselessNode:
			*slot = NewCaselessNode(repeatRunes(inner.Runes, n.Count))
			return true
		case *EpsNode:
			*slot = NewEpsNode()
			return true
		}
	}
	return changed
}

func fuseCat(n *CatNode) (Node, bool) {
	var out []Node
	changed := false
	for _, child := range n.Seq {
		if child.Kind() == KindEps {
			changed = true
			continue
		}
		if len(out) > 0 {
			prev := out[len(out)-1]
			if ps, ok := prev.(*StringNode); ok {
				if cs, ok := child.(*StringNode); ok {
					out[len(out)-1] = NewStringNode(append(append([]rune{}, ps.Runes...), cs.Runes...))
					changed = true
					continue
				}
			}
			if pc, ok := prev.(*CaselessNode); ok {
				if cc, ok := child.(*CaselessNode); ok {
					out[len(out)-1] = NewCaselessNode(append(append([]rune{}, pc.Runes...), cc.Runes...))
					changed = true
					continue
				}
			}
		}
		out = append(out, child)
	}
	switch len(out) {
	case 0:
		return NewEpsNode(), true
	case 1:
		return out[0], true
	}
	if !changed {
		return nil, false
	}
	return NewCatNode(out...), true
}

func repeatRunes(rs []rune, n uint64) []rune {
	out := make([]rune, 0, uint64(len(rs))*n)
	for i := uint64(0); i < n; i++ {
		out = append(out, rs...)
	}
	return out
}

// CheckSetOperands reports the first set operator left standing after folding
// reached its fixed point. A surviving complement or intersection means the
// grammar applied a set operator to non-set operands.
func CheckSetOperands(root Node) error {
	switch root.Kind() {
	case KindCompliment, KindIntersect:
		return &SyntaxError{
			Cause:  synErrSetOperand,
			Offset: -1,
			Detail: root.Kind().String(),
		}
	}
	for _, child := range childSlots(root) {
		if err := CheckSetOperands(*child); err != nil {
			return err
		}
	}
	return nil
}
