package spec

import (
	"github.com/dewy-lang/dewy/charset"
)

// Kind tags every meta-AST node. The folder and printers switch over it
// exhaustively.
type Kind int

const (
	KindEps Kind = iota
	KindString
	KindCaseless
	KindIdentifier
	KindCharset
	KindStar
	KindPlus
	KindCount
	KindOption
	KindCapture
	KindCompliment
	KindCat
	KindOr
	KindGreaterThan
	KindLessThan
	KindReject
	KindNoFollow
	KindIntersect
)

var kindNames = map[Kind]string{
	KindEps:         "eps",
	KindString:      "string",
	KindCaseless:    "caseless",
	KindIdentifier:  "identifier",
	KindCharset:     "charset",
	KindStar:        "star",
	KindPlus:        "plus",
	KindCount:       "count",
	KindOption:      "option",
	KindCapture:     "capture",
	KindCompliment:  "compliment",
	KindCat:         "cat",
	KindOr:          "or",
	KindGreaterThan: "greaterthan",
	KindLessThan:    "lessthan",
	KindReject:      "reject",
	KindNoFollow:    "nofollow",
	KindIntersect:   "intersect",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is the meta-AST. Every node has exactly one owner: its parent's child
// slot, or the top-level driver for the root. The folder replaces sub-trees
// through those slots.
type Node interface {
	Kind() Kind
}

type EpsNode struct{}

type StringNode struct {
	Runes []rune
}

// CaselessNode is a case-insensitive string literal. It is a semantic marker
// carried through to lowering; the folder never fuses it with a
// case-sensitive neighbor.
type CaselessNode struct {
	Runes []rune
}

type IdentifierNode struct {
	Name []rune
}

// CharsetNode owns a fully normalized set value.
type CharsetNode struct {
	Set *charset.Set
}

type StarNode struct {
	Inner Node
}

type PlusNode struct {
	Inner Node
}

// CountNode repeats its inner node exactly Count times. Count is always >= 2;
// the parser collapses 1 to the inner node and rejects 0.
type CountNode struct {
	Count uint64
	Inner Node
}

type OptionNode struct {
	Inner Node
}

type CaptureNode struct {
	Inner Node
}

type ComplimentNode struct {
	Inner Node
}

// CatNode always has at least two children.
type CatNode struct {
	Seq []Node
}

type OrNode struct {
	Left  Node
	Right Node
}

type GreaterThanNode struct {
	Left  Node
	Right Node
}

type LessThanNode struct {
	Left  Node
	Right Node
}

type RejectNode struct {
	Left  Node
	Right Node
}

type NoFollowNode struct {
	Left  Node
	Right Node
}

type IntersectNode struct {
	Left  Node
	Right Node
}

func (n *EpsNode) Kind() Kind         { return KindEps }
func (n *StringNode) Kind() Kind      { return KindString }
func (n *CaselessNode) Kind() Kind    { return KindCaseless }
func (n *IdentifierNode) Kind() Kind  { return KindIdentifier }
func (n *CharsetNode) Kind() Kind     { return KindCharset }
func (n *StarNode) Kind() Kind        { return KindStar }
func (n *PlusNode) Kind() Kind        { return KindPlus }
func (n *CountNode) Kind() Kind       { return KindCount }
func (n *OptionNode) Kind() Kind      { return KindOption }
func (n *CaptureNode) Kind() Kind     { return KindCapture }
func (n *ComplimentNode) Kind() Kind  { return KindCompliment }
func (n *CatNode) Kind() Kind         { return KindCat }
func (n *OrNode) Kind() Kind          { return KindOr }
func (n *GreaterThanNode) Kind() Kind { return KindGreaterThan }
func (n *LessThanNode) Kind() Kind    { return KindLessThan }
func (n *RejectNode) Kind() Kind      { return KindReject }
func (n *NoFollowNode) Kind() Kind    { return KindNoFollow }
func (n *IntersectNode) Kind() Kind   { return KindIntersect }

func NewEpsNode() *EpsNode {
	return &EpsNode{}
}

func NewStringNode(runes []rune) *StringNode {
	return &StringNode{
		Runes: runes,
	}
}

func NewCaselessNode(runes []rune) *CaselessNode {
	return &CaselessNode{
		Runes: runes,
	}
}

func NewIdentifierNode(name []rune) *IdentifierNode {
	return &IdentifierNode{
		Name: name,
	}
}

func NewCharsetNode(set *charset.Set) *CharsetNode {
	return &CharsetNode{
		Set: set,
	}
}

func NewStarNode(inner Node) *StarNode {
	return &StarNode{
		Inner: inner,
	}
}

func NewPlusNode(inner Node) *PlusNode {
	return &PlusNode{
		Inner: inner,
	}
}

func NewCountNode(count uint64, inner Node) *CountNode {
	return &CountNode{
		Count: count,
		Inner: inner,
	}
}

func NewOptionNode(inner Node) *OptionNode {
	return &OptionNode{
		Inner: inner,
	}
}

func NewCaptureNode(inner Node) *CaptureNode {
	return &CaptureNode{
		Inner: inner,
	}
}

func NewComplimentNode(inner Node) *ComplimentNode {
	return &ComplimentNode{
		Inner: inner,
	}
}

func NewCatNode(seq ...Node) *CatNode {
	return &CatNode{
		Seq: seq,
	}
}

func NewOrNode(left, right Node) *OrNode {
	return &OrNode{Left: left, Right: right}
}

func NewGreaterThanNode(left, right Node) *GreaterThanNode {
	return &GreaterThanNode{Left: left, Right: right}
}

func NewLessThanNode(left, right Node) *LessThanNode {
	return &LessThanNode{Left: left, Right: right}
}

func NewRejectNode(left, right Node) *RejectNode {
	return &RejectNode{Left: left, Right: right}
}

func NewNoFollowNode(left, right Node) *NoFollowNode {
	return &NoFollowNode{Left: left, Right: right}
}

func NewIntersectNode(left, right Node) *IntersectNode {
	return &IntersectNode{Left: left, Right: right}
}

// childSlots exposes the owner slots of a node's children so rewrite passes
// can replace sub-trees in place.
func childSlots(n Node) []*Node {
	switch v := n.(type) {
	case *StarNode:
		return []*Node{&v.Inner}
	case *PlusNode:
		return []*Node{&v.Inner}
	case *CountNode:
		return []*Node{&v.Inner}
	case *OptionNode:
		return []*Node{&v.Inner}
	case *CaptureNode:
		return []*Node{&v.Inner}
	case *ComplimentNode:
		return []*Node{&v.Inner}
	case *CatNode:
		slots := make([]*Node, len(v.Seq))
		for i := range v.Seq {
			slots[i] = &v.Seq[i]
		}
		return slots
	case *OrNode:
		return []*Node{&v.Left, &v.Right}
	case *GreaterThanNode:
		return []*Node{&v.Left, &v.Right}
	case *LessThanNode:
		return []*Node{&v.Left, &v.Right}
	case *RejectNode:
		return []*Node{&v.Left, &v.Right}
	case *NoFollowNode:
		return []*Node{&v.Left, &v.Right}
	case *IntersectNode:
		return []*Node{&v.Left, &v.Right}
	}
	return nil
}

// Equal reports structural equivalence of two trees.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *EpsNode:
		return true
	case *StringNode:
		return runesEqual(av.Runes, b.(*StringNode).Runes)
	case *CaselessNode:
		return runesEqual(av.Runes, b.(*CaselessNode).Runes)
	case *IdentifierNode:
		return runesEqual(av.Name, b.(*IdentifierNode).Name)
	case *CharsetNode:
		return av.Set.Equal(b.(*CharsetNode).Set)
	case *CountNode:
		if av.Count != b.(*CountNode).Count {
			return false
		}
	case *CatNode:
		if len(av.Seq) != len(b.(*CatNode).Seq) {
			return false
		}
	}
	as, bs := childSlots(a), childSlots(b)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Equal(*as[i], *bs[i]) {
			return false
		}
	}
	return true
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
