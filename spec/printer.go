package spec

import (
	"fmt"
	"strings"

	"github.com/dewy-lang/dewy/charset"
	"github.com/dewy-lang/dewy/ustring"
)

// Repr dumps a tree in indented structural form, one node per line. It is a
// debugging aid; String produces the surface form.
func Repr(n Node) string {
	var b strings.Builder
	reprTo(&b, n, 0)
	return b.String()
}

func reprTo(b *strings.Builder, n Node, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("    ")
	}
	switch v := n.(type) {
	case *StringNode:
		fmt.Fprintf(b, "%v %v\n", n.Kind(), ustring.RunesStr(v.Runes))
	case *CaselessNode:
		fmt.Fprintf(b, "%v %v\n", n.Kind(), ustring.RunesStr(v.Runes))
	case *IdentifierNode:
		fmt.Fprintf(b, "%v #%v\n", n.Kind(), string(v.Name))
	case *CharsetNode:
		fmt.Fprintf(b, "%v %v\n", n.Kind(), v.Set)
	case *CountNode:
		fmt.Fprintf(b, "%v %v\n", n.Kind(), v.Count)
	default:
		fmt.Fprintf(b, "%v\n", n.Kind())
	}
	for _, child := range childSlots(n) {
		reprTo(b, *child, depth+1)
	}
}

// precedence returns the binding level of the operator a node represents.
// Atoms are level 1 and postfix repetitions level 2; smaller binds tighter.
func precedence(n Node) int {
	switch n.Kind() {
	case KindStar, KindPlus, KindOption, KindCount:
		return 2
	case KindCompliment:
		return levelCompliment
	case KindCat:
		return levelCat
	case KindIntersect:
		return levelIntersect
	case KindReject:
		return levelReject
	case KindGreaterThan, KindLessThan:
		return levelFollow
	case KindNoFollow:
		return levelNoFollow
	case KindOr:
		return levelAlternation
	}
	return 1
}

// String renders a tree back into rule surface syntax. Children are wrapped
// in a non-capturing group whenever their operator binds weaker than the
// parent's, or binds equally on the parent's non-associative side, so the
// output parses back to the same tree.
func String(n Node) string {
	var b strings.Builder
	printTo(&b, n)
	return b.String()
}

// printChild renders one child. braceTie marks the parent's non-associative
// side: alternation splits at the leftmost operator (so an equal-level left
// child needs a group), every other binary splits at the rightmost (so the
// equal-level right child does).
func printChild(b *strings.Builder, child Node, parentLevel int, braceTie bool) {
	level := precedence(child)
	if level > parentLevel || (braceTie && level == parentLevel) {
		b.WriteString("{")
		printTo(b, child)
		b.WriteString("}")
		return
	}
	printTo(b, child)
}

func printTo(b *strings.Builder, n Node) {
	level := precedence(n)
	switch v := n.(type) {
	case *EpsNode:
		b.WriteString(`\e`)
	case *StringNode:
		b.WriteString(quoteRunes(v.Runes, '"'))
	case *CaselessNode:
		b.WriteString(quoteRunes(v.Runes, '\''))
	case *IdentifierNode:
		b.WriteString("#")
		b.WriteString(string(v.Name))
	case *CharsetNode:
		if v.Set.Equal(charset.Universe()) {
			b.WriteString(`\U`)
			return
		}
		b.WriteString(v.Set.String())
	case *StarNode:
		printChild(b, v.Inner, level, false)
		b.WriteString("*")
	case *PlusNode:
		printChild(b, v.Inner, level, false)
		b.WriteString("+")
	case *OptionNode:
		printChild(b, v.Inner, level, false)
		b.WriteString("?")
	case *CountNode:
		printChild(b, v.Inner, level, false)
		// The space keeps the digits from lexing into a preceding
		// identifier, \U escape, or count.
		fmt.Fprintf(b, " %v", v.Count)
	case *CaptureNode:
		b.WriteString("(")
		printTo(b, v.Inner)
		b.WriteString(")")
	case *ComplimentNode:
		b.WriteString("~")
		printChild(b, v.Inner, level, false)
	case *CatNode:
		for i, child := range v.Seq {
			if i > 0 {
				b.WriteString(" ")
			}
			printChild(b, child, level, true)
		}
	case *OrNode:
		printChild(b, v.Left, level, true)
		b.WriteString(" | ")
		printChild(b, v.Right, level, false)
	case *GreaterThanNode:
		printChild(b, v.Left, level, false)
		b.WriteString(" > ")
		printChild(b, v.Right, level, true)
	case *LessThanNode:
		printChild(b, v.Left, level, false)
		b.WriteString(" < ")
		printChild(b, v.Right, level, true)
	case *RejectNode:
		printChild(b, v.Left, level, false)
		b.WriteString(" - ")
		printChild(b, v.Right, level, true)
	case *NoFollowNode:
		printChild(b, v.Left, level, false)
		b.WriteString(" / ")
		printChild(b, v.Right, level, true)
	case *IntersectNode:
		printChild(b, v.Left, level, false)
		b.WriteString(" & ")
		printChild(b, v.Right, level, true)
	}
}

func quoteRunes(rs []rune, quote rune) string {
	var b strings.Builder
	b.WriteRune(quote)
	for _, c := range rs {
		switch c {
		case quote:
			b.WriteString(`\`)
			b.WriteRune(quote)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteRune(quote)
	return b.String()
}
