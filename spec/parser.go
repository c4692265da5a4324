package spec

import (
	"fmt"

	"github.com/dewy-lang/dewy/charset"
)

// Binary operator precedence levels, weakest binding last. Atoms are level 1
// and postfix repetition level 2; those never appear in the table because the
// parser handles them inside a single unit.
const (
	levelCompliment  = 3
	levelCat         = 4
	levelIntersect   = 5
	levelReject      = 6
	levelFollow      = 7
	levelNoFollow    = 8
	levelAlternation = 9
)

var binaryOpLevels = map[TokenKind]int{
	TokenKindAmpersand: levelIntersect,
	TokenKindMinus:     levelReject,
	TokenKindGT:        levelFollow,
	TokenKindLT:        levelFollow,
	TokenKindSlash:     levelNoFollow,
	TokenKindPipe:      levelAlternation,
}

type parser struct {
	toks []*Token

	errCause  error
	errOffset int
	errDetail string
}

// Parse builds a meta-AST from a token sequence. The parser views the tokens
// as a random-access window: each call finds the weakest top-level operator,
// splits the window there, and recurses on the strictly shorter halves.
func Parse(toks []*Token) (root Node, retErr error) {
	p := &parser{
		toks: StripWhitespace(toks),
	}
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		if err != ParseErr {
			panic(err)
		}
		root = nil
		retErr = &SyntaxError{
			Cause:  p.errCause,
			Offset: p.errOffset,
			Detail: p.errDetail,
		}
	}()

	if len(p.toks) == 0 {
		p.raise(synErrNullExpr, 0, "")
	}
	return p.parseExpr(0, len(p.toks)), nil
}

// ParseSource tokenizes and parses a rule source in one step.
func ParseSource(src []byte) (Node, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

func (p *parser) raise(cause error, offset int, detail string) {
	p.errCause = cause
	p.errOffset = offset
	p.errDetail = detail
	panic(ParseErr)
}

func (p *parser) offsetAt(i int) int {
	if i < len(p.toks) {
		return p.toks[i].Offset
	}
	if len(p.toks) == 0 {
		return 0
	}
	return p.toks[len(p.toks)-1].Offset
}

func (p *parser) parseExpr(lo, hi int) Node {
	if lo >= hi {
		p.raise(synErrNullExpr, p.offsetAt(lo), "")
	}

	if at, ok := p.findWeakestOp(lo, hi); ok {
		return p.parseBinaryOp(lo, at, hi)
	}

	end := p.scanToEndOfUnit(lo, hi)
	if end >= hi {
		return p.parseUnit(lo, hi)
	}

	// No top-level operator and more than one unit: implicit concatenation.
	var seq []Node
	start := lo
	for start < hi {
		stop := p.scanToEndOfUnit(start, hi)
		seq = append(seq, p.parseUnit(start, stop))
		start = stop
	}
	return NewCatNode(seq...)
}

// findWeakestOp locates the split point: the top-level binary operator with
// the weakest binding. Ties go to the rightmost occurrence, except
// alternation which splits at the leftmost.
func (p *parser) findWeakestOp(lo, hi int) (int, bool) {
	at := -1
	best := 0
	for i := lo; i < hi; i++ {
		switch p.toks[i].Kind {
		case TokenKindLParen, TokenKindLBrace:
			i = p.findMatchingPair(i, hi)
			continue
		case TokenKindRParen, TokenKindRBrace:
			p.raise(synErrGroupNoInitiator, p.toks[i].Offset, "")
		}
		level, ok := binaryOpLevels[p.toks[i].Kind]
		if !ok {
			continue
		}
		switch {
		case level > best:
			at = i
			best = level
		case level == best && p.toks[i].Kind != TokenKindPipe:
			at = i
		}
	}
	return at, at >= 0
}

func (p *parser) parseBinaryOp(lo, at, hi int) Node {
	op := p.toks[at]
	var left, right Node
	if op.Kind == TokenKindPipe {
		// An empty alternative denotes epsilon.
		left, right = NewEpsNode(), Node(NewEpsNode())
		if lo < at {
			left = p.parseExpr(lo, at)
		}
		if at+1 < hi {
			right = p.parseExpr(at+1, hi)
		}
		return NewOrNode(left, right)
	}

	if lo >= at || at+1 >= hi {
		p.raise(synErrLackOfOperand, op.Offset, string(op.Kind))
	}
	left = p.parseExpr(lo, at)
	right = p.parseExpr(at+1, hi)
	switch op.Kind {
	case TokenKindAmpersand:
		return NewIntersectNode(left, right)
	case TokenKindMinus:
		return NewRejectNode(left, right)
	case TokenKindGT:
		return NewGreaterThanNode(left, right)
	case TokenKindLT:
		return NewLessThanNode(left, right)
	case TokenKindSlash:
		return NewNoFollowNode(left, right)
	}
	p.raise(synErrUnexpectedToken, op.Offset, string(op.Kind))
	return nil
}

// scanToEndOfUnit returns the index one past the unit beginning at start: an
// optional run of complement prefixes, a base (atom or bracketed window), and
// any postfix repetition suffixes.
func (p *parser) scanToEndOfUnit(start, hi int) int {
	i := start
	for i < hi && p.toks[i].Kind == TokenKindTilde {
		i++
	}
	if i >= hi {
		p.raise(synErrLackOfOperand, p.offsetAt(start), "~")
	}
	switch p.toks[i].Kind {
	case TokenKindLParen, TokenKindLBrace:
		i = p.findMatchingPair(i, hi) + 1
	case TokenKindEpsilon, TokenKindString, TokenKindCaseless, TokenKindCharset,
		TokenKindHex, TokenKindAnyset, TokenKindHashtag:
		i++
	default:
		p.raise(synErrUnexpectedToken, p.toks[i].Offset, string(p.toks[i].Kind))
	}
	for i < hi {
		switch p.toks[i].Kind {
		case TokenKindStar, TokenKindPlus, TokenKindQuestion, TokenKindInt:
			i++
			continue
		}
		break
	}
	return i
}

func (p *parser) parseUnit(lo, hi int) Node {
	if lo >= hi {
		p.raise(synErrNullExpr, p.offsetAt(lo), "")
	}

	// The complement prefix binds weaker than postfix repetition: ~A* is
	// ~(A*).
	first := p.toks[lo]
	if first.Kind == TokenKindTilde {
		return NewComplimentNode(p.parseUnit(lo+1, hi))
	}

	last := p.toks[hi-1]
	if hi-lo > 1 {
		switch last.Kind {
		case TokenKindStar:
			return NewStarNode(p.parseUnit(lo, hi-1))
		case TokenKindPlus:
			return NewPlusNode(p.parseUnit(lo, hi-1))
		case TokenKindQuestion:
			return NewOptionNode(p.parseUnit(lo, hi-1))
		case TokenKindInt:
			if last.Num == 0 {
				p.raise(synErrZeroCount, last.Offset, "")
			}
			inner := p.parseUnit(lo, hi-1)
			if last.Num == 1 {
				return inner
			}
			return NewCountNode(last.Num, inner)
		}
	}

	switch first.Kind {
	case TokenKindLParen:
		if p.findMatchingPair(lo, hi) != hi-1 {
			p.raise(synErrUnexpectedToken, first.Offset, "")
		}
		return NewCaptureNode(p.parseExpr(lo+1, hi-1))
	case TokenKindLBrace:
		if p.findMatchingPair(lo, hi) != hi-1 {
			p.raise(synErrUnexpectedToken, first.Offset, "")
		}
		return p.parseExpr(lo+1, hi-1)
	}

	if hi-lo != 1 {
		p.raise(synErrUnexpectedToken, p.toks[lo+1].Offset, string(p.toks[lo+1].Kind))
	}
	switch first.Kind {
	case TokenKindEpsilon:
		return NewEpsNode()
	case TokenKindString:
		if len(first.Text) == 0 {
			return NewEpsNode()
		}
		return NewStringNode(first.Text)
	case TokenKindCaseless:
		if len(first.Text) == 0 {
			return NewEpsNode()
		}
		// A one-character caseless literal is already a set of its two
		// cases. ASCII only; other scripts keep the caseless wrapper.
		if len(first.Text) == 1 && isASCIILetter(first.Text[0]) {
			return NewCharsetNode(caselessSet(first.Text[0]))
		}
		return NewCaselessNode(first.Text)
	case TokenKindHashtag:
		return NewIdentifierNode(first.Text)
	case TokenKindCharset:
		return NewCharsetNode(first.Set)
	case TokenKindHex:
		return NewCharsetNode(charset.Single(rune(first.Num)))
	case TokenKindAnyset:
		return NewCharsetNode(charset.Universe())
	}
	p.raise(synErrUnexpectedToken, first.Offset, string(first.Kind))
	return nil
}

func isASCIILetter(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func caselessSet(c rune) *charset.Set {
	set := charset.Single(c)
	if c >= 'a' && c <= 'z' {
		set.Add(c-0x20, c-0x20)
	} else {
		set.Add(c+0x20, c+0x20)
	}
	return set
}

// findMatchingPair returns the index of the closer balancing the opener at
// idx, skipping nested pairs of both bracket kinds.
func (p *parser) findMatchingPair(idx, hi int) int {
	opener := p.toks[idx]
	var stack []TokenKind
	for i := idx; i < hi; i++ {
		switch p.toks[i].Kind {
		case TokenKindLParen, TokenKindLBrace:
			stack = append(stack, p.toks[i].Kind)
		case TokenKindRParen, TokenKindRBrace:
			if len(stack) == 0 {
				p.raise(synErrGroupNoInitiator, p.toks[i].Offset, "")
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !pairMatches(open, p.toks[i].Kind) {
				p.raise(synErrGroupUnclosed, p.toks[i].Offset,
					fmt.Sprintf("%v closed by %v", open, p.toks[i].Kind))
			}
			if len(stack) == 0 {
				return i
			}
		}
	}
	p.raise(synErrGroupUnclosed, opener.Offset, "")
	return -1
}

func pairMatches(open, close TokenKind) bool {
	return open == TokenKindLParen && close == TokenKindRParen ||
		open == TokenKindLBrace && close == TokenKindRBrace
}
