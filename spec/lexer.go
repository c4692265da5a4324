package spec

import (
	"unicode"

	"github.com/dewy-lang/dewy/charset"
	"github.com/dewy-lang/dewy/ustring"
)

type TokenKind string

const (
	TokenKindHashtag    TokenKind = "hashtag"
	TokenKindEpsilon    TokenKind = "epsilon"
	TokenKindString     TokenKind = "string"
	TokenKindCaseless   TokenKind = "caseless"
	TokenKindCharset    TokenKind = "charset"
	TokenKindHex        TokenKind = "hex"
	TokenKindAnyset     TokenKind = "anyset"
	TokenKindStar       TokenKind = "star"
	TokenKindPlus       TokenKind = "plus"
	TokenKindQuestion   TokenKind = "question"
	TokenKindTilde      TokenKind = "tilde"
	TokenKindPipe       TokenKind = "pipe"
	TokenKindGT         TokenKind = "gt"
	TokenKindLT         TokenKind = "lt"
	TokenKindMinus      TokenKind = "minus"
	TokenKindSlash      TokenKind = "slash"
	TokenKindAmpersand  TokenKind = "ampersand"
	TokenKindLParen     TokenKind = "lparen"
	TokenKindRParen     TokenKind = "rparen"
	TokenKindLBrace     TokenKind = "lbrace"
	TokenKindRBrace     TokenKind = "rbrace"
	TokenKindInt        TokenKind = "integer"
	TokenKindWhitespace TokenKind = "whitespace"
)

// Token is one meta-token. Offset is the codepoint offset of the token's
// first character in the rule source.
type Token struct {
	Kind   TokenKind
	Offset int
	Text   []rune
	Num    uint64
	Set    *charset.Set
}

type lexer struct {
	src []rune
	pos int
}

// Tokenize converts a rule source into meta-tokens. Whitespace runs are kept
// as single tokens; StripWhitespace removes them for parsing.
func Tokenize(src []byte) ([]*Token, error) {
	l := &lexer{
		src: ustring.Decode(src),
	}
	var toks []*Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func StripWhitespace(toks []*Token) []*Token {
	kept := make([]*Token, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind == TokenKindWhitespace {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) eat() rune {
	c := l.peek()
	l.pos++
	return c
}

func (l *lexer) raise(cause error, offset int, detail string) (*Token, error) {
	return nil, &SyntaxError{
		Cause:  cause,
		Offset: offset,
		Detail: detail,
	}
}

var operatorKinds = map[rune]TokenKind{
	'*': TokenKindStar,
	'+': TokenKindPlus,
	'?': TokenKindQuestion,
	'~': TokenKindTilde,
	'|': TokenKindPipe,
	'>': TokenKindGT,
	'<': TokenKindLT,
	'-': TokenKindMinus,
	'/': TokenKindSlash,
	'&': TokenKindAmpersand,
	'(': TokenKindLParen,
	')': TokenKindRParen,
	'{': TokenKindLBrace,
	'}': TokenKindRBrace,
}

func (l *lexer) next() (*Token, error) {
	if l.eof() {
		return nil, nil
	}
	start := l.pos
	c := l.eat()
	switch {
	case unicode.IsSpace(c):
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.eat()
		}
		return &Token{Kind: TokenKindWhitespace, Offset: start}, nil
	case c == '#':
		if !isIdentStart(l.peek()) {
			return l.raise(synErrIdentInvalidForm, start, "")
		}
		return l.lexIdentifier(start), nil
	case isIdentStart(c):
		l.pos--
		return l.lexIdentifier(start), nil
	case c >= '0' && c <= '9':
		l.pos--
		return l.lexInt(start)
	case c == '"':
		return l.lexString(start, '"', TokenKindString)
	case c == '\'':
		return l.lexString(start, '\'', TokenKindCaseless)
	case c == '[':
		return l.lexBracketExpr(start)
	case c == '\\':
		return l.lexEscape(start)
	}
	if kind, ok := operatorKinds[c]; ok {
		return &Token{Kind: kind, Offset: start}, nil
	}
	return l.raise(synErrUnknownChar, start, ustring.CharStr(c))
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *lexer) lexIdentifier(start int) *Token {
	var name []rune
	for !l.eof() && isIdentChar(l.peek()) {
		name = append(name, l.eat())
	}
	return &Token{Kind: TokenKindHashtag, Offset: start, Text: name}
}

func (l *lexer) lexInt(start int) (*Token, error) {
	var digits []rune
	for !l.eof() && l.peek() >= '0' && l.peek() <= '9' {
		digits = append(digits, l.eat())
	}
	n, err := ustring.ParseDec(digits)
	if err != nil {
		return l.raise(synErrUnknownChar, start, err.Error())
	}
	return &Token{Kind: TokenKindInt, Offset: start, Num: n}, nil
}

func (l *lexer) lexString(start int, quote rune, kind TokenKind) (*Token, error) {
	var body []rune
	for {
		if l.eof() {
			return l.raise(synErrStringUnclosed, start, "")
		}
		c := l.eat()
		if c == quote {
			return &Token{Kind: kind, Offset: start, Text: body}, nil
		}
		if c != '\\' {
			body = append(body, c)
			continue
		}
		if l.eof() {
			return l.raise(synErrIncompletedEscSeq, start, "")
		}
		e := l.eat()
		if isHexEscapeLeader(e) {
			cp, err := l.lexHexDigits(start, e)
			if err != nil {
				return nil, err
			}
			body = append(body, cp)
			continue
		}
		body = append(body, ustring.EscapeToRune(e))
	}
}

// lexBracketExpr reads the body of a bracket expression into a normalized
// set. Whitespace between elements is insignificant.
func (l *lexer) lexBracketExpr(start int) (*Token, error) {
	set := charset.New()
	for {
		if l.eof() {
			return l.raise(synErrBExpUnclosed, start, "")
		}
		if unicode.IsSpace(l.peek()) {
			l.eat()
			continue
		}
		if l.peek() == ']' {
			l.eat()
			return &Token{Kind: TokenKindCharset, Offset: start, Set: set}, nil
		}
		lo, err := l.lexBracketChar(start)
		if err != nil {
			return nil, err
		}
		hi := lo
		// A - directly before ] is a literal member, not a range.
		if l.peek() == '-' && l.pos+1 < len(l.src) && l.src[l.pos+1] != ']' {
			l.eat()
			if l.eof() {
				return l.raise(synErrBExpUnclosed, start, "")
			}
			hi, err = l.lexBracketChar(start)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return l.raise(synErrBExpInvalidRange, start, "")
			}
		}
		set.Add(lo, hi)
	}
}

func (l *lexer) lexBracketChar(start int) (rune, error) {
	c := l.eat()
	if c != '\\' {
		return c, nil
	}
	if l.eof() {
		_, err := l.raise(synErrIncompletedEscSeq, start, "")
		return 0, err
	}
	e := l.eat()
	if isHexEscapeLeader(e) {
		return l.lexHexDigits(start, e)
	}
	return ustring.EscapeToRune(e), nil
}

func isHexEscapeLeader(c rune) bool {
	return c == 'x' || c == 'X' || c == 'u' || c == 'U'
}

func hexEscapeMaxDigits(leader rune) int {
	switch leader {
	case 'x':
		return 2
	case 'X', 'u':
		return 4
	default:
		return 8
	}
}

func (l *lexer) lexHexDigits(start int, leader rune) (rune, error) {
	var digits []rune
	for len(digits) < hexEscapeMaxDigits(leader) && !l.eof() && ustring.DigitValue(l.peek(), 16) >= 0 {
		digits = append(digits, l.eat())
	}
	if len(digits) == 0 {
		_, err := l.raise(synErrInvalidHexDigits, start, string(leader))
		return 0, err
	}
	n, err := ustring.ParseHex(digits)
	if err != nil {
		_, rerr := l.raise(synErrInvalidHexDigits, start, err.Error())
		return 0, rerr
	}
	if n > uint64(charset.MaxChar) {
		_, err := l.raise(synErrCPOutOfRange, start, "")
		return 0, err
	}
	return rune(n), nil
}

// lexEscape handles backslash escapes outside strings and bracket
// expressions: \e is epsilon, \x \X \u follow a hex codepoint, and \U is
// the anyset when no hex digits follow it.
func (l *lexer) lexEscape(start int) (*Token, error) {
	if l.eof() {
		return l.raise(synErrIncompletedEscSeq, start, "")
	}
	e := l.eat()
	switch {
	case e == 'e':
		return &Token{Kind: TokenKindEpsilon, Offset: start}, nil
	case e == 'U' && (l.eof() || ustring.DigitValue(l.peek(), 16) < 0):
		return &Token{Kind: TokenKindAnyset, Offset: start}, nil
	case isHexEscapeLeader(e):
		cp, err := l.lexHexDigits(start, e)
		if err != nil {
			return nil, err
		}
		return &Token{Kind: TokenKindHex, Offset: start, Num: uint64(cp)}, nil
	}
	return l.raise(synErrInvalidEscSeq, start, ustring.CharStr(e))
}
