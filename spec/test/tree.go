package test

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/dewy-lang/dewy/spec"
)

// The tree notation names every node kind by its tag (identifiers as id) and
// nests children in parentheses:
//
//	or(string("foo"), cat(charset("[a-z]"), star(id("digit"))))
//
// Counted repetition takes the count first: count(3, string("ab")).

type treeEntry struct {
	Name string     `parser:"@Ident"`
	Args []*treeArg `parser:"('(' (@@ (',' @@)*)? ')')?"`
}

type treeArg struct {
	Num *uint64    `parser:"@Int"`
	Str *string    `parser:"| @String"`
	Sub *treeEntry `parser:"| @@"`
}

var treeParser = participle.MustBuild[treeEntry](
	participle.Unquote("String"),
)

// ParseTree reads the expected-tree notation into a meta-AST for structural
// comparison.
func ParseTree(src string) (spec.Node, error) {
	entry, err := treeParser.ParseString("", src)
	if err != nil {
		return nil, err
	}
	return entryToNode(entry)
}

func entryToNode(e *treeEntry) (spec.Node, error) {
	switch e.Name {
	case "eps":
		if err := wantArgs(e, 0); err != nil {
			return nil, err
		}
		return spec.NewEpsNode(), nil
	case "string":
		s, err := strArg(e)
		if err != nil {
			return nil, err
		}
		return spec.NewStringNode([]rune(s)), nil
	case "caseless":
		s, err := strArg(e)
		if err != nil {
			return nil, err
		}
		return spec.NewCaselessNode([]rune(s)), nil
	case "id":
		s, err := strArg(e)
		if err != nil {
			return nil, err
		}
		return spec.NewIdentifierNode([]rune(s)), nil
	case "charset":
		s, err := strArg(e)
		if err != nil {
			return nil, err
		}
		return parseCharset(s)
	case "star":
		inner, err := innerArg(e)
		if err != nil {
			return nil, err
		}
		return spec.NewStarNode(inner), nil
	case "plus":
		inner, err := innerArg(e)
		if err != nil {
			return nil, err
		}
		return spec.NewPlusNode(inner), nil
	case "option":
		inner, err := innerArg(e)
		if err != nil {
			return nil, err
		}
		return spec.NewOptionNode(inner), nil
	case "capture":
		inner, err := innerArg(e)
		if err != nil {
			return nil, err
		}
		return spec.NewCaptureNode(inner), nil
	case "compliment":
		inner, err := innerArg(e)
		if err != nil {
			return nil, err
		}
		return spec.NewComplimentNode(inner), nil
	case "count":
		if err := wantArgs(e, 2); err != nil {
			return nil, err
		}
		if e.Args[0].Num == nil {
			return nil, fmt.Errorf("count wants an integer first argument")
		}
		inner, err := subNode(e.Args[1])
		if err != nil {
			return nil, err
		}
		return spec.NewCountNode(*e.Args[0].Num, inner), nil
	case "cat":
		if len(e.Args) < 2 {
			return nil, fmt.Errorf("cat wants at least 2 arguments, got %v", len(e.Args))
		}
		seq := make([]spec.Node, len(e.Args))
		for i, arg := range e.Args {
			n, err := subNode(arg)
			if err != nil {
				return nil, err
			}
			seq[i] = n
		}
		return spec.NewCatNode(seq...), nil
	case "or":
		l, r, err := pairArgs(e)
		if err != nil {
			return nil, err
		}
		return spec.NewOrNode(l, r), nil
	case "greaterthan":
		l, r, err := pairArgs(e)
		if err != nil {
			return nil, err
		}
		return spec.NewGreaterThanNode(l, r), nil
	case "lessthan":
		l, r, err := pairArgs(e)
		if err != nil {
			return nil, err
		}
		return spec.NewLessThanNode(l, r), nil
	case "reject":
		l, r, err := pairArgs(e)
		if err != nil {
			return nil, err
		}
		return spec.NewRejectNode(l, r), nil
	case "nofollow":
		l, r, err := pairArgs(e)
		if err != nil {
			return nil, err
		}
		return spec.NewNoFollowNode(l, r), nil
	case "intersect":
		l, r, err := pairArgs(e)
		if err != nil {
			return nil, err
		}
		return spec.NewIntersectNode(l, r), nil
	}
	return nil, fmt.Errorf("unknown tree node %v", e.Name)
}

// parseCharset reads a bracket expression, a hex escape, or \U through the
// rule tokenizer and yields the charset node it denotes.
func parseCharset(src string) (spec.Node, error) {
	node, err := spec.ParseSource([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("charset argument %q: %w", src, err)
	}
	cs, ok := node.(*spec.CharsetNode)
	if !ok {
		return nil, fmt.Errorf("charset argument %q does not denote a set", src)
	}
	return cs, nil
}

func wantArgs(e *treeEntry, n int) error {
	if len(e.Args) != n {
		return fmt.Errorf("%v wants %v arguments, got %v", e.Name, n, len(e.Args))
	}
	return nil
}

func strArg(e *treeEntry) (string, error) {
	if err := wantArgs(e, 1); err != nil {
		return "", err
	}
	if e.Args[0].Str == nil {
		return "", fmt.Errorf("%v wants a string argument", e.Name)
	}
	return *e.Args[0].Str, nil
}

func innerArg(e *treeEntry) (spec.Node, error) {
	if err := wantArgs(e, 1); err != nil {
		return nil, err
	}
	return subNode(e.Args[0])
}

func pairArgs(e *treeEntry) (spec.Node, spec.Node, error) {
	if err := wantArgs(e, 2); err != nil {
		return nil, nil, err
	}
	l, err := subNode(e.Args[0])
	if err != nil {
		return nil, nil, err
	}
	r, err := subNode(e.Args[1])
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func subNode(a *treeArg) (spec.Node, error) {
	if a.Sub == nil {
		return nil, fmt.Errorf("expected a tree node argument")
	}
	return entryToNode(a.Sub)
}
