package pddl

import "fmt"

// Node is either an Atom (including PDDL's "-", ":keyword", and "?var"
// tokens, all lexed uniformly) or a List of child Nodes.
type Node struct {
	Atom string
	List []Node
	Line int
	Col  int
}

func (n Node) IsAtom() bool { return n.List == nil }

func (n Node) String() string {
	if n.IsAtom() {
		return n.Atom
	}
	s := "("
	for i, c := range n.List {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s + ")"
}

// Parse lexes and parses src into the top-level list of Nodes (normally a
// single `(define ...)` form).
func Parse(src string) ([]Node, error) {
	l := NewLexer(src)
	if err := l.Lex(); err != nil {
		return nil, err
	}
	var nodes []Node
	for l.PeekToken().Type != TokenEOF {
		n, err := parseNode(l)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseNode(l *Lexer) (Node, error) {
	tok := l.NextToken()
	switch tok.Type {
	case TokenAtom:
		return Node{Atom: tok.Value, Line: tok.Line, Col: tok.Col}, nil
	case TokenLeftParen:
		var children []Node
		for {
			peek := l.PeekToken()
			if peek.Type == TokenEOF {
				return Node{}, fmt.Errorf("pddl: unterminated list starting at %d:%d", tok.Line, tok.Col)
			}
			if peek.Type == TokenRightParen {
				l.NextToken()
				break
			}
			child, err := parseNode(l)
			if err != nil {
				return Node{}, err
			}
			children = append(children, child)
		}
		return Node{List: children, Line: tok.Line, Col: tok.Col}, nil
	case TokenRightParen:
		return Node{}, fmt.Errorf("pddl: unexpected ')' at %d:%d", tok.Line, tok.Col)
	default:
		return Node{}, fmt.Errorf("pddl: unexpected end of input")
	}
}

// head returns the first atom of a list node, which callers compare
// case-sensitively, or "" if n is not a non-empty list.
func head(n Node) string {
	if n.IsAtom() || len(n.List) == 0 || !n.List[0].IsAtom() {
		return ""
	}
	return n.List[0].Atom
}

// findSection returns the first child list of n whose head equals key
// (case-sensitive: PDDL keywords are conventionally lowercase).
func findSection(n Node, key string) (Node, bool) {
	for _, c := range n.List {
		if head(c) == key {
			return c, true
		}
	}
	return Node{}, false
}
