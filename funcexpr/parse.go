package funcexpr

import (
	"fmt"
	"strings"
)

// PortLookup resolves a port name to a Port during function-string parsing.
// *liberty.Cell implements this over its already-built port set (parsing is
// deferred until the cell's ports are complete, once parseCellFuncs runs).
type PortLookup interface {
	FindPort(name string) Port
}

// Parse parses a Liberty function-string expression such as "A*B", "!A",
// "(A+B)'", "A^B" against the given port set, following the classic Liberty
// precedence: postfix/prefix NOT binds tightest, then AND, then XOR, then
// OR, with parentheses overriding.
func Parse(expr string, ports PortLookup) (*Expr, error) {
	p := &funcParser{toks: tokenizeFunc(expr), ports: ports}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("funcexpr: unexpected token %q at position %d in %q", p.toks[p.pos], p.pos, expr)
	}
	return e, nil
}

type funcTok struct {
	kind string // "ident", "op", "lparen", "rparen"
	text string
}

func tokenizeFunc(s string) []funcTok {
	var toks []funcTok
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, funcTok{"lparen", "("})
			i++
		case c == ')':
			toks = append(toks, funcTok{"rparen", ")"})
			i++
		case c == '\'' || c == '!' || c == '*' || c == '&' || c == '+' || c == '|' || c == '^':
			toks = append(toks, funcTok{"op", string(c)})
			i++
		case c == '0' || c == '1':
			toks = append(toks, funcTok{"ident", string(c)})
			i++
		default:
			start := i
			for i < len(s) && !strings.ContainsRune(" \t()'!*&+|^", rune(s[i])) {
				i++
			}
			toks = append(toks, funcTok{"ident", s[start:i]})
		}
	}
	return toks
}

type funcParser struct {
	toks  []funcTok
	pos   int
	ports PortLookup
}

func (p *funcParser) peek() (funcTok, bool) {
	if p.pos >= len(p.toks) {
		return funcTok{}, false
	}
	return p.toks[p.pos], true
}

func (p *funcParser) next() (funcTok, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// parseOr handles '+' and '|' (lowest precedence, left-associative).
func (p *funcParser) parseOr() (*Expr, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != "op" || (t.text != "+" && t.text != "|") {
			return left, nil
		}
		p.pos++
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = MakeOr(left, right)
	}
}

// parseXor handles '^'.
func (p *funcParser) parseXor() (*Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != "op" || t.text != "^" {
			return left, nil
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = MakeXor(left, right)
	}
}

// parseAnd handles '*', '&', and implicit juxtaposition (two atoms with no
// operator between them also means AND in Liberty function strings).
func (p *funcParser) parseAnd() (*Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok {
			return left, nil
		}
		if t.kind == "op" && (t.text == "*" || t.text == "&") {
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MakeAnd(left, right)
			continue
		}
		if t.kind == "ident" || t.kind == "lparen" || (t.kind == "op" && t.text == "!") {
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MakeAnd(left, right)
			continue
		}
		return left, nil
	}
}

// parseUnary handles prefix '!' and postfix "'", then an atom.
func (p *funcParser) parseUnary() (*Expr, error) {
	if t, ok := p.peek(); ok && t.kind == "op" && t.text == "!" {
		p.pos++
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MakeNot(e), nil
	}
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != "op" || t.text != "'" {
			return e, nil
		}
		p.pos++
		e = MakeNot(e)
	}
}

func (p *funcParser) parseAtom() (*Expr, error) {
	t, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("funcexpr: unexpected end of expression")
	}
	switch t.kind {
	case "lparen":
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.next()
		if !ok || closing.kind != "rparen" {
			return nil, fmt.Errorf("funcexpr: expected closing parenthesis")
		}
		return e, nil
	case "ident":
		if t.text == "0" {
			return MakeZero(), nil
		}
		if t.text == "1" {
			return MakeOne(), nil
		}
		port := p.ports.FindPort(t.text)
		if port == nil {
			return nil, fmt.Errorf("funcexpr: unknown port %q", t.text)
		}
		return MakePort(port), nil
	default:
		return nil, fmt.Errorf("funcexpr: unexpected token %q", t.text)
	}
}
