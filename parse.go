package arith

import (
	"errors"
	"io"
	"strings"
)

// Expression = Assignment
// Assignment = Addition [ '=' Addition ]
// Addition = Multiplication { ('+' | '-') Multiplication }
// Multiplication = Unary { ('*' | '/') Unary }
// Unary = '-' Unary | Exponentiation
// Exponentiation = Primary [ '^' Exponentiation ]
// Primary = num | name | name '(' Expression { ',' Expression } ')' | '(' Expression ')' | '|' Expression '|'

// TokenSource is a sequence of tokens. Next returns io.EOF after the last
// token. *Lexer is a TokenSource.
type TokenSource interface {
	Next() (Token, error)
}

// Parser builds a syntax tree from a token sequence, holding one token of
// lookahead.
type Parser struct {
	src TokenSource
	// tok is the lookahead token. It is meaningful only if ok is true.
	tok Token
	// ok is false once src is exhausted.
	ok    bool
	p     parsectx
	depth int
}

// NewParser creates a parser reading tokens from src. The given options are
// applied in order.
func NewParser(src TokenSource, opts ...ParseOption) *Parser {
	p := parsectx{maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &Parser{src: src, p: p}
}

// Parse parses one complete expression, which must extend to the end of the
// token sequence. A Parser consumes its tokens, so Parse should be called
// only once.
func (p *Parser) Parse() (Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.ok {
		return nil, p.unexpected(WantEnd)
	}
	return n, nil
}

// Parse parses an expression from src.
func Parse(src io.RuneScanner, opts ...ParseOption) (Node, error) {
	return NewParser(NewLexer(src), opts...).Parse()
}

// ParseString parses an expression from a string.
func ParseString(src string, opts ...ParseOption) (Node, error) {
	return Parse(strings.NewReader(src), opts...)
}

// advance replaces the lookahead token with the next one from the source.
func (p *Parser) advance() error {
	tok, err := p.src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			p.tok, p.ok = Token{}, false
			return nil
		}
		return err
	}
	p.tok, p.ok = tok, true
	return nil
}

// at reports whether the lookahead token has kind k.
func (p *Parser) at(k TokenKind) bool {
	return p.ok && p.tok.Kind == k
}

func (p *Parser) unexpected(want Expectation) error {
	return &TokenError{Want: want, Found: p.tok, EOF: !p.ok}
}

// descend records one more level of recursion. Callers must defer ascend
// when descend succeeds.
func (p *Parser) descend() error {
	if p.p.maxdepth > 0 && p.depth >= p.p.maxdepth {
		return &DepthError{Limit: p.p.maxdepth}
	}
	p.depth++
	return nil
}

func (p *Parser) ascend() {
	p.depth--
}

func (p *Parser) expression() (Node, error) {
	if err := p.descend(); err != nil {
		return nil, err
	}
	defer p.ascend()
	return p.assignment()
}

func (p *Parser) assignment() (Node, error) {
	n, err := p.addition()
	if err != nil {
		return nil, err
	}
	if !p.at(TokenEqual) {
		return n, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.addition()
	if err != nil {
		return nil, err
	}
	v, ok := n.(*Variable)
	if !ok {
		return nil, &TokenError{Want: WantAssignable, Found: Punct(TokenEqual)}
	}
	return &Assignment{Name: v.Name, Value: value}, nil
}

func (p *Parser) addition() (Node, error) {
	n, err := p.multiplication()
	if err != nil {
		return nil, err
	}
	for p.at(TokenPlus) || p.at(TokenMinus) {
		op := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.multiplication()
		if err != nil {
			return nil, err
		}
		n = p.binary(op, n, rhs)
	}
	return n, nil
}

func (p *Parser) multiplication() (Node, error) {
	n, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.at(TokenAsterisk) || p.at(TokenSlash) {
		op := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		n = p.binary(op, n, rhs)
	}
	return n, nil
}

// binary builds a node for a left-associative operator, where acc is
// everything parsed so far on this tier.
func (p *Parser) binary(op Token, acc, rhs Node) Node {
	if p.p.swap {
		return &Binary{Left: rhs, Right: acc, Op: op}
	}
	return &Binary{Left: acc, Right: rhs, Op: op}
}

func (p *Parser) unary() (Node, error) {
	if !p.at(TokenMinus) {
		return p.exponentiation()
	}
	op := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.descend(); err != nil {
		return nil, err
	}
	defer p.ascend()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Unary{Operand: operand, Op: op}, nil
}

func (p *Parser) exponentiation() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.at(TokenCaret) {
		return base, nil
	}
	op := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.descend(); err != nil {
		return nil, err
	}
	defer p.ascend()
	// Recursing here rather than looping makes ^ right-associative.
	exp, err := p.exponentiation()
	if err != nil {
		return nil, err
	}
	return &Binary{Left: base, Right: exp, Op: op}, nil
}

func (p *Parser) primary() (Node, error) {
	if !p.ok {
		return nil, p.unexpected(WantPrimary)
	}
	switch tok := p.tok; tok.Kind {
	case TokenNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Number{Value: tok.Num}, nil
	case TokenIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.at(TokenOpenParen) {
			return &Variable{Name: tok.Ident}, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.call(tok.Ident)
	case TokenOpenParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !p.at(TokenCloseParen) {
			return nil, p.unexpected(WantCloseParen)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	case TokenPipe:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !p.at(TokenPipe) {
			return nil, p.unexpected(WantClosePipe)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &FunctionCall{Name: "abs", Args: []Node{n}}, nil
	default:
		return nil, p.unexpected(WantPrimary)
	}
}

// call parses the argument list of a function call after its open
// parenthesis. There is always at least one argument.
func (p *Parser) call(name string) (Node, error) {
	arg, err := p.expression()
	if err != nil {
		return nil, err
	}
	args := []Node{arg}
	for !p.at(TokenCloseParen) {
		if !p.at(TokenComma) {
			return nil, p.unexpected(WantComma)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &FunctionCall{Name: name, Args: args}, nil
}
