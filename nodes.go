package arith

import (
	"strconv"
	"strings"
)

// Node is a node in the syntax tree of an expression. The variants are
// *Number, *Binary, *Unary, *FunctionCall, *Variable, and *Assignment.
// Each node owns its children; nodes are not modified after parsing.
type Node interface {
	// String formats the subtree with every term bracketed, alternating
	// round and square brackets by depth.
	String() string

	fmt(b *strings.Builder, square bool)
}

type (
	// Number is a numeric literal, and the result of reducing any
	// expression.
	Number struct {
		Value float64
	}

	// Binary is an arithmetic operation on two operands. Op is one of
	// TokenPlus, TokenMinus, TokenAsterisk, TokenSlash, or TokenCaret.
	Binary struct {
		Left  Node
		Right Node
		Op    Token
	}

	// Unary is negation. Op is TokenMinus.
	Unary struct {
		Operand Node
		Op      Token
	}

	// FunctionCall calls a function from the evaluator's table.
	FunctionCall struct {
		Name string
		Args []Node
	}

	// Variable is a bare identifier.
	Variable struct {
		Name string
	}

	// Assignment binds a name to a value. The binding is not retained.
	Assignment struct {
		Name  string
		Value Node
	}
)

var (
	_ Node = (*Number)(nil)
	_ Node = (*Binary)(nil)
	_ Node = (*Unary)(nil)
	_ Node = (*FunctionCall)(nil)
	_ Node = (*Variable)(nil)
	_ Node = (*Assignment)(nil)
)

func (n *Number) String() string       { return format(n) }
func (n *Binary) String() string       { return format(n) }
func (n *Unary) String() string        { return format(n) }
func (n *FunctionCall) String() string { return format(n) }
func (n *Variable) String() string     { return format(n) }
func (n *Assignment) String() string   { return format(n) }

func format(n Node) string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func brackets(square bool) (byte, byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}

func (n *Number) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	b.WriteByte(r)
}

func (n *Binary) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	fmtchild(b, n.Left, !square)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	fmtchild(b, n.Right, !square)
	b.WriteByte(r)
}

func (n *Unary) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Op.String())
	fmtchild(b, n.Operand, !square)
	b.WriteByte(r)
}

func (n *FunctionCall) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Name)
	// Argument lists use the opposite bracket of the call.
	al, ar := brackets(!square)
	b.WriteByte(al)
	for i, arg := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmtchild(b, arg, square)
	}
	b.WriteByte(ar)
	b.WriteByte(r)
}

func (n *Variable) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Name)
	b.WriteByte(r)
}

func (n *Assignment) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Name)
	b.WriteString(" = ")
	fmtchild(b, n.Value, !square)
	b.WriteByte(r)
}

// fmtchild formats a child node, marking missing children with invalid
// characters.
func fmtchild(b *strings.Builder, n Node, square bool) {
	if n == nil {
		b.WriteString("$#$")
		return
	}
	n.fmt(b, square)
}
