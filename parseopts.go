package arith

import "strconv"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	swapopt  struct{}
	depthopt int
)

// parsectx holds the configuration of one parse.
type parsectx struct {
	// swap indicates that addition and multiplication tiers store the newly
	// parsed operand in Left and the accumulated expression in Right.
	swap bool
	// maxdepth is the recursion limit, or 0 for none.
	maxdepth int
}

// DefaultMaxDepth is the recursion limit of a parser created without a
// MaxDepth option.
const DefaultMaxDepth = 10000

// SwapOperands makes the parser build addition, subtraction, multiplication,
// and division nodes with the right-hand operand in Left and the left-hand
// operand in Right. Evaluation always computes Left op Right, so with this
// option "5 - 3" evaluates to -2 and "8 / 4" to 0.5. Exponentiation is not
// affected.
//
// This reproduces the operand layout of the reference calculator this
// package's grammar comes from, and so its observable results: there,
// "5 - 3" is -2. Use this option when comparing outputs against it. The
// default is source order.
func SwapOperands() ParseOption {
	return swapopt{}
}

func (swapopt) parseOption(p parsectx) parsectx {
	p.swap = true
	return p
}

// MaxDepth limits how deeply the parser recurses, counting each nested
// subexpression, each unary minus, and each exponentiation. Exceeding the
// limit produces a *DepthError. The default is DefaultMaxDepth.
//
// A limit of zero removes the limit entirely. That is unsafe for untrusted
// input: deeply nested input then exhausts the goroutine stack, which is a
// fatal error rather than a panic. Panics if n is negative.
func MaxDepth(n int) ParseOption {
	if n < 0 {
		panic("arith: negative max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}
