package arith

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a numeric function callable from expressions.
type Func interface {
	// Call evaluates the function. args holds the evaluated arguments in
	// order; there is always at least one. Functions read their arguments
	// with args.At, which reports an *ArgCountError for a missing argument,
	// and ignore arguments they do not use.
	Call(args Args) (float64, error)
}

// Args is the list of evaluated arguments to a function call.
type Args []float64

// At returns the i'th argument, counting from 0. If there is no such
// argument, the error is an *ArgCountError.
func (a Args) At(i int) (float64, error) {
	if i < 0 || i >= len(a) {
		return 0, &ArgCountError{Index: i, Len: len(a)}
	}
	return a[i], nil
}

type funcof func(Args) (float64, error)

func (f funcof) Call(args Args) (float64, error) {
	return f(args)
}

// FuncOf wraps an ordinary function into a Func.
func FuncOf(f func(args Args) (float64, error)) Func {
	return funcof(f)
}

type monadic func(float64) float64

func (f monadic) Call(args Args) (float64, error) {
	x, err := args.At(0)
	if err != nil {
		return 0, err
	}
	return f(x), nil
}

// Monadic wraps a function of one variable into a Func.
func Monadic(f func(x float64) float64) Func {
	return monadic(f)
}

type dyadic func(float64, float64) float64

func (f dyadic) Call(args Args) (float64, error) {
	x, err := args.At(0)
	if err != nil {
		return 0, err
	}
	y, err := args.At(1)
	if err != nil {
		return 0, err
	}
	return f(x, y), nil
}

// Dyadic wraps a function of two variables into a Func.
func Dyadic(f func(x, y float64) float64) Func {
	return dyadic(f)
}

var globalfuncs = map[string]Func{
	"root": Dyadic(Root),
	"sin":  Monadic(math.Sin),
	"cos":  Monadic(math.Cos),
	"tan":  Monadic(math.Tan),
	"asin": Monadic(math.Asin),
	"acos": Monadic(math.Acos),
	"atan": Monadic(math.Atan),
	"sqrt": Monadic(math.Sqrt),
	"ln":   Monadic(math.Log),
	"log":  FuncOf(logfn),
	"abs":  Monadic(math.Abs),
}

// DefaultFuncs returns a new map holding the default function table:
// root, sin, cos, tan, asin, acos, atan, sqrt, ln, log, and abs.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

// logfn is base-10 log with one argument and log base args[1] with two.
func logfn(args Args) (float64, error) {
	x, err := args.At(0)
	if err != nil {
		return 0, err
	}
	if len(args) == 1 {
		return Log(x, 10), nil
	}
	b, err := args.At(1)
	if err != nil {
		return 0, err
	}
	return Log(x, b), nil
}

// extprec is the precision in bits of intermediate results in Root and Log.
const extprec = 128

// Root computes the n'th root of x, i.e. x^(1/n). When the result is a
// finite, normal float64 and x is positive, it is computed at extended
// precision and rounded once, so exact roots like Root(8, 3) are exact.
func Root(x, n float64) float64 {
	approx := math.Pow(x, 1/n)
	if !(x > 0) || n == 0 || math.IsInf(x, 0) || math.IsInf(n, 0) {
		return approx
	}
	return refine(approx, func(z *big.Float) *big.Float {
		bx := new(big.Float).SetPrec(extprec).SetFloat64(x)
		e := new(big.Float).SetPrec(extprec).SetFloat64(n)
		e.Quo(new(big.Float).SetPrec(extprec).SetInt64(1), e)
		return bigfloat.Pow(z, bx, e)
	})
}

// Log computes the logarithm of x in base b, i.e. ln(x)/ln(b). Like Root,
// results inside the real domain are computed at extended precision, so
// Log(1000, 10) is exactly 3.
func Log(x, b float64) float64 {
	approx := math.Log(x) / math.Log(b)
	if b == 10 {
		approx = math.Log10(x)
	}
	if !(x > 0) || !(b > 0) || b == 1 || math.IsInf(x, 0) || math.IsInf(b, 0) {
		return approx
	}
	return refine(approx, func(z *big.Float) *big.Float {
		bx := new(big.Float).SetPrec(extprec).SetFloat64(x)
		bb := new(big.Float).SetPrec(extprec).SetFloat64(b)
		bigfloat.Log(z, bx)
		lb := bigfloat.Log(new(big.Float).SetPrec(extprec), bb)
		return z.Quo(z, lb)
	})
}

// refine recomputes approx with f at extended precision. f must set z to its
// result. If approx is zero, subnormal, infinite, or NaN, or if f panics with
// big.ErrNaN, the result is approx.
func refine(approx float64, f func(z *big.Float) *big.Float) (r float64) {
	if approx == 0 || math.IsNaN(approx) || math.IsInf(approx, 0) || math.Abs(approx) < 0x1p-1022 {
		return approx
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if _, ok := p.(big.ErrNaN); !ok {
			panic(p)
		}
		r = approx
	}()
	z := new(big.Float).SetPrec(extprec)
	f(z)
	v, _ := z.Float64()
	if math.IsInf(v, 0) || v == 0 {
		return approx
	}
	return v
}

// FuncError indicates a call to a function that is not in the evaluator's
// function table.
type FuncError struct {
	// Name is the name of the function.
	Name string
}

func (err *FuncError) Error() string {
	return "unknown function " + strconv.Quote(err.Name)
}

func (err *FuncError) Unwrap() error {
	return ErrUnknownFunction
}

// ArgCountError indicates that a function read an argument past the end of
// its argument list.
type ArgCountError struct {
	// Func is the name of the called function. It is empty if the error did
	// not pass through an Evaluator.
	Func string
	// Index is the 0-based index of the missing argument.
	Index int
	// Len is the number of arguments passed.
	Len int
}

func (err *ArgCountError) Error() string {
	s := "no argument " + strconv.Itoa(err.Index+1) + " (called with " + strconv.Itoa(err.Len) + ")"
	if err.Func != "" {
		s = err.Func + ": " + s
	}
	return s
}

func (err *ArgCountError) Unwrap() error {
	return ErrArgumentCount
}
