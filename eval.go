package arith

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Evaluator reduces syntax trees to numbers using a table of functions. An
// Evaluator does not change after it is created, so it is safe to use
// concurrently. It keeps no variables: assignments evaluate to their values
// without binding anything.
type Evaluator struct {
	funcs map[string]Func
	parse []ParseOption
	log   zerolog.Logger
}

// EvalOption is an option used when creating an evaluator.
type EvalOption interface {
	evalOption()
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt     map[string]Func
	nodefaultopt struct{}
	parseoptsopt []ParseOption
	loggeropt    struct {
		l zerolog.Logger
	}
)

func (funcopt) evalOption()      {}
func (funcsopt) evalOption()     {}
func (nodefaultopt) evalOption() {}
func (parseoptsopt) evalOption() {}
func (loggeropt) evalOption()    {}

// SetFunc adds a function to the evaluator's table, replacing any function
// of the same name. A nil fn removes the name from the table.
func SetFunc(name string, fn Func) EvalOption {
	return funcopt{name, fn}
}

// SetFuncs adds a group of functions, as by SetFunc for each.
func SetFuncs(fns map[string]Func) EvalOption {
	return funcsopt(fns)
}

// DisableDefaultFuncs removes all default functions that are in the table
// at the time the option is applied. Functions set by earlier options with
// other names remain.
func DisableDefaultFuncs() EvalOption {
	return nodefaultopt{}
}

// WithParseOptions sets parse options used when the evaluator parses source
// text itself, as in Parse, Calculate, and their String forms, and in the
// package-level Eval and EvalString.
func WithParseOptions(opts ...ParseOption) EvalOption {
	return parseoptsopt(opts)
}

// WithLogger sets a logger which receives debug events for each function
// call. The default logger discards everything.
func WithLogger(l zerolog.Logger) EvalOption {
	return loggeropt{l}
}

// NewEvaluator creates an evaluator with the default function table, then
// applies options in order.
func NewEvaluator(opts ...EvalOption) *Evaluator {
	e := Evaluator{
		funcs: DefaultFuncs(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case funcopt:
			e.setfunc(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				e.setfunc(k, v)
			}
		case nodefaultopt:
			for k := range globalfuncs {
				delete(e.funcs, k)
			}
		case parseoptsopt:
			e.parse = append(e.parse, opt...)
		case loggeropt:
			e.log = opt.l
		default:
			panic("arith: unknown option type " + fmt.Sprintf("%T", opt))
		}
	}
	return &e
}

func (e *Evaluator) setfunc(name string, fn Func) {
	if fn == nil {
		delete(e.funcs, name)
		return
	}
	e.funcs[name] = fn
}

// Funcs returns the names of the functions the evaluator can call, in no
// particular order.
func (e *Evaluator) Funcs() []string {
	r := make([]string, 0, len(e.funcs))
	for k := range e.funcs {
		r = append(r, k)
	}
	return r
}

// Reduce evaluates a tree. On success, the result is always a *Number.
func (e *Evaluator) Reduce(n Node) (Node, error) {
	switch n := n.(type) {
	case *Number:
		return n, nil
	case *Binary:
		return e.binary(n)
	case *Unary:
		return e.unary(n)
	case *FunctionCall:
		return e.call(n)
	case *Assignment:
		// Nothing stores the name. The assignment is its value.
		v, err := e.number(n.Value, "value assigned to "+n.Name)
		if err != nil {
			return nil, err
		}
		return &Number{Value: v}, nil
	case *Variable:
		return nil, &NameError{Name: n.Name}
	default:
		return nil, &TypeError{Context: "expression", Got: n}
	}
}

// Eval evaluates a tree to a number.
func (e *Evaluator) Eval(n Node) (float64, error) {
	return e.number(n, "expression")
}

// Parse parses an expression from src with the evaluator's parse options.
func (e *Evaluator) Parse(src io.RuneScanner) (Node, error) {
	return Parse(src, e.parse...)
}

// ParseString parses an expression in a string with the evaluator's parse
// options.
func (e *Evaluator) ParseString(src string) (Node, error) {
	return e.Parse(strings.NewReader(src))
}

// Calculate parses an expression from src and evaluates it.
func (e *Evaluator) Calculate(src io.RuneScanner) (float64, error) {
	n, err := e.Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(n)
}

// CalculateString parses and evaluates an expression in a string.
func (e *Evaluator) CalculateString(src string) (float64, error) {
	return e.Calculate(strings.NewReader(src))
}

// number reduces n and requires the result to be a number. what describes n
// for errors.
func (e *Evaluator) number(n Node, what string) (float64, error) {
	r, err := e.Reduce(n)
	if err != nil {
		return 0, err
	}
	v, ok := r.(*Number)
	if !ok || v == nil {
		return 0, &TypeError{Context: what, Got: r}
	}
	return v.Value, nil
}

func (e *Evaluator) binary(n *Binary) (Node, error) {
	l, err := e.number(n.Left, "left operand of "+n.Op.String())
	if err != nil {
		return nil, err
	}
	r, err := e.number(n.Right, "right operand of "+n.Op.String())
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case TokenPlus:
		return &Number{Value: l + r}, nil
	case TokenMinus:
		return &Number{Value: l - r}, nil
	case TokenAsterisk:
		return &Number{Value: l * r}, nil
	case TokenSlash:
		return &Number{Value: l / r}, nil
	case TokenCaret:
		return &Number{Value: math.Pow(l, r)}, nil
	default:
		return nil, &OperatorError{Op: n.Op}
	}
}

func (e *Evaluator) unary(n *Unary) (Node, error) {
	x, err := e.number(n.Operand, "operand of unary "+n.Op.String())
	if err != nil {
		return nil, err
	}
	if n.Op.Kind != TokenMinus {
		return nil, &OperatorError{Op: n.Op, Unary: true}
	}
	return &Number{Value: -x}, nil
}

func (e *Evaluator) call(n *FunctionCall) (Node, error) {
	args := make(Args, len(n.Args))
	for i, a := range n.Args {
		v, err := e.number(a, "argument "+strconv.Itoa(i+1)+" of "+n.Name)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	fn := e.funcs[n.Name]
	if fn == nil {
		return nil, &FuncError{Name: n.Name}
	}
	r, err := fn.Call(args)
	if err != nil {
		var ac *ArgCountError
		if errors.As(err, &ac) && ac.Func == "" {
			ac.Func = n.Name
		}
		e.log.Debug().Str("func", n.Name).Floats64("args", args).Err(err).Msg("call failed")
		return nil, err
	}
	e.log.Debug().Str("func", n.Name).Floats64("args", args).Float64("result", r).Msg("call")
	return &Number{Value: r}, nil
}

// Eval parses an expression from src and evaluates it with a new evaluator
// created with opts.
func Eval(src io.RuneScanner, opts ...EvalOption) (float64, error) {
	return NewEvaluator(opts...).Calculate(src)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...EvalOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}

// TypeError indicates a subexpression which should have reduced to a number
// but did not.
type TypeError struct {
	// Context describes the role of the subexpression, e.g. "argument 1 of
	// sin".
	Context string
	// Got is what the subexpression reduced to.
	Got Node
}

func (err *TypeError) Error() string {
	return "type mismatch: " + err.Context + " is " + describe(err.Got) + ", not a number"
}

func (err *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

func describe(n Node) string {
	switch n := n.(type) {
	case nil:
		return "nothing"
	case *Number:
		if n == nil {
			return "a nil number"
		}
		return "a number"
	case *Binary:
		return "a binary operation"
	case *Unary:
		return "a unary operation"
	case *FunctionCall:
		return "a call"
	case *Variable:
		return "a variable"
	case *Assignment:
		return "an assignment"
	default:
		return fmt.Sprintf("%T", n)
	}
}

// OperatorError indicates a Binary or Unary node holding an operator that
// is not valid for it.
type OperatorError struct {
	// Op is the operator token.
	Op Token
	// Unary is whether the operator was in a Unary node.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return "invalid " + s + " operator " + strconv.Quote(err.Op.String())
}

func (err *OperatorError) Unwrap() error {
	return ErrInvalidOperator
}

// NameError indicates a variable used as a value. Variables have no values;
// they may only appear on the left side of an assignment.
type NameError struct {
	// Name is the variable name.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *NameError) Unwrap() error {
	return ErrUndefinedVariable
}
