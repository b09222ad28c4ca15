package arith

import (
	"errors"
	"strconv"
)

// Error kinds. Every error produced by lexing, parsing, or evaluating an
// expression wraps exactly one of these, so callers can use errors.Is to
// classify failures.
var (
	// ErrUnexpectedCharacter is the kind of *CharError.
	ErrUnexpectedCharacter = errors.New("unexpected character")
	// ErrUnexpectedToken is the kind of *TokenError.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrTooDeep is the kind of *DepthError.
	ErrTooDeep = errors.New("expression nested too deeply")
	// ErrTypeMismatch is the kind of *TypeError.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidOperator is the kind of *OperatorError.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrUndefinedVariable is the kind of *NameError.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrUnknownFunction is the kind of *FuncError.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrArgumentCount is the kind of *ArgCountError.
	ErrArgumentCount = errors.New("argument count")
)

// CharError indicates a rune the lexer does not accept.
type CharError struct {
	// Char is the offending rune.
	Char rune
	// InNumber is true when the rune was a second decimal point in a number.
	InNumber bool
}

func (err *CharError) Error() string {
	if err.InNumber {
		return "unexpected character " + strconv.QuoteRune(err.Char) + " in number"
	}
	return "unexpected character " + strconv.QuoteRune(err.Char)
}

func (err *CharError) Unwrap() error {
	return ErrUnexpectedCharacter
}

// Expectation is what the parser was looking for when it found a token it
// could not use.
type Expectation int8

const (
	// WantPrimary means a number, identifier, '(' or '|'.
	WantPrimary Expectation = iota
	// WantComma means ',' or ')' after a function argument.
	WantComma
	// WantCloseParen means the ')' closing a parenthesized expression.
	WantCloseParen
	// WantClosePipe means the '|' closing an absolute value.
	WantClosePipe
	// WantAssignable means the left side of '=' was not a variable.
	WantAssignable
	// WantEnd means the end of the input after a complete expression.
	WantEnd
)

func (w Expectation) String() string {
	switch w {
	case WantPrimary:
		return "number, identifier, '(' or '|'"
	case WantComma:
		return "',' or ')' in argument list"
	case WantCloseParen:
		return "closing ')'"
	case WantClosePipe:
		return "closing '|'"
	case WantAssignable:
		return "variable on left side of '='"
	case WantEnd:
		return "end of input"
	default:
		return "Expectation(" + strconv.Itoa(int(w)) + ")"
	}
}

// TokenError indicates a token, or the end of input, where the grammar does
// not allow it.
type TokenError struct {
	// Want is what the parser expected.
	Want Expectation
	// Found is the token the parser found instead. It is the zero Token if
	// EOF is true.
	Found Token
	// EOF is true if the parser found the end of the input.
	EOF bool
}

func (err *TokenError) Error() string {
	found := "end of input"
	if !err.EOF {
		found = strconv.Quote(err.Found.String())
	}
	if err.Want == WantAssignable {
		// Found is the '=' here; there is nothing useful to quote.
		return "cannot assign: expected " + err.Want.String()
	}
	return "expected " + err.Want.String() + ", found " + found
}

func (err *TokenError) Unwrap() error {
	return ErrUnexpectedToken
}

// DepthError indicates an expression nested more deeply than the parser's
// depth limit allows. See MaxDepth.
type DepthError struct {
	// Limit is the configured maximum depth.
	Limit int
}

func (err *DepthError) Error() string {
	return "expression nested deeper than " + strconv.Itoa(err.Limit) + " levels"
}

func (err *DepthError) Unwrap() error {
	return ErrTooDeep
}
