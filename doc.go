// Package arith implements a float64 calculator.
//
// An expression is numbers, the operators + - * / ^, unary minus,
// parentheses, absolute value bars as in "|x - 3|", calls of functions like
// "sqrt(2)" or "log(8, 2)", and assignments "x = 5". Evaluation happens in
// three steps: a Lexer turns text into tokens, a Parser pulls those tokens
// one at a time to build a tree of Nodes, and an Evaluator reduces the tree
// to a number.
//
// Exponentiation is right-associative and binds tighter than unary minus,
// so "-2^2" is "-(2^2)" and "2^3^2" is "2^(3^2)". Addition and
// multiplication tiers are left-associative. A bare variable has no value;
// "x = 5" evaluates to 5 without remembering x, so every evaluation stands
// alone.
//
// Every failure aborts the whole evaluation with a single error. Errors
// wrap one of the Err* kinds, e.g. ErrUnexpectedToken, for use with
// errors.Is, and carry details in a typed error such as *TokenError.
package arith
