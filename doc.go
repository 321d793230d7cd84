// Package calculator implements an exact-where-possible calculator over
// rationals, arbitrary-precision decimals, complex numbers, vectors, matrices,
// and functions.
//
// Expressions are written the way math is written on paper. "2x" and "2 sin x"
// are implicit multiplications and calls, "f(x, y) := x^2 + y" defines a
// function, and "x -> x + 1" is an anonymous one. Functions are values too, so
// "2*sin" is the function that doubles the sine of its argument.
//
// Parse turns text into an *Expr. An Expr can be simplified, printed back in
// minimal-parenthesis form, and evaluated in an Env, which holds the builtin
// functions and constants along with anything the expressions define.
package calculator
