package calculator

import (
	"io"
	"strconv"
	"strings"

	"github.com/Rc-Cookie/calculator-sub000/number"
)

// Eval evaluates the expression in env. Definitions within the expression
// change the globals of env.
func (e *Expr) Eval(env *Env) (number.Number, error) {
	switch e.kind {
	case exprConst:
		return e.val, nil
	case exprSymbol:
		return env.Get(e.name)
	case exprUnary:
		x, err := e.left.Eval(env)
		if err != nil {
			return nil, err
		}
		return applyUnary(e.un, x, env)
	case exprBinary:
		return e.evalBinary(env)
	case exprImplicit:
		l, err := e.left.Eval(env)
		if err != nil {
			return nil, err
		}
		if f, ok := l.(*Function); ok {
			args, err := e.right.evalArgs(env)
			if err != nil {
				return nil, err
			}
			return f.Call(env, args)
		}
		r, err := e.right.Eval(env)
		if err != nil {
			return nil, err
		}
		return l.Mul(r)
	case exprList:
		v, err := evalAll(env, e.elems)
		if err != nil {
			return nil, err
		}
		return number.NewVector(v...), nil
	case exprVector:
		v, err := evalAll(env, e.elems)
		if err != nil {
			return nil, err
		}
		return vectorOrMatrix(v)
	case exprLambda:
		return Lambda(e.params, e.right), nil
	case exprDefine:
		v, err := e.right.Eval(env)
		if err != nil {
			return nil, err
		}
		if f, ok := v.(*Function); ok && f.name == "" {
			v = f.named(e.name)
		}
		if number.IsUnspecified(v) {
			v = number.Zero
		}
		env.Put(e.name, v)
		return v, nil
	case exprSequence:
		if _, err := e.left.Eval(env); err != nil {
			return nil, err
		}
		return e.right.Eval(env)
	}
	panic("calculator: invalid expression kind " + e.kind.String())
}

// evalBinary evaluates the operand written first, then the other unless the
// first decides the result: an exact real 0 times anything is 0, and an exact
// real 1 to any power is 1.
func (e *Expr) evalBinary(env *Env) (number.Number, error) {
	info := binops[e.bin]
	first, second := e.left, e.right
	if info.swapped {
		first, second = second, first
	}
	a, err := first.Eval(env)
	if err != nil {
		return nil, err
	}
	if absorbs(e.bin, a) {
		return a, nil
	}
	b, err := second.Eval(env)
	if err != nil {
		return nil, err
	}
	if info.swapped {
		return e.bin.apply(b, a)
	}
	return e.bin.apply(a, b)
}

// absorbs reports whether a, evaluated first, fixes the result of op. Only
// exact reals qualify, so inexact zeros and vectors go through arithmetic.
func absorbs(op binop, a number.Number) bool {
	if _, ok := a.(number.Real); !ok || !a.IsPrecise() || number.IsUnspecified(a) {
		return false
	}
	switch op {
	case binMul:
		return number.IsZero(a)
	case binPow, binPowOther:
		return number.IsOne(a)
	}
	return false
}

// evalArgs evaluates e as the arguments of a call. A list gives one argument
// per element; anything else is a single argument.
func (e *Expr) evalArgs(env *Env) ([]number.Number, error) {
	if e.kind == exprList {
		return evalAll(env, e.elems)
	}
	v, err := e.Eval(env)
	if err != nil {
		return nil, err
	}
	return []number.Number{v}, nil
}

func evalAll(env *Env, elems []*Expr) ([]number.Number, error) {
	v := make([]number.Number, len(elems))
	for i, x := range elems {
		var err error
		if v[i], err = x.Eval(env); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// vectorOrMatrix builds a matrix if the elements are vectors of one length,
// or otherwise a vector.
func vectorOrMatrix(v []number.Number) (number.Number, error) {
	if len(v) == 0 {
		return number.NewVector(), nil
	}
	rows := make([][]number.Number, len(v))
	for i, x := range v {
		r, ok := x.(number.Vector)
		if !ok || r.Len() == 0 || i > 0 && r.Len() != len(rows[0]) {
			return number.NewVector(v...), nil
		}
		rows[i] = r.Elems()
	}
	return number.NewMatrix(rows)
}

// applyUnary applies op to x, deriving a new function if x is a function.
func applyUnary(op unop, x number.Number, env *Env) (number.Number, error) {
	if f, ok := x.(*Function); ok {
		return &Function{kind: fnUnary, fn: f, un: op}, nil
	}
	return op.apply(x, env.Precision())
}

// Eval is a shortcut to parse an expression and evaluate it in a new
// environment created with opts.
func Eval(src io.RuneScanner, opts ...EnvOption) (number.Number, error) {
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return a.Eval(NewEnv(opts...))
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...EnvOption) (number.Number, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for a variable that is missing from the
// environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// CallError is an error indicating a function call that cannot be made, such
// as one with too many arguments.
type CallError struct {
	// Func is the function that was called.
	Func string
	// Args is the number of arguments given.
	Args int
	// Params is the number of parameters of the function.
	Params int
	// Reason replaces the default message if it is set.
	Reason string
}

func (err *CallError) Error() string {
	if err.Reason != "" {
		return "cannot call " + err.Func + ": " + err.Reason
	}
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Args) + " arguments (takes " + strconv.Itoa(err.Params) + ")"
}

// ArgumentError is an error indicating a function argument of the wrong kind.
type ArgumentError struct {
	// Func is the name of the function.
	Func string
	// Arg is the 1-based position of the argument.
	Arg int
	// Value is the argument.
	Value number.Number
	// Want describes what the argument should be.
	Want string
}

func (err *ArgumentError) Error() string {
	return err.Func + ": argument " + strconv.Itoa(err.Arg) + " must be " + err.Want + ", not " + err.Value.String()
}
