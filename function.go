package calculator

import (
	"github.com/Rc-Cookie/calculator-sub000/number"
)

// Function is a callable value. Functions are numbers: arithmetic between a
// function and another value produces a derived function that applies the
// operation to the function's result, so 2*sin is the function x -> 2*sin(x).
type Function struct {
	kind fnKind
	// name is empty for anonymous functions.
	name   string
	params []string

	// body is the simplified body of a user function.
	body *Expr
	// impl computes a builtin. Its argument slice always has one element per
	// parameter.
	impl func(env *Env, args []number.Number) (number.Number, error)
	// higher marks builtins that take functions as arguments. Other builtins
	// called with a function argument compose with it instead.
	higher bool

	// fn is the underlying function of a derived function.
	fn *Function
	// bin and other are the operation and operand of a derived function.
	bin   binop
	other number.Number
	// un is the operation of a derived unary function.
	un unop
	// args are the inner arguments of a composed function.
	args []number.Number
}

type fnKind int8

const (
	fnBuiltin fnKind = iota
	fnUser
	fnDerived
	fnUnary
	fnCompose
)

// maxDepth bounds the nesting of function calls.
const maxDepth = 1000

// Lambda returns an anonymous function with the given parameters and body.
// The body is simplified once here and reused for every call.
func Lambda(params []string, body *Expr) *Function {
	return &Function{kind: fnUser, params: append([]string(nil), params...), body: body.Simplify()}
}

// Name returns the name of the function, or the empty string if it is
// anonymous.
func (f *Function) Name() string {
	return f.name
}

// Arity returns the number of parameters of the function.
func (f *Function) Arity() int {
	switch f.kind {
	case fnBuiltin, fnUser:
		return len(f.params)
	case fnDerived:
		n := f.fn.Arity()
		if g, ok := f.other.(*Function); ok && g.Arity() > n {
			n = g.Arity()
		}
		return n
	case fnUnary:
		return f.fn.Arity()
	case fnCompose:
		n := 0
		for _, a := range f.args {
			if g, ok := a.(*Function); ok && g.Arity() > n {
				n = g.Arity()
			}
		}
		return n
	}
	panic("calculator: invalid function kind")
}

// named returns a copy of f with the given name.
func (f *Function) named(name string) *Function {
	g := *f
	g.name = name
	return &g
}

// Call applies f to args. Missing arguments are Unspecified. A function of one
// parameter given several arguments is applied to each and the results are
// collected in a vector.
func (f *Function) Call(env *Env, args []number.Number) (number.Number, error) {
	n := f.Arity()
	if len(args) > n {
		if n != 1 {
			return nil, &CallError{Func: f.String(), Args: len(args), Params: n}
		}
		r := make([]number.Number, len(args))
		for i, a := range args {
			var err error
			if r[i], err = f.Call(env, []number.Number{a}); err != nil {
				return nil, err
			}
		}
		return number.NewVector(r...), nil
	}
	for len(args) < n {
		args = append(args[:len(args):len(args)], number.Unspecified)
	}
	if env.depth >= maxDepth {
		return nil, &CallError{Func: f.String(), Args: len(args), Params: n, Reason: "calls nested too deeply"}
	}
	env.depth++
	defer func() { env.depth-- }()
	return f.call(env, args)
}

func (f *Function) call(env *Env, args []number.Number) (number.Number, error) {
	switch f.kind {
	case fnBuiltin:
		if !f.higher {
			for _, a := range args {
				if _, ok := a.(*Function); ok {
					return &Function{kind: fnCompose, fn: f, args: args}, nil
				}
			}
		}
		return f.impl(env, args)
	case fnUser:
		for i, p := range f.params {
			env.PushLocal(p, args[i])
		}
		defer func() {
			for i := len(f.params) - 1; i >= 0; i-- {
				env.PopLocal(f.params[i])
			}
		}()
		v, err := f.body.Eval(env)
		if number.IsUnspecified(v) {
			// An omitted argument only means "omitted" to the callee.
			v = number.Zero
		}
		return v, err
	case fnDerived:
		v, err := f.fn.Call(env, args)
		if err != nil {
			return nil, err
		}
		o := f.other
		if g, ok := o.(*Function); ok {
			if o, err = g.Call(env, args); err != nil {
				return nil, err
			}
		}
		return f.bin.apply(v, o)
	case fnUnary:
		v, err := f.fn.Call(env, args)
		if err != nil {
			return nil, err
		}
		return applyUnary(f.un, v, env)
	case fnCompose:
		inner := make([]number.Number, len(f.args))
		for i, a := range f.args {
			inner[i] = a
			if g, ok := a.(*Function); ok {
				var err error
				if inner[i], err = g.Call(env, args); err != nil {
					return nil, err
				}
			}
		}
		return f.fn.Call(env, inner)
	}
	panic("calculator: invalid function kind")
}

// derive builds the function x -> op(f(x), other).
func (f *Function) derive(op binop, other number.Number) (number.Number, error) {
	if e, ok := other.(*Expr); ok {
		// Expressions keep the function as a constant operand.
		return binops[op].apply(Const(f), e)
	}
	return &Function{kind: fnDerived, fn: f, bin: op, other: other}, nil
}

func (f *Function) Add(x number.Number) (number.Number, error)      { return f.derive(binAdd, x) }
func (f *Function) Sub(x number.Number) (number.Number, error)      { return f.derive(binSub, x) }
func (f *Function) SubFrom(x number.Number) (number.Number, error)  { return f.derive(binSubFrom, x) }
func (f *Function) Mul(x number.Number) (number.Number, error)      { return f.derive(binMul, x) }
func (f *Function) Div(x number.Number) (number.Number, error)      { return f.derive(binDiv, x) }
func (f *Function) DivOther(x number.Number) (number.Number, error) { return f.derive(binDivOther, x) }
func (f *Function) Pow(x number.Number) (number.Number, error)      { return f.derive(binPow, x) }
func (f *Function) PowOther(x number.Number) (number.Number, error) { return f.derive(binPowOther, x) }

func (f *Function) Neg() number.Number {
	return &Function{kind: fnUnary, fn: f, un: unNeg}
}

func (f *Function) Inv() (number.Number, error) {
	return f.derive(binDivOther, number.One)
}

func (f *Function) Abs() (number.Number, error) {
	return &Function{kind: fnUnary, fn: f, un: unAbs}, nil
}

func (f *Function) IsPrecise() bool { return true }

// Equal reports whether x is the same function as f.
func (f *Function) Equal(x number.Number) (bool, error) {
	g, ok := x.(*Function)
	return ok && f.same(g), nil
}

func (f *Function) Less(x number.Number) (bool, error) {
	return false, &number.UnsupportedError{Op: "comparison", Kind: "functions"}
}

func (f *Function) Greater(x number.Number) (bool, error) {
	return false, &number.UnsupportedError{Op: "comparison", Kind: "functions"}
}

func (f *Function) same(g *Function) bool {
	if f == g {
		return true
	}
	if f.kind != g.kind || f.name != g.name {
		return false
	}
	switch f.kind {
	case fnUser:
		return lambda(f.params, f.body).same(lambda(g.params, g.body))
	case fnDerived:
		return f.bin == g.bin && f.fn.same(g.fn) && sameValue(f.other, g.other)
	case fnUnary:
		return f.un == g.un && f.fn.same(g.fn)
	case fnCompose:
		if !f.fn.same(g.fn) || len(f.args) != len(g.args) {
			return false
		}
		for i, a := range f.args {
			if !sameValue(a, g.args[i]) {
				return false
			}
		}
		return true
	}
	// Distinct builtins with the same name are different functions.
	return false
}

// expr returns an expression that prints like f.
func (f *Function) expr() *Expr {
	if f.name != "" {
		return Symbol(f.name)
	}
	switch f.kind {
	case fnUser:
		return lambda(f.params, f.body)
	case fnDerived:
		return binary(f.bin, f.fn.expr(), constExpr(f.other))
	case fnUnary:
		return unary(f.un, f.fn.expr())
	case fnCompose:
		args := make([]*Expr, len(f.args))
		for i, a := range f.args {
			args[i] = constExpr(a)
		}
		return implicit(f.fn.expr(), list(args), true)
	}
	return Symbol("?")
}

func constExpr(x number.Number) *Expr {
	if g, ok := x.(*Function); ok {
		return g.expr()
	}
	return Const(x)
}

func (f *Function) precedence() int {
	return f.expr().Precedence()
}

func (f *Function) String() string {
	return f.expr().String()
}

var _ number.Number = (*Function)(nil)
