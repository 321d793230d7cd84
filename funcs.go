package calculator

import (
	"math"

	"github.com/Rc-Cookie/calculator-sub000/number"
)

// builtinFuncs are the functions every environment starts with, unless it is
// created with NoBuiltins.
var builtinFuncs = map[string]*Function{
	"sqrt":  special(number.Sqrt),
	"cbrt":  special(number.Cbrt),
	"exp":   special(number.Exp),
	"ln":    special(number.Ln),
	"sin":   special(number.Sin),
	"cos":   special(number.Cos),
	"tan":   special(number.Tan),
	"asin":  special(number.Asin),
	"acos":  special(number.Acos),
	"atan":  special(number.Atan),
	"sinh":  special(number.Sinh),
	"cosh":  special(number.Cosh),
	"tanh":  special(number.Tanh),
	"asinh": special(number.Asinh),
	"acosh": special(number.Acosh),
	"atanh": special(number.Atanh),
	"gamma": special(number.Gamma),

	"log": builtin("log", logarithm, "x", "b"),
	"abs": builtin("abs", func(env *Env, args []number.Number) (number.Number, error) {
		return args[0].Abs()
	}, "x"),
	"min":   builtin("min", extremum("min", number.Number.Less), "a", "b"),
	"max":   builtin("max", extremum("max", number.Number.Greater), "a", "b"),
	"floor": rounding("floor", number.Floor),
	"ceil":  rounding("ceil", number.Ceil),
	"round": rounding("round", number.Nearest),
	"sign":  elementBuiltin("sign", sign),
	"re": elementBuiltin("re", func(env *Env, x number.Number) (number.Number, error) {
		switch x := x.(type) {
		case number.Complex:
			return x.Re(), nil
		case number.Real:
			return x, nil
		}
		return nil, &ArgumentError{Func: "re", Arg: 1, Value: x, Want: "a number"}
	}),
	"im": elementBuiltin("im", func(env *Env, x number.Number) (number.Number, error) {
		switch x := x.(type) {
		case number.Complex:
			return x.Im(), nil
		case number.Real:
			return number.Zero, nil
		}
		return nil, &ArgumentError{Func: "im", Arg: 1, Value: x, Want: "a number"}
	}),
	"conj": elementBuiltin("conj", func(env *Env, x number.Number) (number.Number, error) {
		switch x := x.(type) {
		case number.Complex:
			return x.Conj(), nil
		case number.Real:
			return x, nil
		}
		return nil, &ArgumentError{Func: "conj", Arg: 1, Value: x, Want: "a number"}
	}),
	"arg": elementBuiltin("arg", func(env *Env, x number.Number) (number.Number, error) {
		switch x := x.(type) {
		case number.Complex:
			return x.Arg(env.Precision())
		case number.Real:
			return number.Atan2(number.Zero, x, env.Precision())
		}
		return nil, &ArgumentError{Func: "arg", Arg: 1, Value: x, Want: "a number"}
	}),
	"get":       builtin("get", get, "v", "i"),
	"size":      builtin("size", size, "v"),
	"det":       builtin("det", det, "m"),
	"transpose": builtin("transpose", transpose, "m"),
	"inv": builtin("inv", func(env *Env, args []number.Number) (number.Number, error) {
		return args[0].Inv()
	}, "x"),
	"sum":  higher(builtin("sum", series("sum", number.Zero, number.Number.Add), "a", "b", "f")),
	"prod": higher(builtin("prod", series("prod", number.One, number.Number.Mul), "a", "b", "f")),
}

// constants returns the builtin constants computed to precision p.
func constants(p number.Precision) map[string]number.Number {
	pi := number.Pi(p)
	return map[string]number.Number{
		"pi": pi,
		"π":  pi,
		"e":  number.E(p),
		"i":  number.I,
	}
}

func builtin(name string, impl func(env *Env, args []number.Number) (number.Number, error), params ...string) *Function {
	return &Function{kind: fnBuiltin, name: name, params: params, impl: impl}
}

// higher marks f as taking functions as arguments.
func higher(f *Function) *Function {
	f.higher = true
	return f
}

// elementwise applies f to x, or to each element if x is a vector or matrix.
func elementwise(x number.Number, f func(number.Number) (number.Number, error)) (number.Number, error) {
	switch v := x.(type) {
	case number.Vector:
		return v.Map(func(e number.Number) (number.Number, error) { return elementwise(e, f) })
	case number.Matrix:
		return v.Map(f)
	}
	return f(x)
}

// elementBuiltin creates a builtin of one parameter applied to each element
// of vectors and matrices.
func elementBuiltin(name string, f func(env *Env, x number.Number) (number.Number, error)) *Function {
	return builtin(name, func(env *Env, args []number.Number) (number.Number, error) {
		return elementwise(args[0], func(x number.Number) (number.Number, error) { return f(env, x) })
	}, "x")
}

func special(fn number.Func) *Function {
	return elementBuiltin(fn.String(), func(env *Env, x number.Number) (number.Number, error) {
		return number.Special(fn, x, env.Precision())
	})
}

func rounding(name string, mode number.RoundMode) *Function {
	return builtin(name, func(env *Env, args []number.Number) (number.Number, error) {
		return number.Round(args[0], mode)
	}, "x")
}

// maxExactLog bounds the exponents tried when looking for an exact logarithm.
const maxExactLog = 4096

// logarithm computes log(x, b), with b defaulting to 10. If x is an exact
// integer power of an exact b, the result is exact.
func logarithm(env *Env, args []number.Number) (number.Number, error) {
	x, b := args[0], args[1]
	if number.IsUnspecified(b) {
		b = number.Int(10)
	}
	p := env.Precision()
	lx, err := number.Special(number.Ln, x, p)
	if err != nil {
		return nil, err
	}
	lb, err := number.Special(number.Ln, b, p)
	if err != nil {
		return nil, err
	}
	r, err := lx.Div(lb)
	if err != nil {
		return nil, err
	}
	if k, ok := exactLog(x, b, r); ok {
		return k, nil
	}
	return r, nil
}

// exactLog checks whether the approximate logarithm r of x to base b is an
// integer k with b^k = x exactly.
func exactLog(x, b, r number.Number) (number.Number, bool) {
	if !x.IsPrecise() || !b.IsPrecise() {
		return nil, false
	}
	xr, ok := x.(number.Real)
	if !ok {
		return nil, false
	}
	rr, ok := r.(number.Real)
	if !ok {
		return nil, false
	}
	k := math.Round(rr.Float64())
	if math.IsNaN(k) || math.Abs(k) > maxExactLog {
		return nil, false
	}
	kn := number.Int(int64(k))
	p, err := b.Pow(kn)
	if err != nil {
		return nil, false
	}
	if eq, err := p.Equal(xr); err != nil || !eq || !p.IsPrecise() {
		return nil, false
	}
	return kn, true
}

// extremum creates min or max. better reports whether its receiver should
// replace its argument as the result. With one argument, a vector is reduced
// to its extreme element.
func extremum(name string, better func(a, b number.Number) (bool, error)) func(env *Env, args []number.Number) (number.Number, error) {
	pick := func(a, b number.Number) (number.Number, error) {
		r, err := better(b, a)
		if err != nil {
			return nil, err
		}
		if r {
			return b, nil
		}
		return a, nil
	}
	return func(env *Env, args []number.Number) (number.Number, error) {
		a, b := args[0], args[1]
		if !number.IsUnspecified(b) {
			return pick(a, b)
		}
		v, ok := a.(number.Vector)
		if !ok {
			return a, nil
		}
		if v.Len() == 0 {
			return nil, &ArgumentError{Func: name, Arg: 1, Value: a, Want: "a non-empty vector"}
		}
		elems := v.Elems()
		r := elems[0]
		for _, x := range elems[1:] {
			var err error
			if r, err = pick(r, x); err != nil {
				return nil, err
			}
		}
		return r, nil
	}
}

func sign(env *Env, x number.Number) (number.Number, error) {
	switch x := x.(type) {
	case number.Real:
		return number.Int(int64(x.Sign())), nil
	case number.Complex:
		a, err := x.Abs()
		if err != nil {
			return nil, err
		}
		return x.Div(a)
	}
	return nil, &ArgumentError{Func: "sign", Arg: 1, Value: x, Want: "a number"}
}

// index converts the argument at position arg to an int.
func index(name string, arg int, x number.Number) (int, error) {
	i, ok := number.Int64(x)
	if !ok || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, &ArgumentError{Func: name, Arg: arg, Value: x, Want: "an integer"}
	}
	return int(i), nil
}

// get returns element i of a vector or row i of a matrix, counting from zero.
// Indices out of range give zero, and a scalar acts as a vector of one
// element.
func get(env *Env, args []number.Number) (number.Number, error) {
	i, err := index("get", 2, args[1])
	if err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case number.Vector:
		return v.At(i), nil
	case number.Matrix:
		if i < 0 || i >= v.Rows() {
			return number.Zero, nil
		}
		return v.Row(i), nil
	}
	if i == 0 {
		return args[0], nil
	}
	return number.Zero, nil
}

// size returns the length of a vector, the dimensions of a matrix as a
// vector, or 1 for anything else.
func size(env *Env, args []number.Number) (number.Number, error) {
	switch v := args[0].(type) {
	case number.Vector:
		return number.Int(int64(v.Len())), nil
	case number.Matrix:
		return number.NewVector(number.Int(int64(v.Rows())), number.Int(int64(v.Cols()))), nil
	}
	return number.One, nil
}

func det(env *Env, args []number.Number) (number.Number, error) {
	switch m := args[0].(type) {
	case number.Matrix:
		return m.Det()
	case number.Real, number.Complex:
		return m, nil
	}
	return nil, &ArgumentError{Func: "det", Arg: 1, Value: args[0], Want: "a square matrix"}
}

// transpose transposes a matrix. A vector, which acts as a column, becomes a
// matrix of one row.
func transpose(env *Env, args []number.Number) (number.Number, error) {
	switch m := args[0].(type) {
	case number.Matrix:
		return m.Transpose(), nil
	case number.Vector:
		return number.NewMatrix([][]number.Number{m.Elems()})
	}
	return args[0], nil
}

// series creates sum or prod, which combine f(i) for each integer i from a
// through b.
func series(name string, init number.Number, op func(a, b number.Number) (number.Number, error)) func(env *Env, args []number.Number) (number.Number, error) {
	return func(env *Env, args []number.Number) (number.Number, error) {
		lo, ok := number.Int64(args[0])
		if !ok {
			return nil, &ArgumentError{Func: name, Arg: 1, Value: args[0], Want: "an integer"}
		}
		hi, ok := number.Int64(args[1])
		if !ok {
			return nil, &ArgumentError{Func: name, Arg: 2, Value: args[1], Want: "an integer"}
		}
		f, ok := args[2].(*Function)
		if !ok {
			return nil, &ArgumentError{Func: name, Arg: 3, Value: args[2], Want: "a function"}
		}
		r := init
		for i := lo; i <= hi && i >= lo; i++ {
			v, err := f.Call(env, []number.Number{number.Int(i)})
			if err != nil {
				return nil, err
			}
			if r, err = op(r, v); err != nil {
				return nil, err
			}
		}
		return r, nil
	}
}
