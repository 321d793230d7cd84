package calculator_test

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	calculator "github.com/Rc-Cookie/calculator-sub000"
	"github.com/Rc-Cookie/calculator-sub000/number"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"precedence", "2+3*4", "14"},
		{"group", "(2+3)*4", "20"},
		{"pow", "2^3^2", "512"},
		{"neg-pow", "-2^2", "-4"},
		{"fraction", "7/2", "7/2"},
		{"fractions", "1/3 + 1/6", "1/2"},
		{"decimal", "0.1 + 0.2", "3/10"},
		{"times", "6×7÷2", "21"},
		{"implicit", "2(3)", "6"},
		{"implicit-pow", "x := 3; 2x^2", "18"},
		{"fact", "3!", "6"},
		{"fact-big", "25!", "15511210043330985984000000"},
		{"percent", "50%", "1/2"},
		{"square", "3²", "9"},
		{"cube", "2³", "8"},
		{"abs", "|3-5|", "2"},
		{"abs-nested", "||-3| - 5|", "2"},
		{"eq", "1 = 1", "1"},
		{"less", "1 < 2", "1"},
		{"lesseq", "2 <= 1", "0"},
		{"greater", "2 > 1", "1"},
		{"greatereq", "1 >= 1", "1"},
		{"i", "i*i", "-1"},
		{"re", "re(3 + 4i)", "3"},
		{"im", "im(3 + 4i)", "4"},
		{"sqrt", "sqrt(4)", "2"},
		{"sqrt-frac", "sqrt(9/4)", "3/2"},
		{"sqrt-neg", "sqrt(-4)", "2i"},
		{"cbrt", "cbrt(-8)", "-2"},
		{"sin0", "sin 0", "0"},
		{"log", "log(1000)", "3"},
		{"log-base", "log(8, 2)", "3"},
		{"floor", "floor(7/2)", "3"},
		{"ceil", "ceil(7/2)", "4"},
		{"round", "round(5/2)", "3"},
		{"round-neg", "round(-5/2)", "-3"},
		{"sign", "sign(-4)", "-1"},
		{"min", "min(4, 2)", "2"},
		{"max-vector", "max([1, 5, 3])", "5"},
		{"vector", "[1, 2] + [3, 4]", "[4, 6]"},
		{"scale", "2[1, 2]", "[2, 4]"},
		{"dot", "[1, 2] * [3, 4]", "11"},
		{"pad", "[1, 2] + [1, 2, 3]", "[2, 4, 3]"},
		{"outer", "1, 2", "[1, 2]"},
		{"matrix", "[[1, 2], [3, 4]]", "[[1, 2], [3, 4]]"},
		{"det", "det([[1, 2], [3, 4]])", "-2"},
		{"transpose", "transpose([[1, 2], [3, 4]])", "[[1, 3], [2, 4]]"},
		{"size", "size([1, 2, 3])", "3"},
		{"size-matrix", "size([[1, 2, 3], [4, 5, 6]])", "[2, 3]"},
		{"get", "get([5, 6, 7], 1)", "6"},
		{"get-out", "get([5, 6], 5)", "0"},
		{"sum", "sum(1, 4, k -> k^2)", "30"},
		{"prod", "prod(1, 5, k -> k)", "120"},
		{"define", "x := 2", "2"},
		{"define-right", "2 =: x; x*3", "6"},
		{"define-chain", "x := 2; y := x+1; y", "3"},
		{"function", "f(x) := x+1; f(2)", "3"},
		{"function2", "a(x) := 3x; a(2)", "6"},
		{"function-args", "f(x, y) := x - y; f(5, 2)", "3"},
		{"lambda-call", "(x -> x*2)(3)", "6"},
		{"derived", "(2*sqrt)(9)", "6"},
		{"derived-sum", "(abs + 1)(-3)", "4"},
		{"derived-neg", "(-abs)(-3)", "-3"},
		{"derived-funcs", "(abs * abs)(-3)", "9"},
		{"compose", "sqrt(abs)(-16)", "4"},
		{"broadcast", "abs(-1, -2)", "[1, 2]"},
		{"short-mul", "0 * undefined", "0"},
		{"short-pow", "1^undefined", "1"},
		{"print-lambda", "x -> x^2", "x -> x^2"},
		{"print-named", "f(x) := x^2; f", "f"},
		{"print-derived", "2*sqrt", "sqrt * 2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if s := r.String(); s != c.want {
				t.Errorf("%q gave %s, want %s", c.src, s, c.want)
			}
		})
	}
}

func TestEvalDynamicScope(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		// g sees the parameter x of the call to f still in progress.
		{"outer-param", "f(x) := g(x+1); g(y) := x*y; f(2)", "6"},
		// The inner binding of x is gone once g returns.
		{"restore", "f(x) := g(1) + x; g(x) := x; f(5)", "6"},
		{"recursion", "fact(n) := (n > 0) * n * fact(n-1) + (n = 0); fact(5)", "120"},
		{"global", "x := 10; f(x) := x; f(1) + x", "11"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := calculator.NewEnv()
			e, err := calculator.ParseString(c.src)
			if err != nil {
				t.Fatal(err)
			}
			r, err := e.Eval(env)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if s := r.String(); s != c.want {
				t.Errorf("%q gave %s, want %s", c.src, s, c.want)
			}
		})
	}
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    []string
	}{
		{"x", "x", []string{"x"}},
		{"neg", "-x", []string{"x"}},
		{"add-lhs", "x+1", []string{"x"}},
		{"add-rhs", "1+x", []string{"x"}},
		{"sub-rhs", "1-x", []string{"x"}},
		{"mul-lhs", "x*2", []string{"x"}},
		{"div-rhs", "1/x", []string{"x"}},
		{"pow-rhs", "2^x", []string{"x"}},
		{"call", "exp(x)", []string{"exp", "x"}},
		{"both", "x y", []string{"x", "y"}},
		{"lambda", "(a -> a + b)(1)", []string{"b"}},
	}
	re := regexp.MustCompile(`(?i)\bundefined\b`)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := calculator.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if v := a.Vars(); strings.Join(v, ",") != strings.Join(c.r, ",") {
				t.Errorf("%q gave wrong variables: want %q, got %q", c.src, c.r, v)
			}
			r, err := a.Eval(calculator.NewEnv())
			if r != nil {
				t.Errorf("evaluating %q gave non-nil result %v", c.src, r)
			}
			var u *calculator.NameError
			if !errors.As(err, &u) {
				t.Fatalf("error was %#v, not NameError", err)
			}
			if !re.MatchString(err.Error()) {
				t.Errorf("%q doesn't mention undefined", err.Error())
			}
			for _, v := range c.r {
				if v == u.Name {
					return
				}
			}
			t.Errorf("NameError on %q, not in %q", u.Name, c.r)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  interface{}
	}{
		{"div0", "1/0", new(*number.ArithmeticError)},
		{"asin", "asin(2)", new(*number.DomainError)},
		{"ln0", "ln 0", new(*number.DomainError)},
		{"compare-complex", "i < 1", new(*number.UnsupportedError)},
		{"shape", "[[1, 2], [3, 4]] + [[1, 2, 3], [4, 5, 6]]", new(*number.ShapeError)},
		{"singular", "inv([[1, 2], [2, 4]])", new(*number.ArithmeticError)},
		{"args", "g(x, y) := x; g(1, 2, 3)", new(*calculator.CallError)},
		{"depth", "f(x) := f(x); f(1)", new(*calculator.CallError)},
		{"max-empty", "max([])", new(*calculator.ArgumentError)},
		{"sum-func", "sum(1, 2, 3)", new(*calculator.ArgumentError)},
		{"get-index", "get([1], 1/2)", new(*calculator.ArgumentError)},
		{"name", "nope", new(*calculator.NameError)},
		{"returned-omitted", "g(x) := x; log(100, g())", new(*number.DomainError)},
		{"defined-omitted", "g(x) := (y := x); g(); log(100, y)", new(*number.DomainError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.EvalString(c.src)
			if err == nil {
				t.Fatalf("%q gave %v with no error", c.src, r)
			}
			if !errors.As(err, c.err) {
				t.Errorf("%q gave %T (%v), want %T", c.src, err, err, c.err)
			}
			if calculator.IsSyntax(err) {
				t.Errorf("%v is a syntax error", err)
			}
		})
	}
}

func TestEvalDefinitionsPersist(t *testing.T) {
	env := calculator.NewEnv()
	for _, src := range []string{"a := 4", "sq(x) := x^2", "sq(a) - a"} {
		e, err := calculator.ParseString(src)
		if err != nil {
			t.Fatal(err)
		}
		r, err := e.Eval(env)
		if err != nil {
			t.Fatalf("%q failed: %v", src, err)
		}
		if src == "sq(a) - a" && r.String() != "12" {
			t.Errorf("%q gave %v, want 12", src, r)
		}
	}
	f, err := env.Get("sq")
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := f.(*calculator.Function)
	if !ok {
		t.Fatalf("sq is %T, not a function", f)
	}
	if fn.Name() != "sq" || fn.Arity() != 1 {
		t.Errorf("sq has name %q and arity %d", fn.Name(), fn.Arity())
	}
}

func TestEvalPrecision(t *testing.T) {
	cases := []struct {
		digits int
		src    string
		prefix string
	}{
		{0, "pi", "3.14159265358979"},
		{30, "pi", "3.141592653589793238462643383"},
		{30, "e", "2.718281828459045235360287471"},
		{40, "sqrt(2)", "1.414213562373095048801688724209698078"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.src, c.digits), func(t *testing.T) {
			r, err := calculator.EvalString(c.src, calculator.Digits(c.digits))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(r.String(), c.prefix) {
				t.Errorf("%s to %d digits: got %s, want prefix %s", c.src, c.digits, r, c.prefix)
			}
			if r.IsPrecise() {
				t.Errorf("%s is marked precise", r)
			}
		})
	}
}

func TestEvalInexactZero(t *testing.T) {
	cases := []struct {
		src     string
		want    string
		precise bool
	}{
		{"(sqrt(2) - sqrt(2)) * 5", "0", false},
		{"5 * (sqrt(2) - sqrt(2))", "0", false},
		{"(sqrt(2) - sqrt(2)) * [1, 2]", "[0, 0]", false},
		{"0 * 5", "0", true},
		{"(sqrt(2) - sqrt(2))^0", "1", true},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			r, err := calculator.EvalString(c.src)
			if err != nil {
				t.Fatal(err)
			}
			if r.String() != c.want {
				t.Errorf("got %v, want %s", r, c.want)
			}
			if r.IsPrecise() != c.precise {
				t.Errorf("%v has precise=%t, want %t", r, r.IsPrecise(), c.precise)
			}
		})
	}
}

func TestSetVars(t *testing.T) {
	half, err := number.NewRational(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	vars := map[string]number.Number{"x": number.Int(3), "y": half}
	r, err := calculator.EvalString("x + y", calculator.SetVars(vars))
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "7/2" {
		t.Errorf("x + y gave %v, want 7/2", r)
	}
	r, err = calculator.EvalString("pi", calculator.SetVar("pi", number.Int(3)))
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "3" {
		t.Errorf("pi gave %v after replacing it", r)
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		env := calculator.NewEnv()
		a, err := calculator.ParseString("2+3+4")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(env)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		env := calculator.NewEnv(calculator.SetVars(map[string]number.Number{
			"x": number.Int(2),
			"y": number.Int(3),
			"z": number.Int(4),
		}))
		a, err := calculator.ParseString("x+y+z")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(env)
		}
	})
	b.Run("calls", func(b *testing.B) {
		b.ReportAllocs()
		env := calculator.NewEnv()
		a, err := calculator.ParseString("f(x) := x^2 + 1; sum(1, 100, f)")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(env)
		}
	})
}
