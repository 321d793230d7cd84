package calculator

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// haskind reports whether e or any of its subexpressions is of kind k.
func (e *Expr) haskind(k exprKind) bool {
	if e.kind == k {
		return true
	}
	for _, o := range e.Operands() {
		if o.haskind(k) {
			return true
		}
	}
	return false
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind exprKind
		out  string
	}{
		{"num", "1", exprConst, "1"},
		{"decimal", "1.5", exprConst, "3/2"},
		{"name", "x", exprSymbol, "x"},
		{"neg", "-x", exprUnary, "-x"},
		{"plus", "+x", exprSymbol, "x"},
		{"add", "1+2", exprBinary, "1 + 2"},
		{"add-left", "a+b+c", exprBinary, "a + b + c"},
		{"sub-right", "a-(b-c)", exprBinary, "a - (b - c)"},
		{"mul-add", "a+b*c", exprBinary, "a + b * c"},
		{"add-mul", "(a+b)*c", exprBinary, "(a + b) * c"},
		{"times", "a×b÷c", exprBinary, "a * b / c"},
		{"pow-right", "a^b^c", exprBinary, "a^b^c"},
		{"pow-left", "(a^b)^c", exprBinary, "(a^b)^c"},
		{"neg-pow", "-a^2", exprUnary, "-a^2"},
		{"pow-neg", "a^-b", exprBinary, "a^(-b)"},
		{"neg-group", "-(a+b)", exprUnary, "-(a + b)"},
		{"implicit", "2x", exprImplicit, "2 x"},
		{"implicit-chain", "2 sin x", exprImplicit, "2 sin x"},
		{"implicit-pow", "2x^2", exprImplicit, "2 x^2"},
		{"implicit-group", "2(a+b)", exprImplicit, "2 (a + b)"},
		{"call", "sin(x)", exprImplicit, "sin(x)"},
		{"call2", "f(x, y)", exprImplicit, "f(x, y)"},
		{"call0", "f()", exprImplicit, "f()"},
		{"call-pow", "f(x)^2", exprBinary, "f(x)^2"},
		{"list", "(1, 2)", exprList, "(1, 2)"},
		{"empty-list", "()", exprList, "()"},
		{"vector", "[1, 2]", exprVector, "[1, 2]"},
		{"empty-vector", "[]", exprVector, "[]"},
		{"outer-vector", "1, 2, 3", exprVector, "[1, 2, 3]"},
		{"matrix", "[[1, 2], [3, 4]]", exprVector, "[[1, 2], [3, 4]]"},
		{"abs", "|x|", exprUnary, "|x|"},
		{"abs-nested", "||x| - 1|", exprUnary, "||x| - 1|"},
		{"abs-implicit", "|x| |y|", exprImplicit, "|x| |y|"},
		{"fact", "3!", exprUnary, "3!"},
		{"fact-sum", "(a+b)!", exprUnary, "(a + b)!"},
		{"square", "x²", exprUnary, "x²"},
		{"percent", "50%", exprUnary, "50%"},
		{"degrees", "90°", exprUnary, "90°"},
		{"eq", "a = b", exprBinary, "a = b"},
		{"less", "a+1 < b", exprBinary, "a + 1 < b"},
		{"lesseq", "a <= b", exprBinary, "a <= b"},
		{"lambda", "x -> x+1", exprLambda, "x -> x + 1"},
		{"lambda2", "(x, y) -> x*y", exprLambda, "(x, y) -> x * y"},
		{"lambda0", "() -> 1", exprLambda, "() -> 1"},
		{"lambda-curry", "x -> y -> x", exprLambda, "x -> y -> x"},
		{"define", "x := 2", exprDefine, "x := 2"},
		{"define-right", "2 =: x", exprDefine, "x := 2"},
		{"define-func", "f(x) := x^2", exprDefine, "f := x -> x^2"},
		{"define-func2", "f(x, y) := x + y", exprDefine, "f := (x, y) -> x + y"},
		{"define-chain", "a := b := 1", exprDefine, "a := b := 1"},
		{"sequence", "x := 2; x+1", exprSequence, "x := 2; x + 1"},
		{"sequence3", "a; b; c", exprSequence, "a; b; c"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if e.kind != c.kind {
				t.Errorf("%q parsed to %v, want %v", c.src, e.kind, c.kind)
			}
			if s := e.String(); s != c.out {
				t.Errorf("%q printed as %q, want %q", c.src, s, c.out)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"1 + 2 * 3",
		"(1 + 2) * 3",
		"-2^2^n",
		"a - (b - c) - d",
		"a / (b * c)",
		"2 x y",
		"2 sin(x)",
		"f(x)^2 + g(x, y)",
		"[[1, 2], [3, 4]] * [x, y]",
		"|a - |b||",
		"(x, y) -> x^y",
		"f := x -> x! / 2",
		"a := 1; b := a + 1; a < b",
		"x°² + 5%",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			a, err := ParseString(src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", src, err)
			}
			s := a.String()
			b, err := ParseString(s)
			if err != nil {
				t.Fatalf("%q printed as %q, which failed to parse: %v", src, s, err)
			}
			if !a.same(b) {
				t.Errorf("%q and its printed form %q parse differently", src, s)
			}
			if s2 := b.String(); s2 != s {
				t.Errorf("%q prints as %q, then as %q", src, s, s2)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		res  []string
	}{
		{"empty", "", new(EmptyExpressionError), []string{`(?i)\bno expression\b`}},
		{"space", "  ", new(EmptyExpressionError), []string{`(?i)\bno expression\b`}},
		{"emptyabs", "||", new(BracketError), []string{`\|`}},
		{"operand", "x*", new(OperandError), []string{`(?i)\boperand\b`, `\*`}},
		{"unary", "x*-", new(OperandError), []string{`(?i)\boperand\b`}},
		{"leading", "*x", new(OperandError), []string{`\*`}},
		{"paren-op", "(b*)", new(OperandError), []string{`\*`}},
		{"postfix", "!x", new(OperandError), []string{`!`}},
		{"left", "(x", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}},
		{"right", "x)", new(BracketError), []string{`(?i)\bbracket\b`, `\)`}},
		{"mismatch", "(x]", new(BracketError), []string{`(?i)\bbracket\b`, `\(`, `]`}},
		{"call-mismatch", "f(x]", new(BracketError), []string{`\(`, `]`}},
		{"abs-paren", "|(3-5|", new(BracketError), []string{`(?i)\bbracket\b`}},
		{"sep-start", "(, x)", new(SeparatorError), []string{`","`}},
		{"sep-double", "f(a,,b)", new(SeparatorError), []string{`","`}},
		{"sep-end", "[a,]", new(SeparatorError), []string{`","`}},
		{"sep-abs", "|a, b|", new(SeparatorError), []string{`","`}},
		{"chain", "1 < 2 < 3", new(OperatorError), []string{`(?i)\bchain`}},
		{"chain-mixed", "a = b <= c", new(OperatorError), []string{`<=`}},
		{"define-num", "2 := 3", new(DefinitionError), []string{`\b2\b`}},
		{"define-sum", "a+b := 3", new(DefinitionError), []string{`a \+ b`}},
		{"define-right", "3 =: 2", new(DefinitionError), []string{`\b2\b`}},
		{"define-params", "f(1) := 3", new(DefinitionError), nil},
		{"lambda-num", "1 -> x", new(DefinitionError), nil},
		{"lambda-expr", "(x+1) -> x", new(DefinitionError), nil},
		{"lambda-dup", "(x, x) -> x", new(DefinitionError), nil},
		{"lexer", "2^exp(-$)", new(LexError), []string{`\$`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			if !IsSyntax(err) {
				t.Errorf("%v is not a syntax error", err)
			}
			if p := err.(InputError).Pos(); p < 1 || p > len(c.src)+1 {
				t.Errorf("%v: position %d outside input", err, p)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestStopOn(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"newline", "x\nx", []string{"x", "x"}},
		{"multinl", "x\n\ny", []string{"x", "y"}},
		{"incomplete", "1 +\n2\n3", []string{"1 + 2", "3"}},
		{"brackets", "f(1,\n2)\n3", []string{"f(1, 2)", "3"}},
		{"spaces", "2 x\n3 y", []string{"2 x", "3 y"}},
		{"define", "a := 1\nb := a", []string{"a := 1", "b := a"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			for i, want := range c.want {
				a, err := Parse(src, StopOn('\n'))
				if err != nil {
					t.Fatalf("%q iter %d didn't parse: %v", c.src, i, err)
				}
				if s := a.String(); s != want {
					t.Errorf("%q iter %d: want %q, got %q", c.src, i, want, s)
				}
			}
			a, err := Parse(src, StopOn('\n'))
			if _, ok := err.(*EmptyExpressionError); !ok {
				t.Errorf("%q after %d iters parsed with error %#v and tree %v", c.src, len(c.want), err, a)
			}
		})
	}
}

func TestStopOnPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("StopOn(',') didn't panic")
		}
	}()
	StopOn(',')
}

func TestParsingPreset(t *testing.T) {
	preset := ParsingPreset(StopOn('\n'), Simplified())
	src := strings.NewReader("1 + 2\nx * 1")
	for _, want := range []string{"3", "x"} {
		a, err := Parse(src, preset)
		if err != nil {
			t.Fatal(err)
		}
		if s := a.String(); s != want {
			t.Errorf("want %q, got %q", want, s)
		}
	}
	// Options after a preset apply on top of it.
	a, err := ParseString("1 + 2", preset, StopOn())
	if err != nil {
		t.Fatal(err)
	}
	if s := a.String(); s != "3" {
		t.Errorf("want 3, got %q", s)
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Error("preset after options didn't panic")
			}
		}()
		ParseString("1", StopOn('\n'), preset)
	}()
}

func TestParseKinds(t *testing.T) {
	e, err := ParseString("f(x) := |x| + [1, 2]")
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []exprKind{exprDefine, exprLambda, exprBinary, exprUnary, exprVector, exprConst, exprSymbol} {
		if !e.haskind(k) {
			t.Errorf("%v has no %v", e, k)
		}
	}
	if e.haskind(exprImplicit) {
		t.Errorf("%v kept its call signature", e)
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "w^x*y+z+a*b^c"},
		{"descasc-parens", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c"},
		{"calls", "f(a, b, c) + g(x) sin x"},
		{"define", "f(x, y) := |x - y|; f(1, 2)"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				ParseString(c.src)
			}
		})
	}
}
