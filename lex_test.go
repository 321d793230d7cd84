package calculator

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

// kinds lexes src to the end and returns the kind and text of each token.
func kinds(src, wseof string) ([]tokenKind, []string, error) {
	l := lex(strings.NewReader(src), wseof)
	var ks []tokenKind
	var ts []string
	for {
		tok, err := l.next()
		if err != nil {
			return ks, ts, err
		}
		if tok.kind == tokenEOF {
			return ks, ts, nil
		}
		ks = append(ks, tok.kind)
		ts = append(ts, tok.text)
	}
}

func TestLex(t *testing.T) {
	cases := []struct {
		src   string
		kinds []tokenKind
		texts []string
	}{
		// spaces
		{"", nil, nil},
		{" \t \r\n ", nil, nil},
		// numbers
		{"0", []tokenKind{tokenNum}, []string{"0"}},
		{"9876543210", []tokenKind{tokenNum}, []string{"9876543210"}},
		{"1.5", []tokenKind{tokenNum}, []string{"1.5"}},
		{".5", []tokenKind{tokenNum}, []string{".5"}},
		{"5.", []tokenKind{tokenNum}, []string{"5."}},
		// identifiers
		{"e", []tokenKind{tokenIdent}, []string{"e"}},
		{"e1", []tokenKind{tokenIdent}, []string{"e1"}},
		{"π", []tokenKind{tokenIdent}, []string{"π"}},
		{"_a_", []tokenKind{tokenIdent}, []string{"_a_"}},
		// implicit operations
		{"2x", []tokenKind{tokenNum, tokenImplicit, tokenIdent}, []string{"2", "", "x"}},
		{"x y", []tokenKind{tokenIdent, tokenImplicit, tokenIdent}, []string{"x", "", "y"}},
		{"2(x)", []tokenKind{tokenNum, tokenImplicit, tokenOpen, tokenIdent, tokenClose}, []string{"2", "", "(", "x", ")"}},
		{"(x)(y)", []tokenKind{tokenOpen, tokenIdent, tokenClose, tokenImplicit, tokenOpen, tokenIdent, tokenClose}, []string{"(", "x", ")", "", "(", "y", ")"}},
		{"3! x", []tokenKind{tokenNum, tokenPostfix, tokenImplicit, tokenIdent}, []string{"3", "!", "", "x"}},
		// calls
		{"f(x)", []tokenKind{tokenIdent, tokenCall, tokenOpen, tokenIdent, tokenClose}, []string{"f", "", "(", "x", ")"}},
		{"f (x)", []tokenKind{tokenIdent, tokenImplicit, tokenOpen, tokenIdent, tokenClose}, []string{"f", "", "(", "x", ")"}},
		{"f[x]", []tokenKind{tokenIdent, tokenImplicit, tokenOpen, tokenIdent, tokenClose}, []string{"f", "", "[", "x", "]"}},
		// operators
		{"-1", []tokenKind{tokenUnary, tokenNum}, []string{"-", "1"}},
		{"+1", []tokenKind{tokenUnary, tokenNum}, []string{"+", "1"}},
		{"1-1", []tokenKind{tokenNum, tokenOp, tokenNum}, []string{"1", "-", "1"}},
		{"1--1", []tokenKind{tokenNum, tokenOp, tokenUnary, tokenNum}, []string{"1", "-", "-", "1"}},
		{"1×2÷3", []tokenKind{tokenNum, tokenOp, tokenNum, tokenOp, tokenNum}, []string{"1", "×", "2", "÷", "3"}},
		{"a<=b", []tokenKind{tokenIdent, tokenOp, tokenIdent}, []string{"a", "<=", "b"}},
		{"a:=b", []tokenKind{tokenIdent, tokenOp, tokenIdent}, []string{"a", ":=", "b"}},
		{"a=:b", []tokenKind{tokenIdent, tokenOp, tokenIdent}, []string{"a", "=:", "b"}},
		{"a->b", []tokenKind{tokenIdent, tokenOp, tokenIdent}, []string{"a", "->", "b"}},
		{"a;b", []tokenKind{tokenIdent, tokenOp, tokenIdent}, []string{"a", ";", "b"}},
		{"x²%°", []tokenKind{tokenIdent, tokenPostfix, tokenPostfix, tokenPostfix}, []string{"x", "²", "%", "°"}},
		// groups
		{"[1, 2]", []tokenKind{tokenOpen, tokenNum, tokenSep, tokenNum, tokenClose}, []string{"[", "1", ",", "2", "]"}},
		{"|x|", []tokenKind{tokenOpen, tokenIdent, tokenClose}, []string{"|", "x", "|"}},
		{"||x||", []tokenKind{tokenOpen, tokenOpen, tokenIdent, tokenClose, tokenClose}, []string{"|", "|", "x", "|", "|"}},
		{"|x|y|z|", []tokenKind{tokenOpen, tokenIdent, tokenClose, tokenImplicit, tokenIdent, tokenImplicit, tokenOpen, tokenIdent, tokenClose}, []string{"|", "x", "|", "", "y", "", "|", "z", "|"}},
		{"|-x|", []tokenKind{tokenOpen, tokenUnary, tokenIdent, tokenClose}, []string{"|", "-", "x", "|"}},
		{"|(x|", []tokenKind{tokenOpen, tokenOpen, tokenIdent, tokenImplicit, tokenOpen}, []string{"|", "(", "x", "", "|"}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			ks, ts, err := kinds(c.src, "")
			if err != nil {
				t.Fatalf("lexing %q: %v", c.src, err)
			}
			if !reflect.DeepEqual(ks, c.kinds) {
				t.Errorf("lexing %q: want kinds %v, got %v", c.src, c.kinds, ks)
			}
			if !reflect.DeepEqual(ts, c.texts) {
				t.Errorf("lexing %q: want texts %q, got %q", c.src, c.texts, ts)
			}
		})
	}
}

func TestLexValues(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"12", "12"},
		{"0.25", "1/4"},
		{"2.50", "5/2"},
		{"5.", "5"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
	}
	for _, c := range cases {
		l := lex(strings.NewReader(c.src), "")
		tok, err := l.next()
		if err != nil {
			t.Fatalf("lexing %q: %v", c.src, err)
		}
		if tok.val == nil {
			t.Fatalf("no value for %v", tok)
		}
		if got := tok.val.String(); got != c.want {
			t.Errorf("value of %q: want %s, got %s", c.src, c.want, got)
		}
		if !tok.val.IsPrecise() {
			t.Errorf("value of %q is not exact", c.src)
		}
	}
}

func TestLexPositions(t *testing.T) {
	l := lex(strings.NewReader(" ab  + π2"), "")
	want := []int{2, 6, 8}
	for _, p := range want {
		tok, err := l.next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.pos != p {
			t.Errorf("%v: want position %d", tok, p)
		}
	}
	tok, err := l.next()
	if err != nil || tok.kind != tokenEOF {
		t.Errorf("want EOF, got %v, %v", tok, err)
	}
	if _, err := l.next(); err != io.EOF {
		t.Errorf("second EOF: want io.EOF, got %v", err)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind string
	}{
		{"$", ""},
		{"a$", ""},
		{"1.2.3", "number"},
		{".", "number"},
		{"a : b", "operator"},
		{"a:", "operator"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, _, err := kinds(c.src, "")
			var lerr *LexError
			if !errors.As(err, &lerr) {
				t.Fatalf("lexing %q: want LexError, got %v", c.src, err)
			}
			if lerr.Kind != c.kind {
				t.Errorf("lexing %q: want kind %q, got %q", c.src, c.kind, lerr.Kind)
			}
			if !IsSyntax(err) {
				t.Errorf("lexing %q: %v is not a syntax error", c.src, err)
			}
		})
	}
}

func TestLexStopOn(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		kinds []tokenKind
		rest  string
	}{
		{"complete", "1 + 2\n3", []tokenKind{tokenNum, tokenOp, tokenNum}, "3"},
		{"operator", "1 +\n2\n3", []tokenKind{tokenNum, tokenOp, tokenNum}, "3"},
		{"brackets", "(1\n+ 2)\n3", []tokenKind{tokenOpen, tokenNum, tokenOp, tokenNum, tokenClose}, "3"},
		{"bars", "|1\n|\n3", []tokenKind{tokenOpen, tokenNum, tokenClose}, "3"},
		{"leading", "\n\n1\n3", []tokenKind{tokenNum}, "3"},
		{"other space", "1 2\n3", []tokenKind{tokenNum, tokenImplicit, tokenNum}, "3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			l := lex(src, "\n")
			var ks []tokenKind
			for {
				tok, err := l.next()
				if err != nil {
					t.Fatal(err)
				}
				if tok.kind == tokenEOF {
					break
				}
				ks = append(ks, tok.kind)
			}
			if !reflect.DeepEqual(ks, c.kinds) {
				t.Errorf("want kinds %v, got %v", c.kinds, ks)
			}
			var rest strings.Builder
			if _, err := io.Copy(&rest, src); err != nil {
				t.Fatal(err)
			}
			if rest.String() != c.rest {
				t.Errorf("want %q left, got %q", c.rest, rest.String())
			}
		})
	}
}
