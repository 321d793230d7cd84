package number

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestIroot(t *testing.T) {
	cases := []struct {
		n     int64
		k     int
		root  int64
		exact bool
	}{
		{0, 3, 0, true},
		{1, 5, 1, true},
		{81, 2, 9, true},
		{80, 2, 8, false},
		{27, 3, 3, true},
		{28, 3, 3, false},
		{1 << 60, 6, 1 << 10, true},
		{3125, 5, 5, true},
	}
	for _, c := range cases {
		r, ok := iroot(big.NewInt(c.n), c.k)
		if ok != c.exact || (ok && r.Int64() != c.root) {
			t.Errorf("iroot(%d, %d) = %v, %t; want %d, %t", c.n, c.k, r, ok, c.root, c.exact)
		}
	}
}

func TestPow(t *testing.T) {
	r := func(n, d int64) Number { return rationalOf(n, d) }
	cases := []struct {
		name string
		a, b Number
		want string
	}{
		{"int", Int(2), Int(10), "1024"},
		{"neg-exp", Int(2), Int(-2), "1/4"},
		{"frac-base", r(-2, 3), Int(3), "-8/27"},
		{"zero-zero", Zero, Zero, "1"},
		{"x-zero", NewApprox(3.7), Zero, "1"},
		{"zero-pos", Zero, r(1, 2), "0"},
		{"sqrt", r(9, 4), r(1, 2), "3/2"},
		{"root-pow", Int(4), r(3, 2), "8"},
		{"neg-cbrt", Int(-8), r(1, 3), "-2"},
		{"neg-even", Int(-8), r(2, 3), "4"},
		{"big", Int(10), Int(30), "1000000000000000000000000000000"},
		{"precise-approx", NewPreciseApprox(1.5), Int(2), "2.25"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := c.a.Pow(c.b)
			if err != nil {
				t.Fatal(err)
			}
			if p.String() != c.want {
				t.Errorf("%v^%v = %v, want %s", c.a, c.b, p, c.want)
			}
			if c.a.IsPrecise() && c.b.IsPrecise() && !p.IsPrecise() {
				t.Errorf("%v^%v = %v is not precise", c.a, c.b, p)
			}
		})
	}
}

func TestPowApprox(t *testing.T) {
	p, err := Int(2).Pow(rationalOf(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	a, ok := p.(Approx)
	if !ok {
		t.Fatalf("2^(1/2) has type %T", p)
	}
	if a.IsPrecise() {
		t.Error("2^(1/2) is precise")
	}
	if math.Abs(a.Float64()-math.Sqrt2) > 1e-15 {
		t.Errorf("2^(1/2) = %v", a)
	}
	p, err = NewBigRational(big.NewRat(3, 1)).Pow(NewApprox(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(BigApprox); !ok {
		t.Errorf("big rational to approx power has type %T", p)
	}
}

func TestPowErrors(t *testing.T) {
	_, err := Zero.Pow(Int(-1))
	var de *DomainError
	if !errors.As(err, &de) {
		t.Errorf("0^-1 gave %v, want domain error", err)
	}
}

func TestPowComplex(t *testing.T) {
	p, err := Int(-1).Pow(rationalOf(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	c, ok := p.(Complex)
	if !ok {
		t.Fatalf("(-1)^(1/2) has type %T", p)
	}
	if math.Abs(c.Re().Float64()) > 1e-15 || math.Abs(c.Im().Float64()-1) > 1e-15 {
		t.Errorf("(-1)^(1/2) = %v", c)
	}
}
