package number_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Rc-Cookie/calculator-sub000/number"
)

func TestSpecialExact(t *testing.T) {
	cases := []struct {
		fn   number.Func
		x    number.Number
		want string
	}{
		{number.Sqrt, rat(t, 9, 4), "3/2"},
		{number.Sqrt, number.Zero, "0"},
		{number.Cbrt, number.Int(-27), "-3"},
		{number.Exp, number.Zero, "1"},
		{number.Ln, number.One, "0"},
		{number.Sin, number.Zero, "0"},
		{number.Cos, number.Zero, "1"},
		{number.Atan, number.Zero, "0"},
		{number.Acos, number.One, "0"},
		{number.Cosh, number.Zero, "1"},
		{number.Gamma, number.Int(5), "24"},
		{number.Gamma, number.One, "1"},
		{number.Sqrt, number.NewPreciseApprox(6.25), "2.5"},
	}
	for _, c := range cases {
		t.Run(c.fn.String(), func(t *testing.T) {
			r, err := number.Special(c.fn, c.x, number.Precision{})
			if err != nil {
				t.Fatal(err)
			}
			if r.String() != c.want {
				t.Errorf("%v(%v) = %v, want %s", c.fn, c.x, r, c.want)
			}
			if !r.IsPrecise() {
				t.Errorf("%v(%v) = %v is not precise", c.fn, c.x, r)
			}
		})
	}
}

func TestSpecialApprox(t *testing.T) {
	half := rat(t, 1, 2)
	cases := []struct {
		fn   number.Func
		x    number.Number
		want float64
		tol  float64
	}{
		{number.Sqrt, number.Int(2), math.Sqrt2, 1e-15},
		{number.Cbrt, number.Int(2), math.Cbrt(2), 1e-15},
		{number.Exp, number.One, math.E, 1e-15},
		{number.Ln, number.Int(10), math.Ln10, 1e-15},
		{number.Sin, half, math.Sin(0.5), 1e-15},
		{number.Cos, number.Int(100), math.Cos(100), 1e-14},
		{number.Tan, half, math.Tan(0.5), 1e-15},
		{number.Asin, half, math.Asin(0.5), 1e-15},
		{number.Acos, half, math.Acos(0.5), 1e-15},
		{number.Atan, number.Int(3), math.Atan(3), 1e-15},
		{number.Sinh, half, math.Sinh(0.5), 1e-15},
		{number.Cosh, half, math.Cosh(0.5), 1e-15},
		{number.Tanh, half, math.Tanh(0.5), 1e-15},
		{number.Asinh, number.Int(-2), math.Asinh(-2), 1e-15},
		{number.Acosh, number.Int(2), math.Acosh(2), 1e-15},
		{number.Atanh, half, math.Atanh(0.5), 1e-15},
		{number.Gamma, half, math.Sqrt(math.Pi), 1e-14},
		{number.Gamma, rat(t, -1, 2), -2 * math.Sqrt(math.Pi), 1e-14},
		{number.Gamma, number.NewApprox(4.5), math.Gamma(4.5), 1e-12},
	}
	for _, c := range cases {
		t.Run(c.fn.String(), func(t *testing.T) {
			r, err := number.Special(c.fn, c.x, number.Precision{})
			if err != nil {
				t.Fatal(err)
			}
			a, ok := r.(number.Approx)
			if !ok {
				t.Fatalf("%v(%v) has type %T", c.fn, c.x, r)
			}
			if a.IsPrecise() {
				t.Errorf("%v(%v) = %v is precise", c.fn, c.x, r)
			}
			if math.Abs(a.Float64()-c.want) > c.tol*math.Max(1, math.Abs(c.want)) {
				t.Errorf("%v(%v) = %v, want %v", c.fn, c.x, r, c.want)
			}
		})
	}
}

func TestSpecialDomain(t *testing.T) {
	cases := []struct {
		fn number.Func
		x  number.Number
	}{
		{number.Ln, number.Zero},
		{number.Ln, number.Int(-1)},
		{number.Asin, number.Int(2)},
		{number.Acosh, number.Zero},
		{number.Atanh, number.One},
		{number.Gamma, number.Zero},
		{number.Gamma, number.Int(-3)},
	}
	for _, c := range cases {
		t.Run(c.fn.String(), func(t *testing.T) {
			_, err := number.Special(c.fn, c.x, number.Precision{})
			var de *number.DomainError
			if !errors.As(err, &de) {
				t.Errorf("%v(%v) gave %v, want domain error", c.fn, c.x, err)
			}
		})
	}
	_, err := number.Special(number.Sin, number.NewVector(number.One), number.Precision{})
	var ue *number.UnsupportedError
	if !errors.As(err, &ue) {
		t.Errorf("sin of a vector gave %v, want unsupported error", err)
	}
}

func TestSpecialNegativeSqrt(t *testing.T) {
	r, err := number.Special(number.Sqrt, number.Int(-4), number.Precision{})
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "2i" {
		t.Errorf("sqrt(-4) = %v, want 2i", r)
	}
}

func TestSpecialPrecision(t *testing.T) {
	pi := number.Pi(number.Precision{Digits: 40})
	if _, ok := pi.(number.BigApprox); !ok {
		t.Errorf("pi to 40 digits has type %T", pi)
	}
	const want = "3.1415926535897932384626433832795028841971"
	if !strings.HasPrefix(pi.String(), want) {
		t.Errorf("pi = %v, want prefix %s", pi, want)
	}
	e := number.E(number.Precision{Digits: 30})
	if !strings.HasPrefix(e.String(), "2.7182818284590452353602874713") {
		t.Errorf("e = %v", e)
	}
	if p := number.Pi(number.Precision{}); p.Float64() != math.Pi {
		t.Errorf("machine pi = %v", p)
	}
	s, err := number.Special(number.Sqrt, number.Int(2), number.Precision{Digits: 30})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(s.String(), "1.41421356237309504880168872420") {
		t.Errorf("sqrt(2) = %v", s)
	}
}

func TestAtan2(t *testing.T) {
	cases := []struct {
		y, x number.Real
		want float64
	}{
		{number.One, number.One, math.Pi / 4},
		{number.One, number.Zero, math.Pi / 2},
		{number.Zero, number.Int(-1), math.Pi},
		{number.Int(-1), number.Int(-1), -3 * math.Pi / 4},
	}
	for _, c := range cases {
		r, err := number.Atan2(c.y, c.x, number.Precision{})
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(r.Float64()-c.want) > 1e-15 {
			t.Errorf("atan2(%v, %v) = %v, want %v", c.y, c.x, r, c.want)
		}
	}
	if _, err := number.Atan2(number.Zero, number.Zero, number.Precision{}); err == nil {
		t.Error("no error for atan2(0, 0)")
	}
}
