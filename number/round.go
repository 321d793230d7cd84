package number

import (
	"math"
	"math/big"
)

// RoundMode selects the integer a value is rounded to.
type RoundMode int8

const (
	// Floor rounds toward negative infinity.
	Floor RoundMode = iota
	// Ceil rounds toward positive infinity.
	Ceil
	// Nearest rounds to the nearest integer, halves away from zero.
	Nearest
)

// Round rounds x to an integer. Exact values stay exact; approximations keep
// their kind and precise flag. Complex numbers round each part, and vectors
// and matrices round each element.
func Round(x Number, mode RoundMode) (Number, error) {
	switch x := x.(type) {
	case Real:
		return roundReal(x, mode), nil
	case Complex:
		return Complex{re: roundReal(x.Re(), mode), im: roundReal(x.Im(), mode)}.shrink(), nil
	case Vector:
		return x.Map(func(e Number) (Number, error) { return Round(e, mode) })
	case Matrix:
		return x.Map(func(e Number) (Number, error) { return Round(e, mode) })
	}
	return nil, &UnsupportedError{Op: "rounding", Kind: kindOf(x)}
}

func roundReal(x Real, mode RoundMode) Real {
	switch x := x.(type) {
	case Rational, BigRational:
		q, _ := x.exact()
		r := BigRational{r: new(big.Rat).SetInt(roundRat(q, mode))}.shrink()
		return r.(Real)
	case Approx:
		var f float64
		switch mode {
		case Floor:
			f = math.Floor(x.f)
		case Ceil:
			f = math.Ceil(x.f)
		default:
			f = math.Round(x.f)
		}
		return Approx{f: f, precise: x.precise}
	case BigApprox:
		z := x.float()
		if z.IsInf() {
			return x
		}
		q, _ := z.Rat(nil)
		r := newBigFloat(z.Prec()).SetInt(roundRat(q, mode))
		return BigApprox{f: r, precise: x.precise}
	}
	panic("number: cannot round " + x.String())
}

// roundRat rounds an exact rational to an integer.
func roundRat(q *big.Rat, mode RoundMode) *big.Int {
	n, d := q.Num(), q.Denom()
	// big.Int.Div is Euclidean, which is floor division for positive d.
	fl := new(big.Int).Div(n, d)
	switch mode {
	case Floor:
		return fl
	case Ceil:
		if q.IsInt() {
			return fl
		}
		return fl.Add(fl, big.NewInt(1))
	}
	// Nearest: compare the remainder against half of d.
	rem := new(big.Int).Mod(n, d)
	rem.Lsh(rem, 1)
	c := rem.Cmp(d)
	if c > 0 || c == 0 && q.Sign() > 0 {
		fl.Add(fl, big.NewInt(1))
	}
	return fl
}
