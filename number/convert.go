package number

import (
	"math"
	"math/big"
)

// toBigRational widens an exact real. It panics for approximations, which
// never promote to exact types.
func toBigRational(x Real) BigRational {
	switch x := x.(type) {
	case Rational:
		return x.big()
	case BigRational:
		return x
	}
	panic("number: cannot convert " + x.String() + " to big rational")
}

func toApprox(x Real) Approx {
	switch x := x.(type) {
	case Approx:
		return x
	case Rational, BigRational:
		q, _ := x.exact()
		return approxOf(q)
	}
	return Approx{f: x.Float64()}
}

func toBigApprox(x Real) BigApprox {
	switch x := x.(type) {
	case BigApprox:
		return x
	case Approx:
		return BigApprox{f: newBigFloat(BigPrec).SetFloat64(x.f), precise: x.precise}
	}
	q, _ := x.exact()
	return bigApproxOf(q, BigPrec)
}

// fromBigFloat converts a result computed in big.Float to an Approx, or to a
// BigApprox when wide is set or the value does not fit a float64.
func fromBigFloat(z *big.Float, wide bool) Real {
	if !wide {
		f, _ := z.Float64()
		if !math.IsInf(f, 0) && (f != 0 || z.Sign() == 0) {
			return Approx{f: f}
		}
	}
	return BigApprox{f: newBigFloat(z.Prec()).Set(z)}
}

// AsReal returns x as a Real if it is one, including a complex number whose
// imaginary part is exactly zero.
func AsReal(x Number) (Real, bool) {
	switch x := x.(type) {
	case Real:
		return x, true
	case Complex:
		if x.Im().Sign() == 0 && x.Im().IsPrecise() {
			return x.Re(), true
		}
	}
	return nil, false
}
