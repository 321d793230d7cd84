package number

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// maxExactExponent bounds exponents for which an approximation is raised by
// exact rational arithmetic to keep its precise flag.
const maxExactExponent = 1024

// maxRootIndex bounds the root index tried when looking for exact roots.
const maxRootIndex = 64

// realPow computes a ^ b. x^0 is 1 for every x, including 0^0; 0 to a
// negative power is a domain error.
func realPow(a, b Real) (Number, error) {
	if b.Sign() == 0 {
		return One, nil
	}
	if a.Sign() == 0 {
		if b.Sign() < 0 {
			return nil, &DomainError{X: b, Func: "0^x"}
		}
		return a, nil
	}
	q, exact := b.exact()
	if exact && q.IsInt() {
		return intPow(a, q.Num())
	}
	if exact {
		if p, ok := a.exact(); ok && isExactType(a) {
			// p^(n/d) is exact when p has an exact d-th root.
			if r, ok := ratRoot(p, q.Denom()); ok {
				return intPow(BigRational{r: r}.shrink().(Real), q.Num())
			}
		}
	}
	if a.Sign() < 0 {
		if exact && q.Denom().Bit(0) == 1 {
			// Odd root of a negative number is real.
			m, err := realPow(a.Neg().(Real), b)
			if err != nil {
				return nil, err
			}
			if q.Num().Bit(0) == 1 {
				return m.Neg(), nil
			}
			return m, nil
		}
		return complexPow(Complex{re: a, im: Zero}, b)
	}
	switch promote(a.rank(), b.rank()) {
	case rankRational, rankApprox:
		x, y := a.Float64(), b.Float64()
		f := math.Pow(x, y)
		if !math.IsInf(f, 0) {
			// Best-effort exactness: undo the power and compare.
			precise := a.IsPrecise() && b.IsPrecise() && math.Pow(f, 1/y) == x
			return Approx{f: f, precise: precise}, nil
		}
	}
	x, y := a.bigFloat(BigPrec), b.bigFloat(BigPrec)
	z := newBigFloat(BigPrec)
	bigfloat.Pow(z, x, y)
	return BigApprox{f: z}, nil
}

func isExactType(x Real) bool {
	r := x.rank()
	return r == rankRational || r == rankBigRational
}

// intPow raises a to the integer power n, n != 0.
func intPow(a Real, n *big.Int) (Number, error) {
	neg := n.Sign() < 0
	m := new(big.Int).Abs(n)
	if isExactType(a) {
		p, _ := a.exact()
		num := new(big.Int).Exp(p.Num(), m, nil)
		den := new(big.Int).Exp(p.Denom(), m, nil)
		if neg {
			num, den = den, num
		}
		if den.Sign() < 0 {
			num.Neg(num)
			den.Neg(den)
		}
		return BigRational{r: new(big.Rat).SetFrac(num, den)}.shrink(), nil
	}
	if a.IsPrecise() && m.IsInt64() && m.Int64() <= maxExactExponent {
		p, _ := a.exact()
		r, err := intPow(BigRational{r: p}, n)
		if err != nil {
			return nil, err
		}
		e, _ := r.(Real).exact()
		if a.rank() == rankApprox {
			if x := approxOf(e); !math.IsInf(x.f, 0) {
				return x, nil
			}
		}
		return bigApproxOf(e, a.bigFloat(BigPrec).Prec()), nil
	}
	if a.rank() == rankApprox && m.IsInt64() {
		f := math.Pow(a.Float64(), float64(n.Int64()))
		if !math.IsInf(f, 0) && f != 0 {
			return Approx{f: f}, nil
		}
	}
	// Square and multiply in big.Float.
	x := toBigApprox(a).float()
	z := newBigFloat(x.Prec()).SetInt64(1)
	sq := newBigFloat(x.Prec()).Set(x)
	for i := 0; i < m.BitLen(); i++ {
		if m.Bit(i) == 1 {
			z.Mul(z, sq)
		}
		sq.Mul(sq, sq)
	}
	if neg {
		z.Quo(newBigFloat(z.Prec()).SetInt64(1), z)
	}
	return BigApprox{f: z}, nil
}

// ratRoot returns the exact d-th root of q if there is one. q must not be
// negative.
func ratRoot(q *big.Rat, d *big.Int) (*big.Rat, bool) {
	if q.Sign() < 0 || !d.IsInt64() || d.Int64() > maxRootIndex {
		return nil, false
	}
	k := int(d.Int64())
	num, ok := iroot(q.Num(), k)
	if !ok {
		return nil, false
	}
	den, ok := iroot(q.Denom(), k)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

// iroot returns the k-th root of n if n is a perfect k-th power, n >= 0.
func iroot(n *big.Int, k int) (*big.Int, bool) {
	if n.Sign() == 0 || k == 1 {
		return new(big.Int).Set(n), true
	}
	if k == 2 {
		r := new(big.Int).Sqrt(n)
		return r, new(big.Int).Mul(r, r).Cmp(n) == 0
	}
	// Newton's method from above: x <- ((k-1)x + n/x^(k-1)) / k.
	bk := big.NewInt(int64(k))
	bk1 := big.NewInt(int64(k - 1))
	x := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()/k+1))
	t := new(big.Int)
	y := new(big.Int)
	for {
		t.Exp(x, bk1, nil)
		t.Quo(n, t)
		y.Mul(x, bk1)
		y.Add(y, t)
		y.Quo(y, bk)
		if y.Cmp(x) >= 0 {
			break
		}
		x.Set(y)
	}
	return x, t.Exp(x, bk, nil).Cmp(n) == 0
}
