package number

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func identifies a special function computed by Special.
type Func int8

const (
	Sqrt Func = iota
	Cbrt
	Exp
	Ln
	Sin
	Cos
	Tan
	Asin
	Acos
	Atan
	Sinh
	Cosh
	Tanh
	Asinh
	Acosh
	Atanh
	Gamma
)

var funcNames = [...]string{
	Sqrt:  "sqrt",
	Cbrt:  "cbrt",
	Exp:   "exp",
	Ln:    "ln",
	Sin:   "sin",
	Cos:   "cos",
	Tan:   "tan",
	Asin:  "asin",
	Acos:  "acos",
	Atan:  "atan",
	Sinh:  "sinh",
	Cosh:  "cosh",
	Tanh:  "tanh",
	Asinh: "asinh",
	Acosh: "acosh",
	Atanh: "atanh",
	Gamma: "gamma",
}

func (fn Func) String() string {
	if fn < 0 || int(fn) >= len(funcNames) {
		return "Func(" + strconv.Itoa(int(fn)) + ")"
	}
	return funcNames[fn]
}

// Precision is a requested precision for special functions.
type Precision struct {
	// Digits is the number of significant decimal digits required. Zero
	// derives the precision from the operand: machine precision for Rational
	// and Approx, BigPrec bits for the big variants.
	Digits int
}

// guardDigits are computed beyond the requested precision before the final
// rounding.
const guardDigits = 2

// target returns the result precision in bits and whether the result must be
// a BigApprox.
func (p Precision) target(x Real) (bits uint, wide bool) {
	if p.Digits > 0 {
		bits = uint(math.Ceil(float64(p.Digits) * math.Log2(10)))
		return bits, p.Digits > 15 || x.rank() == rankBigApprox || x.rank() == rankBigRational
	}
	switch x.rank() {
	case rankRational, rankApprox:
		return 53, false
	}
	if b, ok := x.(BigApprox); ok && b.float().Prec() > BigPrec {
		return b.float().Prec(), true
	}
	return BigPrec, true
}

// work returns the working precision for a result of the given bits.
func work(bits uint) uint {
	return bits + uint(math.Ceil(guardDigits*math.Log2(10))) + 16
}

// Special computes fn(x) to precision p. Results are approximations that are
// not precise, except for arguments where the result is known to be exact,
// such as ln(1) or sqrt(9/4). Complex arguments are supported for Sqrt, Exp,
// and Ln.
func Special(fn Func, x Number, p Precision) (Number, error) {
	switch x := x.(type) {
	case Real:
		return specialReal(fn, x, p)
	case Complex:
		if r, ok := AsReal(x); ok {
			return specialReal(fn, r, p)
		}
		return specialComplex(fn, x, p)
	}
	return nil, &UnsupportedError{Op: fn.String(), Kind: kindOf(x)}
}

func specialReal(fn Func, x Real, p Precision) (Number, error) {
	if r, ok := exactSpecial(fn, x); ok {
		return r, nil
	}
	bits, wide := p.target(x)
	w := work(bits)
	// Trigonometric reduction loses as many bits as the integer part has.
	wx := w + extraBits(x)
	v := x.bigFloat(wx)
	var z *big.Float
	switch fn {
	case Sqrt:
		if v.Sign() < 0 {
			r, err := specialReal(Sqrt, x.Neg().(Real), p)
			if err != nil {
				return nil, err
			}
			return Complex{re: Zero, im: r.(Real)}, nil
		}
		z = newFloat(w).Sqrt(v)
	case Cbrt:
		a := newFloat(w).Abs(v)
		z = bigfloat.Pow(newFloat(w), a, newFloat(w).Quo(newFloat(w).SetInt64(1), newFloat(w).SetInt64(3)))
		if v.Sign() < 0 {
			z.Neg(z)
		}
	case Exp:
		z = bigExp(w, v)
	case Ln:
		if v.Sign() <= 0 {
			return nil, &DomainError{X: x, Func: fn.String()}
		}
		z = bigfloat.Log(newFloat(w), v)
	case Sin:
		z = bigSin(wx, v)
	case Cos:
		z = bigCos(wx, v)
	case Tan:
		c := bigCos(wx, v)
		if c.Sign() == 0 {
			return nil, &DomainError{X: x, Func: fn.String()}
		}
		z = newFloat(w).Quo(bigSin(wx, v), c)
	case Asin, Acos:
		one := newFloat(w).SetInt64(1)
		if newFloat(w).Abs(v).Cmp(one) > 0 {
			return nil, &DomainError{X: x, Func: fn.String()}
		}
		z = bigAsin(w, v)
		if fn == Acos {
			h := bigPi(w)
			h.SetMantExp(h, -1)
			z.Sub(h, z)
		}
	case Atan:
		z = bigAtan(w, v)
	case Sinh, Cosh, Tanh:
		e := bigExp(w, v)
		ie := newFloat(w).Quo(newFloat(w).SetInt64(1), e)
		s := newFloat(w).Sub(e, ie)
		c := newFloat(w).Add(e, ie)
		switch fn {
		case Sinh:
			z = s.SetMantExp(s, -1)
		case Cosh:
			z = c.SetMantExp(c, -1)
		default:
			z = s.Quo(s, c)
		}
	case Asinh:
		a := newFloat(w).Abs(v)
		t := newFloat(w).Mul(a, a)
		t.Add(t, newFloat(w).SetInt64(1))
		t.Sqrt(t).Add(t, a)
		z = bigfloat.Log(newFloat(w), t)
		if v.Sign() < 0 {
			z.Neg(z)
		}
	case Acosh:
		one := newFloat(w).SetInt64(1)
		if v.Cmp(one) < 0 {
			return nil, &DomainError{X: x, Func: fn.String()}
		}
		t := newFloat(w).Mul(v, v)
		t.Sub(t, one)
		t.Sqrt(t).Add(t, v)
		z = bigfloat.Log(newFloat(w), t)
	case Atanh:
		one := newFloat(w).SetInt64(1)
		if newFloat(w).Abs(v).Cmp(one) >= 0 {
			return nil, &DomainError{X: x, Func: fn.String()}
		}
		t := newFloat(w).Add(one, v)
		t.Quo(t, newFloat(w).Sub(one, v))
		z = bigfloat.Log(newFloat(w), t)
		z.SetMantExp(z, -1)
	case Gamma:
		if IsInteger(x) && x.Sign() <= 0 {
			return nil, &DomainError{X: x, Func: fn.String()}
		}
		z = bigGamma(w, v)
	default:
		panic("number: invalid special function " + fn.String())
	}
	return round(z, bits, wide), nil
}

// round converts a working-precision result to the requested precision.
func round(z *big.Float, bits uint, wide bool) Real {
	if !wide {
		return fromBigFloat(z, false)
	}
	return BigApprox{f: newBigFloat(bits).Set(z)}
}

func newFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

// extraBits is the additional precision needed to reduce x modulo 2pi.
func extraBits(x Real) uint {
	e := x.bigFloat(64).MantExp(nil)
	if e <= 0 {
		return 0
	}
	return uint(e)
}

// exactSpecial handles arguments with exactly known results.
func exactSpecial(fn Func, x Real) (Real, bool) {
	q, ok := x.exact()
	if !ok {
		return nil, false
	}
	switch fn {
	case Sqrt, Cbrt:
		k := int64(2)
		if fn == Cbrt {
			k = 3
		}
		neg := q.Sign() < 0
		if neg && fn == Sqrt {
			return nil, false
		}
		a := new(big.Rat).Abs(q)
		r, ok := ratRoot(a, big.NewInt(k))
		if !ok {
			return nil, false
		}
		if neg {
			r.Neg(r)
		}
		return sameKind(x, r), true
	case Exp, Cosh:
		if q.Sign() == 0 {
			return sameKind(x, big.NewRat(1, 1)), true
		}
	case Ln, Acosh:
		if q.Cmp(big.NewRat(1, 1)) == 0 {
			return sameKind(x, new(big.Rat)), true
		}
	case Sin, Tan, Asin, Atan, Sinh, Tanh, Asinh, Atanh:
		if q.Sign() == 0 {
			return sameKind(x, new(big.Rat)), true
		}
	case Cos:
		if q.Sign() == 0 {
			return sameKind(x, big.NewRat(1, 1)), true
		}
	case Acos:
		if q.Cmp(big.NewRat(1, 1)) == 0 {
			return sameKind(x, new(big.Rat)), true
		}
	case Gamma:
		// gamma(n) = (n-1)! for positive integers.
		if q.IsInt() && q.Sign() > 0 && q.Num().IsInt64() && q.Num().Int64() <= 1000 {
			f := new(big.Int).MulRange(1, q.Num().Int64()-1)
			return sameKind(x, new(big.Rat).SetInt(f)), true
		}
	}
	return nil, false
}

// sameKind represents an exact result in the family of x: exact types stay
// exact, approximations stay approximations with the precise flag set.
func sameKind(x Real, q *big.Rat) Real {
	switch x.rank() {
	case rankRational, rankBigRational:
		return BigRational{r: q}.shrink().(Real)
	case rankApprox:
		if a := approxOf(q); a.precise {
			return a
		}
	}
	return bigApproxOf(q, x.bigFloat(BigPrec).Prec())
}

// Pi returns pi to precision p. Digits of 0 gives an Approx.
func Pi(p Precision) Real {
	bits, wide := p.target(Zero)
	return round(bigPi(work(bits)), bits, wide)
}

// E returns Euler's number to precision p. Digits of 0 gives an Approx.
func E(p Precision) Real {
	bits, wide := p.target(Zero)
	w := work(bits)
	return round(bigExp(w, newFloat(w).SetInt64(1)), bits, wide)
}

// Atan2 returns the angle of the point (x, y) in (-pi, pi].
func Atan2(y, x Real, p Precision) (Real, error) {
	if y.Sign() == 0 && x.Sign() == 0 {
		return nil, &DomainError{X: Complex{re: x, im: y}, Func: "arg"}
	}
	if y.Sign() == 0 && x.Sign() > 0 {
		return sameKind(x, new(big.Rat)), nil
	}
	bits, wide := p.target(x)
	if by, w2 := p.target(y); by > bits || w2 {
		bits, wide = by, wide || w2
	}
	w := work(bits)
	z := bigAtan2(w, y.bigFloat(w), x.bigFloat(w))
	return round(z, bits, wide), nil
}

func bigPi(prec uint) *big.Float {
	return bigfloat.Pi(newFloat(prec))
}

func bigExp(prec uint, x *big.Float) *big.Float {
	return bigfloat.Exp(newFloat(prec), x)
}

// reduce returns x modulo 2pi in [-pi, pi].
func reduce(prec uint, x *big.Float) *big.Float {
	pi := bigPi(prec)
	if newFloat(prec).Abs(x).Cmp(pi) <= 0 {
		return newFloat(prec).Set(x)
	}
	tau := newFloat(prec).SetMantExp(pi, 1)
	q := newFloat(prec).Quo(x, tau)
	n, _ := q.Int(nil)
	if q.Sign() < 0 && !q.IsInt() {
		n.Sub(n, big.NewInt(1))
	}
	r := newFloat(prec).Sub(x, newFloat(prec).Mul(newFloat(prec).SetInt(n), tau))
	if r.Cmp(pi) > 0 {
		r.Sub(r, tau)
	}
	return r
}

// bigSin sums the Taylor series of sin after reducing the argument.
func bigSin(prec uint, x *big.Float) *big.Float {
	return taylor(prec, reduce(prec, x), 1)
}

func bigCos(prec uint, x *big.Float) *big.Float {
	return taylor(prec, reduce(prec, x), 0)
}

// taylor sums x^k/k! - x^(k+2)/(k+2)! + ... with k = 1 for sin and k = 0 for
// cos.
func taylor(prec uint, x *big.Float, k int64) *big.Float {
	sum := newFloat(prec)
	term := newFloat(prec).SetInt64(1)
	if k == 1 {
		term.Set(x)
	}
	x2 := newFloat(prec).Mul(x, x)
	eps := newFloat(prec).SetMantExp(newFloat(prec).SetInt64(1), -int(prec))
	for n := k; ; n += 2 {
		sum.Add(sum, term)
		term.Mul(term, x2)
		term.Quo(term, newFloat(prec).SetInt64((n+1)*(n+2)))
		term.Neg(term)
		if term.Sign() == 0 || newFloat(prec).Abs(term).Cmp(eps) < 0 {
			return sum
		}
	}
}

// bigAtan reduces x with atan(x) = 2 atan(x / (1 + sqrt(1 + x^2))) until it
// is small, then sums the series.
func bigAtan(prec uint, x *big.Float) *big.Float {
	one := newFloat(prec).SetInt64(1)
	small := newFloat(prec).SetFloat64(0.125)
	t := newFloat(prec).Set(x)
	doublings := 0
	for newFloat(prec).Abs(t).Cmp(small) > 0 {
		d := newFloat(prec).Mul(t, t)
		d.Add(d, one).Sqrt(d).Add(d, one)
		t.Quo(t, d)
		doublings++
	}
	sum := newFloat(prec)
	pow := newFloat(prec).Set(t)
	t2 := newFloat(prec).Mul(t, t)
	eps := newFloat(prec).SetMantExp(one, -int(prec))
	for n := int64(1); ; n += 2 {
		term := newFloat(prec).Quo(pow, newFloat(prec).SetInt64(n))
		if n%4 == 3 {
			term.Neg(term)
		}
		sum.Add(sum, term)
		if pow.Sign() == 0 || newFloat(prec).Abs(term).Cmp(eps) < 0 {
			break
		}
		pow.Mul(pow, t2)
	}
	return sum.SetMantExp(sum, doublings)
}

// bigAsin computes asin(x) = atan(x / sqrt(1 - x^2)) for |x| <= 1.
func bigAsin(prec uint, x *big.Float) *big.Float {
	one := newFloat(prec).SetInt64(1)
	d := newFloat(prec).Mul(x, x)
	d.Sub(one, d)
	if d.Sign() == 0 {
		h := bigPi(prec)
		h.SetMantExp(h, -1)
		if x.Sign() < 0 {
			h.Neg(h)
		}
		return h
	}
	d.Sqrt(d)
	return bigAtan(prec, d.Quo(x, d))
}

func bigAtan2(prec uint, y, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		h := bigPi(prec)
		h.SetMantExp(h, -1)
		if y.Sign() < 0 {
			h.Neg(h)
		}
		return h
	}
	a := bigAtan(prec, newFloat(prec).Quo(y, x))
	if x.Sign() > 0 {
		return a
	}
	pi := bigPi(prec)
	if y.Sign() < 0 {
		return a.Sub(a, pi)
	}
	return a.Add(a, pi)
}

// bigGamma uses Spouge's approximation, with the reflection formula for
// arguments below one half.
func bigGamma(prec uint, x *big.Float) *big.Float {
	half := newFloat(prec).SetFloat64(0.5)
	if x.Cmp(half) < 0 {
		// gamma(x) = pi / (sin(pi x) gamma(1 - x))
		pi := bigPi(prec)
		s := bigSin(prec, newFloat(prec).Mul(pi, x))
		g := bigGamma(prec, newFloat(prec).Sub(newFloat(prec).SetInt64(1), x))
		return pi.Quo(pi, s.Mul(s, g))
	}
	// The coefficients alternate and grow, so work with twice the bits.
	wp := 2 * prec
	a := int64(math.Ceil(float64(prec)*math.Ln2/math.Log(2*math.Pi))) + 1
	z := newFloat(wp).Sub(x, newFloat(wp).SetInt64(1))
	twoPi := bigPi(wp)
	twoPi.SetMantExp(twoPi, 1)
	sum := newFloat(wp).Sqrt(twoPi)
	fact := newFloat(wp).SetInt64(1)
	for k := int64(1); k < a; k++ {
		if k > 1 {
			fact.Mul(fact, newFloat(wp).SetInt64(k-1))
		}
		ak := newFloat(wp).SetInt64(a - k)
		c := bigfloat.Pow(newFloat(wp), ak, newFloat(wp).SetFloat64(float64(k)-0.5))
		c.Mul(c, bigExp(wp, ak))
		c.Quo(c, fact)
		if k%2 == 0 {
			c.Neg(c)
		}
		c.Quo(c, newFloat(wp).Add(z, newFloat(wp).SetInt64(k)))
		sum.Add(sum, c)
	}
	za := newFloat(wp).Add(z, newFloat(wp).SetInt64(a))
	p := bigfloat.Pow(newFloat(wp), za, newFloat(wp).Add(z, newFloat(wp).SetFloat64(0.5)))
	e := bigExp(wp, newFloat(wp).Neg(za))
	p.Mul(p, e).Mul(p, sum)
	return newFloat(prec).Set(p)
}

func specialComplex(fn Func, z Complex, p Precision) (Number, error) {
	switch fn {
	case Sqrt:
		return complexSqrt(z, p)
	case Exp:
		return complexExp(z, p)
	case Ln:
		return complexLn(z, p)
	}
	return nil, &UnsupportedError{Op: fn.String(), Kind: "complex numbers"}
}

// complexSqrt uses sqrt(z) = sqrt((|z|+re)/2) + i sign(im) sqrt((|z|-re)/2).
func complexSqrt(z Complex, p Precision) (Number, error) {
	m, err := z.Abs()
	if err != nil {
		return nil, err
	}
	two := Int(2)
	parts := [2]Number{}
	for i, op := range [2]arithOp{opAdd, opSub} {
		s, err := apply(op, m, z.Re())
		if err != nil {
			return nil, err
		}
		if s, err = s.Div(two); err != nil {
			return nil, err
		}
		if parts[i], err = Special(Sqrt, s, p); err != nil {
			return nil, err
		}
	}
	im := parts[1]
	if z.Im().Sign() < 0 {
		im = im.Neg()
	}
	return NewComplex(parts[0], im)
}

// complexExp uses exp(a+bi) = e^a (cos b + i sin b).
func complexExp(z Complex, p Precision) (Number, error) {
	m, err := Special(Exp, z.Re(), p)
	if err != nil {
		return nil, err
	}
	c, err := Special(Cos, z.Im(), p)
	if err != nil {
		return nil, err
	}
	s, err := Special(Sin, z.Im(), p)
	if err != nil {
		return nil, err
	}
	re, err := m.Mul(c)
	if err != nil {
		return nil, err
	}
	im, err := m.Mul(s)
	if err != nil {
		return nil, err
	}
	return NewComplex(re, im)
}

// complexLn uses ln z = ln |z| + i arg z.
func complexLn(z Complex, p Precision) (Number, error) {
	m, err := z.Abs()
	if err != nil {
		return nil, err
	}
	re, err := Special(Ln, m, p)
	if err != nil {
		return nil, err
	}
	im, err := Atan2(z.Im(), z.Re(), p)
	if err != nil {
		return nil, err
	}
	return NewComplex(re, im)
}
