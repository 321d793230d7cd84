package number

import (
	"math"
	"math/big"
	"strconv"

	"github.com/nukata/goarith"
)

// Rational is an exact rational with 64-bit numerator and denominator. It is
// always reduced, with a positive denominator, and zero is 0/1. Results that
// do not fit move to BigRational.
type Rational struct {
	num, den int64
	// unset marks the Unspecified sentinel.
	unset bool
}

var (
	// Zero is the additive identity.
	Zero = Rational{num: 0, den: 1}
	// One is the multiplicative identity.
	One = Rational{num: 1, den: 1}
	// Unspecified stands in for an argument that was not supplied. It is
	// numerically zero.
	Unspecified = Rational{num: 0, den: 1, unset: true}
)

// IsUnspecified reports whether x is the Unspecified sentinel.
func IsUnspecified(x Number) bool {
	r, ok := x.(Rational)
	return ok && r.unset
}

// Int returns the rational n/1.
func Int(n int64) Rational {
	return Rational{num: n, den: 1}
}

// NewRational returns n/d in lowest terms. The result is a BigRational if
// normalizing it overflows int64.
func NewRational(n, d int64) (Number, error) {
	if d == 0 {
		return nil, divisionByZero("/")
	}
	return rationalOf(n, d), nil
}

// rationalOf reduces n/d, d != 0.
func rationalOf(n, d int64) Number {
	if n == math.MinInt64 || d == math.MinInt64 {
		return BigRational{r: big.NewRat(n, d)}.shrink()
	}
	if d < 0 {
		n, d = -n, -d
	}
	if n == 0 {
		return Zero
	}
	if g := gcd(n, d); g > 1 {
		n /= g
		d /= g
	}
	return Rational{num: n, den: d}
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

var (
	maxInt64 = goarith.AsNumber(int64(math.MaxInt64))
	minInt64 = goarith.AsNumber(int64(math.MinInt64))
)

// fits reports whether a goarith result is within the int64 range.
func fits(z goarith.Number) bool {
	return z.Cmp(maxInt64) <= 0 && z.Cmp(minInt64) >= 0
}

func mul64(a, b int64) (int64, bool) {
	if !fits(goarith.AsNumber(a).Mul(goarith.AsNumber(b))) {
		return 0, false
	}
	return a * b, true
}

func add64(a, b int64) (int64, bool) {
	if !fits(goarith.AsNumber(a).Add(goarith.AsNumber(b))) {
		return 0, false
	}
	return a + b, true
}

func sub64(a, b int64) (int64, bool) {
	if !fits(goarith.AsNumber(a).Sub(goarith.AsNumber(b))) {
		return 0, false
	}
	return a - b, true
}

// Num returns the numerator.
func (r Rational) Num() int64 { return r.num }

// Den returns the denominator.
func (r Rational) Den() int64 {
	if r.den == 0 {
		// The zero value of Rational is zero.
		return 1
	}
	return r.den
}

func (r Rational) String() string {
	if r.Den() == 1 {
		return strconv.FormatInt(r.num, 10)
	}
	return strconv.FormatInt(r.num, 10) + "/" + strconv.FormatInt(r.den, 10)
}

func (r Rational) IsPrecise() bool { return true }

func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	}
	return 0
}

func (r Rational) Float64() float64 {
	if r.Den() == 1 {
		return float64(r.num)
	}
	f, _ := big.NewRat(r.num, r.den).Float64()
	return f
}

func (r Rational) rank() rank { return rankRational }

func (r Rational) bigFloat(prec uint) *big.Float {
	f := new(big.Float).SetPrec(prec).SetInt64(r.num)
	if d := r.Den(); d != 1 {
		f.Quo(f, new(big.Float).SetPrec(prec).SetInt64(d))
	}
	return f
}

func (r Rational) exact() (*big.Rat, bool) {
	return big.NewRat(r.num, r.Den()), true
}

func (r Rational) big() BigRational {
	return BigRational{r: big.NewRat(r.num, r.Den())}
}

// arith computes r op s exactly, falling back to big rationals on overflow.
func (r Rational) arith(op arithOp, s Rational) (Number, error) {
	rd, sd := r.Den(), s.Den()
	switch op {
	case opAdd, opSub:
		a, ok1 := mul64(r.num, sd)
		b, ok2 := mul64(s.num, rd)
		d, ok3 := mul64(rd, sd)
		if ok1 && ok2 && ok3 {
			var n int64
			var ok bool
			if op == opAdd {
				n, ok = add64(a, b)
			} else {
				n, ok = sub64(a, b)
			}
			if ok {
				return rationalOf(n, d), nil
			}
		}
	case opMul:
		// Cross-reduce first to keep the products small.
		g1, g2 := gcd(r.num, sd), gcd(s.num, rd)
		if g1 == 0 {
			g1 = 1
		}
		if g2 == 0 {
			g2 = 1
		}
		n, ok1 := mul64(r.num/g1, s.num/g2)
		d, ok2 := mul64(rd/g2, sd/g1)
		if ok1 && ok2 {
			return rationalOf(n, d), nil
		}
	case opDiv:
		if s.num == 0 {
			return nil, divisionByZero("/")
		}
		if s.num != math.MinInt64 {
			return r.arith(opMul, Rational{num: sd, den: s.num}.norm())
		}
	default:
		panic("number: invalid rational op " + op.String())
	}
	return r.big().arith(op, s.big())
}

// norm fixes the sign of a rational whose denominator may be negative.
func (r Rational) norm() Rational {
	if r.den < 0 {
		return Rational{num: -r.num, den: -r.den}
	}
	return r
}

func (r Rational) Add(x Number) (Number, error)      { return dispatchReal(opAdd, r, x) }
func (r Rational) Sub(x Number) (Number, error)      { return dispatchReal(opSub, r, x) }
func (r Rational) SubFrom(x Number) (Number, error)  { return dispatchReal(opSubFrom, r, x) }
func (r Rational) Mul(x Number) (Number, error)      { return dispatchReal(opMul, r, x) }
func (r Rational) Div(x Number) (Number, error)      { return dispatchReal(opDiv, r, x) }
func (r Rational) DivOther(x Number) (Number, error) { return dispatchReal(opDivOther, r, x) }
func (r Rational) Pow(x Number) (Number, error)      { return dispatchReal(opPow, r, x) }
func (r Rational) PowOther(x Number) (Number, error) { return dispatchReal(opPowOther, r, x) }

func (r Rational) Neg() Number {
	if r.num == math.MinInt64 {
		return r.big().Neg()
	}
	return Rational{num: -r.num, den: r.Den()}
}

func (r Rational) Inv() (Number, error) {
	return One.arith(opDiv, r)
}

func (r Rational) Abs() (Number, error) {
	if r.num < 0 {
		return r.Neg(), nil
	}
	return Rational{num: r.num, den: r.Den()}, nil
}

func (r Rational) Equal(x Number) (bool, error)   { return equalReal(r, x) }
func (r Rational) Less(x Number) (bool, error)    { return lessReal(r, x) }
func (r Rational) Greater(x Number) (bool, error) { return greaterReal(r, x) }
