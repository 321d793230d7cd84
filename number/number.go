// Package number implements the numeric tower used by the calculator.
//
// Every value is a Number. The real variants are exact rationals of machine
// size (Rational) and arbitrary size (BigRational), and approximations of
// machine precision (Approx) and arbitrary precision (BigApprox). On top of
// those sit Complex, Vector, and Matrix.
//
// Binary operations are resolved by double dispatch. A value computes the
// operation itself when it recognizes the other operand; otherwise it hands
// the operation to the other operand's mirrored method, e.g. a.Sub(b) becomes
// b.SubFrom(a). Each variant recognizes every variant below it in the tower,
// so the more general operand always ends up doing the work, and types
// outside this package (like expression trees) can join the tower by
// recognizing everything.
//
// Approximations carry a precise flag that records whether the value is
// still believed to equal some rational exactly. The flag is re-derived on
// every operation and never becomes true again once lost, unless a later
// result happens to round-trip through an exact rational.
package number

import "math/big"

// Number is a value in the numeric tower.
type Number interface {
	String() string

	// IsPrecise reports whether the value is known to be exact.
	IsPrecise() bool

	// Add returns n + x.
	Add(x Number) (Number, error)
	// Sub returns n - x.
	Sub(x Number) (Number, error)
	// SubFrom returns x - n.
	SubFrom(x Number) (Number, error)
	// Mul returns n * x.
	Mul(x Number) (Number, error)
	// Div returns n / x.
	Div(x Number) (Number, error)
	// DivOther returns x / n.
	DivOther(x Number) (Number, error)
	// Pow returns n ^ x.
	Pow(x Number) (Number, error)
	// PowOther returns x ^ n.
	PowOther(x Number) (Number, error)

	// Neg returns -n.
	Neg() Number
	// Inv returns 1 / n.
	Inv() (Number, error)
	// Abs returns the absolute value, norm, or determinant of n.
	Abs() (Number, error)

	Equal(x Number) (bool, error)
	Less(x Number) (bool, error)
	Greater(x Number) (bool, error)
}

// Real is a real scalar: Rational, BigRational, Approx, or BigApprox.
type Real interface {
	Number

	// Sign returns -1, 0, or +1.
	Sign() int
	// Float64 returns the nearest float64.
	Float64() float64

	rank() rank
	bigFloat(prec uint) *big.Float
	exact() (*big.Rat, bool)
}

// rank orders the real variants from least to most general.
type rank int8

const (
	rankRational rank = iota
	rankBigRational
	rankApprox
	rankBigApprox
)

// BigPrec is the working precision in bits of BigApprox values.
const BigPrec = 256

// LessEqual reports whether a <= b. It is derived from Greater.
func LessEqual(a, b Number) (bool, error) {
	g, err := a.Greater(b)
	return !g, err
}

// GreaterEqual reports whether a >= b. It is derived from Less.
func GreaterEqual(a, b Number) (bool, error) {
	l, err := a.Less(b)
	return !l, err
}

// IsZero reports whether x is a real or complex number equal to zero.
func IsZero(x Number) bool {
	switch x := x.(type) {
	case Real:
		return x.Sign() == 0
	case Complex:
		return x.Re().Sign() == 0 && x.Im().Sign() == 0
	}
	return false
}

// IsOne reports whether x is a real number equal to one.
func IsOne(x Number) bool {
	r, ok := x.(Real)
	if !ok {
		return false
	}
	eq, err := r.Equal(One)
	return err == nil && eq
}

// IsInteger reports whether x is a real number with an integer value that is
// known exactly.
func IsInteger(x Number) bool {
	r, ok := x.(Real)
	if !ok {
		return false
	}
	q, ok := r.exact()
	return ok && q.IsInt()
}

// Int64 returns the value of x if it is an exact integer that fits in int64.
func Int64(x Number) (int64, bool) {
	r, ok := x.(Real)
	if !ok {
		return 0, false
	}
	q, ok := r.exact()
	if !ok || !q.IsInt() || !q.Num().IsInt64() {
		return 0, false
	}
	return q.Num().Int64(), true
}
