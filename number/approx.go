package number

import (
	"math"
	"math/big"
	"strconv"
)

// Approx is a machine-precision approximation. The precise flag is true only
// while the value is believed to equal some rational exactly.
type Approx struct {
	f       float64
	precise bool
}

// NewApprox returns an approximation of f that is not known to be exact.
func NewApprox(f float64) Approx {
	return Approx{f: f}
}

// NewPreciseApprox returns an approximation that is known to be exactly f.
func NewPreciseApprox(f float64) Approx {
	return Approx{f: f, precise: true}
}

func (a Approx) String() string {
	return strconv.FormatFloat(a.f, 'f', -1, 64)
}

func (a Approx) IsPrecise() bool  { return a.precise }
func (a Approx) Float64() float64 { return a.f }
func (a Approx) rank() rank       { return rankApprox }

func (a Approx) Sign() int {
	switch {
	case a.f < 0:
		return -1
	case a.f > 0:
		return 1
	}
	return 0
}

func (a Approx) bigFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(a.f)
}

func (a Approx) exact() (*big.Rat, bool) {
	q := new(big.Rat).SetFloat64(a.f)
	if q == nil {
		return new(big.Rat), false
	}
	return q, a.precise
}

// smallRational converts the value to a Rational if that is exact.
func (a Approx) smallRational() (Rational, bool) {
	q := new(big.Rat).SetFloat64(a.f)
	if q == nil || !q.Num().IsInt64() || !q.Denom().IsInt64() {
		return Rational{}, false
	}
	return Rational{num: q.Num().Int64(), den: q.Denom().Int64()}, true
}

// approxOf builds an approximation of an exact rational. The precise flag
// records whether the float64 round-trips to the same rational.
func approxOf(q *big.Rat) Approx {
	f, exact := q.Float64()
	return Approx{f: f, precise: exact}
}

func (a Approx) arith(op arithOp, b Approx) (Number, error) {
	var f float64
	switch op {
	case opAdd:
		f = a.f + b.f
	case opSub:
		f = a.f - b.f
	case opMul:
		f = a.f * b.f
	case opDiv:
		if b.f == 0 {
			return nil, divisionByZero("/")
		}
		f = a.f / b.f
	default:
		panic("number: invalid approx op " + op.String())
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		// Out of float64 range; redo the operation with more room.
		return toBigApprox(a).arith(op, toBigApprox(b))
	}
	if !a.precise || !b.precise {
		return Approx{f: f}, nil
	}
	// Both operands are exact: try the operation on exact rationals first.
	if x, ok := a.smallRational(); ok {
		if y, ok := b.smallRational(); ok {
			q, err := x.arith(op, y)
			if err != nil {
				return nil, err
			}
			e, _ := q.(Real).exact()
			return approxOf(e), nil
		}
	}
	// The operands are exact but too large for Rational; check that the
	// inverse operation gets back to the first operand.
	var back float64
	switch op {
	case opAdd:
		back = f - b.f
	case opSub:
		back = f + b.f
	case opMul:
		if b.f == 0 {
			return Approx{f: f, precise: true}, nil
		}
		back = f / b.f
	case opDiv:
		back = f * b.f
	}
	return Approx{f: f, precise: back == a.f}, nil
}

func (a Approx) Add(x Number) (Number, error)      { return dispatchReal(opAdd, a, x) }
func (a Approx) Sub(x Number) (Number, error)      { return dispatchReal(opSub, a, x) }
func (a Approx) SubFrom(x Number) (Number, error)  { return dispatchReal(opSubFrom, a, x) }
func (a Approx) Mul(x Number) (Number, error)      { return dispatchReal(opMul, a, x) }
func (a Approx) Div(x Number) (Number, error)      { return dispatchReal(opDiv, a, x) }
func (a Approx) DivOther(x Number) (Number, error) { return dispatchReal(opDivOther, a, x) }
func (a Approx) Pow(x Number) (Number, error)      { return dispatchReal(opPow, a, x) }
func (a Approx) PowOther(x Number) (Number, error) { return dispatchReal(opPowOther, a, x) }

func (a Approx) Neg() Number { return Approx{f: -a.f, precise: a.precise} }

func (a Approx) Inv() (Number, error) {
	return Approx{f: 1, precise: true}.arith(opDiv, a)
}

func (a Approx) Abs() (Number, error) {
	return Approx{f: math.Abs(a.f), precise: a.precise}, nil
}

func (a Approx) Equal(x Number) (bool, error)   { return equalReal(a, x) }
func (a Approx) Less(x Number) (bool, error)    { return lessReal(a, x) }
func (a Approx) Greater(x Number) (bool, error) { return greaterReal(a, x) }
