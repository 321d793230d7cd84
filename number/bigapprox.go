package number

import (
	"math/big"
)

// BigApprox is an arbitrary-precision approximation. It follows the same
// precise-flag rules as Approx. Values are kept at no less than BigPrec bits.
type BigApprox struct {
	f       *big.Float
	precise bool
}

// NewBigApprox returns an approximation of f that is not known to be exact.
// The value is copied.
func NewBigApprox(f *big.Float) BigApprox {
	return BigApprox{f: newBigFloat(f.Prec()).Set(f)}
}

func newBigFloat(prec uint) *big.Float {
	if prec < BigPrec {
		prec = BigPrec
	}
	return new(big.Float).SetPrec(prec)
}

// Float returns a copy of the value.
func (b BigApprox) Float() *big.Float {
	return new(big.Float).Copy(b.float())
}

func (b BigApprox) float() *big.Float {
	if b.f == nil {
		return newBigFloat(BigPrec)
	}
	return b.f
}

func (b BigApprox) String() string {
	return b.float().Text('f', -1)
}

func (b BigApprox) IsPrecise() bool { return b.precise }
func (b BigApprox) Sign() int       { return b.float().Sign() }
func (b BigApprox) rank() rank      { return rankBigApprox }

func (b BigApprox) Float64() float64 {
	f, _ := b.float().Float64()
	return f
}

func (b BigApprox) bigFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).Set(b.float())
}

func (b BigApprox) exact() (*big.Rat, bool) {
	if b.float().IsInf() {
		return new(big.Rat), false
	}
	q, _ := b.float().Rat(nil)
	return q, b.precise
}

// bigApproxOf rounds an exact rational to a BigApprox of the given
// precision, recording whether the rounding was exact.
func bigApproxOf(q *big.Rat, prec uint) BigApprox {
	f := newBigFloat(prec).SetRat(q)
	return BigApprox{f: f, precise: f.Acc() == big.Exact}
}

func (b BigApprox) arith(op arithOp, c BigApprox) (Number, error) {
	x, y := b.float(), c.float()
	prec := x.Prec()
	if y.Prec() > prec {
		prec = y.Prec()
	}
	z := newBigFloat(prec)
	if op == opDiv && y.Sign() == 0 {
		return nil, divisionByZero("/")
	}
	if b.precise && c.precise && !x.IsInf() && !y.IsInf() {
		// Compute exactly, then round once.
		p, _ := x.Rat(nil)
		q, _ := y.Rat(nil)
		switch op {
		case opAdd:
			p.Add(p, q)
		case opSub:
			p.Sub(p, q)
		case opMul:
			p.Mul(p, q)
		case opDiv:
			p.Quo(p, q)
		default:
			panic("number: invalid big approx op " + op.String())
		}
		return bigApproxOf(p, prec), nil
	}
	switch op {
	case opAdd:
		z.Add(x, y)
	case opSub:
		z.Sub(x, y)
	case opMul:
		z.Mul(x, y)
	case opDiv:
		z.Quo(x, y)
	default:
		panic("number: invalid big approx op " + op.String())
	}
	return BigApprox{f: z}, nil
}

func (b BigApprox) Add(x Number) (Number, error)      { return dispatchReal(opAdd, b, x) }
func (b BigApprox) Sub(x Number) (Number, error)      { return dispatchReal(opSub, b, x) }
func (b BigApprox) SubFrom(x Number) (Number, error)  { return dispatchReal(opSubFrom, b, x) }
func (b BigApprox) Mul(x Number) (Number, error)      { return dispatchReal(opMul, b, x) }
func (b BigApprox) Div(x Number) (Number, error)      { return dispatchReal(opDiv, b, x) }
func (b BigApprox) DivOther(x Number) (Number, error) { return dispatchReal(opDivOther, b, x) }
func (b BigApprox) Pow(x Number) (Number, error)      { return dispatchReal(opPow, b, x) }
func (b BigApprox) PowOther(x Number) (Number, error) { return dispatchReal(opPowOther, b, x) }

func (b BigApprox) Neg() Number {
	f := b.float()
	return BigApprox{f: newBigFloat(f.Prec()).Neg(f), precise: b.precise}
}

func (b BigApprox) Inv() (Number, error) {
	one := BigApprox{f: newBigFloat(b.float().Prec()).SetInt64(1), precise: true}
	return one.arith(opDiv, b)
}

func (b BigApprox) Abs() (Number, error) {
	f := b.float()
	return BigApprox{f: newBigFloat(f.Prec()).Abs(f), precise: b.precise}, nil
}

func (b BigApprox) Equal(x Number) (bool, error)   { return equalReal(b, x) }
func (b BigApprox) Less(x Number) (bool, error)    { return lessReal(b, x) }
func (b BigApprox) Greater(x Number) (bool, error) { return greaterReal(b, x) }
