package number

import "math/big"

// BigRational is an exact rational of arbitrary size.
type BigRational struct {
	r *big.Rat
}

// NewBigRational returns a BigRational with the value of r. The result is
// not shrunk to a Rational even if it would fit.
func NewBigRational(r *big.Rat) BigRational {
	return BigRational{r: new(big.Rat).Set(r)}
}

// NewBigInt returns the integer i as a BigRational.
func NewBigInt(i *big.Int) BigRational {
	return BigRational{r: new(big.Rat).SetInt(i)}
}

// Rat returns a copy of the value.
func (b BigRational) Rat() *big.Rat {
	return new(big.Rat).Set(b.rat())
}

func (b BigRational) rat() *big.Rat {
	if b.r == nil {
		return new(big.Rat)
	}
	return b.r
}

// shrink returns a Rational if the value fits in one.
func (b BigRational) shrink() Number {
	r := b.rat()
	if r.Num().IsInt64() && r.Denom().IsInt64() {
		return Rational{num: r.Num().Int64(), den: r.Denom().Int64()}
	}
	return b
}

func (b BigRational) String() string {
	r := b.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	return r.String()
}

func (b BigRational) IsPrecise() bool { return true }
func (b BigRational) Sign() int       { return b.rat().Sign() }

func (b BigRational) Float64() float64 {
	f, _ := b.rat().Float64()
	return f
}

func (b BigRational) rank() rank { return rankBigRational }

func (b BigRational) bigFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetRat(b.rat())
}

func (b BigRational) exact() (*big.Rat, bool) {
	return new(big.Rat).Set(b.rat()), true
}

func (b BigRational) arith(op arithOp, c BigRational) (Number, error) {
	z := new(big.Rat)
	switch op {
	case opAdd:
		z.Add(b.rat(), c.rat())
	case opSub:
		z.Sub(b.rat(), c.rat())
	case opMul:
		z.Mul(b.rat(), c.rat())
	case opDiv:
		if c.Sign() == 0 {
			return nil, divisionByZero("/")
		}
		z.Quo(b.rat(), c.rat())
	default:
		panic("number: invalid big rational op " + op.String())
	}
	return BigRational{r: z}.shrink(), nil
}

func (b BigRational) Add(x Number) (Number, error)      { return dispatchReal(opAdd, b, x) }
func (b BigRational) Sub(x Number) (Number, error)      { return dispatchReal(opSub, b, x) }
func (b BigRational) SubFrom(x Number) (Number, error)  { return dispatchReal(opSubFrom, b, x) }
func (b BigRational) Mul(x Number) (Number, error)      { return dispatchReal(opMul, b, x) }
func (b BigRational) Div(x Number) (Number, error)      { return dispatchReal(opDiv, b, x) }
func (b BigRational) DivOther(x Number) (Number, error) { return dispatchReal(opDivOther, b, x) }
func (b BigRational) Pow(x Number) (Number, error)      { return dispatchReal(opPow, b, x) }
func (b BigRational) PowOther(x Number) (Number, error) { return dispatchReal(opPowOther, b, x) }

func (b BigRational) Neg() Number {
	return BigRational{r: new(big.Rat).Neg(b.rat())}.shrink()
}

func (b BigRational) Inv() (Number, error) {
	if b.Sign() == 0 {
		return nil, divisionByZero("/")
	}
	return BigRational{r: new(big.Rat).Inv(b.rat())}.shrink(), nil
}

func (b BigRational) Abs() (Number, error) {
	return BigRational{r: new(big.Rat).Abs(b.rat())}.shrink(), nil
}

func (b BigRational) Equal(x Number) (bool, error)   { return equalReal(b, x) }
func (b BigRational) Less(x Number) (bool, error)    { return lessReal(b, x) }
func (b BigRational) Greater(x Number) (bool, error) { return greaterReal(b, x) }
