package number

// arithOp names a binary arithmetic operation, including the mirrored
// variants that swap operand order.
type arithOp int8

const (
	opAdd arithOp = iota
	opSub
	opSubFrom
	opMul
	opDiv
	opDivOther
	opPow
	opPowOther
)

var opSymbols = [...]string{
	opAdd:      "+",
	opSub:      "-",
	opSubFrom:  "-",
	opMul:      "*",
	opDiv:      "/",
	opDivOther: "/",
	opPow:      "^",
	opPowOther: "^",
}

func (op arithOp) String() string {
	return opSymbols[op]
}

// plain converts a mirrored operation to its plain form. The second result
// reports whether the operands must be swapped.
func (op arithOp) plain() (arithOp, bool) {
	switch op {
	case opSubFrom:
		return opSub, true
	case opDivOther:
		return opDiv, true
	case opPowOther:
		return opPow, true
	}
	return op, false
}

// mirror hands op to x, which computes the same result as self op x.
func mirror(op arithOp, self, x Number) (Number, error) {
	switch op {
	case opAdd:
		return x.Add(self)
	case opSub:
		return x.SubFrom(self)
	case opSubFrom:
		return x.Sub(self)
	case opMul:
		return x.Mul(self)
	case opDiv:
		return x.DivOther(self)
	case opDivOther:
		return x.Div(self)
	case opPow:
		return x.PowOther(self)
	case opPowOther:
		return x.Pow(self)
	}
	panic("number: invalid arithmetic op")
}

// apply computes a op b through the public methods of a.
func apply(op arithOp, a, b Number) (Number, error) {
	switch op {
	case opAdd:
		return a.Add(b)
	case opSub:
		return a.Sub(b)
	case opSubFrom:
		return a.SubFrom(b)
	case opMul:
		return a.Mul(b)
	case opDiv:
		return a.Div(b)
	case opDivOther:
		return a.DivOther(b)
	case opPow:
		return a.Pow(b)
	case opPowOther:
		return a.PowOther(b)
	}
	panic("number: invalid arithmetic op")
}

// dispatchReal resolves op between a real receiver and any other number. The
// receiver computes the result when x is a real of no greater rank;
// otherwise x does.
func dispatchReal(op arithOp, self Real, x Number) (Number, error) {
	y, ok := x.(Real)
	if !ok || y.rank() > self.rank() {
		return mirror(op, self, x)
	}
	a, b := self, y
	op, swap := op.plain()
	if swap {
		a, b = b, a
	}
	return realArith(op, a, b)
}

// promote picks the representation for an operation between reals of the
// given ranks. An approximation mixed with a big rational moves to the big
// approximation so that neither loses precision.
func promote(a, b rank) rank {
	if a < b {
		a, b = b, a
	}
	if a == rankApprox && b == rankBigRational {
		return rankBigApprox
	}
	return a
}

// realArith computes a op b for a plain (not mirrored) op.
func realArith(op arithOp, a, b Real) (Number, error) {
	if op == opPow {
		return realPow(a, b)
	}
	switch promote(a.rank(), b.rank()) {
	case rankRational:
		return a.(Rational).arith(op, b.(Rational))
	case rankBigRational:
		return toBigRational(a).arith(op, toBigRational(b))
	case rankApprox:
		return toApprox(a).arith(op, toApprox(b))
	default:
		return toBigApprox(a).arith(op, toBigApprox(b))
	}
}

// compareReal compares a real with another number. ok is false when x is not
// something a real can be compared with directly.
func compareReal(self Real, x Number) (c int, ok bool, err error) {
	switch y := x.(type) {
	case Real:
		return cmpReals(self, y), true, nil
	case Complex:
		if y.Im().Sign() != 0 {
			return 0, true, &UnsupportedError{Op: "comparison", Kind: "complex numbers"}
		}
		return cmpReals(self, y.Re()), true, nil
	}
	return 0, false, nil
}

func cmpReals(a, b Real) int {
	switch promote(a.rank(), b.rank()) {
	case rankRational, rankBigRational:
		p, _ := a.exact()
		q, _ := b.exact()
		return p.Cmp(q)
	case rankApprox:
		x, y := a.Float64(), b.Float64()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	default:
		return toBigApprox(a).f.Cmp(toBigApprox(b).f)
	}
}

// equalReal, lessReal, and greaterReal implement the relations of the real
// variants, delegating to x for anything they do not recognize.

func equalReal(self Real, x Number) (bool, error) {
	if _, ok := x.(Complex); ok {
		return x.Equal(self)
	}
	c, ok, err := compareReal(self, x)
	if !ok {
		return x.Equal(self)
	}
	return c == 0, err
}

func lessReal(self Real, x Number) (bool, error) {
	c, ok, err := compareReal(self, x)
	if !ok {
		return x.Greater(self)
	}
	return c < 0, err
}

func greaterReal(self Real, x Number) (bool, error) {
	c, ok, err := compareReal(self, x)
	if !ok {
		return x.Less(self)
	}
	return c > 0, err
}
