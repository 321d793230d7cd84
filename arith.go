package calculator

import "github.com/Rc-Cookie/calculator-sub000/number"

// Arithmetic on expressions builds new expressions without evaluating
// anything. Every other number recognizes no expressions, so mixed operations
// end up here through the mirrored methods.

func (e *Expr) Add(x number.Number) (number.Number, error) {
	return binary(binAdd, e, Const(x)), nil
}

func (e *Expr) Sub(x number.Number) (number.Number, error) {
	return binary(binSub, e, Const(x)), nil
}

func (e *Expr) SubFrom(x number.Number) (number.Number, error) {
	return binary(binSub, Const(x), e), nil
}

func (e *Expr) Mul(x number.Number) (number.Number, error) {
	return binary(binMul, e, Const(x)), nil
}

func (e *Expr) Div(x number.Number) (number.Number, error) {
	return binary(binDiv, e, Const(x)), nil
}

func (e *Expr) DivOther(x number.Number) (number.Number, error) {
	return binary(binDiv, Const(x), e), nil
}

func (e *Expr) Pow(x number.Number) (number.Number, error) {
	return binary(binPow, e, Const(x)), nil
}

func (e *Expr) PowOther(x number.Number) (number.Number, error) {
	return binary(binPow, Const(x), e), nil
}

func (e *Expr) Neg() number.Number {
	return unary(unNeg, e)
}

func (e *Expr) Inv() (number.Number, error) {
	return binary(binDiv, Const(number.One), e), nil
}

func (e *Expr) Abs() (number.Number, error) {
	return unary(unAbs, e), nil
}

// IsPrecise reports whether every constant in e is precise.
func (e *Expr) IsPrecise() bool {
	if e.kind == exprConst {
		return e.val.IsPrecise()
	}
	for _, o := range e.Operands() {
		if !o.IsPrecise() {
			return false
		}
	}
	return true
}

// Equal reports whether x is an expression with the same structure and
// constants as e. It never returns an error.
func (e *Expr) Equal(x number.Number) (bool, error) {
	return e.same(Const(x)), nil
}

func (e *Expr) Less(x number.Number) (bool, error) {
	return false, &number.UnsupportedError{Op: "comparison", Kind: "expressions"}
}

func (e *Expr) Greater(x number.Number) (bool, error) {
	return false, &number.UnsupportedError{Op: "comparison", Kind: "expressions"}
}

func (e *Expr) same(x *Expr) bool {
	if e == x {
		return true
	}
	if e.kind != x.kind {
		return false
	}
	switch e.kind {
	case exprConst:
		return sameValue(e.val, x.val)
	case exprSymbol:
		return e.name == x.name
	case exprUnary:
		return e.un == x.un && e.left.same(x.left)
	case exprBinary:
		return e.bin == x.bin && e.left.same(x.left) && e.right.same(x.right)
	case exprImplicit:
		return e.call == x.call && e.left.same(x.left) && e.right.same(x.right)
	case exprList, exprVector:
		if len(e.elems) != len(x.elems) {
			return false
		}
		for i, a := range e.elems {
			if !a.same(x.elems[i]) {
				return false
			}
		}
		return true
	case exprLambda:
		if len(e.params) != len(x.params) {
			return false
		}
		for i, p := range e.params {
			if p != x.params[i] {
				return false
			}
		}
		return e.right.same(x.right)
	case exprDefine:
		return e.name == x.name && e.right.same(x.right)
	case exprSequence:
		return e.left.same(x.left) && e.right.same(x.right)
	}
	panic("calculator: invalid expression kind " + e.kind.String())
}

// sameValue reports whether two constants are interchangeable.
func sameValue(a, b number.Number) bool {
	if f, ok := a.(*Function); ok {
		g, ok := b.(*Function)
		return ok && f.same(g)
	}
	if _, ok := b.(*Function); ok {
		return false
	}
	if a.String() != b.String() || a.IsPrecise() != b.IsPrecise() {
		return false
	}
	eq, err := a.Equal(b)
	return err == nil && eq
}

var _ number.Number = (*Expr)(nil)
