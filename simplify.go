package calculator

import (
	"github.com/Rc-Cookie/calculator-sub000/number"
)

// Simplify returns an equivalent expression with constant subexpressions
// folded. It does not look up any names. Binary operations with one constant
// operand are rewritten to keep the constant on the right, and identities like
// x+0 and x*1 are removed. Lambdas become function constants with simplified
// bodies. Folding is skipped where it fails, such as 1/0, so that evaluation
// reports the error, and where it would round exact operands, so that the
// precision is chosen by the environment of the evaluation.
//
// The result shares unchanged subexpressions with e. Simplify is idempotent.
func (e *Expr) Simplify() *Expr {
	switch e.kind {
	case exprConst, exprSymbol:
		return e
	case exprUnary:
		x := e.left.Simplify()
		if e.un == unNeg && x.kind == exprUnary && x.un == unNeg {
			return x.left
		}
		if c, ok := x.IsConst(); ok {
			if v, err := applyUnary(e.un, c, scratch()); err == nil && keep(v, c) {
				return Const(v)
			}
		}
		return unary(e.un, x)
	case exprBinary:
		return simplifyBinary(e.bin, e.left.Simplify(), e.right.Simplify())
	case exprImplicit:
		return simplifyImplicit(e.left.Simplify(), e.right.Simplify(), e.call)
	case exprList:
		return list(simplifyAll(e.elems))
	case exprVector:
		elems := simplifyAll(e.elems)
		vals := make([]number.Number, len(elems))
		for i, x := range elems {
			c, ok := x.IsConst()
			if !ok {
				return vector(elems)
			}
			vals[i] = c
		}
		if v, err := vectorOrMatrix(vals); err == nil {
			return Const(v)
		}
		return vector(elems)
	case exprLambda:
		return Const(Lambda(e.params, e.right))
	case exprDefine:
		return define(e.name, e.right.Simplify())
	case exprSequence:
		return sequence(e.left.Simplify(), e.right.Simplify())
	}
	panic("calculator: invalid expression kind " + e.kind.String())
}

// scratch returns an empty environment for folding constants.
func scratch() *Env {
	return &Env{
		globals: make(map[string]number.Number),
		locals:  make(map[string][]number.Number),
	}
}

// keep reports whether a folded value v may replace an expression of the
// operands: either v is exact or some operand already was not.
func keep(v number.Number, operands ...number.Number) bool {
	if v.IsPrecise() {
		return true
	}
	for _, x := range operands {
		if !x.IsPrecise() {
			return true
		}
	}
	return false
}

func simplifyAll(elems []*Expr) []*Expr {
	r := make([]*Expr, len(elems))
	for i, x := range elems {
		r[i] = x.Simplify()
	}
	return r
}

// simplifyBinary builds l op r from simplified operands.
func simplifyBinary(op binop, l, r *Expr) *Expr {
	lc, lok := l.IsConst()
	rc, rok := r.IsConst()
	switch {
	case lok && rok:
		if v, err := op.apply(lc, rc); err == nil && keep(v, lc, rc) {
			return Const(v)
		}
		return binary(op, l, r)
	case lok && (op != binMul || scalar(lc)):
		return simplifyBinary(binops[op].mirror, r, l)
	case lok:
		// Matrix products do not commute.
		return binary(op, l, r)
	case !rok:
		return binary(op, l, r)
	}
	// Only the right operand is constant.
	switch op {
	case binAdd, binSub:
		if number.IsZero(rc) {
			return l
		}
	case binMul, binDiv, binPow:
		if number.IsOne(rc) {
			return l
		}
	case binSubFrom:
		if number.IsZero(rc) {
			return unary(unNeg, l).Simplify()
		}
	case binPowOther:
		if number.IsOne(rc) {
			return r
		}
	}
	if (op == binAdd || op == binMul) && l.kind == exprBinary && l.bin == op {
		// (x op a) op b is x op (a op b).
		if a, ok := l.right.IsConst(); ok && scalar(a) && scalar(rc) {
			if v, err := op.apply(a, rc); err == nil && keep(v, a, rc) {
				return simplifyBinary(op, l.left, Const(v))
			}
		}
	}
	return binary(op, l, r)
}

// scalar reports whether x is a real or complex number, for which + and *
// commute and associate.
func scalar(x number.Number) bool {
	switch x.(type) {
	case number.Real, number.Complex:
		return true
	}
	return false
}

// simplifyImplicit builds the implicit operation of simplified operands. A
// constant that is not a function cannot be called, so it multiplies.
func simplifyImplicit(l, r *Expr, call bool) *Expr {
	lc, ok := l.IsConst()
	if !ok {
		return implicit(l, r, call)
	}
	f, isfn := lc.(*Function)
	if !isfn {
		return simplifyBinary(binMul, l, r)
	}
	if !f.pure() {
		return implicit(l, r, call)
	}
	args := []*Expr{r}
	if r.kind == exprList {
		args = r.elems
	}
	vals := make([]number.Number, len(args))
	for i, a := range args {
		c, ok := a.IsConst()
		if !ok {
			return implicit(l, r, call)
		}
		vals[i] = c
	}
	if v, err := f.Call(scratch(), vals); err == nil && keep(v, vals...) {
		return Const(v)
	}
	return implicit(l, r, call)
}

// pure reports whether calling f depends only on its arguments, so that calls
// with constant arguments can be folded.
func (f *Function) pure() bool {
	switch f.kind {
	case fnBuiltin:
		return !f.higher
	case fnDerived:
		g, ok := f.other.(*Function)
		return f.fn.pure() && (!ok || g.pure())
	case fnUnary:
		return f.fn.pure()
	case fnCompose:
		for _, a := range f.args {
			if g, ok := a.(*Function); ok && !g.pure() {
				return false
			}
		}
		return f.fn.pure()
	}
	return false
}
