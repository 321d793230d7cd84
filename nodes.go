package calculator

import (
	"sort"
	"strings"

	"github.com/Rc-Cookie/calculator-sub000/number"
)

// Expr is a parsed expression. Expressions are immutable once built and are
// themselves numbers: arithmetic on an Expr builds a larger Expr.
type Expr struct {
	kind exprKind

	// name is the name of a symbol or the target of a definition.
	name string
	// val is the value of a constant.
	val number.Number
	bin binop
	un  unop

	left  *Expr
	right *Expr
	// elems are the elements of a list or vector.
	elems []*Expr
	// params are the parameter names of a lambda.
	params []string
	// call marks an implicit operation written as a call, f(x).
	call bool
}

type exprKind int8

const (
	exprNone exprKind = iota

	exprConst    // val
	exprSymbol   // lookup(name)
	exprUnary    // un left
	exprBinary   // left bin right
	exprImplicit // left applied to or multiplied by right
	exprList     // (elems...)
	exprVector   // [elems...]
	exprLambda   // params -> right
	exprDefine   // name := right
	exprSequence // left; right
)

var exprKindNames = [...]string{
	exprNone:     "None",
	exprConst:    "Const",
	exprSymbol:   "Symbol",
	exprUnary:    "Unary",
	exprBinary:   "Binary",
	exprImplicit: "Implicit",
	exprList:     "List",
	exprVector:   "Vector",
	exprLambda:   "Lambda",
	exprDefine:   "Define",
	exprSequence: "Sequence",
}

func (k exprKind) String() string {
	if k < 0 || int(k) >= len(exprKindNames) {
		return "exprKind?"
	}
	return exprKindNames[k]
}

// Const returns an expression with the constant value x. If x is already an
// expression, it is returned as is.
func Const(x number.Number) *Expr {
	if e, ok := x.(*Expr); ok {
		return e
	}
	return &Expr{kind: exprConst, val: x}
}

// Symbol returns an expression that looks up name when evaluated.
func Symbol(name string) *Expr {
	return &Expr{kind: exprSymbol, name: name}
}

func unary(op unop, x *Expr) *Expr {
	return &Expr{kind: exprUnary, un: op, left: x}
}

func binary(op binop, l, r *Expr) *Expr {
	return &Expr{kind: exprBinary, bin: op, left: l, right: r}
}

func implicit(l, r *Expr, call bool) *Expr {
	return &Expr{kind: exprImplicit, left: l, right: r, call: call}
}

func list(elems []*Expr) *Expr {
	return &Expr{kind: exprList, elems: elems}
}

func vector(elems []*Expr) *Expr {
	return &Expr{kind: exprVector, elems: elems}
}

func lambda(params []string, body *Expr) *Expr {
	return &Expr{kind: exprLambda, params: params, right: body}
}

func define(name string, val *Expr) *Expr {
	return &Expr{kind: exprDefine, name: name, right: val}
}

func sequence(l, r *Expr) *Expr {
	return &Expr{kind: exprSequence, left: l, right: r}
}

// IsConst reports whether the expression is a constant, and returns its value.
func (e *Expr) IsConst() (number.Number, bool) {
	if e.kind == exprConst {
		return e.val, true
	}
	return nil, false
}

// Operands returns the immediate subexpressions of e.
func (e *Expr) Operands() []*Expr {
	switch e.kind {
	case exprConst, exprSymbol:
		return nil
	case exprUnary:
		return []*Expr{e.left}
	case exprBinary, exprImplicit, exprSequence:
		return []*Expr{e.left, e.right}
	case exprList, exprVector:
		return append([]*Expr(nil), e.elems...)
	case exprLambda, exprDefine:
		return []*Expr{e.right}
	}
	panic("calculator: invalid expression kind " + e.kind.String())
}

// Precedence returns the binding strength of the outermost operation of e,
// which decides where it needs parentheses when printed.
func (e *Expr) Precedence() int {
	switch e.kind {
	case exprConst:
		return constPrec(e.val)
	case exprSymbol, exprList, exprVector:
		return precAtom
	case exprUnary:
		if unops[e.un].postfix {
			return precPostfix
		}
		if e.un == unAbs {
			return precAtom
		}
		return precUnary
	case exprBinary:
		return binops[e.bin].prec
	case exprImplicit:
		// Only a name followed by ( parses back as a call.
		if e.call && e.left.named() {
			return precCall
		}
		return precMul
	case exprLambda:
		return precLambda
	case exprDefine:
		return precDefine
	case exprSequence:
		return precSeq
	}
	panic("calculator: invalid expression kind " + e.kind.String())
}

// named reports whether e prints as a bare name.
func (e *Expr) named() bool {
	if e.kind == exprSymbol {
		return true
	}
	f, ok := e.val.(*Function)
	return e.kind == exprConst && ok && f.name != ""
}

// constPrec gives the precedence of a constant as it prints.
func constPrec(x number.Number) int {
	switch x := x.(type) {
	case *Function:
		return x.precedence()
	case number.Complex:
		if x.Re().Sign() != 0 {
			return precAdd
		}
		return precMul
	case number.Rational:
		if x.Den() != 1 {
			return precMul
		}
	case number.BigRational:
		if !x.Rat().IsInt() {
			return precMul
		}
	}
	if strings.HasPrefix(x.String(), "-") {
		return precUnary
	}
	return precAtom
}

// Vars returns the sorted names of the symbols e looks up, excluding lambda
// parameters within their bodies.
func (e *Expr) Vars() []string {
	m := make(map[string]bool)
	e.vars(m, nil)
	return sortstrs(m)
}

func (e *Expr) vars(m map[string]bool, bound []string) {
	switch e.kind {
	case exprSymbol:
		for _, b := range bound {
			if b == e.name {
				return
			}
		}
		m[e.name] = true
	case exprLambda:
		e.right.vars(m, append(bound[:len(bound):len(bound)], e.params...))
	case exprConst:
		if f, ok := e.val.(*Function); ok && f.body != nil {
			f.body.vars(m, append(bound[:len(bound):len(bound)], f.params...))
		}
	default:
		for _, o := range e.Operands() {
			o.vars(m, bound)
		}
	}
}

func sortstrs(m map[string]bool) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// String formats the expression with the fewest parentheses that parse back
// to the same tree.
func (e *Expr) String() string {
	var b strings.Builder
	e.fmt(&b)
	return b.String()
}

// sub formats x, parenthesized if it binds less tightly than min.
func sub(b *strings.Builder, x *Expr, min int) {
	if x.Precedence() < min {
		b.WriteByte('(')
		x.fmt(b)
		b.WriteByte(')')
		return
	}
	x.fmt(b)
}

func (e *Expr) fmt(b *strings.Builder) {
	switch e.kind {
	case exprConst:
		b.WriteString(e.val.String())
	case exprSymbol:
		b.WriteString(e.name)
	case exprUnary:
		switch {
		case e.un == unAbs:
			b.WriteByte('|')
			e.left.fmt(b)
			b.WriteByte('|')
		case unops[e.un].postfix:
			sub(b, e.left, precPostfix)
			b.WriteString(e.un.String())
		default:
			b.WriteString(e.un.String())
			sub(b, e.left, precUnary)
		}
	case exprBinary:
		info := binops[e.bin]
		l, r := e.left, e.right
		if info.swapped {
			l, r = r, l
		}
		lp, rp := info.prec, info.prec+1
		switch {
		case e.bin == binPow || e.bin == binPowOther:
			lp, rp = info.prec+1, info.prec
		case e.bin.relational():
			lp = info.prec + 1
		}
		sub(b, l, lp)
		if e.bin == binPow || e.bin == binPowOther {
			b.WriteString(info.text)
		} else {
			b.WriteString(" " + info.text + " ")
		}
		sub(b, r, rp)
	case exprImplicit:
		if e.call {
			sub(b, e.left, precCall)
			if e.right.kind == exprList {
				e.right.fmt(b)
			} else {
				b.WriteByte('(')
				e.right.fmt(b)
				b.WriteByte(')')
			}
			return
		}
		sub(b, e.left, precMul)
		b.WriteByte(' ')
		sub(b, e.right, precPow)
	case exprList:
		fmtElems(b, '(', e.elems, ')')
	case exprVector:
		fmtElems(b, '[', e.elems, ']')
	case exprLambda:
		fmtParams(b, e.params)
		b.WriteString(" -> ")
		sub(b, e.right, precLambda)
	case exprDefine:
		b.WriteString(e.name)
		b.WriteString(" := ")
		sub(b, e.right, precDefine)
	case exprSequence:
		sub(b, e.left, precSeq)
		b.WriteString("; ")
		sub(b, e.right, precSeq+1)
	default:
		panic("calculator: invalid expression kind " + e.kind.String() + " after writing " + b.String())
	}
}

func fmtElems(b *strings.Builder, open byte, elems []*Expr, close byte) {
	b.WriteByte(open)
	for i, x := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		sub(b, x, precSeq)
	}
	b.WriteByte(close)
}

func fmtParams(b *strings.Builder, params []string) {
	if len(params) == 1 {
		b.WriteString(params[0])
		return
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(params, ", "))
	b.WriteByte(')')
}
