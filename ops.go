package calculator

import (
	"math/big"

	"github.com/Rc-Cookie/calculator-sub000/number"
)

// Operator precedences, lowest first.
const (
	precSep = iota
	precSeq
	precDefine
	precLambda
	precRel
	precAdd
	precMul
	precUnary
	precPow
	precCall
	precPostfix
	precAtom
)

// operator is the syntactic description of an infix operator token.
type operator struct {
	prec  int
	right bool
}

// infix holds the infix operators by token text. Implicit multiplication and
// call markers are produced by the lexer and have no text of their own.
var infix = map[string]operator{
	";":  {prec: precSeq},
	":=": {prec: precDefine, right: true},
	"=:": {prec: precDefine},
	"->": {prec: precLambda, right: true},
	"=":  {prec: precRel},
	"<":  {prec: precRel},
	">":  {prec: precRel},
	"<=": {prec: precRel},
	">=": {prec: precRel},
	"+":  {prec: precAdd},
	"-":  {prec: precAdd},
	"*":  {prec: precMul},
	"/":  {prec: precMul},
	"×":  {prec: precMul},
	"÷":  {prec: precMul},
	"^":  {prec: precPow, right: true},
}

var (
	opImplicit = operator{prec: precMul}
	opCall     = operator{prec: precCall}
	opPrefix   = operator{prec: precUnary, right: true}
)

// binop is the operation of a binary expression node. The mirrored variants
// compute the same operation with the operands swapped, so that a node can
// keep a constant on its right side while printing in source order.
type binop int8

const (
	binAdd binop = iota
	binSub
	binSubFrom
	binMul
	binDiv
	binDivOther
	binPow
	binPowOther
	binEq
	binLess
	binGreater
	binLessEq
	binGreaterEq
)

type binopInfo struct {
	text   string
	prec   int
	mirror binop
	// swapped marks mirrored operations, which print their right operand
	// first.
	swapped bool
	apply   func(a, b number.Number) (number.Number, error)
}

var binops = [...]binopInfo{
	binAdd:       {"+", precAdd, binAdd, false, number.Number.Add},
	binSub:       {"-", precAdd, binSubFrom, false, number.Number.Sub},
	binSubFrom:   {"-", precAdd, binSub, true, number.Number.SubFrom},
	binMul:       {"*", precMul, binMul, false, number.Number.Mul},
	binDiv:       {"/", precMul, binDivOther, false, number.Number.Div},
	binDivOther:  {"/", precMul, binDiv, true, number.Number.DivOther},
	binPow:       {"^", precPow, binPowOther, false, number.Number.Pow},
	binPowOther:  {"^", precPow, binPow, true, number.Number.PowOther},
	binEq:        {"=", precRel, binEq, false, relation(number.Number.Equal)},
	binLess:      {"<", precRel, binGreater, false, relation(number.Number.Less)},
	binGreater:   {">", precRel, binLess, false, relation(number.Number.Greater)},
	binLessEq:    {"<=", precRel, binGreaterEq, false, relation(number.LessEqual)},
	binGreaterEq: {">=", precRel, binLessEq, false, relation(number.GreaterEqual)},
}

func (op binop) String() string {
	return binops[op].text
}

func (op binop) apply(a, b number.Number) (number.Number, error) {
	return binops[op].apply(a, b)
}

// relational reports whether op compares its operands.
func (op binop) relational() bool {
	return op >= binEq
}

// commutative reports whether op is its own mirror.
func (op binop) commutative() bool {
	return binops[op].mirror == op
}

// binopFor maps an infix token to its operation.
var binopFor = map[string]binop{
	"+":  binAdd,
	"-":  binSub,
	"*":  binMul,
	"×":  binMul,
	"/":  binDiv,
	"÷":  binDiv,
	"^":  binPow,
	"=":  binEq,
	"<":  binLess,
	">":  binGreater,
	"<=": binLessEq,
	">=": binGreaterEq,
}

// relation converts a comparison into an operation yielding 1 or 0.
func relation(cmp func(a, b number.Number) (bool, error)) func(a, b number.Number) (number.Number, error) {
	return func(a, b number.Number) (number.Number, error) {
		r, err := cmp(a, b)
		if err != nil {
			return nil, err
		}
		if r {
			return number.One, nil
		}
		return number.Zero, nil
	}
}

// unop is the operation of a unary expression node.
type unop int8

const (
	unNeg unop = iota
	unAbs
	unFact
	unDeg
	unPercent
	unSquare
	unCube
)

type unopInfo struct {
	text    string
	postfix bool
	apply   func(x number.Number, p number.Precision) (number.Number, error)
}

var unops = [...]unopInfo{
	unNeg:     {"-", false, func(x number.Number, _ number.Precision) (number.Number, error) { return x.Neg(), nil }},
	unAbs:     {"|", false, func(x number.Number, _ number.Precision) (number.Number, error) { return x.Abs() }},
	unFact:    {"!", true, factorial},
	unDeg:     {"°", true, degrees},
	unPercent: {"%", true, func(x number.Number, _ number.Precision) (number.Number, error) { return x.Div(number.Int(100)) }},
	unSquare:  {"²", true, func(x number.Number, _ number.Precision) (number.Number, error) { return x.Pow(number.Int(2)) }},
	unCube:    {"³", true, func(x number.Number, _ number.Precision) (number.Number, error) { return x.Pow(number.Int(3)) }},
}

func (op unop) String() string {
	return unops[op].text
}

func (op unop) apply(x number.Number, p number.Precision) (number.Number, error) {
	return unops[op].apply(x, p)
}

// postfixFor maps a postfix token to its operation.
var postfixFor = map[string]unop{
	"!": unFact,
	"°": unDeg,
	"%": unPercent,
	"²": unSquare,
	"³": unCube,
}

// maxFactorial bounds the exact factorials computed by multiplication.
const maxFactorial = 10000

// factorial computes x! as gamma(x+1). Exact non-negative integers are
// multiplied out directly.
func factorial(x number.Number, p number.Precision) (number.Number, error) {
	if n, ok := number.Int64(x); ok && n >= 0 && n <= maxFactorial {
		r := new(big.Int).MulRange(1, n)
		if r.IsInt64() {
			return number.Int(r.Int64()), nil
		}
		return number.NewBigInt(r), nil
	}
	y, err := x.Add(number.One)
	if err != nil {
		return nil, err
	}
	return number.Special(number.Gamma, y, p)
}

// degrees converts x from degrees to radians.
func degrees(x number.Number, p number.Precision) (number.Number, error) {
	r, err := x.Mul(number.Pi(p))
	if err != nil {
		return nil, err
	}
	return r.Div(number.Int(180))
}
