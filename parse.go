package calculator

import (
	"io"
	"strings"
)

// Expr = num | name | Unary | Postfix | Binary | Implicit | Call | Group | List | Vector | Abs
//      | Lambda | Define | Sequence | Expr {',' Expr}
// Unary = ('-' | '+') Expr
// Postfix = Expr ('!' | '°' | '%' | '²' | '³')
// Binary = Expr ('+' | '-' | '*' | '×' | '/' | '÷' | '^' | '=' | '<' | '>' | '<=' | '>=') Expr
// Implicit = Expr Expr
// Call = name '(' [Expr {',' Expr}] ')'
// Group = '(' Expr ')'
// List = '(' [Expr ',' Expr {',' Expr}] ')'
// Vector = '[' [Expr {',' Expr}] ']'
// Abs = '|' Expr '|'
// Lambda = Params '->' Expr
// Params = name | '(' [name {',' name}] ')'
// Define = Target ':=' Expr | Expr '=:' Target
// Target = name | name Params
// Sequence = Expr ';' Expr

// Parse parses an expression. It reads src until EOF, or until a rune given
// with StopOn follows a complete expression. Errors from invalid input
// implement InputError.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	l := lex(src, p.wseof)
	c := newConverter()
	var end int
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			end = tok.pos
			break
		}
		if err := c.feed(tok); err != nil {
			return nil, err
		}
	}
	rpn, err := c.finish(end)
	if err != nil {
		return nil, err
	}
	e, err := build(rpn)
	if err != nil {
		return nil, err
	}
	if p.simplify {
		e = e.Simplify()
	}
	return e, nil
}

// ParseString is a shortcut to parse a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// build runs the postfix tokens through a stack machine to build the tree.
func build(rpn []lexToken) (*Expr, error) {
	var stack []*Expr
	pos := 1
	for _, tok := range rpn {
		pos = tok.pos
		need := 0
		switch tok.kind {
		case tokenUnary, tokenPostfix:
			need = 1
		case tokenOp, tokenImplicit, tokenCall:
			need = 2
		case tokenClose:
			need = tok.n
		}
		if len(stack) < need {
			return nil, &OperandError{Col: tok.pos, Operator: tok.text}
		}
		args := stack[len(stack)-need:]
		var e *Expr
		switch tok.kind {
		case tokenNum:
			e = Const(tok.val)
		case tokenIdent:
			e = Symbol(tok.text)
		case tokenUnary:
			e = args[0]
			if tok.text == "-" {
				e = unary(unNeg, e)
			}
		case tokenPostfix:
			e = unary(postfixFor[tok.text], args[0])
		case tokenOp, tokenImplicit, tokenCall:
			var err error
			if e, err = infixNode(tok, args[0], args[1]); err != nil {
				return nil, err
			}
		case tokenClose:
			e = groupNode(tok, append([]*Expr(nil), args...))
		default:
			panic("calculator: unexpected token in postfix: " + tok.String())
		}
		stack = append(stack[:len(stack)-need], e)
	}
	switch len(stack) {
	case 0:
		return nil, &EmptyExpressionError{Col: pos}
	case 1:
		return stack[0], nil
	}
	return nil, &LeftoverError{Col: pos, Count: len(stack)}
}

// groupNode builds the node for a closed group.
func groupNode(tok lexToken, elems []*Expr) *Expr {
	switch tok.text {
	case "]":
		return vector(elems)
	case "|":
		return unary(unAbs, elems[0])
	case "":
		if len(elems) == 1 {
			return elems[0]
		}
		return vector(elems)
	}
	if len(elems) == 1 {
		return elems[0]
	}
	return list(elems)
}

func infixNode(tok lexToken, l, r *Expr) (*Expr, error) {
	switch tok.kind {
	case tokenImplicit:
		return implicit(l, r, false), nil
	case tokenCall:
		return implicit(l, r, true), nil
	}
	switch tok.text {
	case ";":
		return sequence(l, r), nil
	case ":=":
		return definition(tok, l, r)
	case "=:":
		return definition(tok, r, l)
	case "->":
		params, ok := lambdaParams(l)
		if !ok {
			return nil, &DefinitionError{Col: tok.pos, Target: l.String()}
		}
		return lambda(params, r), nil
	}
	op, ok := binopFor[tok.text]
	if !ok {
		panic("calculator: unknown operator " + tok.String())
	}
	return binary(op, l, r), nil
}

// definition builds a definition of target, either a name or a function
// signature like f(x, y).
func definition(tok lexToken, target, val *Expr) (*Expr, error) {
	switch target.kind {
	case exprSymbol:
		return define(target.name, val), nil
	case exprImplicit:
		if target.left.kind != exprSymbol {
			break
		}
		params, ok := lambdaParams(target.right)
		if !ok {
			break
		}
		return define(target.left.name, lambda(params, val)), nil
	}
	return nil, &DefinitionError{Col: tok.pos, Target: target.String()}
}

// lambdaParams extracts distinct parameter names from a name or a list of
// names.
func lambdaParams(e *Expr) ([]string, bool) {
	switch e.kind {
	case exprSymbol:
		return []string{e.name}, true
	case exprList:
		seen := make(map[string]bool, len(e.elems))
		params := make([]string, len(e.elems))
		for i, x := range e.elems {
			if x.kind != exprSymbol || seen[x.name] {
				return nil, false
			}
			seen[x.name] = true
			params[i] = x.name
		}
		return params, true
	}
	return nil, false
}
