package calculator

// group is an open group on the converter's operator stack.
type group struct {
	open lexToken
	// seps is the number of separators seen in the group.
	seps int
	// started reports whether the current element has any tokens.
	started bool
}

// converter rearranges tokens from infix into postfix order. The whole input
// is wrapped in an outer group, opened by an open token with empty text.
// Close tokens in the output carry the number of elements in their group, so
// separators are not emitted.
type converter struct {
	out    []lexToken
	stack  []lexToken
	groups []group
	// prev is the kind of the last token fed.
	prev tokenKind
}

func newConverter() *converter {
	outer := lexToken{kind: tokenOpen, pos: 1}
	return &converter{
		stack:  []lexToken{outer},
		groups: []group{{open: outer}},
	}
}

// ends reports whether a token of kind k ends an operand.
func ends(k tokenKind) bool {
	switch k {
	case tokenNum, tokenIdent, tokenClose, tokenPostfix:
		return true
	}
	return false
}

// precOf returns the precedence of an operator on the stack.
func precOf(tok lexToken) operator {
	switch tok.kind {
	case tokenOp:
		return infix[tok.text]
	case tokenUnary:
		return opPrefix
	case tokenImplicit:
		return opImplicit
	case tokenCall:
		return opCall
	}
	panic("calculator: precedence of " + tok.String())
}

func (c *converter) top() lexToken {
	return c.stack[len(c.stack)-1]
}

func (c *converter) pop() lexToken {
	tok := c.top()
	c.stack = c.stack[:len(c.stack)-1]
	return tok
}

func (c *converter) start() {
	c.groups[len(c.groups)-1].started = true
}

// feed processes one token. It must not be called with an EOF token.
func (c *converter) feed(tok lexToken) error {
	defer func() { c.prev = tok.kind }()
	switch tok.kind {
	case tokenNum, tokenIdent:
		c.start()
		c.out = append(c.out, tok)
	case tokenUnary:
		c.start()
		c.stack = append(c.stack, tok)
	case tokenCall:
		c.stack = append(c.stack, tok)
	case tokenOpen:
		c.start()
		c.stack = append(c.stack, tok)
		c.groups = append(c.groups, group{open: tok})
	case tokenPostfix:
		if !ends(c.prev) {
			return &OperandError{Col: tok.pos, Operator: tok.text}
		}
		c.out = append(c.out, tok)
	case tokenOp, tokenImplicit:
		if !ends(c.prev) {
			return &OperandError{Col: tok.pos, Operator: tok.text}
		}
		return c.operator(tok)
	case tokenSep:
		g := &c.groups[len(c.groups)-1]
		if !g.started || !ends(c.prev) {
			return &SeparatorError{Col: tok.pos, Sep: tok.text}
		}
		c.drain()
		g.seps++
		g.started = false
	case tokenClose:
		return c.close(tok)
	default:
		panic("calculator: converter got " + tok.String())
	}
	return nil
}

// operator pops operators that bind at least as tightly as the incoming one,
// then pushes it.
func (c *converter) operator(tok lexToken) error {
	o := precOf(tok)
	for {
		t := c.top()
		if t.kind == tokenOpen {
			break
		}
		p := precOf(t)
		if p.prec < o.prec || p.prec == o.prec && o.right {
			break
		}
		if o.prec == precRel && p.prec == precRel {
			return &OperatorError{Col: tok.pos, Operator: tok.text, Reason: "relations cannot be chained"}
		}
		c.out = append(c.out, c.pop())
	}
	c.stack = append(c.stack, tok)
	return nil
}

// drain emits operators down to the innermost open group.
func (c *converter) drain() {
	for c.top().kind != tokenOpen {
		c.out = append(c.out, c.pop())
	}
}

// close ends the innermost group with tok.
func (c *converter) close(tok lexToken) error {
	c.drain()
	open := c.top()
	if open.text == "" && tok.text != "" {
		return &BracketError{Col: tok.pos, Right: tok.text}
	}
	if brackets[open.text] != tok.text {
		if tok.text == "" {
			return &BracketError{Col: open.pos, Left: open.text}
		}
		return &BracketError{Col: tok.pos, Left: open.text, Right: tok.text}
	}
	g := c.groups[len(c.groups)-1]
	if g.started && !ends(c.prev) {
		return &OperandError{Col: tok.pos, Operator: c.lastOp()}
	}
	if !g.started && g.seps > 0 {
		return &SeparatorError{Col: tok.pos, Sep: ","}
	}
	tok.n = 0
	if g.started || g.seps > 0 {
		tok.n = g.seps + 1
	}
	switch {
	case tok.n == 0 && (open.text == "" || open.text == "|"):
		return &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tok.n > 1 && open.text == "|":
		return &SeparatorError{Col: tok.pos, Sep: ","}
	}
	c.pop()
	c.groups = c.groups[:len(c.groups)-1]
	c.out = append(c.out, tok)
	if len(c.stack) > 0 && c.top().kind == tokenCall {
		c.out = append(c.out, c.pop())
	}
	return nil
}

// lastOp returns the text of the most recent operator in the output or on
// the stack, for error messages.
func (c *converter) lastOp() string {
	if len(c.stack) > 0 {
		if t := c.top(); t.kind != tokenOpen {
			return t.text
		}
	}
	if len(c.out) > 0 {
		return c.out[len(c.out)-1].text
	}
	return ""
}

// finish closes the outer group at the end of the input and returns the
// postfix tokens.
func (c *converter) finish(pos int) ([]lexToken, error) {
	if err := c.close(lexToken{kind: tokenClose, pos: pos}); err != nil {
		return nil, err
	}
	return c.out, nil
}
