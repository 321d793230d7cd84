package number

// Complex is a complex number with real parts. Results whose imaginary part
// is a precise zero are returned as plain reals.
type Complex struct {
	re, im Real
}

// I is the imaginary unit.
var I = Complex{re: Zero, im: One}

// NewComplex returns re + im*i. Both parts must be real. The result is re
// itself when im is a precise zero.
func NewComplex(re, im Number) (Number, error) {
	r, ok := AsReal(re)
	if !ok {
		return nil, &UnsupportedError{Op: "complex part", Kind: kindOf(re)}
	}
	i, ok := AsReal(im)
	if !ok {
		return nil, &UnsupportedError{Op: "complex part", Kind: kindOf(im)}
	}
	return Complex{re: r, im: i}.shrink(), nil
}

// Re returns the real part.
func (c Complex) Re() Real { return orZero(c.re) }

// Im returns the imaginary part.
func (c Complex) Im() Real { return orZero(c.im) }

func orZero(x Real) Real {
	if x == nil {
		return Zero
	}
	return x
}

// Conj returns the complex conjugate.
func (c Complex) Conj() Complex {
	return Complex{re: c.Re(), im: c.Im().Neg().(Real)}
}

// Arg returns the angle of c in (-pi, pi].
func (c Complex) Arg(p Precision) (Real, error) {
	return Atan2(c.Im(), c.Re(), p)
}

func (c Complex) shrink() Number {
	if c.Im().Sign() == 0 && c.Im().IsPrecise() {
		return c.Re()
	}
	return c
}

func (c Complex) String() string {
	re, im := c.Re(), c.Im()
	var s string
	switch {
	case IsOne(im) && im.IsPrecise():
		s = "i"
	case im.Sign() < 0 && IsOne(im.Neg()) && im.IsPrecise():
		s = "-i"
	default:
		s = im.String() + "i"
	}
	if re.Sign() == 0 && re.IsPrecise() {
		return s
	}
	if im.Sign() >= 0 {
		return re.String() + "+" + s
	}
	return re.String() + s
}

func (c Complex) IsPrecise() bool {
	return c.Re().IsPrecise() && c.Im().IsPrecise()
}

// realOp computes a op b for reals where the result is known to be real.
func realOp(op arithOp, a, b Real) (Real, error) {
	r, err := realArith(op, a, b)
	if err != nil {
		return nil, err
	}
	return r.(Real), nil
}

func (c Complex) dispatch(op arithOp, x Number) (Number, error) {
	var y Complex
	switch x := x.(type) {
	case Real:
		y = Complex{re: x, im: Zero}
	case Complex:
		y = x
	default:
		return mirror(op, c, x)
	}
	a, b := c, y
	op, swap := op.plain()
	if swap {
		a, b = b, a
	}
	return complexArith(op, a, b)
}

func complexArith(op arithOp, a, b Complex) (Number, error) {
	ar, ai, br, bi := a.Re(), a.Im(), b.Re(), b.Im()
	switch op {
	case opAdd, opSub:
		re, err := realOp(op, ar, br)
		if err != nil {
			return nil, err
		}
		im, err := realOp(op, ai, bi)
		if err != nil {
			return nil, err
		}
		return Complex{re: re, im: im}.shrink(), nil
	case opMul:
		return complexMul(ar, ai, br, bi)
	case opDiv:
		if br.Sign() == 0 && bi.Sign() == 0 {
			return nil, divisionByZero("/")
		}
		// a/b = a conj(b) / |b|^2
		n, err := complexMul(ar, ai, br, bi.Neg().(Real))
		if err != nil {
			return nil, err
		}
		m, err := sumSquares(br, bi)
		if err != nil {
			return nil, err
		}
		nc, ok := n.(Complex)
		if !ok {
			return n.Div(m)
		}
		re, err := realOp(opDiv, nc.Re(), m)
		if err != nil {
			return nil, err
		}
		im, err := realOp(opDiv, nc.Im(), m)
		if err != nil {
			return nil, err
		}
		return Complex{re: re, im: im}.shrink(), nil
	case opPow:
		return complexPow(a, b.shrink())
	}
	panic("number: invalid complex op " + op.String())
}

// complexMul computes (a+bi)(c+di).
func complexMul(a, b, c, d Real) (Number, error) {
	ac, err := realOp(opMul, a, c)
	if err != nil {
		return nil, err
	}
	bd, err := realOp(opMul, b, d)
	if err != nil {
		return nil, err
	}
	ad, err := realOp(opMul, a, d)
	if err != nil {
		return nil, err
	}
	bc, err := realOp(opMul, b, c)
	if err != nil {
		return nil, err
	}
	re, err := realOp(opSub, ac, bd)
	if err != nil {
		return nil, err
	}
	im, err := realOp(opAdd, ad, bc)
	if err != nil {
		return nil, err
	}
	return Complex{re: re, im: im}.shrink(), nil
}

func sumSquares(a, b Real) (Real, error) {
	a2, err := realOp(opMul, a, a)
	if err != nil {
		return nil, err
	}
	b2, err := realOp(opMul, b, b)
	if err != nil {
		return nil, err
	}
	return realOp(opAdd, a2, b2)
}

// complexPow computes z^w. Integer exponents use repeated squaring so that
// exact parts stay exact; everything else goes through exp(w ln z).
func complexPow(z Complex, w Number) (Number, error) {
	if IsZero(w) {
		return One, nil
	}
	if IsZero(z) {
		wr, ok := AsReal(w)
		if !ok {
			wr = w.(Complex).Re()
		}
		if wr.Sign() <= 0 {
			return nil, &DomainError{X: w, Func: "0^x"}
		}
		return Zero, nil
	}
	if n, ok := Int64(w); ok && n >= -maxExactExponent && n <= maxExactExponent {
		neg := n < 0
		if neg {
			n = -n
		}
		var r Number = One
		var sq Number = z
		for n > 0 {
			var err error
			if n&1 != 0 {
				if r, err = r.Mul(sq); err != nil {
					return nil, err
				}
			}
			if n >>= 1; n > 0 {
				if sq, err = sq.Mul(sq); err != nil {
					return nil, err
				}
			}
		}
		if neg {
			return r.Inv()
		}
		return r, nil
	}
	l, err := complexLn(z, Precision{})
	if err != nil {
		return nil, err
	}
	e, err := l.Mul(w)
	if err != nil {
		return nil, err
	}
	return Special(Exp, e, Precision{})
}

func (c Complex) Add(x Number) (Number, error)      { return c.dispatch(opAdd, x) }
func (c Complex) Sub(x Number) (Number, error)      { return c.dispatch(opSub, x) }
func (c Complex) SubFrom(x Number) (Number, error)  { return c.dispatch(opSubFrom, x) }
func (c Complex) Mul(x Number) (Number, error)      { return c.dispatch(opMul, x) }
func (c Complex) Div(x Number) (Number, error)      { return c.dispatch(opDiv, x) }
func (c Complex) DivOther(x Number) (Number, error) { return c.dispatch(opDivOther, x) }
func (c Complex) Pow(x Number) (Number, error)      { return c.dispatch(opPow, x) }
func (c Complex) PowOther(x Number) (Number, error) { return c.dispatch(opPowOther, x) }

func (c Complex) Neg() Number {
	return Complex{re: c.Re().Neg().(Real), im: c.Im().Neg().(Real)}
}

func (c Complex) Inv() (Number, error) {
	return complexArith(opDiv, Complex{re: One, im: Zero}, c)
}

// Abs returns the modulus, which is exact when the sum of squares of the
// parts is a perfect square.
func (c Complex) Abs() (Number, error) {
	s, err := sumSquares(c.Re(), c.Im())
	if err != nil {
		return nil, err
	}
	return Special(Sqrt, s, Precision{})
}

func (c Complex) Equal(x Number) (bool, error) {
	var y Complex
	switch x := x.(type) {
	case Real:
		y = Complex{re: x, im: Zero}
	case Complex:
		y = x
	default:
		return x.Equal(c)
	}
	return cmpReals(c.Re(), y.Re()) == 0 && cmpReals(c.Im(), y.Im()) == 0, nil
}

func (c Complex) Less(x Number) (bool, error) {
	r, ok, err := c.orderable(x)
	if !ok {
		return x.Greater(c)
	}
	if err != nil {
		return false, err
	}
	return r.Less(x)
}

func (c Complex) Greater(x Number) (bool, error) {
	r, ok, err := c.orderable(x)
	if !ok {
		return x.Less(c)
	}
	if err != nil {
		return false, err
	}
	return r.Greater(x)
}

// orderable returns the real part of c if c can be ordered at all. ok is
// false when x is not a scalar and must decide.
func (c Complex) orderable(x Number) (r Real, ok bool, err error) {
	switch x.(type) {
	case Real, Complex:
	default:
		return nil, false, nil
	}
	if c.Im().Sign() != 0 {
		return nil, true, &UnsupportedError{Op: "comparison", Kind: "complex numbers"}
	}
	return c.Re(), true, nil
}
