package number

import "strings"

// Vector is a fixed-length sequence of numbers. Reading past the end yields
// Zero, so vectors of different lengths combine as if the shorter one were
// padded with zeros. A vector of length one acts as a scalar.
type Vector struct {
	elems []Number
}

// NewVector returns a vector of the given elements. The slice is copied.
func NewVector(elems ...Number) Vector {
	return Vector{elems: append([]Number(nil), elems...)}
}

// Len returns the number of elements.
func (v Vector) Len() int { return len(v.elems) }

// At returns the i-th element, or Zero if i is out of range.
func (v Vector) At(i int) Number {
	if i < 0 || i >= len(v.elems) {
		return Zero
	}
	return v.elems[i]
}

// Elems returns a copy of the elements.
func (v Vector) Elems() []Number {
	return append([]Number(nil), v.elems...)
}

func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range v.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (v Vector) IsPrecise() bool {
	for _, e := range v.elems {
		if !e.IsPrecise() {
			return false
		}
	}
	return true
}

// scalar returns the single element of a vector of length one.
func (v Vector) scalar() (Number, bool) {
	if len(v.elems) == 1 {
		return v.elems[0], true
	}
	return nil, false
}

// Map applies f to every element.
func (v Vector) Map(f func(Number) (Number, error)) (Vector, error) {
	r := make([]Number, len(v.elems))
	for i, e := range v.elems {
		var err error
		if r[i], err = f(e); err != nil {
			return Vector{}, err
		}
	}
	return Vector{elems: r}, nil
}

func (v Vector) dispatch(op arithOp, x Number) (Number, error) {
	if s, ok := v.scalar(); ok {
		if _, ok := x.(Vector); !ok {
			return apply(op, s, x)
		}
	}
	switch x := x.(type) {
	case Real, Complex:
		return v.Map(func(e Number) (Number, error) { return apply(op, e, x) })
	case Vector:
		if s, ok := x.scalar(); ok {
			return v.dispatch(op, s)
		}
		if s, ok := v.scalar(); ok {
			return mirror(op, s, x)
		}
		if op == opMul {
			return v.Dot(x)
		}
		n := len(v.elems)
		if len(x.elems) > n {
			n = len(x.elems)
		}
		r := make([]Number, n)
		for i := range r {
			var err error
			if r[i], err = apply(op, v.At(i), x.At(i)); err != nil {
				return nil, err
			}
		}
		return Vector{elems: r}, nil
	case Matrix:
		if op == opMul {
			// Row vector times matrix.
			return x.Transpose().mulVector(v)
		}
	}
	return mirror(op, v, x)
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) (Number, error) {
	n := len(v.elems)
	if len(w.elems) > n {
		n = len(w.elems)
	}
	var sum Number = Zero
	for i := 0; i < n; i++ {
		p, err := v.At(i).Mul(w.At(i))
		if err != nil {
			return nil, err
		}
		if sum, err = sum.Add(p); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

func (v Vector) Add(x Number) (Number, error)      { return v.dispatch(opAdd, x) }
func (v Vector) Sub(x Number) (Number, error)      { return v.dispatch(opSub, x) }
func (v Vector) SubFrom(x Number) (Number, error)  { return v.dispatch(opSubFrom, x) }
func (v Vector) Mul(x Number) (Number, error)      { return v.dispatch(opMul, x) }
func (v Vector) Div(x Number) (Number, error)      { return v.dispatch(opDiv, x) }
func (v Vector) DivOther(x Number) (Number, error) { return v.dispatch(opDivOther, x) }
func (v Vector) Pow(x Number) (Number, error)      { return v.dispatch(opPow, x) }
func (v Vector) PowOther(x Number) (Number, error) { return v.dispatch(opPowOther, x) }

func (v Vector) Neg() Number {
	r := make([]Number, len(v.elems))
	for i, e := range v.elems {
		r[i] = e.Neg()
	}
	return Vector{elems: r}
}

// Inv inverts every element.
func (v Vector) Inv() (Number, error) {
	return v.Map(Number.Inv)
}

// Abs returns the Euclidean norm.
func (v Vector) Abs() (Number, error) {
	var sum Number = Zero
	for _, e := range v.elems {
		a, err := e.Abs()
		if err != nil {
			return nil, err
		}
		if a, err = a.Mul(a); err != nil {
			return nil, err
		}
		if sum, err = sum.Add(a); err != nil {
			return nil, err
		}
	}
	return Special(Sqrt, sum, Precision{})
}

func (v Vector) Equal(x Number) (bool, error) {
	switch x := x.(type) {
	case Real, Complex:
		if s, ok := v.scalar(); ok {
			return s.Equal(x)
		}
		return false, nil
	case Vector:
		n := len(v.elems)
		if len(x.elems) > n {
			n = len(x.elems)
		}
		for i := 0; i < n; i++ {
			eq, err := v.At(i).Equal(x.At(i))
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case Matrix:
		return false, nil
	}
	return x.Equal(v)
}

func (v Vector) Less(x Number) (bool, error) {
	if s, ok := v.scalar(); ok {
		return s.Less(x)
	}
	if y, ok := x.(Vector); ok {
		if s, ok := y.scalar(); ok {
			return v.Less(s)
		}
	}
	switch x.(type) {
	case Real, Complex, Vector, Matrix:
		return false, &UnsupportedError{Op: "comparison", Kind: "vectors"}
	}
	return x.Greater(v)
}

func (v Vector) Greater(x Number) (bool, error) {
	if s, ok := v.scalar(); ok {
		return s.Greater(x)
	}
	if y, ok := x.(Vector); ok {
		if s, ok := y.scalar(); ok {
			return v.Greater(s)
		}
	}
	switch x.(type) {
	case Real, Complex, Vector, Matrix:
		return false, &UnsupportedError{Op: "comparison", Kind: "vectors"}
	}
	return x.Less(v)
}
