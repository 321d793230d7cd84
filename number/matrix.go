package number

import "strings"

// Matrix is a two-dimensional grid of numbers stored in row-major order.
type Matrix struct {
	rows, cols int
	data       []Number
}

// NewMatrix builds a matrix from its rows, which must all have the same
// length.
func NewMatrix(rows [][]Number) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}
	cols := len(rows[0])
	data := make([]Number, 0, len(rows)*cols)
	for _, r := range rows {
		if len(r) != cols {
			return Matrix{}, &ShapeError{Op: "matrix", Have: [2]int{1, len(r)}, Want: [2]int{1, cols}}
		}
		data = append(data, r...)
	}
	return Matrix{rows: len(rows), cols: cols, data: data}, nil
}

// Identity returns the n by n identity matrix.
func Identity(n int) Matrix {
	m := zeros(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = One
	}
	return m
}

func zeros(rows, cols int) Matrix {
	data := make([]Number, rows*cols)
	for i := range data {
		data[i] = Zero
	}
	return Matrix{rows: rows, cols: cols, data: data}
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// At returns the element at row i and column j, or Zero outside the matrix.
func (m Matrix) At(i, j int) Number {
	if i < 0 || j < 0 || i >= m.rows || j >= m.cols {
		return Zero
	}
	return m.data[i*m.cols+j]
}

// Row returns row i as a vector.
func (m Matrix) Row(i int) Vector {
	if i < 0 || i >= m.rows {
		return Vector{}
	}
	return NewVector(m.data[i*m.cols : (i+1)*m.cols]...)
}

func (m Matrix) shape() [2]int { return [2]int{m.rows, m.cols} }

func (m Matrix) square() bool { return m.rows == m.cols }

func (m Matrix) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Row(i).String())
	}
	b.WriteByte(']')
	return b.String()
}

func (m Matrix) IsPrecise() bool {
	for _, e := range m.data {
		if !e.IsPrecise() {
			return false
		}
	}
	return true
}

// Map applies f to every element.
func (m Matrix) Map(f func(Number) (Number, error)) (Matrix, error) {
	r := Matrix{rows: m.rows, cols: m.cols, data: make([]Number, len(m.data))}
	for i, e := range m.data {
		var err error
		if r.data[i], err = f(e); err != nil {
			return Matrix{}, err
		}
	}
	return r, nil
}

// Transpose returns the transposed matrix.
func (m Matrix) Transpose() Matrix {
	r := Matrix{rows: m.cols, cols: m.rows, data: make([]Number, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			r.data[j*r.cols+i] = m.data[i*m.cols+j]
		}
	}
	return r
}

// column converts a vector to a matrix with one column.
func column(v Vector) Matrix {
	return Matrix{rows: v.Len(), cols: 1, data: v.Elems()}
}

func (m Matrix) dispatch(op arithOp, x Number) (Number, error) {
	var y Number
	switch x := x.(type) {
	case Real, Complex, Matrix:
		y = x
	case Vector:
		if s, ok := x.scalar(); ok {
			y = s
			break
		}
		switch op {
		case opMul:
			return m.mulVector(x)
		case opPow, opPowOther:
			return nil, &UnsupportedError{Op: "^", Kind: "vectors and matrices"}
		}
		y = column(x)
	default:
		return mirror(op, m, x)
	}
	var a, b Number = m, y
	op, swap := op.plain()
	if swap {
		a, b = b, a
	}
	return matrixArith(op, a, b)
}

// matrixArith computes a op b where at least one operand is a matrix and the
// other is a matrix or a scalar.
func matrixArith(op arithOp, a, b Number) (Number, error) {
	ma, aok := a.(Matrix)
	mb, bok := b.(Matrix)
	switch {
	case aok && bok:
		switch op {
		case opAdd, opSub:
			if ma.shape() != mb.shape() {
				return nil, &ShapeError{Op: op.String(), Have: mb.shape(), Want: ma.shape()}
			}
			r := Matrix{rows: ma.rows, cols: ma.cols, data: make([]Number, len(ma.data))}
			for i := range r.data {
				var err error
				if r.data[i], err = apply(op, ma.data[i], mb.data[i]); err != nil {
					return nil, err
				}
			}
			return r, nil
		case opMul:
			return ma.mul(mb)
		case opDiv:
			inv, err := mb.Inverse()
			if err != nil {
				return nil, err
			}
			return ma.mul(inv)
		}
		return nil, &UnsupportedError{Op: op.String(), Kind: "matrix exponents"}
	case aok:
		switch op {
		case opPow:
			return ma.power(b)
		}
		return ma.Map(func(e Number) (Number, error) { return apply(op, e, b) })
	default:
		switch op {
		case opDiv:
			inv, err := mb.Inverse()
			if err != nil {
				return nil, err
			}
			return inv.Map(func(e Number) (Number, error) { return a.Mul(e) })
		case opPow:
			return nil, &UnsupportedError{Op: op.String(), Kind: "matrix exponents"}
		}
		return mb.Map(func(e Number) (Number, error) { return apply(op, a, e) })
	}
}

func (m Matrix) mul(n Matrix) (Matrix, error) {
	if m.cols != n.rows {
		return Matrix{}, &ShapeError{Op: "*", Have: n.shape(), Want: [2]int{m.cols, n.cols}}
	}
	r := Matrix{rows: m.rows, cols: n.cols, data: make([]Number, m.rows*n.cols)}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < n.cols; j++ {
			var sum Number = Zero
			for k := 0; k < m.cols; k++ {
				p, err := m.At(i, k).Mul(n.At(k, j))
				if err != nil {
					return Matrix{}, err
				}
				if sum, err = sum.Add(p); err != nil {
					return Matrix{}, err
				}
			}
			r.data[i*r.cols+j] = sum
		}
	}
	return r, nil
}

// mulVector multiplies m by the column vector v.
func (m Matrix) mulVector(v Vector) (Vector, error) {
	if m.cols != v.Len() {
		return Vector{}, &ShapeError{Op: "*", Have: [2]int{v.Len(), 1}, Want: [2]int{m.cols, 1}}
	}
	r := make([]Number, m.rows)
	for i := range r {
		var err error
		if r[i], err = m.Row(i).Dot(v); err != nil {
			return Vector{}, err
		}
	}
	return Vector{elems: r}, nil
}

// power raises a square matrix to an integer power. Any matrix with full rank
// can be raised to -1, which gives its (pseudo-)inverse.
func (m Matrix) power(x Number) (Number, error) {
	n, ok := Int64(x)
	if !ok {
		return nil, &UnsupportedError{Op: "^", Kind: "non-integer matrix exponents"}
	}
	if n == -1 {
		return m.Inverse()
	}
	if !m.square() {
		return nil, &ShapeError{Op: "^", Have: m.shape(), Want: [2]int{m.rows, m.rows}}
	}
	base := m
	if n < 0 {
		inv, err := m.Inverse()
		if err != nil {
			return nil, err
		}
		base, n = inv, -n
	}
	r := Identity(m.rows)
	for n > 0 {
		var err error
		if n&1 != 0 {
			if r, err = r.mul(base); err != nil {
				return nil, err
			}
		}
		if n >>= 1; n > 0 {
			if base, err = base.mul(base); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func (m Matrix) Add(x Number) (Number, error)      { return m.dispatch(opAdd, x) }
func (m Matrix) Sub(x Number) (Number, error)      { return m.dispatch(opSub, x) }
func (m Matrix) SubFrom(x Number) (Number, error)  { return m.dispatch(opSubFrom, x) }
func (m Matrix) Mul(x Number) (Number, error)      { return m.dispatch(opMul, x) }
func (m Matrix) Div(x Number) (Number, error)      { return m.dispatch(opDiv, x) }
func (m Matrix) DivOther(x Number) (Number, error) { return m.dispatch(opDivOther, x) }
func (m Matrix) Pow(x Number) (Number, error)      { return m.dispatch(opPow, x) }
func (m Matrix) PowOther(x Number) (Number, error) { return m.dispatch(opPowOther, x) }

func (m Matrix) Neg() Number {
	r, _ := m.Map(func(e Number) (Number, error) { return e.Neg(), nil })
	return r
}

func (m Matrix) Inv() (Number, error) {
	return m.Inverse()
}

// Abs returns the determinant.
func (m Matrix) Abs() (Number, error) {
	return m.Det()
}

// Det returns the determinant of a square matrix. Sizes up to three use the
// closed forms; larger matrices use cofactor expansion along the first row.
func (m Matrix) Det() (Number, error) {
	if !m.square() {
		return nil, &ShapeError{Op: "det", Have: m.shape(), Want: [2]int{m.rows, m.rows}}
	}
	switch m.rows {
	case 0:
		return One, nil
	case 1:
		return m.data[0], nil
	case 2:
		return cross(m.At(0, 0), m.At(1, 1), m.At(0, 1), m.At(1, 0))
	case 3:
		// Rule of Sarrus.
		var sum Number = Zero
		for j := 0; j < 3; j++ {
			p, err := product(m.At(0, j), m.At(1, (j+1)%3), m.At(2, (j+2)%3))
			if err != nil {
				return nil, err
			}
			q, err := product(m.At(0, j), m.At(1, (j+2)%3), m.At(2, (j+1)%3))
			if err != nil {
				return nil, err
			}
			if sum, err = sum.Add(p); err != nil {
				return nil, err
			}
			if sum, err = sum.Sub(q); err != nil {
				return nil, err
			}
		}
		return sum, nil
	}
	var sum Number = Zero
	for j := 0; j < m.cols; j++ {
		c, err := m.cofactor(0, j)
		if err != nil {
			return nil, err
		}
		t, err := m.At(0, j).Mul(c)
		if err != nil {
			return nil, err
		}
		if sum, err = sum.Add(t); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// cross returns a*b - c*d.
func cross(a, b, c, d Number) (Number, error) {
	p, err := a.Mul(b)
	if err != nil {
		return nil, err
	}
	q, err := c.Mul(d)
	if err != nil {
		return nil, err
	}
	return p.Sub(q)
}

func product(xs ...Number) (Number, error) {
	var r Number = One
	for _, x := range xs {
		var err error
		if r, err = r.Mul(x); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Minor returns the matrix with row i and column j removed.
func (m Matrix) Minor(i, j int) Matrix {
	r := Matrix{rows: m.rows - 1, cols: m.cols - 1}
	for k := 0; k < m.rows; k++ {
		if k == i {
			continue
		}
		for l := 0; l < m.cols; l++ {
			if l != j {
				r.data = append(r.data, m.At(k, l))
			}
		}
	}
	return r
}

func (m Matrix) cofactor(i, j int) (Number, error) {
	d, err := m.Minor(i, j).Det()
	if err != nil {
		return nil, err
	}
	if (i+j)%2 != 0 {
		return d.Neg(), nil
	}
	return d, nil
}

// Cofactors returns the matrix of cofactors of a square matrix.
func (m Matrix) Cofactors() (Matrix, error) {
	if !m.square() {
		return Matrix{}, &ShapeError{Op: "cofactors", Have: m.shape(), Want: [2]int{m.rows, m.rows}}
	}
	r := Matrix{rows: m.rows, cols: m.cols, data: make([]Number, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			var err error
			if r.data[i*m.cols+j], err = m.cofactor(i, j); err != nil {
				return Matrix{}, err
			}
		}
	}
	return r, nil
}

// Adjugate returns the transpose of the cofactor matrix.
func (m Matrix) Adjugate() (Matrix, error) {
	c, err := m.Cofactors()
	if err != nil {
		return Matrix{}, err
	}
	return c.Transpose(), nil
}

// Inverse returns the inverse of a square matrix, or the Moore-Penrose
// pseudo-inverse of a matrix with full rank that is not square.
func (m Matrix) Inverse() (Matrix, error) {
	if !m.square() {
		t := m.Transpose()
		if m.rows > m.cols {
			// (A^T A)^-1 A^T
			p, err := t.mul(m)
			if err != nil {
				return Matrix{}, err
			}
			if p, err = p.Inverse(); err != nil {
				return Matrix{}, err
			}
			return p.mul(t)
		}
		// A^T (A A^T)^-1
		p, err := m.mul(t)
		if err != nil {
			return Matrix{}, err
		}
		if p, err = p.Inverse(); err != nil {
			return Matrix{}, err
		}
		return t.mul(p)
	}
	d, err := m.Det()
	if err != nil {
		return Matrix{}, err
	}
	if IsZero(d) {
		return Matrix{}, &ArithmeticError{Op: "inverse", Reason: "singular matrix"}
	}
	var adj Matrix
	switch m.rows {
	case 1:
		adj = Identity(1)
	case 2:
		adj = Matrix{rows: 2, cols: 2, data: []Number{
			m.At(1, 1), m.At(0, 1).Neg(),
			m.At(1, 0).Neg(), m.At(0, 0),
		}}
	default:
		if adj, err = m.Adjugate(); err != nil {
			return Matrix{}, err
		}
	}
	return adj.Map(func(e Number) (Number, error) { return e.Div(d) })
}

func (m Matrix) Equal(x Number) (bool, error) {
	switch x := x.(type) {
	case Matrix:
		if m.shape() != x.shape() {
			return false, nil
		}
		for i := range m.data {
			eq, err := m.data[i].Equal(x.data[i])
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case Real, Complex, Vector:
		return false, nil
	}
	return x.Equal(m)
}

func (m Matrix) Less(x Number) (bool, error) {
	switch x.(type) {
	case Real, Complex, Vector, Matrix:
		return false, &UnsupportedError{Op: "comparison", Kind: "matrices"}
	}
	return x.Greater(m)
}

func (m Matrix) Greater(x Number) (bool, error) {
	switch x.(type) {
	case Real, Complex, Vector, Matrix:
		return false, &UnsupportedError{Op: "comparison", Kind: "matrices"}
	}
	return x.Less(m)
}
