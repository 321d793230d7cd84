package number

import "strconv"

// DomainError is returned when a function is applied to an argument outside
// its domain, e.g. the logarithm of a negative number.
type DomainError struct {
	// X is the out-of-domain argument.
	X Number
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.String() + " " + r
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// ArithmeticError is returned for operations without a result, like division
// by zero, inverting a singular matrix, or adding matrices of different
// shapes.
type ArithmeticError struct {
	Op     string
	Reason string
}

func (err *ArithmeticError) Error() string {
	if err.Op == "" {
		return err.Reason
	}
	return err.Op + ": " + err.Reason
}

func divisionByZero(op string) error {
	return &ArithmeticError{Op: op, Reason: "division by zero"}
}

// UnsupportedError is returned for operations that are not defined for a
// combination of values, like ordering complex numbers that are not real.
type UnsupportedError struct {
	Op   string
	Kind string
}

func (err *UnsupportedError) Error() string {
	return err.Op + " not supported for " + err.Kind
}

// ShapeError is returned when the dimensions of vectors or matrices do not
// fit an operation.
type ShapeError struct {
	Op         string
	Have, Want [2]int
}

func (err *ShapeError) Error() string {
	return err.Op + ": shape " + shape(err.Have) + " does not fit " + shape(err.Want)
}

func shape(s [2]int) string {
	return strconv.Itoa(s[0]) + "x" + strconv.Itoa(s[1])
}

// kindOf names the kind of x for error messages.
func kindOf(x Number) string {
	switch x.(type) {
	case Real:
		return "real numbers"
	case Complex:
		return "complex numbers"
	case Vector:
		return "vectors"
	case Matrix:
		return "matrices"
	}
	return "non-numeric values"
}
