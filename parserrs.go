package calculator

import (
	"errors"
	"strconv"
)

// OperatorError is an error indicating an operator used where the grammar
// does not allow it, such as a chained relation. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the offending token.
	Operator string
	// Reason describes the problem.
	Reason string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+": "+err.Reason)
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// OperandError is an error indicating an operator without enough operands. It
// implements InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that lacks operands.
	Operator string
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "missing operand for "+strconv.Quote(err.Operator))
}

func (err *OperandError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets or absolute value
// bars in the input. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating an illegal use of a comma separator,
// such as a leading or trailing comma in a list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression. It
// implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// DefinitionError is an error indicating a definition whose target is not a
// name or a function signature, or a lambda whose parameters are not names.
// It implements InputError.
type DefinitionError struct {
	// Col is the position of the := =: or -> operator.
	Col int
	// Target is the printed form of the invalid target.
	Target string
}

func (err *DefinitionError) Error() string {
	return errpos(err.Col, "cannot define "+err.Target)
}

func (err *DefinitionError) Pos() int {
	return err.Col
}

// LeftoverError is an error indicating that parsing finished with more than
// one expression. It implements InputError.
type LeftoverError struct {
	// Col is the position of the end of the input.
	Col int
	// Count is the number of expressions left.
	Count int
}

func (err *LeftoverError) Error() string {
	return errpos(err.Col, strconv.Itoa(err.Count)+" expressions left after parsing")
}

func (err *LeftoverError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input syntax implements InputError. Errors from evaluation do not.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

// IsSyntax reports whether err is or wraps an InputError.
func IsSyntax(err error) bool {
	var ie InputError
	return errors.As(err, &ie)
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*DefinitionError)(nil)
	_ InputError = (*LeftoverError)(nil)
	_ InputError = (*LexError)(nil)
)
