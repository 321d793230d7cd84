package number

import (
	"math/big"
	"strconv"
)

// ParseDecimal parses an unsigned decimal literal such as "12", "1.25", or
// ".5" into an exact rational. The literal is never rounded through a float.
func ParseDecimal(s string) (Number, error) {
	var intPart, fracPart string
	dot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.' && !dot:
			dot = true
			intPart = s[:i]
			fracPart = s[i+1:]
		case c >= '0' && c <= '9':
		default:
			return nil, &strconv.NumError{Func: "ParseDecimal", Num: s, Err: strconv.ErrSyntax}
		}
	}
	if !dot {
		intPart = s
	}
	if intPart == "" && fracPart == "" {
		return nil, &strconv.NumError{Func: "ParseDecimal", Num: s, Err: strconv.ErrSyntax}
	}
	digits := intPart + fracPart
	if len(digits) <= 18 {
		n, err := strconv.ParseInt(digits, 10, 64)
		if err == nil {
			d := int64(1)
			for range fracPart {
				d *= 10
			}
			return rationalOf(n, d), nil
		}
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, &strconv.NumError{Func: "ParseDecimal", Num: s, Err: strconv.ErrSyntax}
	}
	d := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)
	return BigRational{r: new(big.Rat).SetFrac(n, d)}.shrink(), nil
}
