//go:build go1.18
// +build go1.18

package calculator_test

import (
	"testing"

	calculator "github.com/Rc-Cookie/calculator-sub000"
	"github.com/Rc-Cookie/calculator-sub000/number"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("f(y) := x y; f(2)")
	f.Add("1×2")
	f.Add("|[1, 2]| + 3!")
	f.Fuzz(func(t *testing.T, s string) {
		calculator.EvalString(s, calculator.SetVar("x", number.One))
	})
}
