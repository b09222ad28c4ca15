package arith_test

import (
	"testing"

	"github.com/zephyrtronium/arith"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y = 2^-1")
	f.Add("log(8, 2) + root(27, 3)")
	f.Fuzz(func(t *testing.T, s string) {
		arith.EvalString(s, arith.WithParseOptions(arith.MaxDepth(1000)))
	})
}
