package arith_test

import (
	"testing"

	"github.com/zephyrtronium/arith"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("1+2*3")
	f.Add("|-sin(x, 2)|^2^y")
	f.Add("x = (1")
	f.Fuzz(func(t *testing.T, s string) {
		n, err := arith.ParseString(s, arith.MaxDepth(1000))
		if err != nil {
			if n != nil {
				t.Errorf("%q: got node %v with error %v", s, n, err)
			}
			return
		}
		if n == nil || n.String() == "" {
			t.Errorf("%q: no tree and no error", s)
		}
	})
}
