package root_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arith/internal/commands/eval"
	"github.com/zephyrtronium/arith/internal/commands/root"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := root.NewCommand()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"arith"}, args...))
	return out.String(), err
}

func TestEvalArgs(t *testing.T) {
	out, err := run(t, "", "eval", "(1+2)*3", "2^3^2", "-2^2", "log(8, 2)")
	require.NoError(t, err)
	assert.Equal(t, "(1+2)*3 = 9\n2^3^2 = 512\n-2^2 = -4\nlog(8, 2) = 3\n", out)
}

func TestEvalStdin(t *testing.T) {
	out, err := run(t, "1+1\r\n\n   \nsqrt(9)\n", "eval")
	require.NoError(t, err)
	assert.Equal(t, "1+1 = 2\nsqrt(9) = 3\n", out)
}

func TestEvalFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(name, []byte("2*3\nx = 4\n"), 0o644))

	out, err := run(t, "ignored", "eval", "--in", name)
	require.NoError(t, err)
	assert.Equal(t, "2*3 = 6\nx = 4 = 4\n", out)
}

func TestEvalFailure(t *testing.T) {
	out, err := run(t, "", "eval", "1+1", "x", "frob(1)")
	require.ErrorIs(t, err, eval.ErrCommandFailed)
	assert.Contains(t, out, "1+1 = 2\n")
	assert.Contains(t, out, `x: undefined variable: "x"`)
	assert.Contains(t, out, `frob(1): unknown function "frob"`)
}

func TestEvalFlags(t *testing.T) {
	out, err := run(t, "", "--swap-operands", "eval", "--format", "%.2f", "5-3")
	require.NoError(t, err)
	assert.Equal(t, "5-3 = -2.00\n", out)

	out, err = run(t, "", "eval", "--echo", "1+2")
	require.NoError(t, err)
	assert.Equal(t, "([1] + [2]) : 1+2 = 3\n", out)

	_, err = run(t, "", "--max-depth", "2", "eval", "((1))")
	assert.ErrorIs(t, err, eval.ErrCommandFailed)

	_, err = run(t, "", "--workers", "-1", "eval", "1")
	assert.ErrorContains(t, err, "invalid config")
}

func TestEvalDeepInput(t *testing.T) {
	src := strings.Repeat("(", 20000) + "1"
	out, err := run(t, "", "eval", src)
	require.ErrorIs(t, err, eval.ErrCommandFailed)
	assert.Contains(t, out, "nested deeper than 10000 levels")
}

func TestEvalEchoCached(t *testing.T) {
	out, err := run(t, "", "--workers", "1", "eval", "--echo", "2*3", "2*3", "(1")
	require.ErrorIs(t, err, eval.ErrCommandFailed)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "([2] * [3]) : 2*3 = 6", lines[0])
	assert.Equal(t, "([2] * [3]) : 2*3 = 6", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "(1: "), "unparsed line has no tree: %q", lines[2])
}

func TestParseIgnoresEvalEnv(t *testing.T) {
	t.Setenv("ARITH_ECHO", "maybe")

	out, err := run(t, "", "parse", "1+1")
	require.NoError(t, err)
	assert.Equal(t, "([1] + [1])\n", out)

	_, err = run(t, "", "eval", "1+1")
	assert.ErrorContains(t, err, "ARITH_ECHO")
}

func TestLex(t *testing.T) {
	out, err := run(t, "", "lex", "sin(x)*2.5")
	require.NoError(t, err)
	want := strings.Join([]string{
		"Identifier\tsin",
		"OpenParen\t(",
		"Identifier\tx",
		"CloseParen\t)",
		"Asterisk\t*",
		"Number\t2.5",
	}, "\n") + "\n"
	assert.Equal(t, want, out)

	_, err = run(t, "", "lex", "1 $")
	assert.ErrorContains(t, err, "lex: ")
}

func TestParse(t *testing.T) {
	out, err := run(t, "", "parse", "|-5| + log(8, 2)")
	require.NoError(t, err)
	assert.Equal(t, "([abs([-(5)])] + [log([8], [2])])\n", out)

	out, err = run(t, "", "parse", "--pretty", "x = 1")
	require.NoError(t, err)
	assert.Contains(t, out, "&arith.Assignment{")
	assert.Contains(t, out, `"x"`)
	assert.Contains(t, out, "&arith.Number{")

	_, err = run(t, "", "parse", "(1")
	assert.ErrorContains(t, err, "parse: ")
}
