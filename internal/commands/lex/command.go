package lex

import (
	"errors"
	"fmt"
	"io"
	"strings"

	cli "github.com/urfave/cli/v2"

	"github.com/zephyrtronium/arith"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "lex",
		Usage:     "Prints the tokens of an expression, one per line.",
		ArgsUsage: "<expr>",
		Action:    run,
	}
}

func run(cliCtx *cli.Context) error {
	src := strings.Join(cliCtx.Args().Slice(), " ")
	lexer := arith.NewLexer(strings.NewReader(src))

	out := cliCtx.App.Writer
	for {
		tok, err := lexer.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lex: %w", err)
		}

		fmt.Fprintf(out, "%s\t%s\n", tok.Kind, tok)
	}
}
