package parse

import (
	"fmt"
	"os"
	"strings"

	"github.com/kr/pretty"
	cli "github.com/urfave/cli/v2"

	"github.com/zephyrtronium/arith"
	"github.com/zephyrtronium/arith/internal/commandinit"
	"github.com/zephyrtronium/arith/internal/config"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Prints the syntax tree of an expression.",
		ArgsUsage: "<expr>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Print the tree as Go values instead of in brackets.",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := commandinit.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel, "parse")

	src := strings.Join(cliCtx.Args().Slice(), " ")
	n, err := arith.ParseString(src, cfg.ParseOptions()...)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	logger.Debug().Stringer("tree", n).Msg("parsed")

	out := cliCtx.App.Writer
	if cliCtx.Bool("pretty") {
		fmt.Fprintf(out, "%# v\n", pretty.Formatter(n))
		return nil
	}

	fmt.Fprintln(out, n)
	return nil
}
