package root

import (
	cli "github.com/urfave/cli/v2"

	"github.com/zephyrtronium/arith"
	"github.com/zephyrtronium/arith/internal/commands/eval"
	"github.com/zephyrtronium/arith/internal/commands/lex"
	"github.com/zephyrtronium/arith/internal/commands/parse"
)

func NewCommand() *cli.App {
	return &cli.App{
		Name:  "arith",
		Usage: "Evaluates arithmetic expressions.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Minimum level of log messages: trace, debug, info, warn, error, or disabled.",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "swap-operands",
				Usage: "Store the right operand of + - * / in the left child of the tree.",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "Maximum nesting depth of expressions. 0 removes the limit, which lets deep input crash the process.",
				Value: arith.DefaultMaxDepth,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of expressions evaluated at once, or 0 for one per CPU.",
			},
			&cli.IntFlag{
				Name:  "cache-size",
				Usage: "Number of results remembered by expression text, or 0 to disable.",
				Value: 128,
			},
		},
		Commands: []*cli.Command{
			eval.NewCommand(),
			lex.NewCommand(),
			parse.NewCommand(),
		},
	}
}
