package eval

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v2"

	"github.com/zephyrtronium/arith"
	"github.com/zephyrtronium/arith/internal/batch"
	"github.com/zephyrtronium/arith/internal/commandinit"
	"github.com/zephyrtronium/arith/internal/config"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Evaluates each argument as an expression, or each line of input if there are none.",
		ArgsUsage: "[expr...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Format verb for results.",
				Value: "%g",
			},
			&cli.BoolFlag{
				Name:  "echo",
				Usage: "Print the parse tree of each expression.",
			},
			&cli.StringFlag{
				Name:  "in",
				Usage: `Input file, or "-" for stdin. Read only when no expressions are given as arguments.`,
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

	evalCfg, err := config.ReadEval(cliCtx, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := commandinit.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel, "eval")
	ctx := logger.WithContext(cliCtx.Context)

	srcs := cliCtx.Args().Slice()
	if len(srcs) == 0 {
		srcs, err = readInput(evalCfg.Input, cliCtx.App.Reader)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}

	ev := arith.NewEvaluator(arith.WithLogger(logger), arith.WithParseOptions(cfg.ParseOptions()...))

	runner, err := batch.New(
		ev,
		batch.Workers(cfg.Workers),
		batch.CacheSize(cfg.CacheSize),
	)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	results, err := runner.Run(ctx, srcs)
	if err != nil {
		return fmt.Errorf("run command: %w", err)
	}

	out := cliCtx.App.Writer
	for _, r := range results {
		if evalCfg.Echo && r.Tree != nil {
			fmt.Fprintf(out, "%v : ", r.Tree)
		}

		if r.Err != nil {
			fmt.Fprintf(out, "%s: %v\n", r.Src, r.Err)
			continue
		}

		fmt.Fprintf(out, "%s = ", r.Src)
		fmt.Fprintf(out, evalCfg.Format, r.Value)
		fmt.Fprintln(out)
	}

	if err := results.Err(); err != nil {
		logger.Debug().Err(err).Msg("evaluate")
		return ErrCommandFailed
	}

	return nil
}

// readInput reads one expression per line from the named file, or from
// stdin if name is empty or "-". Newlines are not whitespace to the lexer,
// so line endings are removed. Blank lines are skipped.
func readInput(name string, stdin io.Reader) ([]string, error) {
	in := stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		in = f
	}

	var srcs []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		srcs = append(srcs, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return srcs, nil
}
