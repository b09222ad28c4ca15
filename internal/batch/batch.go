// Package batch evaluates many independent expressions concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	multierror "github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/arith"
)

// ErrSkipped is the error of a result whose expression was never evaluated
// because the run was cancelled.
var ErrSkipped = errors.New("not evaluated")

// Result is the outcome of evaluating one expression.
type Result struct {
	// Line is the 1-based position of the expression in the batch.
	Line int
	// Src is the expression text.
	Src string
	// Tree is the parsed expression, or nil if parsing failed.
	Tree arith.Node
	// Value is the result of evaluation. It is meaningful only if Err is nil.
	Value float64
	// Err is the lexing, parsing, or evaluation error, if any.
	Err error
	// Cached is whether the result came from the cache.
	Cached bool
}

// Results holds the results of a batch in input order.
type Results []Result

// Err returns an error listing every failed expression, or nil if all
// succeeded.
func (rs Results) Err() error {
	var errs *multierror.Error
	for _, r := range rs {
		if r.Err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w", r.Line, r.Err))
		}
	}
	return errs.ErrorOrNil()
}

// Runner evaluates batches of expressions with a shared evaluator.
type Runner struct {
	ev        *arith.Evaluator
	workers   int
	cacheSize int
	cache     *lru.Cache
}

// Option configures a Runner.
type Option func(*Runner)

// Workers sets the maximum number of expressions evaluated at once. The
// default is GOMAXPROCS.
func Workers(n int) Option {
	return func(r *Runner) {
		r.workers = n
	}
}

// CacheSize sets the number of results remembered by source text. Zero
// disables the cache.
func CacheSize(n int) Option {
	return func(r *Runner) {
		r.cacheSize = n
	}
}

// New creates a Runner evaluating with ev. Expressions are parsed with the
// parse options of ev.
func New(ev *arith.Evaluator, options ...Option) (*Runner, error) {
	runner := Runner{
		ev:        ev,
		workers:   runtime.GOMAXPROCS(0),
		cacheSize: 128,
	}

	for _, apply := range options {
		apply(&runner)
	}

	if runner.workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", runner.workers)
	}

	switch {
	case runner.cacheSize < 0:
		return nil, fmt.Errorf("cache size must not be negative, got %d", runner.cacheSize)
	case runner.cacheSize > 0:
		c, err := lru.New(runner.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache of size %d: %w", runner.cacheSize, err)
		}
		runner.cache = c
	}

	return &runner, nil
}

// cached is a cache entry. Failures are cached along with values, since
// both depend only on the source text. The tree is kept for display only;
// cached trees are never evaluated again.
type cached struct {
	tree  arith.Node
	value float64
	err   error
}

// Run evaluates each of srcs as an independent expression. The results are
// in the same order as srcs. The returned error is non-nil only if ctx is
// cancelled before every expression is evaluated; failures of individual
// expressions are reported through Results.
func (r *Runner) Run(ctx context.Context, srcs []string) (Results, error) {
	results := make(Results, len(srcs))
	for i, src := range srcs {
		results[i] = Result{Line: i + 1, Src: src, Err: ErrSkipped}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)

	for i := range srcs {
		if groupCtx.Err() != nil {
			break
		}

		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i] = r.eval(groupCtx, results[i])
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, fmt.Errorf("run batch: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("run batch: %w", err)
	}

	return results, nil
}

func (r *Runner) eval(ctx context.Context, res Result) Result {
	logger := zerolog.Ctx(ctx).With().Int("line", res.Line).Str("src", res.Src).Logger()

	if r.cache != nil {
		if v, ok := r.cache.Get(res.Src); ok {
			c := v.(cached)
			logger.Debug().Msg("cache hit")

			res.Tree, res.Value, res.Err, res.Cached = c.tree, c.value, c.err, true
			return res
		}
	}

	res.Value, res.Err = 0, nil
	n, err := r.ev.ParseString(res.Src)
	if err == nil {
		res.Tree = n
		res.Value, err = r.ev.Eval(n)
	}
	res.Err = err

	if r.cache != nil {
		r.cache.Add(res.Src, cached{tree: res.Tree, value: res.Value, err: res.Err})
	}

	if err != nil {
		logger.Debug().Err(err).Msg("evaluation failed")
		return res
	}

	logger.Debug().Float64("value", res.Value).Msg("evaluated")
	return res
}
