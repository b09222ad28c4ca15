package config

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/arith"
)

// Flagger is the subset of *cli.Context used to read flags.
type Flagger interface {
	String(name string) string
	Int(name string) int
	Bool(name string) bool
	IsSet(name string) bool
}

// Config holds the settings shared by all commands.
type Config struct {
	CacheSize    int
	LogLevel     zerolog.Level
	MaxDepth     int
	SwapOperands bool
	Workers      int
}

// EvalConfig holds the settings of the eval command.
type EvalConfig struct {
	Echo   bool
	Format string
	Input  string
}

// Read builds a Config from the global flags, falling back to ARITH_*
// environment variables for flags that were not given on the command line.
func Read(flags Flagger, getEnv func(string) string) (*Config, error) {
	r := reader{flags: flags, getEnv: getEnv}

	logLevel := r.str("log-level", "ARITH_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("flag --log-level: %w", err)
	}

	swap := r.bool("swap-operands", "ARITH_SWAP_OPERANDS")

	maxDepth := r.int("max-depth", "ARITH_MAX_DEPTH")
	if maxDepth < 0 {
		return nil, fmt.Errorf("flag --max-depth must not be negative, got %d", maxDepth)
	}

	workers := r.int("workers", "ARITH_WORKERS")
	switch {
	case workers < 0:
		return nil, fmt.Errorf("flag --workers must not be negative, got %d", workers)
	case workers == 0:
		workers = runtime.GOMAXPROCS(0)
	}

	cacheSize := r.int("cache-size", "ARITH_CACHE_SIZE")
	if cacheSize < 0 {
		return nil, fmt.Errorf("flag --cache-size must not be negative, got %d", cacheSize)
	}

	if r.err != nil {
		return nil, r.err
	}

	cfg := Config{
		CacheSize:    cacheSize,
		LogLevel:     level,
		MaxDepth:     maxDepth,
		SwapOperands: swap,
		Workers:      workers,
	}

	return &cfg, nil
}

// ReadEval builds an EvalConfig from the flags of the eval command in the
// same way as Read.
func ReadEval(flags Flagger, getEnv func(string) string) (*EvalConfig, error) {
	r := reader{flags: flags, getEnv: getEnv}

	format := r.str("format", "ARITH_FORMAT")
	if format == "" {
		format = "%g"
	}

	echo := r.bool("echo", "ARITH_ECHO")
	input := flags.String("in")

	if r.err != nil {
		return nil, r.err
	}

	cfg := EvalConfig{
		Echo:   echo,
		Format: format,
		Input:  input,
	}

	return &cfg, nil
}

// ParseOptions returns the parse options the config selects.
func (c *Config) ParseOptions() []arith.ParseOption {
	opts := []arith.ParseOption{arith.MaxDepth(c.MaxDepth)}
	if c.SwapOperands {
		opts = append(opts, arith.SwapOperands())
	}

	return opts
}

// reader reads each setting from its flag if the flag was given, otherwise
// from its environment variable if set, otherwise from the flag's default.
// It keeps the first malformed environment variable.
type reader struct {
	flags  Flagger
	getEnv func(string) string
	err    error
}

func (r *reader) env(flag, env string) (string, bool) {
	if r.flags.IsSet(flag) {
		return "", false
	}

	v := r.getEnv(env)
	return v, v != ""
}

func (r *reader) str(flag, env string) string {
	if v, ok := r.env(flag, env); ok {
		return v
	}

	return r.flags.String(flag)
}

func (r *reader) int(flag, env string) int {
	if v, ok := r.env(flag, env); ok {
		n, err := strconv.Atoi(v)
		if err != nil && r.err == nil {
			r.err = fmt.Errorf("env var %s: %w", env, err)
		}

		return n
	}

	return r.flags.Int(flag)
}

func (r *reader) bool(flag, env string) bool {
	if v, ok := r.env(flag, env); ok {
		b, err := strconv.ParseBool(v)
		if err != nil && r.err == nil {
			r.err = fmt.Errorf("env var %s: %w", env, err)
		}

		return b
	}

	return r.flags.Bool(flag)
}
