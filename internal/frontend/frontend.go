// File: frontend.go
// Title: Front-End Pipeline
// Description: Runs the complete front end over one source text: the lexer
//              produces the full token sequence, then a fresh parser with a
//              fresh symbol table validates it. Nothing is shared between
//              runs, so one Checker may serve any number of sources.
// Author: msto63
// Version: v0.1.2
// Created: 2026-10-13
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-13 v0.1.0: Initial pipeline
// - 2026-10-14 v0.1.1: Run IDs, source size limit, reader helpers
// - 2026-10-15 v0.1.2: Outcome cache keyed by source hash

package frontend

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/lexer"
	"github.com/msto63/minic/internal/parser"
	"github.com/msto63/minic/internal/symtab"
	"github.com/msto63/minic/pkg/core/cache"
)

// DefaultMaxSourceBytes is the largest source accepted when no limit is set
const DefaultMaxSourceBytes = 1 << 20

// ErrSourceTooLarge is returned for sources above the configured limit
var ErrSourceTooLarge = errors.New("source exceeds maximum size")

// Options configures the checker
type Options struct {
	Logger         *slog.Logger
	MaxSourceBytes int
	MaxDepth       int

	// CacheSize bounds the number of remembered outcomes. Zero disables
	// the cache.
	CacheSize int
}

// Checker runs the front end
type Checker struct {
	logger  *slog.Logger
	options Options
	cache   *cache.Cache[string, outcome]
}

// Result describes one front-end run. Diagnostic is set when the run failed
// with a language error; Symbols and Table are set only on success.
type Result struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	Name       string           `json:"name" yaml:"name"`
	OK         bool             `json:"ok" yaml:"ok"`
	Tokens     []lexer.Token    `json:"-" yaml:"-"`
	Symbols    []symtab.Entry   `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Diagnostic *diag.Diagnostic `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	Duration   time.Duration    `json:"duration_ns" yaml:"duration_ns"`
	Cached     bool             `json:"cached,omitempty" yaml:"cached,omitempty"`
	Table      *symtab.Table    `json:"-" yaml:"-"`
}

// New creates a checker with the given options
func New(opts Options) *Checker {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxSourceBytes <= 0 {
		opts.MaxSourceBytes = DefaultMaxSourceBytes
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = parser.DefaultMaxDepth
	}

	c := &Checker{
		logger:  opts.Logger.With("component", "frontend"),
		options: opts,
	}
	if opts.CacheSize > 0 {
		c.cache = cache.New[string, outcome](cache.Config{MaxItems: opts.CacheSize})
	}
	return c
}

// Check lexes and parses source. A language error yields a Result carrying
// the diagnostic together with the diagnostic as error. Host-side problems
// such as an oversized source return a nil Result.
func (c *Checker) Check(name, source string) (*Result, error) {
	if err := c.checkSize(name, len(source)); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		RunID: uuid.NewString(),
		Name:  name,
	}
	logger := c.logger.With("run_id", result.RunID, "source", name)

	key := sourceKey(source)
	if o, ok := c.lookup(key); ok {
		return c.replay(logger, result, start, o)
	}

	logger.Debug("Starting check", "bytes", len(source))

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		c.remember(key, result, err)
		return c.fail(logger, result, start, err)
	}
	result.Tokens = tokens

	p := parser.New(tokens, parser.Options{
		Logger:   logger,
		MaxDepth: c.options.MaxDepth,
	})
	table, err := p.Parse()
	if err != nil {
		c.remember(key, result, err)
		return c.fail(logger, result, start, err)
	}

	result.OK = true
	result.Table = table
	result.Symbols = table.Entries()
	result.Duration = time.Since(start)
	c.remember(key, result, nil)

	logger.Info("Check completed successfully",
		"tokens", len(tokens),
		"symbols", len(result.Symbols),
		"duration", result.Duration)

	return result, nil
}

// fail records a diagnostic on the result. Errors that are not diagnostics
// are returned as they are.
func (c *Checker) fail(logger *slog.Logger, result *Result, start time.Time, err error) (*Result, error) {
	result.Duration = time.Since(start)

	d, ok := diag.As(err)
	if !ok {
		logger.Error("Check aborted", "error", err)
		return nil, err
	}
	result.Diagnostic = d

	logger.Warn("Check failed", "diagnostic", d, "duration", result.Duration)
	return result, err
}

// Tokens lexes source without parsing it
func (c *Checker) Tokens(name, source string) ([]lexer.Token, error) {
	if err := c.checkSize(name, len(source)); err != nil {
		return nil, err
	}
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		c.logger.Warn("Tokenizing failed", "source", name, "diagnostic", err)
		return nil, err
	}
	c.logger.Debug("Tokenizing completed", "source", name, "tokens", len(tokens))
	return tokens, nil
}

// ReadSource reads a whole source from r, refusing more than the configured
// limit
func (c *Checker) ReadSource(name string, r io.Reader) (string, error) {
	limit := int64(c.options.MaxSourceBytes)
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if err := c.checkSize(name, len(data)); err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFile reads the source at path. "-" reads standard input.
func (c *Checker) ReadFile(path string) (string, error) {
	if path == "-" {
		return c.ReadSource("<stdin>", os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	return c.ReadSource(path, f)
}

// CheckFile reads and checks the source at path
func (c *Checker) CheckFile(path string) (*Result, error) {
	source, err := c.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Check(DisplayName(path), source)
}

// MaxSourceBytes returns the effective size limit
func (c *Checker) MaxSourceBytes() int {
	return c.options.MaxSourceBytes
}

func (c *Checker) checkSize(name string, size int) error {
	if size > c.options.MaxSourceBytes {
		return fmt.Errorf("%s: %w (%d bytes, limit %d)",
			name, ErrSourceTooLarge, size, c.options.MaxSourceBytes)
	}
	return nil
}

// DisplayName returns the name used for a path in reports
func DisplayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
