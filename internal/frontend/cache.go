// File: cache.go
// Title: Outcome Cache
// Description: Remembers the outcome of checking a source text so an
//              unchanged buffer or a file saved without edits is not
//              lexed and parsed again. Entries are keyed by the SHA-256 of
//              the source; every replay builds a fresh Result and table.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.1.0: Initial implementation

package frontend

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"slices"
	"time"

	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/lexer"
	"github.com/msto63/minic/internal/symtab"
)

// outcome is what a check of one source text produced
type outcome struct {
	tokens     []lexer.Token
	symbols    []symtab.Entry
	diagnostic *diag.Diagnostic
}

func sourceKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func (c *Checker) lookup(key string) (outcome, bool) {
	if c.cache == nil {
		return outcome{}, false
	}
	return c.cache.Get(key)
}

// remember stores the outcome of a run. Only language errors are cached.
func (c *Checker) remember(key string, result *Result, err error) {
	if c.cache == nil {
		return
	}
	o := outcome{tokens: result.Tokens, symbols: result.Symbols}
	if err != nil {
		d, ok := diag.As(err)
		if !ok {
			return
		}
		o.diagnostic = d
	}
	c.cache.Set(key, o)
}

// replay fills result from a cached outcome
func (c *Checker) replay(logger *slog.Logger, result *Result, start time.Time, o outcome) (*Result, error) {
	result.Cached = true
	result.Tokens = slices.Clone(o.tokens)

	if o.diagnostic != nil {
		d := *o.diagnostic
		return c.fail(logger, result, start, &d)
	}

	table := symtab.New()
	for _, e := range o.symbols {
		if err := table.Insert(e.Name, e.Type, e.Line); err != nil {
			return nil, err
		}
	}
	result.OK = true
	result.Table = table
	result.Symbols = table.Entries()
	result.Duration = time.Since(start)

	logger.Debug("Check served from cache", "symbols", len(result.Symbols))
	return result, nil
}

// CacheStats reports cache hits, misses and the number of remembered
// outcomes. All are zero when the cache is disabled.
func (c *Checker) CacheStats() (hits, misses int64, size int) {
	if c.cache == nil {
		return 0, 0, 0
	}
	hits, misses, _ = c.cache.Stats()
	return hits, misses, c.cache.Size()
}
