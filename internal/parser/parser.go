// File: parser.go
// Title: Recursive Descent Parser
// Description: Validates a complete token sequence against the language
//              grammar and drives the symbol table while doing so. The first
//              violation ends the parse with a typed diagnostic; there is no
//              recovery and no backtracking.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial parser implementation
// - 2026-10-14 v0.1.1: Nesting limit, single-use parsers

package parser

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/lexer"
	"github.com/msto63/minic/internal/symtab"
)

// DefaultMaxDepth bounds statement and expression nesting
const DefaultMaxDepth = 512

// ErrUsed is returned when Parse is called a second time
var ErrUsed = errors.New("parser: already used")

// Options configures parser behavior
type Options struct {
	Logger   *slog.Logger
	MaxDepth int
}

// Parser validates one token sequence. A Parser owns the symbol table it
// fills and cannot be reused.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	depth   int
	symbols *symtab.Table
	result  *symtab.Table
	used    bool
	logger  *slog.Logger
	options Options
}

// New creates a parser over tokens. If the sequence does not end with an EOF
// token one is appended, so the cursor always has a final token to rest on.
func New(tokens []lexer.Token, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Parser{
		tokens:  terminate(tokens),
		symbols: symtab.New(),
		logger:  opts.Logger.With("component", "parser"),
		options: opts,
	}
}

// terminate returns a copy of tokens that ends in exactly one EOF
func terminate(tokens []lexer.Token) []lexer.Token {
	for i, tok := range tokens {
		if tok.Kind == lexer.EOF {
			return slices.Clone(tokens[:i+1])
		}
	}

	line := 1
	if n := len(tokens); n > 0 {
		line = tokens[n-1].Line
	}
	out := make([]lexer.Token, len(tokens), len(tokens)+1)
	copy(out, tokens)
	return append(out, lexer.Token{Kind: lexer.EOF, Line: line})
}

// Parse validates the whole program and returns the finished symbol table.
// On failure the error is a *diag.Diagnostic.
func (p *Parser) Parse() (*symtab.Table, error) {
	if p.used {
		return nil, ErrUsed
	}
	p.used = true

	p.logger.Debug("Starting parse", "tokens", len(p.tokens))

	if err := p.parseProgram(); err != nil {
		p.logger.Debug("Parsing failed", "diagnostic", err)
		return nil, err
	}

	p.result = p.symbols
	p.logger.Debug("Parsing completed successfully", "symbols", p.result.Len())
	return p.result, nil
}

// Table returns the symbol table of a successful parse, nil otherwise
func (p *Parser) Table() *symtab.Table {
	return p.result
}

// current returns the token under the cursor
func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

// check reports whether the current token has the given kind
func (p *Parser) check(kind lexer.Kind) bool {
	return p.current().Kind == kind
}

// advance consumes the current token and returns it. The cursor never moves
// past EOF.
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given kind or fails with a syntax error
func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	if !p.check(kind) {
		tok := p.current()
		return tok, diag.New(diag.KindSyntax, tok.Line,
			"expected %s but found %s", describe(kind), quote(tok))
	}
	return p.advance(), nil
}

// unexpected reports the current token as out of place
func (p *Parser) unexpected() error {
	tok := p.current()
	return diag.New(diag.KindSyntax, tok.Line, "unexpected token %s", quote(tok))
}

// enter tracks nesting depth; callers must defer leave when it succeeds
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.options.MaxDepth {
		return diag.New(diag.KindSyntax, p.current().Line,
			"nesting too deep (limit %d)", p.options.MaxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// describe names a token kind for "expected ..." messages
func describe(kind lexer.Kind) string {
	switch kind {
	case lexer.EOF, lexer.Identifier, lexer.Number, lexer.String:
		return kind.String()
	default:
		return "'" + kind.String() + "'"
	}
}

// quote renders a found token for diagnostics
func quote(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.EOF, lexer.String:
		return tok.Display()
	default:
		return "'" + tok.Lexeme + "'"
	}
}
