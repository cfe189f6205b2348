// File: statements.go
// Title: Statement Rules
// Description: Grammar rules for programs, blocks and statements, including
//              the semantic actions for declarations and assignments.
// Author: msto63
// Version: v0.1.2
// Created: 2026-10-12
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-12 v0.1.0: Declarations, assignments, if, return, blocks
// - 2026-10-14 v0.1.1: while and for statements
// - 2026-10-15 v0.1.2: else-if chains parsed iteratively

package parser

import (
	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/lexer"
)

// parseProgram parses Statement* followed by end of input
func (p *Parser) parseProgram() error {
	for !p.check(lexer.EOF) {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	return nil
}

// parseStatement dispatches on the first token of a statement
func (p *Parser) parseStatement() error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	kind := p.current().Kind
	switch {
	case kind.IsType():
		return p.parseDeclaration()
	case kind == lexer.Identifier:
		return p.parseAssignment()
	case kind == lexer.KwIf:
		return p.parseIf()
	case kind == lexer.KwWhile:
		return p.parseWhile()
	case kind == lexer.KwFor:
		return p.parseFor()
	case kind == lexer.KwReturn:
		return p.parseReturn()
	case kind == lexer.LeftBrace:
		return p.parseBlock()
	default:
		return p.unexpected()
	}
}

// parseBlock parses '{' Statement* '}'
func (p *Parser) parseBlock() error {
	if _, err := p.expect(lexer.LeftBrace); err != nil {
		return err
	}
	for !p.check(lexer.RightBrace) && !p.check(lexer.EOF) {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	_, err := p.expect(lexer.RightBrace)
	return err
}

// parseDeclaration parses TypeKeyword identifier ('=' Expression)? ';'
// and declares the identifier.
func (p *Parser) parseDeclaration() error {
	typ := p.advance()

	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return err
	}

	if prev, ok := p.symbols.Lookup(name.Lexeme); ok {
		p.logger.Debug("Duplicate declaration",
			"name", name.Lexeme, "line", name.Line, "first_line", prev.Line)
		return diag.New(diag.KindDuplicateDeclaration, name.Line,
			"variable '%s' is already declared", name.Lexeme)
	}
	if err := p.symbols.Insert(name.Lexeme, typ.Lexeme, name.Line); err != nil {
		return diag.New(diag.KindSyntax, typ.Line, "%v", err)
	}
	p.logger.Debug("Variable declared",
		"name", name.Lexeme, "type", typ.Lexeme, "line", name.Line)

	if p.check(lexer.Assign) {
		p.advance()
		if err := p.parseExpression(); err != nil {
			return err
		}
	}

	_, err = p.expect(lexer.Semicolon)
	return err
}

// parseAssignment parses identifier '=' Expression ';'. The target must
// already be declared.
func (p *Parser) parseAssignment() error {
	name := p.advance()

	if !p.symbols.Contains(name.Lexeme) {
		return diag.New(diag.KindUndeclaredVariable, name.Line,
			"variable '%s' is not declared", name.Lexeme)
	}

	if _, err := p.expect(lexer.Assign); err != nil {
		return err
	}
	if err := p.parseExpression(); err != nil {
		return err
	}
	_, err := p.expect(lexer.Semicolon)
	return err
}

// parseIf parses 'if' '(' Expression ')' Statement ('else' Statement)?
// An 'else if' continues the loop instead of nesting, so long chains do not
// count against the depth limit.
func (p *Parser) parseIf() error {
	for {
		if _, err := p.expect(lexer.KwIf); err != nil {
			return err
		}
		if err := p.parseCondition(); err != nil {
			return err
		}
		if err := p.parseStatement(); err != nil {
			return err
		}

		if !p.check(lexer.KwElse) {
			return nil
		}
		p.advance()
		if !p.check(lexer.KwIf) {
			return p.parseStatement()
		}
	}
}

// parseWhile parses 'while' '(' Expression ')' Statement
func (p *Parser) parseWhile() error {
	if _, err := p.expect(lexer.KwWhile); err != nil {
		return err
	}
	if err := p.parseCondition(); err != nil {
		return err
	}
	return p.parseStatement()
}

// parseFor parses
//
//	'for' '(' identifier '=' Expression ';' Expression ';'
//	          identifier '=' Expression ')' Statement
//
// The header identifiers are not checked against the symbol table.
func (p *Parser) parseFor() error {
	if _, err := p.expect(lexer.KwFor); err != nil {
		return err
	}
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return err
	}
	if err := p.parseHeaderAssignment(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return err
	}
	if err := p.parseExpression(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return err
	}
	if err := p.parseHeaderAssignment(); err != nil {
		return err
	}
	if _, err := p.expect(lexer.RightParen); err != nil {
		return err
	}
	return p.parseStatement()
}

// parseHeaderAssignment parses identifier '=' Expression inside a for header
func (p *Parser) parseHeaderAssignment() error {
	if _, err := p.expect(lexer.Identifier); err != nil {
		return err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return err
	}
	return p.parseExpression()
}

// parseReturn parses 'return' Expression ';'
func (p *Parser) parseReturn() error {
	if _, err := p.expect(lexer.KwReturn); err != nil {
		return err
	}
	if err := p.parseExpression(); err != nil {
		return err
	}
	_, err := p.expect(lexer.Semicolon)
	return err
}

// parseCondition parses '(' Expression ')'
func (p *Parser) parseCondition() error {
	if _, err := p.expect(lexer.LeftParen); err != nil {
		return err
	}
	if err := p.parseExpression(); err != nil {
		return err
	}
	_, err := p.expect(lexer.RightParen)
	return err
}
