// File: expressions.go
// Title: Expression Rules
// Description: Grammar rules for expressions, terms and factors. Expressions
//              are validated only; they never touch the symbol table.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-12
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-12 v0.1.0: Initial expression rules
// - 2026-10-15 v0.1.1: '>' chains parsed iteratively, string literals
//   rejected as factors

package parser

import "github.com/msto63/minic/internal/lexer"

// parseExpression parses
//
//	Term (('+'|'-') Term)* (('&&'|'||') Term)* ('>' Expression)?
//
// Additive operators must all come before logical ones. The right-nested
// '>' tail is consumed in a loop, so only parentheses add nesting depth.
// '<', '==' and '!=' are not part of the grammar.
func (p *Parser) parseExpression() error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	if err := p.parseOperand(); err != nil {
		return err
	}
	for p.check(lexer.Greater) {
		p.advance()
		if err := p.parseOperand(); err != nil {
			return err
		}
	}
	return nil
}

// parseOperand parses Term (('+'|'-') Term)* (('&&'|'||') Term)*
func (p *Parser) parseOperand() error {
	if err := p.parseTerm(); err != nil {
		return err
	}

	for p.check(lexer.Plus) || p.check(lexer.Minus) {
		p.advance()
		if err := p.parseTerm(); err != nil {
			return err
		}
	}

	for p.check(lexer.And) || p.check(lexer.Or) {
		p.advance()
		if err := p.parseTerm(); err != nil {
			return err
		}
	}
	return nil
}

// parseTerm parses Factor (('*'|'/') Factor)*
func (p *Parser) parseTerm() error {
	if err := p.parseFactor(); err != nil {
		return err
	}
	for p.check(lexer.Star) || p.check(lexer.Slash) {
		p.advance()
		if err := p.parseFactor(); err != nil {
			return err
		}
	}
	return nil
}

// parseFactor parses a number, an identifier or a parenthesized expression.
// String literals are lexed but have no place in an expression.
func (p *Parser) parseFactor() error {
	switch p.current().Kind {
	case lexer.Number, lexer.Identifier:
		p.advance()
		return nil
	case lexer.LeftParen:
		p.advance()
		if err := p.parseExpression(); err != nil {
			return err
		}
		_, err := p.expect(lexer.RightParen)
		return err
	default:
		return p.unexpected()
	}
}
