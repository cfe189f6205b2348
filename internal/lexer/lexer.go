// File: lexer.go
// Title: Lexical Analyzer
// Description: Converts source text into the complete token sequence that the
//              parser consumes. Lexing is a discrete phase: the whole input is
//              scanned before parsing starts and the first unrecognized
//              character aborts the run with a typed diagnostic.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial lexer implementation
// - 2026-10-14 v0.1.1: Single-use lexers, unterminated strings cite start line

package lexer

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/msto63/minic/internal/diag"
)

// ErrConsumed is returned when Tokenize is called on a lexer that already ran
var ErrConsumed = errors.New("lexer: input already tokenized")

// Lexer performs lexical analysis of one source text. A Lexer cannot be
// restarted; create a new one per source.
type Lexer struct {
	input    string // Source text
	position int    // Index of the current char
	readPos  int    // Index after the current char
	ch       byte   // Current char, 0 at end of input
	line     int    // Current line number (1-based)
	consumed bool
}

// New creates a lexer for the given source text
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// Tokenize scans the entire input and returns the token sequence terminated
// by exactly one EOF token. On the first lexical fault it returns a
// *diag.Diagnostic and no tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	if l.consumed {
		return nil, ErrConsumed
	}
	l.consumed = true

	tokens := make([]Token, 0, len(l.input)/3+1)
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// Tokenize is a convenience wrapper around New(input).Tokenize()
func Tokenize(input string) ([]Token, error) {
	return New(input).Tokenize()
}

// next returns the next token from the input
func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()

	line := l.line

	switch l.ch {
	case 0:
		if l.position >= len(l.input) {
			return Token{Kind: EOF, Line: line}, nil
		}
		return Token{}, l.illegal()
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			return l.fixed(Equal, "==", line), nil
		}
		return l.fixed(Assign, "=", line), nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			return l.fixed(NotEqual, "!=", line), nil
		}
		return Token{}, l.illegal()
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			return l.fixed(And, "&&", line), nil
		}
		return Token{}, l.illegal()
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			return l.fixed(Or, "||", line), nil
		}
		return Token{}, l.illegal()
	case '+':
		return l.fixed(Plus, "+", line), nil
	case '-':
		return l.fixed(Minus, "-", line), nil
	case '*':
		return l.fixed(Star, "*", line), nil
	case '/':
		return l.fixed(Slash, "/", line), nil
	case '>':
		return l.fixed(Greater, ">", line), nil
	case '<':
		return l.fixed(Less, "<", line), nil
	case '(':
		return l.fixed(LeftParen, "(", line), nil
	case ')':
		return l.fixed(RightParen, ")", line), nil
	case '{':
		return l.fixed(LeftBrace, "{", line), nil
	case '}':
		return l.fixed(RightBrace, "}", line), nil
	case ';':
		return l.fixed(Semicolon, ";", line), nil
	case '"':
		value, err := l.readString()
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: String, Lexeme: value, Line: line}, nil
	default:
		if isLetter(l.ch) {
			word := l.readIdentifier()
			return Token{Kind: LookupIdent(word), Lexeme: word, Line: line}, nil
		}
		if isDigit(l.ch) {
			return Token{Kind: Number, Lexeme: l.readNumber(), Line: line}, nil
		}
		return Token{}, l.illegal()
	}
}

// fixed builds a token for an operator or delimiter and moves past it
func (l *Lexer) fixed(kind Kind, lexeme string, line int) Token {
	l.readChar()
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// illegal reports the current character as unrecognized
func (l *Lexer) illegal() error {
	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return diag.New(diag.KindLexical, l.line,
		"unexpected character %s", strconv.QuoteRune(r))
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPos = len(l.input) + 1
		return
	}
	l.ch = l.input[l.readPos]
	l.position = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// skipWhitespace discards whitespace and counts newlines
func (l *Lexer) skipWhitespace() {
	for isSpace(l.ch) {
		if l.ch == '\n' {
			l.line++
		}
		l.readChar()
	}
}

// readIdentifier reads a run of letters, digits and underscores
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads digits with at most one decimal point. A second point
// ends the literal and is left for the next token.
func (l *Lexer) readNumber() string {
	start := l.position
	seenDot := false
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			if seenDot {
				break
			}
			seenDot = true
		}
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString reads a double-quoted literal and returns the raw text between
// the quotes. Escape pairs are kept verbatim.
func (l *Lexer) readString() (string, error) {
	startLine := l.line
	l.readChar() // opening quote
	start := l.position

	for {
		if l.position >= len(l.input) {
			return "", diag.New(diag.KindUnterminatedString, startLine,
				"unterminated string literal")
		}
		switch l.ch {
		case '"':
			value := l.input[start:l.position]
			l.readChar() // closing quote
			return value, nil
		case '\\':
			l.readChar()
			if l.position >= len(l.input) {
				continue
			}
		}
		if l.ch == '\n' {
			l.line++
		}
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}
