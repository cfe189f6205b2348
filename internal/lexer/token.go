// File: token.go
// Title: Token Model
// Description: Defines the closed set of token kinds produced by the lexer,
//              the immutable Token value and the keyword table used to
//              classify identifier-shaped words.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial token model

package lexer

import "fmt"

// Kind represents the kind of a lexical token
type Kind int

const (
	// Special tokens
	EOF Kind = iota

	// Type keywords
	KwInt
	KwFloat
	KwDouble
	KwString
	KwBool
	KwChar

	// Statement keywords
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn

	// Identifiers and literals
	Identifier // a, total_1, _tmp
	Number     // 5, 10.5
	String     // "text" (lexeme without quotes)

	// Operators
	Assign // =
	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Greater
	Less
	Equal    // ==
	NotEqual // !=
	And      // &&
	Or       // ||

	// Delimiters
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Semicolon
)

var kindNames = [...]string{
	EOF:        "end of input",
	KwInt:      "int",
	KwFloat:    "float",
	KwDouble:   "double",
	KwString:   "string",
	KwBool:     "bool",
	KwChar:     "char",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwFor:      "for",
	KwReturn:   "return",
	Identifier: "identifier",
	Number:     "number",
	String:     "string literal",
	Assign:     "=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Greater:    ">",
	Less:       "<",
	Equal:      "==",
	NotEqual:   "!=",
	And:        "&&",
	Or:         "||",
	LeftParen:  "(",
	RightParen: ")",
	LeftBrace:  "{",
	RightBrace: "}",
	Semicolon:  ";",
}

// String returns the source spelling for fixed tokens and a descriptive
// name for the open classes (identifier, number, string literal, end of input)
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsType reports whether k is one of the declaration type keywords
func (k Kind) IsType() bool {
	return k >= KwInt && k <= KwChar
}

// MarshalText lets kinds appear by name in JSON and YAML reports
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a classified, line-tagged unit of source text. Tokens are values
// and are never modified after the lexer produced them.
type Token struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Lexeme string `json:"lexeme" yaml:"lexeme"`
	Line   int    `json:"line" yaml:"line"`
}

// String returns a compact representation such as identifier(a) or ';'
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Identifier, Number, String:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
	default:
		return t.Kind.String()
	}
}

// Display returns the text used when a token is quoted in a diagnostic
func (t Token) Display() string {
	if t.Kind == EOF {
		return "end of input"
	}
	if t.Kind == String {
		return `"` + t.Lexeme + `"`
	}
	return t.Lexeme
}

var keywords = map[string]Kind{
	"int":    KwInt,
	"float":  KwFloat,
	"double": KwDouble,
	"string": KwString,
	"bool":   KwBool,
	"char":   KwChar,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"for":    KwFor,
	"return": KwReturn,
}

// LookupIdent classifies a word as a keyword or an identifier. Keywords are
// case sensitive.
func LookupIdent(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Identifier
}
