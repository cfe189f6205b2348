// File: kind.go
// Title: Diagnostic Kinds
// Description: Defines the closed set of fatal error kinds the front end can
//              raise, together with the compiler stage that owns each kind
//              and the process exit code a command line host should use.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial kind set

package diag

// Kind classifies a diagnostic
type Kind string

const (
	KindLexical              Kind = "LexicalError"
	KindUnterminatedString   Kind = "UnterminatedStringError"
	KindSyntax               Kind = "SyntaxError"
	KindDuplicateDeclaration Kind = "DuplicateDeclarationError"
	KindUndeclaredVariable   Kind = "UndeclaredVariableError"
)

// Stage identifies which phase produced a diagnostic
type Stage string

const (
	StageLexer    Stage = "lexer"
	StageParser   Stage = "parser"
	StageSemantic Stage = "semantic"
	StageUnknown  Stage = "unknown"
)

// String returns the kind name as it appears in formatted diagnostics
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is one of the known kinds
func (k Kind) IsValid() bool {
	switch k {
	case KindLexical, KindUnterminatedString, KindSyntax,
		KindDuplicateDeclaration, KindUndeclaredVariable:
		return true
	default:
		return false
	}
}

// Stage returns the phase responsible for the kind
func (k Kind) Stage() Stage {
	switch k {
	case KindLexical, KindUnterminatedString:
		return StageLexer
	case KindSyntax:
		return StageParser
	case KindDuplicateDeclaration, KindUndeclaredVariable:
		return StageSemantic
	default:
		return StageUnknown
	}
}

// ExitCode returns the process exit status a host should use when a run
// fails with this kind. Zero is never returned.
func (k Kind) ExitCode() int {
	switch k {
	case KindLexical:
		return 2
	case KindUnterminatedString:
		return 3
	case KindSyntax:
		return 4
	case KindDuplicateDeclaration:
		return 5
	case KindUndeclaredVariable:
		return 6
	default:
		return 1
	}
}

// Kinds returns every known kind in reporting order
func Kinds() []Kind {
	return []Kind{
		KindLexical,
		KindUnterminatedString,
		KindSyntax,
		KindDuplicateDeclaration,
		KindUndeclaredVariable,
	}
}
