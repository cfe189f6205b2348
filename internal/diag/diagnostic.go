// File: diagnostic.go
// Title: Fatal Diagnostic
// Description: Implements the single diagnostic a front-end run can produce.
//              A Diagnostic is an ordinary Go error value that travels up the
//              call chain of the lexer and the parser so the embedding host
//              decides how to present it instead of the process terminating.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation
// - 2026-10-14 v0.1.1: Sentinels for errors.Is, structured log attributes

package diag

import (
	"errors"
	"fmt"
	"log/slog"
)

// Diagnostic is a fatal front-end error with its kind, message and line
type Diagnostic struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line" yaml:"line"`
}

// Sentinels matching any diagnostic of the given kind via errors.Is
var (
	ErrLexical              = &Diagnostic{Kind: KindLexical}
	ErrUnterminatedString   = &Diagnostic{Kind: KindUnterminatedString}
	ErrSyntax               = &Diagnostic{Kind: KindSyntax}
	ErrDuplicateDeclaration = &Diagnostic{Kind: KindDuplicateDeclaration}
	ErrUndeclaredVariable   = &Diagnostic{Kind: KindUndeclaredVariable}
)

// New creates a diagnostic with a formatted message
func New(kind Kind, line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}

// Error renders "<Kind>: <message> on line <line>"
func (d *Diagnostic) Error() string {
	return Format(d.Kind, d.Message, d.Line)
}

// Is matches sentinel diagnostics by kind. A sentinel carries no message.
func (d *Diagnostic) Is(target error) bool {
	t, ok := target.(*Diagnostic)
	if !ok {
		return false
	}
	if t.Message == "" && t.Line == 0 {
		return t.Kind == d.Kind
	}
	return *t == *d
}

// Stage returns the phase that raised the diagnostic
func (d *Diagnostic) Stage() Stage {
	return d.Kind.Stage()
}

// LogAttrs returns the diagnostic as structured logging attributes
func (d *Diagnostic) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("kind", d.Kind.String()),
		slog.String("stage", string(d.Kind.Stage())),
		slog.String("message", d.Message),
		slog.Int("line", d.Line),
	}
}

// LogValue implements slog.LogValuer
func (d *Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(d.LogAttrs()...)
}

// Format builds the canonical one-line diagnostic text
func Format(kind Kind, message string, line int) string {
	return fmt.Sprintf("%s: %s on line %d", kind, message, line)
}

// As extracts a *Diagnostic from an error chain
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// KindOf returns the kind of the diagnostic in err, or "" when err carries none
func KindOf(err error) Kind {
	if d, ok := As(err); ok {
		return d.Kind
	}
	return ""
}
