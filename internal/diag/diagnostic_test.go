// File: diagnostic_test.go
// Title: Diagnostic Unit Tests
// Description: Tests for diagnostic formatting, kind metadata and the
//              errors.Is / errors.As integration.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial test suite

package diag

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		name     string
		diag     *Diagnostic
		expected string
	}{
		{
			name:     "Syntax",
			diag:     New(KindSyntax, 3, "expected %s but found %s", "';'", "x"),
			expected: "SyntaxError: expected ';' but found x on line 3",
		},
		{
			name:     "Duplicate",
			diag:     New(KindDuplicateDeclaration, 2, "variable '%s' is already declared", "a"),
			expected: "DuplicateDeclarationError: variable 'a' is already declared on line 2",
		},
		{
			name:     "Lexical",
			diag:     New(KindLexical, 1, "unexpected character '@'"),
			expected: "LexicalError: unexpected character '@' on line 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diag.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDiagnostic_Is(t *testing.T) {
	d := New(KindUndeclaredVariable, 4, "variable 'x' is not declared")
	wrapped := fmt.Errorf("check main.mc: %w", d)

	if !errors.Is(wrapped, ErrUndeclaredVariable) {
		t.Error("expected wrapped diagnostic to match ErrUndeclaredVariable")
	}
	if errors.Is(wrapped, ErrSyntax) {
		t.Error("expected wrapped diagnostic not to match ErrSyntax")
	}
	if !errors.Is(wrapped, New(KindUndeclaredVariable, 4, "variable 'x' is not declared")) {
		t.Error("expected equal diagnostic to match")
	}
	if errors.Is(wrapped, New(KindUndeclaredVariable, 5, "variable 'x' is not declared")) {
		t.Error("expected diagnostic on another line not to match")
	}
	if errors.Is(wrapped, errors.New("other")) {
		t.Error("expected plain error not to match")
	}
}

func TestAs(t *testing.T) {
	d := New(KindSyntax, 1, "unexpected token }")
	got, ok := As(fmt.Errorf("outer: %w", d))
	if !ok || got != d {
		t.Fatalf("As() = %v, %v; want original diagnostic", got, ok)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As() matched a plain error")
	}
	if _, ok := As(nil); ok {
		t.Error("As() matched nil")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(New(KindLexical, 1, "x")); got != KindLexical {
		t.Errorf("KindOf() = %q, want %q", got, KindLexical)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestKind_Metadata(t *testing.T) {
	tests := []struct {
		kind  Kind
		stage Stage
	}{
		{KindLexical, StageLexer},
		{KindUnterminatedString, StageLexer},
		{KindSyntax, StageParser},
		{KindDuplicateDeclaration, StageSemantic},
		{KindUndeclaredVariable, StageSemantic},
		{Kind("Bogus"), StageUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Stage(); got != tt.stage {
				t.Errorf("Stage() = %q, want %q", got, tt.stage)
			}
			if tt.kind.ExitCode() == 0 {
				t.Error("ExitCode() must be nonzero")
			}
			if tt.kind.IsValid() != (tt.stage != StageUnknown) {
				t.Errorf("IsValid() = %v", tt.kind.IsValid())
			}
		})
	}
}

func TestKind_ExitCodesDistinct(t *testing.T) {
	seen := make(map[int]Kind)
	for _, k := range Kinds() {
		code := k.ExitCode()
		if other, dup := seen[code]; dup {
			t.Errorf("%s and %s share exit code %d", k, other, code)
		}
		seen[code] = k
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 kinds, got %d", len(seen))
	}
}

func TestDiagnostic_LogAttrs(t *testing.T) {
	d := New(KindSyntax, 7, "unexpected token else")
	attrs := d.LogAttrs()

	want := map[string]string{
		"kind":    "SyntaxError",
		"stage":   "parser",
		"message": "unexpected token else",
	}
	for _, a := range attrs {
		if a.Key == "line" {
			if a.Value.Int64() != 7 {
				t.Errorf("line = %d, want 7", a.Value.Int64())
			}
			continue
		}
		if w, ok := want[a.Key]; ok && a.Value.String() != w {
			t.Errorf("%s = %q, want %q", a.Key, a.Value.String(), w)
		}
	}

	if v := d.LogValue(); v.Kind() != slog.KindGroup {
		t.Errorf("LogValue() kind = %v, want group", v.Kind())
	}
}
