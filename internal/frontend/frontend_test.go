package frontend

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/lexer"
)

func TestChecker_Fixtures(t *testing.T) {
	tests := []struct {
		file    string
		symbols map[string]string
		kind    diag.Kind
		line    int
	}{
		{file: "if_else.mc", symbols: map[string]string{"a": "int"}},
		{file: "declarations.mc", symbols: map[string]string{
			"a": "int", "b": "float", "name": "string", "isActive": "bool",
		}},
		{file: "arithmetic.mc", symbols: map[string]string{"a": "int", "b": "int"}},
		{file: "loops.mc", symbols: map[string]string{
			"total": "int", "i": "int", "ratio": "double", "sep": "char",
		}},
		{file: "duplicate_declaration.mc", kind: diag.KindDuplicateDeclaration, line: 2},
		{file: "undeclared_variable.mc", kind: diag.KindUndeclaredVariable, line: 1},
		{file: "missing_expression.mc", kind: diag.KindSyntax, line: 2},
		{file: "unterminated_string.mc", kind: diag.KindUnterminatedString, line: 2},
		{file: "illegal_character.mc", kind: diag.KindLexical, line: 2},
		{file: "bare_return.mc", kind: diag.KindSyntax, line: 8},
		{file: "string_expression.mc", kind: diag.KindSyntax, line: 2},
	}

	checker := New(Options{})
	listed := make(map[string]bool)

	for _, tt := range tests {
		listed[tt.file] = true
		t.Run(tt.file, func(t *testing.T) {
			result, err := checker.CheckFile(filepath.Join("testdata", tt.file))

			if tt.kind == "" {
				if err != nil {
					t.Fatalf("CheckFile() error: %v", err)
				}
				if !result.OK {
					t.Error("result not marked OK")
				}
				got := make(map[string]string, len(result.Symbols))
				for _, e := range result.Symbols {
					got[e.Name] = e.Type
				}
				if len(got) != len(tt.symbols) {
					t.Fatalf("symbols = %v, want %v", got, tt.symbols)
				}
				for name, typ := range tt.symbols {
					if got[name] != typ {
						t.Errorf("symbol %s = %q, want %q", name, got[name], typ)
					}
				}
				return
			}

			if err == nil {
				t.Fatalf("CheckFile() succeeded, want %s", tt.kind)
			}
			if result == nil || result.Diagnostic == nil {
				t.Fatal("expected a result carrying the diagnostic")
			}
			if result.OK || result.Symbols != nil {
				t.Error("failed result must not carry symbols")
			}
			if result.Diagnostic.Kind != tt.kind || result.Diagnostic.Line != tt.line {
				t.Errorf("diagnostic = %v, want %s on line %d", result.Diagnostic, tt.kind, tt.line)
			}
		})
	}

	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".mc") && !listed[e.Name()] {
			t.Errorf("fixture %s has no expectation", e.Name())
		}
	}
}

func TestChecker_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr error
		message string
	}{
		{
			name:   "Valid program",
			source: "int a; a = 5; if (a > 0) { return a; } else { return 0; }",
		},
		{
			name:    "Duplicate declaration",
			source:  "int a;\nint a;",
			wantErr: diag.ErrDuplicateDeclaration,
			message: "DuplicateDeclarationError: variable 'a' is already declared on line 2",
		},
		{
			name:    "Undeclared variable",
			source:  "x = 5;",
			wantErr: diag.ErrUndeclaredVariable,
			message: "UndeclaredVariableError: variable 'x' is not declared on line 1",
		},
		{
			name:    "Missing expression",
			source:  "int a; a = ;",
			wantErr: diag.ErrSyntax,
			message: "SyntaxError: unexpected token ';' on line 1",
		},
		{
			name:    "Unterminated string",
			source:  `string s; s = "abc;`,
			wantErr: diag.ErrUnterminatedString,
			message: "UnterminatedStringError: unterminated string literal on line 1",
		},
	}

	checker := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checker.Check("scenario", tt.source)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Check() error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Check() error = %v, want %v", err, tt.wantErr)
			}
			if err.Error() != tt.message {
				t.Errorf("Check() error = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestChecker_RunsAreIndependent(t *testing.T) {
	checker := New(Options{})
	source := "int a; a = 1;"

	first, err := checker.Check("one", source)
	if err != nil {
		t.Fatal(err)
	}
	second, err := checker.Check("two", source)
	if err != nil {
		t.Fatalf("second run shares state with the first: %v", err)
	}

	if first.RunID == second.RunID {
		t.Error("runs share a run ID")
	}
	if _, err := uuid.Parse(first.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", first.RunID, err)
	}
	if first.Table == second.Table {
		t.Error("runs share a symbol table")
	}
	if first.Name != "one" || second.Name != "two" {
		t.Errorf("names = %q, %q", first.Name, second.Name)
	}
}

func TestChecker_Tokens(t *testing.T) {
	checker := New(Options{})

	tokens, err := checker.Tokens("t", "a=5;")
	if err != nil {
		t.Fatal(err)
	}
	want := []lexer.Kind{lexer.Identifier, lexer.Assign, lexer.Number, lexer.Semicolon, lexer.EOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, tokens[i].Kind, k)
		}
	}

	// Tokens does not parse, so syntactically invalid input still lexes
	if _, err := checker.Tokens("t", "} } int"); err != nil {
		t.Errorf("Tokens() error on lexically valid input: %v", err)
	}
	if _, err := checker.Tokens("t", "#"); !errors.Is(err, diag.ErrLexical) {
		t.Errorf("Tokens() error = %v, want LexicalError", err)
	}
}

func TestChecker_SourceLimit(t *testing.T) {
	checker := New(Options{MaxSourceBytes: 8})

	if _, err := checker.Check("small", "int a;"); err != nil {
		t.Fatalf("Check() within limit: %v", err)
	}

	result, err := checker.Check("big", "int abcdef;")
	if !errors.Is(err, ErrSourceTooLarge) {
		t.Fatalf("Check() error = %v, want ErrSourceTooLarge", err)
	}
	if result != nil {
		t.Error("oversized source must not produce a result")
	}
	if _, ok := diag.As(err); ok {
		t.Error("size limit must not be reported as a diagnostic")
	}

	if _, err := checker.ReadSource("r", strings.NewReader("int abcdef;")); !errors.Is(err, ErrSourceTooLarge) {
		t.Errorf("ReadSource() error = %v, want ErrSourceTooLarge", err)
	}
	src, err := checker.ReadSource("r", strings.NewReader("int a;"))
	if err != nil || src != "int a;" {
		t.Errorf("ReadSource() = %q, %v", src, err)
	}

	if New(Options{}).MaxSourceBytes() != DefaultMaxSourceBytes {
		t.Error("default source limit not applied")
	}
}

func TestChecker_CheckFile(t *testing.T) {
	checker := New(Options{})

	if _, err := checker.CheckFile(filepath.Join(t.TempDir(), "missing.mc")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CheckFile() error = %v, want ErrNotExist", err)
	}

	path := filepath.Join(t.TempDir(), "prog.mc")
	if err := os.WriteFile(path, []byte("bool ok;\nok = 1 > 0;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result, err := checker.CheckFile(path)
	if err != nil {
		t.Fatalf("CheckFile() error: %v", err)
	}
	if result.Name != path || len(result.Symbols) != 1 || result.Symbols[0].Line != 1 {
		t.Errorf("CheckFile() = %+v", result)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("-"); got != "<stdin>" {
		t.Errorf("DisplayName(-) = %q", got)
	}
	if got := DisplayName("a.mc"); got != "a.mc" {
		t.Errorf("DisplayName(a.mc) = %q", got)
	}
}

func TestChecker_Cache(t *testing.T) {
	checker := New(Options{CacheSize: 8})

	first, err := checker.Check("a.mc", "int a;\na = 1;")
	if err != nil {
		t.Fatal(err)
	}
	second, err := checker.Check("b.mc", "int a;\na = 1;")
	if err != nil {
		t.Fatal(err)
	}

	if first.Cached || !second.Cached {
		t.Errorf("Cached = %v, %v; want false, true", first.Cached, second.Cached)
	}
	if second.Name != "b.mc" || second.RunID == first.RunID {
		t.Errorf("replayed result reused run identity: %+v", second)
	}
	if second.Table == first.Table {
		t.Error("replayed result shares the symbol table")
	}
	if err := second.Table.Insert("b", "int", 3); err != nil {
		t.Fatal(err)
	}
	if first.Table.Contains("b") {
		t.Error("insert into replayed table leaked into the original")
	}

	for range 2 {
		res, err := checker.Check("dup.mc", "int a;\nint a;")
		if !errors.Is(err, diag.ErrDuplicateDeclaration) {
			t.Fatalf("error = %v, want duplicate declaration", err)
		}
		if res.Diagnostic == nil || res.Diagnostic.Line != 2 {
			t.Errorf("diagnostic = %+v", res.Diagnostic)
		}
	}

	hits, misses, size := checker.CacheStats()
	if hits != 2 || misses != 2 || size != 2 {
		t.Errorf("CacheStats() = %d, %d, %d; want 2, 2, 2", hits, misses, size)
	}

	if hits, misses, size := New(Options{}).CacheStats(); hits != 0 || misses != 0 || size != 0 {
		t.Errorf("disabled cache reported stats %d, %d, %d", hits, misses, size)
	}
}
