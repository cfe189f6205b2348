// ============================================================================
// minic - Report Rendering
// ============================================================================
//
// Package: report
// Description: Renders front-end results, diagnostics and token lists as
//              styled terminal tables, JSON or YAML.
// Author: Mike Stoffels
// Created: 2026-10-13
// License: MIT
// ============================================================================

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/frontend"
	"github.com/msto63/minic/internal/lexer"
	"github.com/msto63/minic/internal/symtab"
	"github.com/msto63/minic/internal/tui"
)

// SuccessBanner is printed above the symbol table of a valid program
const SuccessBanner = "Parsing completed successfully! No Syntax Error"

// Format selects the output encoding
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats returns the accepted format names
func Formats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat parses a format name; the empty string selects the table
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "text":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %s)",
			s, strings.Join(Formats(), ", "))
	}
}

// Options configures a Renderer
type Options struct {
	Format Format
	Color  bool
}

// Renderer writes reports to one output stream. Call Close when done so
// buffered YAML documents are flushed.
type Renderer struct {
	w       io.Writer
	options Options
	yaml    *yaml.Encoder
}

// New creates a renderer writing to w
func New(w io.Writer, opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	return &Renderer{w: w, options: opts}
}

// tokenReport is the structured form of a token dump
type tokenReport struct {
	Name   string        `json:"name" yaml:"name"`
	Tokens []lexer.Token `json:"tokens" yaml:"tokens"`
}

// Result renders one front-end result
func (r *Renderer) Result(res *frontend.Result) error {
	switch r.options.Format {
	case FormatJSON:
		return r.encodeJSON(res)
	case FormatYAML:
		return r.encodeYAML(res)
	}

	var b strings.Builder
	if res.Diagnostic != nil {
		b.WriteString(Diagnostic(res.Name, res.Diagnostic, r.options.Color))
		b.WriteString("\n")
	} else {
		b.WriteString(Success(res.Symbols, r.options.Color))
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Tokens renders a token list
func (r *Renderer) Tokens(name string, tokens []lexer.Token) error {
	switch r.options.Format {
	case FormatJSON:
		return r.encodeJSON(tokenReport{Name: name, Tokens: tokens})
	case FormatYAML:
		return r.encodeYAML(tokenReport{Name: name, Tokens: tokens})
	}

	_, err := io.WriteString(r.w, TokenTable(tokens, r.options.Color)+"\n")
	return err
}

// Error renders a diagnostic that has no result attached, such as a failed
// token dump
func (r *Renderer) Error(name string, d *diag.Diagnostic) error {
	switch r.options.Format {
	case FormatJSON:
		return r.encodeJSON(map[string]any{"name": name, "diagnostic": d})
	case FormatYAML:
		return r.encodeYAML(map[string]any{"name": name, "diagnostic": d})
	}
	_, err := io.WriteString(r.w, Diagnostic(name, d, r.options.Color)+"\n")
	return err
}

// Format returns the output format of the renderer
func (r *Renderer) Format() Format {
	return r.options.Format
}

// Close flushes pending output
func (r *Renderer) Close() error {
	if r.yaml == nil {
		return nil
	}
	err := r.yaml.Close()
	r.yaml = nil
	return err
}

func (r *Renderer) encodeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) encodeYAML(v any) error {
	if r.yaml == nil {
		r.yaml = yaml.NewEncoder(r.w)
		r.yaml.SetIndent(2)
	}
	return r.yaml.Encode(v)
}

// Success renders the success banner followed by the symbol table
func Success(entries []symtab.Entry, color bool) string {
	var b strings.Builder
	banner := SuccessBanner
	if color {
		banner = tui.SuccessStyle.Render(banner)
	}
	b.WriteString(banner)
	b.WriteString("\n\n")

	title := "Symbol Table:"
	if color {
		title = tui.TitleStyle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(SymbolTable(entries, color))
	b.WriteString("\n")
	return b.String()
}

// Diagnostic renders a one-line diagnostic prefixed with the source name
func Diagnostic(name string, d *diag.Diagnostic, color bool) string {
	text := d.Error()
	if color {
		text = tui.ErrorStyle.Render(d.Kind.String()) + ": " + d.Message +
			" on " + tui.LineStyle.Render("line "+strconv.Itoa(d.Line))
	}
	if name == "" {
		return text
	}
	return name + ": " + text
}

// SymbolTable renders entries as a bordered table
func SymbolTable(entries []symtab.Entry, color bool) string {
	rows := lo.Map(entries, func(e symtab.Entry, _ int) []string {
		return []string{e.Name, e.Type, strconv.Itoa(e.Line)}
	})
	return newTable(color).
		Headers("Variable Name", "Data Type", "Line").
		Rows(rows...).
		String()
}

// TokenTable renders tokens as a bordered table
func TokenTable(tokens []lexer.Token, color bool) string {
	rows := lo.Map(tokens, func(tok lexer.Token, _ int) []string {
		return []string{strconv.Itoa(tok.Line), tok.Kind.String(), tok.Lexeme}
	})
	return newTable(color).
		Headers("Line", "Kind", "Lexeme").
		Rows(rows...).
		String()
}

func newTable(color bool) *table.Table {
	t := table.New().Border(lipgloss.NormalBorder())
	if !color {
		plain := lipgloss.NewStyle().Padding(0, 1)
		return t.StyleFunc(func(row, col int) lipgloss.Style { return plain })
	}
	return t.
		BorderStyle(tui.TableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tui.TableHeaderStyle
			}
			return tui.TableCellStyle
		})
}
