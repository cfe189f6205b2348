// ============================================================================
// minic - Interactive Editor
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model that re-checks the edited program after
//              every change and shows the symbol table or the diagnostic
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/minic/internal/frontend"
	"github.com/msto63/minic/internal/report"
	"github.com/msto63/minic/internal/tui"
)

// Config holds editor configuration
type Config struct {
	Checker *frontend.Checker
	Source  string // Initial buffer contents
	Name    string // Source name used in logs
	Color   bool
}

// Model is the main Bubbletea model for the editor
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	showTokens bool

	// Components
	editor  textarea.Model
	results viewport.Model

	// Check state
	checker *frontend.Checker
	name    string
	color   bool
	seq     int
	result  *frontend.Result
	err     error

	// Set when the last edit was refused for exceeding the source limit
	overLimit bool
}

// New creates a new editor model
func New(cfg Config) Model {
	if cfg.Checker == nil {
		cfg.Checker = frontend.New(frontend.Options{})
	}
	if cfg.Name == "" {
		cfg.Name = "<repl>"
	}

	ta := textarea.New()
	ta.Placeholder = "int a;\na = 5;"
	ta.ShowLineNumbers = true
	// CharLimit counts runes; the byte limit is enforced in Update
	ta.CharLimit = cfg.Checker.MaxSourceBytes()
	ta.SetValue(cfg.Source)
	ta.Focus()

	return Model{
		editor:  ta,
		checker: cfg.Checker,
		name:    cfg.Name,
		color:   cfg.Color,
	}
}

// Run starts the editor in the alternate screen and blocks until it quits
func Run(cfg Config) error {
	_, err := tea.NewProgram(New(cfg), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.check())
}

// check runs the front end over the current buffer
func (m Model) check() tea.Cmd {
	source, seq := m.editor.Value(), m.seq
	checker, name := m.checker, m.name
	return func() tea.Msg {
		result, err := checker.Check(name, source)
		return checkedMsg{seq: seq, result: result, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlT:
			m.showTokens = !m.showTokens
			m.updateResults()
			return m, nil

		case tea.KeyCtrlL:
			m.editor.Reset()
			m.overLimit = false
			m.seq++
			return m, m.check()

		case tea.KeyPgUp:
			m.results.ViewUp()
			return m, nil

		case tea.KeyPgDown:
			m.results.ViewDown()
			return m, nil
		}

		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
		if len(m.editor.Value()) > m.checker.MaxSourceBytes() {
			m.editor.SetValue(before)
			m.overLimit = true
			return m, tea.Batch(cmds...)
		}
		m.overLimit = false
		if m.editor.Value() != before {
			m.seq++
			cmds = append(cmds, m.check())
		}
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title
		footerHeight := 2 // Status bar + help
		available := msg.Height - headerHeight - footerHeight - 4 // Box borders
		editorHeight := max(available/2, 3)
		resultsHeight := max(available-editorHeight, 3)

		m.editor.SetWidth(msg.Width - 4)
		m.editor.SetHeight(editorHeight)

		if !m.ready {
			m.results = viewport.New(msg.Width-4, resultsHeight)
			m.ready = true
		} else {
			m.results.Width = msg.Width - 4
			m.results.Height = resultsHeight
		}
		m.updateResults()

	case checkedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.result = msg.result
		m.err = msg.err
		m.updateResults()
		return m, nil
	}

	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// updateResults refreshes the result pane
func (m *Model) updateResults() {
	if !m.ready {
		return
	}
	m.results.SetContent(m.renderResults())
}

// renderResults renders the outcome of the last check
func (m Model) renderResults() string {
	switch {
	case m.result == nil && m.err != nil:
		return tui.RenderError(m.err.Error())
	case m.result == nil:
		return tui.SubtitleStyle.Render("Checking...")
	case m.result.Diagnostic != nil:
		return report.Diagnostic("", m.result.Diagnostic, m.color)
	}

	var b strings.Builder
	b.WriteString(report.Success(m.result.Symbols, m.color))
	if m.showTokens {
		b.WriteString("\n")
		b.WriteString(report.TokenTable(m.result.Tokens, m.color))
	}
	return b.String()
}

// status summarizes the last check for the status bar
func (m Model) status() string {
	switch {
	case m.overLimit:
		return tui.StatusErrorStyle.Render(fmt.Sprintf("source limit of %d bytes reached", m.checker.MaxSourceBytes()))
	case m.result == nil && m.err != nil:
		return tui.StatusErrorStyle.Render("error")
	case m.result == nil:
		return "checking"
	case m.result.Diagnostic != nil:
		d := m.result.Diagnostic
		return tui.StatusErrorStyle.Render(fmt.Sprintf("%s on line %d", d.Kind, d.Line))
	default:
		return tui.StatusOKStyle.Render(fmt.Sprintf("OK  %d symbols  %d tokens",
			len(m.result.Symbols), len(m.result.Tokens)))
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading editor..."
	}

	var b strings.Builder

	b.WriteString(tui.RenderTitle("minic"))
	b.WriteString(" ")
	b.WriteString(tui.SubtitleStyle.Render("checks as you type"))
	b.WriteString("\n\n")

	b.WriteString(tui.FocusedBoxStyle.Width(m.width - 2).Render(m.editor.View()))
	b.WriteString("\n")
	b.WriteString(tui.BoxStyle.Width(m.width - 2).Render(m.results.View()))
	b.WriteString("\n")

	b.WriteString(tui.StatusBarStyle.Width(m.width).Render(m.status()))
	b.WriteString("\n")
	b.WriteString(tui.RenderHelp(lipgloss.JoinHorizontal(lipgloss.Top,
		"ctrl+t tokens", "  ", "ctrl+l clear", "  ", "pgup/pgdn scroll", "  ", "esc quit")))

	return b.String()
}
