// File: model.go
// Title: Interactive Try Mode
// Description: Bubbletea model that parses the input line on every
//              keystroke and shows the normalized result or the rejection
//              reason. Tab cycles the locale; enter keeps the outcome in a
//              short history.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	dterror "github.com/msto63/dtparse/core/error"
	"github.com/msto63/dtparse/datetime"
)

const maxHistory = 10

// ParserSource supplies parsers by locale tag
type ParserSource interface {
	Get(tag string, order []datetime.Field) (*datetime.Parser, error)
}

// Outcome is the parse of one input line
type Outcome struct {
	Input  string
	Locale string
	Result datetime.Result
	Tokens []datetime.Token
	Err    error
}

// OK reports whether the input was accepted
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Model is the try mode TUI model
type Model struct {
	width  int
	height int

	input      textinput.Model
	source     ParserSource
	locales    []string
	localeIdx  int
	order      []datetime.Field
	showTokens bool

	current *Outcome
	history []Outcome
}

// NewModel creates a new model. locales lists the selectable tags; the
// first entry equal to initial is preselected.
func NewModel(source ParserSource, locales []string, initial string, order []datetime.Field) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. Sun Nov 6 08:49:37 1994"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	if len(locales) == 0 {
		locales = []string{initial}
	}
	idx := 0
	for i, l := range locales {
		if strings.EqualFold(l, initial) {
			idx = i
			break
		}
	}

	return Model{
		input:     ti,
		source:    source,
		locales:   locales,
		localeIdx: idx,
		order:     order,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.localeIdx = (m.localeIdx + 1) % len(m.locales)
			m.evaluate()
			return m, nil

		case "shift+tab":
			m.localeIdx = (m.localeIdx + len(m.locales) - 1) % len(m.locales)
			m.evaluate()
			return m, nil

		case "ctrl+t":
			m.showTokens = !m.showTokens
			return m, nil

		case "ctrl+l":
			m.history = nil
			return m, nil

		case "enter":
			if m.current != nil {
				m.history = append([]Outcome{*m.current}, m.history...)
				if len(m.history) > maxHistory {
					m.history = m.history[:maxHistory]
				}
			}
			m.input.Reset()
			m.current = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.evaluate()
	}
	return m, cmd
}

// Locale returns the selected locale tag
func (m Model) Locale() string {
	return m.locales[m.localeIdx]
}

// Current returns the outcome for the input line, if any
func (m Model) Current() (Outcome, bool) {
	if m.current == nil {
		return Outcome{}, false
	}
	return *m.current, true
}

// History returns the kept outcomes, newest first
func (m Model) History() []Outcome {
	return m.history
}

// evaluate parses the input line with the selected locale
func (m *Model) evaluate() {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.current = nil
		return
	}

	o := Outcome{Input: text, Locale: m.Locale()}
	parser, err := m.source.Get(o.Locale, m.order)
	if err != nil {
		o.Err = err
		m.current = &o
		return
	}
	o.Tokens = parser.Tokenize(text)
	o.Result, o.Err = parser.ParseDetailed(text)
	m.current = &o
}

// View renders the model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("dtparse"))
	b.WriteString("\n")
	b.WriteString(m.renderLocales())
	b.WriteString("\n\n")
	b.WriteString(BoxStyle.Render(m.input.View()))
	b.WriteString("\n")

	if m.current != nil {
		b.WriteString(renderOutcome(*m.current))
		b.WriteString("\n")
		if m.showTokens {
			b.WriteString(renderTokens(m.current.Tokens))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(SubtitleStyle.Render("Type a date, a time or both"))
		b.WriteString("\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\n")
		for _, o := range m.history {
			b.WriteString(HistoryStyle.Render(fmt.Sprintf("%-30s [%s] ", truncate(o.Input, 30), o.Locale)))
			b.WriteString(renderOutcome(o))
			b.WriteString("\n")
		}
	}

	b.WriteString(HelpStyle.Render("tab: locale • ctrl+t: tokens • enter: keep • ctrl+l: clear • esc: quit"))
	return b.String()
}

func (m Model) renderLocales() string {
	parts := make([]string, len(m.locales))
	for i, l := range m.locales {
		if i == m.localeIdx {
			parts[i] = SelectedLocaleStyle.Render("[" + l + "]")
		} else {
			parts[i] = LocaleStyle.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderOutcome(o Outcome) string {
	if o.OK() {
		return ResultStyle.Render(o.Result.String()) + "  " + LocalTimeStyle.Render(o.Result.Local())
	}
	code := dterror.GetCode(o.Err)
	msg := o.Err.Error()
	var e *dterror.Error
	if errors.As(o.Err, &e) {
		msg = e.Message()
		if pos, ok := e.Detail("pos"); ok {
			msg = fmt.Sprintf("%s at %v", msg, pos)
		}
	}
	return ErrorCodeStyle.Render(code.String()) + " " + ErrorMessageStyle.Render(msg)
}

func renderTokens(tokens []datetime.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Type == datetime.TokenSpace {
			continue
		}
		parts = append(parts, TokenStyle.Render(t.String()))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
