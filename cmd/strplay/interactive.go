package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	inlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	heapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxHistory = 12

type historyEntry struct {
	op     string
	state  string
	result string
	err    error
}

type interactiveModel struct {
	values  *pair
	input   textinput.Model
	history []historyEntry
	err     error
}

func newInteractiveModel(text string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "push:TEXT • insert:IDX:TEXT • drain:A:B • pop • clear"
	ti.Prompt = "op> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{values: newPair(text), input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.submit(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, nil

		case "ctrl+r":
			m.values = newPair("")
			m.history = nil
			m.err = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) submit(line string) {
	if line == "" {
		return
	}
	st, err := parseOp(line)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	inl, std := m.values.apply(st)
	if inl.err == nil && std.err != nil {
		inl.err = fmt.Errorf("stdstr only: %w", std.err)
	}
	if !m.values.agree() {
		m.err = fmt.Errorf("representations diverged: %q vs %q", m.values.inl.AsStr(), m.values.std.AsStr())
	}
	m.history = append(m.history, historyEntry{
		op:     st.name,
		state:  m.values.state(),
		result: inl.result,
		err:    inl.err,
	})
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("String Playground"))
	b.WriteString("\n\n")

	v := &m.values.inl
	mode := inlineStyle.Render("inline")
	if !v.IsInline() {
		mode = heapStyle.Render("heap")
	}
	b.WriteString(fmt.Sprintf("content  %q\n", v.AsStr()))
	b.WriteString(fmt.Sprintf("state    %s  len=%d cap=%d  chars=%d\n", mode, v.Len(), v.Cap(), len(v.Runes())))
	b.WriteString(fmt.Sprintf("stdstr   len=%d cap=%d\n\n", m.values.std.Len(), m.values.std.Cap()))

	for _, h := range m.history {
		b.WriteString(fmt.Sprintf("  %-22s %s", h.op, helpStyle.Render(h.state)))
		if h.result != "" {
			b.WriteString("  -> " + resultStyle.Render(fmt.Sprintf("%q", h.result)))
		}
		if h.err != nil {
			b.WriteString("  " + errorStyle.Render(h.err.Error()))
		}
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter apply • ctrl+r reset • esc quit"))

	return b.String()
}

func runInteractive(text string) error {
	p := tea.NewProgram(newInteractiveModel(text), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
