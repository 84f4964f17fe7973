package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
)

// formModal is a huh form drawn over the current screen. Completing the form
// closes the modal and then runs submit's command; esc closes it and runs
// skip's command instead, or reports "Cancelled." when there is no skip.
type formModal struct {
	state  *SharedState
	form   *huh.Form
	title  string
	submit func() tea.Cmd
	skip   func() tea.Cmd
}

func newFormModal(state *SharedState, title string, form *huh.Form, submit func() tea.Cmd) *formModal {
	return &formModal{state: state, form: form, title: title, submit: submit}
}

// onSkip sets what esc does.
func (m *formModal) onSkip(fn func() tea.Cmd) *formModal {
	m.skip = fn
	return m
}

func (m *formModal) Init() tea.Cmd { return m.form.Init() }

func (m *formModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m, closeModal(m.cancelCmd())
	}

	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var then tea.Cmd
		if m.submit != nil {
			then = m.submit()
		}
		return m, closeModal(then)
	case huh.StateAborted:
		return m, closeModal(m.cancelCmd())
	}
	return m, cmd
}

func (m *formModal) cancelCmd() tea.Cmd {
	if m.skip != nil {
		return m.skip()
	}
	return showOutput(formatter.Dim("Cancelled."))
}

func closeModal(then tea.Cmd) tea.Cmd {
	return func() tea.Msg { return wizardCompleteMsg{nextCmd: then} }
}

func (m *formModal) View() string {
	body := formatter.Header(m.title) + "\n\n" + m.form.View()
	if w := m.state.ContentWidth(); w > 0 {
		body = lipgloss.NewStyle().MaxWidth(w).Render(body)
	}
	return body
}

func (m *formModal) Title() string { return m.title }

func (m *formModal) ShortHelp() []key.Binding {
	esc := "cancel"
	if m.skip != nil {
		esc = "skip"
	}
	return []key.Binding{binding("enter", "confirm"), binding("esc", esc)}
}
