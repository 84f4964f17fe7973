package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// Messages screens send to the root model. Navigation always goes through
// the shell so its counters and timers see every transition.

type navigateMsg struct{ view domain.View }

type backMsg struct{}

// cmdOutputMsg carries text shown in the scrollable output pane.
type cmdOutputMsg struct{ output string }

// openFormMsg shows a modal form over the current screen.
type openFormMsg struct{ form *formModal }

// wizardCompleteMsg closes the modal form and runs nextCmd.
type wizardCompleteMsg struct{ nextCmd tea.Cmd }

// rebuildMsg re-creates the current screen after shell state changed
// under it, e.g. a data reset.
type rebuildMsg struct{}

// wakeMsg is sent from background callbacks so pending unlocks and plan
// changes are picked up.
type wakeMsg struct{}

type toastExpiredMsg struct{ seq int }

func navigate(v domain.View) tea.Cmd {
	return func() tea.Msg { return navigateMsg{view: v} }
}

func goBack() tea.Cmd {
	return func() tea.Msg { return backMsg{} }
}

func showOutput(s string) tea.Cmd {
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

func openForm(w *formModal) tea.Cmd {
	return func() tea.Msg { return openFormMsg{form: w} }
}

func rebuild() tea.Cmd {
	return func() tea.Msg { return rebuildMsg{} }
}
