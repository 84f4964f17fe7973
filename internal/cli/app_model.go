package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

const (
	toastTTL  = 4 * time.Second
	maxToasts = 3
)

type toast struct {
	seq         int
	achievement domain.Achievement
}

// appModel is the root bubbletea Model for the TUI. The navigation stack
// lives in the shell; the model renders its top entry.
type appModel struct {
	state    *SharedState
	screen   screen
	modal    *formModal
	cmdBar   commandBar
	quitting bool

	// Transient output shown in place of the screen until dismissed.
	outputVP     viewport.Model
	outputActive bool

	toasts   []toast
	toastSeq int

	stopUnlocks func()
}

func newAppModel(app *App) *appModel {
	state := newSharedState(app)
	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()

	m := &appModel{
		state:    state,
		cmdBar:   newCommandBar(state),
		outputVP: vp,
	}
	m.stopUnlocks = app.Shell.OnUnlock(state.inbox.push)
	m.screen = newScreen(state, app.Shell.CurrentView())
	if app.Shell.ShowOnboarding() {
		m.modal = newOnboardingForm(state)
	}
	return m
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m *appModel) Init() tea.Cmd {
	if m.modal != nil {
		return m.modal.Init()
	}
	return nil
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.announceUnlocks())
}

func (m *appModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.cmdBar.SetWidth(msg.Width)
		m.outputVP.Width = msg.Width
		m.outputVP.Height = m.state.ContentHeight()
		m.rebuild()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case navigateMsg:
		m.clearOutput()
		m.saveCursor()
		m.state.App.Shell.NavigateTo(msg.view)
		m.rebuild()
		return nil

	case backMsg:
		m.clearOutput()
		m.saveCursor()
		m.state.App.Shell.NavigateBack()
		m.rebuild()
		return nil

	case rebuildMsg:
		m.rebuild()
		return nil

	case cmdOutputMsg:
		m.saveCursor()
		m.rebuild()
		m.outputActive = true
		m.outputVP.Width = m.state.ContentWidth()
		m.outputVP.Height = m.state.ContentHeight()
		m.outputVP.SetContent(msg.output)
		m.outputVP.GotoTop()
		return nil

	case openFormMsg:
		m.cmdBar.Blur()
		m.clearOutput()
		m.modal = msg.form
		return m.modal.Init()

	case wizardCompleteMsg:
		m.modal = nil
		return msg.nextCmd

	case toastExpiredMsg:
		for i, t := range m.toasts {
			if t.seq == msg.seq {
				m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
				break
			}
		}
		return nil

	case wakeMsg:
		return nil
	}

	if m.modal != nil {
		_, cmd := m.modal.Update(msg)
		return cmd
	}
	if m.cmdBar.Focused() {
		return m.cmdBar.UpdateNonKey(msg)
	}
	return nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.modal != nil {
		_, cmd := m.modal.Update(msg)
		return cmd
	}
	if m.cmdBar.Focused() {
		return m.cmdBar.Update(msg)
	}
	if m.outputActive {
		if isOutputScrollKey(msg) {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return cmd
		}
		m.clearOutput()
		if msg.Type == tea.KeyEsc {
			return nil
		}
	}

	switch {
	case msg.String() == ":":
		return m.cmdBar.Focus()
	case msg.String() == "q":
		return m.quit()
	case msg.Type == tea.KeyEsc:
		return goBack()
	case msg.String() == "h":
		return navigate(domain.DashboardView{})
	case msg.String() == "v":
		return navigate(domain.ShortsView{})
	case msg.String() == "n":
		return navigate(domain.NewsView{})
	}
	return m.screen.Update(msg)
}

func (m *appModel) quit() tea.Cmd {
	m.quitting = true
	if m.stopUnlocks != nil {
		m.stopUnlocks()
	}
	return tea.Quit
}

// rebuild renders the shell's current view from scratch.
func (m *appModel) rebuild() {
	m.screen = newScreen(m.state, m.state.App.Shell.CurrentView())
}

// saveCursor remembers the cursor of the outgoing screen.
func (m *appModel) saveCursor() {
	if c, ok := m.screen.(interface{ cursorPos() int }); ok {
		m.state.saveCursor(m.state.App.Shell.CurrentView().Name(), c.cursorPos())
	}
}

// announceUnlocks turns pending unlocks into toasts, ringing the bell when
// sound is on. Notifications off suppresses the toast but not the count.
func (m *appModel) announceUnlocks() tea.Cmd {
	unlocked := m.state.inbox.drain()
	if len(unlocked) == 0 {
		return nil
	}
	sh := m.state.App.Shell
	var cmds []tea.Cmd
	if on, _ := sh.Setting(settingNotifications); on {
		for _, a := range unlocked {
			m.toastSeq++
			seq := m.toastSeq
			m.toasts = append(m.toasts, toast{seq: seq, achievement: a})
			cmds = append(cmds, tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} }))
		}
		if len(m.toasts) > maxToasts {
			m.toasts = m.toasts[len(m.toasts)-maxToasts:]
		}
	}
	if sh.SoundEnabled() {
		cmds = append(cmds, ringBell(m.state.App.bell()))
	}
	return tea.Batch(cmds...)
}

func ringBell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		fmt.Fprint(w, "\a")
		return nil
	}
}

func (m *appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	for _, t := range m.toasts {
		sections = append(sections, formatter.Toast(t.achievement))
	}
	switch {
	case m.modal != nil:
		sections = append(sections, m.modal.View())
	case m.outputActive:
		sections = append(sections, m.outputVP.View())
	default:
		sections = append(sections, m.screen.View())
	}
	sections = append(sections, m.renderStatusBar(), m.cmdBar.View())

	result := strings.Join(sections, "\n")
	// Pad to terminal height so the alt-screen diff renderer leaves no
	// stale lines behind.
	if m.state.Height > 0 {
		if lines := strings.Count(result, "\n") + 1; lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	sh := m.state.App.Shell
	title := formatter.StylePurple.Render("vocnav")

	var crumbs []string
	for _, v := range sh.History() {
		if t := viewTitle(m.state, v); t != "" {
			crumbs = append(crumbs, formatter.Truncate(t, 28))
		}
	}
	header := title + " " + formatter.Dim("› "+strings.Join(crumbs, " › "))

	tabs := make([]string, 0, 3)
	active := sh.ActiveTab()
	for _, t := range []struct {
		tab   domain.Tab
		label string
	}{{domain.TabHome, "h home"}, {domain.TabVideo, "v video"}, {domain.TabNews, "n news"}} {
		if t.tab == active {
			tabs = append(tabs, formatter.StyleHeader.Render("["+t.label+"]"))
			continue
		}
		tabs = append(tabs, formatter.Dim(" "+t.label+" "))
	}
	header += "  " + strings.Join(tabs, "")

	incognito, _ := sh.Setting(settingIncognito)
	switch u := sh.CurrentUser(); {
	case incognito:
		header += "  " + formatter.Dim("incognito")
	case u != "":
		header += "  " + formatter.StyleGreen.Render("● "+u)
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	switch {
	case m.modal != nil:
		for _, b := range m.modal.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	case m.outputActive:
		hints = append(hints, formatter.Dim("↑↓ pgup/pgdn: scroll"), formatter.Dim("any key: dismiss"))
	default:
		for _, b := range m.screen.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
		if len(m.state.App.Shell.History()) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim(": command"), formatter.Dim("q: quit"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20))) + "\n" + strings.Join(hints, "  ")
}

func (m *appModel) clearOutput() {
	m.outputActive = false
}

// outputViewportKeyMap leaves letter keys free so they dismiss the output
// or reach global shortcuts.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}
