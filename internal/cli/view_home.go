package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vocnav/internal/catalog"
	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

// menuItem is one selectable row of a menuScreen. Labels are functions so
// rows can reflect state that changes while the screen is open.
type menuItem struct {
	label  func() string
	desc   string
	action func() tea.Cmd
}

func staticItem(label, desc string, action func() tea.Cmd) menuItem {
	return menuItem{label: func() string { return label }, desc: desc, action: action}
}

func navItem(label, desc string, v domain.View) menuItem {
	return staticItem(label, desc, func() tea.Cmd { return navigate(v) })
}

// menuScreen is a titled list of actions with an optional summary above.
type menuScreen struct {
	state   *SharedState
	summary func() string
	items   []menuItem
	list    cursorList
}

func newMenuScreen(s *SharedState, name domain.ViewName, summary func() string, items ...menuItem) *menuScreen {
	return &menuScreen{state: s, summary: summary, items: items, list: newCursorList(len(items), s.cursor(name))}
}

func (v *menuScreen) cursorPos() int { return v.list.cursorPos() }

func (v *menuScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("↑/↓", "move"), binding("enter", "open")}
}

func (v *menuScreen) Update(msg tea.KeyMsg) tea.Cmd {
	if v.list.move(msg.String()) {
		return nil
	}
	if msg.Type == tea.KeyEnter && len(v.items) > 0 {
		return v.items[v.list.cursor].action()
	}
	return nil
}

func (v *menuScreen) View() string {
	var b strings.Builder
	if v.summary != nil {
		b.WriteString(v.summary() + "\n")
	}
	rows := make([]string, len(v.items))
	for i, it := range v.items {
		rows[i] = fmt.Sprintf("%-26s %s", it.label(), formatter.Dim(it.desc))
	}
	b.WriteString(v.list.render(rows, v.state.ContentHeight()-strings.Count(b.String(), "\n")))
	return b.String()
}

func newDashboardScreen(s *SharedState) screen {
	return newMenuScreen(s, domain.ViewDashboard, func() string { return dashboardSummary(s) },
		navItem("Find your path", "specialty, college or quiz", domain.EducationTypeSelectionView{}),
		navItem("Specialties", "programmes and worker professions", domain.SpecialtiesView{}),
		navItem("Colleges", "where to study", domain.CollegesView{}),
		navItem("Career quiz", "three ways to discover what suits you", domain.QuizView{}),
		navItem("My plan", "your checklist to admission", domain.MyPlanView{}),
		navItem("Top professions", "most demanded jobs", domain.Top50View{}),
		navItem("Calendar", "open days and deadlines", domain.CalendarView{}),
		navItem("News", "admission news", domain.NewsView{}),
		navItem("Shorts", "short videos from colleges", domain.ShortsView{}),
		navItem("Profile", "score calculator and achievements", domain.ProfileView{}),
		navItem("Settings", "theme, sound, reset", domain.SettingsView{}),
		navItem("Account", "sign in to sync your plan", domain.AuthView{}),
	)
}

func dashboardSummary(s *SharedState) string {
	sh := s.App.Shell
	var b strings.Builder

	who := "guest"
	if u := sh.CurrentUser(); u != "" {
		who = u
	}
	b.WriteString(formatter.Bold("Hi, "+who) + "\n")

	plan := sh.Plan()
	unlocked := 0
	for _, a := range sh.Achievements() {
		if sh.IsUnlocked(a.ID) {
			unlocked++
		}
	}
	line := fmt.Sprintf("Plan: %d items %s · Achievements %d/%d",
		len(plan), formatter.ProgressBar(domain.PlanProgress(plan), 10), unlocked, len(sh.Achievements()))
	if res, ok := sh.Score(); ok {
		line += " · Average " + formatter.Score(res.Average)
	}
	b.WriteString(line + "\n")

	if events := upcoming(s, 3); len(events) > 0 {
		b.WriteString(formatter.Dim("Coming up:") + "\n")
		name := collegeName(sh.Catalog())
		for _, e := range events {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", formatter.EventDate(e.Date, s.App.now()), e.Title, formatter.Dim(name(e.CollegeID))))
		}
	}
	return b.String()
}

// upcoming returns up to n future events, preferring colleges in the plan.
func upcoming(s *SharedState, n int) []catalog.Event {
	today := s.App.now().Format("2006-01-02")
	events := calendarEvents(s.App, true)
	if len(events) == 0 {
		events = calendarEvents(s.App, false)
	}
	var out []catalog.Event
	for _, e := range events {
		if e.Date >= today {
			out = append(out, e)
		}
		if len(out) == n {
			break
		}
	}
	return out
}

func newEducationTypeScreen(s *SharedState) screen {
	return newMenuScreen(s, domain.ViewEducationTypeSelection,
		func() string { return formatter.Header("How do you want to choose?") + "\n" },
		navItem("By specialty", "start from what you want to do", domain.SpecialtiesView{}),
		navItem("By college", "start from where you want to study", domain.CollegesView{}),
		navItem("Not sure yet", "take a career quiz", domain.QuizView{}),
	)
}
