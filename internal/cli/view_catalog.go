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

// togglePlan adds a catalog item to the plan, or removes it when present.
func togglePlan(s *SharedState, id string) tea.Cmd {
	sh := s.App.Shell
	if sh.InPlan(id) {
		sh.RemoveFromPlan(id)
		return nil
	}
	if _, err := sh.AddCatalogItem(id); err != nil {
		return showOutput(formatter.StyleRed.Render(err.Error()))
	}
	return nil
}

func toggleCompare(s *SharedState, id string) tea.Cmd {
	if _, err := s.App.Shell.ToggleCompare(id); err != nil {
		return showOutput(formatter.StyleRed.Render(err.Error()))
	}
	return nil
}

func planMarker(s *SharedState, id string) string {
	mark := "  "
	if s.App.Shell.InPlan(id) {
		mark = formatter.StyleYellow.Render("★ ")
	}
	for _, sel := range s.App.Shell.CompareSelection() {
		if sel == id {
			return mark + formatter.StyleBlue.Render("⇄ ")
		}
	}
	return mark
}

var specialtyKindFilters = []catalog.SpecialtyKind{"", catalog.KindSpecialty, catalog.KindProfession}

type specialtiesScreen struct {
	state *SharedState
	kind  int
	items []catalog.Specialty
	list  cursorList
}

func newSpecialtiesScreen(s *SharedState) screen {
	v := &specialtiesScreen{state: s, list: newCursorList(0, s.cursor(domain.ViewSpecialties))}
	v.filter()
	return v
}

func (v *specialtiesScreen) filter() {
	v.items = v.items[:0]
	want := specialtyKindFilters[v.kind]
	for _, sp := range v.state.App.Shell.Catalog().Specialties {
		if want == "" || sp.Kind == want {
			v.items = append(v.items, sp)
		}
	}
	v.list.resize(len(v.items))
}

func (v *specialtiesScreen) cursorPos() int { return v.list.cursorPos() }

func (v *specialtiesScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("enter", "details"), binding("a", "plan"), binding("c", "compare"), binding("f", "filter")}
}

func (v *specialtiesScreen) Update(msg tea.KeyMsg) tea.Cmd {
	if v.list.move(msg.String()) {
		return nil
	}
	if msg.String() == "f" {
		v.kind = (v.kind + 1) % len(specialtyKindFilters)
		v.filter()
		return nil
	}
	if len(v.items) == 0 {
		return nil
	}
	id := v.items[v.list.cursor].ID
	switch msg.String() {
	case "enter":
		return navigate(domain.ProfessionDetailView{ID: id})
	case "a":
		return togglePlan(v.state, id)
	case "c":
		return toggleCompare(v.state, id)
	}
	return nil
}

func (v *specialtiesScreen) View() string {
	label := "all"
	if k := specialtyKindFilters[v.kind]; k != "" {
		label = string(k)
	}
	head := formatter.Dim(fmt.Sprintf("%d shown · filter: %s", len(v.items), label)) + "\n"
	rows := make([]string, len(v.items))
	for i, sp := range v.items {
		rows[i] = fmt.Sprintf("%s%-40s %s %s", planMarker(v.state, sp.ID),
			formatter.Truncate(sp.Title, 40), formatter.Dim(sp.Duration), formatter.Score(sp.PassingScore))
	}
	return head + v.list.render(rows, v.state.ContentHeight()-1)
}

type collegesScreen struct {
	state    *SharedState
	passable bool
	items    []catalog.College
	list     cursorList
}

func newCollegesScreen(s *SharedState) screen {
	v := &collegesScreen{state: s, list: newCursorList(0, s.cursor(domain.ViewColleges))}
	v.filter()
	return v
}

func (v *collegesScreen) filter() {
	cat := v.state.App.Shell.Catalog()
	v.items = cat.Colleges
	if res, ok := v.state.App.Shell.Score(); ok && v.passable {
		v.items = cat.PassableColleges(res.Average)
	}
	v.list.resize(len(v.items))
}

func (v *collegesScreen) cursorPos() int { return v.list.cursorPos() }

func (v *collegesScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("enter", "details"), binding("a", "plan"), binding("c", "compare"), binding("p", "within reach")}
}

func (v *collegesScreen) Update(msg tea.KeyMsg) tea.Cmd {
	if v.list.move(msg.String()) {
		return nil
	}
	if msg.String() == "p" {
		if _, ok := v.state.App.Shell.Score(); !ok {
			return showOutput(formatter.Dim("Calculate your average on the profile screen first."))
		}
		v.passable = !v.passable
		v.filter()
		return nil
	}
	if len(v.items) == 0 {
		return nil
	}
	id := v.items[v.list.cursor].ID
	switch msg.String() {
	case "enter":
		return navigate(domain.CollegeDetailView{ID: id})
	case "a":
		return togglePlan(v.state, id)
	case "c":
		return toggleCompare(v.state, id)
	}
	return nil
}

func (v *collegesScreen) View() string {
	head := fmt.Sprintf("%d colleges", len(v.items))
	if v.passable {
		res, _ := v.state.App.Shell.Score()
		head += " within reach of " + formatter.Score(res.Average)
	}
	rows := make([]string, len(v.items))
	for i, c := range v.items {
		rows[i] = fmt.Sprintf("%s%-40s %-14s %s", planMarker(v.state, c.ID),
			formatter.Truncate(c.Name, 40), formatter.Dim(c.City), formatter.Score(c.PassingScore))
	}
	return formatter.Dim(head) + "\n" + v.list.render(rows, v.state.ContentHeight()-1)
}

type topScreen struct {
	state *SharedState
	items []catalog.Profession
	list  cursorList
}

func newTopScreen(s *SharedState) screen {
	items := s.App.Shell.Catalog().TopProfessions()
	if len(items) > 50 {
		items = items[:50]
	}
	return &topScreen{state: s, items: items, list: newCursorList(len(items), s.cursor(domain.ViewTop50))}
}

func (v *topScreen) cursorPos() int { return v.list.cursorPos() }

func (v *topScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("enter", "details")}
}

func (v *topScreen) Update(msg tea.KeyMsg) tea.Cmd {
	if v.list.move(msg.String()) || len(v.items) == 0 {
		return nil
	}
	if msg.Type == tea.KeyEnter {
		return showOutput(v.describe(v.items[v.list.cursor]))
	}
	return nil
}

func (v *topScreen) describe(p catalog.Profession) string {
	cat := v.state.App.Shell.Catalog()
	var b strings.Builder
	b.WriteString(formatter.Header(p.Name) + " " + formatter.TrendBadge(p.Trend) + "\n")
	b.WriteString(formatter.Dim(p.Sphere) + " · " + formatter.SalaryRange(p.SalaryFrom, p.SalaryTo) + "\n\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	for _, id := range p.RelatedSpecialtyIDs {
		b.WriteString("  specialty: " + cat.Title(id) + "\n")
	}
	for _, id := range p.CollegeIDs {
		b.WriteString("  college:   " + cat.Title(id) + "\n")
	}
	return b.String()
}

func (v *topScreen) View() string {
	rows := make([]string, len(v.items))
	for i, p := range v.items {
		rows[i] = fmt.Sprintf("%2d. %-36s %s %s", i+1, formatter.Truncate(p.Name, 36),
			formatter.TrendBadge(p.Trend), formatter.Dim(formatter.SalaryRange(p.SalaryFrom, p.SalaryTo)))
	}
	return v.list.render(rows, v.state.ContentHeight())
}

type calendarScreen struct {
	state    *SharedState
	planOnly bool
	events   []catalog.Event
	list     cursorList
}

func newCalendarScreen(s *SharedState) screen {
	v := &calendarScreen{state: s, list: newCursorList(0, s.cursor(domain.ViewCalendar))}
	v.load()
	return v
}

func (v *calendarScreen) load() {
	v.events = calendarEvents(v.state.App, v.planOnly)
	v.list.resize(len(v.events))
}

func (v *calendarScreen) cursorPos() int { return v.list.cursorPos() }

func (v *calendarScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("p", "plan only"), binding("enter", "college")}
}

func (v *calendarScreen) Update(msg tea.KeyMsg) tea.Cmd {
	if v.list.move(msg.String()) {
		return nil
	}
	switch msg.String() {
	case "p":
		v.planOnly = !v.planOnly
		v.load()
	case "enter":
		if len(v.events) > 0 {
			return navigate(domain.CollegeDetailView{ID: v.events[v.list.cursor].CollegeID})
		}
	}
	return nil
}

func (v *calendarScreen) View() string {
	if len(v.events) == 0 {
		if v.planOnly {
			return formatter.Dim("No events for colleges in your plan. Press p to show all.")
		}
		return formatter.Dim("No events.")
	}
	name := collegeName(v.state.App.Shell.Catalog())
	now := v.state.App.now()
	rows := make([]string, len(v.events))
	for i, e := range v.events {
		rows[i] = fmt.Sprintf("%-16s %s %-34s %s", formatter.EventDate(e.Date, now), formatter.EventBadge(e.Type),
			formatter.Truncate(e.Title, 34), formatter.Dim(name(e.CollegeID)))
	}
	return v.list.render(rows, v.state.ContentHeight())
}

type newsScreen struct {
	state *SharedState
	list  cursorList
}

func newNewsScreen(s *SharedState) screen {
	return &newsScreen{state: s, list: newCursorList(len(s.App.Shell.Catalog().News), s.cursor(domain.ViewNews))}
}

func (v *newsScreen) cursorPos() int { return v.list.cursorPos() }

func (v *newsScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("enter", "read")}
}

func (v *newsScreen) Update(msg tea.KeyMsg) tea.Cmd {
	news := v.state.App.Shell.Catalog().News
	if v.list.move(msg.String()) || len(news) == 0 {
		return nil
	}
	if msg.Type == tea.KeyEnter {
		return navigate(domain.NewsDetailView{ID: news[v.list.cursor].ID})
	}
	return nil
}

func (v *newsScreen) View() string {
	news := v.state.App.Shell.Catalog().News
	rows := make([]string, len(news))
	for i, n := range news {
		rows[i] = fmt.Sprintf("%s  %s", formatter.Dim(n.Date), formatter.Truncate(n.Title, 60))
	}
	return v.list.render(rows, v.state.ContentHeight())
}
