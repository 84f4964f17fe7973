package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

// planRow is either a plan item (entry < 0) or one of its checklist entries.
type planRow struct {
	item  domain.PlanItem
	entry int
}

// planScreen lists plan items with their checklists inline. The plan is
// re-read on every render so background syncs show up immediately.
type planScreen struct {
	state *SharedState
	list  cursorList
}

func newPlanScreen(s *SharedState) screen {
	v := &planScreen{state: s, list: newCursorList(0, s.cursor(domain.ViewMyPlan))}
	v.list.resize(len(v.rows()))
	return v
}

func (v *planScreen) rows() []planRow {
	var out []planRow
	for _, it := range v.state.App.Shell.Plan() {
		out = append(out, planRow{item: it, entry: -1})
		for i := range it.Checklist {
			out = append(out, planRow{item: it, entry: i})
		}
	}
	return out
}

func (v *planScreen) cursorPos() int { return v.list.cursorPos() }

func (v *planScreen) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("space", "check"), binding("enter", "open"), binding("d", "remove"),
		binding("c", "select"), binding("C", "compare"),
	}
}

func (v *planScreen) Update(msg tea.KeyMsg) tea.Cmd {
	rows := v.rows()
	v.list.resize(len(rows))
	if v.list.move(msg.String()) {
		return nil
	}
	if msg.String() == "C" {
		return v.compare()
	}
	if len(rows) == 0 {
		return nil
	}
	row := rows[v.list.cursor]
	sh := v.state.App.Shell

	if row.entry >= 0 {
		entry := row.item.Checklist[row.entry]
		switch msg.String() {
		case " ", "x":
			sh.UpdateChecklistItem(row.item.ID, entry.ID, !entry.IsCompleted)
		case "enter":
			if name, ok := entry.NavigationTarget(); ok {
				if target, ok := domain.SimpleView(name); ok {
					return navigate(target)
				}
			}
			if url, ok := entry.LinkTarget(); ok {
				return showOutput(entry.Text + "\n\n" + formatter.StyleBlue.Render(url))
			}
			sh.UpdateChecklistItem(row.item.ID, entry.ID, !entry.IsCompleted)
		}
		return nil
	}

	switch msg.String() {
	case "enter":
		if row.item.Type == domain.ItemCollege {
			return navigate(domain.CollegeDetailView{ID: row.item.ID})
		}
		return navigate(domain.ProfessionDetailView{ID: row.item.ID})
	case "d":
		sh.RemoveFromPlan(row.item.ID)
		v.list.resize(len(v.rows()))
	case "c":
		return toggleCompare(v.state, row.item.ID)
	}
	return nil
}

func (v *planScreen) compare() tea.Cmd {
	left, right, err := v.state.App.Shell.Compare()
	if err != nil {
		return showOutput(formatter.StyleRed.Render(err.Error()) + "\n" +
			formatter.Dim("Select two items of the same type with c."))
	}
	return showOutput(renderComparison(v.state.App, left, right))
}

func (v *planScreen) View() string {
	plan := v.state.App.Shell.Plan()
	if len(plan) == 0 {
		return formatter.Dim("Your plan is empty. Add specialties or colleges with a from their lists.")
	}
	cat := v.state.App.Shell.Catalog()
	rows := v.rows()
	v.list.resize(len(rows))
	lines := make([]string, len(rows))
	for i, r := range rows {
		if r.entry < 0 {
			done, total := r.item.Progress()
			lines[i] = fmt.Sprintf("%s%s %s %s", planMarker(v.state, r.item.ID), formatter.ItemTypeBadge(r.item.Type),
				formatter.Bold(cat.Title(r.item.ID)), formatter.Dim(formatter.Fraction(done, total)))
			continue
		}
		c := r.item.Checklist[r.entry]
		lines[i] = fmt.Sprintf("    %s %s", formatter.Check(c.IsCompleted), c.Text)
	}
	head := fmt.Sprintf("Overall %s", formatter.ProgressBar(domain.PlanProgress(plan), 20))
	return head + "\n" + v.list.render(lines, v.state.ContentHeight()-1)
}
