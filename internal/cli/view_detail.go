package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
)

// detailScreen is a scrollable markdown page. Pages for plan-able items
// show whether the item is in the plan and toggle it with a.
type detailScreen struct {
	state  *SharedState
	itemID string // empty for pages that cannot be added to the plan
	body   func() string
	vp     viewport.Model
}

func newDetailScreen(s *SharedState, itemID string, body func() string) *detailScreen {
	v := &detailScreen{state: s, itemID: itemID, body: body}
	v.vp = viewport.New(s.ContentWidth(), s.ContentHeight())
	v.vp.KeyMap = outputViewportKeyMap()
	v.render()
	return v
}

func (v *detailScreen) render() {
	md := v.body()
	if v.itemID != "" {
		status := "_Not in your plan. Press **a** to add._"
		if v.state.App.Shell.InPlan(v.itemID) {
			status = "_★ In your plan. Press **a** to remove._"
		}
		md = status + "\n\n" + md
	}
	v.vp.SetContent(formatter.RenderMarkdown(md, themeStyle(v.state.App.Shell.Theme()), v.state.ContentWidth()))
}

func (v *detailScreen) ShortHelp() []key.Binding {
	if v.itemID == "" {
		return []key.Binding{binding("↑/↓", "scroll")}
	}
	return []key.Binding{binding("↑/↓", "scroll"), binding("a", "plan"), binding("c", "compare")}
}

func (v *detailScreen) Update(msg tea.KeyMsg) tea.Cmd {
	if v.itemID != "" {
		switch msg.String() {
		case "a":
			cmd := togglePlan(v.state, v.itemID)
			v.render()
			return cmd
		case "c":
			return toggleCompare(v.state, v.itemID)
		}
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return cmd
}

func (v *detailScreen) View() string { return v.vp.View() }

func newSpecialtyDetailScreen(s *SharedState, id string) screen {
	cat := s.App.Shell.Catalog()
	return newDetailScreen(s, id, func() string {
		sp, ok := cat.Specialty(id)
		if !ok {
			return "Specialty not found."
		}
		return formatter.SpecialtyMarkdown(sp, cat.CollegesFor(id))
	})
}

func newCollegeDetailScreen(s *SharedState, id string) screen {
	cat := s.App.Shell.Catalog()
	return newDetailScreen(s, id, func() string {
		c, ok := cat.College(id)
		if !ok {
			return "College not found."
		}
		return formatter.CollegeMarkdown(c, specialtiesOf(cat, c))
	})
}

func newNewsDetailScreen(s *SharedState, id string) screen {
	cat := s.App.Shell.Catalog()
	return newDetailScreen(s, "", func() string {
		n, ok := cat.NewsByID(id)
		if !ok {
			return "Article not found."
		}
		return formatter.NewsMarkdown(n)
	})
}
