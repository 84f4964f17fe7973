package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

// shortsScreen pages through short videos one at a time. Watch counting is
// driven by the shell's timer while this view is current.
type shortsScreen struct {
	state *SharedState
	list  cursorList
}

func newShortsScreen(s *SharedState) screen {
	return &shortsScreen{state: s, list: newCursorList(len(s.App.Shell.Catalog().Shorts), s.cursor(domain.ViewShorts))}
}

func (v *shortsScreen) cursorPos() int { return v.list.cursorPos() }

func (v *shortsScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("↑/↓", "next"), binding("l", "like"), binding("enter", "open")}
}

func (v *shortsScreen) Update(msg tea.KeyMsg) tea.Cmd {
	shorts := v.state.App.Shell.Catalog().Shorts
	if v.list.move(msg.String()) || len(shorts) == 0 {
		return nil
	}
	sh := shorts[v.list.cursor]
	switch msg.String() {
	case "l":
		if !v.state.liked[sh.ID] {
			v.state.liked[sh.ID] = true
			v.state.App.Shell.IncrementVideoLike()
		}
	case "enter":
		switch {
		case sh.CollegeID != "":
			return navigate(domain.CollegeDetailView{ID: sh.CollegeID})
		case sh.SpecialtyID != "":
			return navigate(domain.ProfessionDetailView{ID: sh.SpecialtyID})
		}
	}
	return nil
}

func (v *shortsScreen) View() string {
	shorts := v.state.App.Shell.Catalog().Shorts
	if len(shorts) == 0 {
		return formatter.Dim("No shorts yet.")
	}
	sh := shorts[v.list.cursor]
	likes := sh.Likes
	heart := "♡"
	if v.state.liked[sh.ID] {
		likes++
		heart = formatter.StyleRed.Render("♥")
	}

	var b strings.Builder
	b.WriteString(formatter.Dim(fmt.Sprintf("%d/%d", v.list.cursor+1, len(shorts))) + "\n\n")
	b.WriteString(formatter.Bold(sh.Title) + "\n")
	b.WriteString(formatter.Dim("@"+sh.Author) + "\n\n")
	b.WriteString(sh.Description + "\n\n")
	b.WriteString(fmt.Sprintf("%s %d   ▶ %s\n", heart, likes, sh.Views))
	return formatter.RenderBox("Shorts", b.String())
}
