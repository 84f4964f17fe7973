package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// screen renders one navigation entry. Screens are rebuilt whenever the
// shell's current view changes, so they only keep presentation state.
type screen interface {
	Update(msg tea.KeyMsg) tea.Cmd
	View() string
	ShortHelp() []key.Binding // key hints shown in the bottom bar
}

// newScreen dispatches on the closed set of view variants.
func newScreen(s *SharedState, v domain.View) screen {
	switch v := v.(type) {
	case domain.AuthView:
		return newAuthScreen(s)
	case domain.DashboardView:
		return newDashboardScreen(s)
	case domain.SpecialtiesView:
		return newSpecialtiesScreen(s)
	case domain.CollegesView:
		return newCollegesScreen(s)
	case domain.ProfileView:
		return newProfileScreen(s)
	case domain.ProfessionDetailView:
		return newSpecialtyDetailScreen(s, v.ID)
	case domain.CollegeDetailView:
		return newCollegeDetailScreen(s, v.ID)
	case domain.EducationTypeSelectionView:
		return newEducationTypeScreen(s)
	case domain.QuizView:
		if v.Type == "" {
			return newQuizSelectionScreen(s)
		}
		return newQuizScreen(s, v.Type)
	case domain.MyPlanView:
		return newPlanScreen(s)
	case domain.Top50View:
		return newTopScreen(s)
	case domain.CalendarView:
		return newCalendarScreen(s)
	case domain.QuizResultView:
		return newQuizResultScreen(s, v.Type, v.Scores)
	case domain.NewsView:
		return newNewsScreen(s)
	case domain.NewsDetailView:
		return newNewsDetailScreen(s, v.ID)
	case domain.ShortsView:
		return newShortsScreen(s)
	case domain.SettingsView:
		return newSettingsScreen(s)
	}
	return newDashboardScreen(s)
}

// viewTitle is the breadcrumb segment for v.
func viewTitle(s *SharedState, v domain.View) string {
	cat := s.App.Shell.Catalog()
	switch v := v.(type) {
	case domain.AuthView:
		return "Account"
	case domain.DashboardView:
		return "Home"
	case domain.SpecialtiesView:
		return "Specialties"
	case domain.CollegesView:
		return "Colleges"
	case domain.ProfileView:
		return "Profile"
	case domain.ProfessionDetailView:
		return cat.Title(v.ID)
	case domain.CollegeDetailView:
		return cat.Title(v.ID)
	case domain.EducationTypeSelectionView:
		return "Find your path"
	case domain.QuizView:
		if q, ok := cat.Quiz(v.Type); ok && v.Type != "" {
			return q.Title
		}
		return "Quizzes"
	case domain.MyPlanView:
		return "My plan"
	case domain.Top50View:
		return "Top professions"
	case domain.CalendarView:
		return "Calendar"
	case domain.QuizResultView:
		return "Result"
	case domain.NewsView:
		return "News"
	case domain.NewsDetailView:
		if n, ok := cat.NewsByID(v.ID); ok {
			return n.Title
		}
		return "Article"
	case domain.ShortsView:
		return "Shorts"
	case domain.SettingsView:
		return "Settings"
	}
	return ""
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}
