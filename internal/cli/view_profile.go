package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

// profileScreen shows the score and achievements with their progress.
type profileScreen struct {
	state *SharedState
}

func newProfileScreen(s *SharedState) screen { return &profileScreen{state: s} }

func (v *profileScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("c", "calculator"), binding("l", "colleges in reach")}
}

func (v *profileScreen) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "c":
		return openForm(newCalculatorForm(v.state))
	case "l":
		res, ok := v.state.App.Shell.Score()
		if !ok {
			return showOutput(formatter.Dim("Calculate your average first (c)."))
		}
		return showOutput(formatter.FormatColleges(v.state.App.Shell.Catalog().PassableColleges(res.Average), v.state.App.Shell.InPlan))
	}
	return nil
}

func (v *profileScreen) View() string {
	sh := v.state.App.Shell
	var b strings.Builder
	b.WriteString(formatter.Header("Score") + "\n")
	if res, ok := sh.Score(); ok {
		b.WriteString(fmt.Sprintf("Average %s · %d of %d colleges within reach\n\n",
			formatter.Bold(formatter.Score(res.Average)), res.Passable, res.Total))
	} else {
		b.WriteString(formatter.Dim("No average yet. Press c to open the calculator.") + "\n\n")
	}

	c := sh.Counters()
	b.WriteString(formatter.Dim(fmt.Sprintf("Quizzes %d · Colleges viewed %d · Shorts watched %d · Liked %d",
		c.QuizzesPassed, c.CollegesViewed, c.VideosWatched, c.VideosLiked)) + "\n\n")
	b.WriteString(formatter.FormatAchievements(sh.Achievements(), c, sh.IsUnlocked))
	return b.String()
}

// authScreen shows the session and signs in or out.
type authScreen struct {
	state *SharedState
}

func newAuthScreen(s *SharedState) screen { return &authScreen{state: s} }

func (v *authScreen) ShortHelp() []key.Binding {
	if v.state.App.Shell.CurrentUser() != "" {
		return []key.Binding{binding("o", "sign out")}
	}
	return []key.Binding{binding("l", "sign in")}
}

func (v *authScreen) Update(msg tea.KeyMsg) tea.Cmd {
	sh := v.state.App.Shell
	switch msg.String() {
	case "l":
		if sh.CurrentUser() == "" {
			return openForm(newLoginForm(v.state))
		}
	case "o":
		if sh.CurrentUser() != "" && v.state.App.Sessions != nil {
			app := v.state.App
			return func() tea.Msg {
				if err := app.Sessions.SignOut(); err != nil {
					return cmdOutputMsg{output: formatter.StyleRed.Render(err.Error())}
				}
				app.Shell.SignIn(context.Background(), "")
				return cmdOutputMsg{output: "Signed out. Your local plan was cleared."}
			}
		}
	}
	return nil
}

func (v *authScreen) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Account") + "\n")
	if u := v.state.App.Shell.CurrentUser(); u != "" {
		b.WriteString("Signed in as " + formatter.StyleGreen.Render(u) + "\n")
		b.WriteString(formatter.Dim("Your plan is synced to your account.") + "\n")
		return b.String()
	}
	b.WriteString("Not signed in.\n")
	b.WriteString(formatter.Dim("Sign in to keep your plan across devices. Items you add now are uploaded on sign-in.") + "\n")
	return b.String()
}

func newSettingsScreen(s *SharedState) screen {
	sh := s.App.Shell
	toggle := func(name, desc string) menuItem {
		setting := appSetting(name)
		return menuItem{
			label: func() string {
				on, _ := sh.Setting(setting)
				return fmt.Sprintf("%-14s %s", name, onOff(on))
			},
			desc: desc,
			action: func() tea.Cmd {
				on, _ := sh.Setting(setting)
				_ = sh.SetSetting(setting, !on)
				return nil
			},
		}
	}
	return newMenuScreen(s, domain.ViewSettings, func() string { return formatter.Header("Settings") + "\n" },
		menuItem{
			label: func() string { return fmt.Sprintf("%-14s %s", "theme", sh.Theme()) },
			desc:  "light → dark → system",
			action: func() tea.Cmd {
				_ = sh.SetTheme(nextTheme(sh.Theme()))
				return nil
			},
		},
		toggle(string(settingSound), "bell on achievements"),
		toggle(string(settingNotifications), "achievement toasts"),
		toggle(string(settingIncognito), "hide your name in the header"),
		staticItem("Replay onboarding", "show the welcome again", func() tea.Cmd {
			sh.ReplayOnboarding()
			return openForm(newOnboardingForm(s))
		}),
		staticItem("Reset all data", "erase plan, progress and settings", func() tea.Cmd {
			return openForm(newResetForm(s))
		}),
	)
}

func nextTheme(m domain.ThemeMode) domain.ThemeMode {
	switch m {
	case domain.ThemeLight:
		return domain.ThemeDark
	case domain.ThemeDark:
		return domain.ThemeSystem
	}
	return domain.ThemeLight
}
