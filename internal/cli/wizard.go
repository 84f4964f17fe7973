package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vocnav/internal/app"
	"github.com/alexanderramin/vocnav/internal/calculator"
	"github.com/alexanderramin/vocnav/internal/cli/formatter"
)

// vocnavHuhTheme returns a huh theme matching the Gruvbox palette.
func vocnavHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	accent := lipgloss.NewStyle().Foreground(formatter.ColorHeader)

	t.Focused.Title = accent.Bold(true)
	t.Focused.SelectSelector = accent
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	dim := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Title = dim
	t.Blurred.SelectSelector = dim
	t.Blurred.SelectedOption = dim
	t.Blurred.UnselectedOption = dim
	t.Blurred.TextInput.Prompt = dim
	t.Blurred.TextInput.Text = dim
	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(vocnavHuhTheme()).WithShowHelp(false)
}

// validateGrade accepts blank (ungraded) or a whole grade in range.
func validateGrade(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < calculator.MinGrade || n > calculator.MaxGrade {
		return fmt.Errorf("enter a grade from %d to %d", calculator.MinGrade, calculator.MaxGrade)
	}
	return nil
}

func validateUserID(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("enter your user id")
	}
	return nil
}

// newOnboardingForm asks whether to start with the quiz or the dashboard.
func newOnboardingForm(state *SharedState) *formModal {
	action := app.OnboardingQuiz
	form := newForm(huh.NewGroup(
		huh.NewNote().
			Title("Welcome to vocnav").
			Description("Pick specialties and colleges, build your admission plan and track every step."),
		huh.NewSelect[string]().
			Title("Where do you want to start?").
			Options(
				huh.NewOption("Take the career quiz", app.OnboardingQuiz),
				huh.NewOption("Explore on my own", app.OnboardingDashboard),
			).
			Value(&action),
	))
	finish := func(action string) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				state.App.Shell.CompleteOnboarding(action)
				return rebuildMsg{}
			}
		}
	}
	return newFormModal(state, "Welcome", form, func() tea.Cmd { return finish(action)() }).
		onSkip(finish(app.OnboardingDashboard))
}

// newCalculatorForm edits every subject grade, then calculates.
func newCalculatorForm(state *SharedState) *formModal {
	sh := state.App.Shell
	subjects := sh.Subjects()
	values := make([]string, len(subjects))
	fields := make([]huh.Field, 0, len(subjects))
	for i, s := range subjects {
		if s.Grade > 0 {
			values[i] = strconv.Itoa(s.Grade)
		}
		fields = append(fields, huh.NewInput().
			Title(s.Name).
			Placeholder("-").
			Value(&values[i]).
			Validate(validateGrade))
	}

	form := newForm(huh.NewGroup(fields...))
	return newFormModal(state, "Score calculator", form, func() tea.Cmd {
		return func() tea.Msg {
			for i, s := range subjects {
				g, _ := strconv.Atoi(strings.TrimSpace(values[i]))
				if err := sh.SetGrade(s.ID, g); err != nil {
					return cmdOutputMsg{output: formatter.StyleRed.Render(err.Error())}
				}
			}
			res := sh.Calculate()
			var b strings.Builder
			writeScore(&b, state.App, res)
			return cmdOutputMsg{output: b.String()}
		}
	})
}

// newLoginForm signs in with a user id and waits for the plan sync.
func newLoginForm(state *SharedState) *formModal {
	var user string
	form := newForm(huh.NewGroup(
		huh.NewInput().Title("User id").Value(&user).Validate(validateUserID),
	))
	return newFormModal(state, "Sign in", form, func() tea.Cmd {
		return func() tea.Msg {
			user = strings.TrimSpace(user)
			if state.App.Sessions == nil {
				return cmdOutputMsg{output: formatter.StyleRed.Render("Sessions are not configured.")}
			}
			if err := state.App.Sessions.SignIn(user); err != nil {
				return cmdOutputMsg{output: formatter.StyleRed.Render(err.Error())}
			}
			state.App.Shell.SignIn(context.Background(), user)
			return cmdOutputMsg{output: fmt.Sprintf("Signed in as %s · %d items in your plan", user, len(state.App.Shell.Plan()))}
		}
	})
}

// newResetForm confirms erasing all local data.
func newResetForm(state *SharedState) *formModal {
	var confirmed bool
	form := newForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Erase plan, progress and settings?").
			Affirmative("Erase").
			Negative("Keep").
			Value(&confirmed),
	))
	return newFormModal(state, "Reset data", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		return func() tea.Msg {
			state.App.Shell.ResetData()
			return cmdOutputMsg{output: "All local data erased."}
		}
	})
}
