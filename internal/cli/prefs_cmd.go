package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/vocnav/internal/app"
	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

// themeValue is a pflag.Value accepting only known theme modes.
type themeValue struct {
	mode *domain.ThemeMode
}

var _ pflag.Value = themeValue{}

func (v themeValue) String() string {
	if v.mode == nil {
		return ""
	}
	return string(*v.mode)
}

func (v themeValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidThemeModes[s] {
		return fmt.Errorf("%w: %q (use light, dark or system)", app.ErrInvalidTheme, s)
	}
	*v.mode = domain.ThemeMode(s)
	return nil
}

func (themeValue) Type() string { return "light|dark|system" }

// themeStyle resolves a theme to a glamour style. The system theme follows
// the terminal background.
func themeStyle(mode domain.ThemeMode) string {
	switch mode {
	case domain.ThemeLight:
		return formatter.MarkdownLight
	case domain.ThemeDark:
		return formatter.MarkdownDark
	}
	if lipgloss.HasDarkBackground() {
		return formatter.MarkdownDark
	}
	return formatter.MarkdownLight
}

func newThemeCmd(app *App) *cobra.Command {
	var mode domain.ThemeMode

	cmd := &cobra.Command{
		Use:   "theme [light|dark|system]",
		Short: "Show or change the color theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := (themeValue{&mode}).Set(args[0]); err != nil {
					return err
				}
			}
			if mode != "" {
				if err := app.Shell.SetTheme(mode); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", app.Shell.Theme())
			return nil
		},
	}
	cmd.Flags().Var(themeValue{&mode}, "set", "Theme to apply")
	return cmd
}

func newSettingsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "settings [name=true|false ...]",
		Short: "Show or change sound, notifications and incognito",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				name, raw, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected name=value, got %q", arg)
				}
				v, err := strconv.ParseBool(raw)
				if err != nil {
					return fmt.Errorf("%s: %q is not a boolean", name, raw)
				}
				if err := app.Shell.SetSetting(appSetting(name), v); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}

			rows := make([][]string, 0, 4)
			rows = append(rows, []string{"theme", string(app.Shell.Theme())})
			for _, name := range appSettings() {
				v, _ := app.Shell.Setting(name)
				rows = append(rows, []string{string(name), onOff(v)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"SETTING", "VALUE"}, rows))
			return nil
		},
	}
}

func appSetting(name string) app.Setting { return app.Setting(strings.ToLower(name)) }

func appSettings() []app.Setting { return app.Settings() }

func onOff(v bool) string {
	if v {
		return formatter.StyleGreen.Render("on")
	}
	return formatter.Dim("off")
}

func newAchievementsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and your progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := app.Shell
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAchievements(sh.Achievements(), sh.Counters(), sh.IsUnlocked))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all local data and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to erase data without --yes")
			}
			app.Shell.ResetData()
			fmt.Fprintln(cmd.OutOrStdout(), "All local data erased.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm erasing plan, progress and settings")
	return cmd
}

// Setting names used by the TUI.
const (
	settingSound         = app.SettingSound
	settingNotifications = app.SettingNotifications
	settingIncognito     = app.SettingIncognito
)
